// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sched

import (
	"sync"

	"github.com/strokeworks/freehand/internal/ring"
)

// Loop is an Executor running posted functions on its own goroutine.
//
// Functions posted with Post run before any function posted with PostIdle,
// so low priority work only runs when no normal work is pending. Both
// queues are unbounded: posting never blocks, even if the loop is busy
// running a function that itself waits on the poster.
type Loop struct {
	mu     sync.Mutex
	normal ring.Buffer[func()]
	idle   ring.Buffer[func()]
	closed bool

	wake    chan struct{}
	release chan struct{}
	done    chan struct{}
}

// NewLoop starts a Loop. Call Close to stop it.
func NewLoop() *Loop {
	l := &Loop{
		wake:    make(chan struct{}, 1),
		release: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go l.run()
	return l
}

// Post queues fn at normal priority.
func (l *Loop) Post(fn func()) {
	l.push(&l.normal, fn)
}

// PostIdle queues fn at low priority.
func (l *Loop) PostIdle(fn func()) {
	l.push(&l.idle, fn)
}

// IdleExecutor returns an Executor posting at low priority.
func (l *Loop) IdleExecutor() Executor {
	return idleExecutor{l}
}

// Close stops the loop. Pending functions are discarded; a function that
// is running completes. Close does not wait for it: use Done for that.
func (l *Loop) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	l.normal.Clear()
	l.idle.Clear()
	l.mu.Unlock()
	close(l.release)
}

// Done is closed once the loop goroutine has exited.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

func (l *Loop) push(q *ring.Buffer[func()], fn func()) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	q.Push(fn)
	l.mu.Unlock()
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

func (l *Loop) next() (func(), bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if fn, ok := l.normal.Pop(); ok {
		return fn, true
	}
	return l.idle.Pop()
}

func (l *Loop) run() {
	defer close(l.done)
	for {
		select {
		case <-l.release:
			return
		default:
		}
		if fn, ok := l.next(); ok {
			fn()
			continue
		}
		select {
		case <-l.wake:
		case <-l.release:
			return
		}
	}
}

type idleExecutor struct{ l *Loop }

func (e idleExecutor) Post(fn func()) { e.l.PostIdle(fn) }
