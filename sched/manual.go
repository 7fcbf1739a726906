// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sched

import (
	"sync"

	"github.com/strokeworks/freehand/internal/ring"
)

// Manual is an Executor whose queue is run by the caller, for example from
// a toolkit's idle callback. Post is safe for concurrent use; Step and
// RunPending must not be called concurrently with each other.
type Manual struct {
	mu sync.Mutex
	q  ring.Buffer[func()]
}

// NewManual returns an empty Manual executor.
func NewManual() *Manual {
	return &Manual{}
}

func (m *Manual) Post(fn func()) {
	m.mu.Lock()
	m.q.Push(fn)
	m.mu.Unlock()
}

// Len returns the number of queued functions.
func (m *Manual) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.q.Len()
}

// Step runs the front function, if any, and reports whether one ran.
func (m *Manual) Step() bool {
	m.mu.Lock()
	fn, ok := m.q.Pop()
	m.mu.Unlock()
	if !ok {
		return false
	}
	fn()
	return true
}

// RunPending steps until the queue is empty, including functions posted
// while it runs. It returns the number of functions run.
func (m *Manual) RunPending() int {
	n := 0
	for m.Step() {
		n++
	}
	return n
}
