// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sched provides cooperative run-to-yield scheduling for work that
// must not run concurrently with itself.
//
// An Executor runs posted functions one at a time, in order. A Scheduler
// built on top of an Executor keeps at most one step of a re-entrant Task
// posted: the Task runs once per step and asks to be invoked again by
// returning true.
//
// Executors provided here:
//
//	Loop    a goroutine with a normal and a low priority queue
//	Manual  a queue stepped by the caller, for embedding into a host
//	        main loop and for deterministic tests
package sched

import "sync"

// Task is one unit of re-entrant work. It returns true to be invoked
// again.
type Task func() bool

// Executor runs posted functions sequentially.
type Executor interface {
	Post(fn func())
}

// Scheduler schedules a single re-entrant Task.
type Scheduler interface {
	// ScheduleLowPriority arranges for t to run. If a step is already
	// scheduled, t replaces the pending task and no second step is
	// posted.
	ScheduleLowPriority(t Task)

	// IsScheduled reports whether a step is posted or running.
	IsScheduled() bool

	// Cancel drops any posted step. A step that is running when Cancel is
	// called completes but is not re-posted. Cancel is idempotent.
	Cancel()
}

// Idle is a Scheduler that posts the steps of its task to an Executor.
type Idle struct {
	exec Executor

	mu        sync.Mutex
	task      Task
	gen       uint64 // incremented by Cancel; stale steps compare against it
	scheduled bool
	running   bool
	again     bool // a schedule request arrived while a step was running
}

var _ Scheduler = (*Idle)(nil)

// NewIdle returns a Scheduler posting to exec.
func NewIdle(exec Executor) *Idle {
	if exec == nil {
		panic("sched: nil executor")
	}
	return &Idle{exec: exec}
}

func (s *Idle) ScheduleLowPriority(t Task) {
	s.mu.Lock()
	s.task = t
	if s.scheduled {
		if s.running {
			s.again = true
		}
		s.mu.Unlock()
		return
	}
	s.scheduled = true
	gen := s.gen
	s.mu.Unlock()
	s.exec.Post(func() { s.step(gen) })
}

func (s *Idle) IsScheduled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scheduled
}

func (s *Idle) Cancel() {
	s.mu.Lock()
	s.gen++
	s.task = nil
	s.scheduled = false
	s.running = false
	s.again = false
	s.mu.Unlock()
}

func (s *Idle) step(gen uint64) {
	s.mu.Lock()
	if gen != s.gen || !s.scheduled || s.task == nil {
		s.mu.Unlock()
		return
	}
	t := s.task
	s.running = true
	s.again = false
	s.mu.Unlock()

	more := t()

	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	s.running = false
	if !more && !s.again {
		s.scheduled = false
		s.task = nil
		s.mu.Unlock()
		return
	}
	s.again = false
	s.mu.Unlock()
	s.exec.Post(func() { s.step(gen) })
}
