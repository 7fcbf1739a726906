// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package motion

import "go.uber.org/atomic"

// Stats counts what happened to samples. One Stats may be shared by many
// States.
type Stats struct {
	queued       atomic.Int64
	interpolated atomic.Int64
	clamped      atomic.Int64
	forwarded    atomic.Int64
	seeded       atomic.Int64
	skipped      atomic.Int64
	discarded    atomic.Int64
}

// Snapshot is a point-in-time copy of Stats.
type Snapshot struct {
	Queued       int64 `json:"queued"`       // samples accepted by Enqueue
	Interpolated int64 `json:"interpolated"` // zero-delta samples given interpolated times
	Clamped      int64 `json:"clamped"`      // timestamps moved forward to restore monotonicity
	Forwarded    int64 `json:"forwarded"`    // samples delivered to the consumer
	Seeded       int64 `json:"seeded"`       // first samples of a session, consumed silently
	Skipped      int64 `json:"skipped"`      // samples consumed while the target was locked or hidden
	Discarded    int64 `json:"discarded"`    // samples dropped by cancellation
}

// Snapshot returns the current counts.
func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		Queued:       s.queued.Load(),
		Interpolated: s.interpolated.Load(),
		Clamped:      s.clamped.Load(),
		Forwarded:    s.forwarded.Load(),
		Seeded:       s.seeded.Load(),
		Skipped:      s.skipped.Load(),
		Discarded:    s.discarded.Load(),
	}
}
