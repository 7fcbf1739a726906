// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package motion queues sanitized samples per drawing surface and drains
// them into a stroke consumer.
//
// Input arrives faster than strokes can be rendered. Enqueue runs inside
// the input callback and only appends; a cooperative drain step, scheduled
// at low priority, forwards one sample per invocation and yields. The queue
// is unbounded: a lost sample would visibly truncate a stroke.
//
// Samples sharing a timestamp are held in a backlog until a later
// timestamp arrives, then spread evenly over the gap so the consumer always
// sees a positive time delta.
package motion

import (
	"context"
	"sync"
	"time"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/strokeworks/freehand/internal/ring"
	"github.com/strokeworks/freehand/sample"
	"github.com/strokeworks/freehand/sched"
)

// DefaultStaleWindow is the span before a new timestamp that a stale
// zero-delta backlog is squeezed into.
const DefaultStaleWindow = 100 * time.Millisecond

// Consumer receives cleaned samples. dtime is in seconds.
type Consumer interface {
	StrokeTo(dtime, x, y, pressure, tiltX, tiltY float64)
}

// Target is the drawing target samples are forwarded for.
type Target interface {
	Locked() bool
	Visible() bool
}

// PaintNotifier is implemented by targets that want to know where the last
// sample with nonzero pressure was forwarded.
type PaintNotifier interface {
	LastPaintPosition(x, y float64)
}

// Config configures a State.
type Config struct {
	Scheduler sched.Scheduler // required
	Consumer  Consumer        // required
	Target    Target          // nil means always drawable

	Logger      logr.Logger
	Tracer      trace.Tracer
	Stats       *Stats
	StaleWindow time.Duration // zero means DefaultStaleWindow
}

type backlogEntry struct {
	x, y, pressure, tiltX, tiltY float64
}

// burst counts the work done by one drain burst, from the first schedule
// until the queue runs dry or is cancelled.
type burst struct {
	span      trace.Span
	forwarded int
	skipped   int
	seeded    int
	discarded int
}

// State is the motion queue of one drawing surface.
//
// Enqueue and the drain step may be called from different goroutines;
// State serializes them. At most one drain step runs at a time.
type State struct {
	sched    sched.Scheduler
	consumer Consumer
	target   Target
	log      logr.Logger
	tracer   trace.Tracer
	stats    *Stats
	stale    float64 // milliseconds

	mu              sync.Mutex
	queue           ring.Buffer[sample.CleanSample]
	backlog         ring.Buffer[backlogEntry]
	lastQueuedTime  float64
	lastHandledTime float64
	handledAny      bool
	pumpActive      bool
	epoch           uint64 // incremented by Cancel
	burst           burst
	rate            rate
}

// NewState returns an idle State.
func NewState(cfg Config) *State {
	if cfg.Scheduler == nil || cfg.Consumer == nil {
		panic("motion: Config needs a Scheduler and a Consumer")
	}
	s := &State{
		sched:    cfg.Scheduler,
		consumer: cfg.Consumer,
		target:   cfg.Target,
		log:      cfg.Logger,
		tracer:   cfg.Tracer,
		stats:    cfg.Stats,
		stale:    float64(cfg.StaleWindow) / float64(time.Millisecond),
	}
	if s.log.GetSink() == nil {
		s.log = logr.Discard()
	}
	if s.tracer == nil {
		s.tracer = trace.NewNoopTracerProvider().Tracer("")
	}
	if s.stats == nil {
		s.stats = new(Stats)
	}
	if s.stale <= 0 {
		s.stale = float64(DefaultStaleWindow) / float64(time.Millisecond)
	}
	return s
}

// Enqueue queues cs and schedules a drain step if none is scheduled.
//
// A timestamp earlier than the last queued one is moved forward to it. A
// timestamp equal to the last queued one is held back until a later
// timestamp arrives.
func (s *State) Enqueue(cs sample.CleanSample) {
	s.mu.Lock()
	s.stats.queued.Inc()
	if cs.Time < s.lastQueuedTime {
		s.log.Info("motion event time went backwards, clamping",
			"time", cs.Time, "lastQueued", s.lastQueuedTime)
		s.stats.clamped.Inc()
		cs.Time = s.lastQueuedTime
	}
	if cs.Time == s.lastQueuedTime {
		s.backlog.Push(backlogEntry{cs.X, cs.Y, cs.Pressure, cs.TiltX, cs.TiltY})
	} else {
		if s.backlog.Len() > 0 {
			s.flushBacklog(cs.Time)
		}
		s.queue.Push(cs)
		s.lastQueuedTime = cs.Time
	}
	start := !s.pumpActive && s.queue.Len() > 0
	if start {
		s.pumpActive = true
		s.beginBurst()
	}
	s.mu.Unlock()

	if start {
		s.sched.ScheduleLowPriority(s.pump)
	}
}

// flushBacklog queues the backlog with times spread over
// (lastQueuedTime, t), or over the stale window before t if the gap is
// longer than that. s.mu must be held.
func (s *State) flushBacklog(t float64) {
	zt := s.lastQueuedTime
	interval := t - s.lastQueuedTime
	if interval > s.stale {
		zt = t - s.stale
		interval = s.stale
	}
	step := interval / float64(s.backlog.Len()+1)
	for e, ok := s.backlog.Pop(); ok; e, ok = s.backlog.Pop() {
		zt += step
		s.queue.Push(sample.CleanSample{
			Time:     zt,
			X:        e.x,
			Y:        e.y,
			Pressure: e.pressure,
			TiltX:    e.tiltX,
			TiltY:    e.tiltY,
		})
		s.stats.interpolated.Inc()
	}
}

// pump is the drain step. It forwards the front sample and reports whether
// more remain. A Cancel while the sample is being delivered ends the step.
func (s *State) pump() bool {
	s.mu.Lock()
	epoch := s.epoch
	cs, ok := s.queue.Pop()
	if !ok {
		s.pumpActive = false
		s.endBurst()
		s.mu.Unlock()
		return false
	}
	s.mu.Unlock()

	o := s.processSample(epoch, cs)

	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		return false
	}
	switch o {
	case forwarded:
		s.burst.forwarded++
	case skipped:
		s.burst.skipped++
	case seeded:
		s.burst.seeded++
	}
	if s.queue.Len() > 0 {
		return true
	}
	s.pumpActive = false
	s.endBurst()
	return false
}

// rate is a running average of the time between forwarded samples.
type rate struct {
	avg float64 // seconds
	n   int
}

// observe adds dtime to the average. Once more than 20 samples spanning
// over a second have been averaged, it returns the result and starts over;
// otherwise it returns the zero rate.
func (r *rate) observe(dtime float64) rate {
	r.n++
	r.avg += (dtime - r.avg) / float64(r.n)
	if r.n > 20 && float64(r.n)*r.avg > 1 {
		done := *r
		*r = rate{}
		return done
	}
	return rate{}
}

func (r rate) perSecond() float64 {
	if r.avg <= 0 {
		return 0
	}
	return 1 / r.avg
}

type outcome int

const (
	forwarded outcome = iota
	skipped
	seeded
	cancelled
)

// processSample delivers one dequeued sample to the consumer.
func (s *State) processSample(epoch uint64, cs sample.CleanSample) outcome {
	s.mu.Lock()
	if epoch != s.epoch {
		s.mu.Unlock()
		return cancelled
	}
	first := !s.handledAny
	t := cs.Time
	if t < s.lastHandledTime {
		t = s.lastHandledTime
	}
	dtime := (t - s.lastHandledTime) / 1000.0
	s.lastHandledTime = t
	s.handledAny = true
	var avg rate
	if !first && s.log.V(1).Enabled() {
		avg = s.rate.observe(dtime)
	}
	s.mu.Unlock()

	if avg.n > 0 {
		s.log.V(1).Info("processing motion", "eventsPerSecond", avg.perSecond(), "avgDtime", avg.avg)
	}

	if first {
		// No delta exists for the first sample of a session.
		s.stats.seeded.Inc()
		return seeded
	}
	// The target may have changed since the sample was queued.
	if s.target != nil && (s.target.Locked() || !s.target.Visible()) {
		s.log.V(1).Info("target not drawable, skipping sample", "time", cs.Time)
		s.stats.skipped.Inc()
		return skipped
	}

	pressure := sample.Clamp(cs.Pressure, 0, 1)
	tiltX := sample.Clamp(cs.TiltX, -1, 1)
	tiltY := sample.Clamp(cs.TiltY, -1, 1)
	s.consumer.StrokeTo(dtime, cs.X, cs.Y, pressure, tiltX, tiltY)
	s.stats.forwarded.Inc()

	if pressure > 0 {
		if n, ok := s.target.(PaintNotifier); ok {
			n.LastPaintPosition(cs.X, cs.Y)
		}
	}
	return forwarded
}

// Cancel discards the queue and the backlog without forwarding them, stops
// any scheduled drain step and returns the State to idle. The next sample
// starts a new session. Cancel is idempotent; it returns the number of
// samples discarded.
func (s *State) Cancel() int {
	s.mu.Lock()
	n := s.queue.Len() + s.backlog.Len()
	s.queue.Clear()
	s.backlog.Clear()
	s.epoch++
	s.pumpActive = false
	s.lastQueuedTime = 0
	s.lastHandledTime = 0
	s.handledAny = false
	s.rate = rate{}
	s.burst.discarded += n
	s.endBurst()
	s.sched.Cancel()
	s.mu.Unlock()

	if n > 0 {
		s.stats.discarded.Add(int64(n))
		s.log.V(1).Info("discarded pending motion", "samples", n)
	}
	return n
}

// Idle reports whether no drain step is scheduled.
func (s *State) Idle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.pumpActive
}

// Len returns the number of queued samples, excluding the backlog.
func (s *State) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Len()
}

// Backlog returns the number of samples awaiting a later timestamp.
func (s *State) Backlog() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.backlog.Len()
}

// Pending returns a copy of the queued samples, front first.
func (s *State) Pending() []sample.CleanSample {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Slice()
}

// beginBurst starts the span of a drain burst. s.mu must be held.
func (s *State) beginBurst() {
	_, span := s.tracer.Start(context.Background(), "motion.drain")
	s.burst = burst{span: span}
}

// endBurst ends the span of the current drain burst, if any. s.mu must be
// held.
func (s *State) endBurst() {
	b := s.burst
	s.burst = burst{}
	if b.span == nil {
		return
	}
	b.span.SetAttributes(
		attribute.Int("forwarded", b.forwarded),
		attribute.Int("skipped", b.skipped),
		attribute.Int("seeded", b.seeded),
		attribute.Int("discarded", b.discarded),
	)
	b.span.End()
}
