// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package freehand implements the freehand drawing mode: raw samples from
// any number of drawing surfaces are sanitized, queued per surface and
// drained into a stroke consumer.
//
// A Mode is entered once, fed with HandleEvent for every input event and
// left when the user switches away. Leaving cancels all pending motion.
package freehand

import (
	"sync"
	"time"

	"github.com/go-logr/logr"
	"github.com/strokeworks/freehand/motion"
	"github.com/strokeworks/freehand/sample"
	"github.com/strokeworks/freehand/sched"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"golang.org/x/mobile/event/mouse"
)

// SurfaceID identifies a drawing surface.
type SurfaceID string

// Surface is a drawing surface samples are painted on.
//
// A Surface may also implement motion.PaintNotifier.
type Surface interface {
	sample.View
	motion.Target
	ID() SurfaceID
}

// BrushResetter resets the brush engine's per-stroke state.
type BrushResetter interface {
	ResetBrush()
}

// CursorOverrider sets a device-level cursor override. The empty name
// releases the override.
type CursorOverrider interface {
	SetOverrideCursor(name string)
}

// HiddenCursor is the cursor name used while painting when
// Options.HideCursorWhilePainting is set.
const HiddenCursor = "none"

// Options configures a Mode.
type Options struct {
	Sanitizer sample.Options
	Executor  sched.Executor  // required; runs drain steps
	Consumer  motion.Consumer // required

	Resetter BrushResetter   // optional
	Cursor   CursorOverrider // optional

	// CursorName is applied by Enter and released by Leave.
	CursorName string

	// HideCursorWhilePainting replaces the cursor with HiddenCursor while
	// samples with nonzero pressure arrive.
	HideCursorWhilePainting bool

	Logger         logr.Logger
	TracerProvider trace.TracerProvider
	StaleWindow    time.Duration
}

type surfaceState struct {
	corr   sample.Correction
	motion *motion.State
}

// Mode is the freehand drawing mode.
type Mode struct {
	opts   Options
	san    *sample.Sanitizer
	log    logr.Logger
	tracer trace.Tracer
	stats  *motion.Stats

	mu         sync.Mutex
	surfaces   map[SurfaceID]*surfaceState
	lastDevice sample.DeviceID
	cursor     string // current override, "" if none
}

// New returns a Mode. It panics if opts lacks an Executor or Consumer.
func New(opts Options) *Mode {
	if opts.Executor == nil || opts.Consumer == nil {
		panic("freehand: Options needs an Executor and a Consumer")
	}
	m := &Mode{
		opts:     opts,
		san:      sample.NewSanitizer(opts.Sanitizer),
		log:      opts.Logger,
		stats:    new(motion.Stats),
		surfaces: make(map[SurfaceID]*surfaceState),
	}
	if m.log.GetSink() == nil {
		m.log = logr.Discard()
	}
	m.log = m.log.WithName("freehand")
	tp := opts.TracerProvider
	if tp == nil {
		tp = trace.NewNoopTracerProvider()
	}
	m.tracer = tp.Tracer("github.com/strokeworks/freehand/motion")
	return m
}

// Enter applies the drawing cursor.
func (m *Mode) Enter() {
	if m.opts.CursorName == "" {
		return
	}
	m.mu.Lock()
	name := m.setCursor(m.opts.CursorName)
	m.mu.Unlock()
	m.applyCursor(name)
}

// HandleEvent sanitizes raw and queues it on surf's motion queue.
//
// A sample from a different device than the previous one resets the
// brush first. A press of the primary button starts a contact and a
// release ends it. Devices without pressure get no motion for a press or
// release, so those events are queued with synthesized pressure; after a
// sample with measured pressure they only change the contact state.
func (m *Mode) HandleEvent(surf Surface, raw sample.RawSample) {
	if m.switchedDevice(raw.Device) {
		m.log.V(1).Info("input device changed, resetting brush", "device", raw.Device)
		if m.opts.Resetter != nil {
			m.opts.Resetter.ResetBrush()
		}
	}

	m.mu.Lock()
	st := m.stateLocked(surf)
	fallback := sample.NoAxis
	synthesize := true
	if raw.Button == mouse.ButtonLeft {
		switch raw.Direction {
		case mouse.DirPress:
			synthesize = !st.corr.LastEventHadPressure
			st.corr.ButtonDown = raw.Button
			st.corr.LastGoodPressure = 0
			st.corr.LastGoodTiltX, st.corr.LastGoodTiltY = 0, 0
			fallback = sample.AxisOf(0.5)
		case mouse.DirRelease:
			synthesize = !st.corr.LastEventHadPressure
			st.corr.ButtonDown = mouse.ButtonNone
			fallback = sample.AxisOf(0)
		}
	}
	if !synthesize {
		m.mu.Unlock()
		return
	}
	cs, ok := m.san.Sanitize(&st.corr, raw, surf, fallback)
	var cursor *string
	if ok && m.opts.HideCursorWhilePainting {
		want := m.opts.CursorName
		if cs.Pressure > 0 {
			want = HiddenCursor
		}
		if want != m.cursor {
			name := m.setCursor(want)
			cursor = &name
		}
	}
	if ok {
		st.motion.Enqueue(cs)
	}
	m.mu.Unlock()

	if cursor != nil {
		m.applyCursor(*cursor)
	}
}

// switchedDevice records dev and reports whether it differs from the
// previously recorded non-empty device.
func (m *Mode) switchedDevice(dev sample.DeviceID) bool {
	if dev == "" {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	prev := m.lastDevice
	m.lastDevice = dev
	return prev != "" && prev != dev
}

// stateLocked returns the state of surf, creating it on first use.
// m.mu must be held.
func (m *Mode) stateLocked(surf Surface) *surfaceState {
	id := surf.ID()
	if st, ok := m.surfaces[id]; ok {
		return st
	}
	st := &surfaceState{
		motion: motion.NewState(motion.Config{
			Scheduler:   sched.NewIdle(m.opts.Executor),
			Consumer:    m.opts.Consumer,
			Target:      surf,
			Logger:      m.log.WithName("motion").WithValues("surface", id),
			Tracer:      m.tracer,
			Stats:       m.stats,
			StaleWindow: m.opts.StaleWindow,
		}),
	}
	m.surfaces[id] = st
	m.log.V(1).Info("new drawing state", "surface", id)
	return st
}

// Discard cancels and forgets the state of one surface. It returns the
// number of samples discarded.
func (m *Mode) Discard(id SurfaceID) int {
	m.mu.Lock()
	st, ok := m.surfaces[id]
	delete(m.surfaces, id)
	m.mu.Unlock()
	if !ok {
		return 0
	}
	return st.motion.Cancel()
}

// Leave cancels the state of every surface and releases the cursor
// override. Calling Leave again does nothing more. It returns the number of
// samples discarded.
func (m *Mode) Leave() int {
	m.mu.Lock()
	states := m.surfaces
	m.surfaces = make(map[SurfaceID]*surfaceState)
	release := m.cursor != ""
	m.cursor = ""
	m.mu.Unlock()

	n := 0
	for _, st := range states {
		n += st.motion.Cancel()
	}
	if release {
		m.applyCursor("")
	}
	if len(states) > 0 {
		m.log.Info("left freehand mode", "surfaces", len(states), "discarded", n)
	}
	return n
}

// Stats returns the counters of all surfaces combined.
func (m *Mode) Stats() motion.Snapshot {
	return m.stats.Snapshot()
}

// State returns the motion state of a surface, or nil if the surface has
// none.
func (m *Mode) State(id SurfaceID) *motion.State {
	m.mu.Lock()
	defer m.mu.Unlock()
	if st, ok := m.surfaces[id]; ok {
		return st.motion
	}
	return nil
}

// Surfaces returns the IDs of the surfaces with a state, sorted.
func (m *Mode) Surfaces() []SurfaceID {
	m.mu.Lock()
	ids := maps.Keys(m.surfaces)
	m.mu.Unlock()
	slices.Sort(ids)
	return ids
}

// setCursor records name as the current override and returns it. m.mu
// must be held.
func (m *Mode) setCursor(name string) string {
	m.cursor = name
	return name
}

func (m *Mode) applyCursor(name string) {
	if m.opts.Cursor != nil {
		m.opts.Cursor.SetOverrideCursor(name)
	}
}
