// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package freehand

import (
	"math"
	"sync"

	"go.uber.org/atomic"
	"golang.org/x/image/math/f64"
)

// Transform places a surface's logical coordinates on the display: a
// logical point is scaled, mirrored horizontally if Mirror is set, rotated
// by Rotation radians and then offset.
type Transform struct {
	Scale            float64 // zero means 1
	OffsetX, OffsetY float64
	Rotation         float64
	Mirror           bool
}

// inverse returns the matrix mapping display coordinates back to logical
// coordinates.
func (t Transform) inverse() f64.Aff3 {
	scale := t.Scale
	if scale == 0 {
		scale = 1
	}
	m := 1.0
	if t.Mirror {
		m = -1
	}
	sin, cos := math.Sincos(t.Rotation)
	return f64.Aff3{
		m * cos / scale, m * sin / scale, m * (-cos*t.OffsetX - sin*t.OffsetY) / scale,
		-sin / scale, cos / scale, (sin*t.OffsetX - cos*t.OffsetY) / scale,
	}
}

// StaticSurface is a Surface with a fixed display transform. Its lock and
// visibility flags may be changed while samples are drained.
type StaticSurface struct {
	id  SurfaceID
	t   Transform
	inv f64.Aff3

	locked atomic.Bool
	hidden atomic.Bool

	mu           sync.Mutex
	lastX, lastY float64
	painted      bool
}

// NewStaticSurface returns a visible, unlocked surface.
func NewStaticSurface(id SurfaceID, t Transform) *StaticSurface {
	return &StaticSurface{id: id, t: t, inv: t.inverse()}
}

func (s *StaticSurface) ID() SurfaceID { return s.id }

func (s *StaticSurface) ToLogical(x, y float64) (float64, float64) {
	m := &s.inv
	return m[0]*x + m[1]*y + m[2], m[3]*x + m[4]*y + m[5]
}

func (s *StaticSurface) Rotation() float64 { return s.t.Rotation }
func (s *StaticSurface) Mirrored() bool    { return s.t.Mirror }

func (s *StaticSurface) Locked() bool      { return s.locked.Load() }
func (s *StaticSurface) Visible() bool     { return !s.hidden.Load() }
func (s *StaticSurface) SetLocked(v bool)  { s.locked.Store(v) }
func (s *StaticSurface) SetVisible(v bool) { s.hidden.Store(!v) }

// LastPaintPosition records where paint was last laid down.
func (s *StaticSurface) LastPaintPosition(x, y float64) {
	s.mu.Lock()
	s.lastX, s.lastY = x, y
	s.painted = true
	s.mu.Unlock()
}

// LastPaint returns the last recorded paint position. ok is false if
// nothing has been painted.
func (s *StaticSurface) LastPaint() (x, y float64, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastX, s.lastY, s.painted
}
