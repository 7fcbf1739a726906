// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sample

import (
	"math"

	"golang.org/x/image/math/f64"
	"golang.org/x/mobile/event/key"
)

// View is the coordinate-space capability of a drawing surface.
type View interface {
	// ToLogical converts display coordinates to the surface's logical
	// coordinates. It must be pure.
	ToLogical(x, y float64) (float64, float64)

	// Rotation is the angle in radians the canvas is rotated by on screen.
	Rotation() float64

	// Mirrored reports whether the canvas is mirrored horizontally.
	Mirrored() bool
}

// Options configures a Sanitizer.
type Options struct {
	// PressureCurve, if non-nil, remaps pressure as the final step.
	PressureCurve Remapper

	// Holding any of PickModifiers or StraightLineModifiers forces
	// pressure to zero.
	PickModifiers         key.Modifiers
	StraightLineModifiers key.Modifiers
}

// Sanitizer turns RawSamples into CleanSamples.
type Sanitizer struct {
	opts Options
}

// NewSanitizer returns a Sanitizer with the given options.
func NewSanitizer(opts Options) *Sanitizer {
	return &Sanitizer{opts: opts}
}

// Sanitize repairs raw against c and returns the cleaned sample. It
// updates the last-good readings in c.
//
// fallback is the pressure to use when raw has no usable pressure axis;
// callers pass it for synthesized press and release events and NoAxis
// otherwise.
//
// The boolean result is false if the sample should be dropped. No current
// rule drops samples.
func (z *Sanitizer) Sanitize(c *Correction, raw RawSample, view View, fallback Axis) (CleanSample, bool) {
	pressure, measured := z.pressure(c, raw, fallback)
	c.LastEventHadPressure = measured

	tiltX, tiltY := z.tilt(c, raw)
	if view != nil {
		tiltX, tiltY = compensateTilt(view.Mirrored(), view.Rotation(), tiltX, tiltY)
	}

	// Picking and straight-line modes would paint a stray line if the
	// sample were dropped, so they paint nothing instead. The curve sees
	// the picking override but not the straight-line one.
	if raw.Modifiers&z.opts.PickModifiers != 0 {
		pressure = 0
	}
	if z.opts.PressureCurve != nil {
		pressure = z.opts.PressureCurve(pressure)
	}
	if raw.Modifiers&z.opts.StraightLineModifiers != 0 {
		pressure = 0
	}

	x, y := raw.X, raw.Y
	if !finite(x) || !finite(y) {
		x, y = c.LastX, c.LastY
	} else {
		if view != nil {
			x, y = view.ToLogical(x, y)
		}
		if !finite(x) || !finite(y) {
			x, y = c.LastX, c.LastY
		}
		c.LastX, c.LastY = x, y
	}

	return CleanSample{
		Time:     float64(raw.Time),
		X:        x,
		Y:        y,
		Pressure: Clamp(pressure, 0, 1),
		TiltX:    Clamp(tiltX, -1, 1),
		TiltY:    Clamp(tiltY, -1, 1),
	}, true
}

func (z *Sanitizer) pressure(c *Correction, raw RawSample, fallback Axis) (float64, bool) {
	p := raw.Pressure
	// Some drivers report zero pressure on an active contact. A real
	// release arrives as a button release, not as zero pressure.
	if c.Held() && p.Valid && p.Value == 0 {
		p = AxisOf(c.LastGoodPressure)
	}
	if p.Usable() {
		v := Clamp(p.Value, 0, 1)
		if v != 0 {
			c.LastGoodPressure = v
		}
		return v, true
	}
	if fallback.Usable() {
		return Clamp(fallback.Value, 0, 1), false
	}
	if raw.Buttons&ButtonPrimary != 0 {
		return 0.5, false
	}
	return 0, false
}

func (z *Sanitizer) tilt(c *Correction, raw RawSample) (float64, float64) {
	// Tablets without tilt may report one axis as NaN.
	if !raw.TiltX.Usable() || !raw.TiltY.Usable() {
		return 0, 0
	}
	held := c.Held()
	x := repairTilt(held, raw.TiltX, &c.LastGoodTiltX)
	y := repairTilt(held, raw.TiltY, &c.LastGoodTiltY)
	return x, y
}

func repairTilt(held bool, a Axis, last *float64) float64 {
	v := Clamp(a.Value, -1, 1)
	if v == 0 {
		if held {
			return *last
		}
		return 0
	}
	*last = v
	return v
}

// compensateTilt maps a tilt vector from the device frame to the frame of
// the visible canvas.
func compensateTilt(mirrored bool, rotation, x, y float64) (float64, float64) {
	if mirrored {
		x = -x
	}
	if rotation == 0 || !finite(rotation) {
		return x, y
	}
	m := rotate(-rotation)
	return m[0]*x + m[1]*y + m[2], m[3]*x + m[4]*y + m[5]
}

func rotate(theta float64) f64.Aff3 {
	sin, cos := math.Sincos(theta)
	return f64.Aff3{
		cos, -sin, 0,
		sin, cos, 0,
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
