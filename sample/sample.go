// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sample defines pointer samples and the sanitizer that repairs
// them before they are queued for drawing.
//
// Input drivers are noisy: timestamps repeat, pressure briefly drops to
// zero on an active contact, tilt axes report NaN. The Sanitizer repairs
// such readings instead of rejecting them, since a dropped sample shows up
// as a broken stroke.
package sample

import (
	"math"

	"golang.org/x/exp/constraints"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"
)

// Axis is an optional device axis reading.
type Axis struct {
	Value float64
	Valid bool
}

// NoAxis is an absent axis.
var NoAxis = Axis{}

// AxisOf returns a present axis reading v.
func AxisOf(v float64) Axis {
	return Axis{Value: v, Valid: true}
}

// Usable reports whether the axis is present and finite.
func (a Axis) Usable() bool {
	return a.Valid && !math.IsNaN(a.Value) && !math.IsInf(a.Value, 0)
}

// ButtonMask is the set of buttons held during a sample.
type ButtonMask uint32

const (
	ButtonPrimary ButtonMask = 1 << iota
	ButtonMiddle
	ButtonSecondary
)

// MaskOf returns the mask bit for a mouse button.
func MaskOf(b mouse.Button) ButtonMask {
	switch b {
	case mouse.ButtonLeft:
		return ButtonPrimary
	case mouse.ButtonMiddle:
		return ButtonMiddle
	case mouse.ButtonRight:
		return ButtonSecondary
	}
	return 0
}

// DeviceID identifies the physical device a sample came from.
type DeviceID string

// RawSample is one input event as delivered by the platform.
type RawSample struct {
	Time      int64 // milliseconds; intended to be monotonic, not guaranteed
	X, Y      float64
	Pressure  Axis // normalized to [0,1] when valid
	TiltX     Axis // normalized to [-1,1] when valid
	TiltY     Axis
	Buttons   ButtonMask
	Button    mouse.Button    // button changing state, for press and release
	Direction mouse.Direction // DirNone for motion
	Modifiers key.Modifiers
	Device    DeviceID
}

// CleanSample is a sanitized sample in logical coordinates.
//
// Every field is finite; Pressure is in [0,1] and both tilts are in
// [-1,1]. Time is in milliseconds. It is integral for sanitized samples and
// may be fractional once zero-delta samples have been spread over time.
type CleanSample struct {
	Time         float64
	X, Y         float64
	Pressure     float64
	TiltX, TiltY float64
}

// Correction is the per-surface state the Sanitizer repairs against.
type Correction struct {
	// ButtonDown is the button currently held for drawing, or
	// mouse.ButtonNone.
	ButtonDown mouse.Button

	LastGoodPressure float64
	LastGoodTiltX    float64
	LastGoodTiltY    float64
	LastX, LastY     float64

	// LastEventHadPressure reports whether the most recent sample carried
	// a measured pressure rather than a synthesized one.
	LastEventHadPressure bool
}

// Held reports whether a drawing button is held.
func (c *Correction) Held() bool {
	return c.ButtonDown != mouse.ButtonNone
}

// Clamp limits v to [lo, hi]. NaN clamps to lo.
func Clamp[T constraints.Float](v, lo, hi T) T {
	switch {
	case math.IsNaN(float64(v)):
		return lo
	case v < lo:
		return lo
	case v > hi:
		return hi
	}
	return v
}
