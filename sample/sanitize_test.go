// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sample

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"
)

type view struct {
	scale    float64
	rotation float64
	mirrored bool
}

func (v view) ToLogical(x, y float64) (float64, float64) { return x / v.scale, y / v.scale }
func (v view) Rotation() float64                         { return v.rotation }
func (v view) Mirrored() bool                            { return v.mirrored }

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestSanitizeRanges(t *testing.T) {
	bad := []Axis{
		NoAxis,
		AxisOf(math.NaN()),
		AxisOf(math.Inf(1)),
		AxisOf(math.Inf(-1)),
		AxisOf(7),
		AxisOf(-7),
		{Value: 0.3, Valid: false},
	}
	z := NewSanitizer(Options{})
	for _, held := range []bool{false, true} {
		for _, p := range bad {
			for _, tx := range bad {
				for _, ty := range bad {
					c := &Correction{}
					if held {
						c.ButtonDown = mouse.ButtonLeft
					}
					raw := RawSample{Time: 5, X: 1, Y: 2, Pressure: p, TiltX: tx, TiltY: ty}
					got, ok := z.Sanitize(c, raw, view{scale: 1, rotation: 0.7}, NoAxis)
					if !ok {
						t.Fatalf("sample dropped: %+v", raw)
					}
					if got.Pressure < 0 || got.Pressure > 1 || math.IsNaN(got.Pressure) {
						t.Errorf("pressure %v out of range for %+v", got.Pressure, raw)
					}
					for _, v := range []float64{got.TiltX, got.TiltY} {
						if v < -1 || v > 1 || math.IsNaN(v) {
							t.Errorf("tilt %v out of range for %+v", v, raw)
						}
					}
				}
			}
		}
	}
}

func TestSanitizeHeldZeroPressure(t *testing.T) {
	z := NewSanitizer(Options{})
	c := &Correction{ButtonDown: mouse.ButtonLeft, LastGoodPressure: 0.7}
	got, _ := z.Sanitize(c, RawSample{Pressure: AxisOf(0)}, nil, NoAxis)
	if got.Pressure != 0.7 {
		t.Errorf("pressure = %v, want 0.7", got.Pressure)
	}
	if !c.LastEventHadPressure {
		t.Error("repaired pressure reported as synthesized")
	}

	// Without a held button zero pressure is genuine.
	c = &Correction{LastGoodPressure: 0.7}
	got, _ = z.Sanitize(c, RawSample{Pressure: AxisOf(0)}, nil, NoAxis)
	if got.Pressure != 0 {
		t.Errorf("pressure = %v, want 0", got.Pressure)
	}
}

func TestSanitizeLastGoodPressure(t *testing.T) {
	z := NewSanitizer(Options{})
	c := &Correction{ButtonDown: mouse.ButtonLeft}
	z.Sanitize(c, RawSample{Pressure: AxisOf(0.4)}, nil, NoAxis)
	z.Sanitize(c, RawSample{Pressure: AxisOf(1.5)}, nil, NoAxis)
	if c.LastGoodPressure != 1 {
		t.Errorf("LastGoodPressure = %v, want clamped 1", c.LastGoodPressure)
	}
	got, _ := z.Sanitize(c, RawSample{Pressure: AxisOf(0)}, nil, NoAxis)
	if got.Pressure != 1 {
		t.Errorf("pressure = %v, want 1", got.Pressure)
	}
}

func TestSanitizePressureFallback(t *testing.T) {
	z := NewSanitizer(Options{})
	tests := []struct {
		name     string
		raw      RawSample
		fallback Axis
		want     float64
	}{
		{"caller fallback", RawSample{Buttons: ButtonPrimary}, AxisOf(0.25), 0.25},
		{"primary held", RawSample{Buttons: ButtonPrimary}, NoAxis, 0.5},
		{"primary held, NaN axis", RawSample{Buttons: ButtonPrimary, Pressure: AxisOf(math.NaN())}, NoAxis, 0.5},
		{"nothing held", RawSample{Buttons: ButtonSecondary}, NoAxis, 0},
		{"release fallback", RawSample{Buttons: ButtonPrimary}, AxisOf(0), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Correction{}
			got, _ := z.Sanitize(c, tt.raw, nil, tt.fallback)
			if got.Pressure != tt.want {
				t.Errorf("pressure = %v, want %v", got.Pressure, tt.want)
			}
			if c.LastEventHadPressure {
				t.Error("fallback pressure reported as measured")
			}
		})
	}
}

func TestSanitizeTilt(t *testing.T) {
	z := NewSanitizer(Options{})
	c := &Correction{ButtonDown: mouse.ButtonLeft}

	got, _ := z.Sanitize(c, RawSample{TiltX: AxisOf(0.3), TiltY: AxisOf(-0.2)}, nil, NoAxis)
	if diff := cmp.Diff([2]float64{0.3, -0.2}, [2]float64{got.TiltX, got.TiltY}); diff != "" {
		t.Errorf("tilt mismatch (-want +got):\n%s", diff)
	}

	// Spurious zeros while held are replaced by the last good values.
	got, _ = z.Sanitize(c, RawSample{TiltX: AxisOf(0), TiltY: AxisOf(0.5)}, nil, NoAxis)
	if diff := cmp.Diff([2]float64{0.3, 0.5}, [2]float64{got.TiltX, got.TiltY}); diff != "" {
		t.Errorf("repaired tilt mismatch (-want +got):\n%s", diff)
	}

	// Both axes missing means no tilt at all.
	got, _ = z.Sanitize(c, RawSample{TiltX: AxisOf(math.NaN())}, nil, NoAxis)
	if got.TiltX != 0 || got.TiltY != 0 {
		t.Errorf("tilt = (%v, %v), want zero", got.TiltX, got.TiltY)
	}

	// One garbage axis discards the other one too.
	got, _ = z.Sanitize(c, RawSample{TiltX: AxisOf(math.Inf(1)), TiltY: AxisOf(0.1)}, nil, NoAxis)
	if got.TiltX != 0 || got.TiltY != 0 {
		t.Errorf("tilt = (%v, %v), want zero", got.TiltX, got.TiltY)
	}
	got, _ = z.Sanitize(c, RawSample{TiltX: AxisOf(0.4)}, view{scale: 1, rotation: math.Pi / 2}, NoAxis)
	if got.TiltX != 0 || got.TiltY != 0 {
		t.Errorf("tilt with one absent axis = (%v, %v), want zero", got.TiltX, got.TiltY)
	}
}

func TestSanitizeTiltCompensation(t *testing.T) {
	z := NewSanitizer(Options{})
	tests := []struct {
		name   string
		v      view
		tx, ty float64
		want   [2]float64
	}{
		{"identity", view{scale: 1}, 0.5, 0.25, [2]float64{0.5, 0.25}},
		{"mirrored", view{scale: 1, mirrored: true}, 0.5, 0.25, [2]float64{-0.5, 0.25}},
		{"quarter turn", view{scale: 1, rotation: math.Pi / 2}, 1, 0, [2]float64{0, -1}},
		{"half turn", view{scale: 1, rotation: math.Pi}, 0.5, 0.25, [2]float64{-0.5, -0.25}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := z.Sanitize(&Correction{}, RawSample{TiltX: AxisOf(tt.tx), TiltY: AxisOf(tt.ty)}, tt.v, NoAxis)
			if diff := cmp.Diff(tt.want, [2]float64{got.TiltX, got.TiltY}, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
				t.Errorf("tilt mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSanitizeModifiers(t *testing.T) {
	z := NewSanitizer(Options{
		PickModifiers:         key.ModControl | key.ModAlt,
		StraightLineModifiers: key.ModShift,
	})
	for _, mods := range []key.Modifiers{key.ModControl, key.ModAlt, key.ModShift, key.ModShift | key.ModControl} {
		got, ok := z.Sanitize(&Correction{}, RawSample{Pressure: AxisOf(0.8), Modifiers: mods}, nil, NoAxis)
		if !ok {
			t.Fatalf("sample with modifiers %v dropped", mods)
		}
		if got.Pressure != 0 {
			t.Errorf("modifiers %v: pressure = %v, want 0", mods, got.Pressure)
		}
	}
	got, _ := z.Sanitize(&Correction{}, RawSample{Pressure: AxisOf(0.8), Modifiers: key.ModMeta}, nil, NoAxis)
	if got.Pressure != 0.8 {
		t.Errorf("meta: pressure = %v, want 0.8", got.Pressure)
	}
}

func TestSanitizeModifiersAndCurve(t *testing.T) {
	curve, err := NewCurve([]Point{{0, 0.3}, {1, 1}})
	if err != nil {
		t.Fatal(err)
	}
	z := NewSanitizer(Options{
		PickModifiers:         key.ModControl,
		StraightLineModifiers: key.ModShift,
		PressureCurve:         curve,
	})
	for _, tc := range []struct {
		mods key.Modifiers
		want float64
	}{
		{0, 0.3 + 0.7*0.8},
		{key.ModControl, 0.3},
		{key.ModShift, 0},
		{key.ModShift | key.ModControl, 0},
	} {
		got, _ := z.Sanitize(&Correction{}, RawSample{Pressure: AxisOf(0.8), Modifiers: tc.mods}, nil, NoAxis)
		if !cmp.Equal(tc.want, got.Pressure, approx) {
			t.Errorf("modifiers %v: pressure = %v, want %v", tc.mods, got.Pressure, tc.want)
		}
	}
}

func TestSanitizeCurveAndProjection(t *testing.T) {
	curve, err := NewCurve([]Point{{0, 0}, {1, 0.5}})
	if err != nil {
		t.Fatal(err)
	}
	z := NewSanitizer(Options{PressureCurve: curve})
	c := &Correction{}
	got, _ := z.Sanitize(c, RawSample{Time: 42, X: 10, Y: 20, Pressure: AxisOf(0.8)}, view{scale: 2}, NoAxis)
	want := CleanSample{Time: 42, X: 5, Y: 10, Pressure: 0.4}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("sample mismatch (-want +got):\n%s", diff)
	}
	// The curve does not feed back into the last good pressure.
	if c.LastGoodPressure != 0.8 {
		t.Errorf("LastGoodPressure = %v, want 0.8", c.LastGoodPressure)
	}

	// A garbage position reuses the last good one.
	got, _ = z.Sanitize(c, RawSample{Time: 43, X: math.NaN(), Y: 3}, view{scale: 2}, NoAxis)
	if got.X != 5 || got.Y != 10 {
		t.Errorf("position = (%v, %v), want (5, 10)", got.X, got.Y)
	}
}
