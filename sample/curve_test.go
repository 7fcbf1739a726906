// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sample

import (
	"math"
	"testing"

	"golang.org/x/mobile/event/key"
)

func TestCurve(t *testing.T) {
	// Points out of order are sorted.
	curve, err := NewCurve([]Point{{1, 1}, {0, 0.2}, {0.5, 0.4}})
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct{ in, want float64 }{
		{-1, 0.2},
		{0, 0.2},
		{0.25, 0.3},
		{0.5, 0.4},
		{0.75, 0.7},
		{1, 1},
		{2, 1},
		{math.NaN(), 0.2},
	}
	for _, tt := range tests {
		if got := curve(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("curve(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCurveErrors(t *testing.T) {
	for _, pts := range [][]Point{
		nil,
		{{0, 0}},
		{{0, 0}, {1.5, 1}},
		{{0, 0}, {1, -0.1}},
		{{0.5, 0}, {0.5, 1}},
	} {
		if _, err := NewCurve(pts); err == nil {
			t.Errorf("NewCurve(%v) succeeded", pts)
		}
	}
}

func TestModifierNames(t *testing.T) {
	m, ok := ParseModifier(" Ctrl ")
	if !ok || m != key.ModControl {
		t.Errorf("ParseModifier(ctrl) = %v, %v", m, ok)
	}
	if _, ok := ParseModifier("hyper"); ok {
		t.Error("ParseModifier(hyper) succeeded")
	}
	got := ModifierNames(key.ModShift | key.ModMeta)
	if len(got) != 2 || got[0] != "shift" || got[1] != "meta" {
		t.Errorf("ModifierNames = %v", got)
	}
}
