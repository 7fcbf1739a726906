// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sample

import (
	"math"
	"sort"

	"golang.org/x/xerrors"
)

// Remapper maps a pressure reading to a new pressure. It must be pure.
type Remapper func(pressure float64) float64

// Point is a control point of a pressure curve.
type Point struct {
	In, Out float64
}

// NewCurve returns a piecewise linear Remapper through points. At least
// two points are needed, all coordinates must lie in [0,1] and input values
// must be distinct. Inputs outside the first and last point map to the end
// values.
func NewCurve(points []Point) (Remapper, error) {
	if len(points) < 2 {
		return nil, xerrors.Errorf("pressure curve needs at least 2 points, got %d", len(points))
	}
	pts := make([]Point, len(points))
	copy(pts, points)
	sort.Slice(pts, func(i, j int) bool { return pts[i].In < pts[j].In })
	for i, p := range pts {
		if p.In < 0 || p.In > 1 || p.Out < 0 || p.Out > 1 {
			return nil, xerrors.Errorf("pressure curve point (%g, %g) outside [0,1]", p.In, p.Out)
		}
		if i > 0 && pts[i-1].In == p.In {
			return nil, xerrors.Errorf("pressure curve has duplicate input %g", p.In)
		}
	}
	return func(v float64) float64 {
		if math.IsNaN(v) || v <= pts[0].In {
			return pts[0].Out
		}
		last := pts[len(pts)-1]
		if v >= last.In {
			return last.Out
		}
		i := sort.Search(len(pts), func(i int) bool { return pts[i].In >= v })
		a, b := pts[i-1], pts[i]
		f := (v - a.In) / (b.In - a.In)
		return a.Out + f*(b.Out-a.Out)
	}, nil
}
