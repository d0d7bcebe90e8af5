// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ggq

import (
	"github.com/cpmech/gosl/la"

	"github.com/cpmech/goimmerse/geom"
	"github.com/cpmech/goimmerse/grid"
	"github.com/cpmech/goimmerse/moment"
	"github.com/cpmech/goimmerse/quad"
)

// axisCoord and transverseKey split a point's position into its
// axis-aligned component and a tolerance-quantized key for the other two,
// so points that share a transverse line (differ only along Axis) group
// together regardless of float rounding.
func axisCoord(p geom.Vec3, axis grid.Axis) float64 {
	switch axis {
	case grid.AxisX:
		return p.X
	case grid.AxisY:
		return p.Y
	default:
		return p.Z
	}
}

func transverseKey(p geom.Vec3, axis grid.Axis) [2]int64 {
	const scale = 1e9
	q := func(v float64) int64 { return int64(v * scale) }
	switch axis {
	case grid.AxisX:
		return [2]int64{q(p.Y), q(p.Z)}
	case grid.AxisY:
		return [2]int64{q(p.X), q(p.Z)}
	default:
		return [2]int64{q(p.X), q(p.Y)}
	}
}

func replaceAxisCoord(p geom.Vec3, axis grid.Axis, v float64) geom.Vec3 {
	switch axis {
	case grid.AxisX:
		p.X = v
	case grid.AxisY:
		p.Y = v
	default:
		p.Z = v
	}
	return p
}

type column struct {
	template  geom.Vec3 // any one point on the line; gives the transverse coords
	positions []float64
	weights   []float64
}

// stripExtent returns the [lo,hi] span of the strip along its axis, taken
// from the elements' physical boxes.
func stripExtent(s *Strip) (lo, hi float64) {
	lo, hi = 0, 0
	first := true
	for _, e := range s.Elements {
		elo := axisCoord(e.Physical.Lo, s.Axis)
		ehi := axisCoord(e.Physical.Hi, s.Axis)
		if first {
			lo, hi = elo, ehi
			first = false
			continue
		}
		if elo < lo {
			lo = elo
		}
		if ehi > hi {
			hi = ehi
		}
	}
	return
}

func groupByTransverse(s *Strip) []*column {
	index := map[[2]int64]*column{}
	var order [][2]int64
	for _, e := range s.Elements {
		for _, p := range e.Points {
			key := transverseKey(p.X, s.Axis)
			col, ok := index[key]
			if !ok {
				col = &column{template: p.X}
				index[key] = col
				order = append(order, key)
			}
			col.positions = append(col.positions, axisCoord(p.X, s.Axis))
			col.weights = append(col.weights, p.Weight)
		}
	}
	cols := make([]*column, 0, len(order))
	for _, key := range order {
		cols = append(cols, index[key])
	}
	return cols
}

// reduce1D collapses one column's (positions, weights) pairs to at most
// order+1 points while preserving their shifted-Legendre moments up to
// `order`: the moments are computed directly from the existing weighted
// rule (so the rule itself is always a feasible NNLS solution), then
// moment.NNLS is asked for the minimal-support nonnegative reconstruction.
func reduce1D(positions, weights []float64, lo, hi float64, order int) ([]float64, []float64) {
	n := order + 1
	extent := hi - lo
	u := func(x float64) float64 {
		if extent == 0 {
			return 0
		}
		return (x - lo) / extent
	}

	m := make([]float64, n)
	for k := 0; k < n; k++ {
		sum := 0.0
		for i, x := range positions {
			sum += weights[i] * quad.ShiftedLegendre(k, u(x))
		}
		m[k] = sum
	}

	A := la.MatAlloc(n, len(positions))
	for j, x := range positions {
		uj := u(x)
		for k := 0; k < n; k++ {
			A[k][j] = quad.ShiftedLegendre(k, uj)
		}
	}

	w := moment.NNLS(A, m, 10*n+50)
	var outPos, outW []float64
	for j, wj := range w {
		if wj <= 1e-14 {
			continue
		}
		outPos = append(outPos, positions[j])
		outW = append(outW, wj)
	}
	return outPos, outW
}

// ReducedRule collapses a strip's per-cell Gauss points along the strip's
// axis into a smaller generalized-Gaussian rule with matching shifted-
// Legendre moments up to `order`. Transverse distributions (the directions
// not being collapsed) are preserved unchanged per column.
func ReducedRule(s *Strip, order int) []quad.Point {
	if s.Len() == 0 {
		return nil
	}
	lo, hi := stripExtent(s)
	var out []quad.Point
	for _, col := range groupByTransverse(s) {
		pos, w := reduce1D(col.positions, col.weights, lo, hi, order)
		for i, x := range pos {
			out = append(out, quad.Point{
				X:      replaceAxisCoord(col.template, s.Axis, x),
				Weight: w[i],
			})
		}
	}
	return out
}
