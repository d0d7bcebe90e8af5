// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package moment

import (
	"github.com/cpmech/goimmerse/geom"
	"github.com/cpmech/goimmerse/quad"
)

// Result is the outcome of Fit: the surviving points with their fitted
// non-negative weights (already divided by the parametric->physical
// Jacobian determinant) and the residual that was achieved.
type Result struct {
	Points   []quad.Point
	Residual float64
	Accepted bool
}

func cloneVecs(v []geom.Vec3) []geom.Vec3 {
	out := make([]geom.Vec3, len(v))
	copy(out, v)
	return out
}

func cloneFloats(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)
	return out
}

func maxOf(v []float64) float64 {
	best := 0.0
	for _, x := range v {
		if x > best {
			best = x
		}
	}
	return best
}

// dropLowWeight removes every point whose weight is below relTol*maxWeight,
// returning the reduced (points, weights) and whether anything was dropped.
func dropLowWeight(points []geom.Vec3, w []float64, relTol float64) ([]geom.Vec3, []float64, bool) {
	thresh := relTol * maxOf(w)
	newPoints := make([]geom.Vec3, 0, len(points))
	newW := make([]float64, 0, len(w))
	dropped := false
	for j, p := range points {
		if w[j] < thresh {
			dropped = true
			continue
		}
		newPoints = append(newPoints, p)
		newW = append(newW, w[j])
	}
	return newPoints, newW, dropped
}

// dropSmallest removes the single lowest-weight point, the fallback used
// when no point clears the relative-drop threshold.
func dropSmallest(points []geom.Vec3, w []float64) ([]geom.Vec3, []float64) {
	if len(w) == 0 {
		return points, w
	}
	minIdx := 0
	for j := 1; j < len(w); j++ {
		if w[j] < w[minIdx] {
			minIdx = j
		}
	}
	newPoints := append(append([]geom.Vec3{}, points[:minIdx]...), points[minIdx+1:]...)
	newW := append(append([]float64{}, w[:minIdx]...), w[minIdx+1:]...)
	return newPoints, newW
}

// topN keeps only the n largest-weight points; used on the first iteration
// only, to seed elimination from at most Basis.NumTerms() candidates.
func topN(points []geom.Vec3, w []float64, n int) ([]geom.Vec3, []float64) {
	if n >= len(w) {
		return points, w
	}
	type pw struct {
		p geom.Vec3
		w float64
	}
	pairs := make([]pw, len(w))
	for j := range w {
		pairs[j] = pw{points[j], w[j]}
	}
	// partial selection sort: only need the top n, and n is small (<=125)
	for i := 0; i < n; i++ {
		best := i
		for j := i + 1; j < len(pairs); j++ {
			if pairs[j].w > pairs[best].w {
				best = j
			}
		}
		pairs[i], pairs[best] = pairs[best], pairs[i]
	}
	pairs = pairs[:n]
	outP := make([]geom.Vec3, n)
	outW := make([]float64, n)
	for i, pr := range pairs {
		outP[i] = pr.p
		outW[i] = pr.w
	}
	return outP, outW
}

// Fit runs the iterative point-elimination loop for a single cell:
// candidates are progressively thinned towards at most
// Basis.NumTerms() points while the NNLS residual stays at or below
// cfg.RTarget. jacobianDet divides the final emitted weights so downstream
// FE assembly (which multiplies by it) recovers the physical integral.
func Fit(cfg Config, pmap quad.ParamMap, moments []float64, candidates []geom.Vec3, jacobianDet float64) Result {
	n := cfg.Basis.NumTerms()
	points := cloneVecs(candidates)

	A := FittingMatrix(cfg.Basis, pmap, points)
	w := NNLS(A, moments, 10*n+50)
	points, w = topN(points, w, n)

	var lastGoodPoints []geom.Vec3
	var lastGoodW []float64
	haveLastGood := false

	maxIter := cfg.MaxIterations
	if maxIter <= 0 {
		maxIter = 1000
	}
	nMin := cfg.NMin
	if nMin <= 0 {
		nMin = 4
	}

	r := 1.0
	for iter := 0; iter < maxIter; iter++ {
		A = FittingMatrix(cfg.Basis, pmap, points)
		w = NNLS(A, moments, 10*n+50)
		r = residual(A, w, moments)

		if r <= cfg.RTarget {
			lastGoodPoints = cloneVecs(points)
			lastGoodW = cloneFloats(w)
			haveLastGood = true
		}

		if len(points) <= nMin {
			break
		}

		reduced, reducedW, dropped := dropLowWeight(points, w, cfg.RelDropTol)
		if !dropped {
			reduced, reducedW = dropSmallest(points, w)
		}
		if len(reduced) == len(points) {
			break // nothing left to remove, avoid spinning
		}
		points, w = reduced, reducedW
	}

	finalPoints, finalW, finalR := points, w, r
	if haveLastGood {
		finalPoints, finalW = lastGoodPoints, lastGoodW
		A = FittingMatrix(cfg.Basis, pmap, finalPoints)
		finalR = residual(A, finalW, moments)
	}

	if finalR > HardCutoff {
		return Result{Residual: finalR, Accepted: false}
	}

	out := make([]quad.Point, 0, len(finalPoints))
	for j, p := range finalPoints {
		if finalW[j] < cfg.AbsPruneTol {
			continue
		}
		weight := finalW[j]
		if jacobianDet != 0 {
			weight /= jacobianDet
		}
		out = append(out, quad.Point{X: p, Weight: weight})
	}
	return Result{Points: out, Residual: finalR, Accepted: true}
}
