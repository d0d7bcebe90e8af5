// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package quad implements the tensor-product Gauss-Legendre quadrature
// tables and the shifted Legendre polynomial basis used by the untrimmed
// (Inside) cell rule and by the moment-fitting basis functions. Both are
// implemented here from the classical Newton-on-the-recurrence recipe so
// the module is self-contained.
package quad

import "math"

// min returns the smaller of a and b (a small local numeric helper, in the
// idiom of gofem's shp package, rather than reaching for a generic)
func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// max returns the larger of a and b
func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// LegendreNodesWeights returns the n Gauss-Legendre nodes and weights on
// [-1, 1], found by Newton's method on the Legendre polynomial recurrence
// (the classical approach for n <= a few hundred). n must be >= 1.
func LegendreNodesWeights(n int) (nodes, weights []float64) {
	if n < 1 {
		panic("quad: LegendreNodesWeights requires n >= 1")
	}
	nodes = make([]float64, n)
	weights = make([]float64, n)
	m := (n + 1) / 2
	for i := 0; i < m; i++ {
		// initial guess (Chebyshev-like)
		z := math.Cos(math.Pi * (float64(i) + 0.75) / (float64(n) + 0.5))
		var pp float64
		for iter := 0; iter < 100; iter++ {
			p0, p1 := 1.0, 0.0
			for k := 0; k < n; k++ {
				p2 := p1
				p1 = p0
				p0 = ((2*float64(k)+1)*z*p1 - float64(k)*p2) / (float64(k) + 1)
			}
			pp = float64(n) * (z*p0 - p1) / (z*z - 1)
			z1 := z
			z = z1 - p0/pp
			if math.Abs(z-z1) < 1e-15 {
				break
			}
		}
		nodes[i] = -z
		nodes[n-1-i] = z
		w := 2 / ((1 - z*z) * pp * pp)
		weights[i] = w
		weights[n-1-i] = w
	}
	return
}

// NodesWeights01 returns Gauss-Legendre nodes/weights shifted from [-1,1]
// to the unit interval [0,1]
func NodesWeights01(n int) (nodes, weights []float64) {
	z, w := LegendreNodesWeights(n)
	nodes = make([]float64, n)
	weights = make([]float64, n)
	for i := range z {
		nodes[i] = 0.5*z[i] + 0.5
		weights[i] = 0.5 * w[i]
	}
	return
}

// ShiftedLegendre evaluates the degree-k shifted Legendre polynomial L_k on
// [0,1] at x; phi_{a,b,c} = L_a(x̂)·L_b(ŷ)·L_c(ẑ) is built from this basis
func ShiftedLegendre(k int, x float64) float64 {
	return legendreP(k, 2*x-1)
}

// legendreP evaluates the standard (unshifted) Legendre polynomial of
// degree k at t in [-1,1] via the three-term recurrence
func legendreP(k int, t float64) float64 {
	if k == 0 {
		return 1
	}
	if k == 1 {
		return t
	}
	p0, p1 := 1.0, t
	for n := 1; n < k; n++ {
		p2 := ((2*float64(n)+1)*t*p1 - float64(n)*p0) / (float64(n) + 1)
		p0, p1 = p1, p2
	}
	return p1
}

// ShiftedLegendreIntegral returns Phi_k(x) = ∫_0^x L_k(s) ds, the
// antiderivative used by the divergence-theorem reduction of the moment
// integrals. Uses the closed-form antiderivative of the standard Legendre
// polynomial,
// ∫P_k = (P_{k+1}-P_{k-1})/(2k+1), transformed back to [0,1].
func ShiftedLegendreIntegral(k int, x float64) float64 {
	if k == 0 {
		return x // ∫_0^x 1 ds
	}
	t := 2*x - 1
	// antiderivative on [-1,1] is (P_{k+1}-P_{k-1})/(2k+1); the 1/2 below
	// accounts for dt = 2 dx, and the additive constant is fixed by
	// requiring the result vanish at x=0 (t=-1)
	at := func(tt float64) float64 {
		return (legendreP(k+1, tt) - legendreP(k-1, tt)) / (2*float64(k) + 1)
	}
	return 0.5 * (at(t) - at(-1))
}
