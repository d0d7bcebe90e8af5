// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package moment implements the divergence-theorem moment-vector assembly,
// the non-negative least-squares fit of a candidate point set to that
// moment vector, and the iterative point-elimination loop.
package moment

import (
	"github.com/cpmech/gosl/la"

	"github.com/cpmech/goimmerse/geom"
	"github.com/cpmech/goimmerse/quad"
)

// BoundaryPoint is the subset of brep.BoundaryIntegrationPoint this package
// needs; kept as its own type (rather than importing brep) so moment has no
// dependency on the B-Rep/mesh stack, the same decoupling geom.TriangleSource
// gives the tree relative to mesh.Mesh.
type BoundaryPoint struct {
	X      geom.Vec3
	Weight float64
	Normal geom.Vec3
}

// Config bundles the moment-fitting tunables.
type Config struct {
	Basis         quad.Basis
	RTarget       float64 // moment_fitting_residual, r_target
	RelDropTol    float64 // ε_rel: fraction of this round's max weight, dimensionless
	AbsPruneTol   float64 // ε_abs: absolute weight units, applied once at the end
	NMin          int     // minimum surviving point count before elimination stops, default 4
	MaxIterations int     // default 1000
}

// HardCutoff is the residual above which a cell's points are discarded
// entirely after elimination: if r is still above this cutoff once
// elimination stops, all points for that cell are discarded.
const HardCutoff = 1e-2

// DefaultConfig returns a Config for basis and rTarget with the default
// tolerances and limits filled in.
func DefaultConfig(basis quad.Basis, rTarget float64) Config {
	return Config{
		Basis:         basis,
		RTarget:       rTarget,
		RelDropTol:    1e-3,
		AbsPruneTol:   1e-12,
		NMin:          4,
		MaxIterations: 1000,
	}
}

// Moments assembles the moment vector m (length Basis.NumTerms()) by a
// divergence-theorem / boundary-integral construction: for
// phi_{a,b,c} = L_a(x)L_b(y)L_c(z), the field F with div(F) = 3*phi is taken
// as the symmetric decomposition (Phi_a(x)L_b(y)L_c(z), L_a(x)Phi_b(y)L_c(z),
// L_a(x)L_b(y)Phi_c(z)), where Phi_k is the antiderivative
// quad.ShiftedLegendreIntegral, and m = (1/3) * sum_k w_k F(q_k).n_k over
// the trimmed domain's boundary quadrature points. Each Phi term is scaled
// by the cell's physical extent along its axis, since Phi is taken in the
// unit coordinate and d(unit)/d(physical) = 1/extent.
func Moments(basis quad.Basis, pmap quad.ParamMap, boundary []BoundaryPoint) []float64 {
	m := make([]float64, basis.NumTerms())
	ext := pmap.Physical.Extent()
	for _, bp := range boundary {
		u := pmap.ToUnit01(bp.X)
		for r := 0; r < basis.NumTerms(); r++ {
			a, b, c := basis.Term(r)
			La := quad.ShiftedLegendre(a, u.X)
			Lb := quad.ShiftedLegendre(b, u.Y)
			Lc := quad.ShiftedLegendre(c, u.Z)
			Phia := quad.ShiftedLegendreIntegral(a, u.X)
			Phib := quad.ShiftedLegendreIntegral(b, u.Y)
			Phic := quad.ShiftedLegendreIntegral(c, u.Z)
			Fx := ext.X * Phia * Lb * Lc
			Fy := La * ext.Y * Phib * Lc
			Fz := La * Lb * ext.Z * Phic
			fdotn := Fx*bp.Normal.X + Fy*bp.Normal.Y + Fz*bp.Normal.Z
			m[r] += bp.Weight * fdotn
		}
	}
	for r := range m {
		m[r] /= 3
	}
	return m
}

// FittingMatrix builds A in R^{N x M} with A[r][j] = phi_r(q_j), phi_r the
// basis's r-th shifted-Legendre monomial evaluated at q_j's parametric
// coordinate.
func FittingMatrix(basis quad.Basis, pmap quad.ParamMap, candidates []geom.Vec3) [][]float64 {
	n := basis.NumTerms()
	m := len(candidates)
	A := la.MatAlloc(n, m)
	for j, q := range candidates {
		u := pmap.ToUnit01(q)
		for r := 0; r < n; r++ {
			A[r][j] = basis.Eval(r, u.X, u.Y, u.Z)
		}
	}
	return A
}

// residual computes ||Aw - m|| / N, the normalized fitting residual.
func residual(A [][]float64, w, m []float64) float64 {
	n := len(m)
	if n == 0 {
		return 0
	}
	Aw := make([]float64, n)
	la.MatVecMul(Aw, 1, A, w)
	diff := make([]float64, n)
	for r := 0; r < n; r++ {
		diff[r] = Aw[r] - m[r]
	}
	return la.VecNorm(diff) / float64(n)
}
