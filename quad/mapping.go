// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quad

import "github.com/cpmech/goimmerse/geom"

// Basis indexes the trivariate shifted-Legendre monomial basis
// phi_{a,b,c}(x,y,z) = L_a(x̂)L_b(ŷ)L_c(ẑ) for a fixed tensor polynomial
// order (Pu, Pv, Pw)
type Basis struct {
	Pu, Pv, Pw int
}

// NumTerms returns N = (Pu+1)(Pv+1)(Pw+1)
func (b Basis) NumTerms() int { return (b.Pu + 1) * (b.Pv + 1) * (b.Pw + 1) }

// Index returns the linear index of term (a,b,c), a<=Pu, b<=Pv, c<=Pw,
// with a the fastest-varying index (matches the grid linearization
// convention: first axis fastest)
func (b Basis) Index(a, bb, c int) int {
	return c*(b.Pu+1)*(b.Pv+1) + bb*(b.Pu+1) + a
}

// Term returns the (a,b,c) triple for linear index r
func (b Basis) Term(r int) (a, bb, c int) {
	nu := b.Pu + 1
	nv := b.Pv + 1
	a = r % nu
	r /= nu
	bb = r % nv
	c = r / nv
	return
}

// Eval evaluates phi_r at parametric coordinates (x,y,z) in [0,1]^3
func (b Basis) Eval(r int, x, y, z float64) float64 {
	a, bb, c := b.Term(r)
	return ShiftedLegendre(a, x) * ShiftedLegendre(bb, y) * ShiftedLegendre(c, z)
}

// ParamMap maps between a cell's physical box and its parametric box. When
// no isogeometric mapping is active the two boxes are identical and
// ToParametric/JacobianDet are trivial.
type ParamMap struct {
	Physical geom.Box
	Param    geom.Box
}

// Identity returns a ParamMap whose parametric box equals the physical box
func Identity(physical geom.Box) ParamMap {
	return ParamMap{Physical: physical, Param: physical}
}

// ToParametric maps a point in the physical box to the parametric box
// (affine, per-axis)
func (m ParamMap) ToParametric(p geom.Vec3) geom.Vec3 {
	pe := m.Physical.Extent()
	qe := m.Param.Extent()
	scale := func(v, pl, pe, ql, qe float64) float64 {
		if pe == 0 {
			return ql
		}
		return ql + (v-pl)/pe*qe
	}
	return geom.Vec3{
		X: scale(p.X, m.Physical.Lo.X, pe.X, m.Param.Lo.X, qe.X),
		Y: scale(p.Y, m.Physical.Lo.Y, pe.Y, m.Param.Lo.Y, qe.Y),
		Z: scale(p.Z, m.Physical.Lo.Z, pe.Z, m.Param.Lo.Z, qe.Z),
	}
}

// ToUnit01 maps a point in the physical box to [0,1]^3 (the domain the
// shifted-Legendre basis and the Gauss tables are defined on)
func (m ParamMap) ToUnit01(p geom.Vec3) geom.Vec3 {
	e := m.Physical.Extent()
	u := func(v, lo, ext float64) float64 {
		if ext == 0 {
			return 0
		}
		return (v - lo) / ext
	}
	return geom.Vec3{
		X: u(p.X, m.Physical.Lo.X, e.X),
		Y: u(p.Y, m.Physical.Lo.Y, e.Y),
		Z: u(p.Z, m.Physical.Lo.Z, e.Z),
	}
}

// FromUnit01 is the inverse of ToUnit01
func (m ParamMap) FromUnit01(u geom.Vec3) geom.Vec3 {
	e := m.Physical.Extent()
	return geom.Vec3{
		X: m.Physical.Lo.X + u.X*e.X,
		Y: m.Physical.Lo.Y + u.Y*e.Y,
		Z: m.Physical.Lo.Z + u.Z*e.Z,
	}
}

// JacobianDet returns det(d(physical)/d(parametric)), constant over the box
// for the affine mapping used here. Final emitted weights are divided by
// this value so downstream FE assembly, which multiplies by it, recovers
// the correct physical volume integral.
func (m ParamMap) JacobianDet() float64 {
	pe := m.Physical.Extent()
	qe := m.Param.Extent()
	det := 1.0
	for _, pair := range [3][2]float64{{pe.X, qe.X}, {pe.Y, qe.Y}, {pe.Z, qe.Z}} {
		p, q := pair[0], pair[1]
		if q == 0 {
			continue
		}
		det *= p / q
	}
	return det
}

// Point is a quadrature point: a physical position and a weight
type Point struct {
	X      geom.Vec3
	Weight float64
}

// TensorGaussRule returns the full tensor-product Gauss-Legendre rule of
// order (Pu+1, Pv+1, Pw+1) points per axis over the given physical box,
// used directly for Inside cells
func TensorGaussRule(box geom.Box, pu, pv, pw int) []Point {
	nu, nv, nw := pu+1, pv+1, pw+1
	xu, wu := NodesWeights01(nu)
	xv, wv := NodesWeights01(nv)
	xw, ww := NodesWeights01(nw)
	lo, ext := box.Lo, box.Extent()
	vol := ext.X * ext.Y * ext.Z
	pts := make([]Point, 0, nu*nv*nw)
	for k := 0; k < nw; k++ {
		for j := 0; j < nv; j++ {
			for i := 0; i < nu; i++ {
				p := geom.Vec3{
					X: lo.X + xu[i]*ext.X,
					Y: lo.Y + xv[j]*ext.Y,
					Z: lo.Z + xw[k]*ext.Z,
				}
				w := wu[i] * wv[j] * ww[k] * vol
				pts = append(pts, Point{X: p, Weight: w})
			}
		}
	}
	return pts
}
