// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quad

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/goimmerse/geom"
)

func TestGaussWeightsSumToIntervalLength(t *testing.T) {
	chk.PrintTitle("GaussWeightsSumToIntervalLength")
	for n := 1; n <= 6; n++ {
		_, w := NodesWeights01(n)
		sum := 0.0
		for _, wi := range w {
			sum += wi
		}
		if math.Abs(sum-1) > 1e-12 {
			t.Fatalf("n=%d: weights sum to %v, want 1", n, sum)
		}
	}
}

func TestGaussIntegratesPolynomialsExactly(t *testing.T) {
	// an n-point rule integrates polynomials up to degree 2n-1 exactly
	n := 4
	x, w := NodesWeights01(n)
	for deg := 0; deg <= 2*n-1; deg++ {
		got := 0.0
		for i := range x {
			got += w[i] * math.Pow(x[i], float64(deg))
		}
		want := 1.0 / float64(deg+1) // ∫_0^1 x^deg dx
		if math.Abs(got-want) > 1e-9 {
			t.Fatalf("degree %d: got %v, want %v", deg, got, want)
		}
	}
}

func TestShiftedLegendreLowOrderValues(t *testing.T) {
	// L_0 == 1, L_1 is linear increasing through 0 at x=0.5
	if ShiftedLegendre(0, 0.3) != 1 {
		t.Fatalf("L_0 must be constant 1")
	}
	mid := ShiftedLegendre(1, 0.5)
	if math.Abs(mid) > 1e-12 {
		t.Fatalf("L_1(0.5) = %v, want 0", mid)
	}
}

func TestTensorGaussRuleIntegratesVolume(t *testing.T) {
	box := geom.Box{Lo: geom.Vec3{0, 0, 0}, Hi: geom.Vec3{2, 3, 4}}
	pts := TensorGaussRule(box, 1, 1, 1)
	sum := 0.0
	for _, p := range pts {
		sum += p.Weight
	}
	if math.Abs(sum-box.Volume()) > 1e-9 {
		t.Fatalf("rule weights sum to %v, want volume %v", sum, box.Volume())
	}
}

func TestParamMapIdentityJacobian(t *testing.T) {
	box := geom.Box{Lo: geom.Vec3{-1, -1, -1}, Hi: geom.Vec3{1, 1, 1}}
	m := Identity(box)
	if math.Abs(m.JacobianDet()-1) > 1e-12 {
		t.Fatalf("identity map Jacobian = %v, want 1", m.JacobianDet())
	}
	u := m.ToUnit01(geom.Vec3{0, 0, 0})
	if math.Abs(u.X-0.5) > 1e-12 || math.Abs(u.Y-0.5) > 1e-12 {
		t.Fatalf("ToUnit01 center = %v, want (0.5,0.5,0.5)", u)
	}
}
