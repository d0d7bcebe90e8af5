// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ggq

import (
	"testing"

	"github.com/cpmech/goimmerse/geom"
	"github.com/cpmech/goimmerse/grid"
	"github.com/cpmech/goimmerse/quad"
)

func makeInsideElement(id int, lo, hi geom.Vec3, pu, pv, pw int) *grid.Element {
	box := geom.NewBox(lo, hi)
	pts := quad.TensorGaussRule(box, pu, pv, pw)
	e := &grid.Element{ID: id, Physical: box}
	for _, p := range pts {
		e.Points = append(e.Points, grid.IntegrationPoint{X: p.X, Weight: p.Weight})
	}
	return e
}

func TestBuildStripWalksContiguousRun(t *testing.T) {
	dims := grid.Dims{Nx: 3, Ny: 1, Nz: 1}
	c := grid.NewElementContainer(dims)
	for i := 0; i < 3; i++ {
		lo := geom.Vec3{X: float64(i), Y: 0, Z: 0}
		hi := geom.Vec3{X: float64(i + 1), Y: 1, Z: 1}
		e := makeInsideElement(dims.Index(i, 0, 0), lo, hi, 1, 1, 1)
		c.Publish(e)
	}
	s := BuildStrip(c, dims.Index(0, 0, 0), grid.AxisX)
	if s.Len() != 3 {
		t.Fatalf("expected a 3-element strip, got %d", s.Len())
	}
}

func TestReducedRulePreservesTotalWeight(t *testing.T) {
	dims := grid.Dims{Nx: 2, Ny: 1, Nz: 1}
	c := grid.NewElementContainer(dims)
	for i := 0; i < 2; i++ {
		lo := geom.Vec3{X: float64(i), Y: 0, Z: 0}
		hi := geom.Vec3{X: float64(i + 1), Y: 1, Z: 1}
		e := makeInsideElement(dims.Index(i, 0, 0), lo, hi, 1, 1, 1)
		c.Publish(e)
	}
	s := BuildStrip(c, dims.Index(0, 0, 0), grid.AxisX)

	var originalSum float64
	for _, e := range s.Elements {
		for _, p := range e.Points {
			originalSum += p.Weight
		}
	}

	reduced := ReducedRule(s, 1)
	var reducedSum float64
	for _, p := range reduced {
		if p.Weight <= 0 {
			t.Fatalf("reduced rule produced non-positive weight %v", p.Weight)
		}
		reducedSum += p.Weight
	}
	if diff := reducedSum - originalSum; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("reduced total weight = %v, want %v (total volume preserved)", reducedSum, originalSum)
	}
}
