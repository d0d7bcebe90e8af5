// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pipeline

import (
	"math"
	"testing"

	"github.com/cpmech/goimmerse/geom"
	"github.com/cpmech/goimmerse/grid"
	"github.com/cpmech/goimmerse/inp"
	"github.com/cpmech/goimmerse/mesh"
)

// unitCubeMesh builds a closed, outward-oriented triangle mesh of the cube
// [-1,1]^3 (the same fixture shape used by the brep package's own tests).
func unitCubeMesh() *mesh.Mesh {
	m := mesh.New()
	v := []geom.Vec3{
		{X: -1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: -1}, {X: 1, Y: 1, Z: -1}, {X: -1, Y: 1, Z: -1},
		{X: -1, Y: -1, Z: 1}, {X: 1, Y: -1, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: -1, Y: 1, Z: 1},
	}
	ids := make([]int, len(v))
	for i, p := range v {
		ids[i] = m.AddVertex(p)
	}
	type face struct {
		idx [4]int
		n   geom.Vec3
	}
	faces := []face{
		{[4]int{0, 3, 2, 1}, geom.Vec3{X: 0, Y: 0, Z: -1}},
		{[4]int{4, 5, 6, 7}, geom.Vec3{X: 0, Y: 0, Z: 1}},
		{[4]int{0, 1, 5, 4}, geom.Vec3{X: 0, Y: -1, Z: 0}},
		{[4]int{2, 3, 7, 6}, geom.Vec3{X: 0, Y: 1, Z: 0}},
		{[4]int{0, 4, 7, 3}, geom.Vec3{X: -1, Y: 0, Z: 0}},
		{[4]int{1, 2, 6, 5}, geom.Vec3{X: 1, Y: 0, Z: 0}},
	}
	for _, f := range faces {
		a, b, c, d := ids[f.idx[0]], ids[f.idx[1]], ids[f.idx[2]], ids[f.idx[3]]
		m.AddTriangle(a, b, c, f.n)
		m.AddTriangle(a, c, d, f.n)
	}
	return m
}

func baseConfig() *inp.Config {
	cfg := &inp.Config{
		LowerBoundXYZ:               inp.Vec3{X: -1.5, Y: -1.5, Z: -1.5},
		UpperBoundXYZ:               inp.Vec3{X: 2.5, Y: 2.5, Z: 2.5},
		NumberOfElements:            inp.Vec3i{X: 4, Y: 4, Z: 4},
		PolynomialOrder:             inp.Vec3i{X: 1, Y: 1, Z: 1},
		IntegrationMethod:           inp.Gauss,
		EmbeddingFlag:               true,
		MinElementVolumeRatio:       1e-3,
		MinNumBoundaryTriangles:     1,
		NeglectElementsIfMeshFlawed: true,
		MomentFittingResidual:       1e-3,
		InitPointDistributionFactor: 2,
	}
	cfg.SetDefault()
	return cfg
}

// TestRunClassifiesAndFitsCube exercises the full Gauss-branch pipeline over
// a grid that fully contains the unit cube: Inside cells must keep their
// exact tensor rule and Trimmed cells must gain a positive-weight fitted
// rule, with the grand total approximating the cube's volume (8).
func TestRunClassifiesAndFitsCube(t *testing.T) {
	cfg := baseConfig()
	d := NewDriver(cfg, unitCubeMesh(), nil)
	d.Run()

	var total float64
	nInside, nTrimmed := 0, 0
	d.Container.Each(func(e *grid.Element) {
		if e.IsTrimmed {
			nTrimmed++
		} else {
			nInside++
		}
		for _, p := range e.Points {
			if p.Weight <= 0 {
				t.Fatalf("cell %d produced non-positive weight %v", e.ID, p.Weight)
			}
			total += p.Weight
		}
	})

	if nInside == 0 {
		t.Fatalf("expected at least one fully-Inside cell")
	}
	if nTrimmed == 0 {
		t.Fatalf("expected at least one Trimmed cell")
	}

	const want = 8.0 // volume of [-1,1]^3
	if diff := math.Abs(total - want); diff/want > 0.2 {
		t.Fatalf("total published weight = %v, want ~%v", total, want)
	}
}

// TestRunGGQReducedCollapsesStrip exercises the GGQ_Reduced1 branch over a
// purely-Inside strip of cells (embedding disabled), checking the
// post-collapse total weight still matches the strip's volume.
func TestRunGGQReducedCollapsesStrip(t *testing.T) {
	cfg := baseConfig()
	cfg.EmbeddingFlag = false
	cfg.IntegrationMethod = inp.GGQReduced1
	cfg.NumberOfElements = inp.Vec3i{X: 4, Y: 1, Z: 1}
	cfg.LowerBoundXYZ = inp.Vec3{X: 0, Y: 0, Z: 0}
	cfg.UpperBoundXYZ = inp.Vec3{X: 4, Y: 1, Z: 1}

	d := NewDriver(cfg, unitCubeMesh(), nil)
	d.Run()

	var total float64
	d.Container.Each(func(e *grid.Element) {
		for _, p := range e.Points {
			if p.Weight <= 0 {
				t.Fatalf("cell %d produced non-positive weight %v after GGQ collapse", e.ID, p.Weight)
			}
			total += p.Weight
		}
	})

	const want = 4.0 // volume of the 4x1x1 grid, all cells treated Inside
	if diff := math.Abs(total - want); diff > 1e-6 {
		t.Fatalf("total weight after GGQ collapse = %v, want %v", total, want)
	}
}

// TestRunWithConditionClipsSurface exercises Phase 3: a boundary-condition
// surface equal to the cube itself must produce non-empty per-cell clips
// accumulated into ConditionMeshes[0].
func TestRunWithConditionClipsSurface(t *testing.T) {
	cfg := baseConfig()
	cond := unitCubeMesh()
	d := NewDriver(cfg, unitCubeMesh(), []*mesh.Mesh{cond})
	d.Run()

	if len(d.ConditionMeshes) != 1 {
		t.Fatalf("expected 1 condition mesh, got %d", len(d.ConditionMeshes))
	}
	if len(d.ConditionMeshes[0].Tris) == 0 {
		t.Fatalf("expected condition 0's accumulated mesh to contain triangles")
	}
}
