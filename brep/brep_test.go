// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package brep

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/goimmerse/geom"
	meshpkg "github.com/cpmech/goimmerse/mesh"
)

// unitCubeMesh builds a closed, outward-oriented triangle mesh of the cube
// [-1,1]^3
func unitCubeMesh() *meshpkg.Mesh {
	m := meshpkg.New()
	v := []geom.Vec3{
		{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
		{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
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
		{[4]int{0, 3, 2, 1}, geom.Vec3{0, 0, -1}},
		{[4]int{4, 5, 6, 7}, geom.Vec3{0, 0, 1}},
		{[4]int{0, 1, 5, 4}, geom.Vec3{0, -1, 0}},
		{[4]int{2, 3, 7, 6}, geom.Vec3{0, 1, 0}},
		{[4]int{0, 4, 7, 3}, geom.Vec3{-1, 0, 0}},
		{[4]int{1, 2, 6, 5}, geom.Vec3{1, 0, 0}},
	}
	for _, f := range faces {
		a, b, c, d := ids[f.idx[0]], ids[f.idx[1]], ids[f.idx[2]], ids[f.idx[3]]
		m.AddTriangle(a, b, c, f.n)
		m.AddTriangle(a, c, d, f.n)
	}
	return m
}

func TestClassifyCell(t *testing.T) {
	chk.PrintTitle("ClassifyCell")
	b := New(unitCubeMesh(), 0, 0.01, true)

	inside := geom.Box{Lo: geom.Vec3{-0.5, -0.5, -0.5}, Hi: geom.Vec3{0.5, 0.5, 0.5}}
	if s := b.ClassifyCell(inside); s != Inside {
		t.Fatalf("expected Inside, got %v", s)
	}

	outside := geom.Box{Lo: geom.Vec3{2, 2, 2}, Hi: geom.Vec3{3, 3, 3}}
	if s := b.ClassifyCell(outside); s != Outside {
		t.Fatalf("expected Outside, got %v", s)
	}

	trimmed := geom.Box{Lo: geom.Vec3{-2, -2, -2}, Hi: geom.Vec3{0, 2, 2}}
	if s := b.ClassifyCell(trimmed); s != Trimmed {
		t.Fatalf("expected Trimmed, got %v", s)
	}
}

func TestBuildTrimmedDomainHalfCube(t *testing.T) {
	chk.PrintTitle("BuildTrimmedDomainHalfCube")
	b := New(unitCubeMesh(), 0, 0.001, true)
	box := geom.Box{Lo: geom.Vec3{-2, -2, -2}, Hi: geom.Vec3{0, 2, 2}}

	td, err := b.BuildTrimmedDomain(box)
	if err != nil {
		t.Fatalf("BuildTrimmedDomain error: %v", err)
	}
	if td == nil {
		t.Fatalf("expected a trimmed domain, got nil (rejected)")
	}
	if bnd := td.Mesh.CheckClosed(); bnd != 0 {
		t.Fatalf("trimmed domain not watertight: %d boundary edges", bnd)
	}

	want := 1.0 * 2.0 * 2.0 // [-1,0]x[-1,1]x[-1,1]
	got := math.Abs(td.Volume())
	if math.Abs(got-want)/want > 1e-9 {
		t.Fatalf("trimmed volume = %v, want %v", got, want)
	}

	// an interior point of the trimmed half must be reported inside by both
	// the trimmed-domain oracle and the global oracle
	p := geom.Vec3{-0.5, 0, 0}
	if !td.IsInside(p) {
		t.Fatalf("expected trimmed-domain IsInside(%v) = true", p)
	}
	if !b.IsInside(p) {
		t.Fatalf("expected global IsInside(%v) = true", p)
	}
}

func TestBuildTrimmedDomainRejectsSliver(t *testing.T) {
	b := New(unitCubeMesh(), 0, 0.5, true)
	// a sliver box: mostly outside the cube, tiny overlap
	box := geom.Box{Lo: geom.Vec3{0.99, -2, -2}, Hi: geom.Vec3{2, 2, 2}}
	td, err := b.BuildTrimmedDomain(box)
	if err != nil {
		t.Fatalf("BuildTrimmedDomain error: %v", err)
	}
	if td != nil {
		t.Fatalf("expected sliver cell to be rejected by min_element_volume_ratio")
	}
}

func TestIsInsideOutsideCubeBoundary(t *testing.T) {
	b := New(unitCubeMesh(), 0, 0.01, true)
	// exactly on a face must not be strictly inside
	if b.IsInside(geom.Vec3{1, 0, 0}) {
		t.Fatalf("point on cube face reported strictly inside")
	}
}
