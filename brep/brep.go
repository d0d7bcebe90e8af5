// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package brep implements the B-Rep operator: the façade combining the
// surface's AABB tree and triangle mesh into the cell classifier, the cell
// clipper, and the trimmed-domain builder.
package brep

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/goimmerse/geom"
	"github.com/cpmech/goimmerse/mesh"
)

// CellState is the classification of a grid cell against the solid
type CellState int

const (
	Outside CellState = iota
	Inside
	Trimmed
)

func (s CellState) String() string {
	switch s {
	case Inside:
		return "Inside"
	case Trimmed:
		return "Trimmed"
	default:
		return "Outside"
	}
}

// BRep is the inside/outside oracle and cell classifier built from a closed
// surface mesh. It exposes a small capability set: IsInside, ClassifyCell,
// ClipMesh, BuildTrimmedDomain.
type BRep struct {
	Mesh *mesh.Mesh
	Tree *geom.Tree

	// Tol shrinks a cell box inward before testing for overlap: touch-only
	// contact is not an intersection when Tol > 0
	Tol float64

	// MinVolumeRatio rejects trimmed cells whose interior measure is below
	// MinVolumeRatio * |B| (the rho parameter)
	MinVolumeRatio float64

	// NeglectFlawed: if true, a cell whose cap-loop assembly cannot close
	// is rejected (emitted empty) instead of treated as fatal
	NeglectFlawed bool
}

// New builds a BRep operator over m, constructing its AABB tree
func New(m *mesh.Mesh, tol, minVolumeRatio float64, neglectFlawed bool) *BRep {
	return &BRep{
		Mesh:           m,
		Tree:           geom.Build(m),
		Tol:            tol,
		MinVolumeRatio: minVolumeRatio,
		NeglectFlawed:  neglectFlawed,
	}
}

// IsInside reports whether p is strictly inside the solid
func (o *BRep) IsInside(p geom.Vec3) bool {
	return o.Tree.PointInside(p)
}

// ClassifyCell queries for triangles overlapping the (tolerance-shrunk)
// box; if any are found the cell is Trimmed; otherwise a single ray cast
// from the box center decides Inside vs Outside.
func (o *BRep) ClassifyCell(box geom.Box) CellState {
	probe := box.Shrink(o.Tol)
	if !probe.IsEmpty() {
		if ids := o.Tree.OverlapBox(probe); len(ids) > 0 {
			return Trimmed
		}
	} else {
		// degenerate (Tol shrank the box to nothing): fall back to the
		// un-shrunk box for the overlap probe
		if ids := o.Tree.OverlapBox(box); len(ids) > 0 {
			return Trimmed
		}
	}
	if o.IsInside(box.Center()) {
		return Inside
	}
	return Outside
}

// ClipMesh produces a triangle mesh of the surface restricted to box,
// clipping every overlapping triangle against the box's six half-spaces
// (Sutherland-Hodgman, fan-triangulated) and tagging edges that fall
// exactly on a face of the box
func (o *BRep) ClipMesh(box geom.Box) *mesh.Mesh {
	out := mesh.New()
	snap := mesh.NewVertexSnapper(out)
	ids := o.Tree.OverlapBox(box)
	for _, id := range ids {
		a, b, c := o.Mesh.TriangleVerts(id)
		n := o.Mesh.TriangleNormal(id)
		clipTriangleToBox(out, snap, a, b, c, n, box)
	}
	return out
}

// assertInvariant panics with the given fatal diagnostic when cond is false.
// Nothing in the module calls it.
func assertInvariant(cond bool, format string, args ...interface{}) {
	if !cond {
		chk.Panic(format, args...)
	}
}
