// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package mesh implements the triangle-mesh data structure shared by the
// global B-Rep surface and the per-cell trimmed-domain surfaces, plus STL
// loading/writing.
package mesh

import (
	"fmt"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/goimmerse/geom"
)

// SNAPTOL is the coordinate-snapping tolerance used to canonicalize
// repeated vertices produced by clipping or STL round-tripping
const SNAPTOL = 1e-9

// Triangle is a triple of indices into a Mesh's Verts slice
type Triangle struct {
	A, B, C int
}

// EdgeTag marks an edge of a clipped triangle as lying exactly on a face of
// the cell box it was clipped against, for later cap-assembly. V0, V1 are
// vertex indices (in winding order of the owning triangle); Face
// is the box face index (0=-x,1=+x,2=-y,3=+y,4=-z,5=+z); Normal is the
// owning triangle's normal, used to orient the assembled cap loop.
type EdgeTag struct {
	V0, V1 int
	Face   int
	Normal geom.Vec3
}

// Mesh is a closed (or, for clipped fragments, open-with-tagged-edges)
// triangle surface: a dense vertex array, triangle index triples, and
// per-triangle outward unit normals
type Mesh struct {
	Verts    []geom.Vec3
	Tris     []Triangle
	Normals  []geom.Vec3
	EdgeTags []EdgeTag
}

// New returns an empty mesh
func New() *Mesh { return &Mesh{} }

// NumTriangles implements geom.TriangleSource
func (m *Mesh) NumTriangles() int { return len(m.Tris) }

// TriangleVerts implements geom.TriangleSource
func (m *Mesh) TriangleVerts(i int) (a, b, c geom.Vec3) {
	t := m.Tris[i]
	return m.Verts[t.A], m.Verts[t.B], m.Verts[t.C]
}

// TriangleNormal implements geom.TriangleSource
func (m *Mesh) TriangleNormal(i int) geom.Vec3 { return m.Normals[i] }

// TriangleArea returns the area of triangle i
func (m *Mesh) TriangleArea(i int) float64 {
	a, b, c := m.TriangleVerts(i)
	return b.Sub(a).Cross(c.Sub(a)).Norm() * 0.5
}

// Bounds returns the vertex-wise bounding box of the mesh
func (m *Mesh) Bounds() geom.Box {
	box := geom.Empty()
	for _, v := range m.Verts {
		box = box.ExpandPoint(v)
	}
	return box
}

// AddVertex appends a vertex and returns its index
func (m *Mesh) AddVertex(p geom.Vec3) int {
	m.Verts = append(m.Verts, p)
	return len(m.Verts) - 1
}

// AddTriangle appends a triangle with an explicit normal. If normal has
// (numerically) zero length it is recomputed from the two longest edges of
// the triangle.
func (m *Mesh) AddTriangle(a, b, c int, normal geom.Vec3) {
	if normal.Norm() < 1e-12 {
		normal = recomputeNormal(m.Verts[a], m.Verts[b], m.Verts[c])
	}
	m.Tris = append(m.Tris, Triangle{a, b, c})
	m.Normals = append(m.Normals, normal.Normalized())
}

// recomputeNormal rebuilds a unit normal from the cross product of the two
// longest edges incident to a common vertex, oriented to follow the
// triangle's a->b->c winding
func recomputeNormal(a, b, c geom.Vec3) geom.Vec3 {
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	e3 := c.Sub(b)
	lens := [3]float64{e1.Norm(), e2.Norm(), e3.Norm()}
	longest, second := 0, 1
	if lens[1] > lens[longest] {
		longest, second = 1, 0
	}
	if lens[2] > lens[longest] {
		second = longest
		longest = 2
	} else if lens[2] > lens[second] {
		second = 2
	}
	edges := [3]geom.Vec3{e1, e2, e3}
	n := edges[longest].Cross(edges[second])
	if n.Dot(e1.Cross(e2)) < 0 {
		n = n.Scale(-1)
	}
	if n.Norm() < 1e-300 {
		return geom.Vec3{0, 0, 1} // fully degenerate (collinear) triangle
	}
	return n.Normalized()
}

// snapKey quantizes a coordinate to SNAPTOL for use as a map key
func snapKey(p geom.Vec3) string {
	q := func(x float64) int64 { return int64(x / SNAPTOL) }
	return fmt.Sprintf("%d:%d:%d", q(p.X), q(p.Y), q(p.Z))
}

// VertexSnapper canonicalizes repeated vertices (within SNAPTOL) to a single
// index as they are added, so downstream edge-loop assembly sees a
// watertight index graph
type VertexSnapper struct {
	mesh  *Mesh
	index map[string]int
}

// NewVertexSnapper wraps mesh m with a coordinate-snapping vertex map
func NewVertexSnapper(m *Mesh) *VertexSnapper {
	return &VertexSnapper{mesh: m, index: make(map[string]int)}
}

// Add returns the index of p, reusing an existing (within-tolerance) vertex
// if one was already added through this snapper
func (s *VertexSnapper) Add(p geom.Vec3) int {
	key := snapKey(p)
	if id, ok := s.index[key]; ok {
		return id
	}
	id := s.mesh.AddVertex(p)
	s.index[key] = id
	return id
}

// SignedVolume returns the volume enclosed by a closed, outward-oriented
// mesh via the divergence theorem: V = (1/6)*sum(v0 . (v1 x v2)). The
// result is independent of the coordinate origin for any closed surface.
func (m *Mesh) SignedVolume() float64 {
	sum := 0.0
	for _, t := range m.Tris {
		a, b, c := m.Verts[t.A], m.Verts[t.B], m.Verts[t.C]
		sum += a.Dot(b.Cross(c))
	}
	return sum / 6
}

// CheckClosed verifies, for meshes expected to be watertight, that every
// edge is shared by exactly two triangles; edges are compared without
// direction, so the winding of the two triangles is not checked. It
// returns the number of boundary (non-manifold) edges found; zero means
// closed. Used by BuildTrimmedDomain's cap-closure check.
func (m *Mesh) CheckClosed() int {
	type edgeKey struct{ lo, hi int }
	count := map[edgeKey]int{}
	for _, t := range m.Tris {
		for _, e := range [3][2]int{{t.A, t.B}, {t.B, t.C}, {t.C, t.A}} {
			k := edgeKey{e[0], e[1]}
			if k.lo > k.hi {
				k.lo, k.hi = k.hi, k.lo
			}
			count[k]++
		}
	}
	boundary := 0
	for _, n := range count {
		if n != 2 {
			boundary++
		}
	}
	return boundary
}

// mustUnit panics (invariant violation) if n is not within tol of unit
// length; nothing in the module calls it
func mustUnit(n geom.Vec3, tol float64) {
	l := n.Norm()
	if l < 1-tol || l > 1+tol {
		chk.Panic("mesh: normal is not unit length: |n|=%v", l)
	}
}
