// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package brep

import (
	"github.com/cpmech/goimmerse/geom"
	"github.com/cpmech/goimmerse/mesh"
)

// face indices for a box, matching mesh.EdgeTag's documented convention
const (
	FaceNegX = 0
	FacePosX = 1
	FaceNegY = 2
	FacePosY = 3
	FaceNegZ = 4
	FacePosZ = 5
)

// FaceNormal returns the outward unit normal of box face f
func FaceNormal(f int) geom.Vec3 {
	switch f {
	case FaceNegX:
		return geom.Vec3{X: -1}
	case FacePosX:
		return geom.Vec3{X: 1}
	case FaceNegY:
		return geom.Vec3{Y: -1}
	case FacePosY:
		return geom.Vec3{Y: 1}
	case FaceNegZ:
		return geom.Vec3{Z: -1}
	default:
		return geom.Vec3{Z: 1}
	}
}

// clipPlane is one of the six half-space constraints of a box: keep points
// p such that sign*(p.Component(axis) - level) >= 0
type clipPlane struct {
	axis  int
	level float64
	sign  float64 // +1 for a lower bound (keep p >= level), -1 for an upper bound
	face  int
}

func boxPlanes(b geom.Box) [6]clipPlane {
	return [6]clipPlane{
		{axis: 0, level: b.Lo.X, sign: 1, face: FaceNegX},
		{axis: 0, level: b.Hi.X, sign: -1, face: FacePosX},
		{axis: 1, level: b.Lo.Y, sign: 1, face: FaceNegY},
		{axis: 1, level: b.Hi.Y, sign: -1, face: FacePosY},
		{axis: 2, level: b.Lo.Z, sign: 1, face: FaceNegZ},
		{axis: 2, level: b.Hi.Z, sign: -1, face: FacePosZ},
	}
}

func (pl clipPlane) signedDist(p geom.Vec3) float64 {
	return pl.sign * (p.Component(pl.axis) - pl.level)
}

// onPlaneTol is the tolerance used to decide whether a clipped polygon edge
// lies exactly on a cutting plane (and should therefore be tagged for cap
// assembly)
const onPlaneTol = 1e-9

// clipPolygonToBox runs Sutherland-Hodgman clipping of a (convex, planar)
// polygon against all six half-spaces of box b in sequence, returning the
// surviving polygon's vertices in order. The input polygon is a triangle's
// three vertices; the algorithm generalizes to any convex input.
func clipPolygonToBox(poly []geom.Vec3, b geom.Box) []geom.Vec3 {
	planes := boxPlanes(b)
	for _, pl := range planes {
		if len(poly) == 0 {
			break
		}
		poly = clipPolygonToPlane(poly, pl)
	}
	return poly
}

func clipPolygonToPlane(poly []geom.Vec3, pl clipPlane) []geom.Vec3 {
	n := len(poly)
	if n == 0 {
		return nil
	}
	var out []geom.Vec3
	for i := 0; i < n; i++ {
		cur := poly[i]
		prev := poly[(i-1+n)%n]
		curIn := pl.signedDist(cur) >= -1e-12
		prevIn := pl.signedDist(prev) >= -1e-12
		if curIn {
			if !prevIn {
				out = append(out, intersectEdgePlane(prev, cur, pl))
			}
			out = append(out, cur)
		} else if prevIn {
			out = append(out, intersectEdgePlane(prev, cur, pl))
		}
	}
	return out
}

func intersectEdgePlane(a, b geom.Vec3, pl clipPlane) geom.Vec3 {
	da := pl.signedDist(a)
	db := pl.signedDist(b)
	denom := da - db
	if denom == 0 {
		return a
	}
	t := da / denom
	return geom.Vec3{
		X: a.X + t*(b.X-a.X),
		Y: a.Y + t*(b.Y-a.Y),
		Z: a.Z + t*(b.Z-a.Z),
	}
}

// onFace reports whether p lies within onPlaneTol of box face f
func onFace(p geom.Vec3, b geom.Box, f int) bool {
	switch f {
	case FaceNegX:
		return absLess(p.X-b.Lo.X, onPlaneTol)
	case FacePosX:
		return absLess(p.X-b.Hi.X, onPlaneTol)
	case FaceNegY:
		return absLess(p.Y-b.Lo.Y, onPlaneTol)
	case FacePosY:
		return absLess(p.Y-b.Hi.Y, onPlaneTol)
	case FaceNegZ:
		return absLess(p.Z-b.Lo.Z, onPlaneTol)
	default:
		return absLess(p.Z-b.Hi.Z, onPlaneTol)
	}
}

func absLess(x, tol float64) bool {
	if x < 0 {
		x = -x
	}
	return x < tol
}

// clipTriangleToBox clips a single triangle against box b, fan-triangulates
// the result, and appends the fragments (and face-tagged boundary edges) to
// out via snap. normal is the source triangle's outward unit normal.
func clipTriangleToBox(out *mesh.Mesh, snap *mesh.VertexSnapper, a, b, c, normal geom.Vec3, box geom.Box) {
	poly := clipPolygonToBox([]geom.Vec3{a, b, c}, box)
	if len(poly) < 3 {
		return
	}
	ids := make([]int, len(poly))
	for i, p := range poly {
		ids[i] = snap.Add(p)
	}
	for i := 1; i < len(poly)-1; i++ {
		out.AddTriangle(ids[0], ids[i], ids[i+1], normal)
	}
	n := len(poly)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		for f := 0; f < 6; f++ {
			if onFace(poly[i], box, f) && onFace(poly[j], box, f) {
				out.EdgeTags = append(out.EdgeTags, mesh.EdgeTag{
					V0: ids[i], V1: ids[j], Face: f, Normal: normal,
				})
			}
		}
	}
}
