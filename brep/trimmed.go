// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package brep

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/goimmerse/geom"
	"github.com/cpmech/goimmerse/mesh"
)

// TrimmedDomain owns the locally clipped-and-capped surface mesh of a
// single cell's intersection with the solid, plus its own AABB tree. It is
// owned exclusively by its cell's Element and never back-references it.
type TrimmedDomain struct {
	Mesh    *mesh.Mesh
	Tree    *geom.Tree
	CellBox geom.Box
}

// IsInside answers the inside/outside query using the local closed mesh's
// tree, with the same robust ray-casting scheme as the global oracle.
// Callers must ensure p lies within the owning cell's box.
func (d *TrimmedDomain) IsInside(p geom.Vec3) bool {
	return d.Tree.PointInside(p)
}

// Bounds returns the vertex-wise bounding box of the clipped+capped mesh,
// which can be strictly smaller than the owning cell's box
func (d *TrimmedDomain) Bounds() geom.Box {
	return d.Mesh.Bounds()
}

// Volume returns the enclosed interior volume of the trimmed domain
func (d *TrimmedDomain) Volume() float64 {
	return d.Mesh.SignedVolume()
}

// BoundaryIntegrationPoint is a surface quadrature point on the trimmed
// domain's boundary, used for Neumann/flux integrals and for the
// divergence-theorem moment assembly
type BoundaryIntegrationPoint struct {
	X      geom.Vec3
	Weight float64
	Normal geom.Vec3
}

// BuildTrimmedDomain runs ClipMesh(box), closed by synthesizing cap
// polygons on each of the six cell faces from the tagged edges. A cell is
// rejected (nil, nil) if the interior volume is below MinVolumeRatio*|box|,
// or if cap assembly fails and NeglectFlawed is set; otherwise a
// cap-assembly failure is fatal.
func (o *BRep) BuildTrimmedDomain(box geom.Box) (*TrimmedDomain, error) {
	clipped := o.ClipMesh(box)
	if len(clipped.Tris) == 0 {
		return nil, nil // nothing of the surface passes through this box
	}

	if err := assembleCaps(clipped, box); err != nil {
		if o.NeglectFlawed {
			return nil, nil
		}
		chk.Panic("brep: %v", err)
	}

	if boundary := clipped.CheckClosed(); boundary != 0 {
		if o.NeglectFlawed {
			return nil, nil
		}
		chk.Panic("brep: trimmed domain is not watertight after cap assembly (%d boundary edges)", boundary)
	}

	interior := clipped.SignedVolume()
	if interior < 0 {
		interior = -interior
	}
	if interior < o.MinVolumeRatio*box.Volume() {
		return nil, nil
	}

	return &TrimmedDomain{
		Mesh:    clipped,
		Tree:    geom.Build(clipped),
		CellBox: box,
	}, nil
}

// BoundaryPoints returns boundary quadrature points over every triangle of
// the trimmed domain's surface, using an n-point (3 or 6) Gauss rule per
// triangle. n must be 3 or 6.
func (d *TrimmedDomain) BoundaryPoints(n int) []BoundaryIntegrationPoint {
	rule := triGaussRule(n)
	var pts []BoundaryIntegrationPoint
	for i := range d.Mesh.Tris {
		a, b, c := d.Mesh.TriangleVerts(i)
		normal := d.Mesh.TriangleNormal(i)
		area2 := b.Sub(a).Cross(c.Sub(a)).Norm() // = 2*area
		for _, g := range rule {
			x := a.Scale(g.l1).Add(b.Scale(g.l2)).Add(c.Scale(g.l3))
			pts = append(pts, BoundaryIntegrationPoint{
				X:      x,
				Weight: g.w * area2 * 0.5,
				Normal: normal,
			})
		}
	}
	return pts
}

type triBary struct{ l1, l2, l3, w float64 }

// triGaussRule returns barycentric-coordinate Gauss rules for a reference
// triangle of unit area (weights sum to 1); n is 3 or 6.
func triGaussRule(n int) []triBary {
	if n == 6 {
		a, b := 0.091576213509771, 0.445948490915965
		wa, wb := 0.109951743655322, 0.223381589678011
		return []triBary{
			{a, a, 1 - 2*a, wa}, {a, 1 - 2*a, a, wa}, {1 - 2*a, a, a, wa},
			{b, b, 1 - 2*b, wb}, {b, 1 - 2*b, b, wb}, {1 - 2*b, b, b, wb},
		}
	}
	const t = 1.0 / 6.0
	return []triBary{
		{2.0 / 3.0, t, t, 1.0 / 3.0},
		{t, 2.0 / 3.0, t, 1.0 / 3.0},
		{t, t, 2.0 / 3.0, 1.0 / 3.0},
	}
}
