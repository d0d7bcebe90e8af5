// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import "math"

// tolerances used by the ray-casting and triangle-intersection primitives;
// kept as compile-time constants since they are never tuned at runtime
const (
	// EpsParallel is the tolerance on |dir・n|/|dir| below which a ray is
	// declared parallel to a triangle's plane
	EpsParallel = 1e-10

	// EpsBary is the tolerance used when comparing barycentric coordinates
	// u, v, 1-u-v against 0 and 1 to detect a boundary graze
	EpsBary = 1e-10

	// EpsOrigin is the tolerance on the ray parameter t below which the ray
	// origin is considered to lie on the hit triangle
	EpsOrigin = 1e-10
)

// Ray is a parametric ray Origin + t*Dir, t >= 0. InvDir is precomputed for
// the slab box test; components of Dir that are exactly zero map to +Inf in
// InvDir so the slab test degenerates correctly.
type Ray struct {
	Origin, Dir Vec3
	InvDir      Vec3
}

// NewRay builds a Ray from an origin and a (not necessarily unit) direction.
// Dir must be non-zero.
func NewRay(origin, dir Vec3) Ray {
	return Ray{Origin: origin, Dir: dir, InvDir: invComponents(dir)}
}

func invComponents(d Vec3) Vec3 {
	return Vec3{safeInv(d.X), safeInv(d.Y), safeInv(d.Z)}
}

func safeInv(x float64) float64 {
	if x == 0 {
		return math.Inf(1)
	}
	return 1 / x
}

// IntersectBox runs the slab algorithm and reports whether the ray (for
// t in [0, +Inf)) crosses box b
func (r Ray) IntersectBox(b Box) bool {
	tmin, tmax := 0.0, math.Inf(1)
	lo := [3]float64{b.Lo.X, b.Lo.Y, b.Lo.Z}
	hi := [3]float64{b.Hi.X, b.Hi.Y, b.Hi.Z}
	org := [3]float64{r.Origin.X, r.Origin.Y, r.Origin.Z}
	inv := [3]float64{r.InvDir.X, r.InvDir.Y, r.InvDir.Z}
	for axis := 0; axis < 3; axis++ {
		t1 := (lo[axis] - org[axis]) * inv[axis]
		t2 := (hi[axis] - org[axis]) * inv[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return false
		}
	}
	return true
}

// TriHit holds the result of a ray-triangle intersection test
type TriHit struct {
	T, U, V    float64 // ray parameter and barycentric coordinates
	BackFacing bool    // dir・n > 0
	Parallel   bool    // ray (nearly) parallel to the triangle's plane
}

// OnBoundary reports whether the hit's barycentric coordinates place it
// within EpsBary of one of the triangle's three edges
func (h TriHit) OnBoundary() bool {
	w := 1 - h.U - h.V
	return h.U < EpsBary || h.V < EpsBary || w < EpsBary ||
		h.U > 1-EpsBary || h.V > 1-EpsBary || w > 1-EpsBary
}

// IntersectTriangle implements the Möller-Trumbore ray-triangle test.
// normal is the triangle's (outward) unit normal, used only to classify
// back-facing hits; the geometric intersection does not depend on its sign.
func (r Ray) IntersectTriangle(a, b, c, normal Vec3) (hit TriHit, ok bool) {
	edge1 := b.Sub(a)
	edge2 := c.Sub(a)
	pvec := r.Dir.Cross(edge2)
	det := edge1.Dot(pvec)

	dirLen := r.Dir.Norm()
	if dirLen < 1e-300 {
		hit.Parallel = true
		return hit, false
	}

	// det = edge1 . (dir x edge2) = -dir . (edge1 x edge2), and
	// |edge1 x edge2| = 2*area, so |det|/(dirLen*2*area) = |dir.n|/|dir|
	// = |cos(theta)| between the ray and the triangle's normal: dividing
	// by dirLen alone is not scale-invariant across triangles of different
	// area, so the cross-product norm is divided out as well.
	areaNorm := edge1.Cross(edge2).Norm()
	if areaNorm < 1e-300 {
		hit.Parallel = true
		return hit, false
	}
	if math.Abs(det)/(dirLen*areaNorm) < EpsParallel {
		hit.Parallel = true
		return hit, false
	}

	invDet := 1 / det
	tvec := r.Origin.Sub(a)
	u := tvec.Dot(pvec) * invDet
	qvec := tvec.Cross(edge1)
	v := r.Dir.Dot(qvec) * invDet
	t := edge2.Dot(qvec) * invDet

	if u < -EpsBary || u > 1+EpsBary || v < -EpsBary || u+v > 1+EpsBary {
		return hit, false
	}
	if t < 0 {
		return hit, false
	}

	hit.T, hit.U, hit.V = t, u, v
	hit.BackFacing = r.Dir.Dot(normal) > 0
	return hit, true
}
