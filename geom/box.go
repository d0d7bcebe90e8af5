// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import "math"

// Box is an axis-aligned bounding box with Lo <= Hi componentwise. The zero
// value is not a valid Box; use NewBox or Empty.
type Box struct {
	Lo, Hi Vec3
}

// NewBox returns the box with the given corners, fixing the ordering so
// Lo <= Hi componentwise regardless of the order the corners are given in
func NewBox(a, b Vec3) Box {
	return Box{Lo: Min(a, b), Hi: Max(a, b)}
}

// Empty returns a box that contains no points (Lo > Hi), suitable as the
// identity element for Union accumulation
func Empty() Box {
	inf := math.Inf(1)
	return Box{Lo: Vec3{inf, inf, inf}, Hi: Vec3{-inf, -inf, -inf}}
}

// IsEmpty reports whether the box is the empty box (degenerate or
// never-unioned-into)
func (b Box) IsEmpty() bool {
	return b.Lo.X > b.Hi.X || b.Lo.Y > b.Hi.Y || b.Lo.Z > b.Hi.Z
}

// Union returns the smallest box containing both b and o
func (b Box) Union(o Box) Box {
	if b.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return b
	}
	return Box{Lo: Min(b.Lo, o.Lo), Hi: Max(b.Hi, o.Hi)}
}

// ExpandPoint grows the box (if needed) to include p
func (b Box) ExpandPoint(p Vec3) Box {
	return b.Union(Box{Lo: p, Hi: p})
}

// Expand returns b grown by margin d on every side
func (b Box) Expand(d float64) Box {
	m := Vec3{d, d, d}
	return Box{Lo: b.Lo.Sub(m), Hi: b.Hi.Add(m)}
}

// Shrink returns b shrunk by margin d on every side; may become empty
func (b Box) Shrink(d float64) Box {
	return b.Expand(-d)
}

// Center returns the box's centroid
func (b Box) Center() Vec3 {
	return b.Lo.Add(b.Hi).Scale(0.5)
}

// Extent returns Hi-Lo componentwise
func (b Box) Extent() Vec3 {
	return b.Hi.Sub(b.Lo)
}

// Volume returns the box's volume; zero if empty
func (b Box) Volume() float64 {
	if b.IsEmpty() {
		return 0
	}
	e := b.Extent()
	return e.X * e.Y * e.Z
}

// LongestAxis returns the index (0=x,1=y,2=z) of the box's longest edge
func (b Box) LongestAxis() int {
	e := b.Extent()
	axis := 0
	longest := e.X
	if e.Y > longest {
		axis, longest = 1, e.Y
	}
	if e.Z > longest {
		axis = 2
	}
	return axis
}

// Contains reports whether p lies within the box (inclusive of the boundary)
func (b Box) Contains(p Vec3) bool {
	return p.X >= b.Lo.X && p.X <= b.Hi.X &&
		p.Y >= b.Lo.Y && p.Y <= b.Hi.Y &&
		p.Z >= b.Lo.Z && p.Z <= b.Hi.Z
}

// Overlaps reports whether b and o share any point (touching counts as an
// overlap)
func (b Box) Overlaps(o Box) bool {
	return b.Lo.X <= o.Hi.X && b.Hi.X >= o.Lo.X &&
		b.Lo.Y <= o.Hi.Y && b.Hi.Y >= o.Lo.Y &&
		b.Lo.Z <= o.Hi.Z && b.Hi.Z >= o.Lo.Z
}
