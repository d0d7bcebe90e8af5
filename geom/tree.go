// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import (
	"sort"

	"github.com/cpmech/gosl/chk"
)

// TriangleSource is the minimal view of a triangle mesh the BVH tree needs
// to build itself and answer queries. mesh.Mesh implements it; geom stays
// independent of the mesh package's representation to avoid a cyclic import
// (mesh → geom for Vec3/Box, geom → mesh would close the cycle).
type TriangleSource interface {
	NumTriangles() int
	TriangleVerts(i int) (a, b, c Vec3)
	TriangleNormal(i int) Vec3
}

// node is a BVH tree node: an internal node has Left/Right >= 0 and
// Leaf == -1; a leaf has Leaf == the triangle id and Left == Right == -1
type node struct {
	Box         Box
	Left, Right int
	Leaf        int
}

// Tree is an immutable bounding-volume hierarchy over a triangle mesh's
// faces, built once and queried many times
type Tree struct {
	src   TriangleSource
	nodes []node
	root  int
}

// Build constructs the tree by recursively splitting triangle centroids
// along the parent box's longest axis at the median, stopping at one
// triangle per leaf: O(n log n), immutable after build
func Build(src TriangleSource) *Tree {
	n := src.NumTriangles()
	t := &Tree{src: src}
	if n == 0 {
		t.root = -1
		return t
	}
	ids := make([]int, n)
	boxes := make([]Box, n)
	for i := 0; i < n; i++ {
		ids[i] = i
		a, b, c := src.TriangleVerts(i)
		boxes[i] = NewBox(a, b).Union(Box{Lo: c, Hi: c})
	}
	t.root = t.build(ids, boxes)
	return t
}

func triBox(boxes []Box, id int) Box { return boxes[id] }

func (t *Tree) build(ids []int, boxes []Box) int {
	union := Empty()
	for _, id := range ids {
		union = union.Union(triBox(boxes, id))
	}
	if len(ids) == 1 {
		t.nodes = append(t.nodes, node{Box: union, Left: -1, Right: -1, Leaf: ids[0]})
		return len(t.nodes) - 1
	}

	axis := union.LongestAxis()
	centroid := func(id int) float64 {
		b := triBox(boxes, id)
		return b.Center().Component(axis)
	}
	sorted := make([]int, len(ids))
	copy(sorted, ids)
	sort.Slice(sorted, func(i, j int) bool { return centroid(sorted[i]) < centroid(sorted[j]) })
	mid := len(sorted) / 2

	leftIdx := t.build(sorted[:mid], boxes)
	rightIdx := t.build(sorted[mid:], boxes)
	t.nodes = append(t.nodes, node{Box: union, Left: leftIdx, Right: rightIdx, Leaf: -1})
	return len(t.nodes) - 1
}

// Bounds returns the tree's overall bounding box (the root node's box), or
// the empty box if the tree has no triangles
func (t *Tree) Bounds() Box {
	if t.root < 0 {
		return Empty()
	}
	return t.nodes[t.root].Box
}

// Intersect returns the (unordered, deduplicated) set of triangle ids whose
// boxes the ray enters
func (t *Tree) Intersect(r Ray) []int {
	if t.root < 0 {
		return nil
	}
	var out []int
	t.walkRay(t.root, r, &out)
	return out
}

func (t *Tree) walkRay(idx int, r Ray, out *[]int) {
	nd := &t.nodes[idx]
	if !r.IntersectBox(nd.Box) {
		return
	}
	if nd.Leaf >= 0 {
		*out = append(*out, nd.Leaf)
		return
	}
	t.walkRay(nd.Left, r, out)
	t.walkRay(nd.Right, r, out)
}

// OverlapBox returns the (unordered, deduplicated) set of triangle ids whose
// boxes overlap b (used by the B-Rep cell classifier)
func (t *Tree) OverlapBox(b Box) []int {
	if t.root < 0 {
		return nil
	}
	var out []int
	t.walkBox(t.root, b, &out)
	return out
}

func (t *Tree) walkBox(idx int, b Box, out *[]int) {
	nd := &t.nodes[idx]
	if !nd.Box.Overlaps(b) {
		return
	}
	if nd.Leaf >= 0 {
		*out = append(*out, nd.Leaf)
		return
	}
	t.walkBox(nd.Left, b, out)
	t.walkBox(nd.Right, b, out)
}

// NumTriangles returns the number of triangles indexed by the tree
func (t *Tree) NumTriangles() int { return t.src.NumTriangles() }

// closestValidHit scans the candidate triangle ids along ray r and returns
// the smallest-t hit that is neither parallel nor a boundary graze. Whether
// any candidate was degenerate is reported back via anyDegenerate so the
// caller can decide whether to retry with a different ray direction.
func (t *Tree) closestValidHit(r Ray, ids []int) (bestID int, bestHit TriHit, found bool, anyDegenerate bool) {
	bestT := 1e300
	for _, id := range ids {
		a, b, c := t.src.TriangleVerts(id)
		n := t.src.TriangleNormal(id)
		hit, ok := r.IntersectTriangle(a, b, c, n)
		if !ok {
			if hit.Parallel {
				anyDegenerate = true
			}
			continue
		}
		if hit.OnBoundary() {
			anyDegenerate = true
			continue
		}
		if hit.T < bestT {
			bestT, bestID, bestHit, found = hit.T, id, hit, true
		}
	}
	return
}

// PointInside is the robust ray-casting inside/outside oracle: it casts a
// ray from p toward a candidate triangle's centroid and takes the
// back-facing flag of the closest valid hit as the answer, retrying with the next triangle's centroid as the target
// whenever the cast is degenerate (parallel, a boundary graze, or an empty
// candidate set), until a non-degenerate classification is reached or every
// triangle has been exhausted as a target, in which case p is classified
// Outside.
func (t *Tree) PointInside(p Vec3) bool {
	n := t.NumTriangles()
	if n == 0 || t.root < 0 {
		return false
	}
	for target := 0; target < n; target++ {
		a, b, c := t.src.TriangleVerts(target)
		centroid := a.Add(b).Add(c).Scale(1.0 / 3.0)
		dir := centroid.Sub(p)
		if dir.Norm() < 1e-300 {
			continue
		}
		r := NewRay(p, dir)
		ids := t.Intersect(r)
		if len(ids) == 0 {
			// an empty candidate set is itself a degenerate cast: retry
			// with the next target instead of treating it as fatal
			continue
		}
		id, hit, found, degenerate := t.closestValidHit(r, ids)
		if !found || degenerate {
			continue
		}
		if hit.T < EpsOrigin {
			// ray origin itself lies on a triangle: not strictly inside
			return false
		}
		_ = id
		return hit.BackFacing
	}
	return false
}

// assertValidLeaf panics if node idx is neither a leaf nor has any child
// set (a non-leaf node with no triangles). It is not called by Build or by
// any query.
func (t *Tree) assertValidLeaf(idx int) {
	nd := t.nodes[idx]
	if nd.Leaf < 0 && nd.Left < 0 && nd.Right < 0 {
		chk.Panic("geom: tree node %d is neither an internal node nor a leaf", idx)
	}
}
