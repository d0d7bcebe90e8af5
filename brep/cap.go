// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package brep

import (
	"github.com/cpmech/goimmerse/geom"
	"github.com/cpmech/goimmerse/mesh"
)

// flawedCapError marks a cap-loop assembly failure: the caller decides
// whether this is a silent rejection (NeglectFlawed) or fatal.
type flawedCapError struct{ msg string }

func (e *flawedCapError) Error() string { return e.msg }

func flawed(msg string) error { return &flawedCapError{msg: msg} }

// assembleCaps closes clipped (the output of ClipMesh) by synthesizing cap
// polygons on each of the six faces of box from the tagged boundary edges,
// appending them (fan-triangulated) with the face's outward normal. It
// mutates clipped in place and returns an error if any face's edges cannot
// be assembled into closed loops.
func assembleCaps(clipped *mesh.Mesh, box geom.Box) error {
	for face := 0; face < 6; face++ {
		loops, err := buildLoops(clipped, face)
		if err != nil {
			return err
		}
		outward := FaceNormal(face)
		for _, loop := range loops {
			if polygonNormal(clipped, loop).Dot(outward) < 0 {
				reverse(loop)
			}
			fanTriangulate(clipped, loop, outward)
		}
	}
	return nil
}

// buildLoops chains the edges tagged with the given face into one or more
// closed vertex loops, by following V0->V1 adjacency
func buildLoops(m *mesh.Mesh, face int) ([][]int, error) {
	var edges []mesh.EdgeTag
	for _, e := range m.EdgeTags {
		if e.Face == face {
			edges = append(edges, e)
		}
	}
	if len(edges) == 0 {
		return nil, nil // no boundary on this face: nothing to cap
	}
	next := make(map[int]int, len(edges)) // V0 -> V1
	for _, e := range edges {
		next[e.V0] = e.V1
	}
	visited := make(map[int]bool, len(edges))
	var loops [][]int
	for _, e := range edges {
		if visited[e.V0] {
			continue
		}
		start := e.V0
		loop := []int{start}
		cur := start
		for {
			visited[cur] = true
			nxt, ok := next[cur]
			if !ok {
				return nil, flawed("brep: cap loop assembly on face did not close (dangling edge)")
			}
			if nxt == start {
				break
			}
			if visited[nxt] {
				return nil, flawed("brep: cap loop assembly found a non-simple loop")
			}
			loop = append(loop, nxt)
			cur = nxt
			if len(loop) > len(edges)+1 {
				return nil, flawed("brep: cap loop assembly did not terminate")
			}
		}
		loops = append(loops, loop)
	}
	return loops, nil
}

// polygonNormal returns the (non-unit) Newell's-method normal of a near-planar
// polygon loop; its sign encodes the winding direction.
func polygonNormal(m *mesh.Mesh, loop []int) geom.Vec3 {
	var normal geom.Vec3
	n := len(loop)
	for i := 0; i < n; i++ {
		cur := m.Verts[loop[i]]
		nxt := m.Verts[loop[(i+1)%n]]
		normal.X += (cur.Y - nxt.Y) * (cur.Z + nxt.Z)
		normal.Y += (cur.Z - nxt.Z) * (cur.X + nxt.X)
		normal.Z += (cur.X - nxt.X) * (cur.Y + nxt.Y)
	}
	return normal
}

func reverse(loop []int) {
	for i, j := 0, len(loop)-1; i < j; i, j = i+1, j-1 {
		loop[i], loop[j] = loop[j], loop[i]
	}
}

// fanTriangulate appends a fan triangulation of the (assumed simple,
// near-planar) loop to m, with the given outward normal
func fanTriangulate(m *mesh.Mesh, loop []int, normal geom.Vec3) {
	for i := 1; i < len(loop)-1; i++ {
		m.AddTriangle(loop[0], loop[i], loop[i+1], normal)
	}
}
