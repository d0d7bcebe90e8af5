// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ggq implements the generalized-Gaussian reduced-rule assembler
// (integration_method GGQ_Optimal/GGQ_Reduced1/GGQ_Reduced2): it walks
// contiguous runs of active cells along a grid axis via
// grid.ElementContainer's neighbor-walk interface and collapses their
// per-cell Gauss points into a smaller rule with matching moments.
package ggq

import "github.com/cpmech/goimmerse/grid"

// Strip is a contiguous run of active (published) elements along one grid
// axis, built by repeated grid.ElementContainer.Next[X/Y/Z] calls until
// local_end.
type Strip struct {
	Axis     grid.Axis
	Elements []*grid.Element
}

// BuildStrip walks forward from startID along axis until the grid boundary
// or a gap (an inactive neighbor index) is reached, collecting every active
// element encountered including the start element itself.
func BuildStrip(c *grid.ElementContainer, startID int, axis grid.Axis) *Strip {
	start, ok := c.Get(startID)
	if !ok {
		return &Strip{Axis: axis}
	}
	elems := []*grid.Element{start}
	id := startID
	for {
		nb, found, localEnd := c.Walk(id, axis, +1)
		if localEnd || !found {
			break
		}
		e, ok := c.Get(nb)
		if !ok {
			break
		}
		elems = append(elems, e)
		id = nb
	}
	return &Strip{Axis: axis, Elements: elems}
}

// Len returns the number of elements in the strip.
func (s *Strip) Len() int { return len(s.Elements) }
