// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import "sync"

// ElementContainer is a dense-index -> owned Element map: at most one entry
// per grid index, absent meaning Outside. It grows monotonically during a
// run and is write-locked on publish under a single coarse mutex: moving a
// pointer into the map is short enough that lock contention stays minor,
// so no sharding or striping is used.
type ElementContainer struct {
	Dims Dims

	mu    sync.Mutex
	elems map[int]*Element
}

// NewElementContainer returns an empty container sized for the given grid
func NewElementContainer(dims Dims) *ElementContainer {
	return &ElementContainer{Dims: dims, elems: make(map[int]*Element)}
}

// Publish inserts (or replaces) the element at its own ID. This is the only
// cross-worker interaction point in the pipeline driver.
func (c *ElementContainer) Publish(e *Element) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.elems[e.ID] = e
}

// Get returns the element at index id, or (nil, false) if absent (Outside)
func (c *ElementContainer) Get(id int) (*Element, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.elems[id]
	return e, ok
}

// Len returns the number of published (active) elements
func (c *ElementContainer) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.elems)
}

// Each calls fn once per active element, in ascending index order. Callers
// must only use Each after the driver's write phase has joined: reads from
// the container are not safe to interleave with concurrent Publish calls.
func (c *ElementContainer) Each(fn func(*Element)) {
	ids := make([]int, 0, len(c.elems))
	for id := range c.elems {
		ids = append(ids, id)
	}
	sortInts(ids)
	for _, id := range ids {
		fn(c.elems[id])
	}
}

func sortInts(a []int) {
	for i := 1; i < len(a); i++ {
		for j := i; j > 0 && a[j-1] > a[j]; j-- {
			a[j-1], a[j] = a[j], a[j-1]
		}
	}
}

// Axis names a grid direction for the neighbor walks
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// step returns the (di,dj,dk) unit step for walking axis a in direction
// dir (+1 or -1)
func step(a Axis, dir int) (di, dj, dk int) {
	switch a {
	case AxisX:
		return dir, 0, 0
	case AxisY:
		return 0, dir, 0
	default:
		return 0, 0, dir
	}
}

// Walk implements the six directional neighbor walks:
// Next[+-X/+-Y/+-Z](id) -> (neighborID, found, localEnd). localEnd is true
// when the walk would cross the grid boundary along axis a (regardless of
// whether a neighbor element is actually active there); found is true only
// when the neighbor index has a published Element.
func (c *ElementContainer) Walk(id int, a Axis, dir int) (neighborID int, found bool, localEnd bool) {
	i, j, k := c.Dims.Coords(id)
	di, dj, dk := step(a, dir)
	ni, nj, nk := i+di, j+dj, k+dk
	if !c.Dims.InBounds(ni, nj, nk) {
		return -1, false, true
	}
	neighborID = c.Dims.Index(ni, nj, nk)
	_, found = c.Get(neighborID)
	return neighborID, found, false
}

// NextX, NextY, NextZ and their negative counterparts are thin wrappers
// around Walk giving each direction its own named operation.
func (c *ElementContainer) NextX(id int) (int, bool, bool)  { return c.Walk(id, AxisX, +1) }
func (c *ElementContainer) PrevX(id int) (int, bool, bool)  { return c.Walk(id, AxisX, -1) }
func (c *ElementContainer) NextY(id int) (int, bool, bool)  { return c.Walk(id, AxisY, +1) }
func (c *ElementContainer) PrevY(id int) (int, bool, bool)  { return c.Walk(id, AxisY, -1) }
func (c *ElementContainer) NextZ(id int) (int, bool, bool)  { return c.Walk(id, AxisZ, +1) }
func (c *ElementContainer) PrevZ(id int) (int, bool, bool)  { return c.Walk(id, AxisZ, -1) }
