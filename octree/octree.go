// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package octree implements the octree seeder: it refines a trimmed
// domain's bounding box into sub-boxes whose centers fall inside the
// domain, then places a tensor Gauss rule per kept leaf to seed candidate
// interior quadrature points for the moment-fitting stage.
package octree

import (
	"github.com/cpmech/goimmerse/geom"
	"github.com/cpmech/goimmerse/quad"
)

// insideOracle is the minimal interface octree needs from a trimmed domain
// (brep.TrimmedDomain satisfies it); kept narrow to avoid octree depending
// on brep's full package surface
type insideOracle interface {
	IsInside(p geom.Vec3) bool
}

// octants splits box into its 8 child octants about its center
func octants(box geom.Box) [8]geom.Box {
	c := box.Center()
	lo, hi := box.Lo, box.Hi
	var out [8]geom.Box
	n := 0
	for _, xr := range [2][2]float64{{lo.X, c.X}, {c.X, hi.X}} {
		for _, yr := range [2][2]float64{{lo.Y, c.Y}, {c.Y, hi.Y}} {
			for _, zr := range [2][2]float64{{lo.Z, c.Z}, {c.Z, hi.Z}} {
				out[n] = geom.Box{
					Lo: geom.Vec3{X: xr[0], Y: yr[0], Z: zr[0]},
					Hi: geom.Vec3{X: xr[1], Y: yr[1], Z: zr[1]},
				}
				n++
			}
		}
	}
	return out
}

// collectLeaves recursively subdivides box to the given depth, discarding
// any node (at any level) whose center falls outside the domain, and
// returns the boxes of the kept leaves
func collectLeaves(box geom.Box, dom insideOracle, depth int) []geom.Box {
	if !dom.IsInside(box.Center()) {
		return nil
	}
	if depth == 0 {
		return []geom.Box{box}
	}
	var out []geom.Box
	for _, child := range octants(box) {
		out = append(out, collectLeaves(child, dom, depth-1)...)
	}
	return out
}

// Config bundles the octree seeding parameters
type Config struct {
	Pu, Pv, Pw          int // polynomial order per axis
	DistributionFactor  int // init_point_distribution_factor
	MaxDepth            int
}

// targetCount returns min_points = (pu+1)(pv+1)(pw+1)*distribution_factor
func (c Config) targetCount() int {
	return (c.Pu + 1) * (c.Pv + 1) * (c.Pw + 1) * c.DistributionFactor
}

// Seed implements the seeding algorithm end to end: refinement level
// increases by 1 until the yield meets the target point count or MaxDepth
// is reached, then
// a tensor Gauss-Legendre rule of order (Pu+1,Pv+1,Pw+1) is placed per kept
// leaf and only points with IsInside true are emitted.
func Seed(dom insideOracle, box geom.Box, cfg Config) []quad.Point {
	target := cfg.targetCount()
	var pts []quad.Point
	for depth := 0; depth <= cfg.MaxDepth; depth++ {
		leaves := collectLeaves(box, dom, depth)
		pts = seedLeaves(dom, leaves, cfg)
		if len(pts) >= target {
			break
		}
	}
	return pts
}

func seedLeaves(dom insideOracle, leaves []geom.Box, cfg Config) []quad.Point {
	var pts []quad.Point
	for _, leaf := range leaves {
		for _, p := range quad.TensorGaussRule(leaf, cfg.Pu, cfg.Pv, cfg.Pw) {
			if dom.IsInside(p.X) {
				pts = append(pts, p)
			}
		}
	}
	return pts
}
