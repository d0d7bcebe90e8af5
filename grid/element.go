// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import (
	"github.com/cpmech/goimmerse/brep"
	"github.com/cpmech/goimmerse/geom"
)

// IntegrationPoint is an interior quadrature point: a physical position and
// a strictly-positive weight once published
type IntegrationPoint struct {
	X      geom.Vec3
	Weight float64
}

// Element is a single grid cell: its id, physical and parametric boxes, its
// classification, and (if Trimmed) its owned TrimmedDomain. An Element is
// mutated only by the worker building it until it is published into an
// ElementContainer.
type Element struct {
	ID          int
	Physical    geom.Box
	Parametric  geom.Box
	IsTrimmed   bool
	Points      []IntegrationPoint
	Domain      *brep.TrimmedDomain // non-nil iff IsTrimmed
	BoundaryPts []brep.BoundaryIntegrationPoint
}

// Volume returns the sum of the element's published quadrature weights
// (an estimate of Vol(B ∩ solid) once the Jacobian has been folded in by
// the moment-fitting stage)
func (e *Element) Volume() float64 {
	sum := 0.0
	for _, p := range e.Points {
		sum += p.Weight
	}
	return sum
}
