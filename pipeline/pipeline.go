// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package pipeline implements the three-phase cut-cell driver: cell
// classification, element construction with quadrature fitting, and
// boundary-condition surface clipping, run over a goroutine worker pool
// with dynamic (atomic-counter) scheduling rather than MPI rank
// partitioning.
package pipeline

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/goimmerse/brep"
	"github.com/cpmech/goimmerse/geom"
	"github.com/cpmech/goimmerse/ggq"
	"github.com/cpmech/goimmerse/grid"
	"github.com/cpmech/goimmerse/inp"
	"github.com/cpmech/goimmerse/mesh"
	"github.com/cpmech/goimmerse/moment"
	"github.com/cpmech/goimmerse/octree"
	"github.com/cpmech/goimmerse/quad"
)

// Driver owns the shared, worker-visible state of one run: the global solid
// oracle, the grid geometry, the resulting element container, and any
// boundary-condition surfaces.
type Driver struct {
	Cfg   *inp.Config
	Solid *brep.BRep
	Dims  grid.Dims

	PhysBox geom.Box // lower_bound_xyz .. upper_bound_xyz
	ParamBox geom.Box // lower_bound_uvw .. upper_bound_uvw

	Container  *grid.ElementContainer
	Conditions []*mesh.Mesh // optional boundary-condition surfaces (§6)

	// ConditionMeshes[i] accumulates condition i's per-cell clipped surface
	// (Phase 3); guarded by condMu.
	ConditionMeshes []*mesh.Mesh
	condMu          []sync.Mutex
}

// NewDriver builds a Driver from a configuration and an already-loaded
// primary solid mesh: a single STL file giving the solid's closed surface.
func NewDriver(cfg *inp.Config, solid *mesh.Mesh, conditions []*mesh.Mesh) *Driver {
	dims := grid.Dims{Nx: cfg.NumberOfElements.X, Ny: cfg.NumberOfElements.Y, Nz: cfg.NumberOfElements.Z}
	physBox := geom.NewBox(
		geom.Vec3{X: cfg.LowerBoundXYZ.X, Y: cfg.LowerBoundXYZ.Y, Z: cfg.LowerBoundXYZ.Z},
		geom.Vec3{X: cfg.UpperBoundXYZ.X, Y: cfg.UpperBoundXYZ.Y, Z: cfg.UpperBoundXYZ.Z},
	)
	paramBox := geom.NewBox(
		geom.Vec3{X: cfg.LowerBoundUVW.X, Y: cfg.LowerBoundUVW.Y, Z: cfg.LowerBoundUVW.Z},
		geom.Vec3{X: cfg.UpperBoundUVW.X, Y: cfg.UpperBoundUVW.Y, Z: cfg.UpperBoundUVW.Z},
	)
	d := &Driver{
		Cfg:             cfg,
		Solid:           brep.New(solid, 1e-12, cfg.MinElementVolumeRatio, cfg.NeglectElementsIfMeshFlawed),
		Dims:            dims,
		PhysBox:         physBox,
		ParamBox:        paramBox,
		Container:       grid.NewElementContainer(dims),
		Conditions:      conditions,
		ConditionMeshes: make([]*mesh.Mesh, len(conditions)),
		condMu:          make([]sync.Mutex, len(conditions)),
	}
	for i := range conditions {
		d.ConditionMeshes[i] = mesh.New()
	}
	return d
}

// cellBoxes returns a cell's physical and parametric boxes from its grid
// coordinates
func (d *Driver) cellBoxes(i, j, k int) (physical, parametric geom.Box) {
	pe := d.PhysBox.Extent()
	qe := d.ParamBox.Extent()
	cellExtent := func(e geom.Vec3) geom.Vec3 {
		nx, ny, nz := float64(d.Dims.Nx), float64(d.Dims.Ny), float64(d.Dims.Nz)
		return geom.Vec3{X: e.X / nx, Y: e.Y / ny, Z: e.Z / nz}
	}
	pc := cellExtent(pe)
	qc := cellExtent(qe)
	plo := geom.Vec3{
		X: d.PhysBox.Lo.X + float64(i)*pc.X,
		Y: d.PhysBox.Lo.Y + float64(j)*pc.Y,
		Z: d.PhysBox.Lo.Z + float64(k)*pc.Z,
	}
	qlo := geom.Vec3{
		X: d.ParamBox.Lo.X + float64(i)*qc.X,
		Y: d.ParamBox.Lo.Y + float64(j)*qc.Y,
		Z: d.ParamBox.Lo.Z + float64(k)*qc.Z,
	}
	physical = geom.NewBox(plo, plo.Add(pc))
	parametric = geom.NewBox(qlo, qlo.Add(qc))
	return
}

// parallelOverCells runs fn(index) across 0..Dims.Size()-1 using a pool of
// runtime.NumCPU() goroutines pulling from a shared atomic counter: a
// dynamic schedule over the cell index range.
func parallelOverCells(n int, fn func(index int)) {
	nworkers := runtime.NumCPU()
	if nworkers > n {
		nworkers = n
	}
	if nworkers < 1 {
		return
	}
	var next int64 = -1
	var wg sync.WaitGroup
	wg.Add(nworkers)
	for w := 0; w < nworkers; w++ {
		go func() {
			defer wg.Done()
			for {
				idx := int(atomic.AddInt64(&next, 1))
				if idx >= n {
					return
				}
				fn(idx)
			}
		}()
	}
	wg.Wait()
}

// Run executes the three phases over the whole grid.
func (d *Driver) Run() {
	n := d.Dims.Size()

	// Phase 1+2 fused: classification is cheap enough, and nothing reads
	// a cell's classification except the worker that just computed it.
	parallelOverCells(n, func(idx int) {
		d.buildCell(idx)
	})

	if d.Cfg.IntegrationMethod != inp.Gauss {
		d.applyReducedRule()
	}

	for ci := range d.Conditions {
		d.clipCondition(ci)
	}
}

// buildCell implements Phase 1+2 for one cell index: classify, then
// construct and fit its Element, publishing it unless it is Outside or
// rejected.
func (d *Driver) buildCell(idx int) {
	i, j, k := d.Dims.Coords(idx)
	physical, parametric := d.cellBoxes(i, j, k)

	state := brep.Inside
	if d.Cfg.EmbeddingFlag {
		state = d.Solid.ClassifyCell(physical)
	}

	pu, pv, pw := d.Cfg.PolynomialOrder.X, d.Cfg.PolynomialOrder.Y, d.Cfg.PolynomialOrder.Z

	switch state {
	case brep.Outside:
		return

	case brep.Inside:
		elem := &grid.Element{ID: idx, Physical: physical, Parametric: parametric}
		for _, p := range quad.TensorGaussRule(physical, pu, pv, pw) {
			elem.Points = append(elem.Points, grid.IntegrationPoint{X: p.X, Weight: p.Weight})
		}
		d.Container.Publish(elem)

	case brep.Trimmed:
		d.buildTrimmedCell(idx, physical, parametric, pu, pv, pw)
	}
}

// buildTrimmedCell handles the Trimmed branch: build the local
// TrimmedDomain, seed candidates via the octree, and run moment fitting
// with the outer distribution-factor retry loop.
func (d *Driver) buildTrimmedCell(idx int, physical, parametric geom.Box, pu, pv, pw int) {
	domain, err := d.Solid.BuildTrimmedDomain(physical)
	if err != nil {
		chk.Panic("pipeline: cell %d: %v", idx, err)
	}
	if domain == nil {
		return // rejected by min_element_volume_ratio or the flawed-mesh policy
	}

	basis := quad.Basis{Pu: pu, Pv: pv, Pw: pw}
	pmap := quad.ParamMap{Physical: physical, Param: parametric}
	boundary := domain.BoundaryPoints(boundaryRuleOrder(d.Cfg.MinNumBoundaryTriangles, len(domain.Mesh.Tris)))
	momentBoundary := make([]moment.BoundaryPoint, len(boundary))
	for i, bp := range boundary {
		momentBoundary[i] = moment.BoundaryPoint{X: bp.X, Weight: bp.Weight, Normal: bp.Normal}
	}
	m := moment.Moments(basis, pmap, momentBoundary)

	cfg := moment.DefaultConfig(basis, d.Cfg.MomentFittingResidual)
	distFactor := d.Cfg.InitPointDistributionFactor
	if distFactor <= 0 {
		distFactor = 1
	}

	var result moment.Result
	for attempt := 0; attempt < 4; attempt++ {
		seedCfg := octree.Config{Pu: pu, Pv: pv, Pw: pw, DistributionFactor: distFactor, MaxDepth: 4}
		seeded := octree.Seed(domain, physical, seedCfg)
		candidates := make([]geom.Vec3, len(seeded))
		for i, p := range seeded {
			candidates[i] = p.X
		}
		result = moment.Fit(cfg, pmap, m, candidates, pmap.JacobianDet())
		if result.Accepted {
			break
		}
		distFactor *= 2
	}

	if !result.Accepted || len(result.Points) == 0 {
		return // hard cutoff exceeded after all retries: cell emitted empty
	}

	elem := &grid.Element{
		ID:          idx,
		Physical:    physical,
		Parametric:  parametric,
		IsTrimmed:   true,
		Domain:      domain,
		BoundaryPts: boundary,
	}
	for _, p := range result.Points {
		elem.Points = append(elem.Points, grid.IntegrationPoint{X: p.X, Weight: p.Weight})
	}
	d.Container.Publish(elem)

	if d.Cfg.EchoLevel >= 2 {
		io.Pf("pipeline: cell %d trimmed, residual=%.3e, points=%d\n", idx, result.Residual, len(result.Points))
	}
}

// boundaryRuleOrder picks the 3- or 6-point triangle Gauss rule so that the
// total sample count meets min_num_boundary_triangles.
func boundaryRuleOrder(minSamples, ntris int) int {
	if ntris == 0 {
		return 3
	}
	if ntris*6 >= minSamples {
		return 6
	}
	return 3
}

// applyReducedRule implements the GGQ_* branch: Inside cells are batched
// into strips and their tensor points are collapsed.
// GGQ_Reduced1 collapses one axis, GGQ_Reduced2 two axes in sequence, and
// GGQ_Optimal collapses all three.
func (d *Driver) applyReducedRule() {
	axes := []grid.Axis{grid.AxisX}
	switch d.Cfg.IntegrationMethod {
	case inp.GGQReduced2:
		axes = []grid.Axis{grid.AxisX, grid.AxisY}
	case inp.GGQOptimal:
		axes = []grid.Axis{grid.AxisX, grid.AxisY, grid.AxisZ}
	}

	order := d.Cfg.PolynomialOrder.X
	for _, axis := range axes {
		d.Container.Each(func(e *grid.Element) {
			if e.IsTrimmed {
				return
			}
			_, found, localEnd := d.Container.Walk(e.ID, axis, -1)
			if found && !localEnd {
				return // e has an active predecessor along axis: not the strip's first element
			}
			strip := ggq.BuildStrip(d.Container, e.ID, axis)
			if strip.Len() < 2 {
				return
			}
			reduced := ggq.ReducedRule(strip, order)
			for _, se := range strip.Elements {
				se.Points = se.Points[:0]
			}
			// ReducedRule's output spans the whole strip; each point is
			// reassigned to whichever element's box contains it along axis
			// (the boxes partition the strip's extent, so exactly one owns it).
			for _, p := range reduced {
				owner := elementContaining(strip, p.X, axis)
				owner.Points = append(owner.Points, grid.IntegrationPoint{X: p.X, Weight: p.Weight})
			}
		})
	}
}

// elementContaining returns the strip element whose physical box contains p
// along axis, falling back to the nearest end element for points that land
// exactly on a shared face (floating-point boundary cases).
func elementContaining(strip *ggq.Strip, p geom.Vec3, axis grid.Axis) *grid.Element {
	v := axisCoord(p, axis)
	for _, e := range strip.Elements {
		lo, hi := boxAxisRange(e.Physical, axis)
		if v >= lo && v <= hi {
			return e
		}
	}
	return strip.Elements[len(strip.Elements)-1]
}

func axisCoord(p geom.Vec3, axis grid.Axis) float64 {
	switch axis {
	case grid.AxisX:
		return p.X
	case grid.AxisY:
		return p.Y
	default:
		return p.Z
	}
}

func boxAxisRange(b geom.Box, axis grid.Axis) (lo, hi float64) {
	switch axis {
	case grid.AxisX:
		return b.Lo.X, b.Hi.X
	case grid.AxisY:
		return b.Lo.Y, b.Hi.Y
	default:
		return b.Lo.Z, b.Hi.Z
	}
}

// clipCondition implements Phase 3: clip a boundary condition's surface
// against every cell box and accumulate the result into that condition's
// per-cell conforming mesh (critical section on accumulation).
func (d *Driver) clipCondition(ci int) {
	cond := brep.New(d.Conditions[ci], 1e-12, 0, true)
	n := d.Dims.Size()
	parallelOverCells(n, func(idx int) {
		i, j, k := d.Dims.Coords(idx)
		physical, _ := d.cellBoxes(i, j, k)
		clipped := cond.ClipMesh(physical)
		if len(clipped.Tris) == 0 {
			return
		}
		d.condMu[ci].Lock()
		defer d.condMu[ci].Unlock()
		appendMesh(d.ConditionMeshes[ci], clipped)
	})
}

// appendMesh merges src's vertices and triangles into dst, offsetting
// triangle indices (no vertex snapping: each condition's accumulated mesh
// is write-only debug output, not re-clipped).
func appendMesh(dst, src *mesh.Mesh) {
	base := len(dst.Verts)
	for _, v := range src.Verts {
		dst.AddVertex(v)
	}
	for i, t := range src.Tris {
		dst.AddTriangle(base+t.A, base+t.B, base+t.C, src.Normals[i])
	}
}
