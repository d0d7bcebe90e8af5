// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command goimmerse runs the cut-cell classification and quadrature-fitting
// pipeline against a .json configuration file, producing a grid of
// classified, cubature-bearing elements and, at verbose echo levels,
// debug VTK/STL output.
package main

import (
	"flag"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/goimmerse/inp"
	"github.com/cpmech/goimmerse/mesh"
	"github.com/cpmech/goimmerse/pipeline"
	"github.com/cpmech/goimmerse/vtkio"
)

func main() {
	defer func() {
		if err := recover(); err != nil {
			chk.Verbose = true
			io.Pfred("ERROR: %v\n", err)
		}
	}()

	flag.Parse()
	var fnamepath string
	if len(flag.Args()) > 0 {
		fnamepath = flag.Arg(0)
	} else {
		chk.Panic("Please, provide a configuration filename. Ex.: goimmerse wheel.json")
	}

	io.PfWhite("\ngoimmerse -- cut-cell quadrature preprocessor\n\n")

	cfg := inp.ReadConfig(fnamepath)
	if cfg.EchoLevel >= 1 {
		io.Pf("input: %s\n", cfg.InputFilename)
		io.Pf("grid:  %dx%dx%d\n", cfg.NumberOfElements.X, cfg.NumberOfElements.Y, cfg.NumberOfElements.Z)
		io.Pf("order: %d,%d,%d  method: %s\n", cfg.PolynomialOrder.X, cfg.PolynomialOrder.Y, cfg.PolynomialOrder.Z, cfg.IntegrationMethod)
	}

	solid, err := mesh.LoadSTL(cfg.InputFilename)
	if err != nil {
		chk.Panic("cannot load solid STL %q: %v", cfg.InputFilename, err)
	}

	var conditions []*mesh.Mesh
	for _, bpath := range cfg.BoundaryStlFiles {
		bmesh, err := mesh.LoadSTL(bpath)
		if err != nil {
			chk.Panic("cannot load boundary STL %q: %v", bpath, err)
		}
		conditions = append(conditions, bmesh)
	}

	driver := pipeline.NewDriver(cfg, solid, conditions)
	driver.Run()

	if cfg.EchoLevel >= 1 {
		io.Pf("published elements: %d / %d\n", driver.Container.Len(), driver.Dims.Size())
	}

	if cfg.OutputDirectoryName != "" && cfg.EchoLevel >= 2 {
		dumpDebugOutput(driver, cfg)
	}
}

// dumpDebugOutput writes the §6 debug artifacts: the surface mesh, the
// active hex elements, the integration-point cloud, and any clipped
// condition surfaces, all under output_directory_name.
func dumpDebugOutput(driver *pipeline.Driver, cfg *inp.Config) {
	dir := cfg.OutputDirectoryName
	vtkio.WriteSurfaceVTU(filepath.Join(dir, "surface.vtu"), driver.Solid.Mesh)
	vtkio.WriteElementsVTU(filepath.Join(dir, "elements.vtu"), driver.Container)
	vtkio.WriteIntegrationPointsVTU(filepath.Join(dir, "points.vtu"), driver.Container)
	for i, cm := range driver.ConditionMeshes {
		name := io.Sf("condition_%03d.stl", i)
		if err := vtkio.WriteConditionSTL(filepath.Join(dir, name), cm, false); err != nil {
			io.Pfred("cannot write %s: %v\n", name, err)
		}
	}
}
