// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a .json configuration
// file: a flat option map.
package inp

import (
	"encoding/json"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Vec3 is a 3-component tuple read directly from JSON arrays, e.g.
// "lower_bound_xyz": [-1.5, -1.5, -1.0]
type Vec3 struct {
	X, Y, Z float64
}

// UnmarshalJSON accepts a 3-element JSON array
func (v *Vec3) UnmarshalJSON(data []byte) error {
	var a [3]float64
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	v.X, v.Y, v.Z = a[0], a[1], a[2]
	return nil
}

// MarshalJSON writes a 3-element JSON array
func (v Vec3) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]float64{v.X, v.Y, v.Z})
}

// Vec3i is the integer analogue of Vec3, used for number_of_elements
type Vec3i struct {
	X, Y, Z int
}

func (v *Vec3i) UnmarshalJSON(data []byte) error {
	var a [3]int
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	v.X, v.Y, v.Z = a[0], a[1], a[2]
	return nil
}

func (v Vec3i) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]int{v.X, v.Y, v.Z})
}

// IntegrationMethod selects the cell quadrature branch
type IntegrationMethod string

const (
	Gauss       IntegrationMethod = "Gauss"
	GGQOptimal  IntegrationMethod = "GGQ_Optimal"
	GGQReduced1 IntegrationMethod = "GGQ_Reduced1"
	GGQReduced2 IntegrationMethod = "GGQ_Reduced2"
)

// Config is the flat name->typed-value configuration map read from one
// JSON file (mirroring inp.Simulation's json-tagged struct idiom, without
// the FE solver-specific sections this module has no use for).
type Config struct {

	// inputs
	InputFilename    string   `json:"input_filename"`    // path to primary STL
	BoundaryStlFiles []string `json:"boundary_stl_files"` // optional BC surface STL files

	// geometry
	LowerBoundXYZ Vec3  `json:"lower_bound_xyz"` // physical bounding box of grid
	UpperBoundXYZ Vec3  `json:"upper_bound_xyz"`
	LowerBoundUVW Vec3  `json:"lower_bound_uvw"` // parametric box for IGA mapping; defaults to physical if both corners are left at zero
	UpperBoundUVW Vec3  `json:"upper_bound_uvw"`
	NumberOfElements Vec3i `json:"number_of_elements"` // grid resolution

	// quadrature
	PolynomialOrder   Vec3i             `json:"polynomial_order"`   // tensor polynomial degree per axis, 1..4
	IntegrationMethod IntegrationMethod `json:"integration_method"` // selects the quadrature branch

	// classification / trimming
	EmbeddingFlag               bool    `json:"embedding_flag"`                  // if false, all cells treated Inside
	MinElementVolumeRatio       float64 `json:"min_element_volume_ratio"`        // trimmed-cell rejection threshold
	MinNumBoundaryTriangles     int     `json:"min_num_boundary_triangles"`      // lower bound on surface sampling per cell
	NeglectElementsIfMeshFlawed bool    `json:"neglect_elements_if_mesh_is_flawed"`

	// moment fitting
	MomentFittingResidual      float64 `json:"moment_fitting_residual"`       // r_target
	InitPointDistributionFactor int    `json:"init_point_distribution_factor"`

	// misc
	BSplineMesh       bool   `json:"b_spline_mesh"`        // enables per-cell parametric mapping
	EchoLevel         int    `json:"echo_level"`           // logging verbosity
	OutputDirectoryName string `json:"output_directory_name"` // debug VTK output path
}

// SetDefault fills in the documented defaults for any zero field;
// r_target's own default is left to the caller since it has no single
// universal value.
func (c *Config) SetDefault() {
	if c.InitPointDistributionFactor == 0 {
		c.InitPointDistributionFactor = 1
	}
	if c.MinNumBoundaryTriangles == 0 {
		c.MinNumBoundaryTriangles = 1
	}
	if c.IntegrationMethod == "" {
		c.IntegrationMethod = Gauss
	}
	if c.PolynomialOrder.X == 0 && c.PolynomialOrder.Y == 0 && c.PolynomialOrder.Z == 0 {
		c.PolynomialOrder = Vec3i{X: 1, Y: 1, Z: 1}
	}
	// a parametric box with both corners at zero (not given) means "use the
	// physical box"
	if c.LowerBoundUVW == (Vec3{}) && c.UpperBoundUVW == (Vec3{}) {
		c.LowerBoundUVW = c.LowerBoundXYZ
		c.UpperBoundUVW = c.UpperBoundXYZ
	}
}

// ReadConfig reads and decodes a Config from a JSON file, mirroring
// inp.ReadSim's read-then-unmarshal-then-default idiom.
func ReadConfig(path string) *Config {
	var c Config
	b, err := io.ReadFile(path)
	if err != nil {
		chk.Panic("inp: cannot read configuration file %q", path)
	}
	if err := json.Unmarshal(b, &c); err != nil {
		chk.Panic("inp: cannot unmarshal configuration file %q: %v", path, err)
	}
	c.SetDefault()
	return &c
}
