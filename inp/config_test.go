// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.json")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("cannot write test fixture: %v", err)
	}
	return path
}

func TestReadConfigParsesFullOptionSet(t *testing.T) {
	body := `{
		"input_filename": "wheel.stl",
		"boundary_stl_files": ["bc_top.stl", "bc_bottom.stl"],
		"lower_bound_xyz": [-1.5, -1.5, -1.0],
		"upper_bound_xyz": [1.5, 1.5, 1.0],
		"number_of_elements": [16, 16, 8],
		"polynomial_order": [2, 2, 2],
		"integration_method": "GGQ_Reduced1",
		"embedding_flag": true,
		"min_element_volume_ratio": 0.01,
		"min_num_boundary_triangles": 4,
		"neglect_elements_if_mesh_is_flawed": true,
		"moment_fitting_residual": 1e-4,
		"init_point_distribution_factor": 2,
		"echo_level": 2,
		"output_directory_name": "out"
	}`
	path := writeConfigFile(t, body)
	cfg := ReadConfig(path)

	if cfg.InputFilename != "wheel.stl" {
		t.Fatalf("InputFilename = %q", cfg.InputFilename)
	}
	if len(cfg.BoundaryStlFiles) != 2 || cfg.BoundaryStlFiles[1] != "bc_bottom.stl" {
		t.Fatalf("BoundaryStlFiles = %v", cfg.BoundaryStlFiles)
	}
	if cfg.LowerBoundXYZ != (Vec3{X: -1.5, Y: -1.5, Z: -1.0}) {
		t.Fatalf("LowerBoundXYZ = %v", cfg.LowerBoundXYZ)
	}
	if cfg.NumberOfElements != (Vec3i{X: 16, Y: 16, Z: 8}) {
		t.Fatalf("NumberOfElements = %v", cfg.NumberOfElements)
	}
	if cfg.IntegrationMethod != GGQReduced1 {
		t.Fatalf("IntegrationMethod = %v", cfg.IntegrationMethod)
	}
	if cfg.MinNumBoundaryTriangles != 4 {
		t.Fatalf("MinNumBoundaryTriangles = %v", cfg.MinNumBoundaryTriangles)
	}
	// an explicit zero-extent uvw box was not given, so SetDefault must copy
	// the physical box across
	if cfg.LowerBoundUVW != cfg.LowerBoundXYZ || cfg.UpperBoundUVW != cfg.UpperBoundXYZ {
		t.Fatalf("expected uvw box to default to xyz box, got %v..%v", cfg.LowerBoundUVW, cfg.UpperBoundUVW)
	}
}

func TestSetDefaultFillsZeroFields(t *testing.T) {
	var c Config
	c.SetDefault()
	if c.InitPointDistributionFactor != 1 {
		t.Fatalf("InitPointDistributionFactor default = %v, want 1", c.InitPointDistributionFactor)
	}
	if c.MinNumBoundaryTriangles != 1 {
		t.Fatalf("MinNumBoundaryTriangles default = %v, want 1", c.MinNumBoundaryTriangles)
	}
	if c.IntegrationMethod != Gauss {
		t.Fatalf("IntegrationMethod default = %v, want Gauss", c.IntegrationMethod)
	}
	if c.PolynomialOrder != (Vec3i{X: 1, Y: 1, Z: 1}) {
		t.Fatalf("PolynomialOrder default = %v, want (1,1,1)", c.PolynomialOrder)
	}
}

func TestVec3MarshalRoundTrips(t *testing.T) {
	v := Vec3{X: 1, Y: -2, Z: 3.5}
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var out Vec3
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out != v {
		t.Fatalf("round-trip = %v, want %v", out, v)
	}
}
