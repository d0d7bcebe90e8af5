// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/goimmerse/geom"
)

func tetrahedron() *Mesh {
	m := New()
	v := []geom.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	ids := make([]int, len(v))
	for i, p := range v {
		ids[i] = m.AddVertex(p)
	}
	faces := [][3]int{{0, 2, 1}, {0, 1, 3}, {0, 3, 2}, {1, 2, 3}}
	for _, f := range faces {
		m.AddTriangle(ids[f[0]], ids[f[1]], ids[f[2]], geom.Vec3{})
	}
	return m
}

func TestSTLBinaryRoundTrip(t *testing.T) {
	chk.PrintTitle("STLBinaryRoundTrip")
	orig := tetrahedron()
	path := filepath.Join(t.TempDir(), "tet.stl")
	if err := WriteSTL(path, orig, true); err != nil {
		t.Fatalf("WriteSTL: %v", err)
	}
	loaded, err := LoadSTL(path)
	if err != nil {
		t.Fatalf("LoadSTL: %v", err)
	}
	if len(loaded.Tris) != len(orig.Tris) {
		t.Fatalf("triangle count: got %d, want %d", len(loaded.Tris), len(orig.Tris))
	}

	path2 := filepath.Join(t.TempDir(), "tet2.stl")
	if err := WriteSTL(path2, loaded, true); err != nil {
		t.Fatalf("WriteSTL (second pass): %v", err)
	}
	b1, _ := readAll(path)
	b2, _ := readAll(path2)
	if len(b1) != len(b2) {
		t.Fatalf("round-trip byte length mismatch: %d vs %d", len(b1), len(b2))
	}
	for i := range b1 {
		if b1[i] != b2[i] {
			t.Fatalf("round-trip not bit-stable at byte %d", i)
		}
	}
}

func TestSTLAsciiLoad(t *testing.T) {
	orig := tetrahedron()
	path := filepath.Join(t.TempDir(), "tet_ascii.stl")
	if err := WriteSTL(path, orig, false); err != nil {
		t.Fatalf("WriteSTL ascii: %v", err)
	}
	loaded, err := LoadSTL(path)
	if err != nil {
		t.Fatalf("LoadSTL ascii: %v", err)
	}
	if len(loaded.Tris) != 4 {
		t.Fatalf("triangle count: got %d, want 4", len(loaded.Tris))
	}
}

func TestSTLEmptyFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.stl")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if _, err := LoadSTL(path); err == nil {
		t.Fatalf("expected error loading empty STL")
	}
}

func readAll(path string) ([]byte, error) {
	return os.ReadFile(path)
}
