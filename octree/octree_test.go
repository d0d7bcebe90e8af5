// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package octree

import (
	"testing"

	"github.com/cpmech/goimmerse/geom"
)

// halfSpace is an insideOracle that keeps x <= max, used to check that
// seeded points never straddle a known interior boundary
type halfSpace struct{ max float64 }

func (h halfSpace) IsInside(p geom.Vec3) bool { return p.X <= h.max }

func TestSeedFullyInsideBox(t *testing.T) {
	box := geom.NewBox(geom.Vec3{}, geom.Vec3{X: 1, Y: 1, Z: 1})
	dom := halfSpace{max: 10} // entire box is interior
	cfg := Config{Pu: 1, Pv: 1, Pw: 1, DistributionFactor: 2, MaxDepth: 2}
	pts := Seed(dom, box, cfg)
	if len(pts) == 0 {
		t.Fatal("expected seeded points for a fully interior box")
	}
	for _, p := range pts {
		if !dom.IsInside(p.X) {
			t.Fatalf("seeded point %v outside domain", p.X)
		}
		if p.Weight <= 0 {
			t.Fatalf("seeded point %v has non-positive weight %v", p.X, p.Weight)
		}
	}
}

func TestSeedRespectsHalfSpace(t *testing.T) {
	box := geom.NewBox(geom.Vec3{}, geom.Vec3{X: 1, Y: 1, Z: 1})
	dom := halfSpace{max: 0.5}
	cfg := Config{Pu: 2, Pv: 2, Pw: 2, DistributionFactor: 3, MaxDepth: 3}
	pts := Seed(dom, box, cfg)
	if len(pts) == 0 {
		t.Fatal("expected some seeded points on the interior side")
	}
	for _, p := range pts {
		if p.X.X > 0.5+1e-9 {
			t.Fatalf("seeded point %v crossed the half-space boundary", p.X)
		}
	}
}

func TestSeedEmptyWhenFullyOutside(t *testing.T) {
	box := geom.NewBox(geom.Vec3{X: 2, Y: 2, Z: 2}, geom.Vec3{X: 3, Y: 3, Z: 3})
	dom := halfSpace{max: 0.5}
	cfg := Config{Pu: 1, Pv: 1, Pw: 1, DistributionFactor: 2, MaxDepth: 2}
	pts := Seed(dom, box, cfg)
	if len(pts) != 0 {
		t.Fatalf("expected no seeded points outside the domain, got %d", len(pts))
	}
}
