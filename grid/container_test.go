// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func fullContainer(dims Dims, missing map[int]bool) *ElementContainer {
	c := NewElementContainer(dims)
	for id := 0; id < dims.Size(); id++ {
		if missing[id] {
			continue
		}
		c.Publish(&Element{ID: id})
	}
	return c
}

func TestNeighborWalkHole(t *testing.T) {
	chk.PrintTitle("NeighborWalkHole")
	dims := Dims{Nx: 3, Ny: 4, Nz: 2} // 24 cells
	c := fullContainer(dims, map[int]bool{10: true})

	for id := 0; id < dims.Size()-1; id++ {
		nb, found, localEnd := c.NextX(id)
		i, _, _ := dims.Coords(id)
		wantLocalEnd := (i == dims.Nx-1)
		if localEnd != wantLocalEnd {
			t.Fatalf("id=%d: NextX localEnd=%v, want %v", id, localEnd, wantLocalEnd)
		}
		if wantLocalEnd {
			continue
		}
		wantFound := nb != 10
		if found != wantFound {
			t.Fatalf("id=%d: NextX found=%v (neighbor %d), want %v", id, found, nb, wantFound)
		}
	}
}

func TestNeighborWalkIsInverse(t *testing.T) {
	dims := Dims{Nx: 3, Ny: 4, Nz: 2}
	c := fullContainer(dims, nil)
	for id := 0; id < dims.Size(); id++ {
		i, j, k := dims.Coords(id)
		if i+1 < dims.Nx {
			nb, found, end := c.NextX(id)
			if end || !found {
				t.Fatalf("id=%d: unexpected NextX end=%v found=%v", id, end, found)
			}
			back, found2, end2 := c.PrevX(nb)
			if end2 || !found2 || back != id {
				t.Fatalf("id=%d: PrevX(NextX(id))=%d, want %d", id, back, id)
			}
			ni, nj, nk := dims.Coords(nb)
			if ni != i+1 || nj != j || nk != k {
				t.Fatalf("id=%d: NextX moved to (%d,%d,%d), want (%d,%d,%d)", id, ni, nj, nk, i+1, j, k)
			}
		}
	}
}

func TestGridLinearization(t *testing.T) {
	d := Dims{Nx: 3, Ny: 4, Nz: 2}
	for k := 0; k < d.Nz; k++ {
		for j := 0; j < d.Ny; j++ {
			for i := 0; i < d.Nx; i++ {
				idx := d.Index(i, j, k)
				gi, gj, gk := d.Coords(idx)
				if gi != i || gj != j || gk != k {
					t.Fatalf("Coords(Index(%d,%d,%d)) = (%d,%d,%d)", i, j, k, gi, gj, gk)
				}
			}
		}
	}
}
