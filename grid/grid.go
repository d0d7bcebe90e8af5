// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package grid implements the background hexahedral grid's linearization,
// the Element/ElementContainer types, and the six-directional neighbor
// walks used by the reduced-rule (GGQ) assembler.
package grid

// Dims holds a grid's resolution along each axis (number_of_elements)
type Dims struct {
	Nx, Ny, Nz int
}

// Size returns Nx*Ny*Nz
func (d Dims) Size() int { return d.Nx * d.Ny * d.Nz }

// Index linearizes grid coordinates (i,j,k) in row-major order with x the
// fastest-varying axis: index = k*(nx*ny) + j*nx + i
func (d Dims) Index(i, j, k int) int {
	return k*(d.Nx*d.Ny) + j*d.Nx + i
}

// Coords inverts Index
func (d Dims) Coords(index int) (i, j, k int) {
	k = index / (d.Nx * d.Ny)
	rem := index % (d.Nx * d.Ny)
	j = rem / d.Nx
	i = rem % d.Nx
	return
}

// InBounds reports whether (i,j,k) is a valid grid coordinate
func (d Dims) InBounds(i, j, k int) bool {
	return i >= 0 && i < d.Nx && j >= 0 && j < d.Ny && k >= 0 && k < d.Nz
}
