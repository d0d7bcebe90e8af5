// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package vtkio implements the debug VTK/STL writers: at verbose echo
// levels, the surface mesh, the active hex elements, and the interior
// integration-point cloud (weighted) are dumped as legacy-XML VTK
// unstructured grids, in the buffer-then-flush idiom of gofem's VTU
// export tool.
package vtkio

import (
	"bytes"

	"github.com/cpmech/gosl/io"

	"github.com/cpmech/goimmerse/geom"
	"github.com/cpmech/goimmerse/grid"
	"github.com/cpmech/goimmerse/mesh"
)

// VTK cell-type codes (VTK file format reference, legacy XML)
const (
	vtkVertex      = 1
	vtkTriangle    = 5
	vtkHexahedron  = 12
)

func header(buf *bytes.Buffer, npoints, ncells int) {
	io.Ff(buf, "<?xml version=\"1.0\"?>\n<VTKFile type=\"UnstructuredGrid\" version=\"0.1\" byte_order=\"LittleEndian\">\n<UnstructuredGrid>\n")
	io.Ff(buf, "<Piece NumberOfPoints=\"%d\" NumberOfCells=\"%d\">\n", npoints, ncells)
}

func footer(buf *bytes.Buffer) {
	io.Ff(buf, "</Piece>\n</UnstructuredGrid>\n</VTKFile>\n")
}

func writePoints(buf *bytes.Buffer, pts []geom.Vec3) {
	io.Ff(buf, "<Points>\n<DataArray type=\"Float64\" NumberOfComponents=\"3\" format=\"ascii\">\n")
	for _, p := range pts {
		io.Ff(buf, "%23.15e %23.15e %23.15e ", p.X, p.Y, p.Z)
	}
	io.Ff(buf, "\n</DataArray>\n</Points>\n")
}

// WriteSurfaceVTU dumps a triangle surface mesh as a VTK unstructured grid
// of VTK_TRIANGLE cells.
func WriteSurfaceVTU(path string, m *mesh.Mesh) {
	var buf bytes.Buffer
	header(&buf, len(m.Verts), len(m.Tris))
	writePoints(&buf, m.Verts)

	io.Ff(&buf, "<Cells>\n<DataArray type=\"Int32\" Name=\"connectivity\" format=\"ascii\">\n")
	for _, t := range m.Tris {
		io.Ff(&buf, "%d %d %d ", t.A, t.B, t.C)
	}
	io.Ff(&buf, "\n</DataArray>\n<DataArray type=\"Int32\" Name=\"offsets\" format=\"ascii\">\n")
	offset := 0
	for range m.Tris {
		offset += 3
		io.Ff(&buf, "%d ", offset)
	}
	io.Ff(&buf, "\n</DataArray>\n<DataArray type=\"UInt8\" Name=\"types\" format=\"ascii\">\n")
	for range m.Tris {
		io.Ff(&buf, "%d ", vtkTriangle)
	}
	io.Ff(&buf, "\n</DataArray>\n</Cells>\n")

	footer(&buf)
	io.WriteFile(path, &buf)
}

// hexCorners returns a box's 8 corners in VTK_HEXAHEDRON vertex order
func hexCorners(b geom.Box) [8]geom.Vec3 {
	lo, hi := b.Lo, b.Hi
	return [8]geom.Vec3{
		{X: lo.X, Y: lo.Y, Z: lo.Z}, {X: hi.X, Y: lo.Y, Z: lo.Z},
		{X: hi.X, Y: hi.Y, Z: lo.Z}, {X: lo.X, Y: hi.Y, Z: lo.Z},
		{X: lo.X, Y: lo.Y, Z: hi.Z}, {X: hi.X, Y: lo.Y, Z: hi.Z},
		{X: hi.X, Y: hi.Y, Z: hi.Z}, {X: lo.X, Y: hi.Y, Z: hi.Z},
	}
}

// WriteElementsVTU dumps every active cell's physical box as a
// VTK_HEXAHEDRON, with a cell-data scalar marking trimmed vs. fully-inside
// cells.
func WriteElementsVTU(path string, c *grid.ElementContainer) {
	var pts []geom.Vec3
	var conn [][8]int
	var trimmedFlag []float64
	c.Each(func(e *grid.Element) {
		base := len(pts)
		corners := hexCorners(e.Physical)
		pts = append(pts, corners[:]...)
		var idx [8]int
		for i := range idx {
			idx[i] = base + i
		}
		conn = append(conn, idx)
		if e.IsTrimmed {
			trimmedFlag = append(trimmedFlag, 1)
		} else {
			trimmedFlag = append(trimmedFlag, 0)
		}
	})

	var buf bytes.Buffer
	header(&buf, len(pts), len(conn))
	writePoints(&buf, pts)

	io.Ff(&buf, "<Cells>\n<DataArray type=\"Int32\" Name=\"connectivity\" format=\"ascii\">\n")
	for _, idx := range conn {
		for _, i := range idx {
			io.Ff(&buf, "%d ", i)
		}
	}
	io.Ff(&buf, "\n</DataArray>\n<DataArray type=\"Int32\" Name=\"offsets\" format=\"ascii\">\n")
	offset := 0
	for range conn {
		offset += 8
		io.Ff(&buf, "%d ", offset)
	}
	io.Ff(&buf, "\n</DataArray>\n<DataArray type=\"UInt8\" Name=\"types\" format=\"ascii\">\n")
	for range conn {
		io.Ff(&buf, "%d ", vtkHexahedron)
	}
	io.Ff(&buf, "\n</DataArray>\n</Cells>\n")

	io.Ff(&buf, "<CellData Scalars=\"trimmed\">\n<DataArray type=\"Float64\" Name=\"trimmed\" NumberOfComponents=\"1\" format=\"ascii\">\n")
	for _, v := range trimmedFlag {
		io.Ff(&buf, "%23.15e ", v)
	}
	io.Ff(&buf, "\n</DataArray>\n</CellData>\n")

	footer(&buf)
	io.WriteFile(path, &buf)
}

// WriteIntegrationPointsVTU dumps the interior quadrature-point cloud of
// every active cell as VTK_VERTEX cells with a per-point "weight" scalar.
func WriteIntegrationPointsVTU(path string, c *grid.ElementContainer) {
	var pts []geom.Vec3
	var weights []float64
	c.Each(func(e *grid.Element) {
		for _, p := range e.Points {
			pts = append(pts, p.X)
			weights = append(weights, p.Weight)
		}
	})

	var buf bytes.Buffer
	header(&buf, len(pts), len(pts))
	writePoints(&buf, pts)

	io.Ff(&buf, "<Cells>\n<DataArray type=\"Int32\" Name=\"connectivity\" format=\"ascii\">\n")
	for i := range pts {
		io.Ff(&buf, "%d ", i)
	}
	io.Ff(&buf, "\n</DataArray>\n<DataArray type=\"Int32\" Name=\"offsets\" format=\"ascii\">\n")
	for i := range pts {
		io.Ff(&buf, "%d ", i+1)
	}
	io.Ff(&buf, "\n</DataArray>\n<DataArray type=\"UInt8\" Name=\"types\" format=\"ascii\">\n")
	for range pts {
		io.Ff(&buf, "%d ", vtkVertex)
	}
	io.Ff(&buf, "\n</DataArray>\n</Cells>\n")

	io.Ff(&buf, "<PointData Scalars=\"weight\">\n<DataArray type=\"Float64\" Name=\"weight\" NumberOfComponents=\"1\" format=\"ascii\">\n")
	for _, w := range weights {
		io.Ff(&buf, "%23.15e ", w)
	}
	io.Ff(&buf, "\n</DataArray>\n</PointData>\n")

	footer(&buf)
	io.WriteFile(path, &buf)
}

// WriteConditionSTL writes a boundary condition's per-cell clipped
// conforming mesh as an STL copy, reusing mesh's own writer.
func WriteConditionSTL(path string, m *mesh.Mesh, binary bool) error {
	return mesh.WriteSTL(path, m, binary)
}
