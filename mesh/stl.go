// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"math"
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/goimmerse/geom"
)

// stlHeaderSize is the fixed binary-STL header size in bytes
const stlHeaderSize = 80

// stlRecordSize is the per-triangle binary-STL record size: 12 floats
// (normal + 3 vertices) at 4 bytes each, plus a 2-byte attribute count
const stlRecordSize = 12*4 + 2

// detectASCII reports whether the first <=80 bytes of an STL file look like
// the ASCII grammar (contains "solid", "facet", "normal", and a newline)
// rather than the binary one
func detectASCII(head []byte) bool {
	if len(head) > 80 {
		head = head[:80]
	}
	s := string(head)
	return strings.Contains(s, "solid") && strings.Contains(s, "facet") &&
		strings.Contains(s, "normal") && strings.ContainsAny(s, "\n")
}

// LoadSTL reads an STL file (ASCII or binary, auto-detected) into a new
// Mesh. Repeated vertices are snapped together (mesh.SNAPTOL) and
// zero-length normals are recomputed from the triangle's edges.
func LoadSTL(path string) (*Mesh, error) {
	data, err := io.ReadFile(path)
	if err != nil {
		return nil, chk.Err("mesh: cannot read STL file %q: %v", path, err)
	}
	if len(data) == 0 {
		return nil, chk.Err("mesh: empty STL file %q", path)
	}
	probe := data
	if len(probe) > 80 {
		probe = probe[:80]
	}
	if detectASCII(probe) {
		return parseASCII(data)
	}
	return parseBinary(data)
}

func parseASCII(data []byte) (*Mesh, error) {
	m := New()
	snap := NewVertexSnapper(m)
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var normal geom.Vec3
	var verts [3]geom.Vec3
	nv := 0
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "facet":
			if len(fields) >= 5 && fields[1] == "normal" {
				x, _ := strconv.ParseFloat(fields[2], 64)
				y, _ := strconv.ParseFloat(fields[3], 64)
				z, _ := strconv.ParseFloat(fields[4], 64)
				normal = geom.Vec3{X: x, Y: y, Z: z}
			}
			nv = 0
		case "vertex":
			if len(fields) < 4 {
				return nil, chk.Err("mesh: malformed STL vertex line %q", sc.Text())
			}
			x, _ := strconv.ParseFloat(fields[1], 64)
			y, _ := strconv.ParseFloat(fields[2], 64)
			z, _ := strconv.ParseFloat(fields[3], 64)
			if nv >= 3 {
				return nil, chk.Err("mesh: STL facet with more than 3 vertices")
			}
			verts[nv] = geom.Vec3{X: x, Y: y, Z: z}
			nv++
		case "endfacet":
			if nv != 3 {
				return nil, chk.Err("mesh: STL facet with %d vertices, want 3", nv)
			}
			a := snap.Add(verts[0])
			b := snap.Add(verts[1])
			c := snap.Add(verts[2])
			m.AddTriangle(a, b, c, normal)
			normal = geom.Vec3{}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, chk.Err("mesh: error scanning ASCII STL: %v", err)
	}
	if len(m.Tris) == 0 {
		return nil, chk.Err("mesh: ASCII STL contains no triangles")
	}
	return m, nil
}

func parseBinary(data []byte) (*Mesh, error) {
	if len(data) < stlHeaderSize+4 {
		return nil, chk.Err("mesh: binary STL too short for header")
	}
	count := binary.LittleEndian.Uint32(data[stlHeaderSize : stlHeaderSize+4])
	want := stlHeaderSize + 4 + int(count)*stlRecordSize
	if len(data) < want {
		return nil, chk.Err("mesh: binary STL truncated: have %d bytes, want >= %d", len(data), want)
	}
	m := New()
	snap := NewVertexSnapper(m)
	off := stlHeaderSize + 4
	readVec := func(b []byte) geom.Vec3 {
		x := math.Float32frombits(binary.LittleEndian.Uint32(b[0:4]))
		y := math.Float32frombits(binary.LittleEndian.Uint32(b[4:8]))
		z := math.Float32frombits(binary.LittleEndian.Uint32(b[8:12]))
		return geom.Vec3{X: float64(x), Y: float64(y), Z: float64(z)}
	}
	for i := 0; i < int(count); i++ {
		rec := data[off : off+stlRecordSize]
		normal := readVec(rec[0:12])
		v0 := readVec(rec[12:24])
		v1 := readVec(rec[24:36])
		v2 := readVec(rec[36:48])
		a := snap.Add(v0)
		b := snap.Add(v1)
		c := snap.Add(v2)
		m.AddTriangle(a, b, c, normal)
		off += stlRecordSize
	}
	if len(m.Tris) == 0 {
		return nil, chk.Err("mesh: binary STL contains no triangles")
	}
	return m, nil
}

// WriteSTL writes m to path in binary format when binary==true, otherwise
// ASCII. Normals are written as stored in m (AddTriangle stores them at
// unit length); the writer does not renormalize them.
func WriteSTL(path string, m *Mesh, binaryMode bool) error {
	var buf bytes.Buffer
	if binaryMode {
		writeBinary(&buf, m)
	} else {
		writeASCII(&buf, m)
	}
	io.WriteFile(path, &buf)
	return nil
}

// writeBinary packs m's triangles into the binary-STL wire format directly
// into buf, whose bytes io.WriteFile later flushes verbatim to disk
func writeBinary(buf *bytes.Buffer, m *Mesh) {
	var header [stlHeaderSize]byte
	copy(header[:], []byte("goimmerse binary STL"))
	buf.Write(header[:])

	var countBuf [4]byte
	binary.LittleEndian.PutUint32(countBuf[:], uint32(len(m.Tris)))
	buf.Write(countBuf[:])

	writeVec := func(v geom.Vec3) {
		var b [12]byte
		binary.LittleEndian.PutUint32(b[0:4], math.Float32bits(float32(v.X)))
		binary.LittleEndian.PutUint32(b[4:8], math.Float32bits(float32(v.Y)))
		binary.LittleEndian.PutUint32(b[8:12], math.Float32bits(float32(v.Z)))
		buf.Write(b[:])
	}
	for i, t := range m.Tris {
		writeVec(m.Normals[i])
		for _, idx := range [3]int{t.A, t.B, t.C} {
			writeVec(m.Verts[idx])
		}
		buf.Write([]byte{0, 0})
	}
}

func writeASCII(buf *bytes.Buffer, m *Mesh) {
	io.Ff(buf, "solid goimmerse\n")
	for i, t := range m.Tris {
		n := m.Normals[i]
		io.Ff(buf, "facet normal %e %e %e\n", n.X, n.Y, n.Z)
		io.Ff(buf, "outer loop\n")
		for _, idx := range [3]int{t.A, t.B, t.C} {
			v := m.Verts[idx]
			io.Ff(buf, "vertex %e %e %e\n", v.X, v.Y, v.Z)
		}
		io.Ff(buf, "endloop\nendfacet\n")
	}
	io.Ff(buf, "endsolid goimmerse\n")
}
