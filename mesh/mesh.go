// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package mesh uploads indexed float32 vertex data into OpenGL buffer
// objects behind a single vertex array handle.
package mesh

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/gogpu/glh"
	"github.com/gogpu/glh/internal/glerr"
)

var (
	// ErrNoVertices is returned when New is given no vertex data.
	ErrNoVertices = errors.New("mesh: no vertex data")

	// ErrNoIndices is returned when New is given no index data.
	ErrNoIndices = errors.New("mesh: no index data")

	// ErrNoAttribs is returned when New is given no attribute layout.
	ErrNoAttribs = errors.New("mesh: no vertex attributes")
)

// Attrib describes one vertex attribute: a run of float32 components
// interleaved in the vertex buffer, feeding the shader input declared
// at Location. Offsets and the vertex stride follow from the attribute
// list in declaration order.
type Attrib struct {
	// Location is the layout location of the shader input.
	Location uint32

	// Size is the number of float32 components, 1 through 4.
	Size int32
}

// Mesh owns a vertex array object together with its vertex and index
// buffers.
//
// The zero value is not usable; obtain one from [New] or [Quad].
type Mesh struct {
	vao, vbo, ebo uint32
	indexCount    int32
}

// layout computes the vertex stride in components and the byte offset
// of each attribute.
func layout(attribs []Attrib) (stride int32, offsets []uintptr) {
	offsets = make([]uintptr, len(attribs))
	for i, a := range attribs {
		offsets[i] = uintptr(stride) * 4
		stride += a.Size
	}
	return stride, offsets
}

// New uploads interleaved vertex data and triangle indices, records
// the attribute layout in a vertex array object, and returns a handle
// owning all three driver objects. The data is uploaded once with
// STATIC_DRAW usage; there is no update path.
func New(vertices []float32, indices []uint32, attribs []Attrib) (*Mesh, error) {
	if len(vertices) == 0 {
		return nil, ErrNoVertices
	}
	if len(indices) == 0 {
		return nil, ErrNoIndices
	}
	if len(attribs) == 0 {
		return nil, ErrNoAttribs
	}
	seen := make(map[uint32]bool, len(attribs))
	for _, a := range attribs {
		if a.Size < 1 || a.Size > 4 {
			return nil, fmt.Errorf("mesh: attribute %d has size %d, want 1 through 4", a.Location, a.Size)
		}
		if seen[a.Location] {
			return nil, fmt.Errorf("mesh: attribute location %d used twice", a.Location)
		}
		seen[a.Location] = true
	}

	stride, offsets := layout(attribs)
	if len(vertices)%int(stride) != 0 {
		return nil, fmt.Errorf("mesh: %d floats do not divide into %d-component vertices", len(vertices), stride)
	}
	vertexCount := len(vertices) / int(stride)
	for _, idx := range indices {
		if int(idx) >= vertexCount {
			return nil, fmt.Errorf("mesh: index %d out of range for %d vertices", idx, vertexCount)
		}
	}

	glerr.Clear()

	var m Mesh
	m.indexCount = int32(len(indices))
	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)

	for i, a := range attribs {
		gl.VertexAttribPointerWithOffset(a.Location, a.Size, gl.FLOAT, false, stride*4, offsets[i])
		gl.EnableVertexAttribArray(a.Location)
	}

	// The element buffer binding lives in the vertex array, so the
	// array must be unbound first or the unbind would be recorded.
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)

	if err := glerr.Check("upload"); err != nil {
		m.Delete()
		return nil, fmt.Errorf("mesh: %w", err)
	}

	glh.Logger().Debug("mesh uploaded",
		"vao", m.vao, "vertices", vertexCount, "indices", len(indices))
	return &m, nil
}

// Quad uploads a centered unit quad: four vertices of position(3) and
// texcoord(2) at locations 0 and 1, drawn as two triangles.
func Quad() (*Mesh, error) {
	vertices := []float32{
		// position          // texcoord
		-0.5, -0.5, 0.0, 0.0, 0.0,
		-0.5, 0.5, 0.0, 0.0, 1.0,
		0.5, -0.5, 0.0, 1.0, 0.0,
		0.5, 0.5, 0.0, 1.0, 1.0,
	}
	indices := []uint32{
		0, 1, 2,
		1, 2, 3,
	}
	return New(vertices, indices, []Attrib{
		{Location: 0, Size: 3},
		{Location: 1, Size: 2},
	})
}

// Draw binds the vertex array and issues one indexed triangle draw.
// A program must be in use.
func (m *Mesh) Draw() {
	gl.BindVertexArray(m.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
}

// Delete destroys the buffers and the vertex array. Idempotent.
func (m *Mesh) Delete() {
	if m.vao == 0 {
		return
	}
	gl.DeleteBuffers(1, &m.vbo)
	gl.DeleteBuffers(1, &m.ebo)
	gl.DeleteVertexArrays(1, &m.vao)
	glh.Logger().Debug("mesh deleted", "vao", m.vao)
	m.vao, m.vbo, m.ebo = 0, 0, 0
}
