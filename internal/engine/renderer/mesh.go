package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/gearworks/pkg/gear"
)

// Mesh is a gear.Handle living in GPU buffers.
type Mesh struct {
	vao, vbo, ebo uint32
	count         int32
	mode          uint32
}

// Release frees the GPU buffers. Safe to call twice.
func (m *Mesh) Release() {
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		m.vao = 0
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
		m.vbo = 0
	}
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
		m.ebo = 0
	}
	m.count = 0
}

func glMode(t gear.Topology) (uint32, error) {
	switch t {
	case gear.Triangles:
		return gl.TRIANGLES, nil
	case gear.Lines:
		return gl.LINES, nil
	default:
		return 0, fmt.Errorf("unsupported topology %v", t)
	}
}

// Upload copies h into new GPU buffers. It implements gear.Uploader.
func (r *Renderer) Upload(h *gear.Handle) (gear.Resource, error) {
	if len(h.Data) == 0 || len(h.Indices) == 0 {
		return nil, fmt.Errorf("upload: empty mesh")
	}
	mode, err := glMode(h.Topology)
	if err != nil {
		return nil, fmt.Errorf("upload: %w", err)
	}

	m := &Mesh{count: int32(len(h.Indices)), mode: mode}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(h.Data)*4, gl.Ptr(h.Data), gl.STATIC_DRAW)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(h.Indices)*4, gl.Ptr(h.Indices), gl.STATIC_DRAW)

	stride := int32(h.Layout.StrideBytes())
	for _, a := range h.Layout.Attributes {
		gl.VertexAttribPointer(a.Location, int32(a.Size), gl.FLOAT, false, stride, gl.PtrOffset(a.Offset*4))
		gl.EnableVertexAttribArray(a.Location)
	}

	// The element buffer binding is VAO state, so only the array buffer is unbound.
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	r.uploads++
	r.log.Debug("mesh uploaded")
	return m, nil
}
