// Package mesh pairs a vertex buffer with the material textures it is drawn
// with.
package mesh

import (
	"strconv"

	"github.com/Carmen-Shannon/oxy-gl/engine/device"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/texture"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/vertex"
)

const materialPrefix = "material."

// Slot is the texture unit and sampler uniform assigned to one texture.
type Slot struct {
	Unit    uint32
	Uniform string
	Texture texture.Texture
}

// AssignSlots assigns texture units in sequence order and names each sampler
// material.<array>[i], where i counts textures of the same type seen so far.
// The result depends only on the order and types of textures.
//
// Parameters:
//   - textures: textures in draw order
//
// Returns:
//   - []Slot: one slot per texture, same order
func AssignSlots(textures []texture.Texture) []Slot {
	counters := map[texture.Type]int{}
	slots := make([]Slot, len(textures))
	for i, tex := range textures {
		typ := tex.Type()
		slots[i] = Slot{
			Unit:    uint32(i),
			Uniform: materialPrefix + typ.ArrayName() + "[" + strconv.Itoa(counters[typ]) + "]",
			Texture: tex,
		}
		counters[typ]++
	}
	return slots
}

// mesh is the implementation of the Mesh interface.
type mesh struct {
	dev          device.Device
	vb           vertex.Buffer
	textures     []texture.Texture
	slots        []Slot
	ownsTextures bool
	destroyed    bool
}

// Mesh is a drawable vertex buffer plus its ordered material textures. The
// mesh exclusively owns its vertex buffer; textures are shared unless the
// mesh was built WithOwnedTextures.
type Mesh interface {
	// Buffer returns the vertex buffer.
	Buffer() vertex.Buffer

	// Textures returns the textures in draw order.
	Textures() []texture.Texture

	// Slots returns the texture unit assignment used by Draw.
	Slots() []Slot

	// Draw binds each texture to its unit, points its sampler uniform at the
	// unit and issues one indexed triangle draw. The program must already be
	// active. Texture unit 0 is left active.
	//
	// Parameters:
	//   - program: the active program receiving the sampler uniforms
	Draw(program shader.Program)

	// Destroy frees the vertex buffer and, when owned, the textures.
	// Subsequent calls are no-ops.
	Destroy()
}

var _ Mesh = &mesh{}

// MeshBuilderOption configures a mesh at construction.
type MeshBuilderOption func(*mesh)

// WithOwnedTextures makes the mesh destroy its textures in Destroy.
//
// Returns:
//   - MeshBuilderOption: option marking textures as owned
func WithOwnedTextures() MeshBuilderOption {
	return func(m *mesh) {
		m.ownsTextures = true
	}
}

// New creates a mesh. Ownership of vb moves to the mesh.
//
// Parameters:
//   - dev: the device context
//   - vb: vertex buffer, destroyed with the mesh
//   - textures: material textures in draw order, may be empty
//   - options: builder options
//
// Returns:
//   - Mesh: the mesh
func New(dev device.Device, vb vertex.Buffer, textures []texture.Texture, options ...MeshBuilderOption) Mesh {
	m := &mesh{
		dev:      dev,
		vb:       vb,
		textures: append([]texture.Texture(nil), textures...),
	}
	m.slots = AssignSlots(m.textures)
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *mesh) Buffer() vertex.Buffer {
	return m.vb
}

func (m *mesh) Textures() []texture.Texture {
	return m.textures
}

func (m *mesh) Slots() []Slot {
	return m.slots
}

func (m *mesh) Draw(program shader.Program) {
	for _, s := range m.slots {
		m.dev.ActiveTexture(s.Unit)
		program.Set(s.Uniform, shader.Int(s.Unit))
		m.dev.BindTexture(s.Texture.Target(), s.Texture.ID())
	}
	m.dev.ActiveTexture(0)
	m.vb.Draw(device.PrimitiveTriangles)
}

func (m *mesh) Destroy() {
	if m.destroyed {
		return
	}
	m.destroyed = true
	m.vb.Destroy()
	if m.ownsTextures {
		for _, t := range m.textures {
			t.Destroy()
		}
	}
}
