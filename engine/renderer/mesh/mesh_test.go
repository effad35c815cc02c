package mesh

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/engine/device"
	"github.com/Carmen-Shannon/oxy-gl/engine/device/devicetest"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/texture"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/vertex"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTexture(t *testing.T, dev device.Device, typ texture.Type) texture.Texture {
	t.Helper()
	tex, err := texture.New2D(dev, &texture.Image{Width: 1, Height: 1, Channels: 3, Pixels: []byte{1, 2, 3}}, typ)
	require.NoError(t, err)
	return tex
}

func newTriangle(t *testing.T, dev device.Device) vertex.Buffer {
	t.Helper()
	vb, err := vertex.NewSequential(dev, []uint32{0, 1, 2}, 3,
		[]vertex.AttributeSpec{vertex.Vec3, vertex.Vec3, vertex.Vec2},
		make([]float32, 9), make([]float32, 9), make([]float32, 6))
	require.NoError(t, err)
	return vb
}

func TestAssignSlotsGroupsByType(t *testing.T) {
	dev := devicetest.New()
	a := newTexture(t, dev, texture.Diffuse)
	b := newTexture(t, dev, texture.Specular)
	c := newTexture(t, dev, texture.Diffuse)

	slots := AssignSlots([]texture.Texture{a, b, c})
	require.Len(t, slots, 3)
	assert.Equal(t, Slot{Unit: 0, Uniform: "material.diffuseTextures[0]", Texture: a}, slots[0])
	assert.Equal(t, Slot{Unit: 1, Uniform: "material.specularTextures[0]", Texture: b}, slots[1])
	assert.Equal(t, Slot{Unit: 2, Uniform: "material.diffuseTextures[1]", Texture: c}, slots[2])

	assert.Equal(t, slots, AssignSlots([]texture.Texture{a, b, c}))
}

func TestDrawBindsSlotsAndIsStable(t *testing.T) {
	dev := devicetest.New()
	a := newTexture(t, dev, texture.Diffuse)
	b := newTexture(t, dev, texture.Specular)
	c := newTexture(t, dev, texture.Diffuse)

	prog, err := shader.NewProgram(dev, shader.Source{Name: "phong"})
	require.NoError(t, err)
	defer prog.Destroy()

	m := New(dev, newTriangle(t, dev), []texture.Texture{a, b, c}, WithOwnedTextures())
	defer m.Destroy()

	prog.Use()
	for pass := 0; pass < 2; pass++ {
		dev.ResetRecords()
		m.Draw(prog)

		for name, unit := range map[string]int32{
			"material.diffuseTextures[0]":  0,
			"material.specularTextures[0]": 1,
			"material.diffuseTextures[1]":  2,
		} {
			got, ok := dev.UniformValue(prog.ID(), name)
			require.True(t, ok, name)
			assert.Equal(t, unit, got, name)
		}

		require.Len(t, dev.Draws, 1)
		d := dev.Draws[0]
		assert.Equal(t, device.PrimitiveTriangles, d.Mode)
		assert.Equal(t, 3, d.Count)
		assert.Equal(t, map[uint32]uint32{0: a.ID(), 1: b.ID(), 2: c.ID()}, d.Textures)
		assert.Equal(t, uint32(0), dev.ActiveUnit)
	}
}

func TestDrawWithoutTextures(t *testing.T) {
	dev := devicetest.New()
	prog, err := shader.NewProgram(dev, shader.Source{Name: "light"})
	require.NoError(t, err)
	defer prog.Destroy()

	m := New(dev, newTriangle(t, dev), nil)
	defer m.Destroy()

	prog.Use()
	m.Draw(prog)
	assert.Empty(t, dev.Uniforms)
	assert.Len(t, dev.Draws, 1)
}

func TestDestroyOwnership(t *testing.T) {
	dev := devicetest.New()
	shared := newTexture(t, dev, texture.Diffuse)

	m := New(dev, newTriangle(t, dev), []texture.Texture{shared})
	m.Destroy()
	m.Destroy()
	assert.True(t, dev.IsLive(devicetest.KindTexture, shared.ID()), "shared textures outlive the mesh")

	owned := New(dev, newTriangle(t, dev), []texture.Texture{shared}, WithOwnedTextures())
	owned.Destroy()
	assert.True(t, dev.Balanced())
}
