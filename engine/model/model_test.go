package model

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/engine/device/devicetest"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/texture"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 1, 1))))
	return buf.Bytes()
}

func quad(material int) ImportedMesh {
	return ImportedMesh{
		Name:          "quad",
		Positions:     [][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}},
		Normals:       [][3]float32{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}, {0, 0, 1}},
		TexCoords:     [][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
		Indices:       []uint32{0, 1, 2, 0, 2, 3},
		MaterialIndex: material,
		BoundingMax:   [3]float32{1, 1, 0},
	}
}

func TestNewSharesTextures(t *testing.T) {
	dev := devicetest.New()
	data := pngBytes(t)
	imported := &ImportedModel{
		Name:   "tiles",
		Meshes: []ImportedMesh{quad(0), quad(0), quad(-1)},
		Materials: []ImportedMaterial{{Textures: []ImportedTexture{
			{Type: texture.Diffuse, Data: data, Key: "image:0"},
			{Type: texture.Specular, Data: data, Key: "image:0"},
		}}},
	}

	m, err := New(dev, imported, WithName("renamed"), WithWorkers(2))
	require.NoError(t, err)
	assert.Equal(t, "renamed", m.Name())
	assert.Len(t, m.Textures(), 2, "one upload per image and role")
	assert.Equal(t, m.Meshes()[0].Textures(), m.Meshes()[1].Textures())

	prog, err := shader.NewProgram(dev, shader.Source{Name: "phong"})
	require.NoError(t, err)
	defer prog.Destroy()
	prog.Use()
	dev.ResetRecords()
	m.Draw(prog)
	require.Len(t, dev.Draws, 3)
	assert.Equal(t, 6, dev.Draws[0].Count)

	m.Destroy()
	m.Destroy()
	prog.Destroy()
	assert.True(t, dev.Balanced())
}

func TestNewFailureReleasesEverything(t *testing.T) {
	dev := devicetest.New()
	bad := quad(0)
	bad.Normals = bad.Normals[:2]
	imported := &ImportedModel{
		Name:      "broken",
		Meshes:    []ImportedMesh{quad(0), bad},
		Materials: []ImportedMaterial{{Textures: []ImportedTexture{{Type: texture.Diffuse, Data: pngBytes(t), Key: "k"}}}},
	}

	_, err := New(dev, imported)
	assert.ErrorContains(t, err, "2 normals for 4 positions")
	assert.True(t, dev.Balanced())

	imported.Meshes = []ImportedMesh{quad(0)}
	imported.Materials[0].Textures[0].Data = []byte("not an image")
	_, err = New(dev, imported)
	assert.Error(t, err)
	assert.True(t, dev.Balanced())
}

func TestImportedTextureDecodeWithoutSource(t *testing.T) {
	_, err := (&ImportedTexture{Type: texture.Normal, Key: "x"}).Decode()
	assert.ErrorContains(t, err, "neither data nor path")
}
