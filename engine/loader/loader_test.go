package loader

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/engine/device/devicetest"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/texture"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := range 2 {
		for x := range 2 {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// triangleBuffer packs positions, normals, uvs and uint16 indices of one triangle.
func triangleBuffer() []byte {
	var buf bytes.Buffer
	w := func(v any) { _ = binary.Write(&buf, binary.LittleEndian, v) }
	w([9]float32{0, 0, 0, 1, 0, 0, 0, 1, 0})
	w([9]float32{0, 0, 1, 0, 0, 1, 0, 0, 1})
	w([6]float32{0, 0, 1, 0, 0, 1})
	w([3]uint16{0, 1, 2})
	w(uint16(0))
	return buf.Bytes()
}

// triangleDoc describes two nodes, the second a child of the first, each with one
// triangle mesh. Mesh 0 uses material 0 with diffuse, specular and normal maps; mesh 1
// has no normals, no UVs and no material.
func triangleDoc(bufferURI string) map[string]any {
	buffer := map[string]any{"byteLength": 104}
	if bufferURI != "" {
		buffer["uri"] = bufferURI
	}
	return map[string]any{
		"asset":  map[string]any{"version": "2.0"},
		"scene":  0,
		"scenes": []any{map[string]any{"nodes": []int{0}}},
		"nodes": []any{
			map[string]any{"mesh": 0, "children": []int{1}},
			map[string]any{"mesh": 1},
		},
		"meshes": []any{
			map[string]any{"name": "lit", "primitives": []any{map[string]any{
				"attributes": map[string]int{"POSITION": 0, "NORMAL": 1, "TEXCOORD_0": 2},
				"indices":    3,
				"material":   0,
			}}},
			map[string]any{"name": "bare", "primitives": []any{map[string]any{
				"attributes": map[string]int{"POSITION": 0},
				"indices":    3,
			}}},
		},
		"accessors": []any{
			map[string]any{"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3"},
			map[string]any{"bufferView": 1, "componentType": 5126, "count": 3, "type": "VEC3"},
			map[string]any{"bufferView": 2, "componentType": 5126, "count": 3, "type": "VEC2"},
			map[string]any{"bufferView": 3, "componentType": 5123, "count": 3, "type": "SCALAR"},
		},
		"bufferViews": []any{
			map[string]any{"buffer": 0, "byteOffset": 0, "byteLength": 36},
			map[string]any{"buffer": 0, "byteOffset": 36, "byteLength": 36},
			map[string]any{"buffer": 0, "byteOffset": 72, "byteLength": 24},
			map[string]any{"buffer": 0, "byteOffset": 96, "byteLength": 6},
		},
		"buffers": []any{buffer},
		"materials": []any{map[string]any{
			"name":                 "crate",
			"pbrMetallicRoughness": map[string]any{"baseColorTexture": map[string]int{"index": 0}},
			"normalTexture":        map[string]int{"index": 2},
			"extensions": map[string]any{
				"KHR_materials_specular": map[string]any{"specularColorTexture": map[string]int{"index": 1}},
			},
		}},
		"textures": []any{
			map[string]int{"source": 0},
			map[string]int{"source": 1},
			map[string]int{"source": 0},
		},
	}
}

func writeGLTF(t *testing.T, dir string, doc map[string]any) string {
	t.Helper()
	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	path := filepath.Join(dir, "model.gltf")
	require.NoError(t, os.WriteFile(path, raw, 0o644))
	return path
}

func fixtureGLTF(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "textures"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "textures", "spec.png"), encodePNG(t, color.Gray{Y: 200}), 0o644))

	doc := triangleDoc("data:application/octet-stream;base64," + base64.StdEncoding.EncodeToString(triangleBuffer()))
	doc["images"] = []any{
		map[string]any{"uri": "data:image/png;base64," + base64.StdEncoding.EncodeToString(encodePNG(t, color.RGBA{255, 0, 0, 255}))},
		map[string]any{"uri": "textures/spec.png"},
	}
	return writeGLTF(t, dir, doc), dir
}

func TestImportTraversalAndAttributes(t *testing.T) {
	path, dir := fixtureGLTF(t)

	imported, err := NewLoader(devicetest.New()).Import(path)
	require.NoError(t, err)
	assert.Equal(t, "model", imported.Name)
	assert.Equal(t, dir, imported.Dir)

	require.Len(t, imported.Meshes, 2)
	lit, bare := imported.Meshes[0], imported.Meshes[1]
	assert.Equal(t, "lit", lit.Name, "parent meshes come before children")
	assert.Equal(t, "bare", bare.Name)

	assert.Equal(t, []uint32{0, 1, 2}, lit.Indices)
	assert.Equal(t, [][3]float32{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}}, lit.Normals)
	assert.Equal(t, [][2]float32{{0, 0}, {1, 0}, {0, 1}}, lit.TexCoords)
	assert.Equal(t, 0, lit.MaterialIndex)
	assert.Equal(t, [3]float32{1, 1, 0}, lit.BoundingMax)

	assert.False(t, bare.HasTexCoords())
	assert.Equal(t, -1, bare.MaterialIndex)
	require.Len(t, bare.Normals, 3)
	assert.Equal(t, [3]float32{0, 0, 1}, bare.Normals[0], "normals are generated from winding")

	require.Len(t, imported.Materials, 1)
	tex := imported.Materials[0].Textures
	require.Len(t, tex, 3)
	assert.Equal(t, []texture.Type{texture.Diffuse, texture.Specular, texture.Normal},
		[]texture.Type{tex[0].Type, tex[1].Type, tex[2].Type})
	assert.NotEmpty(t, tex[0].Data)
	assert.Equal(t, "image/png", tex[0].MimeType)
	assert.Equal(t, filepath.Join(dir, "textures", "spec.png"), tex[1].Path)
	assert.Equal(t, tex[0].Key, tex[2].Key, "diffuse and normal share image 0")
}

func TestImportGLB(t *testing.T) {
	bin := triangleBuffer()
	pngData := encodePNG(t, color.RGBA{0, 0, 255, 255})
	imageOffset := len(bin)
	bin = append(bin, pngData...)
	for len(bin)%4 != 0 {
		bin = append(bin, 0)
	}

	doc := triangleDoc("")
	doc["buffers"] = []any{map[string]any{"byteLength": len(bin)}}
	views := doc["bufferViews"].([]any)
	doc["bufferViews"] = append(views, map[string]any{"buffer": 0, "byteOffset": imageOffset, "byteLength": len(pngData)})
	doc["images"] = []any{
		map[string]any{"bufferView": 4, "mimeType": "image/png"},
		map[string]any{"bufferView": 4, "mimeType": "image/png"},
	}

	jsonData, err := json.Marshal(doc)
	require.NoError(t, err)
	for len(jsonData)%4 != 0 {
		jsonData = append(jsonData, ' ')
	}

	var glb bytes.Buffer
	w := func(v any) { require.NoError(t, binary.Write(&glb, binary.LittleEndian, v)) }
	w(gltfGLBHeader{Magic: gltfGLBMagic, Version: gltfGLBVersion, Length: uint32(12 + 8 + len(jsonData) + 8 + len(bin))})
	w(gltfGLBChunkHeader{ChunkLength: uint32(len(jsonData)), ChunkType: gltfGLBChunkJSON})
	glb.Write(jsonData)
	w(gltfGLBChunkHeader{ChunkLength: uint32(len(bin)), ChunkType: gltfGLBChunkBIN})
	glb.Write(bin)

	path := filepath.Join(t.TempDir(), "box.glb")
	require.NoError(t, os.WriteFile(path, glb.Bytes(), 0o644))

	dev := devicetest.New()
	l := NewLoader(dev)
	m, err := l.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "box", m.Name())
	require.Len(t, m.Meshes(), 2)

	// Image 0 as diffuse and normal plus image 1 as specular: three cached uploads.
	assert.Len(t, m.Textures(), 3)
	assert.Equal(t, 3, dev.Live(devicetest.KindTexture))
	assert.Len(t, m.Meshes()[0].Textures(), 3)
	assert.Empty(t, m.Meshes()[1].Textures())

	again, err := l.Load(path)
	require.NoError(t, err)
	assert.Same(t, m, again)

	l.Destroy()
	assert.True(t, dev.Balanced())
	assert.Nil(t, l.Get(path))
}

func TestLoadUploadsLayoutPerMesh(t *testing.T) {
	path, _ := fixtureGLTF(t)
	dev := devicetest.New()
	l := NewLoader(dev, WithWorkers(2))

	m, err := l.Load(path)
	require.NoError(t, err)
	defer l.Destroy()

	lit := m.Meshes()[0].Buffer()
	bare := m.Meshes()[1].Buffer()
	assert.Len(t, lit.Layout().Attributes, 3, "position, normal, uv")
	assert.Len(t, bare.Layout().Attributes, 2, "position, normal")
	assert.Equal(t, 3, lit.ElementCount())

	slots := m.Meshes()[0].Slots()
	require.Len(t, slots, 3)
	assert.Equal(t, "material.diffuseTextures[0]", slots[0].Uniform)
	assert.Equal(t, "material.specularTextures[0]", slots[1].Uniform)
	assert.Equal(t, "material.normalTextures[0]", slots[2].Uniform)

	center, radius := m.BoundingSphere()
	assert.InDelta(t, 0.5, center[0], 1e-6)
	assert.InDelta(t, 0.7071, radius, 1e-3)
}

func TestImportNoRootNode(t *testing.T) {
	dir := t.TempDir()
	doc := triangleDoc("data:application/octet-stream;base64," + base64.StdEncoding.EncodeToString(triangleBuffer()))
	delete(doc, "scenes")
	path := writeGLTF(t, dir, doc)

	dev := devicetest.New()
	_, err := NewLoader(dev).Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoRootNode))
	assert.True(t, dev.Balanced())

	doc["scenes"] = []any{map[string]any{}}
	path = writeGLTF(t, dir, doc)
	_, err = NewLoader(dev).Import(path)
	assert.True(t, errors.Is(err, ErrNoRootNode))
}

func TestImportRejects(t *testing.T) {
	dir := t.TempDir()
	uri := "data:application/octet-stream;base64," + base64.StdEncoding.EncodeToString(triangleBuffer())

	t.Run("non-triangle primitive", func(t *testing.T) {
		doc := triangleDoc(uri)
		prim := doc["meshes"].([]any)[1].(map[string]any)["primitives"].([]any)[0].(map[string]any)
		prim["mode"] = 1
		doc["images"] = []any{map[string]any{"uri": "a.png"}, map[string]any{"uri": "b.png"}}
		_, err := NewLoader(devicetest.New()).Import(writeGLTF(t, dir, doc))
		assert.ErrorContains(t, err, "only triangles")
	})

	t.Run("node cycle", func(t *testing.T) {
		doc := triangleDoc(uri)
		doc["nodes"].([]any)[1].(map[string]any)["children"] = []int{0}
		doc["images"] = []any{map[string]any{"uri": "a.png"}, map[string]any{"uri": "b.png"}}
		_, err := NewLoader(devicetest.New()).Import(writeGLTF(t, dir, doc))
		assert.ErrorContains(t, err, "own ancestor")
	})

	t.Run("missing texture file", func(t *testing.T) {
		doc := triangleDoc(uri)
		doc["images"] = []any{map[string]any{"uri": "a.png"}, map[string]any{"uri": "b.png"}}
		dev := devicetest.New()
		_, err := NewLoader(dev).Load(writeGLTF(t, dir, doc))
		assert.Error(t, err)
		assert.True(t, dev.Balanced())
	})

	t.Run("unknown extension", func(t *testing.T) {
		_, err := NewLoader(devicetest.New()).Load(filepath.Join(dir, "model.obj"))
		assert.True(t, errors.Is(err, ErrUnsupportedFormat))
	})

	t.Run("wrong version", func(t *testing.T) {
		doc := triangleDoc(uri)
		doc["asset"] = map[string]any{"version": "1.0"}
		_, err := NewLoader(devicetest.New()).Import(writeGLTF(t, dir, doc))
		assert.True(t, errors.Is(err, errInvalidGLTFVersion))
	})
}

func TestLoadReader(t *testing.T) {
	path, dir := fixtureGLTF(t)
	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	dev := devicetest.New()
	l := NewLoader(dev)
	m, err := l.LoadReader("streamed", bytes.NewReader(raw), dir, false)
	require.NoError(t, err)
	assert.Equal(t, "streamed", m.Name())
	assert.Same(t, m, l.Get("streamed"))
	assert.Len(t, l.Models(), 1)
	l.Destroy()
	assert.True(t, dev.Balanced())
}
