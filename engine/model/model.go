// Package model turns imported model data into drawable meshes that share one
// texture cache per model.
package model

import (
	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/device"
	"github.com/Carmen-Shannon/oxy-gl/engine/logging"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/mesh"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/texture"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/vertex"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// model is the implementation of the Model interface.
type model struct {
	dev          device.Device
	name         string
	workers      int
	flipVertical bool

	meshes    []mesh.Mesh
	textures  []texture.Texture
	boundsMin mgl32.Vec3
	boundsMax mgl32.Vec3
	destroyed bool
}

// Model is a loaded model: its meshes in import order and the textures they share.
type Model interface {
	// Name returns the model identifier.
	Name() string

	// Meshes returns the drawable meshes in import order.
	Meshes() []mesh.Mesh

	// Textures returns the model's texture cache, one entry per distinct image and role.
	Textures() []texture.Texture

	// Bounds returns the axis-aligned box around every mesh in model space.
	Bounds() (min, max mgl32.Vec3)

	// BoundingSphere returns the centre and radius of a sphere enclosing Bounds.
	BoundingSphere() (center mgl32.Vec3, radius float32)

	// Draw draws every mesh with the active program.
	//
	// Parameters:
	//   - program: the active program receiving the material sampler uniforms
	Draw(program shader.Program)

	// Destroy frees every mesh and cached texture. Subsequent calls are no-ops.
	Destroy()
}

var _ Model = &model{}

// textureKey identifies a cached texture. The same image used in two roles is
// uploaded twice because the role is part of the texture.
type textureKey struct {
	key string
	typ texture.Type
}

// New uploads an imported model. Every distinct texture is decoded once on the worker
// pool and shared by the meshes that reference it. Meshes with UVs are laid out as
// Sequential position, normal, uv; meshes without as position, normal.
//
// Parameters:
//   - dev: the device context
//   - imported: CPU side model data
//   - options: builder options
//
// Returns:
//   - Model: the uploaded model
//   - error: error if a texture fails to decode or upload or a mesh is malformed; nothing
//     stays allocated on failure
func New(dev device.Device, imported *ImportedModel, options ...ModelBuilderOption) (Model, error) {
	m := &model{
		dev:     dev,
		name:    imported.Name,
		workers: 1,
	}
	for _, option := range options {
		option(m)
	}

	cache, err := m.loadTextures(imported)
	if err != nil {
		return nil, errors.Wrapf(err, "model %s", m.name)
	}

	for i := range imported.Meshes {
		im := &imported.Meshes[i]
		msh, err := m.uploadMesh(im, imported.Materials, cache)
		if err != nil {
			m.Destroy()
			return nil, errors.Wrapf(err, "model %s mesh %s", m.name, im.Name)
		}
		m.meshes = append(m.meshes, msh)

		lo, hi := mgl32.Vec3(im.BoundingMin), mgl32.Vec3(im.BoundingMax)
		if i == 0 {
			m.boundsMin, m.boundsMax = lo, hi
			continue
		}
		for j := range 3 {
			m.boundsMin[j] = min(m.boundsMin[j], lo[j])
			m.boundsMax[j] = max(m.boundsMax[j], hi[j])
		}
	}

	logging.Get().WithFields(logrus.Fields{
		"model":    m.name,
		"meshes":   len(m.meshes),
		"textures": len(m.textures),
	}).Debug("model uploaded")
	return m, nil
}

// loadTextures decodes every texture referenced by a mesh, in first use order, and
// uploads each one. The returned map is the model's texture cache.
func (m *model) loadTextures(imported *ImportedModel) (map[textureKey]texture.Texture, error) {
	var pending []ImportedTexture
	seen := map[textureKey]bool{}
	for _, im := range imported.Meshes {
		if im.MaterialIndex < 0 || im.MaterialIndex >= len(imported.Materials) {
			continue
		}
		for _, it := range imported.Materials[im.MaterialIndex].Textures {
			k := textureKey{it.Key, it.Type}
			if !seen[k] {
				seen[k] = true
				pending = append(pending, it)
			}
		}
	}

	var opts []texture.DecodeOption
	if m.flipVertical {
		opts = append(opts, texture.WithFlipVertical())
	}
	images, err := texture.DecodeParallel(len(pending), m.workers, func(i int) (*texture.Image, error) {
		return pending[i].Decode(opts...)
	})
	if err != nil {
		return nil, err
	}

	cache := make(map[textureKey]texture.Texture, len(pending))
	for i, img := range images {
		tex, err := texture.New2D(m.dev, img, pending[i].Type)
		if err != nil {
			m.Destroy()
			return nil, errors.Wrapf(err, "texture %s", pending[i].Key)
		}
		cache[textureKey{pending[i].Key, pending[i].Type}] = tex
		m.textures = append(m.textures, tex)
	}
	return cache, nil
}

func (m *model) uploadMesh(im *ImportedMesh, materials []ImportedMaterial, cache map[textureKey]texture.Texture) (mesh.Mesh, error) {
	n := len(im.Positions)
	if len(im.Normals) != n {
		return nil, errors.Errorf("%d normals for %d positions", len(im.Normals), n)
	}

	specs := []vertex.AttributeSpec{vertex.Vec3, vertex.Vec3}
	data := [][]float32{common.Flatten3(im.Positions), common.Flatten3(im.Normals)}
	if im.HasTexCoords() {
		specs = append(specs, vertex.Vec2)
		data = append(data, common.Flatten2(im.TexCoords))
	}

	vb, err := vertex.NewSequential(m.dev, im.Indices, n, specs, data...)
	if err != nil {
		return nil, err
	}

	var textures []texture.Texture
	if im.MaterialIndex >= 0 && im.MaterialIndex < len(materials) {
		for _, it := range materials[im.MaterialIndex].Textures {
			textures = append(textures, cache[textureKey{it.Key, it.Type}])
		}
	}
	return mesh.New(m.dev, vb, textures), nil
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Meshes() []mesh.Mesh {
	return m.meshes
}

func (m *model) Textures() []texture.Texture {
	return m.textures
}

func (m *model) Bounds() (mgl32.Vec3, mgl32.Vec3) {
	return m.boundsMin, m.boundsMax
}

func (m *model) BoundingSphere() (mgl32.Vec3, float32) {
	center := m.boundsMin.Add(m.boundsMax).Mul(0.5)
	return center, m.boundsMax.Sub(center).Len()
}

func (m *model) Draw(program shader.Program) {
	for _, msh := range m.meshes {
		msh.Draw(program)
	}
}

func (m *model) Destroy() {
	if m.destroyed {
		return
	}
	m.destroyed = true
	for _, msh := range m.meshes {
		msh.Destroy()
	}
	for _, tex := range m.textures {
		tex.Destroy()
	}
	m.meshes, m.textures = nil, nil
}
