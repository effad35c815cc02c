package model

import (
	"bytes"

	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/texture"

	"github.com/pkg/errors"
)

// ImportedModel is the CPU side of a model file as produced by an importer, before any
// device resources exist.
type ImportedModel struct {
	// Name is the model identifier.
	Name string

	// Dir is the directory texture paths were resolved against.
	Dir string

	// Meshes in scene traversal order: a node's meshes, then its children, depth first.
	Meshes []ImportedMesh

	// Materials referenced by ImportedMesh.MaterialIndex.
	Materials []ImportedMaterial
}

// ImportedMesh is one triangle list of an imported model.
type ImportedMesh struct {
	Name string

	Positions [][3]float32
	Normals   [][3]float32

	// TexCoords is nil when the source mesh has no UV set. Such meshes are uploaded
	// without the texture coordinate attribute.
	TexCoords [][2]float32

	Indices []uint32

	// MaterialIndex references ImportedModel.Materials, -1 for none.
	MaterialIndex int

	BoundingMin [3]float32
	BoundingMax [3]float32
}

// HasTexCoords reports whether the mesh carries a UV set.
func (m *ImportedMesh) HasTexCoords() bool {
	return len(m.TexCoords) > 0
}

// ImportedMaterial lists a material's textures in diffuse, specular, normal order.
type ImportedMaterial struct {
	Name     string
	Textures []ImportedTexture
}

// ImportedTexture is a material texture from a model file. External images carry a
// path, embedded ones carry their encoded bytes.
type ImportedTexture struct {
	Type texture.Type

	// Path is the resolved file path for external textures (empty for embedded).
	Path string

	// Data contains encoded image bytes (PNG/JPEG) for embedded textures.
	Data []byte

	// MimeType is the declared format of Data, when known.
	MimeType string

	// Key identifies the image within its model and is used to share decoded textures
	// between meshes. It is the path for external textures.
	Key string
}

// Decode decodes the texture image. Rows stay top to bottom unless a flip option is
// given, which matches glTF texture coordinates.
//
// Parameters:
//   - opts: decode options
//
// Returns:
//   - *texture.Image: packed pixels
//   - error: error if the texture has no source or decoding fails
func (t *ImportedTexture) Decode(opts ...texture.DecodeOption) (*texture.Image, error) {
	switch {
	case len(t.Data) > 0:
		img, err := texture.Decode(bytes.NewReader(t.Data), opts...)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to decode embedded %s texture %s", t.Type, t.Key)
		}
		return img, nil
	case t.Path != "":
		return texture.DecodeFile(t.Path, opts...)
	default:
		return nil, errors.Errorf("%s texture %s has neither data nor path", t.Type, t.Key)
	}
}
