package loader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-gl/engine/model"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/texture"

	"github.com/pkg/errors"
)

// gltfMaterialExtractorImpl is the implementation of the gltfMaterialExtractor interface.
type gltfMaterialExtractorImpl struct {
	parser gltfParser
}

// gltfMaterialExtractor maps glTF materials onto the diffuse, specular and normal texture
// arrays of the phong material.
type gltfMaterialExtractor interface {
	// ExtractMaterial extracts a single material by index. Its textures are ordered
	// diffuse, specular, normal; roles the material does not provide are skipped.
	//
	// Parameters:
	//   - materialIndex: the index of the material in the document
	//
	// Returns:
	//   - *model.ImportedMaterial: the extracted material
	//   - error: error if a texture reference is invalid
	ExtractMaterial(materialIndex int) (*model.ImportedMaterial, error)

	// ExtractAllMaterials extracts every material in document order.
	ExtractAllMaterials() ([]model.ImportedMaterial, error)
}

var _ gltfMaterialExtractor = &gltfMaterialExtractorImpl{}

func newGLTFMaterialExtractor(parser gltfParser) gltfMaterialExtractor {
	return &gltfMaterialExtractorImpl{parser: parser}
}

func (e *gltfMaterialExtractorImpl) ExtractMaterial(materialIndex int) (*model.ImportedMaterial, error) {
	doc := e.parser.Document()
	if doc == nil {
		return nil, errNoDocument
	}
	if materialIndex < 0 || materialIndex >= len(doc.Materials) {
		return nil, errors.Errorf("material index %d out of range", materialIndex)
	}

	mat := &doc.Materials[materialIndex]
	result := &model.ImportedMaterial{Name: mat.Name}

	for _, ref := range materialTextureRefs(mat) {
		if ref.info == nil {
			continue
		}
		tex, err := e.loadTexture(ref.info.Index, ref.typ)
		if err != nil {
			return nil, errors.Wrapf(err, "material %q: %s texture", mat.Name, ref.typ)
		}
		if tex != nil {
			result.Textures = append(result.Textures, *tex)
		}
	}
	return result, nil
}

func (e *gltfMaterialExtractorImpl) ExtractAllMaterials() ([]model.ImportedMaterial, error) {
	doc := e.parser.Document()
	if doc == nil {
		return nil, errNoDocument
	}
	materials := make([]model.ImportedMaterial, len(doc.Materials))
	for i := range doc.Materials {
		mat, err := e.ExtractMaterial(i)
		if err != nil {
			return nil, err
		}
		materials[i] = *mat
	}
	return materials, nil
}

type textureRef struct {
	typ  texture.Type
	info *gltfTextureInfo
}

// materialTextureRefs picks one source per role in draw order. The specular role prefers
// a specular extension map and falls back to the metallic-roughness map.
func materialTextureRefs(mat *gltfMaterial) []textureRef {
	var diffuse, specular *gltfTextureInfo
	if pbr := mat.PbrMetallicRoughness; pbr != nil {
		diffuse = pbr.BaseColorTexture
		specular = pbr.MetallicRoughnessTexture
	}
	if ext := mat.Extensions; ext != nil {
		if sg := ext.SpecularGlossiness; sg != nil {
			if sg.DiffuseTexture != nil {
				diffuse = sg.DiffuseTexture
			}
			if sg.SpecularGlossinessTexture != nil {
				specular = sg.SpecularGlossinessTexture
			}
		}
		if s := ext.Specular; s != nil {
			if s.SpecularColorTexture != nil {
				specular = s.SpecularColorTexture
			} else if s.SpecularTexture != nil {
				specular = s.SpecularTexture
			}
		}
	}
	return []textureRef{
		{texture.Diffuse, diffuse},
		{texture.Specular, specular},
		{texture.Normal, mat.NormalTexture},
	}
}

// loadTexture resolves a texture index to its image. External URIs become paths under
// the document directory and are read later; embedded images are copied out of their
// buffer view or data URI.
func (e *gltfMaterialExtractorImpl) loadTexture(textureIndex int, typ texture.Type) (*model.ImportedTexture, error) {
	doc := e.parser.Document()
	if textureIndex < 0 || textureIndex >= len(doc.Textures) {
		return nil, errors.Errorf("texture index %d out of range", textureIndex)
	}
	tex := &doc.Textures[textureIndex]
	if tex.Source == nil {
		return nil, nil
	}
	imageIndex := *tex.Source
	if imageIndex < 0 || imageIndex >= len(doc.Images) {
		return nil, errors.Errorf("image index %d out of range", imageIndex)
	}
	img := &doc.Images[imageIndex]

	result := &model.ImportedTexture{
		Type:     typ,
		MimeType: img.MimeType,
		Key:      fmt.Sprintf("image:%d", imageIndex),
	}

	switch {
	case img.BufferView != nil:
		view, err := e.parser.ReadBufferView(*img.BufferView)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read image buffer view")
		}
		result.Data = append([]byte(nil), view...)
	case strings.HasPrefix(img.URI, "data:"):
		data, err := decodeDataURI(img.URI)
		if err != nil {
			return nil, errors.Wrap(err, "failed to decode image data URI")
		}
		result.Data = data
		if result.MimeType == "" {
			result.MimeType = strings.TrimSuffix(img.URI[len("data:"):strings.Index(img.URI, ",")], ";base64")
		}
	case img.URI != "":
		result.Path = filepath.Join(e.parser.BaseDir(), filepath.FromSlash(img.URI))
		result.Key = result.Path
	default:
		return nil, errors.Errorf("image %d has neither URI nor buffer view", imageIndex)
	}
	return result, nil
}
