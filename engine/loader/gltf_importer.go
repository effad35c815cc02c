package loader

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-gl/engine/model"

	"github.com/pkg/errors"
)

// ErrNoRootNode is returned for documents without a scene to traverse.
var ErrNoRootNode = errors.New("model has no root node")

// gltfImporterImpl is the implementation of the gltfImporter interface.
type gltfImporterImpl struct{}

// gltfImporter runs the parser and extractors to produce an ImportedModel.
type gltfImporter interface {
	// Import loads a glTF/GLB file.
	//
	// Parameters:
	//   - path: the file path to the glTF or GLB file
	//
	// Returns:
	//   - *model.ImportedModel: the imported model
	//   - error: ErrNoRootNode for documents without a scene, or a parse/extract error
	Import(path string) (*model.ImportedModel, error)

	// ImportReader loads a document from a stream. Relative URIs resolve against dir.
	//
	// Parameters:
	//   - r: the reader providing glTF/GLB data
	//   - name: model name
	//   - dir: directory relative URIs resolve against
	//   - isGLB: true if the reader provides GLB binary data
	//
	// Returns:
	//   - *model.ImportedModel: the imported model
	//   - error: error if import fails
	ImportReader(r io.Reader, name, dir string, isGLB bool) (*model.ImportedModel, error)
}

var _ gltfImporter = &gltfImporterImpl{}

func newGLTFImporter() gltfImporter {
	return &gltfImporterImpl{}
}

func (imp *gltfImporterImpl) Import(path string) (*model.ImportedModel, error) {
	parser := newGLTFParser()
	if err := parser.Parse(path); err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", path)
	}
	return imp.importFromParser(parser, gltfModelName(parser.Document(), path))
}

func (imp *gltfImporterImpl) ImportReader(r io.Reader, name, dir string, isGLB bool) (*model.ImportedModel, error) {
	parser := newGLTFParser()
	if err := parser.ParseReader(r, dir, isGLB); err != nil {
		return nil, errors.Wrap(err, "failed to parse from reader")
	}
	return imp.importFromParser(parser, name)
}

// importFromParser walks the default scene depth first, emitting a node's meshes before
// its children's. A mesh referenced by several nodes is emitted once per reference.
func (imp *gltfImporterImpl) importFromParser(parser gltfParser, name string) (*model.ImportedModel, error) {
	doc := parser.Document()
	roots, err := gltfRootNodes(doc)
	if err != nil {
		return nil, err
	}

	materials, err := newGLTFMaterialExtractor(parser).ExtractAllMaterials()
	if err != nil {
		return nil, errors.Wrap(err, "material extraction failed")
	}

	meshExtractor := newGLTFMeshExtractor(parser)
	extracted := map[int][]model.ImportedMesh{}
	var meshes []model.ImportedMesh
	onStack := map[int]bool{}

	var visit func(nodeIndex int) error
	visit = func(nodeIndex int) error {
		if nodeIndex < 0 || nodeIndex >= len(doc.Nodes) {
			return errors.Errorf("node index %d out of range", nodeIndex)
		}
		if onStack[nodeIndex] {
			return errors.Errorf("node %d is its own ancestor", nodeIndex)
		}
		onStack[nodeIndex] = true
		defer delete(onStack, nodeIndex)

		node := &doc.Nodes[nodeIndex]
		if node.Mesh != nil {
			prims, ok := extracted[*node.Mesh]
			if !ok {
				var err error
				if prims, err = meshExtractor.ExtractMesh(*node.Mesh); err != nil {
					return err
				}
				extracted[*node.Mesh] = prims
			}
			for _, m := range prims {
				if m.MaterialIndex >= len(materials) {
					return errors.Errorf("mesh %s references missing material %d", m.Name, m.MaterialIndex)
				}
			}
			meshes = append(meshes, prims...)
		}
		for _, child := range node.Children {
			if err := visit(child); err != nil {
				return err
			}
		}
		return nil
	}

	for _, root := range roots {
		if err := visit(root); err != nil {
			return nil, errors.Wrap(err, "mesh extraction failed")
		}
	}

	return &model.ImportedModel{
		Name:      name,
		Dir:       parser.BaseDir(),
		Meshes:    meshes,
		Materials: materials,
	}, nil
}

// gltfRootNodes returns the root nodes of the default scene, or of the first scene
// when the document does not name one.
func gltfRootNodes(doc *gltfDocument) ([]int, error) {
	sceneIndex := 0
	if doc.Scene != nil {
		sceneIndex = *doc.Scene
	}
	if sceneIndex < 0 || sceneIndex >= len(doc.Scenes) {
		return nil, errors.Wrapf(ErrNoRootNode, "scene %d not present", sceneIndex)
	}
	roots := doc.Scenes[sceneIndex].Nodes
	if len(roots) == 0 {
		return nil, errors.Wrapf(ErrNoRootNode, "scene %d is empty", sceneIndex)
	}
	return roots, nil
}

// gltfModelName prefers the default scene's name and falls back to the file name.
func gltfModelName(doc *gltfDocument, path string) string {
	if doc.Scene != nil && *doc.Scene >= 0 && *doc.Scene < len(doc.Scenes) {
		if name := doc.Scenes[*doc.Scene].Name; name != "" {
			return name
		}
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
