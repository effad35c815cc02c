package loader

import (
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-gl/engine/model"

	"github.com/pkg/errors"
)

// gltfMeshExtractorImpl is the implementation of the gltfMeshExtractor interface.
type gltfMeshExtractorImpl struct {
	parser gltfParser
}

// gltfMeshExtractor converts glTF mesh primitives into ImportedMesh values.
type gltfMeshExtractor interface {
	// ExtractMesh extracts a single mesh by index, one ImportedMesh per primitive.
	//
	// Parameters:
	//   - meshIndex: the index of the mesh to extract
	//
	// Returns:
	//   - []model.ImportedMesh: one ImportedMesh per primitive
	//   - error: error if a primitive is not a triangle list or its accessors are invalid
	ExtractMesh(meshIndex int) ([]model.ImportedMesh, error)
}

var _ gltfMeshExtractor = &gltfMeshExtractorImpl{}

func newGLTFMeshExtractor(parser gltfParser) gltfMeshExtractor {
	return &gltfMeshExtractorImpl{parser: parser}
}

func (e *gltfMeshExtractorImpl) ExtractMesh(meshIndex int) ([]model.ImportedMesh, error) {
	doc := e.parser.Document()
	if doc == nil {
		return nil, errNoDocument
	}
	if meshIndex < 0 || meshIndex >= len(doc.Meshes) {
		return nil, errors.Errorf("mesh index %d out of range", meshIndex)
	}

	mesh := &doc.Meshes[meshIndex]
	result := make([]model.ImportedMesh, 0, len(mesh.Primitives))
	for primIdx := range mesh.Primitives {
		imported, err := e.extractPrimitive(&mesh.Primitives[primIdx], meshName(mesh.Name, meshIndex, primIdx))
		if err != nil {
			return nil, errors.Wrapf(err, "mesh %d primitive %d", meshIndex, primIdx)
		}
		result = append(result, *imported)
	}
	return result, nil
}

func meshName(name string, meshIndex, primIndex int) string {
	if name == "" {
		name = fmt.Sprintf("mesh_%d", meshIndex)
	}
	if primIndex > 0 {
		name = fmt.Sprintf("%s_prim%d", name, primIndex)
	}
	return name
}

// extractPrimitive reads one triangle-list primitive. Missing normals are generated from
// the geometry and missing indices become the identity sequence.
func (e *gltfMeshExtractorImpl) extractPrimitive(prim *gltfPrimitive, name string) (*model.ImportedMesh, error) {
	if prim.Mode != nil && *prim.Mode != gltfPrimitiveModeTriangles {
		return nil, errors.Errorf("unsupported primitive mode %d (only triangles are supported)", *prim.Mode)
	}

	posAccessor, ok := prim.Attributes[gltfAttributePosition]
	if !ok {
		return nil, errors.New("primitive has no POSITION attribute")
	}
	positions, err := e.parser.ReadVec3Accessor(posAccessor)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read positions")
	}
	vertexCount := len(positions)

	var indices []uint32
	if prim.Indices != nil {
		indices, err = e.parser.ReadIndicesAccessor(*prim.Indices)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read indices")
		}
		for _, idx := range indices {
			if int(idx) >= vertexCount {
				return nil, errors.Errorf("index %d out of range for %d vertices", idx, vertexCount)
			}
		}
	} else {
		indices = make([]uint32, vertexCount)
		for i := range indices {
			indices[i] = uint32(i)
		}
	}
	if len(indices)%3 != 0 {
		return nil, errors.Errorf("triangle list has %d indices", len(indices))
	}

	var normals [][3]float32
	if normalAccessor, ok := prim.Attributes[gltfAttributeNormal]; ok {
		normals, err = e.parser.ReadVec3Accessor(normalAccessor)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read normals")
		}
		if len(normals) != vertexCount {
			return nil, errors.Errorf("%d normals for %d positions", len(normals), vertexCount)
		}
	} else {
		normals = generateNormals(positions, indices)
	}

	var texCoords [][2]float32
	if texCoordAccessor, ok := prim.Attributes[gltfAttributeTexCoord]; ok {
		texCoords, err = e.parser.ReadVec2Accessor(texCoordAccessor)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read texcoords")
		}
		if len(texCoords) != vertexCount {
			return nil, errors.Errorf("%d texcoords for %d positions", len(texCoords), vertexCount)
		}
	}

	materialIndex := -1
	if prim.Material != nil {
		materialIndex = *prim.Material
	}

	bmin, bmax := gltfCalculateBoundingBox(positions)
	return &model.ImportedMesh{
		Name:          name,
		Positions:     positions,
		Normals:       normals,
		TexCoords:     texCoords,
		Indices:       indices,
		MaterialIndex: materialIndex,
		BoundingMin:   bmin,
		BoundingMax:   bmax,
	}, nil
}

func gltfCalculateBoundingBox(positions [][3]float32) ([3]float32, [3]float32) {
	if len(positions) == 0 {
		return [3]float32{}, [3]float32{}
	}
	bmin, bmax := positions[0], positions[0]
	for _, pos := range positions[1:] {
		for j := range 3 {
			bmin[j] = min(bmin[j], pos[j])
			bmax[j] = max(bmax[j], pos[j])
		}
	}
	return bmin, bmax
}

// generateNormals computes smooth vertex normals by accumulating area weighted face normals
// onto each triangle's vertices. Vertices touched only by degenerate triangles get +Y.
//
// Parameters:
//   - positions: vertex positions
//   - indices: triangle list indices, all in range
//
// Returns:
//   - [][3]float32: one unit normal per position
func generateNormals(positions [][3]float32, indices []uint32) [][3]float32 {
	accum := make([][3]float32, len(positions))

	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		p0, p1, p2 := positions[i0], positions[i1], positions[i2]

		edge1 := [3]float32{p1[0] - p0[0], p1[1] - p0[1], p1[2] - p0[2]}
		edge2 := [3]float32{p2[0] - p0[0], p2[1] - p0[1], p2[2] - p0[2]}
		face := [3]float32{
			edge1[1]*edge2[2] - edge1[2]*edge2[1],
			edge1[2]*edge2[0] - edge1[0]*edge2[2],
			edge1[0]*edge2[1] - edge1[1]*edge2[0],
		}

		for _, idx := range [3]uint32{i0, i1, i2} {
			accum[idx][0] += face[0]
			accum[idx][1] += face[1]
			accum[idx][2] += face[2]
		}
	}

	for i, n := range accum {
		length := float32(math.Sqrt(float64(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])))
		if length < 1e-6 {
			accum[i] = [3]float32{0, 1, 0}
			continue
		}
		accum[i] = [3]float32{n[0] / length, n[1] / length, n[2] / length}
	}
	return accum
}
