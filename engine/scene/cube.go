package scene

import (
	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/device"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/mesh"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/texture"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/vertex"
)

// cubeVertex is one interleaved record: position, normal, uv. It has no
// padding, so a slice of them uploads as is.
type cubeVertex struct {
	Pos    [3]float32
	Normal [3]float32
	UV     [2]float32
}

var cubeSpecs = []vertex.AttributeSpec{vertex.Vec3, vertex.Vec3, vertex.Vec2}

// cubeVertices is a unit cube centred on the origin, six faces of two
// triangles each, wound counter-clockwise from outside.
var cubeVertices = []cubeVertex{
	// back
	{[3]float32{-0.5, -0.5, -0.5}, [3]float32{0, 0, -1}, [2]float32{0, 0}},
	{[3]float32{0.5, -0.5, -0.5}, [3]float32{0, 0, -1}, [2]float32{1, 0}},
	{[3]float32{0.5, 0.5, -0.5}, [3]float32{0, 0, -1}, [2]float32{1, 1}},
	{[3]float32{0.5, 0.5, -0.5}, [3]float32{0, 0, -1}, [2]float32{1, 1}},
	{[3]float32{-0.5, 0.5, -0.5}, [3]float32{0, 0, -1}, [2]float32{0, 1}},
	{[3]float32{-0.5, -0.5, -0.5}, [3]float32{0, 0, -1}, [2]float32{0, 0}},
	// front
	{[3]float32{-0.5, -0.5, 0.5}, [3]float32{0, 0, 1}, [2]float32{0, 0}},
	{[3]float32{0.5, -0.5, 0.5}, [3]float32{0, 0, 1}, [2]float32{1, 0}},
	{[3]float32{0.5, 0.5, 0.5}, [3]float32{0, 0, 1}, [2]float32{1, 1}},
	{[3]float32{0.5, 0.5, 0.5}, [3]float32{0, 0, 1}, [2]float32{1, 1}},
	{[3]float32{-0.5, 0.5, 0.5}, [3]float32{0, 0, 1}, [2]float32{0, 1}},
	{[3]float32{-0.5, -0.5, 0.5}, [3]float32{0, 0, 1}, [2]float32{0, 0}},
	// left
	{[3]float32{-0.5, 0.5, 0.5}, [3]float32{-1, 0, 0}, [2]float32{1, 0}},
	{[3]float32{-0.5, 0.5, -0.5}, [3]float32{-1, 0, 0}, [2]float32{1, 1}},
	{[3]float32{-0.5, -0.5, -0.5}, [3]float32{-1, 0, 0}, [2]float32{0, 1}},
	{[3]float32{-0.5, -0.5, -0.5}, [3]float32{-1, 0, 0}, [2]float32{0, 1}},
	{[3]float32{-0.5, -0.5, 0.5}, [3]float32{-1, 0, 0}, [2]float32{0, 0}},
	{[3]float32{-0.5, 0.5, 0.5}, [3]float32{-1, 0, 0}, [2]float32{1, 0}},
	// right
	{[3]float32{0.5, 0.5, 0.5}, [3]float32{1, 0, 0}, [2]float32{1, 0}},
	{[3]float32{0.5, 0.5, -0.5}, [3]float32{1, 0, 0}, [2]float32{1, 1}},
	{[3]float32{0.5, -0.5, -0.5}, [3]float32{1, 0, 0}, [2]float32{0, 1}},
	{[3]float32{0.5, -0.5, -0.5}, [3]float32{1, 0, 0}, [2]float32{0, 1}},
	{[3]float32{0.5, -0.5, 0.5}, [3]float32{1, 0, 0}, [2]float32{0, 0}},
	{[3]float32{0.5, 0.5, 0.5}, [3]float32{1, 0, 0}, [2]float32{1, 0}},
	// bottom
	{[3]float32{-0.5, -0.5, -0.5}, [3]float32{0, -1, 0}, [2]float32{0, 1}},
	{[3]float32{0.5, -0.5, -0.5}, [3]float32{0, -1, 0}, [2]float32{1, 1}},
	{[3]float32{0.5, -0.5, 0.5}, [3]float32{0, -1, 0}, [2]float32{1, 0}},
	{[3]float32{0.5, -0.5, 0.5}, [3]float32{0, -1, 0}, [2]float32{1, 0}},
	{[3]float32{-0.5, -0.5, 0.5}, [3]float32{0, -1, 0}, [2]float32{0, 0}},
	{[3]float32{-0.5, -0.5, -0.5}, [3]float32{0, -1, 0}, [2]float32{0, 1}},
	// top
	{[3]float32{-0.5, 0.5, -0.5}, [3]float32{0, 1, 0}, [2]float32{0, 1}},
	{[3]float32{0.5, 0.5, -0.5}, [3]float32{0, 1, 0}, [2]float32{1, 1}},
	{[3]float32{0.5, 0.5, 0.5}, [3]float32{0, 1, 0}, [2]float32{1, 0}},
	{[3]float32{0.5, 0.5, 0.5}, [3]float32{0, 1, 0}, [2]float32{1, 0}},
	{[3]float32{-0.5, 0.5, 0.5}, [3]float32{0, 1, 0}, [2]float32{0, 0}},
	{[3]float32{-0.5, 0.5, -0.5}, [3]float32{0, 1, 0}, [2]float32{0, 1}},
}

// NewCube uploads the unit cube as an interleaved buffer and wraps it in a
// mesh. The mesh takes ownership of textures.
//
// Parameters:
//   - dev: the device context
//   - textures: material textures, may be empty for a flat marker
//
// Returns:
//   - mesh.Mesh: the cube
//   - error: error if the buffer could not be built
func NewCube(dev device.Device, textures []texture.Texture) (mesh.Mesh, error) {
	n := len(cubeVertices)
	vb, err := vertex.NewInterleaved(dev, vertex.Indices(n), n, cubeSpecs, common.SliceToBytes(cubeVertices))
	if err != nil {
		return nil, err
	}
	return mesh.New(dev, vb, textures, mesh.WithOwnedTextures()), nil
}
