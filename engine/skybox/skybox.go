// Package skybox draws an environment cube map behind the scene.
package skybox

import (
	"github.com/Carmen-Shannon/oxy-gl/engine/device"
	"github.com/Carmen-Shannon/oxy-gl/engine/logging"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/texture"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/vertex"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

const (
	viewUniform       = "view"
	projectionUniform = "projection"
	cubemapUniform    = "cubemap"
)

// cubeVertices is the unit cube as 36 positions, two triangles per face.
var cubeVertices = []float32{
	-1, 1, -1,
	-1, -1, -1,
	1, -1, -1,
	1, -1, -1,
	1, 1, -1,
	-1, 1, -1,

	-1, -1, 1,
	-1, -1, -1,
	-1, 1, -1,
	-1, 1, -1,
	-1, 1, 1,
	-1, -1, 1,

	1, -1, -1,
	1, -1, 1,
	1, 1, 1,
	1, 1, 1,
	1, 1, -1,
	1, -1, -1,

	-1, -1, 1,
	-1, 1, 1,
	1, 1, 1,
	1, 1, 1,
	1, -1, 1,
	-1, -1, 1,

	-1, 1, -1,
	1, 1, -1,
	1, 1, 1,
	1, 1, 1,
	-1, 1, 1,
	-1, 1, -1,

	-1, -1, -1,
	-1, -1, 1,
	1, -1, -1,
	1, -1, -1,
	-1, -1, 1,
	1, -1, 1,
}

type skybox struct {
	dev     device.Device
	program shader.Program
	cube    vertex.Buffer
	cubemap texture.Texture

	view       mgl32.Mat4
	projection mgl32.Mat4
}

// Skybox draws a cube map around the camera.
type Skybox interface {
	// UpdateTransform stores the camera matrices for the next Draw. The
	// translation part of view is dropped so the box follows the camera.
	//
	// Parameters:
	//   - view: camera view matrix
	//   - projection: camera projection matrix
	UpdateTransform(view, projection mgl32.Mat4)

	// View returns the translation-free view matrix last stored.
	//
	// Returns:
	//   - mgl32.Mat4: the rotation-only view
	View() mgl32.Mat4

	// Cubemap returns the environment texture.
	//
	// Returns:
	//   - texture.Texture: the cube map
	Cubemap() texture.Texture

	// Draw renders the box with depth writes disabled and a less-or-equal
	// depth test, restoring both afterwards.
	Draw()

	// Destroy frees the program, cube and cube map.
	Destroy()
}

var _ Skybox = &skybox{}

// New creates a Skybox from six decoded faces in +X, -X, +Y, -Y, +Z, -Z order.
//
// Parameters:
//   - dev: the device context
//   - src: the skybox program sources
//   - faces: the six cube faces
//
// Returns:
//   - Skybox: the skybox
//   - error: error if the cube map, cube or program could not be built
func New(dev device.Device, src shader.Source, faces [6]*texture.Image) (Skybox, error) {
	cubemap, err := texture.NewCubemap(dev, faces)
	if err != nil {
		return nil, errors.Wrap(err, "skybox cube map")
	}

	cube, err := vertex.NewSequential(dev, vertex.Indices(len(cubeVertices)/3), len(cubeVertices)/3,
		[]vertex.AttributeSpec{vertex.Vec3}, cubeVertices)
	if err != nil {
		cubemap.Destroy()
		return nil, errors.Wrap(err, "skybox cube")
	}

	program, err := shader.NewProgram(dev, src)
	if err != nil {
		cube.Destroy()
		cubemap.Destroy()
		return nil, err
	}

	logging.Get().WithField("size", cubemap.Width()).Debug("skybox created")
	return &skybox{
		dev:        dev,
		program:    program,
		cube:       cube,
		cubemap:    cubemap,
		view:       mgl32.Ident4(),
		projection: mgl32.Ident4(),
	}, nil
}

// Load decodes the six face images in parallel and creates a Skybox.
//
// Parameters:
//   - dev: the device context
//   - src: the skybox program sources
//   - paths: six face image paths in +X, -X, +Y, -Y, +Z, -Z order
//   - workers: decode pool size
//
// Returns:
//   - Skybox: the skybox
//   - error: error if a face could not be decoded or the skybox could not be built
func Load(dev device.Device, src shader.Source, paths []string, workers int) (Skybox, error) {
	if len(paths) != 6 {
		return nil, errors.Errorf("skybox needs 6 faces, got %d", len(paths))
	}
	images, err := texture.DecodeFiles(paths, workers)
	if err != nil {
		return nil, errors.Wrap(err, "skybox faces")
	}
	var faces [6]*texture.Image
	copy(faces[:], images)
	return New(dev, src, faces)
}

func (s *skybox) UpdateTransform(view, projection mgl32.Mat4) {
	s.view = view.Mat3().Mat4()
	s.projection = projection
}

func (s *skybox) View() mgl32.Mat4 {
	return s.view
}

func (s *skybox) Cubemap() texture.Texture {
	return s.cubemap
}

func (s *skybox) Draw() {
	s.dev.DepthMask(false)
	s.dev.DepthFunc(device.DepthLessEqual)
	defer func() {
		s.dev.DepthFunc(device.DepthLess)
		s.dev.DepthMask(true)
	}()

	s.program.Use()
	s.program.Set(viewUniform, shader.Mat4(s.view))
	s.program.Set(projectionUniform, shader.Mat4(s.projection))
	s.program.Set(cubemapUniform, shader.Int(0))
	s.cubemap.Bind(0)
	s.cube.Draw(device.PrimitiveTriangles)
}

func (s *skybox) Destroy() {
	s.program.Destroy()
	s.cube.Destroy()
	s.cubemap.Destroy()
}
