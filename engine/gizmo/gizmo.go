// Package gizmo draws the camera orientation as three coloured axis lines.
package gizmo

import (
	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/device"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/vertex"

	"github.com/go-gl/mathgl/mgl32"
)

const transformUniform = "transform"

// lineVertex is one end of an axis line.
type lineVertex struct {
	Position mgl32.Vec3
	Color    mgl32.Vec3
}

// axes holds the X, Y and Z axis as red, green and blue line pairs.
var axes = []lineVertex{
	{mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}},
	{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{1, 0, 0}},

	{mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0}},
	{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 1, 0}},

	{mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, 1}},
	{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 0, 1}},
}

type gizmo struct {
	program   shader.Program
	lines     vertex.Buffer
	transform mgl32.Mat4
}

// Gizmo draws world axes oriented like the camera.
type Gizmo interface {
	// SetDirection orients the axes to look along direction.
	//
	// Parameters:
	//   - direction: camera front vector
	SetDirection(direction mgl32.Vec3)

	// Transform returns the current orientation matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the transform uniform value
	Transform() mgl32.Mat4

	// Draw renders the six line vertices into the current viewport.
	Draw()

	// Destroy frees the program and line buffer.
	Destroy()
}

var _ Gizmo = &gizmo{}

// New creates a Gizmo.
//
// Parameters:
//   - dev: the device context
//   - src: the gizmo program sources
//
// Returns:
//   - Gizmo: the gizmo
//   - error: error if the line buffer or program could not be built
func New(dev device.Device, src shader.Source) (Gizmo, error) {
	lines, err := vertex.NewInterleaved(dev, vertex.Indices(len(axes)), len(axes),
		[]vertex.AttributeSpec{vertex.Vec3, vertex.Vec3}, common.SliceToBytes(axes))
	if err != nil {
		return nil, err
	}
	program, err := shader.NewProgram(dev, src)
	if err != nil {
		lines.Destroy()
		return nil, err
	}
	return &gizmo{
		program:   program,
		lines:     lines,
		transform: mgl32.Ident4(),
	}, nil
}

func (g *gizmo) SetDirection(direction mgl32.Vec3) {
	g.transform = mgl32.LookAtV(mgl32.Vec3{}, direction, mgl32.Vec3{0, 1, 0})
}

func (g *gizmo) Transform() mgl32.Mat4 {
	return g.transform
}

func (g *gizmo) Draw() {
	g.program.Use()
	g.program.Set(transformUniform, shader.Mat4(g.transform))
	g.lines.Draw(device.PrimitiveLines)
}

func (g *gizmo) Destroy() {
	g.program.Destroy()
	g.lines.Destroy()
}
