// Package postprocess implements full-screen passes that sample an input
// texture, usually a deferred framebuffer attachment, plus small lookup
// textures and draw a clip-space quad onto the bound target.
//
// Texture unit 0 always carries the input. Lookups take units 1 and up in
// construction order.
package postprocess

import (
	"github.com/Carmen-Shannon/oxy-gl/engine/device"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/texture"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/vertex"

	"github.com/pkg/errors"
)

const (
	imageTextureUniform    = "imageTexture"
	imageHorizontalUniform = "imageHorizontalScale"
	imageVerticalUniform   = "imageVerticalScale"
)

var (
	quadCorners = []float32{
		-1, -1, 0,
		1, -1, 0,
		1, 1, 0,
		-1, 1, 0,
	}
	quadIndices = []uint32{0, 1, 2, 2, 0, 3}
)

// NewQuad builds the clip-space unit quad shared by every pass: four corners
// spanning [-1,1]² and two triangles.
//
// Parameters:
//   - dev: the device context
//
// Returns:
//   - vertex.Buffer: sequential Vec3 buffer with 6 indices
//   - error: error if the upload could not be described
func NewQuad(dev device.Device) (vertex.Buffer, error) {
	return vertex.NewSequential(dev, quadIndices, 4, []vertex.AttributeSpec{vertex.Vec3}, quadCorners)
}

type lookup struct {
	uniform string
	tex     texture.Texture
}

// fullscreen is the state every pass shares: the program, the quad and the
// lookup textures it binds after the input.
type fullscreen struct {
	kind    Kind
	dev     device.Device
	program shader.Program
	quad    vertex.Buffer
	lookups []lookup

	width, height int
}

func newFullscreen(dev device.Device, kind Kind, src shader.Source) (*fullscreen, error) {
	quad, err := NewQuad(dev)
	if err != nil {
		return nil, err
	}
	program, err := shader.NewProgram(dev, src)
	if err != nil {
		quad.Destroy()
		return nil, errors.Wrapf(err, "%s pass", kind)
	}
	return &fullscreen{
		kind:    kind,
		dev:     dev,
		program: program,
		quad:    quad,
	}, nil
}

func (f *fullscreen) addLookup(uniform string, desc texture.LookupDesc) error {
	tex, err := texture.NewLookup(f.dev, desc)
	if err != nil {
		return errors.Wrapf(err, "%s pass lookup %q", f.kind, uniform)
	}
	f.lookups = append(f.lookups, lookup{uniform: uniform, tex: tex})
	return nil
}

func (f *fullscreen) Kind() Kind {
	return f.kind
}

func (f *fullscreen) Program() shader.Program {
	return f.program
}

func (f *fullscreen) Size() (int, int) {
	return f.width, f.height
}

func (f *fullscreen) Draw(input uint32) {
	f.program.Use()

	f.dev.ActiveTexture(0)
	f.dev.BindTexture(device.Texture2D, input)
	f.program.Set(imageTextureUniform, shader.Int(0))

	for i, l := range f.lookups {
		unit := uint32(i + 1)
		f.dev.ActiveTexture(unit)
		f.dev.BindTexture(l.tex.Target(), l.tex.ID())
		f.program.Set(l.uniform, shader.Int(unit))
	}

	f.dev.ActiveTexture(0)
	f.quad.Draw(device.PrimitiveTriangles)
}

// setScale records the output size and writes a horizontal and vertical
// scale pair.
func (f *fullscreen) setScale(width, height int, horizontal, vertical string, h, v float32) {
	f.width, f.height = width, height
	f.program.Use()
	f.program.Set(horizontal, shader.Float(h))
	f.program.Set(vertical, shader.Float(v))
}

// setImageScale sets the per-pixel scale used by the convolution passes.
func (f *fullscreen) setImageScale(width, height int) {
	f.setScale(width, height, imageHorizontalUniform, imageVerticalUniform, float32(width), float32(height))
}

func (f *fullscreen) Destroy() {
	for _, l := range f.lookups {
		l.tex.Destroy()
	}
	f.lookups = nil
	if f.program != nil {
		f.program.Destroy()
	}
	if f.quad != nil {
		f.quad.Destroy()
	}
}
