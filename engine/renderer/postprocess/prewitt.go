package postprocess

import (
	"github.com/Carmen-Shannon/oxy-gl/engine/device"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/texture"
)

const (
	prewittVerticalUniform   = "prewittVerticalTexture"
	prewittHorizontalUniform = "prewittHorizontalTexture"
	kernelSizeUniform        = "kernelSize"

	prewittSize = 3
)

var (
	prewittVertical = []float32{
		1, 0, -1,
		1, 0, -1,
		1, 0, -1,
	}
	prewittHorizontal = []float32{
		1, 1, 1,
		0, 0, 0,
		-1, -1, -1,
	}
)

// prewitt detects edges with the two 3x3 Prewitt gradient kernels.
type prewitt struct {
	*fullscreen
}

var _ Pass = &prewitt{}

// NewPrewitt builds the Prewitt edge pass. The vertical kernel is bound on
// unit 1 and the horizontal one on unit 2; kernelSize is written once here.
//
// Parameters:
//   - dev: the device context
//   - src: the Prewitt program
//
// Returns:
//   - Pass: the pass
//   - error: error if the program or lookups could not be built
func NewPrewitt(dev device.Device, src shader.Source) (Pass, error) {
	f, err := newFullscreen(dev, KindPrewitt, src)
	if err != nil {
		return nil, err
	}

	f.program.Use()
	f.program.Set(kernelSizeUniform, shader.UInt(prewittSize))

	for _, k := range []struct {
		uniform string
		data    []float32
	}{
		{prewittVerticalUniform, prewittVertical},
		{prewittHorizontalUniform, prewittHorizontal},
	} {
		err := f.addLookup(k.uniform, texture.LookupDesc{
			Width:          prewittSize,
			Height:         prewittSize,
			InternalFormat: device.InternalRGBA8SNorm,
			Format:         device.PixelRed,
			Data:           k.data,
			Wrap:           device.Repeat,
		})
		if err != nil {
			f.Destroy()
			return nil, err
		}
	}
	return &prewitt{fullscreen: f}, nil
}

// SetDensity sets the per-pixel sampling step to the raw output size.
func (p *prewitt) SetDensity(width, height int) {
	p.setImageScale(width, height)
}

// prewittNormals runs Prewitt edge detection on a normal buffer with the
// kernels inlined in the shader, so it has no lookups.
type prewittNormals struct {
	*fullscreen
}

var _ Pass = &prewittNormals{}

// NewPrewittNormals builds the normal-edge pass.
//
// Parameters:
//   - dev: the device context
//   - src: the normal edge program
//
// Returns:
//   - Pass: the pass
//   - error: error if the program could not be built
func NewPrewittNormals(dev device.Device, src shader.Source) (Pass, error) {
	f, err := newFullscreen(dev, KindPrewittNormals, src)
	if err != nil {
		return nil, err
	}
	return &prewittNormals{fullscreen: f}, nil
}

func (p *prewittNormals) SetDensity(width, height int) {
	p.setImageScale(width, height)
}
