package postprocess

import (
	"github.com/Carmen-Shannon/oxy-gl/engine/device"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/texture"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

const kernelTextureUniform = "kernelTexture"

// filter convolves the input with a caller supplied square kernel.
type filter struct {
	*fullscreen
	size int
}

var _ Pass = &filter{}

// NewFilter builds a generic convolution pass. The kernel is uploaded as an
// RGB float lookup on unit 1 and kernelSize is written once here.
//
// Parameters:
//   - dev: the device context
//   - src: the filter program
//   - size: kernel width and height, >= 1
//   - kernel: size*size weights in row order
//
// Returns:
//   - Pass: the pass
//   - error: error if the kernel shape is wrong or the program could not be built
func NewFilter(dev device.Device, src shader.Source, size int, kernel []mgl32.Vec3) (Pass, error) {
	if size < 1 || len(kernel) != size*size {
		return nil, errors.Errorf("filter kernel of size %d needs %d weights, got %d", size, size*size, len(kernel))
	}

	f, err := newFullscreen(dev, KindFilter, src)
	if err != nil {
		return nil, err
	}

	f.program.Use()
	f.program.Set(kernelSizeUniform, shader.UInt(size))

	data := make([]float32, 0, len(kernel)*3)
	for _, w := range kernel {
		data = append(data, w[0], w[1], w[2])
	}
	err = f.addLookup(kernelTextureUniform, texture.LookupDesc{
		Width:          size,
		Height:         size,
		InternalFormat: device.InternalRGBA8SNorm,
		Format:         device.PixelRGB,
		Data:           data,
		Wrap:           device.Repeat,
	})
	if err != nil {
		f.Destroy()
		return nil, err
	}
	return &filter{fullscreen: f, size: size}, nil
}

// UniformKernel expands scalar weights to the same weight on every channel.
//
// Parameters:
//   - weights: scalar weights in row order
//
// Returns:
//   - []mgl32.Vec3: one triple per weight
func UniformKernel(weights []float32) []mgl32.Vec3 {
	out := make([]mgl32.Vec3, len(weights))
	for i, w := range weights {
		out[i] = mgl32.Vec3{w, w, w}
	}
	return out
}

func (f *filter) SetDensity(width, height int) {
	f.setImageScale(width, height)
}
