package postprocess

import (
	"github.com/Carmen-Shannon/oxy-gl/engine/device"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/texture"
)

const (
	bayerMatrixUniform     = "bayerMatrixTexture"
	bayerHorizontalUniform = "matrixHorizontalScale"
	bayerVerticalUniform   = "matrixVerticalScale"

	bayerSize = 4
)

// bayerOrder is the 4x4 ordered dither threshold ranking, divided by 16 at upload.
var bayerOrder = [bayerSize * bayerSize]float32{
	0, 8, 2, 10,
	12, 4, 14, 6,
	3, 11, 1, 9,
	15, 7, 13, 5,
}

// BayerMatrix returns the 4x4 threshold matrix as RGB triples in [0,1).
//
// Returns:
//   - []float32: 48 floats, row major
func BayerMatrix() []float32 {
	out := make([]float32, 0, len(bayerOrder)*3)
	for _, v := range bayerOrder {
		t := v / 16
		out = append(out, t, t, t)
	}
	return out
}

// bayerDither tiles the threshold matrix over the output.
type bayerDither struct {
	*fullscreen
}

var _ Pass = &bayerDither{}

// NewBayerDither builds the ordered dither pass. The matrix is uploaded as a
// repeating RGB float lookup on unit 1.
//
// Parameters:
//   - dev: the device context
//   - src: the dither program
//
// Returns:
//   - Pass: the pass
//   - error: error if the program or lookup could not be built
func NewBayerDither(dev device.Device, src shader.Source) (Pass, error) {
	f, err := newFullscreen(dev, KindBayerDither, src)
	if err != nil {
		return nil, err
	}
	err = f.addLookup(bayerMatrixUniform, texture.LookupDesc{
		Width:          bayerSize,
		Height:         bayerSize,
		InternalFormat: device.InternalRGB8,
		Format:         device.PixelRGB,
		Data:           BayerMatrix(),
		Wrap:           device.Repeat,
	})
	if err != nil {
		f.Destroy()
		return nil, err
	}
	return &bayerDither{fullscreen: f}, nil
}

// SetDensity scales the matrix so one cell maps to one output pixel.
func (b *bayerDither) SetDensity(width, height int) {
	b.setScale(width, height, bayerHorizontalUniform, bayerVerticalUniform,
		float32(width)/bayerSize, float32(height)/bayerSize)
}
