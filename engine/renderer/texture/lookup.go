package texture

import (
	"github.com/Carmen-Shannon/oxy-gl/engine/device"

	"github.com/pkg/errors"
)

// LookupDesc describes a small float table sampled 1:1 by a shader, such as
// a dither matrix or a convolution kernel.
type LookupDesc struct {
	Width          int
	Height         int
	InternalFormat device.InternalFormat
	// Format is the client layout of Data, RED or RGB.
	Format device.PixelFormat
	Data   []float32
	Wrap   device.TextureParamValue
}

// NewLookup uploads a lookup table with nearest filtering and no mipmaps.
//
// Parameters:
//   - dev: the device context
//   - desc: table dimensions, formats and data
//
// Returns:
//   - Texture: the lookup texture
//   - error: error if Data does not hold Width*Height*channels floats
func NewLookup(dev device.Device, desc LookupDesc) (Texture, error) {
	want := desc.Width * desc.Height * desc.Format.Channels()
	if desc.Width <= 0 || desc.Height <= 0 || len(desc.Data) != want {
		return nil, errors.Errorf("lookup %dx%d needs %d floats, got %d", desc.Width, desc.Height, want, len(desc.Data))
	}
	return create(dev, device.Texture2D, Diffuse, sampling{
		wrap:   desc.Wrap,
		filter: device.Nearest,
	}, device.TextureImage{
		Target:         device.Texture2D,
		InternalFormat: desc.InternalFormat,
		Width:          desc.Width,
		Height:         desc.Height,
		Format:         desc.Format,
		Type:           device.ScalarFloat,
		Pixels:         desc.Data,
	}), nil
}

// AttachmentDesc describes render target storage.
type AttachmentDesc struct {
	Width          int
	Height         int
	InternalFormat device.InternalFormat
	Format         device.PixelFormat
	Type           device.ScalarType
}

// NewAttachment allocates uninitialized storage for a framebuffer attachment
// with nearest filtering and clamp-to-edge wrapping.
//
// Parameters:
//   - dev: the device context
//   - desc: dimensions and formats
//
// Returns:
//   - Texture: the storage texture
func NewAttachment(dev device.Device, desc AttachmentDesc) Texture {
	return create(dev, device.Texture2D, Diffuse, sampling{
		wrap:   device.ClampToEdge,
		filter: device.Nearest,
	}, device.TextureImage{
		Target:         device.Texture2D,
		InternalFormat: desc.InternalFormat,
		Width:          desc.Width,
		Height:         desc.Height,
		Format:         desc.Format,
		Type:           desc.Type,
	})
}
