// Package texture owns GPU texture objects: material textures decoded from
// image files, cube maps, small float lookup tables and framebuffer
// attachment storage.
package texture

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-gl/engine/device"

	"github.com/pkg/errors"
)

// ErrUnsupportedChannels is returned for images that are not 1, 3 or 4 channel.
var ErrUnsupportedChannels = errors.New("unsupported channel count")

// Type is the material role of a texture.
type Type int

const (
	// Diffuse is the base colour map.
	Diffuse Type = iota
	// Specular is the specular intensity map.
	Specular
	// Normal is the tangent space normal map.
	Normal
)

// ArrayName returns the material array the texture type is sampled from.
// Any value outside the declared set is a programming error and panics.
//
// Returns:
//   - string: diffuseTextures, specularTextures or normalTextures
func (t Type) ArrayName() string {
	switch t {
	case Diffuse:
		return "diffuseTextures"
	case Specular:
		return "specularTextures"
	case Normal:
		return "normalTextures"
	default:
		panic(fmt.Sprintf("texture: no array name for type %d", int(t)))
	}
}

func (t Type) String() string {
	switch t {
	case Diffuse:
		return "diffuse"
	case Specular:
		return "specular"
	case Normal:
		return "normal"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// texture is the implementation of the Texture interface.
type texture struct {
	dev    device.Device
	id     uint32
	target device.TextureTarget
	typ    Type
	width  int
	height int
}

// Texture is an exclusively owned GPU texture.
type Texture interface {
	// ID returns the device handle, 0 after Destroy.
	ID() uint32

	// Target returns the binding target (2D or cube map).
	Target() device.TextureTarget

	// Type returns the material role. Non-material textures report Diffuse.
	Type() Type

	Width() int
	Height() int

	// Bind makes unit the active texture unit and binds the texture to it.
	// The active unit is left at unit.
	//
	// Parameters:
	//   - unit: texture unit index starting at 0
	Bind(unit uint32)

	// Destroy frees the texture. Subsequent calls are no-ops.
	Destroy()
}

var _ Texture = &texture{}

// sampling is the wrap and filter setup applied at creation.
type sampling struct {
	wrap    device.TextureParamValue
	filter  device.TextureParamValue
	wrapR   bool
	mipmaps bool
}

// create allocates a texture, uploads images with the texture bound to the
// current unit, applies sampling and unbinds.
func create(dev device.Device, target device.TextureTarget, typ Type, s sampling, images ...device.TextureImage) *texture {
	t := &texture{
		dev:    dev,
		id:     dev.CreateTexture(),
		target: target,
		typ:    typ,
	}
	if len(images) > 0 {
		t.width, t.height = images[0].Width, images[0].Height
	}

	dev.BindTexture(target, t.id)
	for _, img := range images {
		dev.TexImage2D(img)
	}
	dev.TexParameter(target, device.ParamWrapS, s.wrap)
	dev.TexParameter(target, device.ParamWrapT, s.wrap)
	if s.wrapR {
		dev.TexParameter(target, device.ParamWrapR, s.wrap)
	}
	dev.TexParameter(target, device.ParamMinFilter, s.filter)
	dev.TexParameter(target, device.ParamMagFilter, s.filter)
	if s.mipmaps {
		dev.GenerateMipmap(target)
	}
	dev.BindTexture(target, 0)
	return t
}

// formatFor maps a decoded channel count to the client pixel format.
func formatFor(channels int) (device.PixelFormat, error) {
	switch channels {
	case 1:
		return device.PixelRed, nil
	case 3:
		return device.PixelRGB, nil
	case 4:
		return device.PixelRGBA, nil
	default:
		return 0, errors.Wrapf(ErrUnsupportedChannels, "%d channels", channels)
	}
}

// New2D uploads a decoded image as a material texture with repeat wrapping,
// nearest filtering and a generated mip chain.
//
// Parameters:
//   - dev: the device context
//   - img: decoded image
//   - typ: material role
//
// Returns:
//   - Texture: the uploaded texture
//   - error: ErrUnsupportedChannels for channel counts other than 1, 3 or 4
func New2D(dev device.Device, img *Image, typ Type) (Texture, error) {
	format, err := formatFor(img.Channels)
	if err != nil {
		return nil, err
	}
	return create(dev, device.Texture2D, typ, sampling{
		wrap:    device.Repeat,
		filter:  device.Nearest,
		mipmaps: true,
	}, device.TextureImage{
		Target:         device.Texture2D,
		InternalFormat: device.InternalRGB8,
		Width:          img.Width,
		Height:         img.Height,
		Format:         format,
		Type:           device.ScalarUnsignedByte,
		Pixels:         img.Pixels,
	}), nil
}

func (t *texture) ID() uint32 {
	return t.id
}

func (t *texture) Target() device.TextureTarget {
	return t.target
}

func (t *texture) Type() Type {
	return t.typ
}

func (t *texture) Width() int {
	return t.width
}

func (t *texture) Height() int {
	return t.height
}

func (t *texture) Bind(unit uint32) {
	t.dev.ActiveTexture(unit)
	t.dev.BindTexture(t.target, t.id)
}

func (t *texture) Destroy() {
	if t.id == 0 {
		return
	}
	t.dev.DeleteTexture(t.id)
	t.id = 0
}
