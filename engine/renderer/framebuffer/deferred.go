package framebuffer

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-gl/engine/device"
	"github.com/Carmen-Shannon/oxy-gl/engine/logging"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/texture"

	"github.com/pkg/errors"
)

// Source names one output of the deferred framebuffer.
type Source int

const (
	SourcePosition Source = iota
	SourceAlbedo
	SourceNormal
	SourceDepth
)

var sourceNames = map[Source]string{
	SourcePosition: "position",
	SourceAlbedo:   "albedo",
	SourceNormal:   "normal",
	SourceDepth:    "depth",
}

func (s Source) String() string {
	if name, ok := sourceNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Source(%d)", int(s))
}

// ParseSource resolves a configured attachment name.
//
// Parameters:
//   - name: position, albedo, normal or depth (case insensitive)
//
// Returns:
//   - Source: the matching source
//   - error: error for unknown names
func ParseSource(name string) (Source, error) {
	for s, n := range sourceNames {
		if strings.EqualFold(n, name) {
			return s, nil
		}
	}
	return 0, errors.Errorf("unknown framebuffer attachment %q", name)
}

// deferred is the implementation of the Deferred interface.
type deferred struct {
	*base
	attachments [4]texture.Texture
}

// Deferred is the multi target geometry buffer: world position (RGB8),
// albedo (RGBA8), view normal (signed RGB8) and depth, all at the same
// resolution, sampled nearest with clamp-to-edge.
type Deferred interface {
	Framebuffer

	Position() texture.Texture
	Albedo() texture.Texture
	Normal() texture.Texture
	Depth() texture.Texture

	// Attachment returns the texture for a configured source.
	//
	// Parameters:
	//   - s: which output
	//
	// Returns:
	//   - texture.Texture: the attachment, nil for unknown sources
	Attachment(s Source) texture.Texture
}

var _ Deferred = &deferred{}

var deferredLayout = [4]struct {
	point device.Attachment
	desc  texture.AttachmentDesc
}{
	SourcePosition: {device.AttachmentColor0, texture.AttachmentDesc{InternalFormat: device.InternalRGB8, Format: device.PixelRGB, Type: device.ScalarUnsignedByte}},
	SourceAlbedo:   {device.AttachmentColor1, texture.AttachmentDesc{InternalFormat: device.InternalRGBA8, Format: device.PixelRGBA, Type: device.ScalarUnsignedByte}},
	SourceNormal:   {device.AttachmentColor2, texture.AttachmentDesc{InternalFormat: device.InternalRGB8SNorm, Format: device.PixelRGB, Type: device.ScalarUnsignedByte}},
	SourceDepth:    {device.AttachmentDepth, texture.AttachmentDesc{InternalFormat: device.InternalDepthComponent, Format: device.PixelDepthComponent, Type: device.ScalarFloat}},
}

// NewDeferred creates the framebuffer and its four attachments. The default
// framebuffer is bound again on return, on success and on failure.
//
// Parameters:
//   - dev: the device context
//   - width: resolution in pixels, > 0
//   - height: resolution in pixels, > 0
//
// Returns:
//   - Deferred: the geometry buffer
//   - error: ErrInvalidSize, or ErrFramebufferIncomplete with every resource released
func NewDeferred(dev device.Device, width, height int) (Deferred, error) {
	b, err := newBase(dev, width, height)
	if err != nil {
		return nil, err
	}
	d := &deferred{base: b}

	err = d.WithBinding(func() error {
		for i, l := range deferredLayout {
			desc := l.desc
			desc.Width, desc.Height = width, height
			d.attachments[i] = texture.NewAttachment(dev, desc)
			dev.FramebufferTexture2D(l.point, d.attachments[i].ID())
		}
		dev.DrawBuffers([]device.Attachment{device.AttachmentColor0, device.AttachmentColor1, device.AttachmentColor2})

		if err := dev.CheckFramebufferStatus(); err != nil {
			return errors.Wrap(ErrFramebufferIncomplete, err.Error())
		}
		return nil
	})
	if err != nil {
		d.Destroy()
		return nil, err
	}

	logging.Get().WithFields(map[string]any{"width": width, "height": height}).Debug("deferred framebuffer created")
	return d, nil
}

func (d *deferred) Position() texture.Texture {
	return d.attachments[SourcePosition]
}

func (d *deferred) Albedo() texture.Texture {
	return d.attachments[SourceAlbedo]
}

func (d *deferred) Normal() texture.Texture {
	return d.attachments[SourceNormal]
}

func (d *deferred) Depth() texture.Texture {
	return d.attachments[SourceDepth]
}

func (d *deferred) Attachment(s Source) texture.Texture {
	if s < 0 || int(s) >= len(d.attachments) {
		return nil
	}
	return d.attachments[s]
}

func (d *deferred) Destroy() {
	for _, t := range d.attachments {
		if t != nil {
			t.Destroy()
		}
	}
	d.destroy()
}
