// Package framebuffer owns offscreen render targets.
package framebuffer

import (
	"github.com/Carmen-Shannon/oxy-gl/engine/device"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidSize is returned for a zero or negative resolution.
	ErrInvalidSize = errors.New("framebuffer size must be positive")
	// ErrFramebufferIncomplete is returned when the device rejects the attachment set.
	ErrFramebufferIncomplete = errors.New("framebuffer incomplete")
)

// base is the shared part of every framebuffer: the handle and the fixed
// resolution all attachments share.
type base struct {
	dev    device.Device
	id     uint32
	width  int
	height int
}

// Framebuffer is an offscreen render target with a fixed resolution. There is
// no resize: a new resolution means destroying and recreating the target.
type Framebuffer interface {
	// ID returns the device handle, 0 after Destroy.
	ID() uint32

	Width() int
	Height() int

	// Bind binds the framebuffer and sets the viewport to its resolution. The
	// release restores the default framebuffer; the caller restores its own
	// viewport.
	//
	// Returns:
	//   - func(): release function
	Bind() (release func())

	// WithBinding runs fn with the framebuffer bound, restoring the default
	// framebuffer on every exit path including a panic in fn.
	//
	// Parameters:
	//   - fn: work to run while bound
	//
	// Returns:
	//   - error: the error returned by fn
	WithBinding(fn func() error) error

	// Destroy frees the framebuffer and its attachments. Subsequent calls are no-ops.
	Destroy()
}

func newBase(dev device.Device, width, height int) (*base, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrInvalidSize, "%dx%d", width, height)
	}
	return &base{
		dev:    dev,
		id:     dev.CreateFramebuffer(),
		width:  width,
		height: height,
	}, nil
}

func (b *base) ID() uint32 {
	return b.id
}

func (b *base) Width() int {
	return b.width
}

func (b *base) Height() int {
	return b.height
}

func (b *base) Bind() func() {
	b.dev.BindFramebuffer(b.id)
	b.dev.Viewport(0, 0, b.width, b.height)
	return func() {
		b.dev.BindFramebuffer(0)
	}
}

func (b *base) WithBinding(fn func() error) error {
	return device.Scoped(b.Bind, fn)
}

func (b *base) destroy() {
	if b.id == 0 {
		return
	}
	b.dev.DeleteFramebuffer(b.id)
	b.id = 0
}
