package vertex

import (
	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/device"

	"github.com/pkg/errors"
)

// buffer is the implementation of the Buffer interface.
type buffer struct {
	dev device.Device

	vao uint32
	vbo uint32
	ebo uint32

	layout       BufferLayout
	vertexCount  int
	elementCount int
}

// Buffer owns one vertex array, one vertex buffer and one index buffer. The
// GPU copy is complete after construction; no CPU copy is retained.
type Buffer interface {
	// ElementCount returns the number of indices drawn by Draw.
	//
	// Returns:
	//   - int: index count, not vertex count
	ElementCount() int

	// VertexCount returns the number of logical vertices uploaded.
	//
	// Returns:
	//   - int: vertex count
	VertexCount() int

	// Layout returns the computed attribute layout.
	//
	// Returns:
	//   - BufferLayout: offsets, strides and total size
	Layout() BufferLayout

	// Bind binds the vertex array and returns the function that restores the
	// "none" binding. Callers defer the release.
	//
	// Returns:
	//   - func(): release function
	Bind() (release func())

	// WithBinding runs fn with the vertex array bound and unbinds it on every
	// exit path, including a panic inside fn.
	//
	// Parameters:
	//   - fn: work to run while bound
	//
	// Returns:
	//   - error: the error returned by fn
	WithBinding(fn func() error) error

	// Draw issues one indexed draw of ElementCount indices. A buffer without
	// indices draws nothing.
	//
	// Parameters:
	//   - mode: primitive topology
	Draw(mode device.Primitive)

	// Destroy frees the GPU objects. Subsequent calls are no-ops.
	Destroy()
}

var _ Buffer = &buffer{}

// NewSequential uploads one float slice per attribute into contiguous runs.
//
// Parameters:
//   - dev: the device context
//   - indices: index list, values are not range checked
//   - vertexCount: number of logical vertices
//   - specs: attribute specs in slot order
//   - data: one slice per spec holding vertexCount*spec.Count floats
//
// Returns:
//   - Buffer: the uploaded buffer
//   - error: ErrInvalidSpec when the specs or data do not line up
func NewSequential(dev device.Device, indices []uint32, vertexCount int, specs []AttributeSpec, data ...[]float32) (Buffer, error) {
	layout, err := ComputeLayout(Sequential, vertexCount, specs...)
	if err != nil {
		return nil, err
	}
	if len(data) != len(specs) {
		return nil, errors.Wrapf(ErrInvalidSpec, "%d attribute specs but %d data slices", len(specs), len(data))
	}
	for i, d := range data {
		if want := vertexCount * specs[i].Count; len(d) != want {
			return nil, errors.Wrapf(ErrInvalidSpec, "attribute %d has %d floats, want %d", i, len(d), want)
		}
	}

	b := newBuffer(dev, layout, vertexCount, indices)
	b.upload(func() {
		dev.BufferData(device.BufferTargetArray, layout.Size, nil)
		for i, run := range layout.Runs {
			dev.BufferSubData(device.BufferTargetArray, run.Offset, common.SliceToBytes(data[i]))
		}
	}, indices)
	return b, nil
}

// NewInterleaved uploads a single blob of vertexCount records.
//
// Parameters:
//   - dev: the device context
//   - indices: index list, values are not range checked
//   - vertexCount: number of logical vertices
//   - specs: attribute specs in record order
//   - blob: raw record bytes, exactly vertexCount*stride long
//
// Returns:
//   - Buffer: the uploaded buffer
//   - error: ErrInvalidSpec when the specs or blob size do not line up
func NewInterleaved(dev device.Device, indices []uint32, vertexCount int, specs []AttributeSpec, blob []byte) (Buffer, error) {
	layout, err := ComputeLayout(Interleaved, vertexCount, specs...)
	if err != nil {
		return nil, err
	}
	if len(blob) != layout.Size {
		return nil, errors.Wrapf(ErrInvalidSpec, "blob has %d bytes, want %d", len(blob), layout.Size)
	}

	b := newBuffer(dev, layout, vertexCount, indices)
	b.upload(func() {
		dev.BufferData(device.BufferTargetArray, layout.Size, blob)
	}, indices)
	return b, nil
}

func newBuffer(dev device.Device, layout BufferLayout, vertexCount int, indices []uint32) *buffer {
	return &buffer{
		dev:          dev,
		layout:       layout,
		vertexCount:  vertexCount,
		elementCount: len(indices),
	}
}

// upload creates the GPU objects and records the attribute layout in the
// vertex array. The element buffer is bound while the vertex array is bound
// so the association is captured.
func (b *buffer) upload(fillVertices func(), indices []uint32) {
	dev := b.dev
	b.vao = dev.CreateVertexArray()
	b.vbo = dev.CreateBuffer()
	b.ebo = dev.CreateBuffer()

	dev.BindVertexArray(b.vao)
	dev.BindBuffer(device.BufferTargetArray, b.vbo)
	fillVertices()

	dev.BindBuffer(device.BufferTargetElementArray, b.ebo)
	dev.BufferData(device.BufferTargetElementArray, len(indices)*4, common.SliceToBytes(indices))

	for _, a := range b.layout.Attributes {
		dev.VertexAttribPointer(a.Index, a.Spec.Count, a.Spec.Type, a.Stride, a.Offset)
		dev.EnableVertexAttribArray(a.Index)
	}

	dev.BindVertexArray(0)
	dev.BindBuffer(device.BufferTargetArray, 0)
}

func (b *buffer) ElementCount() int {
	return b.elementCount
}

func (b *buffer) VertexCount() int {
	return b.vertexCount
}

func (b *buffer) Layout() BufferLayout {
	return b.layout
}

func (b *buffer) Bind() func() {
	b.dev.BindVertexArray(b.vao)
	return func() {
		b.dev.BindVertexArray(0)
	}
}

func (b *buffer) WithBinding(fn func() error) error {
	return device.Scoped(b.Bind, fn)
}

func (b *buffer) Draw(mode device.Primitive) {
	if b.elementCount == 0 {
		return
	}
	release := b.Bind()
	defer release()
	b.dev.DrawElements(mode, b.elementCount, device.IndexUint32)
}

func (b *buffer) Destroy() {
	if b.vao != 0 {
		b.dev.DeleteVertexArray(b.vao)
		b.vao = 0
	}
	if b.vbo != 0 {
		b.dev.DeleteBuffer(b.vbo)
		b.vbo = 0
	}
	if b.ebo != 0 {
		b.dev.DeleteBuffer(b.ebo)
		b.ebo = 0
	}
}

// Indices returns the identity index list 0..n-1 for geometry that is drawn
// vertex by vertex.
func Indices(n int) []uint32 {
	out := make([]uint32, n)
	for i := range out {
		out[i] = uint32(i)
	}
	return out
}
