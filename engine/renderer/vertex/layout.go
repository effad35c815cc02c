package vertex

import (
	"fmt"

	"github.com/pkg/errors"
)

// Layout selects how attributes are packed into the vertex buffer.
type Layout int

const (
	// Sequential stores one contiguous run per attribute, each holding
	// vertexCount values back to back.
	Sequential Layout = iota
	// Interleaved stores vertexCount records, each holding one value per
	// attribute in declaration order.
	Interleaved
)

// String returns the layout name.
func (l Layout) String() string {
	switch l {
	case Sequential:
		return "sequential"
	case Interleaved:
		return "interleaved"
	default:
		return fmt.Sprintf("Layout(%d)", int(l))
	}
}

// AttributeLayout is where attribute slot Index lives inside the buffer.
type AttributeLayout struct {
	Index  uint32
	Spec   AttributeSpec
	Offset int
	Stride int
}

// Run is the byte range one attribute occupies in a sequential buffer.
type Run struct {
	Offset int
	Length int
}

// BufferLayout is the result of ComputeLayout.
type BufferLayout struct {
	Layout     Layout
	Attributes []AttributeLayout
	// Stride is the record size for interleaved buffers and 0 for sequential ones.
	Stride int
	// Size is the total byte size of the vertex buffer.
	Size int
	// Runs holds one entry per attribute for sequential buffers.
	Runs []Run
}

// ComputeLayout derives attribute offsets, strides and the total buffer size
// for vertexCount vertices made of specs in slot order.
//
// Parameters:
//   - layout: Sequential or Interleaved
//   - vertexCount: number of logical vertices, may be 0
//   - specs: attribute specs, slot i is specs[i]
//
// Returns:
//   - BufferLayout: the computed layout
//   - error: ErrInvalidSpec for bad specs or counts, or an unknown layout
func ComputeLayout(layout Layout, vertexCount int, specs ...AttributeSpec) (BufferLayout, error) {
	if vertexCount < 0 {
		return BufferLayout{}, errors.Wrapf(ErrInvalidSpec, "negative vertex count %d", vertexCount)
	}
	if len(specs) == 0 {
		return BufferLayout{}, errors.Wrap(ErrInvalidSpec, "no attributes")
	}

	recordSize := 0
	for i, s := range specs {
		if err := s.Validate(); err != nil {
			return BufferLayout{}, errors.Wrapf(err, "attribute %d", i)
		}
		recordSize += s.ByteSize()
	}

	out := BufferLayout{
		Layout:     layout,
		Attributes: make([]AttributeLayout, len(specs)),
		Size:       vertexCount * recordSize,
	}

	switch layout {
	case Sequential:
		out.Runs = make([]Run, len(specs))
		offset := 0
		for i, s := range specs {
			length := vertexCount * s.ByteSize()
			out.Runs[i] = Run{Offset: offset, Length: length}
			out.Attributes[i] = AttributeLayout{
				Index:  uint32(i),
				Spec:   s,
				Offset: offset,
				Stride: s.ByteSize(),
			}
			offset += length
		}
	case Interleaved:
		out.Stride = recordSize
		offset := 0
		for i, s := range specs {
			out.Attributes[i] = AttributeLayout{
				Index:  uint32(i),
				Spec:   s,
				Offset: offset,
				Stride: recordSize,
			}
			offset += s.ByteSize()
		}
	default:
		return BufferLayout{}, errors.Errorf("unknown vertex layout %d", layout)
	}
	return out, nil
}
