// Package vertex describes and uploads typed vertex data. A buffer is built
// from a runtime list of attribute specs packed either sequentially (one
// contiguous run per attribute) or interleaved (one record per vertex).
package vertex

import (
	"github.com/Carmen-Shannon/oxy-gl/engine/device"

	"github.com/pkg/errors"
)

// ErrInvalidSpec is returned for attribute specs outside the supported set.
var ErrInvalidSpec = errors.New("invalid vertex attribute spec")

// AttributeSpec describes one per-vertex attribute: Count scalars of Type.
type AttributeSpec struct {
	Count int
	Type  device.ScalarType
}

var (
	// Float is a single float attribute.
	Float = AttributeSpec{Count: 1, Type: device.ScalarFloat}
	// Vec2 is a two component float attribute, typically a texture coordinate.
	Vec2 = AttributeSpec{Count: 2, Type: device.ScalarFloat}
	// Vec3 is a three component float attribute, typically a position or normal.
	Vec3 = AttributeSpec{Count: 3, Type: device.ScalarFloat}
	// Vec4 is a four component float attribute.
	Vec4 = AttributeSpec{Count: 4, Type: device.ScalarFloat}
)

// ByteSize returns the size in bytes of one value of this attribute.
//
// Returns:
//   - int: Count times the scalar size
func (a AttributeSpec) ByteSize() int {
	return a.Count * a.Type.Size()
}

// Validate checks the element count and scalar type.
//
// Returns:
//   - error: ErrInvalidSpec wrapped with the offending field, or nil
func (a AttributeSpec) Validate() error {
	if a.Count < 1 || a.Count > 4 {
		return errors.Wrapf(ErrInvalidSpec, "count %d outside 1..4", a.Count)
	}
	if a.Type != device.ScalarFloat {
		return errors.Wrapf(ErrInvalidSpec, "scalar type %d is not float", a.Type)
	}
	return nil
}
