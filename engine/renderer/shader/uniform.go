package shader

import (
	"github.com/Carmen-Shannon/oxy-gl/engine/device"

	"github.com/go-gl/mathgl/mgl32"
)

// Uniform is a value that can be written to a named program uniform. The set
// of kinds is closed: Bool, Int, UInt, Float, Vec3 and Mat4, each mapping to
// its own device call.
type Uniform interface {
	apply(dev device.Device, location int32)
}

type (
	// Bool is written as an int 0 or 1.
	Bool bool
	// Int is a signed integer, also used for sampler units.
	Int int32
	// UInt is an unsigned integer.
	UInt uint32
	// Float is a single float.
	Float float32
	// Vec3 is a three component float vector.
	Vec3 mgl32.Vec3
	// Mat4 is a column-major 4x4 float matrix.
	Mat4 mgl32.Mat4
)

var (
	_ Uniform = Bool(false)
	_ Uniform = Int(0)
	_ Uniform = UInt(0)
	_ Uniform = Float(0)
	_ Uniform = Vec3{}
	_ Uniform = Mat4{}
)

func (u Bool) apply(dev device.Device, location int32) {
	var v int32
	if u {
		v = 1
	}
	dev.Uniform1i(location, v)
}

func (u Int) apply(dev device.Device, location int32) {
	dev.Uniform1i(location, int32(u))
}

func (u UInt) apply(dev device.Device, location int32) {
	dev.Uniform1ui(location, uint32(u))
}

func (u Float) apply(dev device.Device, location int32) {
	dev.Uniform1f(location, float32(u))
}

func (u Vec3) apply(dev device.Device, location int32) {
	dev.Uniform3f(location, [3]float32(u))
}

func (u Mat4) apply(dev device.Device, location int32) {
	dev.UniformMatrix4f(location, [16]float32(u))
}
