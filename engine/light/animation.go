package light

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	policeBlue = mgl32.Vec3{0, 0, 1}
	policeRed  = mgl32.Vec3{1, 0, 0}
)

// PoliceColor blends blue and red by sin(5t), so the colour swings past both
// ends and briefly overshoots.
//
// Parameters:
//   - t: seconds since start
//
// Returns:
//   - mgl32.Vec3: the light colour at t
func PoliceColor(t float64) mgl32.Vec3 {
	k := float32(math.Sin(5 * t))
	return policeBlue.Mul(1 - k).Add(policeRed.Mul(k))
}

// OrbitTransform places a light marker on a circle of the given radius
// around the Y axis, rotated by t radians, and scales it.
//
// Parameters:
//   - t: rotation in radians
//   - radius: distance from the axis
//   - scale: uniform marker scale
//
// Returns:
//   - mgl32.Mat4: rotate(t, Y) * translate(radius, 0, 0) * scale
func OrbitTransform(t float64, radius, scale float32) mgl32.Mat4 {
	return mgl32.HomogRotate3DY(float32(t)).
		Mul4(mgl32.Translate3D(radius, 0, 0)).
		Mul4(mgl32.Scale3D(scale, scale, scale))
}

// WorldPosition returns the translation of a model transform.
func WorldPosition(m mgl32.Mat4) mgl32.Vec3 {
	return m.Col(3).Vec3()
}
