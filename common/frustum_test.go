package common

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestFrustumContainsSphere(t *testing.T) {
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	proj := mgl32.Perspective(mgl32.DegToRad(45), 1, 0.1, 100)
	f := ExtractFrustum(proj.Mul4(view))

	assert.True(t, f.ContainsSphere(mgl32.Vec3{}, 1), "origin is in front of the camera")
	assert.False(t, f.ContainsSphere(mgl32.Vec3{0, 0, 10}, 1), "behind the camera")
	assert.False(t, f.ContainsSphere(mgl32.Vec3{0, 0, -200}, 1), "past the far plane")
	assert.False(t, f.ContainsSphere(mgl32.Vec3{50, 0, 0}, 1), "off to the side")
	assert.True(t, f.ContainsSphere(mgl32.Vec3{0, 0, 10}, 6), "large sphere straddles the near plane")
}

func TestFlatten(t *testing.T) {
	v3 := [][3]float32{{1, 2, 3}, {4, 5, 6}}
	assert.Equal(t, []float32{1, 2, 3, 4, 5, 6}, Flatten3(v3))
	assert.Equal(t, []float32{1, 2, 3, 4}, Flatten2([][2]float32{{1, 2}, {3, 4}}))
	assert.Nil(t, Flatten3(nil))
	assert.Len(t, SliceToBytes(v3), 24)
}
