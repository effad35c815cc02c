package camera

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/common"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

const eps = 1e-5

func assertVec(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], eps, "want %v got %v", want, got)
	}
}

type heldKeys map[int]bool

func (h heldKeys) IsKeyPressed(key int) bool { return h[key] }

func TestDefaults(t *testing.T) {
	c := NewCamera()
	assert.Equal(t, mgl32.Vec3{-5, 0, -1}, c.Position())
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, c.Front())
	assert.Equal(t, float32(45), c.Fov())

	want := mgl32.LookAtV(mgl32.Vec3{-5, 0, -1}, mgl32.Vec3{-4, 0, -1}, mgl32.Vec3{0, 1, 0})
	assert.Equal(t, want, c.ViewMatrix())
}

func TestRotateClampsPitch(t *testing.T) {
	c := NewCamera()
	c.Rotate(120, 0)
	assert.Equal(t, float32(89), c.Pitch())
	assert.Less(t, c.Front().Y(), float32(0), "positive pitch looks down")

	c.Rotate(-500, 0)
	assert.Equal(t, float32(-89), c.Pitch())

	c = NewCamera()
	c.Rotate(0, 90)
	assertVec(t, mgl32.Vec3{0, 0, 1}, c.Front())
}

func TestZoomClampsFov(t *testing.T) {
	c := NewCamera()
	c.Zoom(-10)
	assert.Equal(t, float32(45), c.Fov())
	c.Zoom(40)
	assert.Equal(t, float32(5), c.Fov())
	c.Zoom(40)
	assert.Equal(t, float32(1), c.Fov())
}

func TestMove(t *testing.T) {
	c := NewCamera(WithPosition(mgl32.Vec3{}))
	c.Move(1, 0, 0)
	assertVec(t, mgl32.Vec3{1, 0, 0}, c.Position())
	c.Move(0, 1, 0)
	assertVec(t, mgl32.Vec3{1, 0, 1}, c.Position())
	c.Move(0, 0, 2)
	assertVec(t, mgl32.Vec3{1, 2, 1}, c.Position())
}

func TestProjectionUsesAspect(t *testing.T) {
	c := NewCamera(WithAspect(2), WithClipPlanes(0.5, 50))
	want := mgl32.Perspective(mgl32.DegToRad(45), 2, 0.5, 50)
	assert.Equal(t, want, c.ProjectionMatrix())
	c.SetAspect(1)
	assert.Equal(t, float32(1), c.Aspect())
}

func TestControllerKeys(t *testing.T) {
	c := NewCamera(WithPosition(mgl32.Vec3{}))
	cc := NewCameraController(c, WithMoveSpeed(2))

	cc.Update(heldKeys{common.KeyW: true, common.KeySpace: true}, 0.5)
	assertVec(t, mgl32.Vec3{1, 1, 0}, c.Position())

	cc.Update(heldKeys{common.KeyW: true, common.KeyS: true}, 0.5)
	assertVec(t, mgl32.Vec3{1, 1, 0}, c.Position())

	cc.Update(heldKeys{common.KeyA: true, common.KeyLeftShift: true}, 0.5)
	assertVec(t, mgl32.Vec3{1, 0, -1}, c.Position())
}

func TestControllerMouse(t *testing.T) {
	c := NewCamera()
	cc := NewCameraController(c)

	cc.MouseMoved(400, 300)
	assert.Equal(t, float32(0), c.Yaw(), "first sample only records")

	cc.MouseMoved(500, 310)
	assert.InDelta(t, 10, c.Yaw(), eps)
	assert.InDelta(t, 1, c.Pitch(), eps)

	cc.ResetMouse()
	cc.MouseMoved(0, 0)
	assert.InDelta(t, 10, c.Yaw(), eps)
}

func TestControllerScroll(t *testing.T) {
	c := NewCamera()
	cc := NewCameraController(c)
	cc.Scrolled(2)
	assert.InDelta(t, 42, c.Fov(), eps)
	assert.Equal(t, float32(1.5), cc.ScrollSpeed())
	assert.Same(t, c, cc.Camera())
}
