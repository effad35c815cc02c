package camera

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	maxPitch = 89.0
	minFov   = 1.0
	maxFov   = 45.0
)

type cameraImpl struct {
	mu *sync.Mutex

	position mgl32.Vec3
	front    mgl32.Vec3
	up       mgl32.Vec3

	// yaw and pitch in degrees
	yaw   float32
	pitch float32

	// fov in degrees
	fov    float32
	aspect float32
	near   float32
	far    float32
}

// Camera defines the interface for the free-fly camera.
// The camera owns its pose and derives view and projection matrices from it
// on demand. Input is applied through a CameraController.
type Camera interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: world-space camera position
	Position() mgl32.Vec3

	// Front returns the unit view direction.
	//
	// Returns:
	//   - mgl32.Vec3: normalized front vector
	Front() mgl32.Vec3

	// Up returns the world up vector.
	//
	// Returns:
	//   - mgl32.Vec3: the up vector
	Up() mgl32.Vec3

	// Yaw returns the horizontal angle in degrees.
	//
	// Returns:
	//   - float32: yaw in degrees
	Yaw() float32

	// Pitch returns the vertical angle in degrees, within [-89, 89].
	//
	// Returns:
	//   - float32: pitch in degrees
	Pitch() float32

	// Fov returns the vertical field of view in degrees, within [1, 45].
	//
	// Returns:
	//   - float32: field of view in degrees
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// ViewMatrix returns lookAt(position, position+front, up).
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the perspective projection.
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix
	ProjectionMatrix() mgl32.Mat4

	// Move translates the camera along its front, right and up axes.
	//
	// Parameters:
	//   - front: distance along the view direction
	//   - right: distance along front x up
	//   - up: distance along world up
	Move(front, right, up float32)

	// Rotate adds to pitch and yaw, clamping pitch to +-89 degrees, and
	// recomputes the front vector.
	//
	// Parameters:
	//   - pitchOffset: degrees added to pitch
	//   - yawOffset: degrees added to yaw
	Rotate(pitchOffset, yawOffset float32)

	// Zoom narrows the field of view by offset degrees, clamped to [1, 45].
	//
	// Parameters:
	//   - offset: degrees subtracted from fov
	Zoom(offset float32)

	// SetAspect sets the aspect ratio (width / height).
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a Camera at (-5, 0, -1) looking down +X with a 45 degree
// field of view and clip planes at 0.1 and 100.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:       &sync.Mutex{},
		position: mgl32.Vec3{-5, 0, -1},
		front:    mgl32.Vec3{1, 0, 0},
		up:       mgl32.Vec3{0, 1, 0},
		fov:      maxFov,
		aspect:   0.5,
		near:     0.1,
		far:      100,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) Front() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.front
}

func (c *cameraImpl) Up() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up
}

func (c *cameraImpl) Yaw() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.yaw
}

func (c *cameraImpl) Pitch() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pitch
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return mgl32.LookAtV(c.position, c.position.Add(c.front), c.up)
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return mgl32.Perspective(mgl32.DegToRad(c.fov), c.aspect, c.near, c.far)
}

func (c *cameraImpl) Move(front, right, up float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = c.position.Add(c.front.Mul(front))
	c.position = c.position.Add(c.front.Cross(c.up).Normalize().Mul(right))
	c.position = c.position.Add(c.up.Mul(up))
}

func (c *cameraImpl) Rotate(pitchOffset, yawOffset float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.yaw += yawOffset
	c.pitch = mgl32.Clamp(c.pitch+pitchOffset, -maxPitch, maxPitch)
	c.updateFront()
}

func (c *cameraImpl) Zoom(offset float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = mgl32.Clamp(c.fov-offset, minFov, maxFov)
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
}

// updateFront recomputes the front vector from yaw and pitch. Positive pitch
// looks down, matching screen-space mouse deltas.
// Caller must hold the mutex.
func (c *cameraImpl) updateFront() {
	yaw := float64(mgl32.DegToRad(c.yaw))
	pitch := float64(mgl32.DegToRad(c.pitch))
	c.front = mgl32.Vec3{
		float32(math.Cos(yaw) * math.Cos(pitch)),
		float32(math.Sin(-pitch)),
		float32(math.Sin(yaw) * math.Cos(pitch)),
	}.Normalize()
}
