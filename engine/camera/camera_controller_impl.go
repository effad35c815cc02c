package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-gl/common"
)

// cameraControllerImpl is the keyboard and mouse implementation of
// CameraController.
type cameraControllerImpl struct {
	mu     *sync.Mutex
	camera Camera

	moveSpeed        float32
	mouseSensitivity float32
	scrollSpeed      float32

	// Previous cursor sample; firstMouse suppresses the jump on the first one.
	lastX, lastY float64
	firstMouse   bool
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a controller for camera with a move speed of
// 1.5, a mouse sensitivity of 0.1 and a scroll speed of 1.5.
//
// Parameters:
//   - camera: the camera to drive
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(camera Camera, options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu:               &sync.Mutex{},
		camera:           camera,
		moveSpeed:        1.5,
		mouseSensitivity: 0.1,
		scrollSpeed:      1.5,
		firstMouse:       true,
	}
	for _, option := range options {
		option(cc)
	}
	return cc
}

// axis returns +1, -1 or 0 for a pair of opposing keys.
func axis(keys KeyState, positive, negative int) float32 {
	var v float32
	if keys.IsKeyPressed(positive) {
		v++
	}
	if keys.IsKeyPressed(negative) {
		v--
	}
	return v
}

func (cc *cameraControllerImpl) Camera() Camera {
	return cc.camera
}

func (cc *cameraControllerImpl) Update(keys KeyState, dt float32) {
	cc.mu.Lock()
	step := cc.moveSpeed * dt
	cc.mu.Unlock()

	front := axis(keys, common.KeyW, common.KeyS)
	right := axis(keys, common.KeyD, common.KeyA)
	up := axis(keys, common.KeySpace, common.KeyLeftShift)
	if front == 0 && right == 0 && up == 0 {
		return
	}
	cc.camera.Move(front*step, right*step, up*step)
}

func (cc *cameraControllerImpl) MouseMoved(x, y float64) {
	cc.mu.Lock()
	if cc.firstMouse {
		cc.lastX, cc.lastY = x, y
		cc.firstMouse = false
		cc.mu.Unlock()
		return
	}
	dx := float32(x - cc.lastX)
	dy := float32(y - cc.lastY)
	cc.lastX, cc.lastY = x, y
	s := cc.mouseSensitivity
	cc.mu.Unlock()

	cc.camera.Rotate(s*dy, s*dx)
}

func (cc *cameraControllerImpl) ResetMouse() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.firstMouse = true
}

func (cc *cameraControllerImpl) Scrolled(yOffset float64) {
	cc.mu.Lock()
	s := cc.scrollSpeed
	cc.mu.Unlock()
	cc.camera.Zoom(s * float32(yOffset))
}

func (cc *cameraControllerImpl) MoveSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.moveSpeed
}

func (cc *cameraControllerImpl) MouseSensitivity() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.mouseSensitivity
}

func (cc *cameraControllerImpl) ScrollSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.scrollSpeed
}
