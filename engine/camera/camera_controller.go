package camera

// KeyState reports whether a key is held. Key values are the common.Key*
// codes, which match GLFW.
type KeyState interface {
	IsKeyPressed(key int) bool
}

// CameraController turns window input into camera motion.
type CameraController interface {
	// Camera returns the controlled camera.
	//
	// Returns:
	//   - Camera: the camera
	Camera() Camera

	// Update applies held movement keys scaled by speed and elapsed time.
	// W/S move forward and back, D/A right and left, Space/LeftShift up and
	// down.
	//
	// Parameters:
	//   - keys: current key state
	//   - dt: seconds since the previous frame
	Update(keys KeyState, dt float32)

	// MouseMoved rotates the camera by the cursor delta since the previous
	// sample. The first sample after construction or ResetMouse only records
	// the position.
	//
	// Parameters:
	//   - x, y: cursor position in screen coordinates
	MouseMoved(x, y float64)

	// ResetMouse forgets the previous cursor sample, typically after the
	// cursor is recaptured.
	ResetMouse()

	// Scrolled zooms the camera by the vertical scroll offset.
	//
	// Parameters:
	//   - yOffset: scroll wheel steps
	Scrolled(yOffset float64)

	// MoveSpeed returns the movement speed in units per second.
	//
	// Returns:
	//   - float32: the movement speed
	MoveSpeed() float32

	// MouseSensitivity returns the rotation in degrees per pixel.
	//
	// Returns:
	//   - float32: the mouse sensitivity
	MouseSensitivity() float32

	// ScrollSpeed returns the zoom in degrees per scroll step.
	//
	// Returns:
	//   - float32: the scroll speed
	ScrollSpeed() float32
}
