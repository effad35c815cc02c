package camera

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithMoveSpeed sets the movement speed.
//
// Parameters:
//   - speed: units per second
//
// Returns:
//   - CameraControllerOption: functional option to set the movement speed
func WithMoveSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.moveSpeed = speed
	}
}

// WithMouseSensitivity sets the mouse rotation rate.
//
// Parameters:
//   - sensitivity: degrees per pixel
//
// Returns:
//   - CameraControllerOption: functional option to set the mouse sensitivity
func WithMouseSensitivity(sensitivity float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.mouseSensitivity = sensitivity
	}
}

// WithScrollSpeed sets the zoom rate.
//
// Parameters:
//   - speed: degrees per scroll step
//
// Returns:
//   - CameraControllerOption: functional option to set the scroll speed
func WithScrollSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.scrollSpeed = speed
	}
}
