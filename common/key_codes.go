package common

// Input codes used by the viewer. Values match GLFW so platform events can be
// stored without translation.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	// Camera movement.
	KeyW         = 87
	KeyA         = 65
	KeyS         = 83
	KeyD         = 68
	KeySpace     = 32
	KeyLeftShift = 340

	// KeyQ toggles cursor capture.
	KeyQ = 81
	// KeyEsc closes the window.
	KeyEsc = 256
)

// Mouse buttons, in GLFW and ImGui order.
const (
	MouseButtonLeft = iota
	MouseButtonRight
	MouseButtonMiddle

	// MouseButtonCount is the number of tracked buttons.
	MouseButtonCount
)
