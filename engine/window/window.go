package window

import (
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/logging"
)

// Window provides the GL context, platform windowing and input event handling.
// Wraps platform-specific window implementations with a common interface.
type Window interface {
	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetScrollCallback sets the callback for mouse scroll wheel events.
	//
	// Parameters:
	//   - callback: function receiving the vertical scroll offset
	SetScrollCallback(callback func(yOffset float64))

	// SetKeyDownCallback sets the callback for key press events.
	//
	// Parameters:
	//   - callback: function receiving the key code
	SetKeyDownCallback(callback func(key int))

	// SetKeyUpCallback sets the callback for key release events.
	//
	// Parameters:
	//   - callback: function receiving the key code
	SetKeyUpCallback(callback func(key int))

	// SetMouseMoveCallback sets the callback for cursor movement. It only
	// fires while the cursor is captured.
	//
	// Parameters:
	//   - callback: function receiving the cursor position
	SetMouseMoveCallback(callback func(x, y float64))

	// SetCaptureCallback sets the callback fired when cursor capture toggles.
	//
	// Parameters:
	//   - callback: function receiving the new capture state
	SetCaptureCallback(callback func(captured bool))

	// IsKeyPressed reports whether key is currently held.
	//
	// Parameters:
	//   - key: key code, see common.Key*
	//
	// Returns:
	//   - bool: true while the key is down
	IsKeyPressed(key int) bool

	// IsMouseButtonPressed reports whether a mouse button is currently held.
	//
	// Parameters:
	//   - button: common.MouseButtonLeft, Right or Middle
	//
	// Returns:
	//   - bool: true while the button is down
	IsMouseButtonPressed(button int) bool

	// CursorPosition returns the last cursor position in window coordinates,
	// whether or not the cursor is captured.
	CursorPosition() (x, y float64)

	// CursorCaptured reports whether the cursor is hidden and drives the camera.
	//
	// Returns:
	//   - bool: true while captured
	CursorCaptured() bool

	// SetCursorCaptured captures or releases the cursor.
	//
	// Parameters:
	//   - captured: the new capture state
	SetCursorCaptured(captured bool)

	// Time returns seconds since the window was created.
	//
	// Returns:
	//   - float64: the window clock
	Time() float64

	// SwapBuffers presents the back buffer.
	SwapBuffers()

	// Native returns the platform window handle, or nil if none exists.
	//
	// Returns:
	//   - any: the platform handle
	Native() any

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// RequestClose asks the message loop to stop after the current iteration.
	RequestClose()

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Calls OnUpdate callback each iteration.
	ProcessMessages()

	// Width returns the current framebuffer width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current framebuffer height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, key state and event callbacks.
type engineWindow struct {
	title  string
	width  int
	height int
	vsync  bool

	// glMajor and glMinor are the requested core profile version.
	glMajor int
	glMinor int

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	closeRequested bool
	captured       bool
	pressed        map[int]bool
	buttons        [common.MouseButtonCount]bool
	cursorX        float64
	cursorY        float64

	onUpdate    func()
	onResize    func(width, height int)
	onScroll    func(yOffset float64)
	onKeyDown   func(key int)
	onKeyUp     func(key int)
	onMouseMove func(x, y float64)
	onCapture   func(captured bool)
}

var _ Window = &engineWindow{}

// NewWindow creates a new Window with a current GL 4.1 core context.
// Applies default values first, then each option in order. The cursor starts
// captured.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the window
//   - error: error if the platform window or context could not be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := newEngineWindow(options...)
	if err := newPlatformWindow(w); err != nil {
		return nil, err
	}
	w.SetCursorCaptured(true)
	logging.Get().WithFields(map[string]any{
		"title":  w.title,
		"width":  w.width,
		"height": w.height,
	}).Info("window created")
	return w, nil
}

func newEngineWindow(options ...WindowBuilderOption) *engineWindow {
	w := &engineWindow{
		title:   "oxy-gl",
		width:   800,
		height:  600,
		vsync:   true,
		glMajor: 4,
		glMinor: 1,
		pressed: make(map[int]bool),
	}
	for _, opt := range options {
		opt(w)
	}
	return w
}

// handleKey updates key state and applies the window-level bindings: Escape
// closes the window and Q toggles cursor capture.
func (w *engineWindow) handleKey(key int, down bool) {
	w.pressed[key] = down
	if !down {
		if w.onKeyUp != nil {
			w.onKeyUp(key)
		}
		return
	}

	switch key {
	case common.KeyEsc:
		w.RequestClose()
	case common.KeyQ:
		w.SetCursorCaptured(!w.captured)
	}
	if w.onKeyDown != nil {
		w.onKeyDown(key)
	}
}

func (w *engineWindow) handleCursor(x, y float64) {
	w.cursorX, w.cursorY = x, y
	if w.captured && w.onMouseMove != nil {
		w.onMouseMove(x, y)
	}
}

func (w *engineWindow) handleMouseButton(button int, down bool) {
	if button >= 0 && button < len(w.buttons) {
		w.buttons[button] = down
	}
}

func (w *engineWindow) handleScroll(yOffset float64) {
	if w.onScroll != nil {
		w.onScroll(yOffset)
	}
}

func (w *engineWindow) handleResize(width, height int) {
	if width == 0 || height == 0 {
		return
	}
	w.width = width
	w.height = height
	if w.onResize != nil {
		w.onResize(width, height)
	}
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetScrollCallback(callback func(yOffset float64)) {
	w.onScroll = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(key int)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetKeyUpCallback(callback func(key int)) {
	w.onKeyUp = callback
}

func (w *engineWindow) SetMouseMoveCallback(callback func(x, y float64)) {
	w.onMouseMove = callback
}

func (w *engineWindow) SetCaptureCallback(callback func(captured bool)) {
	w.onCapture = callback
}

func (w *engineWindow) IsKeyPressed(key int) bool {
	return w.pressed[key]
}

func (w *engineWindow) IsMouseButtonPressed(button int) bool {
	return button >= 0 && button < len(w.buttons) && w.buttons[button]
}

func (w *engineWindow) CursorPosition() (float64, float64) {
	return w.cursorX, w.cursorY
}

func (w *engineWindow) CursorCaptured() bool {
	return w.captured
}

func (w *engineWindow) SetCursorCaptured(captured bool) {
	w.captured = captured
	platformSetCursorCaptured(w, captured)
	if w.onCapture != nil {
		w.onCapture(captured)
	}
}

func (w *engineWindow) Time() float64 {
	return platformTime(w)
}

func (w *engineWindow) SwapBuffers() {
	platformSwapBuffers(w)
}

func (w *engineWindow) Native() any {
	return platformNative(w)
}

func (w *engineWindow) IsRunning() bool {
	return !w.closeRequested && platformIsRunningCheck(w)
}

func (w *engineWindow) RequestClose() {
	w.closeRequested = true
	platformRequestClose(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

func (w *engineWindow) String() string {
	return fmt.Sprintf("%s (%dx%d)", w.title, w.width, w.height)
}
