package engine

import (
	"github.com/Carmen-Shannon/oxy-gl/engine/camera"
	"github.com/Carmen-Shannon/oxy-gl/engine/gizmo"
	"github.com/Carmen-Shannon/oxy-gl/engine/overlay"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/framebuffer"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/postprocess"
	"github.com/Carmen-Shannon/oxy-gl/engine/scene"
	"github.com/Carmen-Shannon/oxy-gl/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithWindow sets the window the engine renders into and reads input from.
//
// Parameters:
//   - w: a window with a current GL context
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithCameraController sets the controller that moves the camera.
func WithCameraController(c camera.CameraController) EngineBuilderOption {
	return func(e *engine) {
		e.controller = c
	}
}

// WithScene sets the scene drawn into the geometry buffer.
func WithScene(s scene.Scene) EngineBuilderOption {
	return func(e *engine) {
		e.scene = s
	}
}

// WithPass sets the post-process pass and the attachment it reads.
//
// Parameters:
//   - p: the pass
//   - source: which geometry buffer output feeds it
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithPass(p postprocess.Pass, source framebuffer.Source) EngineBuilderOption {
	return func(e *engine) {
		e.pass = p
		e.source = source
	}
}

// WithGizmo enables the axis gizmo.
func WithGizmo(g gizmo.Gizmo) EngineBuilderOption {
	return func(e *engine) {
		e.gizmo = g
	}
}

// WithGizmoViewport places the gizmo. The overlay sliders take over the
// offset when an overlay is set.
//
// Parameters:
//   - size: side of the square viewport in pixels, ignored if <= 0
//   - offset: bottom-left corner in pixels
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithGizmoViewport(size int, offset [2]float32) EngineBuilderOption {
	return func(e *engine) {
		if size > 0 {
			e.gizmoSize = size
		}
		e.gizmoOffset = offset
	}
}

// WithOverlay enables the GUI overlay.
func WithOverlay(o overlay.Overlay) EngineBuilderOption {
	return func(e *engine) {
		e.overlay = o
	}
}

// WithClearColor sets the geometry buffer clear colour.
func WithClearColor(rgba [4]float32) EngineBuilderOption {
	return func(e *engine) {
		e.clearColor = rgba
	}
}

// WithErrorChecks drains and logs device errors at the end of every frame.
// Errors never stop the loop.
func WithErrorChecks(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.checkErrors = enabled
	}
}

// WithRenderFrameLimit sets an optional frame rate cap in frames per second.
// Pass 0 to uncap the loop (default).
//
// Parameters:
//   - fps: maximum frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.SetRenderFrameLimit(fps)
	}
}
