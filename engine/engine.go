package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-gl/engine/camera"
	"github.com/Carmen-Shannon/oxy-gl/engine/device"
	"github.com/Carmen-Shannon/oxy-gl/engine/gizmo"
	"github.com/Carmen-Shannon/oxy-gl/engine/logging"
	"github.com/Carmen-Shannon/oxy-gl/engine/overlay"
	"github.com/Carmen-Shannon/oxy-gl/engine/profiler"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/framebuffer"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/postprocess"
	"github.com/Carmen-Shannon/oxy-gl/engine/scene"
	"github.com/Carmen-Shannon/oxy-gl/engine/window"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrMissingComponent is returned by NewEngine when a required option was
// not given.
var ErrMissingComponent = errors.New("engine component missing")

// engine implements the Engine interface.
// Everything runs on the thread that owns the GL context.
type engine struct {
	dev    device.Device
	window window.Window

	controller camera.CameraController
	scene      scene.Scene
	gbuffer    framebuffer.Deferred
	pass       postprocess.Pass
	source     framebuffer.Source
	gizmo      gizmo.Gizmo
	overlay    overlay.Overlay

	profiler         *profiler.Profiler
	profilingEnabled bool

	clearColor  [4]float32
	gizmoSize   int
	gizmoOffset [2]float32
	checkErrors bool

	renderCallback   func(deltaTime float32)
	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped

	lastFrame float64
	err       error
	destroyed bool
}

// Engine drives the deferred pipeline: it renders the scene into the
// geometry buffer, runs one post-process pass over a chosen attachment onto
// the window, then draws the axis gizmo and the GUI on top.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Camera returns the camera the scene is viewed through.
	//
	// Returns:
	//   - camera.Camera: the controlled camera
	Camera() camera.Camera

	// Scene returns the rendered scene.
	//
	// Returns:
	//   - scene.Scene: the scene
	Scene() scene.Scene

	// Pass returns the post-process pass.
	//
	// Returns:
	//   - postprocess.Pass: the pass
	Pass() postprocess.Pass

	// Framebuffer returns the current geometry buffer. It is replaced on
	// every resize.
	//
	// Returns:
	//   - framebuffer.Deferred: the geometry buffer
	Framebuffer() framebuffer.Deferred

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output. Stats are still
	// collected for the overlay.
	DisableProfiler()

	// SetRenderCallback registers the function called each frame after the
	// scene is updated and before anything is drawn.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Resize rebuilds the geometry buffer at the new resolution and updates
	// the pass density and camera aspect. Zero sizes are ignored.
	//
	// Parameters:
	//   - width, height: new framebuffer size in pixels
	//
	// Returns:
	//   - error: error if the new geometry buffer could not be built; the old
	//     one stays in use
	Resize(width, height int) error

	// Run renders frames until the window is closed or a frame fails.
	//
	// Returns:
	//   - error: the error that stopped the loop, or nil on a normal close
	Run() error

	// Quit asks the window to close after the current frame.
	Quit()

	// Destroy frees the geometry buffer and every component the engine was
	// given. Safe to call more than once.
	Destroy()
}

var _ Engine = &engine{}

// NewEngine wires the components into a pipeline and builds the geometry
// buffer at the window size. The engine owns every component passed in once
// this returns without error; on error the caller keeps them.
//
// Parameters:
//   - dev: the device context, current on this thread
//   - options: functional options; WithWindow, WithCameraController,
//     WithScene and WithPass are required
//
// Returns:
//   - Engine: the engine
//   - error: ErrMissingComponent, or an error from the geometry buffer
func NewEngine(dev device.Device, options ...EngineBuilderOption) (Engine, error) {
	e := &engine{
		dev:        dev,
		source:     framebuffer.SourceAlbedo,
		profiler:   profiler.NewProfiler(profiler.WithSilent(true)),
		clearColor: [4]float32{0.2, 0.3, 0.3, 1.0},
		gizmoSize:  100,
	}

	for _, opt := range options {
		opt(e)
	}

	switch {
	case e.window == nil:
		return nil, errors.Wrap(ErrMissingComponent, "window")
	case e.controller == nil:
		return nil, errors.Wrap(ErrMissingComponent, "camera controller")
	case e.scene == nil:
		return nil, errors.Wrap(ErrMissingComponent, "scene")
	case e.pass == nil:
		return nil, errors.Wrap(ErrMissingComponent, "post-process pass")
	}

	width, height := e.window.Width(), e.window.Height()
	gbuffer, err := framebuffer.NewDeferred(dev, width, height)
	if err != nil {
		return nil, err
	}
	e.gbuffer = gbuffer
	e.pass.SetDensity(width, height)
	e.controller.Camera().SetAspect(float32(width) / float32(height))
	e.profiler.SetSilent(!e.profilingEnabled)

	e.window.SetResizeCallback(func(width, height int) {
		if err := e.Resize(width, height); err != nil {
			e.fail(err)
		}
	})
	e.window.SetScrollCallback(func(yOffset float64) {
		if e.overlay != nil {
			e.overlay.Scroll(yOffset)
		}
		e.controller.Scrolled(yOffset)
	})
	e.window.SetMouseMoveCallback(e.controller.MouseMoved)
	e.window.SetCaptureCallback(func(captured bool) {
		if captured {
			e.controller.ResetMouse()
		}
	})

	logging.Get().WithFields(logrus.Fields{
		"pass":   e.pass.Kind(),
		"source": e.source,
		"width":  width,
		"height": height,
	}).Info("engine ready")
	return e, nil
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Camera() camera.Camera {
	return e.controller.Camera()
}

func (e *engine) Scene() scene.Scene {
	return e.scene
}

func (e *engine) Pass() postprocess.Pass {
	return e.pass
}

func (e *engine) Framebuffer() framebuffer.Deferred {
	return e.gbuffer
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
	e.profiler.SetSilent(false)
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
	e.profiler.SetSilent(true)
}

func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.renderCallback = callback
}

// SetRenderFrameLimit sets an optional frame rate cap.
// Pass 0 to uncap the loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
}

func (e *engine) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	gbuffer, err := framebuffer.NewDeferred(e.dev, width, height)
	if err != nil {
		return errors.Wrapf(err, "resizing to %dx%d", width, height)
	}
	e.gbuffer.Destroy()
	e.gbuffer = gbuffer

	e.pass.SetDensity(width, height)
	e.controller.Camera().SetAspect(float32(width) / float32(height))

	logging.Get().WithFields(logrus.Fields{"width": width, "height": height}).Debug("resized")
	return nil
}

func (e *engine) Run() error {
	e.lastFrame = e.window.Time()
	e.window.SetUpdateCallback(func() {
		if err := e.frame(); err != nil {
			e.fail(err)
		}
	})
	e.window.ProcessMessages()
	e.window.SetUpdateCallback(nil)
	return e.err
}

func (e *engine) Quit() {
	e.window.RequestClose()
}

// fail records the first fatal error and stops the loop.
func (e *engine) fail(err error) {
	logging.Get().WithError(err).Error("frame failed")
	if e.err == nil {
		e.err = err
	}
	e.window.RequestClose()
}

// frame renders one frame: update, geometry pass, post-process, gizmo, GUI,
// present.
func (e *engine) frame() error {
	start := time.Now()
	now := e.window.Time()
	dt := float32(now - e.lastFrame)
	e.lastFrame = now

	e.controller.Update(e.window, dt)
	e.scene.Update(now)
	if e.renderCallback != nil {
		e.renderCallback(dt)
	}

	cam := e.controller.Camera()
	view, projection := cam.ViewMatrix(), cam.ProjectionMatrix()

	err := e.gbuffer.WithBinding(func() error {
		e.dev.Enable(device.CapabilityDepthTest)
		e.dev.ClearColor(e.clearColor[0], e.clearColor[1], e.clearColor[2], e.clearColor[3])
		e.dev.Clear(device.ClearColor | device.ClearDepth)
		e.scene.DrawDeferred(view, projection, cam.Position(), cam.Front())
		return nil
	})
	if err != nil {
		return err
	}

	width, height := e.window.Width(), e.window.Height()
	e.dev.Clear(device.ClearColor | device.ClearDepth)
	e.dev.Viewport(0, 0, width, height)
	e.pass.Draw(e.gbuffer.Attachment(e.source).ID())

	if e.gizmo != nil {
		e.drawGizmo(cam, width, height)
	}

	e.profiler.Tick()
	if e.overlay != nil {
		e.overlay.NewFrame(width, height, dt, e.window)
		e.overlay.Build(e.profiler.Stats())
		e.overlay.Render()
	}

	if e.checkErrors {
		for err := e.dev.Error(); err != nil; err = e.dev.Error() {
			logging.Get().WithError(err).Warn("device error")
		}
	}
	e.window.SwapBuffers()

	if e.renderFrameLimit > 0 {
		if remaining := e.renderFrameLimit - time.Since(start); remaining > 0 {
			time.Sleep(remaining)
		}
	}
	return nil
}

// drawGizmo draws the axes into a square sub-viewport over the finished
// frame, then restores the full viewport.
func (e *engine) drawGizmo(cam camera.Camera, width, height int) {
	offset := e.gizmoOffset
	if e.overlay != nil {
		offset = e.overlay.GizmoOffset()
	}
	e.dev.Viewport(int(offset[0]), int(offset[1]), e.gizmoSize, e.gizmoSize)
	e.dev.Clear(device.ClearDepth)
	e.gizmo.SetDirection(cam.Front())
	e.gizmo.Draw()
	e.dev.Viewport(0, 0, width, height)
}

func (e *engine) Destroy() {
	if e.destroyed {
		return
	}
	e.destroyed = true

	if e.overlay != nil {
		e.overlay.Destroy()
	}
	if e.gizmo != nil {
		e.gizmo.Destroy()
	}
	e.pass.Destroy()
	e.gbuffer.Destroy()
	e.scene.Destroy()
}
