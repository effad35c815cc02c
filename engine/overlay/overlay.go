// Package overlay draws the debug GUI on top of the finished frame with Dear
// ImGui.
package overlay

import (
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/logging"
	"github.com/Carmen-Shannon/oxy-gl/engine/profiler"

	"github.com/inkyblackness/imgui-go/v4"
)

// Input is the pointer state the GUI reads each frame. window.Window
// satisfies it.
type Input interface {
	CursorPosition() (x, y float64)
	IsMouseButtonPressed(button int) bool
	CursorCaptured() bool
}

// Renderer turns ImGui draw data into draw calls.
type Renderer interface {
	// Render draws one frame of GUI geometry.
	//
	// Parameters:
	//   - displaySize: window size in screen coordinates
	//   - framebufferSize: framebuffer size in pixels
	//   - drawData: the frame's geometry
	Render(displaySize, framebufferSize [2]float32, drawData imgui.DrawData)

	// Destroy frees the renderer's GPU objects.
	Destroy()
}

// Overlay owns the ImGui context and the "Demo window" panel.
type Overlay interface {
	// NewFrame feeds display size, frame time and pointer state to ImGui and
	// starts a frame. While the cursor is captured the GUI sees no pointer.
	//
	// Parameters:
	//   - width, height: framebuffer size in pixels
	//   - dt: seconds since the previous frame
	//   - input: pointer state
	NewFrame(width, height int, dt float32, input Input)

	// Scroll forwards a wheel step to the GUI.
	Scroll(yOffset float64)

	// Build lays out the panel.
	//
	// Parameters:
	//   - stats: the latest profiler sample, shown as an FPS readout
	Build(stats profiler.Stats)

	// Render finishes the frame and draws it.
	Render()

	// GizmoOffset returns the gizmo viewport origin chosen with the sliders.
	GizmoOffset() [2]float32

	// Clicks returns how often the panel button was pressed.
	Clicks() int

	// WantsMouse reports whether the pointer is over a GUI window.
	WantsMouse() bool

	// Destroy frees the renderer and the ImGui context.
	Destroy()
}

// Slider range for the gizmo position, in pixels.
const (
	gizmoMin = 0
	gizmoMax = 800
)

type overlay struct {
	ctx      *imgui.Context
	io       imgui.IO
	renderer Renderer

	width, height int
	gizmoOffset   [2]float32
	clicks        int
}

var _ Overlay = &overlay{}

// New creates the ImGui context and, when newRenderer is given, the renderer
// for it. Without a renderer frames are built but not drawn.
//
// Parameters:
//   - newRenderer: builds the renderer for the context's IO, may be nil
//   - options: functional options to configure the overlay
//
// Returns:
//   - Overlay: the overlay
//   - error: error if the renderer could not be built
func New(newRenderer func(io imgui.IO) (Renderer, error), options ...OverlayBuilderOption) (Overlay, error) {
	o := &overlay{
		ctx: imgui.CreateContext(nil),
	}
	o.io = imgui.CurrentIO()
	o.io.SetIniFilename("")
	for _, option := range options {
		option(o)
	}

	if newRenderer != nil {
		r, err := newRenderer(o.io)
		if err != nil {
			o.ctx.Destroy()
			return nil, err
		}
		o.renderer = r
	} else {
		// The atlas has to be built before the first frame.
		o.io.Fonts().TextureDataRGBA32()
	}

	logging.Get().Debug("overlay created")
	return o, nil
}

func (o *overlay) NewFrame(width, height int, dt float32, input Input) {
	o.width, o.height = width, height
	o.io.SetDisplaySize(imgui.Vec2{X: float32(width), Y: float32(height)})
	o.io.SetDeltaTime(max(dt, 1e-4))

	if input == nil || input.CursorCaptured() {
		o.io.SetMousePosition(imgui.Vec2{X: -math.MaxFloat32, Y: -math.MaxFloat32})
		for i := range common.MouseButtonCount {
			o.io.SetMouseButtonDown(i, false)
		}
	} else {
		x, y := input.CursorPosition()
		o.io.SetMousePosition(imgui.Vec2{X: float32(x), Y: float32(y)})
		for i := range common.MouseButtonCount {
			o.io.SetMouseButtonDown(i, input.IsMouseButtonPressed(i))
		}
	}

	imgui.NewFrame()
}

func (o *overlay) Scroll(yOffset float64) {
	o.io.AddMouseWheelDelta(0, float32(yOffset))
}

func (o *overlay) Build(stats profiler.Stats) {
	imgui.Begin("Demo window")
	if imgui.Button("Button") {
		o.clicks++
	}
	imgui.SliderFloat2("Gizmo Position", &o.gizmoOffset, gizmoMin, gizmoMax)
	imgui.Text(fmt.Sprintf("%.1f FPS (%.2f ms)", stats.FPS, stats.FrameTimeMs))
	imgui.End()
}

func (o *overlay) Render() {
	imgui.Render()
	if o.renderer == nil {
		return
	}
	size := [2]float32{float32(o.width), float32(o.height)}
	o.renderer.Render(size, size, imgui.RenderedDrawData())
}

func (o *overlay) GizmoOffset() [2]float32 {
	return o.gizmoOffset
}

func (o *overlay) Clicks() int {
	return o.clicks
}

func (o *overlay) WantsMouse() bool {
	return o.io.WantCaptureMouse()
}

func (o *overlay) Destroy() {
	if o.ctx == nil {
		return
	}
	if o.renderer != nil {
		o.renderer.Destroy()
	}
	o.ctx.Destroy()
	o.ctx = nil
}
