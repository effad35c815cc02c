package engine

import (
	"fmt"
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/engine/camera"
	"github.com/Carmen-Shannon/oxy-gl/engine/device"
	"github.com/Carmen-Shannon/oxy-gl/engine/device/devicetest"
	"github.com/Carmen-Shannon/oxy-gl/engine/gizmo"
	"github.com/Carmen-Shannon/oxy-gl/engine/overlay"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/framebuffer"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/postprocess"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-gl/engine/scene"
	"github.com/Carmen-Shannon/oxy-gl/engine/window"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWindow is a window without a platform behind it. ProcessMessages runs
// maxFrames iterations unless a close is requested first.
type fakeWindow struct {
	width, height int
	now           float64
	maxFrames     int
	swaps         int
	closed        bool
	captured      bool
	keys          map[int]bool

	onUpdate    func()
	onResize    func(width, height int)
	onScroll    func(yOffset float64)
	onMouseMove func(x, y float64)
	onCapture   func(captured bool)
}

var _ window.Window = &fakeWindow{}

func newFakeWindow(width, height int) *fakeWindow {
	return &fakeWindow{width: width, height: height, captured: true, keys: make(map[int]bool)}
}

func (w *fakeWindow) SetUpdateCallback(cb func()) { w.onUpdate = cb }
func (w *fakeWindow) SetResizeCallback(cb func(int, int)) { w.onResize = cb }
func (w *fakeWindow) SetScrollCallback(cb func(float64)) { w.onScroll = cb }
func (w *fakeWindow) SetKeyDownCallback(func(int)) {}
func (w *fakeWindow) SetKeyUpCallback(func(int)) {}
func (w *fakeWindow) SetMouseMoveCallback(cb func(x, y float64)) { w.onMouseMove = cb }
func (w *fakeWindow) SetCaptureCallback(cb func(captured bool)) { w.onCapture = cb }
func (w *fakeWindow) IsKeyPressed(key int) bool { return w.keys[key] }
func (w *fakeWindow) IsMouseButtonPressed(int) bool { return false }
func (w *fakeWindow) CursorPosition() (float64, float64) { return 0, 0 }
func (w *fakeWindow) CursorCaptured() bool { return w.captured }
func (w *fakeWindow) SetCursorCaptured(captured bool) { w.captured = captured }
func (w *fakeWindow) Time() float64 { return w.now }
func (w *fakeWindow) SwapBuffers() { w.swaps++ }
func (w *fakeWindow) Native() any { return nil }
func (w *fakeWindow) IsRunning() bool { return !w.closed }
func (w *fakeWindow) RequestClose() { w.closed = true }
func (w *fakeWindow) Close() error { return nil }
func (w *fakeWindow) Width() int { return w.width }
func (w *fakeWindow) Height() int { return w.height }

func (w *fakeWindow) ProcessMessages() {
	for i := 0; i < w.maxFrames && w.IsRunning(); i++ {
		w.now += 1.0 / 60
		if w.onUpdate != nil {
			w.onUpdate()
		}
	}
}

func (w *fakeWindow) resize(width, height int) {
	w.width, w.height = width, height
	w.onResize(width, height)
}

func stubSources(name string) (shader.Source, error) {
	return shader.Source{Name: name, Vertex: "void main() {}", Fragment: "void main() {}"}, nil
}

type fixture struct {
	dev    *devicetest.Device
	window *fakeWindow
	pass   postprocess.Pass
	engine *engine
}

func newFixture(t *testing.T, options ...EngineBuilderOption) *fixture {
	t.Helper()
	dev := devicetest.New()
	w := newFakeWindow(800, 600)

	s, err := scene.NewTutorial(dev, stubSources, scene.Assets{})
	require.NoError(t, err)
	p, err := postprocess.New(dev, postprocess.KindPrewitt, stubSources)
	require.NoError(t, err)
	src, _ := stubSources("gizmo")
	g, err := gizmo.New(dev, src)
	require.NoError(t, err)

	opts := []EngineBuilderOption{
		WithWindow(w),
		WithCameraController(camera.NewCameraController(camera.NewCamera())),
		WithScene(s),
		WithPass(p, framebuffer.SourceNormal),
		WithGizmo(g),
	}
	e, err := NewEngine(dev, append(opts, options...)...)
	require.NoError(t, err)
	t.Cleanup(e.Destroy)

	return &fixture{dev: dev, window: w, pass: p, engine: e.(*engine)}
}

// inOrder reports whether want appears in calls as a subsequence.
func inOrder(calls, want []string) bool {
	i := 0
	for _, c := range calls {
		if i < len(want) && c == want[i] {
			i++
		}
	}
	return i == len(want)
}

func TestFrameRunsStagesInOrder(t *testing.T) {
	f := newFixture(t, WithGizmoViewport(100, [2]float32{10, 20}))
	f.dev.ResetRecords()

	require.NoError(t, f.engine.frame())

	gbuffer := f.engine.gbuffer
	require.Len(t, f.dev.Draws, 7)
	for _, d := range f.dev.Draws[:5] {
		assert.Equal(t, gbuffer.ID(), d.Framebuffer)
		assert.Equal(t, [4]int{0, 0, 800, 600}, d.Viewport)
	}

	post := f.dev.Draws[5]
	assert.Zero(t, post.Framebuffer)
	assert.Equal(t, f.pass.Program().ID(), post.Program)
	assert.Equal(t, gbuffer.Normal().ID(), post.Textures[0])
	assert.Equal(t, [4]int{0, 0, 800, 600}, post.Viewport)

	axes := f.dev.Draws[6]
	assert.Zero(t, axes.Framebuffer)
	assert.Equal(t, device.PrimitiveLines, axes.Mode)
	assert.Equal(t, [4]int{10, 20, 100, 100}, axes.Viewport)

	assert.True(t, inOrder(f.dev.Calls, []string{
		fmt.Sprintf("BindFramebuffer %d", gbuffer.ID()),
		fmt.Sprintf("Enable %d", device.CapabilityDepthTest),
		fmt.Sprintf("Clear %d", device.ClearColor|device.ClearDepth),
		"BindFramebuffer 0",
		fmt.Sprintf("Clear %d", device.ClearColor|device.ClearDepth),
		"Viewport 0 0 800 600",
		"Viewport 10 20 100 100",
		fmt.Sprintf("Clear %d", device.ClearDepth),
		"Viewport 0 0 800 600",
	}), "calls: %v", f.dev.Calls)

	assert.Equal(t, [4]float32{0.2, 0.3, 0.3, 1.0}, f.dev.ClearRGBA)
	assert.Equal(t, [4]int{0, 0, 800, 600}, f.dev.ViewportRect)
	assert.Equal(t, 1, f.window.swaps)
}

func TestResizeRebuildsGeometryBuffer(t *testing.T) {
	f := newFixture(t)
	old := f.engine.gbuffer.ID()

	f.window.resize(1024, 512)

	assert.NotEqual(t, old, f.engine.gbuffer.ID())
	assert.False(t, f.dev.IsLive(devicetest.KindFramebuffer, old))
	assert.Equal(t, 1024, f.engine.gbuffer.Width())
	w, h := f.pass.Size()
	assert.Equal(t, 1024, w)
	assert.Equal(t, 512, h)
	assert.Equal(t, float32(2), f.engine.Camera().Aspect())

	current := f.engine.gbuffer.ID()
	require.NoError(t, f.engine.Resize(0, 0))
	assert.Equal(t, current, f.engine.gbuffer.ID())
}

func TestResizeFailureKeepsOldBufferAndStops(t *testing.T) {
	f := newFixture(t)
	old := f.engine.gbuffer.ID()

	f.dev.Incomplete = true
	f.window.resize(640, 480)

	assert.Equal(t, old, f.engine.gbuffer.ID())
	assert.True(t, f.dev.IsLive(devicetest.KindFramebuffer, old))
	assert.True(t, f.window.closed)
	assert.ErrorIs(t, f.engine.err, framebuffer.ErrFramebufferIncomplete)
}

func TestRunStopsWhenWindowCloses(t *testing.T) {
	f := newFixture(t)
	f.window.maxFrames = 3

	var deltas []float32
	f.engine.SetRenderCallback(func(dt float32) { deltas = append(deltas, dt) })

	require.NoError(t, f.engine.Run())
	assert.Equal(t, 3, f.window.swaps)
	require.Len(t, deltas, 3)
	for _, dt := range deltas {
		assert.InDelta(t, 1.0/60, dt, 1e-6)
	}
}

func TestQuitEndsRun(t *testing.T) {
	f := newFixture(t)
	f.window.maxFrames = 10
	f.engine.SetRenderCallback(func(float32) { f.engine.Quit() })

	require.NoError(t, f.engine.Run())
	assert.Equal(t, 1, f.window.swaps)
}

func TestDeviceErrorsAreLoggedNotFatal(t *testing.T) {
	f := newFixture(t, WithErrorChecks(true))
	f.dev.PendingErrors = []error{errors.New("invalid enum"), errors.New("invalid value")}

	require.NoError(t, f.engine.frame())
	assert.Empty(t, f.dev.PendingErrors)
	assert.False(t, f.window.closed)
}

func TestScrollZoomsCamera(t *testing.T) {
	f := newFixture(t)
	f.window.onScroll(2)
	assert.InDelta(t, 42, f.engine.Camera().Fov(), 1e-5)
}

func TestOverlayDrivesGizmoOffset(t *testing.T) {
	o, err := overlay.New(nil, overlay.WithGizmoOffset([2]float32{30, 40}))
	require.NoError(t, err)
	f := newFixture(t, WithOverlay(o), WithGizmoViewport(64, [2]float32{1, 1}))
	f.dev.ResetRecords()

	require.NoError(t, f.engine.frame())
	last := f.dev.Draws[len(f.dev.Draws)-1]
	assert.Equal(t, [4]int{30, 40, 64, 64}, last.Viewport)
}

func TestNewEngineRequiresComponents(t *testing.T) {
	_, err := NewEngine(devicetest.New(), WithWindow(newFakeWindow(1, 1)))
	assert.ErrorIs(t, err, ErrMissingComponent)
}

func TestDestroyReleasesEverything(t *testing.T) {
	dev := devicetest.New()
	s, err := scene.NewTutorial(dev, stubSources, scene.Assets{})
	require.NoError(t, err)
	p, err := postprocess.New(dev, postprocess.KindBayerDither, stubSources)
	require.NoError(t, err)

	e, err := NewEngine(dev,
		WithWindow(newFakeWindow(320, 240)),
		WithCameraController(camera.NewCameraController(camera.NewCamera())),
		WithScene(s),
		WithPass(p, framebuffer.SourceAlbedo),
	)
	require.NoError(t, err)

	e.Destroy()
	e.Destroy()
	assert.True(t, dev.Balanced())
	assert.Zero(t, dev.DoubleFrees)
}
