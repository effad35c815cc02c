package overlay

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/profiler"

	"github.com/inkyblackness/imgui-go/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRenderer struct {
	frames    int
	lists     int
	size      [2]float32
	destroyed bool
}

func (r *recordingRenderer) Render(displaySize, _ [2]float32, drawData imgui.DrawData) {
	r.frames++
	r.size = displaySize
	r.lists = len(drawData.CommandLists())
}

func (r *recordingRenderer) Destroy() {
	r.destroyed = true
}

type pointer struct {
	x, y     float64
	left     bool
	captured bool
}

func (p pointer) CursorPosition() (float64, float64) { return p.x, p.y }

func (p pointer) IsMouseButtonPressed(button int) bool { return button == common.MouseButtonLeft && p.left }

func (p pointer) CursorCaptured() bool { return p.captured }

func newRecording(t *testing.T, options ...OverlayBuilderOption) (Overlay, *recordingRenderer) {
	t.Helper()
	rec := &recordingRenderer{}
	o, err := New(func(io imgui.IO) (Renderer, error) {
		io.Fonts().TextureDataRGBA32()
		return rec, nil
	}, options...)
	require.NoError(t, err)
	return o, rec
}

func TestFrameReachesRenderer(t *testing.T) {
	o, rec := newRecording(t)

	// A new window is hidden while it auto-fits, so the first frame may
	// carry no draw lists.
	for range 2 {
		o.NewFrame(800, 600, 1.0/60, pointer{captured: true})
		o.Build(profiler.Stats{FPS: 60, FrameTimeMs: 16.7})
		o.Render()
	}

	assert.Equal(t, 2, rec.frames)
	assert.Equal(t, [2]float32{800, 600}, rec.size)
	assert.Positive(t, rec.lists)
	assert.False(t, o.WantsMouse())

	o.Destroy()
	assert.True(t, rec.destroyed)
	o.Destroy()
}

func TestGizmoOffsetIsClamped(t *testing.T) {
	o, _ := newRecording(t, WithGizmoOffset([2]float32{-10, 900}))
	defer o.Destroy()
	assert.Equal(t, [2]float32{0, 800}, o.GizmoOffset())
}

func TestCapturedCursorDoesNotClick(t *testing.T) {
	o, _ := newRecording(t)
	defer o.Destroy()

	for range 3 {
		o.NewFrame(800, 600, 1.0/60, pointer{x: 40, y: 50, left: true, captured: true})
		o.Build(profiler.Stats{})
		o.Render()
	}
	assert.Zero(t, o.Clicks())
}

func TestRendererErrorDestroysContext(t *testing.T) {
	o, err := New(func(imgui.IO) (Renderer, error) {
		return nil, errors.New("no context")
	})
	assert.Nil(t, o)
	assert.EqualError(t, err, "no context")
}

func TestWithoutRendererFramesStillBuild(t *testing.T) {
	o, err := New(nil)
	require.NoError(t, err)
	defer o.Destroy()

	o.NewFrame(640, 480, 0, nil)
	o.Build(profiler.Stats{})
	o.Render()
}
