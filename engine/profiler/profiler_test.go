package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func TestTickReportsOncePerInterval(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	p := NewProfiler(WithClock(clock.now), WithSilent(true))

	for range 99 {
		clock.t = clock.t.Add(10 * time.Millisecond)
		assert.False(t, p.Tick())
	}
	assert.Zero(t, p.Stats().FPS)

	clock.t = clock.t.Add(10 * time.Millisecond)
	assert.True(t, p.Tick())

	s := p.Stats()
	assert.InDelta(t, 100, s.FPS, 0.01)
	assert.InDelta(t, 10, s.FrameTimeMs, 0.01)
	assert.Greater(t, s.SysMB, 0.0)

	clock.t = clock.t.Add(time.Second / 2)
	assert.False(t, p.Tick())
}

func TestWithIntervalIgnoresNonPositive(t *testing.T) {
	p := NewProfiler(WithInterval(0))
	assert.Equal(t, time.Second, p.updateInterval)

	p = NewProfiler(WithInterval(250 * time.Millisecond))
	assert.Equal(t, 250*time.Millisecond, p.updateInterval)
}
