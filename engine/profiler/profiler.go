package profiler

import (
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-gl/engine/logging"

	"github.com/sirupsen/logrus"
)

// Stats is one profiling sample, taken once per update interval.
type Stats struct {
	FPS         float64
	FrameTimeMs float64
	HeapMB      float64
	AllocRateMB float64
	SysMB       float64
	GCCount     uint32
	LastPauseUs uint64
	MaxPauseUs  uint64
}

// Profiler tracks frame rate and memory statistics for performance monitoring.
// Stats are refreshed and logged at a configurable interval.
type Profiler struct {
	mu sync.Mutex

	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	now            func() time.Time
	silent         bool

	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64

	stats Stats
}

// ProfilerBuilderOption is a functional option for configuring a Profiler.
type ProfilerBuilderOption func(*Profiler)

// WithInterval sets how often stats are refreshed. Defaults to 1 second.
func WithInterval(interval time.Duration) ProfilerBuilderOption {
	return func(p *Profiler) {
		if interval > 0 {
			p.updateInterval = interval
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.now = now
	}
}

// WithSilent keeps collecting stats without logging them.
func WithSilent(silent bool) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.silent = silent
	}
}

// NewProfiler creates a new Profiler.
// Update interval defaults to 1 second.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		updateInterval: time.Second,
		now:            time.Now,
	}
	for _, option := range options {
		option(p)
	}
	p.lastTime = p.now()
	return p
}

// Tick should be called once per frame to track frame timing.
// Refreshes and logs performance statistics when the update interval has elapsed.
// Statistics include: FPS, heap usage, allocation rate, GC count/pause times, total memory.
//
// Returns:
//   - bool: true if stats were refreshed this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.frameCount++
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	fps := float64(p.frameCount) / elapsed.Seconds()

	runtime.ReadMemStats(&p.memStats)
	// Alloc: live heap. TotalAlloc: cumulative, tracks churn. Sys: process footprint.
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc

	gcCount := p.memStats.NumGC
	var lastPauseUs, maxPauseUs uint64
	if gcCount > 0 {
		// PauseNs is a circular buffer of the last 256 GC pauses
		lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			maxPauseUs = max(maxPauseUs, p.memStats.PauseNs[i%256]/1000)
		}
	}

	p.stats = Stats{
		FPS:         fps,
		FrameTimeMs: elapsed.Seconds() * 1000 / float64(p.frameCount),
		HeapMB:      toMB(p.memStats.Alloc),
		AllocRateMB: toMB(allocDelta) / elapsed.Seconds(),
		SysMB:       toMB(p.memStats.Sys),
		GCCount:     gcCount,
		LastPauseUs: lastPauseUs,
		MaxPauseUs:  maxPauseUs,
	}

	if !p.silent {
		logging.Get().WithFields(logrus.Fields{
			"fps":        round2(p.stats.FPS),
			"frame_ms":   round2(p.stats.FrameTimeMs),
			"heap_mb":    round2(p.stats.HeapMB),
			"alloc_mb_s": round2(p.stats.AllocRateMB),
			"gc":         gcCount,
			"gc_last_us": lastPauseUs,
			"gc_max_us":  maxPauseUs,
			"sys_mb":     round2(p.stats.SysMB),
		}).Info("profiler")
	}

	p.frameCount = 0
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// SetSilent toggles logging of each sample.
func (p *Profiler) SetSilent(silent bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.silent = silent
}

// Stats returns the most recent sample. It is zero until the first interval
// has elapsed.
func (p *Profiler) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}

func toMB(b uint64) float64 {
	return float64(b) / 1024 / 1024
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
