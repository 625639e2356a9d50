// Package profiler tracks frame timing and heap statistics for the render
// loop and reports them to the log at a fixed interval.
package profiler

import (
	"log"
	"runtime"
	"time"
)

// Stats holds the measurements collected over one reporting interval.
type Stats struct {
	// FPS is the average frame rate over the interval.
	FPS float64
	// MaxFrame is the longest frame observed in the interval.
	MaxFrame time.Duration
	// HeapMB is the live heap size in megabytes at the end of the interval.
	HeapMB float64
	// AllocRateMB is the heap allocation rate in megabytes per second.
	AllocRateMB float64
	// GCCount is the cumulative garbage collection count.
	GCCount uint32
}

// Profiler measures per-frame timing and memory churn. Call Tick once per
// frame; stats are logged once per interval.
type Profiler struct {
	frameCount     int
	maxFrame       time.Duration
	lastTick       time.Time
	intervalStart  time.Time
	interval       time.Duration
	memStats       runtime.MemStats
	lastTotalAlloc uint64
}

// NewProfiler creates a Profiler reporting once per second.
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler() *Profiler {
	now := time.Now()
	return &Profiler{
		lastTick:      now,
		intervalStart: now,
		interval:      time.Second,
	}
}

// SetInterval changes the reporting interval.
//
// Parameters:
//   - interval: time between reports
func (p *Profiler) SetInterval(interval time.Duration) {
	p.interval = interval
}

// Tick records one frame. When the reporting interval has elapsed it logs
// the collected stats and returns them.
//
// Returns:
//   - *Stats: the interval stats, or nil when no report was due
func (p *Profiler) Tick() *Stats {
	now := time.Now()
	frame := now.Sub(p.lastTick)
	p.lastTick = now
	p.frameCount++
	if frame > p.maxFrame {
		p.maxFrame = frame
	}

	elapsed := now.Sub(p.intervalStart)
	if elapsed < p.interval {
		return nil
	}

	runtime.ReadMemStats(&p.memStats)
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc

	stats := &Stats{
		FPS:         float64(p.frameCount) / elapsed.Seconds(),
		MaxFrame:    p.maxFrame,
		HeapMB:      float64(p.memStats.Alloc) / 1024 / 1024,
		AllocRateMB: float64(allocDelta) / 1024 / 1024 / elapsed.Seconds(),
		GCCount:     p.memStats.NumGC,
	}

	log.Printf("[profiler] fps: %.1f | max frame: %s | heap: %.2f MB | alloc: %.2f MB/s | gc: %d",
		stats.FPS, stats.MaxFrame.Round(time.Microsecond), stats.HeapMB, stats.AllocRateMB, stats.GCCount)

	p.frameCount = 0
	p.maxFrame = 0
	p.intervalStart = now
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return stats
}
