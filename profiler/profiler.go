// Package profiler reports frame timing and memory statistics of a benchmark
// run to the log.
package profiler

import (
	"log"
	"runtime"
	"time"

	"github.com/edwinsyarief/flipboard/ecs"
	"github.com/edwinsyarief/flipboard/frame"
)

// Reporter aggregates frame.Stats and logs a summary every interval frames.
type Reporter struct {
	interval int
	logger   *log.Logger

	frames         int
	update         time.Duration
	worst          time.Duration
	lastTime       time.Time
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	reports        int
}

// NewReporter returns a Reporter that logs every interval frames to logger.
// A nil logger uses the standard logger; an interval below 1 never logs.
func NewReporter(interval int, logger *log.Logger) *Reporter {
	if logger == nil {
		logger = log.Default()
	}
	r := &Reporter{interval: interval, logger: logger, lastTime: time.Now()}
	runtime.ReadMemStats(&r.memStats)
	r.lastGCCount = r.memStats.NumGC
	r.lastTotalAlloc = r.memStats.TotalAlloc
	return r
}

// Attach subscribes r to frame statistics on bus.
func (r *Reporter) Attach(bus *ecs.EventBus) {
	ecs.Subscribe(bus, func(s frame.Stats) { r.Observe(s) })
}

// Reports returns the number of summaries logged so far.
func (r *Reporter) Reports() int {
	return r.reports
}

// Observe records one frame and logs when the interval is complete. It reports
// whether a summary was logged.
func (r *Reporter) Observe(s frame.Stats) bool {
	if r.interval < 1 {
		return false
	}
	r.frames++
	r.update += s.Update
	r.worst = max(r.worst, s.Update)
	if r.frames < r.interval {
		return false
	}

	now := time.Now()
	elapsed := now.Sub(r.lastTime).Seconds()
	fps := float64(r.frames) / max(elapsed, 1e-9)
	avg := r.update / time.Duration(r.frames)

	runtime.ReadMemStats(&r.memStats)
	heapMB := float64(r.memStats.Alloc) / 1024 / 1024
	allocRateMB := float64(r.memStats.TotalAlloc-r.lastTotalAlloc) / 1024 / 1024 / max(elapsed, 1e-9)
	gcRuns := r.memStats.NumGC - r.lastGCCount

	r.logger.Printf("[Profiler] frame %d | %s x%d | FPS: %.2f | update avg %v max %v | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d",
		s.Index, s.Strategy, s.Sprites, fps, avg, r.worst, heapMB, allocRateMB, gcRuns)

	r.frames = 0
	r.update = 0
	r.worst = 0
	r.lastTime = now
	r.lastGCCount = r.memStats.NumGC
	r.lastTotalAlloc = r.memStats.TotalAlloc
	r.reports++
	return true
}
