package app

import (
	"log/slog"
	"time"
)

// profileEvery is the reporting period in frames.
const profileEvery = 300

// Profiler accumulates draw and present durations and logs their averages
// every 300 frames.
type Profiler struct {
	log     *slog.Logger
	draw    time.Duration
	present time.Duration
	frames  int
}

// NewProfiler reports through log.
func NewProfiler(log *slog.Logger) *Profiler {
	return &Profiler{log: log}
}

// RecordDraw adds time spent updating and rasterizing.
func (p *Profiler) RecordDraw(d time.Duration) { p.draw += d }

// RecordPresent adds time spent handing the frame to the display.
func (p *Profiler) RecordPresent(d time.Duration) { p.present += d }

// FrameEnd counts a frame and logs the running averages on every
// 300th. It reports whether it logged.
func (p *Profiler) FrameEnd() bool {
	p.frames++
	if p.frames%profileEvery != 0 {
		return false
	}
	draw, present := p.Averages()
	p.log.Info("profile",
		"frames", p.frames,
		"avg_draw_ms", float64(draw.Microseconds())/1000,
		"avg_present_ms", float64(present.Microseconds())/1000,
	)
	return true
}

// Averages returns the mean draw and present time per frame so far.
func (p *Profiler) Averages() (draw, present time.Duration) {
	if p.frames == 0 {
		return 0, 0
	}
	n := time.Duration(p.frames)
	return p.draw / n, p.present / n
}

// Frames returns the number of completed frames.
func (p *Profiler) Frames() int { return p.frames }
