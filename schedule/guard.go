// SPDX-License-Identifier: EPL-2.0

package schedule

import "time"

// Config controls a Guard.
type Config struct {
	// SampleFrameCount is the number of inter-invocation durations collected
	// before each evaluation.
	SampleFrameCount int
	// WarningBudgetMs is how far above IdealFrameDurationMs the window
	// average may drift before a warning fires.
	WarningBudgetMs float64
	// IdealFrameDurationMs is the expected callback period (e.g. ~2.9 for a
	// 128-frame quantum at 44.1 kHz).
	IdealFrameDurationMs float64
	// OnWarning, if set, is invoked once per over-budget window.
	OnWarning func(Sample)
}

// Sample describes one evaluated window, delivered to OnWarning.
type Sample struct {
	AvgFrameDurationMs   float64
	WorstFrameDurationMs float64
	OverBudgetFrameCount int
	WarningCount         int
	TotalFrames          int
}

// Summary is the final report returned by Stop.
type Summary struct {
	WarningCount         int
	TotalFrames          int
	AvgFrameDurationMs   float64
	WorstFrameDurationMs float64
	WarningBudgetMs      float64
	Reason               string
}

// Guard watches the cadence of a real-time callback and warns when the host
// is falling behind schedule. Late invocations are a leading indicator of
// underruns: the ring still has data, but the device is not asking for it on
// time, which the underrun counter alone cannot see.
//
// Tick is meant to be called from the consumer's invocation path and does
// nothing but arithmetic over clock readings. The Guard is single-owner:
// Start, every Tick, and Stop must be externally ordered (the orchestrator
// detaches the consumer before calling Stop), so no locking is needed.
type Guard struct {
	cfg Config

	// now is the clock; tests substitute a fake.
	now func() time.Time

	started  bool
	lastTick time.Time

	window    []float64
	windowLen int

	totalFrames  int
	warningCount int
	sumMs        float64
	worstMs      float64
}

// New creates a Guard. SampleFrameCount below 1 is clamped to 1.
func New(cfg Config) *Guard {
	if cfg.SampleFrameCount < 1 {
		cfg.SampleFrameCount = 1
	}
	return &Guard{
		cfg:    cfg,
		now:    time.Now,
		window: make([]float64, cfg.SampleFrameCount),
	}
}

// Start arms the guard. Ticks before Start are ignored.
func (g *Guard) Start() {
	g.started = true
	g.lastTick = time.Time{}
	g.windowLen = 0
	g.totalFrames = 0
	g.warningCount = 0
	g.sumMs = 0
	g.worstMs = 0
}

// Tick records one callback invocation. The first tick after Start only
// establishes the baseline timestamp; every later tick contributes one
// inter-invocation duration to the rolling window.
func (g *Guard) Tick() {
	if !g.started {
		return
	}

	now := g.now()
	if g.lastTick.IsZero() {
		g.lastTick = now
		return
	}

	ms := float64(now.Sub(g.lastTick)) / float64(time.Millisecond)
	g.lastTick = now

	g.totalFrames++
	g.sumMs += ms
	if ms > g.worstMs {
		g.worstMs = ms
	}

	g.window[g.windowLen] = ms
	g.windowLen++
	if g.windowLen == g.cfg.SampleFrameCount {
		g.evaluate()
		g.windowLen = 0
	}
}

// evaluate runs once per full window, then the window restarts empty.
func (g *Guard) evaluate() {
	budget := g.cfg.IdealFrameDurationMs + g.cfg.WarningBudgetMs

	var (
		sum        float64
		worst      float64
		overBudget int
	)
	for _, ms := range g.window[:g.windowLen] {
		sum += ms
		if ms > worst {
			worst = ms
		}
		if ms > budget {
			overBudget++
		}
	}
	avg := sum / float64(g.windowLen)

	if avg <= budget {
		return
	}

	g.warningCount++
	if g.cfg.OnWarning != nil {
		g.cfg.OnWarning(Sample{
			AvgFrameDurationMs:   avg,
			WorstFrameDurationMs: worst,
			OverBudgetFrameCount: overBudget,
			WarningCount:         g.warningCount,
			TotalFrames:          g.totalFrames,
		})
	}
}

// Stop disarms the guard and returns the session summary, or nil when Start
// was never called. The reason is carried through verbatim for diagnostics
// ("ended", "paused", "stopped", ...).
func (g *Guard) Stop(reason string) *Summary {
	if !g.started {
		return nil
	}
	g.started = false

	avg := 0.0
	if g.totalFrames > 0 {
		avg = g.sumMs / float64(g.totalFrames)
	}

	return &Summary{
		WarningCount:         g.warningCount,
		TotalFrames:          g.totalFrames,
		AvgFrameDurationMs:   avg,
		WorstFrameDurationMs: g.worstMs,
		WarningBudgetMs:      g.cfg.WarningBudgetMs,
		Reason:               reason,
	}
}
