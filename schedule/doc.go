// SPDX-License-Identifier: EPL-2.0

// Package schedule detects real-time callback jitter.
//
// A Guard is ticked once per output callback invocation. It accumulates the
// durations between consecutive ticks into a fixed-size window; whenever the
// window fills, the window average is compared against the configured budget
// and a warning fires if the host is running late. The window then resets
// and accumulation continues.
//
//	guard := schedule.New(schedule.Config{
//	    SampleFrameCount:     120,
//	    IdealFrameDurationMs: 2.9,
//	    WarningBudgetMs:      1.0,
//	    OnWarning:            func(s schedule.Sample) { log.Warn(s) },
//	})
//	guard.Start()
//	// per callback: guard.Tick()
//	summary := guard.Stop("ended")
//
// Stop returns nil when Start was never called.
package schedule
