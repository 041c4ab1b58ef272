// SPDX-License-Identifier: EPL-2.0

// Package player implements the real-time streaming pipeline: a producer
// goroutine pulling rendered audio from an engine, a lock-free ring buffer,
// a consumer feeding the output device in fixed quanta, and the state
// machine that owns a playback session.
//
// # Two schedulers, one buffer
//
// The producer runs under the ordinary Go scheduler and has no deadline: it
// may be delayed arbitrarily, which only costs headroom. The consumer runs
// inside the output device's real-time pull path with a hard period (about
// 2.9 ms for a 128-frame quantum at 44.1 kHz) and must never block,
// allocate, or do unbounded work. The ring buffer between them is the only
// shared state, and it is wait-free on both sides.
//
// Data flows engine -> producer -> ring -> consumer -> device. Control flows
// the other way: the Player starts and stops both sides, and the schedule
// guard watches the consumer's cadence and reports upward.
//
// # Session lifecycle
//
//	p, _ := player.New(dev, player.Config{})
//	events, cancel := p.Subscribe(16)
//	defer cancel()
//
//	if err := p.Load(ctx, eng); err != nil { ... }
//	p.Play()
//	// ... p.Pause(), p.Play(), ...
//	p.Stop()    // back to idle; Load again to replay
//	p.Destroy() // final
//
// Load pre-rolls the ring (so playback starts with headroom) before
// reporting ready, bounded by the context deadline or the configured load
// timeout. Natural end of stream moves the player to StateEnded once the
// consumer drains the last frames.
//
// # Failure policy
//
// Engine errors are fatal to the session and surface on the event stream;
// underruns, backpressure stalls and schedule warnings are recoverable,
// counted in telemetry, and never interrupt playback. Nothing ever panics
// or errors across the device's real-time boundary — the consumer degrades
// to silence instead.
package player
