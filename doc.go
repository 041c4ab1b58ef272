// SPDX-License-Identifier: EPL-2.0

// Package audstream provides real-time audio streaming playback for Go
// applications.
//
// It connects a pull-based audio engine (a format decoder, a synthesizer, or
// anything else producing interleaved int16 PCM) to an output device through
// a lock-free ring buffer, keeping the device's real-time callback path free
// of blocking, allocation and locks.
//
// # Supported Formats
//
// The package ships decoders for the following audio formats:
//   - WAV (PCM 16-bit) via formats/wav
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//   - AIFF (PCM 16-bit) via formats/aiff
//
// # Quick Start
//
// The simplest way to play a file end to end:
//
//	eng, _ := audstream.OpenFile("music.mp3")
//
//	dev, _ := output.NewOto(eng.SampleRate(), eng.Channels(), 128)
//	p, _ := player.New(dev, player.Config{
//		SampleRate: eng.SampleRate(),
//		Channels:   eng.Channels(),
//	})
//	defer p.Destroy()
//
//	if err := p.Load(context.Background(), eng); err != nil { ... }
//	p.Play()
//
// Load pre-rolls the buffer before reporting ready, so playback starts
// without an immediate underrun. Subscribe to the player's event stream for
// state changes, load progress and schedule warnings.
//
// # Architecture
//
// Audio flows engine -> producer -> ring -> consumer -> device:
//
//   - engine: the pull contract decoders and synthesizers implement
//   - ring: the wait-free single-producer single-consumer frame buffer
//   - player: producer/consumer goroutines and the session state machine
//   - schedule: callback cadence monitoring with over-budget warnings
//   - output: the device abstraction, backed by oto
//
// The producer renders ahead under the ordinary Go scheduler; the consumer
// serves the device callback and degrades to silence (never an error) when
// the buffer runs dry.
//
// # Custom Engines
//
// Anything implementing engine.Engine can be streamed, not just files:
//
//	type tone struct{ ... }
//
//	func (t *tone) SampleRate() int { return 44100 }
//	func (t *tone) Channels() int   { return 2 }
//	func (t *tone) Render(dst []int16) (int, error) { ... }
//	func (t *tone) Close() error    { return nil }
//
// See the individual subpackages for more detailed documentation.
package audstream
