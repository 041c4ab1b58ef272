// SPDX-License-Identifier: EPL-2.0

// Package engine defines the rendering contract between audio sources and
// the streaming pipeline.
//
// # Engine Interface
//
// The Engine interface is the narrow seam the producer pulls audio through:
//
//	type Engine interface {
//	    SampleRate() int
//	    Channels() int
//	    Render(dst []int16) (int, error)
//	    Close() error
//	}
//
// Render fills a caller-supplied buffer with interleaved int16 frames and
// returns the number of whole frames written. io.EOF signals exhaustion;
// like io.Reader, an engine may return frames together with io.EOF on the
// final call. An engine's internal position only moves forward — there is no
// seek. Restart playback from a new position by constructing a new engine.
//
// All decoders in formats/ produce Engines, and anything that can fill an
// int16 buffer (a softsynth, a chip emulator core, a test tone generator)
// can implement one directly.
//
// # Sized
//
// Engines that know their length implement Sized, which lets the player
// report a duration before the stream finishes. Engines without it report a
// growing duration that becomes exact at end of stream.
//
// # Registry
//
// The registry allows dynamic decoder registration by format key:
//
//	registry := engine.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, _ := registry.Get("wav")
//
// The root audstream package wires a default registry covering the built-in
// formats.
package engine
