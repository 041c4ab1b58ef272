// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"io"
	"sync"
)

// Engine renders interleaved signed 16-bit audio on request.
//
// An Engine is pulled by the streaming producer one burst at a time; its
// internal position advances monotonically with each Render call. Seeking is
// not part of the contract — callers restart from a fresh Engine instead.
type Engine interface {
	// SampleRate of the rendered PCM stream in Hz. Fixed for the lifetime
	// of the engine and queryable before the first Render.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// Render fills dst with interleaved int16 frames. len(dst) must be a
	// multiple of Channels(). Returns the number of whole frames written.
	// When the source is exhausted, Render returns io.EOF; the final call
	// may return both frames and io.EOF.
	Render(dst []int16) (frames int, err error)

	// Close releases any resources.
	Close() error
}

// Sized is implemented by engines that know their total length up front.
type Sized interface {
	// TotalFrames of the stream, or a negative value when unknown.
	TotalFrames() int64
}

// Decoder constructs an Engine from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Engine, error)
}

// Registry maps format keys (e.g., "wav", "mp3", "ogg") to decoders.
type Registry struct {
	codecs map[string]Decoder

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
		mtx:    &sync.Mutex{},
	}
}

func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[format] = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[format]
	return d, ok
}

// Drain pulls the whole engine through repeated Render calls and returns the
// collected frames. Mostly useful for tests and offline tooling; streaming
// playback should go through the player instead.
func Drain(e Engine, burstFrames int) ([]int16, error) {
	if burstFrames <= 0 {
		burstFrames = 2048
	}

	out := make([]int16, 0, burstFrames*e.Channels())
	buf := make([]int16, burstFrames*e.Channels())

	for {
		n, err := e.Render(buf)
		if n > 0 {
			out = append(out, buf[:n*e.Channels()]...)
		}
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
	}
}
