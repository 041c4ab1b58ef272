// SPDX-License-Identifier: EPL-2.0

package enginetest

import (
	"io"
	"math"
	"time"
)

// MockEngine is a test helper that renders deterministic int16 audio.
// It implements the engine.Engine and engine.Sized interfaces (without
// importing them to avoid cycles).
type MockEngine struct {
	sampleRate  int
	channels    int
	totalFrames int // total frames to render
	rendered    int // frames rendered so far
	pattern     func(frame, channel int) int16

	// FailAfter makes Render return FailErr once this many frames have been
	// rendered. Negative means never fail.
	FailAfter int
	FailErr   error

	// RenderDelay is slept at the top of every Render call, simulating a
	// slow or unresponsive engine.
	RenderDelay time.Duration

	closed bool
}

// NewMockEngine creates a mock engine rendering totalFrames frames of the
// given waveform pattern.
func NewMockEngine(sampleRate, channels, totalFrames int, pattern func(frame, channel int) int16) *MockEngine {
	return &MockEngine{
		sampleRate:  sampleRate,
		channels:    channels,
		totalFrames: totalFrames,
		pattern:     pattern,
		FailAfter:   -1,
	}
}

// NewSilentEngine creates a mock engine rendering silence.
func NewSilentEngine(sampleRate, channels, totalFrames int) *MockEngine {
	return NewMockEngine(sampleRate, channels, totalFrames, func(frame, channel int) int16 {
		return 0
	})
}

// NewCounterEngine creates a mock engine whose samples encode their own
// stream position, so tests can verify ordering and integrity end to end.
func NewCounterEngine(sampleRate, channels, totalFrames int) *MockEngine {
	return NewMockEngine(sampleRate, channels, totalFrames, func(frame, channel int) int16 {
		return int16(frame*channels + channel)
	})
}

// NewSineEngine creates a mock engine rendering a sine wave.
func NewSineEngine(sampleRate, channels, totalFrames int, frequency float64) *MockEngine {
	return NewMockEngine(sampleRate, channels, totalFrames, func(frame, channel int) int16 {
		t := float64(frame) / float64(sampleRate)
		return int16(math.Sin(2*math.Pi*frequency*t) * 30000)
	})
}

func (m *MockEngine) SampleRate() int { return m.sampleRate }
func (m *MockEngine) Channels() int   { return m.channels }

// TotalFrames implements the optional Sized interface.
func (m *MockEngine) TotalFrames() int64 { return int64(m.totalFrames) }

// Rendered returns the number of frames rendered so far.
func (m *MockEngine) Rendered() int { return m.rendered }

// Closed reports whether Close was called.
func (m *MockEngine) Closed() bool { return m.closed }

// Reset rewinds the engine so the same instance can be rendered again.
func (m *MockEngine) Reset() { m.rendered = 0 }

func (m *MockEngine) Close() error {
	m.closed = true
	return nil
}

func (m *MockEngine) Render(dst []int16) (int, error) {
	if m.RenderDelay > 0 {
		time.Sleep(m.RenderDelay)
	}
	if m.FailAfter >= 0 && m.rendered >= m.FailAfter {
		return 0, m.FailErr
	}
	if m.rendered >= m.totalFrames {
		return 0, io.EOF
	}

	frames := len(dst) / m.channels
	if remain := m.totalFrames - m.rendered; frames > remain {
		frames = remain
	}

	for f := 0; f < frames; f++ {
		for c := 0; c < m.channels; c++ {
			dst[f*m.channels+c] = m.pattern(m.rendered+f, c)
		}
	}
	m.rendered += frames

	return frames, nil
}
