// SPDX-License-Identifier: EPL-2.0

package player

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ik5/audstream/schedule"
)

// Defaults for a 44.1 kHz stereo session: ~370 ms of buffer, ~93 ms of
// pre-roll, and the 128-frame quantum common to hardware callbacks.
const (
	DefaultSampleRate       = 44100
	DefaultChannels         = 2
	DefaultCapacityFrames   = 16384
	DefaultPrerollFrames    = 4096
	DefaultBurstFrames      = 2048
	DefaultQuantumFrames    = 128
	DefaultLoadTimeout      = 10 * time.Second
	DefaultProgressInterval = 50 * time.Millisecond
)

// Config parameterizes a Player. The zero value is usable: every field
// falls back to the defaults above.
type Config struct {
	// SampleRate and Channels describe the output format. Engines must
	// match exactly; the streaming path performs no rate conversion.
	SampleRate int
	Channels   int

	// CapacityFrames is the ring buffer size (rounded up to a power of
	// two). Must be a multiple of QuantumFrames.
	CapacityFrames int
	// PrerollFrames must be buffered before Load reports ready.
	PrerollFrames int
	// BurstFrames is how much the producer asks the engine for per render.
	BurstFrames int
	// QuantumFrames is the fixed consumer read granularity.
	QuantumFrames int

	// LoadTimeout bounds the pre-roll wait when the Load context carries
	// no deadline of its own.
	LoadTimeout time.Duration
	// ProgressInterval throttles load progress events.
	ProgressInterval time.Duration

	// Guard, when set, attaches a schedule guard to the consumer cadence.
	Guard *schedule.Config

	// Logger receives lifecycle and diagnostic records; discarded if nil.
	Logger logrus.FieldLogger
}

func (c *Config) applyDefaults() {
	if c.SampleRate <= 0 {
		c.SampleRate = DefaultSampleRate
	}
	if c.Channels <= 0 {
		c.Channels = DefaultChannels
	}
	if c.CapacityFrames <= 0 {
		c.CapacityFrames = DefaultCapacityFrames
	}
	if c.PrerollFrames <= 0 {
		c.PrerollFrames = DefaultPrerollFrames
	}
	if c.BurstFrames <= 0 {
		c.BurstFrames = DefaultBurstFrames
	}
	if c.QuantumFrames <= 0 {
		c.QuantumFrames = DefaultQuantumFrames
	}
	if c.LoadTimeout <= 0 {
		c.LoadTimeout = DefaultLoadTimeout
	}
	if c.ProgressInterval <= 0 {
		c.ProgressInterval = DefaultProgressInterval
	}
	if c.Logger == nil {
		log := logrus.New()
		log.SetOutput(io.Discard)
		c.Logger = log
	}
}

func (c *Config) validate() error {
	if c.QuantumFrames <= 0 {
		return ErrBadQuantum
	}
	if c.BurstFrames <= 0 {
		return ErrBadBurst
	}
	if c.CapacityFrames%c.QuantumFrames != 0 {
		return ErrBadCapacity
	}
	if c.PrerollFrames > c.CapacityFrames {
		return ErrBadPreroll
	}
	return nil
}
