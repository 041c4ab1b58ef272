// SPDX-License-Identifier: EPL-2.0

package player

import (
	"io"
	"sync"
	"sync/atomic"

	"github.com/ik5/audstream/ring"
	"github.com/ik5/audstream/schedule"
	"github.com/ik5/audstream/utils"
)

// consumer serves the output device from the ring buffer in fixed quanta.
//
// It runs inside the device's real-time pull path, so the hard rules apply:
// no blocking, no allocation, no unbounded work. A quantum that cannot be
// filled from the ring is padded with silence and counted as an underrun;
// nothing is ever raised across the device boundary except end of stream.
type consumer struct {
	ring  *ring.Buffer
	tele  *telemetry
	guard *schedule.Guard // may be nil

	quantumFrames int
	channels      int

	// producerEOS reports whether the producer finished the stream; once it
	// has and the ring drains to empty, playback has naturally ended.
	producerEOS func() bool
	onEnded     func()

	ended     atomic.Bool
	endedOnce sync.Once

	// scratch holds one quantum of frames; pre-allocated so Read stays
	// allocation-free.
	scratch []int16
}

func newConsumer(rb *ring.Buffer, tele *telemetry, guard *schedule.Guard, cfg *Config, producerEOS func() bool, onEnded func()) *consumer {
	return &consumer{
		ring:          rb,
		tele:          tele,
		guard:         guard,
		quantumFrames: cfg.QuantumFrames,
		channels:      cfg.Channels,
		producerEOS:   producerEOS,
		onEnded:       onEnded,
		scratch:       make([]int16, cfg.QuantumFrames*cfg.Channels),
	}
}

// nextQuantum fills dst (whole frames, at most one quantum) from the ring,
// padding any shortfall with silence. Returns the frames that came from the
// ring.
func (c *consumer) nextQuantum(dst []int16) int {
	if c.guard != nil {
		c.guard.Tick()
	}

	c.tele.observeOccupancy(int64(c.ring.Occupancy()))

	got := c.ring.TryRead(dst)
	if got > 0 {
		c.tele.framesConsumed.Add(int64(got))
	}

	want := len(dst) / c.channels
	if got < want {
		for i := got * c.channels; i < len(dst); i++ {
			dst[i] = 0
		}

		if c.producerEOS() && c.ring.Occupancy() == 0 {
			// The stream is over, not late; drain ends the session.
			c.finish()
		} else {
			c.tele.underruns.Add(1)
		}
	}

	return got
}

func (c *consumer) finish() {
	c.endedOnce.Do(func() {
		c.ended.Store(true)
		if c.onEnded != nil {
			c.onEnded()
		}
	})
}

// Read implements io.Reader for the output device, serving little-endian
// int16 PCM in quantum-sized pulls. It always fills the requested length
// (silence-padded if need be) until the stream ends, then returns io.EOF.
func (c *consumer) Read(p []byte) (int, error) {
	if c.ended.Load() {
		return 0, io.EOF
	}

	bytesPerFrame := 2 * c.channels
	totalFrames := len(p) / bytesPerFrame
	if totalFrames == 0 {
		return 0, nil
	}

	written := 0
	for written < totalFrames {
		n := totalFrames - written
		if n > c.quantumFrames {
			n = c.quantumFrames
		}

		c.nextQuantum(c.scratch[:n*c.channels])
		utils.PutInt16LE(p[written*bytesPerFrame:], c.scratch[:n*c.channels])
		written += n

		if c.ended.Load() {
			break
		}
	}

	if written == 0 {
		return 0, io.EOF
	}
	return written * bytesPerFrame, nil
}
