// SPDX-License-Identifier: EPL-2.0

package player

import (
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ik5/audstream/engine"
	"github.com/ik5/audstream/ring"
)

// Producer lifecycle. The tri-state lets stop() be called from any goroutine
// without blocking on the render loop: the loop observes stopping at its
// next iteration or backpressure retry and winds down on its own.
const (
	lifecycleRunning int32 = iota
	lifecycleStopping
	lifecycleStopped
)

// backpressureRetryDelay is how long the producer yields when the ring has
// no room for the rest of a burst.
const backpressureRetryDelay = 2 * time.Millisecond

// producer drives the engine: it renders fixed-size bursts and pushes them
// into the ring, suspending itself (never the consumer) when the ring is
// full. Rendered audio is never dropped; a burst that does not fit is
// retried until it does or the producer is stopped.
type producer struct {
	eng  engine.Engine
	ring *ring.Buffer
	tele *telemetry
	log  logrus.FieldLogger

	channels      int
	burstFrames   int
	prerollFrames int
	retryDelay    time.Duration

	lifecycle atomic.Int32
	eos       atomic.Bool

	// prerolled is closed once occupancy first reaches the pre-roll
	// threshold, or earlier on EOS or fatal error so Load never hangs.
	prerolled   chan struct{}
	prerollOnce sync.Once

	// fatal carries at most one session-ending engine error.
	fatal chan error
	done  chan struct{}
}

func newProducer(eng engine.Engine, rb *ring.Buffer, tele *telemetry, cfg *Config) *producer {
	return &producer{
		eng:           eng,
		ring:          rb,
		tele:          tele,
		log:           cfg.Logger,
		channels:      cfg.Channels,
		burstFrames:   cfg.BurstFrames,
		prerollFrames: cfg.PrerollFrames,
		retryDelay:    backpressureRetryDelay,
		prerolled:     make(chan struct{}),
		fatal:         make(chan error, 1),
		done:          make(chan struct{}),
	}
}

// run is the producer goroutine body.
func (p *producer) run() {
	defer close(p.done)
	defer p.lifecycle.Store(lifecycleStopped)
	// Whatever ends this loop, a waiting Load must wake up.
	defer p.markPrerolled()

	burst := make([]int16, p.burstFrames*p.channels)

	for p.lifecycle.Load() == lifecycleRunning {
		frames, err := p.eng.Render(burst)
		if err != nil && err != io.EOF {
			p.log.WithError(err).Error("engine render failed")
			p.fatal <- err
			return
		}

		if frames > 0 {
			if !p.writeAll(burst[:frames*p.channels]) {
				return // stopped while waiting for space
			}
			if p.ring.Occupancy() >= p.prerollFrames {
				p.markPrerolled()
			}
		}

		if err == io.EOF {
			p.eos.Store(true)
			p.log.WithField("frames", p.tele.framesProduced.Load()).
				Debug("end of stream reached")
			return
		}
	}
}

// writeAll pushes every frame of samples into the ring, yielding between
// attempts while the ring is full. Returns false if stopped mid-write.
func (p *producer) writeAll(samples []int16) bool {
	total := len(samples) / p.channels
	written := 0

	for written < total {
		n := p.ring.TryWrite(samples[written*p.channels:])
		if n > 0 {
			p.tele.framesProduced.Add(int64(n))
			written += n
			continue
		}

		if p.lifecycle.Load() != lifecycleRunning {
			return false
		}
		p.tele.backpressureStalls.Add(1)
		time.Sleep(p.retryDelay)
	}

	return true
}

func (p *producer) markPrerolled() {
	p.prerollOnce.Do(func() { close(p.prerolled) })
}

// stop requests shutdown and waits for the goroutine to exit. Idempotent and
// callable from any goroutine; the wait is bounded by one engine render plus
// one retry delay.
func (p *producer) stop() {
	p.lifecycle.CompareAndSwap(lifecycleRunning, lifecycleStopping)
	<-p.done
}

// fatalErr returns the recorded engine error, if any, without blocking.
func (p *producer) fatalErr() error {
	select {
	case err := <-p.fatal:
		return err
	default:
		return nil
	}
}
