// SPDX-License-Identifier: EPL-2.0

package player

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ik5/audstream/engine"
	"github.com/ik5/audstream/output"
	"github.com/ik5/audstream/ring"
	"github.com/ik5/audstream/schedule"
)

// Player orchestrates one playback session at a time: it owns the ring
// buffer, the producer goroutine, the consumer attachment to the output
// device, and the optional schedule guard.
//
// Lifecycle: idle -> loading -> ready -> playing <-> paused -> ended, with
// error reachable from anywhere and Stop returning any active state to idle.
// Seeking is not supported; to play from a different position, Stop and Load
// a fresh engine positioned where you want it.
type Player struct {
	cfg  Config
	dev  output.Device
	log  logrus.FieldLogger
	subs *subscribers
	tele *telemetry

	mtx       sync.Mutex
	state     atomic.Int32
	destroyed bool

	// Session resources, valid between a successful Load and teardown.
	eng          engine.Engine
	ring         *ring.Buffer
	prod         *producer
	cons         *consumer
	guard        *schedule.Guard
	guardSummary *schedule.Summary
	lastProgress float64
}

// New creates a Player bound to an output device. The device format must
// match cfg (the player hands it raw little-endian int16 PCM).
func New(dev output.Device, cfg Config) (*Player, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &Player{
		cfg:  cfg,
		dev:  dev,
		log:  cfg.Logger,
		subs: newSubscribers(),
		tele: newTelemetry(),
	}, nil
}

// State returns the current lifecycle state without blocking.
func (p *Player) State() State { return State(p.state.Load()) }

// Telemetry returns the session counters without blocking either side of
// the stream.
func (p *Player) Telemetry() Snapshot { return p.tele.snapshot() }

// PositionSeconds is the playback position derived from consumed frames.
// It advances while playing and freezes while paused.
func (p *Player) PositionSeconds() float64 {
	return float64(p.tele.framesConsumed.Load()) / float64(p.cfg.SampleRate)
}

// DurationSeconds is the stream length when the engine knows it; otherwise
// it tracks the frames produced so far and becomes exact at end of stream.
func (p *Player) DurationSeconds() float64 {
	p.mtx.Lock()
	eng := p.eng
	p.mtx.Unlock()

	if sized, ok := eng.(engine.Sized); ok {
		if total := sized.TotalFrames(); total >= 0 {
			return float64(total) / float64(p.cfg.SampleRate)
		}
	}
	return float64(p.tele.framesProduced.Load()) / float64(p.cfg.SampleRate)
}

// GuardSummary returns the schedule guard report from the last session that
// had a guard configured, or nil.
func (p *Player) GuardSummary() *schedule.Summary {
	p.mtx.Lock()
	defer p.mtx.Unlock()
	return p.guardSummary
}

// Subscribe registers an event channel with the given buffer depth. The
// returned cancel function closes the channel. Delivery is best effort;
// subscribers that stop draining lose events rather than stalling playback.
func (p *Player) Subscribe(buffer int) (<-chan Event, func()) {
	return p.subs.subscribe(buffer)
}

// Load starts a session: it allocates the ring, spins up the producer,
// waits (bounded) for pre-roll, and attaches the consumer to the output
// device. On success the player takes ownership of eng and is ready to Play.
//
// Cancelling ctx returns the player to idle silently; a timeout or an engine
// failure moves it to error and emits an error event.
func (p *Player) Load(ctx context.Context, eng engine.Engine) error {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	if p.destroyed {
		return ErrDestroyed
	}
	if p.State() != StateIdle {
		return ErrNotIdle
	}
	if eng == nil {
		return ErrNilEngine
	}

	if eng.SampleRate() != p.cfg.SampleRate {
		p.setState(StateError)
		err := fmt.Errorf("%w: engine %d Hz, output %d Hz",
			ErrRateMismatch, eng.SampleRate(), p.cfg.SampleRate)
		p.emitError(err)
		return err
	}
	if eng.Channels() != p.cfg.Channels {
		p.setState(StateError)
		err := fmt.Errorf("%w: engine %d, output %d",
			ErrChannelMismatch, eng.Channels(), p.cfg.Channels)
		p.emitError(err)
		return err
	}

	p.setState(StateLoading)
	p.tele.reset()
	p.lastProgress = 0
	p.guardSummary = nil
	p.emitProgress(0)

	rb, err := ring.New(p.cfg.CapacityFrames, p.cfg.Channels)
	if err != nil {
		p.setState(StateError)
		p.emitError(err)
		return err
	}
	p.ring = rb

	p.prod = newProducer(eng, rb, p.tele, &p.cfg)
	go p.prod.run()

	if err := p.waitPreroll(ctx); err != nil {
		return err
	}

	if p.cfg.Guard != nil {
		p.guard = schedule.New(p.wrapGuardConfig(*p.cfg.Guard))
		p.guard.Start()
	}

	p.cons = newConsumer(rb, p.tele, p.guard, &p.cfg,
		p.prod.eos.Load,
		func() { go p.handleEnded() },
	)

	if err := p.dev.Attach(p.cons); err != nil {
		p.teardown("attach failed")
		p.setState(StateError)
		err = fmt.Errorf("attaching output device: %w", err)
		p.emitError(err)
		return err
	}

	p.eng = eng
	p.emitProgress(1)
	p.setState(StateReady)
	p.log.WithFields(logrus.Fields{
		"sample_rate": p.cfg.SampleRate,
		"channels":    p.cfg.Channels,
		"preroll":     p.cfg.PrerollFrames,
	}).Info("session loaded")

	go p.watchProducer(p.prod)
	return nil
}

// waitPreroll blocks until the producer reaches the pre-roll threshold (or
// finishes a short stream), emitting throttled progress along the way.
// Called with the player mutex held.
func (p *Player) waitPreroll(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.LoadTimeout)
		defer cancel()
	}

	ticker := time.NewTicker(p.cfg.ProgressInterval)
	defer ticker.Stop()

	for {
		select {
		case <-p.prod.prerolled:
			if err := p.prod.fatalErr(); err != nil {
				p.teardown("load failed")
				p.setState(StateError)
				err = fmt.Errorf("loading stream: %w", err)
				p.emitError(err)
				return err
			}
			return nil

		case <-ctx.Done():
			p.teardown("load aborted")
			if ctx.Err() == context.Canceled {
				// Explicit cancellation is not an error.
				p.setState(StateIdle)
				return ctx.Err()
			}
			p.setState(StateError)
			err := fmt.Errorf("%w: %v", ErrPrerollTimeout, ctx.Err())
			p.emitError(err)
			return err

		case <-ticker.C:
			frac := float64(p.ring.Occupancy()) / float64(p.cfg.PrerollFrames)
			if frac > 1 {
				frac = 1
			}
			p.emitProgress(frac)
		}
	}
}

// Play starts or resumes output consumption.
func (p *Player) Play() error {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	if p.destroyed {
		return ErrDestroyed
	}

	switch p.State() {
	case StateReady, StatePaused:
		p.dev.Play()
		p.setState(StatePlaying)
		return nil
	case StatePlaying:
		return nil
	default:
		return fmt.Errorf("%w: play from %s", ErrInvalidState, p.State())
	}
}

// Pause freezes output consumption and the playback position. The producer
// keeps rendering until the ring fills, then parks in its backpressure loop.
// No-op outside playing.
func (p *Player) Pause() {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	if p.State() != StatePlaying {
		return
	}
	p.dev.Pause()
	p.setState(StatePaused)
}

// Stop ends the session from any active state and returns to idle. The ring
// and producer are released; playback can only continue via a fresh Load.
func (p *Player) Stop() {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	if p.destroyed || p.State() == StateIdle {
		return
	}

	p.teardown("stopped")
	p.setState(StateIdle)
}

// Destroy tears everything down and closes all subscriber channels.
// Idempotent; safe from any state.
func (p *Player) Destroy() {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	if p.destroyed {
		return
	}

	p.teardown("destroyed")
	p.setState(StateIdle)
	p.destroyed = true
	p.subs.close()
}

// teardown releases session resources: consumer first (so the device stops
// pulling), then producer, guard, engine, ring. Tolerates partial sessions.
// Called with the player mutex held.
func (p *Player) teardown(reason string) {
	if err := p.dev.Detach(); err != nil {
		p.log.WithError(err).Warn("detaching output device")
	}
	if p.prod != nil {
		p.prod.stop()
	}
	if p.guard != nil {
		p.guardSummary = p.guard.Stop(reason)
		if p.guardSummary != nil {
			p.log.WithFields(logrus.Fields{
				"warnings": p.guardSummary.WarningCount,
				"frames":   p.guardSummary.TotalFrames,
				"avg_ms":   p.guardSummary.AvgFrameDurationMs,
				"worst_ms": p.guardSummary.WorstFrameDurationMs,
			}).Debug("schedule guard summary")
		}
		p.guard = nil
	}
	if p.eng != nil {
		if err := p.eng.Close(); err != nil {
			p.log.WithError(err).Warn("closing engine")
		}
		p.eng = nil
	}
	p.prod = nil
	p.cons = nil
	p.ring = nil
}

// watchProducer surfaces engine failures that happen after a successful
// load, while the session is live.
func (p *Player) watchProducer(prod *producer) {
	<-prod.done

	err := prod.fatalErr()
	if err == nil {
		return
	}

	p.mtx.Lock()
	defer p.mtx.Unlock()

	if p.prod != prod {
		return // session already replaced or torn down
	}

	switch p.State() {
	case StateReady, StatePlaying, StatePaused:
		p.dev.Pause()
		p.setState(StateError)
		p.emitError(fmt.Errorf("engine failed mid-stream: %w", err))
	}
}

// handleEnded runs when the consumer drains the final frames after the
// producer reported end of stream. A Pause can land between the consumer's
// last pull and this dispatch taking the lock, so paused sessions end too.
func (p *Player) handleEnded() {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	switch p.State() {
	case StatePlaying, StatePaused:
	default:
		return
	}

	p.setState(StateEnded)
	snap := p.tele.snapshot()
	p.log.WithFields(logrus.Fields{
		"frames_produced": snap.FramesProduced,
		"frames_consumed": snap.FramesConsumed,
		"underruns":       snap.Underruns,
	}).Info("playback ended")
}

// wrapGuardConfig forwards guard warnings to the event stream and log on
// top of the caller's own callback. Dispatch leaves the consumer callback
// immediately; the emit cost lands on a throwaway goroutine instead of the
// real-time path.
func (p *Player) wrapGuardConfig(cfg schedule.Config) schedule.Config {
	userCB := cfg.OnWarning
	cfg.OnWarning = func(s schedule.Sample) {
		go func() {
			p.log.WithFields(logrus.Fields{
				"avg_ms":      s.AvgFrameDurationMs,
				"worst_ms":    s.WorstFrameDurationMs,
				"over_budget": s.OverBudgetFrameCount,
			}).Warn("output callbacks running late")
			p.subs.emit(Event{Type: EventScheduleWarning, Warning: s})
			if userCB != nil {
				userCB(s)
			}
		}()
	}
	return cfg
}

func (p *Player) setState(s State) {
	if State(p.state.Swap(int32(s))) == s {
		return
	}
	p.log.WithField("state", s.String()).Debug("state changed")
	p.subs.emit(Event{Type: EventStateChanged, State: s})
}

func (p *Player) emitProgress(frac float64) {
	if frac <= p.lastProgress && frac != 0 {
		return
	}
	p.lastProgress = frac
	p.subs.emit(Event{Type: EventProgress, Progress: frac})
}

func (p *Player) emitError(err error) {
	p.log.WithError(err).Error("playback session failed")
	p.subs.emit(Event{Type: EventError, Err: err})
}
