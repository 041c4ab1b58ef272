// SPDX-License-Identifier: EPL-2.0

package player

import (
	"sync"

	"github.com/ik5/audstream/schedule"
)

// EventType discriminates the Event union.
type EventType int

const (
	// EventStateChanged carries the new State.
	EventStateChanged EventType = iota
	// EventProgress carries load progress in [0, 1], monotonically
	// non-decreasing per session and throttled to the progress interval.
	EventProgress
	// EventError carries a fatal, session-ending error.
	EventError
	// EventScheduleWarning carries the guard window that went over budget.
	EventScheduleWarning
)

// Event is delivered to subscribers. Only the field matching Type is set.
type Event struct {
	Type     EventType
	State    State
	Progress float64
	Err      error
	Warning  schedule.Sample
}

// subscribers fans events out to independent buffered channels. Delivery is
// best effort: a subscriber that stopped draining loses events instead of
// blocking the player (or worse, the consumer callback emitting a warning).
type subscribers struct {
	mtx    sync.Mutex
	chans  map[int]chan Event
	nextID int
	closed bool
}

func newSubscribers() *subscribers {
	return &subscribers{chans: make(map[int]chan Event)}
}

// subscribe registers a channel with the given buffer depth (minimum 1) and
// returns it with a cancel function. Cancelling closes the channel.
func (s *subscribers) subscribe(buffer int) (<-chan Event, func()) {
	if buffer < 1 {
		buffer = 1
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	ch := make(chan Event, buffer)
	if s.closed {
		close(ch)
		return ch, func() {}
	}

	id := s.nextID
	s.nextID++
	s.chans[id] = ch

	return ch, func() {
		s.mtx.Lock()
		defer s.mtx.Unlock()
		if c, ok := s.chans[id]; ok {
			delete(s.chans, id)
			close(c)
		}
	}
}

func (s *subscribers) emit(ev Event) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	for _, ch := range s.chans {
		select {
		case ch <- ev:
		default:
			// Slow subscriber; drop rather than stall the emitter.
		}
	}
}

func (s *subscribers) close() {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	for id, ch := range s.chans {
		delete(s.chans, id)
		close(ch)
	}
}
