// SPDX-License-Identifier: EPL-2.0

package player

import "sync/atomic"

// Snapshot is a point-in-time view of the session counters. Taking one never
// blocks the producer or the consumer.
type Snapshot struct {
	FramesProduced     int64
	FramesConsumed     int64
	Underruns          int64
	BackpressureStalls int64
	MinOccupancy       int64
	MaxOccupancy       int64
}

// telemetry accumulates session counters. Producer and consumer each write
// only their own counters; everything is atomic so snapshots can be taken
// from any goroutine.
type telemetry struct {
	framesProduced     atomic.Int64
	framesConsumed     atomic.Int64
	underruns          atomic.Int64
	backpressureStalls atomic.Int64

	// Occupancy extrema are observed by the consumer only; min is -1 until
	// the first observation.
	minOccupancy atomic.Int64
	maxOccupancy atomic.Int64
}

func newTelemetry() *telemetry {
	t := &telemetry{}
	t.minOccupancy.Store(-1)
	return t
}

func (t *telemetry) reset() {
	t.framesProduced.Store(0)
	t.framesConsumed.Store(0)
	t.underruns.Store(0)
	t.backpressureStalls.Store(0)
	t.minOccupancy.Store(-1)
	t.maxOccupancy.Store(0)
}

// observeOccupancy records the buffer level seen at a consumer invocation.
// Consumer side only, so plain load/store pairs are race-free.
func (t *telemetry) observeOccupancy(occ int64) {
	if m := t.minOccupancy.Load(); m < 0 || occ < m {
		t.minOccupancy.Store(occ)
	}
	if occ > t.maxOccupancy.Load() {
		t.maxOccupancy.Store(occ)
	}
}

func (t *telemetry) snapshot() Snapshot {
	minOcc := t.minOccupancy.Load()
	if minOcc < 0 {
		minOcc = 0
	}
	return Snapshot{
		FramesProduced:     t.framesProduced.Load(),
		FramesConsumed:     t.framesConsumed.Load(),
		Underruns:          t.underruns.Load(),
		BackpressureStalls: t.backpressureStalls.Load(),
		MinOccupancy:       minOcc,
		MaxOccupancy:       t.maxOccupancy.Load(),
	}
}
