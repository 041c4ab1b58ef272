// SPDX-License-Identifier: EPL-2.0

package ring

import (
	"sync/atomic"
)

// Buffer is a wait-free single-producer single-consumer ring buffer holding
// interleaved int16 audio frames.
//
// The write cursor belongs to the producer, the read cursor to the consumer.
// Cursors count frames and only ever grow; the physical index is the cursor
// masked by the (power of two) capacity. Go's sync/atomic gives sequentially
// consistent ordering, which subsumes the acquire/release pairing the
// protocol needs: sample data is always copied before the owning cursor is
// published, so the other side never observes unpublished frames.
//
// Thread assignment:
//   - TryWrite, Free: producer only
//   - TryRead, Occupancy extrema: consumer only
//   - Occupancy, Capacity: either side (approximate from the caller's view)
type Buffer struct {
	// Cursors sit on separate cache lines so producer stores do not
	// invalidate the consumer's line and vice versa.
	writePos atomic.Uint64
	_        [56]byte
	readPos  atomic.Uint64
	_        [56]byte

	buf      []int16
	mask     uint64
	capacity uint64 // frames
	channels int
}

// New creates a buffer with capacity rounded up to the next power of two
// frames. capacityFrames and channels must be positive.
func New(capacityFrames, channels int) (*Buffer, error) {
	if capacityFrames <= 0 {
		return nil, ErrBadCapacity
	}
	if channels <= 0 {
		return nil, ErrBadChannels
	}

	size := uint64(1)
	for size < uint64(capacityFrames) {
		size <<= 1
	}

	return &Buffer{
		buf:      make([]int16, size*uint64(channels)),
		mask:     size - 1,
		capacity: size,
		channels: channels,
	}, nil
}

// Capacity returns the buffer capacity in frames.
func (b *Buffer) Capacity() int { return int(b.capacity) }

// Channels returns the number of interleaved channels per frame.
func (b *Buffer) Channels() int { return b.channels }

// Occupancy returns the number of unread frames, in [0, Capacity()].
func (b *Buffer) Occupancy() int {
	return int(b.writePos.Load() - b.readPos.Load())
}

// Free returns the number of frames that can be written without overrunning
// the reader. Only exact from the producer side.
func (b *Buffer) Free() int {
	return int(b.capacity) - b.Occupancy()
}

// TryWrite copies up to len(p)/channels frames into the buffer and returns
// the number of frames actually written. A trailing partial frame in p is
// ignored. Never blocks; producer side only.
func (b *Buffer) TryWrite(p []int16) int {
	w := b.writePos.Load()
	r := b.readPos.Load()

	free := b.capacity - (w - r)
	n := uint64(len(p) / b.channels)
	if n > free {
		n = free
	}
	if n == 0 {
		return 0
	}

	ch := uint64(b.channels)
	pos := (w & b.mask) * ch
	total := n * ch

	// One or two contiguous copies depending on wraparound.
	first := uint64(len(b.buf)) - pos
	if first >= total {
		copy(b.buf[pos:pos+total], p[:total])
	} else {
		copy(b.buf[pos:], p[:first])
		copy(b.buf[:total-first], p[first:total])
	}

	b.writePos.Store(w + n)
	return int(n)
}

// TryRead copies up to len(dst)/channels frames out of the buffer and returns
// the number of frames actually read. Never blocks; consumer side only.
func (b *Buffer) TryRead(dst []int16) int {
	r := b.readPos.Load()
	w := b.writePos.Load()

	avail := w - r
	n := uint64(len(dst) / b.channels)
	if n > avail {
		n = avail
	}
	if n == 0 {
		return 0
	}

	ch := uint64(b.channels)
	pos := (r & b.mask) * ch
	total := n * ch

	first := uint64(len(b.buf)) - pos
	if first >= total {
		copy(dst[:total], b.buf[pos:pos+total])
	} else {
		copy(dst[:first], b.buf[pos:])
		copy(dst[first:total], b.buf[:total-first])
	}

	b.readPos.Store(r + n)
	return int(n)
}

// Reset rewinds both cursors to zero. Only safe while no producer or
// consumer is attached.
func (b *Buffer) Reset() {
	b.writePos.Store(0)
	b.readPos.Store(0)
}
