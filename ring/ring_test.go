// SPDX-License-Identifier: EPL-2.0

package ring

import (
	"sync"
	"testing"
)

// frames builds an interleaved buffer of n stereo frames whose samples encode
// their own position, so ordering violations are visible in assertions.
func frames(start, n, channels int) []int16 {
	out := make([]int16, n*channels)
	for f := 0; f < n; f++ {
		for c := 0; c < channels; c++ {
			out[f*channels+c] = int16((start+f)*channels + c)
		}
	}
	return out
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	if _, err := New(0, 2); err != ErrBadCapacity {
		t.Errorf("New(0, 2) error = %v, want ErrBadCapacity", err)
	}
	if _, err := New(-5, 2); err != ErrBadCapacity {
		t.Errorf("New(-5, 2) error = %v, want ErrBadCapacity", err)
	}
	if _, err := New(16, 0); err != ErrBadChannels {
		t.Errorf("New(16, 0) error = %v, want ErrBadChannels", err)
	}
}

func TestNew_RoundsToPowerOfTwo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		request int
		want    int
	}{
		{1, 1},
		{2, 2},
		{3, 4},
		{100, 128},
		{16384, 16384},
	}

	for _, tt := range tests {
		b, err := New(tt.request, 2)
		if err != nil {
			t.Fatalf("New(%d, 2) error = %v", tt.request, err)
		}
		if b.Capacity() != tt.want {
			t.Errorf("New(%d, 2).Capacity() = %d, want %d", tt.request, b.Capacity(), tt.want)
		}
	}
}

func TestBuffer_RoundTrip(t *testing.T) {
	t.Parallel()

	b, err := New(64, 2)
	if err != nil {
		t.Fatal(err)
	}

	in := frames(0, 48, 2)
	if n := b.TryWrite(in); n != 48 {
		t.Fatalf("TryWrite() = %d, want 48", n)
	}
	if occ := b.Occupancy(); occ != 48 {
		t.Fatalf("Occupancy() = %d, want 48", occ)
	}

	out := make([]int16, 48*2)
	if n := b.TryRead(out); n != 48 {
		t.Fatalf("TryRead() = %d, want 48", n)
	}
	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("sample %d = %d, want %d", i, out[i], in[i])
		}
	}
	if occ := b.Occupancy(); occ != 0 {
		t.Errorf("Occupancy() after drain = %d, want 0", occ)
	}
}

func TestBuffer_PartialWriteWhenNearlyFull(t *testing.T) {
	t.Parallel()

	b, err := New(16, 2)
	if err != nil {
		t.Fatal(err)
	}

	if n := b.TryWrite(frames(0, 12, 2)); n != 12 {
		t.Fatalf("first TryWrite() = %d, want 12", n)
	}

	// Only 4 frames of space remain; offering 8 must write exactly 4.
	if n := b.TryWrite(frames(12, 8, 2)); n != 4 {
		t.Errorf("TryWrite() into nearly full buffer = %d, want 4", n)
	}
	if occ := b.Occupancy(); occ != 16 {
		t.Errorf("Occupancy() = %d, want 16", occ)
	}

	// Exactly full: nothing more fits.
	if n := b.TryWrite(frames(16, 1, 2)); n != 0 {
		t.Errorf("TryWrite() into full buffer = %d, want 0", n)
	}
}

func TestBuffer_PartialReadWhenNearlyEmpty(t *testing.T) {
	t.Parallel()

	b, err := New(16, 2)
	if err != nil {
		t.Fatal(err)
	}

	b.TryWrite(frames(0, 3, 2))

	dst := make([]int16, 8*2)
	if n := b.TryRead(dst); n != 3 {
		t.Errorf("TryRead() from nearly empty buffer = %d, want 3", n)
	}

	// Exactly empty: nothing to read.
	if n := b.TryRead(dst); n != 0 {
		t.Errorf("TryRead() from empty buffer = %d, want 0", n)
	}
}

func TestBuffer_WraparoundPreservesOrder(t *testing.T) {
	t.Parallel()

	b, err := New(8, 2)
	if err != nil {
		t.Fatal(err)
	}

	// Advance the cursors so the next write spans the physical end.
	b.TryWrite(frames(0, 6, 2))
	drain := make([]int16, 6*2)
	b.TryRead(drain)

	// Write 6 frames starting at physical index 6 of 8: wraps after 2.
	in := frames(6, 6, 2)
	if n := b.TryWrite(in); n != 6 {
		t.Fatalf("wrapping TryWrite() = %d, want 6", n)
	}

	out := make([]int16, 6*2)
	if n := b.TryRead(out); n != 6 {
		t.Fatalf("wrapping TryRead() = %d, want 6", n)
	}
	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("sample %d across wraparound = %d, want %d", i, out[i], in[i])
		}
	}
}

func TestBuffer_FillDrainAtExactCapacity(t *testing.T) {
	t.Parallel()

	b, err := New(8, 1)
	if err != nil {
		t.Fatal(err)
	}

	// Repeatedly fill to exact capacity and drain to exact empty at every
	// possible physical offset.
	for round := 0; round < 10; round++ {
		in := frames(round*8, 8, 1)
		if n := b.TryWrite(in); n != 8 {
			t.Fatalf("round %d: TryWrite() = %d, want 8", round, n)
		}
		if occ := b.Occupancy(); occ != 8 {
			t.Fatalf("round %d: Occupancy() = %d, want 8", round, occ)
		}

		out := make([]int16, 8)
		if n := b.TryRead(out); n != 8 {
			t.Fatalf("round %d: TryRead() = %d, want 8", round, n)
		}
		for i := range in {
			if out[i] != in[i] {
				t.Fatalf("round %d: sample %d = %d, want %d", round, i, out[i], in[i])
			}
		}

		// Shift the physical offset by an odd amount for the next round.
		b.TryWrite(in[:3])
		b.TryRead(out[:3])
	}
}

func TestBuffer_TruncatesPartialFrame(t *testing.T) {
	t.Parallel()

	b, err := New(8, 2)
	if err != nil {
		t.Fatal(err)
	}

	// 5 samples = 2 whole stereo frames plus a dangling sample.
	if n := b.TryWrite(make([]int16, 5)); n != 2 {
		t.Errorf("TryWrite() with partial frame = %d, want 2", n)
	}
}

func TestBuffer_Reset(t *testing.T) {
	t.Parallel()

	b, err := New(8, 2)
	if err != nil {
		t.Fatal(err)
	}

	b.TryWrite(frames(0, 5, 2))
	b.Reset()

	if occ := b.Occupancy(); occ != 0 {
		t.Errorf("Occupancy() after Reset() = %d, want 0", occ)
	}
	if free := b.Free(); free != 8 {
		t.Errorf("Free() after Reset() = %d, want 8", free)
	}
}

// TestBuffer_ConcurrentSPSC streams a known sequence through a tiny buffer
// with a free-running producer and consumer and verifies order and integrity
// end to end.
func TestBuffer_ConcurrentSPSC(t *testing.T) {
	t.Parallel()

	const (
		channels    = 2
		totalFrames = 50000
	)

	b, err := New(64, channels)
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		sent := 0
		chunk := make([]int16, 17*channels) // deliberately not a divisor of capacity
		for sent < totalFrames {
			n := min(17, totalFrames-sent)
			copy(chunk, frames(sent, n, channels))
			off := 0
			for off < n {
				w := b.TryWrite(chunk[off*channels : n*channels])
				off += w
				sent += w
			}
		}
	}()

	got := make([]int16, 0, totalFrames*channels)
	go func() {
		defer wg.Done()
		dst := make([]int16, 13*channels)
		for len(got) < totalFrames*channels {
			n := b.TryRead(dst)
			got = append(got, dst[:n*channels]...)
		}
	}()

	wg.Wait()

	want := frames(0, totalFrames, channels)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sample %d = %d, want %d", i, got[i], want[i])
		}
	}
}
