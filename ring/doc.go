// SPDX-License-Identifier: EPL-2.0

// Package ring provides a lock-free single-producer single-consumer ring
// buffer of interleaved multi-channel audio frames.
//
// The buffer is the hand-off point between a rendering goroutine and a
// real-time output callback. Both sides communicate through two monotonically
// increasing frame cursors; each cursor is owned by exactly one side and is
// published with an atomic store, so neither side ever blocks the other.
//
// # Usage
//
//	buf, _ := ring.New(16384, 2)
//
//	// producer goroutine
//	written := buf.TryWrite(frames) // may write fewer frames than offered
//
//	// consumer callback
//	got := buf.TryRead(quantum) // may read fewer frames than requested
//
// TryWrite and TryRead never block and never allocate. A short write means
// the buffer is (nearly) full and the producer should retry after yielding;
// a short read means the buffer is (nearly) empty and the consumer should
// fill the remainder with silence.
//
// # Discipline
//
// Exactly one goroutine may call TryWrite and exactly one may call TryRead
// for the lifetime of a buffer. Reset is only safe while both sides are
// detached. Violating this corrupts the stream, not the process.
package ring
