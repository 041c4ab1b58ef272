// SPDX-License-Identifier: EPL-2.0

package output

import "io"

// Device is the playback endpoint the player drives. The device pulls
// interleaved 16-bit little-endian PCM from the attached reader on its own
// real-time schedule; the player never pushes.
type Device interface {
	// Attach wires the audio source to the device without starting
	// playback. Attaching while already attached is an error.
	Attach(r io.Reader) error
	// Play starts (or resumes) pulling from the attached reader.
	Play()
	// Pause stops pulling. The attached reader keeps its position.
	Pause()
	// Detach stops playback and releases the attachment. Safe to call when
	// nothing is attached.
	Detach() error
}
