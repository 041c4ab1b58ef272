// SPDX-License-Identifier: EPL-2.0

// Package output abstracts the audio output device.
//
// The Device interface models a pull-based endpoint: once a reader is
// attached and Play is called, the device's real-time machinery reads PCM
// bytes from it at its own cadence. The oto-backed implementation is the
// production device; tests drive the player with hand-pumped fakes instead.
package output
