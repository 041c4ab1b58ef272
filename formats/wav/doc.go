// SPDX-License-Identifier: EPL-2.0

// Package wav provides a WAV rendering engine and a small PCM writer.
//
// Decoding uses the github.com/go-audio library for header and chunk
// handling; only canonical PCM 16-bit files are accepted. Non-seekable
// readers are buffered in memory first, since go-audio needs random access.
//
//	decoder := wav.Decoder{}
//	eng, err := decoder.Decode(file)
//
// WriteWAV16 writes interleaved 16-bit PCM with a canonical 44-byte header
// to any io.Writer. It exists mostly for tests and simple export paths where
// go-audio's seekable-writer requirement is inconvenient:
//
//	samples := []int16{100, -100, 200, -200}
//	wav.WriteWAV16(file, 8000, 1, samples)
package wav
