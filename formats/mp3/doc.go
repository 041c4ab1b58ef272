// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides an MP3 rendering engine.
//
// This package uses github.com/hajimehoshi/go-mp3, which outputs stereo
// 16-bit little-endian PCM; that maps directly onto the engine.Engine Render
// contract with a byte-to-int16 conversion and no resampling of bit depth.
//
//	decoder := mp3.Decoder{}
//	eng, err := decoder.Decode(file)
//
// The returned engine implements engine.Sized when the input reader is
// seekable.
package mp3
