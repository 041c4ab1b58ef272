// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides an Ogg Vorbis rendering engine.
//
// This package uses github.com/jfreymuth/oggvorbis to decode Ogg Vorbis
// streams into float32 frames, which are converted to int16 on the way out.
//
//	decoder := vorbis.Decoder{}
//	eng, err := decoder.Decode(file)
package vorbis
