// SPDX-License-Identifier: EPL-2.0

// Package aiff provides an AIFF rendering engine.
//
// This package uses github.com/go-audio/aiff to decode AIFF files; only
// PCM 16-bit content is accepted. Non-seekable readers are buffered in
// memory first, since go-audio needs random access.
//
//	decoder := aiff.Decoder{}
//	eng, err := decoder.Decode(file)
package aiff
