// SPDX-License-Identifier: EPL-2.0

package utils

// PutInt16LE encodes src as little-endian bytes into dst and returns the
// number of bytes written. Encoding stops at whichever of the two buffers is
// exhausted first. No allocation; safe on real-time paths.
func PutInt16LE(dst []byte, src []int16) int {
	n := len(src)
	if max := len(dst) / 2; n > max {
		n = max
	}

	for i := 0; i < n; i++ {
		v := uint16(src[i])
		dst[2*i] = byte(v)
		dst[2*i+1] = byte(v >> 8)
	}

	return n * 2
}

// Int16FromLE decodes little-endian bytes from src into dst and returns the
// number of int16 values written.
func Int16FromLE(dst []int16, src []byte) int {
	n := len(src) / 2
	if n > len(dst) {
		n = len(dst)
	}

	for i := 0; i < n; i++ {
		dst[i] = int16(uint16(src[2*i]) | uint16(src[2*i+1])<<8)
	}

	return n
}
