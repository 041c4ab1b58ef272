// SPDX-License-Identifier: EPL-2.0

package utils

// Float32ToInt16 converts a normalized sample to signed 16-bit PCM, clamping
// the input to [-1, 1]. The scale is symmetric (32767 both ways), so -1 maps
// to -32767 rather than math.MinInt16.
func Float32ToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}
	return int16(x * 32767.0)
}
