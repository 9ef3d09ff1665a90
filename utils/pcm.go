// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// PCMScale maps a normalized sample in [-1, 1] to 16-bit scale, the float
// domain coders work in.
const PCMScale = 32768.0

// Float32ToInt16 converts a normalized sample to a 16-bit sample, clamping
// values outside [-1, 1].
func Float32ToInt16(x float32) int16 {
	return ScaledToInt16(x * PCMScale)
}

// Int16ToFloat32 converts a 16-bit sample to a normalized one.
func Int16ToFloat32(s int16) float32 {
	return float32(s) / PCMScale
}

// ScaledToInt16 rounds a sample already in 16-bit scale and clamps it to
// the int16 range.
func ScaledToInt16(v float32) int16 {
	r := math.Round(float64(v))
	return int16(max(math.MinInt16, min(math.MaxInt16, r)))
}

// Float32sToInt16s converts src into dst and returns the number of samples
// converted, the shorter of the two lengths.
func Float32sToInt16s(dst []int16, src []float32) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = Float32ToInt16(src[i])
	}
	return n
}

// Int16sToFloat32s is the inverse of Float32sToInt16s.
func Int16sToFloat32s(dst []float32, src []int16) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = Int16ToFloat32(src[i])
	}
	return n
}
