// SPDX-License-Identifier: EPL-2.0

// Package utils holds the sample arithmetic shared by the audio pipeline:
// conversions between normalized float, 16-bit scale float and int16
// samples, and the spline used for resampling.
package utils
