// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")

	// ErrFrameSize indicates a frame slice whose length is not the reader's
	// frame size.
	ErrFrameSize = errors.New("frame length does not match frame size")

	// ErrBitDepth indicates an integer buffer with a bit depth outside 8..32.
	ErrBitDepth = errors.New("unsupported bit depth")

	ErrNoFormat = errors.New("buffer has no format")

	// ErrInvalidFormat indicates a buffer format without channels or with a
	// non-positive sample rate.
	ErrInvalidFormat = errors.New("invalid buffer format")
)
