// SPDX-License-Identifier: EPL-2.0

package header

import "errors"

var (
	// ErrNotSpeexHeader indicates a packet without the header magic.
	ErrNotSpeexHeader = errors.New("not a speex header")

	// ErrShortHeader indicates a packet shorter than a full header.
	ErrShortHeader = errors.New("header packet too short")

	// ErrInvalidMode indicates a mode id outside the defined set.
	ErrInvalidMode = errors.New("invalid mode in header")

	// ErrInvalidSampleRate indicates a sample rate that is not positive.
	ErrInvalidSampleRate = errors.New("invalid sample rate in header")
)
