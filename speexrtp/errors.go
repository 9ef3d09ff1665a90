// SPDX-License-Identifier: EPL-2.0

package speexrtp

import "errors"

var (
	// ErrPayloadType indicates a packet whose payload type is not the
	// negotiated one.
	ErrPayloadType = errors.New("unexpected payload type")

	// ErrEmptyPayload indicates a packet, or a flush, with no coded frames.
	ErrEmptyPayload = errors.New("empty speex payload")

	// ErrLate indicates a duplicate or reordered packet.
	ErrLate = errors.New("late or duplicate packet")
)
