// SPDX-License-Identifier: EPL-2.0

package speexrtp

import (
	"fmt"

	"github.com/ik5/speex/bits"
	"github.com/pion/rtp"
)

// Depacketizer checks incoming packets of one stream and hands their
// payloads to a decoder's bit buffer.
// It is not safe for concurrent use.
type Depacketizer struct {
	payloadType uint8

	started bool
	lastSeq uint16
	lost    int
}

func NewDepacketizer(payloadType uint8) *Depacketizer {
	return &Depacketizer{payloadType: payloadType}
}

// Feed loads pkt's payload into into and returns the number of packets
// missing between the previous accepted packet and pkt. Duplicate and
// reordered packets fail with ErrLate and leave into untouched.
func (d *Depacketizer) Feed(pkt *rtp.Packet, into *bits.Buffer) (int, error) {
	if pkt.PayloadType != d.payloadType {
		return 0, fmt.Errorf("%w: %d, want %d", ErrPayloadType, pkt.PayloadType, d.payloadType)
	}
	if len(pkt.Payload) == 0 {
		return 0, ErrEmptyPayload
	}

	lost := 0
	if d.started {
		// uint16 subtraction wraps with the sequence space
		gap := pkt.SequenceNumber - d.lastSeq
		if gap == 0 || gap >= 1<<15 {
			return 0, fmt.Errorf("%w: sequence %d after %d", ErrLate, pkt.SequenceNumber, d.lastSeq)
		}
		lost = int(gap) - 1
	}

	if err := into.ReadFrom(pkt.Payload); err != nil {
		return 0, fmt.Errorf("load payload: %w", err)
	}

	d.started = true
	d.lastSeq = pkt.SequenceNumber
	d.lost += lost

	return lost, nil
}

// Lost returns the total number of packets found missing so far.
func (d *Depacketizer) Lost() int { return d.lost }
