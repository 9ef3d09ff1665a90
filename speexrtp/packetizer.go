// SPDX-License-Identifier: EPL-2.0

package speexrtp

import (
	"math/rand/v2"

	"github.com/ik5/speex/bits"
	"github.com/ik5/speex/engine"
	"github.com/pion/rtp"
)

// MediaSubtype is the SDP encoding name of the payload format.
const MediaSubtype = "speex"

// ClockRate returns the RTP clock rate of mode, which is its sampling rate.
func ClockRate(mode engine.ModeID) uint32 {
	return uint32(engine.MustLookup(mode).SampleRate)
}

type packetizerOptions struct {
	frames    int
	sequencer rtp.Sequencer
	timestamp uint32
}

// PacketizerOption configures a Packetizer.
type PacketizerOption func(*packetizerOptions)

// FramesPerPacket sets how many frames go into one packet.
func FramesPerPacket(n int) PacketizerOption {
	if n < 1 {
		panic("frames per packet must be at least 1")
	}
	return func(o *packetizerOptions) { o.frames = n }
}

// WithSequencer replaces the random initial sequence number.
func WithSequencer(s rtp.Sequencer) PacketizerOption {
	if s == nil {
		panic("sequencer can't be nil")
	}
	return func(o *packetizerOptions) { o.sequencer = s }
}

// WithTimestamp replaces the random initial timestamp.
func WithTimestamp(ts uint32) PacketizerOption {
	return func(o *packetizerOptions) { o.timestamp = ts }
}

// Packetizer groups coded frames of one mode into RTP packets.
// It is not safe for concurrent use.
type Packetizer struct {
	payloadType uint8
	ssrc        uint32
	frameSize   uint32
	perPacket   int
	sequencer   rtp.Sequencer

	timestamp uint32
	pending   int
	marker    bool
}

// NewPacketizer returns a Packetizer for frames of mode. It panics for an
// undefined mode.
func NewPacketizer(mode engine.ModeID, payloadType uint8, ssrc uint32, opts ...PacketizerOption) *Packetizer {
	desc := engine.MustLookup(mode)

	o := packetizerOptions{frames: 1, timestamp: rand.Uint32()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.sequencer == nil {
		o.sequencer = rtp.NewRandomSequencer()
	}

	return &Packetizer{
		payloadType: payloadType,
		ssrc:        ssrc,
		frameSize:   uint32(desc.FrameSize),
		perPacket:   o.frames,
		sequencer:   o.sequencer,
		timestamp:   o.timestamp,
		marker:      true,
	}
}

// MarkTalkspurt sets the marker bit on the next packet. Call it when
// transmission resumes after silence was suppressed.
func (p *Packetizer) MarkTalkspurt() { p.marker = true }

// Pending returns the number of frames in buf not yet packetized.
func (p *Packetizer) Pending() int { return p.pending }

// Push accounts for one more frame encoded into buf. Once buf holds a full
// packet's worth it is drained into the returned packet; until then Push
// returns nil.
func (p *Packetizer) Push(buf *bits.Buffer) (*rtp.Packet, error) {
	p.pending++
	if p.pending < p.perPacket {
		return nil, nil
	}
	return p.emit(buf)
}

// Flush drains a partially filled buf into a packet. It returns nil when no
// frame is pending.
func (p *Packetizer) Flush(buf *bits.Buffer) (*rtp.Packet, error) {
	if p.pending == 0 {
		return nil, nil
	}
	return p.emit(buf)
}

func (p *Packetizer) emit(buf *bits.Buffer) (*rtp.Packet, error) {
	frames := p.pending
	p.pending = 0

	if buf.Len() == 0 {
		return nil, ErrEmptyPayload
	}

	buf.InsertTerminator()
	payload := buf.Bytes()
	buf.Reset()

	pkt := &rtp.Packet{
		Header: rtp.Header{
			Version:        2,
			Marker:         p.marker,
			PayloadType:    p.payloadType,
			SequenceNumber: p.sequencer.NextSequenceNumber(),
			Timestamp:      p.timestamp,
			SSRC:           p.ssrc,
		},
		Payload: payload,
	}

	p.marker = false
	p.timestamp += uint32(frames) * p.frameSize

	return pkt, nil
}
