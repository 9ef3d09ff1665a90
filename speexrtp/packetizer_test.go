// SPDX-License-Identifier: EPL-2.0

package speexrtp

import (
	"errors"
	"testing"

	"github.com/ik5/speex/bits"
	"github.com/ik5/speex/coder"
	"github.com/ik5/speex/engine"
	"github.com/ik5/speex/internal/enginetest"
	"github.com/pion/rtp"
)

func encodeInto(t *testing.T, enc *coder.NBEncoder, buf *bits.Buffer, level int16) {
	t.Helper()

	frame := make([]int16, enc.Descriptor().FrameSize)
	for i := range frame {
		frame[i] = level
	}
	if err := enc.EncodeInt(frame, buf); err != nil {
		t.Fatalf("EncodeInt() error = %v", err)
	}
}

func TestClockRate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mode engine.ModeID
		want uint32
	}{
		{engine.NarrowBand, 8000},
		{engine.WideBand, 16000},
		{engine.UltraWideBand, 32000},
	}

	for _, tt := range tests {
		if got := ClockRate(tt.mode); got != tt.want {
			t.Errorf("ClockRate(%v) = %d, want %d", tt.mode, got, tt.want)
		}
	}
}

func TestPacketizer(t *testing.T) {
	t.Parallel()

	enc, err := coder.NewNBEncoder(enginetest.New())
	if err != nil {
		t.Fatalf("NewNBEncoder() error = %v", err)
	}
	defer enc.Close()

	p := NewPacketizer(engine.NarrowBand, 97, 0xCAFE,
		FramesPerPacket(2), WithSequencer(rtp.NewFixedSequencer(65535)), WithTimestamp(1000))
	buf := bits.New()

	encodeInto(t, enc, buf, 0)
	pkt, err := p.Push(buf)
	if pkt != nil || err != nil {
		t.Fatalf("Push() first frame = %v, %v, want nil, nil", pkt, err)
	}
	if p.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", p.Pending())
	}

	encodeInto(t, enc, buf, 0)
	first, err := p.Push(buf)
	if err != nil || first == nil {
		t.Fatalf("Push() second frame = %v, %v", first, err)
	}
	if buf.Len() != 0 {
		t.Errorf("buffer Len() = %d after packetizing, want 0", buf.Len())
	}

	encodeInto(t, enc, buf, 0)
	_, _ = p.Push(buf)
	encodeInto(t, enc, buf, 0)
	second, err := p.Push(buf)
	if err != nil || second == nil {
		t.Fatalf("Push() fourth frame = %v, %v", second, err)
	}

	tests := []struct {
		name   string
		pkt    *rtp.Packet
		seq    uint16
		ts     uint32
		marker bool
	}{
		{"first", first, 65535, 1000, true},
		{"second", second, 0, 1320, false},
	}

	for _, tt := range tests {
		h := tt.pkt.Header
		if h.Version != 2 || h.PayloadType != 97 || h.SSRC != 0xCAFE {
			t.Errorf("%s: header = %+v", tt.name, h)
		}
		if h.SequenceNumber != tt.seq {
			t.Errorf("%s: SequenceNumber = %d, want %d", tt.name, h.SequenceNumber, tt.seq)
		}
		if h.Timestamp != tt.ts {
			t.Errorf("%s: Timestamp = %d, want %d", tt.name, h.Timestamp, tt.ts)
		}
		if h.Marker != tt.marker {
			t.Errorf("%s: Marker = %v, want %v", tt.name, h.Marker, tt.marker)
		}
	}
}

func TestPacketizer_MarkTalkspurt(t *testing.T) {
	t.Parallel()

	enc, err := coder.NewNBEncoder(enginetest.New())
	if err != nil {
		t.Fatalf("NewNBEncoder() error = %v", err)
	}
	defer enc.Close()

	p := NewPacketizer(engine.NarrowBand, 97, 1)
	buf := bits.New()

	var markers []bool
	for i := range 4 {
		if i == 2 {
			p.MarkTalkspurt()
		}
		encodeInto(t, enc, buf, 100)
		pkt, err := p.Push(buf)
		if err != nil {
			t.Fatalf("Push() error = %v", err)
		}
		markers = append(markers, pkt.Marker)
	}

	want := []bool{true, false, true, false}
	for i := range want {
		if markers[i] != want[i] {
			t.Errorf("packet %d Marker = %v, want %v", i, markers[i], want[i])
		}
	}
}

func TestPacketizer_Flush(t *testing.T) {
	t.Parallel()

	enc, err := coder.NewNBEncoder(enginetest.New())
	if err != nil {
		t.Fatalf("NewNBEncoder() error = %v", err)
	}
	defer enc.Close()

	p := NewPacketizer(engine.NarrowBand, 97, 1, FramesPerPacket(3), WithTimestamp(0))
	buf := bits.New()

	if pkt, err := p.Flush(buf); pkt != nil || err != nil {
		t.Errorf("Flush() with nothing pending = %v, %v", pkt, err)
	}

	encodeInto(t, enc, buf, 0)
	_, _ = p.Push(buf)

	pkt, err := p.Flush(buf)
	if err != nil || pkt == nil {
		t.Fatalf("Flush() = %v, %v", pkt, err)
	}
	if p.Pending() != 0 {
		t.Errorf("Pending() = %d after Flush, want 0", p.Pending())
	}

	encodeInto(t, enc, buf, 0)
	_, _ = p.Push(buf)
	next, _ := p.Flush(buf)
	if next.Timestamp != 160 {
		t.Errorf("Timestamp after a one-frame flush = %d, want 160", next.Timestamp)
	}
}

func TestPacketizer_EmptyBuffer(t *testing.T) {
	t.Parallel()

	p := NewPacketizer(engine.WideBand, 97, 1)
	if _, err := p.Push(bits.New()); !errors.Is(err, ErrEmptyPayload) {
		t.Errorf("Push() on an empty buffer error = %v, want ErrEmptyPayload", err)
	}
	if p.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", p.Pending())
	}
}

func TestFramesPerPacket_Panics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("FramesPerPacket(0) did not panic")
		}
	}()
	FramesPerPacket(0)
}
