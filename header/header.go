// SPDX-License-Identifier: EPL-2.0

package header

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/ik5/speex/engine"
)

const (
	// Magic opens every header packet.
	Magic = "Speex   "

	// Size is the length of a header packet in bytes.
	Size = 80

	// Version is the library version written into new headers.
	Version = "1.2.1"

	// VersionID is the header format version.
	VersionID = 1

	versionLen = 20
)

// Header describes a coded stream. It is an immutable value: the With
// methods return modified copies.
type Header struct {
	version          string
	versionID        int32
	rate             int32
	mode             engine.ModeID
	bitstreamVersion int32
	channels         int32
	bitrate          int32
	frameSize        int32
	vbr              bool
	framesPerPacket  int32
	extraHeaders     int32
}

// New returns the header for a stream of mode at rate Hz with the given
// number of channels. It panics on an undefined mode or a rate that is not
// positive. Channels are clamped to 1..2.
func New(rate, channels int, mode engine.ModeID) Header {
	desc, ok := engine.Lookup(mode)
	if !ok {
		panic("header: undefined " + mode.String())
	}
	if rate <= 0 {
		panic(fmt.Sprintf("header: sample rate %d is not positive", rate))
	}

	return Header{
		version:          Version,
		versionID:        VersionID,
		rate:             int32(rate),
		mode:             mode,
		bitstreamVersion: engine.BitstreamVersion,
		channels:         clampChannels(int32(channels)),
		bitrate:          -1,
		frameSize:        int32(desc.FrameSize),
		framesPerPacket:  1,
	}
}

func (h Header) Version() string       { return h.version }
func (h Header) VersionID() int        { return int(h.versionID) }
func (h Header) SampleRate() int       { return int(h.rate) }
func (h Header) Mode() engine.ModeID   { return h.mode }
func (h Header) BitstreamVersion() int { return int(h.bitstreamVersion) }
func (h Header) Channels() int         { return int(h.channels) }
func (h Header) FrameSize() int        { return int(h.frameSize) }
func (h Header) VBR() bool             { return h.vbr }
func (h Header) FramesPerPacket() int  { return int(h.framesPerPacket) }
func (h Header) ExtraHeaders() int     { return int(h.extraHeaders) }

// Bitrate returns the nominal bitrate, or -1 when unknown.
func (h Header) Bitrate() int { return int(h.bitrate) }

func (h Header) WithVBR(vbr bool) Header {
	h.vbr = vbr
	return h
}

// WithBitrate sets the nominal bitrate. Use -1 for unknown.
func (h Header) WithBitrate(bps int) Header {
	h.bitrate = int32(bps)
	return h
}

func (h Header) WithFramesPerPacket(n int) Header {
	if n < 1 {
		panic("header: frames per packet can't be < 1")
	}
	h.framesPerPacket = int32(n)
	return h
}

// WithExtraHeaders sets the number of packets that follow the header
// before audio starts, e.g. comments.
func (h Header) WithExtraHeaders(n int) Header {
	if n < 0 {
		panic("header: extra headers can't be < 0")
	}
	h.extraHeaders = int32(n)
	return h
}

// wire is the packet layout. All integers are little-endian.
type wire struct {
	Magic            [8]byte
	Version          [versionLen]byte
	VersionID        int32
	HeaderSize       int32
	Rate             int32
	Mode             int32
	BitstreamVersion int32
	Channels         int32
	Bitrate          int32
	FrameSize        int32
	VBR              int32
	FramesPerPacket  int32
	ExtraHeaders     int32
	Reserved1        int32
	Reserved2        int32
}

// MarshalBinary encodes h as a header packet of Size bytes.
func (h Header) MarshalBinary() ([]byte, error) {
	w := wire{
		VersionID:        h.versionID,
		HeaderSize:       Size,
		Rate:             h.rate,
		Mode:             int32(h.mode),
		BitstreamVersion: h.bitstreamVersion,
		Channels:         h.channels,
		Bitrate:          h.bitrate,
		FrameSize:        h.frameSize,
		FramesPerPacket:  h.framesPerPacket,
		ExtraHeaders:     h.extraHeaders,
	}
	copy(w.Magic[:], Magic)
	copy(w.Version[:], h.version)
	if h.vbr {
		w.VBR = 1
	}

	buf := bytes.NewBuffer(make([]byte, 0, Size))
	if err := binary.Write(buf, binary.LittleEndian, &w); err != nil {
		return nil, fmt.Errorf("encode header: %w", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes a header packet into h.
func (h *Header) UnmarshalBinary(packet []byte) error {
	parsed, err := Parse(packet)
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// Parse decodes a header packet. Bytes past Size are ignored.
func Parse(packet []byte) (Header, error) {
	if len(packet) < len(Magic) || string(packet[:len(Magic)]) != Magic {
		return Header{}, ErrNotSpeexHeader
	}
	if len(packet) < Size {
		return Header{}, fmt.Errorf("%w: %d bytes", ErrShortHeader, len(packet))
	}

	var w wire
	if err := binary.Read(bytes.NewReader(packet[:Size]), binary.LittleEndian, &w); err != nil {
		return Header{}, fmt.Errorf("decode header: %w", err)
	}

	mode := engine.ModeID(w.Mode)
	if !mode.Valid() {
		return Header{}, fmt.Errorf("%w: %d", ErrInvalidMode, w.Mode)
	}
	if w.Rate <= 0 {
		return Header{}, fmt.Errorf("%w: %d", ErrInvalidSampleRate, w.Rate)
	}

	return Header{
		version:          string(bytes.TrimRight(w.Version[:], "\x00")),
		versionID:        w.VersionID,
		rate:             w.Rate,
		mode:             mode,
		bitstreamVersion: w.BitstreamVersion,
		channels:         clampChannels(w.Channels),
		bitrate:          w.Bitrate,
		frameSize:        w.FrameSize,
		vbr:              w.VBR != 0,
		framesPerPacket:  w.FramesPerPacket,
		extraHeaders:     w.ExtraHeaders,
	}, nil
}

func clampChannels(n int32) int32 {
	return max(1, min(2, n))
}
