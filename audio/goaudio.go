// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
)

// IntBufferSource plays a go-audio integer buffer as a Source.
type IntBufferSource struct {
	buf   *goaudio.IntBuffer
	scale float32
	pos   int
}

// FromIntBuffer wraps buf. A zero SourceBitDepth is taken as 16 bits.
func FromIntBuffer(buf *goaudio.IntBuffer) (*IntBufferSource, error) {
	if buf == nil || buf.Format == nil {
		return nil, ErrNoFormat
	}
	if f := buf.Format; f.NumChannels < 1 || f.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d channels at %d Hz", ErrInvalidFormat, f.NumChannels, f.SampleRate)
	}

	depth := buf.SourceBitDepth
	if depth == 0 {
		depth = 16
	}
	if depth < 8 || depth > 32 {
		return nil, fmt.Errorf("%w: %d", ErrBitDepth, depth)
	}

	return &IntBufferSource{
		buf:   buf,
		scale: 1 / float32(uint64(1)<<(depth-1)),
	}, nil
}

func (s *IntBufferSource) SampleRate() int { return s.buf.Format.SampleRate }
func (s *IntBufferSource) Channels() int   { return s.buf.Format.NumChannels }
func (s *IntBufferSource) Close() error    { return nil }

func (s *IntBufferSource) ReadSamples(dst []float32) (int, error) {
	ch := s.Channels()
	if len(dst)%ch != 0 {
		return 0, ErrInvalidDstSize
	}

	n := min(len(dst), len(s.buf.Data)-s.pos)
	for i, v := range s.buf.Data[s.pos : s.pos+n] {
		dst[i] = float32(v) * s.scale
	}
	s.pos += n

	if s.pos >= len(s.buf.Data) {
		return n, io.EOF
	}
	return n, nil
}

// ToIntBuffer wraps mono 16-bit samples at rate as a go-audio buffer.
func ToIntBuffer(samples []int16, rate int) *goaudio.IntBuffer {
	data := make([]int, len(samples))
	for i, v := range samples {
		data[i] = int(v)
	}

	return &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: rate},
		Data:           data,
		SourceBitDepth: 16,
	}
}
