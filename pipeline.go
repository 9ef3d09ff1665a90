// SPDX-License-Identifier: EPL-2.0

package speex

import (
	"context"
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"go.uber.org/zap"

	"github.com/ik5/speex/audio"
	"github.com/ik5/speex/bits"
	"github.com/ik5/speex/coder"
	"github.com/ik5/speex/engine"
	"github.com/ik5/speex/utils"
)

// FrameEncoder is the part of a coder encoder the pipelines drive. Every
// encoder in package coder satisfies it.
type FrameEncoder interface {
	Descriptor() *engine.Descriptor
	EncodeInt(frame []int16, out *bits.Buffer) error
}

// FrameDecoder is the decoding counterpart of FrameEncoder.
type FrameDecoder interface {
	Descriptor() *engine.Descriptor
	DecodeInt(in *bits.Buffer, out []int16) error
}

// EncodeTo encodes src with enc. src is resampled and mixed down to fit the
// encoder first. Every framesPerPacket frames are closed with a terminator
// and passed to emit; the last packet may hold fewer. emit must not keep
// the slice past the call unless it copies it.
//
// It returns the number of frames encoded. src is not closed.
func EncodeTo(ctx context.Context, enc FrameEncoder, src audio.Source, framesPerPacket int, emit func(packet []byte) error) (int, error) {
	if framesPerPacket < 1 {
		panic("frames per packet must be at least 1")
	}

	desc := enc.Descriptor()
	frames := audio.NewFrameReader(audio.Prepare(src, desc.SampleRate), desc.FrameSize)
	frame := make([]int16, desc.FrameSize)
	buf := bits.New()
	defer buf.Close()

	pending, packets := 0, 0
	flush := func() error {
		buf.InsertTerminator()
		err := emit(buf.Bytes())
		buf.Reset()
		pending = 0
		packets++
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return frames.Frames(), err
		}

		err := frames.ReadIntFrame(frame)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return frames.Frames(), err
		}

		if err := enc.EncodeInt(frame, buf); err != nil {
			return frames.Frames(), err
		}
		pending++

		if pending == framesPerPacket {
			if err := flush(); err != nil {
				return frames.Frames(), fmt.Errorf("emit packet %d: %w", packets, err)
			}
		}
	}

	if pending > 0 {
		if err := flush(); err != nil {
			return frames.Frames(), fmt.Errorf("emit packet %d: %w", packets, err)
		}
	}

	coder.Logger().Debug("source encoded",
		zap.Stringer("mode", desc.ID),
		zap.Int("frames", frames.Frames()),
		zap.Int("packets", packets),
	)

	return frames.Frames(), nil
}

// Encode encodes src one frame per packet and collects the packets.
func Encode(ctx context.Context, enc FrameEncoder, src audio.Source) ([][]byte, error) {
	var packets [][]byte
	_, err := EncodeTo(ctx, enc, src, 1, func(p []byte) error {
		packets = append(packets, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return packets, nil
}

// Decode decodes every frame of every packet. A packet ends where the
// decoder reports coder.ErrEndOfStream.
func Decode(dec FrameDecoder, packets [][]byte) ([]int16, error) {
	desc := dec.Descriptor()
	buf := bits.New()
	defer buf.Close()

	var pcm []int16
	frame := make([]int16, desc.FrameSize)

	for i, p := range packets {
		if err := buf.ReadFrom(p); err != nil {
			return nil, fmt.Errorf("load packet %d: %w", i, err)
		}

		for {
			err := dec.DecodeInt(buf, frame)
			if errors.Is(err, coder.ErrEndOfStream) {
				break
			}
			if err != nil {
				return nil, fmt.Errorf("decode packet %d: %w", i, err)
			}
			pcm = append(pcm, frame...)
		}
	}

	return pcm, nil
}

// DecodeToIntBuffer is Decode returning a go-audio buffer at the decoder's
// sampling rate.
func DecodeToIntBuffer(dec FrameDecoder, packets [][]byte) (*goaudio.IntBuffer, error) {
	pcm, err := Decode(dec, packets)
	if err != nil {
		return nil, err
	}
	return audio.ToIntBuffer(pcm, dec.Descriptor().SampleRate), nil
}

// ResampleToMono16 reads src to the end, resampled to targetRate and mixed
// down to mono, as 16-bit samples.
func ResampleToMono16(src audio.Source, targetRate int) ([]int16, error) {
	mono := audio.Prepare(src, targetRate)

	var pcm []int16
	buf := make([]float32, 4096)
	for {
		n, err := mono.ReadSamples(buf)
		start := len(pcm)
		pcm = append(pcm, make([]int16, n)...)
		utils.Float32sToInt16s(pcm[start:], buf[:n])

		if errors.Is(err, io.EOF) {
			return pcm, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read %d Hz mono: %w", targetRate, err)
		}
	}
}
