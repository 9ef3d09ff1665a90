// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/speex/utils"
)

// FrameReader cuts a mono Source into fixed-size coder frames. The last
// frame is padded with silence.
type FrameReader struct {
	src  Source
	size int
	buf  []float32
	done bool

	frames int
}

// NewFrameReader returns a reader of frameSize-sample frames. It panics
// when src is not mono or frameSize is not positive.
func NewFrameReader(src Source, frameSize int) *FrameReader {
	if src.Channels() != 1 {
		panic(fmt.Sprintf("frame reader needs a mono source, got %d channels", src.Channels()))
	}
	if frameSize <= 0 {
		panic("frame size must be positive")
	}

	return &FrameReader{
		src:  src,
		size: frameSize,
		buf:  make([]float32, frameSize),
	}
}

// FrameSize returns the number of samples per frame.
func (r *FrameReader) FrameSize() int { return r.size }

// Frames returns the number of frames read so far.
func (r *FrameReader) Frames() int { return r.frames }

// fill reads up to one frame of normalized samples into r.buf and returns
// how many were read before the source ended.
func (r *FrameReader) fill() (int, error) {
	got := 0
	for got < r.size && !r.done {
		n, err := r.src.ReadSamples(r.buf[got:])
		got += n
		if errors.Is(err, io.EOF) {
			r.done = true
			break
		}
		if err != nil {
			return got, fmt.Errorf("read frame %d: %w", r.frames, err)
		}
		if n == 0 {
			return got, fmt.Errorf("read frame %d: %w", r.frames, io.ErrNoProgress)
		}
	}

	if got == 0 {
		return 0, io.EOF
	}
	clear(r.buf[got:])
	r.frames++

	return got, nil
}

// ReadFrame fills frame with the next frame in 16-bit scale, the float
// domain coders take. It returns io.EOF when no samples are left.
func (r *FrameReader) ReadFrame(frame []float32) error {
	if len(frame) != r.size {
		return fmt.Errorf("%w: %d, want %d", ErrFrameSize, len(frame), r.size)
	}
	if _, err := r.fill(); err != nil {
		return err
	}
	for i, v := range r.buf {
		frame[i] = v * utils.PCMScale
	}
	return nil
}

// ReadIntFrame is ReadFrame for 16-bit integer samples.
func (r *FrameReader) ReadIntFrame(frame []int16) error {
	if len(frame) != r.size {
		return fmt.Errorf("%w: %d, want %d", ErrFrameSize, len(frame), r.size)
	}
	if _, err := r.fill(); err != nil {
		return err
	}
	utils.Float32sToInt16s(frame, r.buf)
	return nil
}
