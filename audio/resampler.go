// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/speex/utils"
)

// readAhead is the number of source frames pulled per read.
const readAhead = 256

// Resampler converts src to another sample rate with Catmull-Rom
// interpolation. Channel count is kept. When downsampling, a one-pole
// low-pass runs over the input first.
//
// Output frame k sits at source position k*srcRate/dstRate, computed in
// integers, so n source frames always give ceil(n*dstRate/srcRate) output
// frames.
type Resampler struct {
	src      Source
	channels int
	srcRate  int
	dstRate  int

	// hist holds source frames t-1, t, t+1 and t+2 around the output
	// position. real marks frames read from src rather than repeated.
	hist [4][]float32
	real [4]bool
	rem  int // output position within frame t, in 1/dstRate units

	in      []float32
	inPos   int
	inLen   int
	srcDone bool
	started bool

	lowpass bool
	primed  bool
	alpha   float32
	state   []float32
}

// NewResampler returns src resampled to dstRate. It panics when dstRate is
// not positive.
func NewResampler(src Source, dstRate int) *Resampler {
	if dstRate <= 0 {
		panic("resampler rate must be positive")
	}

	ch := src.Channels()
	r := &Resampler{
		src:      src,
		channels: ch,
		srcRate:  src.SampleRate(),
		dstRate:  dstRate,
		in:       make([]float32, readAhead*ch),
		state:    make([]float32, ch),
	}
	for i := range r.hist {
		r.hist[i] = make([]float32, ch)
	}
	if r.srcRate > dstRate {
		r.lowpass = true
		r.alpha = float32(dstRate) / float32(r.srcRate)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("close resampler source: %w", err)
	}
	return nil
}

// next copies the next source frame into dst. It returns false once the
// source is exhausted.
func (r *Resampler) next(dst []float32) (bool, error) {
	for r.inPos >= r.inLen {
		if r.srcDone {
			return false, nil
		}

		n, err := r.src.ReadSamples(r.in)
		r.inPos, r.inLen = 0, n-n%r.channels
		if errors.Is(err, io.EOF) {
			r.srcDone = true
		} else if err != nil {
			return false, fmt.Errorf("resample: %w", err)
		}
	}

	copy(dst, r.in[r.inPos:r.inPos+r.channels])
	r.inPos += r.channels

	if r.lowpass {
		if !r.primed {
			copy(r.state, dst)
			r.primed = true
		}
		for c, v := range dst {
			r.state[c] += r.alpha * (v - r.state[c])
			dst[c] = r.state[c]
		}
	}

	return true, nil
}

// load fills slot i with the next source frame, repeating slot i-1 when
// the source is exhausted.
func (r *Resampler) load(i int) error {
	ok, err := r.next(r.hist[i])
	if err != nil {
		return err
	}
	r.real[i] = ok
	if !ok {
		copy(r.hist[i], r.hist[i-1])
	}
	return nil
}

func (r *Resampler) start() error {
	r.started = true

	ok, err := r.next(r.hist[1])
	if err != nil || !ok {
		return err
	}
	copy(r.hist[0], r.hist[1])
	r.real[1] = true

	if err := r.load(2); err != nil {
		return err
	}
	return r.load(3)
}

func (r *Resampler) advance() error {
	first := r.hist[0]
	copy(r.hist[:], r.hist[1:])
	r.hist[3] = first
	copy(r.real[:], r.real[1:])

	return r.load(3)
}

// ReadSamples produces frames at the target rate. len(dst) must be a
// multiple of Channels.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if !r.started {
		if err := r.start(); err != nil {
			return 0, err
		}
	}

	written := 0
	for written < len(dst) {
		if !r.real[1] {
			return written, io.EOF
		}

		x := float32(r.rem) / float32(r.dstRate)
		for c := range r.channels {
			dst[written+c] = utils.CubicInterpolate(r.hist[0][c], r.hist[1][c], r.hist[2][c], r.hist[3][c], x)
		}
		written += r.channels

		r.rem += r.srcRate
		for r.rem >= r.dstRate {
			r.rem -= r.dstRate
			if err := r.advance(); err != nil {
				return written, err
			}
		}
	}

	return written, nil
}
