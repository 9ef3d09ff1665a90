// SPDX-License-Identifier: EPL-2.0

// Package audiotest generates PCM sources for tests. Sources satisfy
// audio.Source without importing it.
package audiotest

import (
	"errors"
	"io"
	"math"
)

// ErrRead is returned by a source built with FailAfter.
var ErrRead = errors.New("audiotest: read failed")

// Waveform returns the normalized sample of channel ch at frame index i.
type Waveform func(i, ch int) float32

// Source plays a waveform for a fixed number of frames.
type Source struct {
	rate     int
	channels int
	frames   int
	pos      int
	wave     Waveform

	failAt int
	closed bool
}

// New returns a source of frames frames, each holding one sample per channel.
func New(rate, channels, frames int, wave Waveform) *Source {
	return &Source{
		rate:     rate,
		channels: channels,
		frames:   frames,
		wave:     wave,
		failAt:   -1,
	}
}

// Silence returns a source of zero samples.
func Silence(rate, channels, frames int) *Source {
	return New(rate, channels, frames, func(int, int) float32 { return 0 })
}

// Constant returns a source holding v on every channel.
func Constant(rate, channels, frames int, v float32) *Source {
	return New(rate, channels, frames, func(int, int) float32 { return v })
}

// Sine returns a full-scale sine of freq Hz on every channel.
func Sine(rate, channels, frames int, freq float64) *Source {
	return New(rate, channels, frames, func(i, _ int) float32 {
		return float32(math.Sin(2 * math.Pi * freq * float64(i) / float64(rate)))
	})
}

// Ramp returns a source whose sample i is i*step, wrapped into [-1, 1).
func Ramp(rate, frames int, step float32) *Source {
	return New(rate, 1, frames, func(i, _ int) float32 {
		v := math.Mod(float64(float32(i)*step)+1, 2) - 1
		return float32(v)
	})
}

// FailAfter makes reads fail with ErrRead once frame n has been produced.
func (s *Source) FailAfter(n int) *Source {
	s.failAt = n
	return s
}

func (s *Source) SampleRate() int { return s.rate }
func (s *Source) Channels() int   { return s.channels }

// Closed reports whether Close was called.
func (s *Source) Closed() bool { return s.closed }

func (s *Source) Close() error {
	s.closed = true
	return nil
}

// Rewind starts the waveform over.
func (s *Source) Rewind() { s.pos = 0 }

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if s.failAt >= 0 && s.pos >= s.failAt {
		return 0, ErrRead
	}
	if s.pos >= s.frames {
		return 0, io.EOF
	}

	n := min(len(dst)/s.channels, s.frames-s.pos)
	if s.failAt >= 0 {
		n = min(n, s.failAt-s.pos)
	}
	for f := range n {
		for ch := range s.channels {
			dst[f*s.channels+ch] = s.wave(s.pos+f, ch)
		}
	}
	s.pos += n

	if s.pos >= s.frames {
		return n * s.channels, io.EOF
	}
	return n * s.channels, nil
}
