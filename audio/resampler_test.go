// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ik5/speex/internal/audiotest"
)

func readAll(t *testing.T, src Source, chunk int) []float32 {
	t.Helper()

	buf := make([]float32, chunk)
	var out []float32
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if errors.Is(err, io.EOF) {
			return out
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
}

func TestResampler_Metadata(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.Silence(44100, 2, 1000), 8000)
	if r.SampleRate() != 8000 {
		t.Errorf("SampleRate() = %d, want 8000", r.SampleRate())
	}
	if r.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", r.Channels())
	}
}

func TestResampler_Length(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		from, to int
		frames   int
		want     int
	}{
		{"same rate", 8000, 8000, 1000, 1000},
		{"44.1k to 8k", 44100, 8000, 44100, 8000},
		{"44.1k to 16k", 44100, 16000, 44100, 16000},
		{"8k to 16k", 8000, 16000, 8000, 16000},
		{"8k to 11.025k", 8000, 11025, 100, 138},
		{"48k to 32k", 48000, 32000, 4801, 3201},
		{"single frame", 16000, 8000, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := NewResampler(audiotest.Sine(tt.from, 1, tt.frames, 440), tt.to)
			if got := len(readAll(t, r, 1000)); got != tt.want {
				t.Errorf("resampled length = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestResampler_SameRateIsExact(t *testing.T) {
	t.Parallel()

	src := audiotest.Ramp(8000, 500, 0.003)
	got := readAll(t, NewResampler(src, 8000), 64)

	src.Rewind()
	want := readAll(t, src, 64)

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestResampler_ConstantStaysConstant(t *testing.T) {
	t.Parallel()

	for _, to := range []int{8000, 16000, 32000} {
		got := readAll(t, NewResampler(audiotest.Constant(22050, 2, 2205, 0.5), to), 512)
		for i, v := range got {
			if math.Abs(float64(v-0.5)) > 1e-5 {
				t.Fatalf("to %d: sample %d = %v, want 0.5", to, i, v)
			}
		}
	}
}

func TestResampler_Upsample(t *testing.T) {
	t.Parallel()

	// even output samples land on source samples
	src := audiotest.Ramp(8000, 50, 0.01)
	got := readAll(t, NewResampler(src, 16000), 32)

	src.Rewind()
	want := readAll(t, src, 32)

	for i := range want {
		if math.Abs(float64(got[2*i]-want[i])) > 1e-6 {
			t.Errorf("sample %d = %v, want %v", 2*i, got[2*i], want[i])
		}
	}
}

func TestResampler_Errors(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.Silence(8000, 2, 100), 16000)
	if _, err := r.ReadSamples(make([]float32, 3)); !errors.Is(err, ErrInvalidDstSize) {
		t.Errorf("ReadSamples(3) error = %v, want ErrInvalidDstSize", err)
	}

	failing := NewResampler(audiotest.Sine(8000, 1, 8000, 440).FailAfter(300), 16000)
	buf := make([]float32, 128)
	var err error
	for err == nil {
		_, err = failing.ReadSamples(buf)
	}
	if !errors.Is(err, audiotest.ErrRead) {
		t.Errorf("ReadSamples() error = %v, want ErrRead", err)
	}

	empty := NewResampler(audiotest.Silence(8000, 1, 0), 16000)
	if n, err := empty.ReadSamples(buf); n != 0 || !errors.Is(err, io.EOF) {
		t.Errorf("ReadSamples() on empty source = %d, %v, want 0, EOF", n, err)
	}
}

func TestNewResampler_Panics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("NewResampler(0) did not panic")
		}
	}()
	NewResampler(audiotest.Silence(8000, 1, 1), 0)
}

func TestResampler_Close(t *testing.T) {
	t.Parallel()

	src := audiotest.Silence(8000, 1, 1)
	if err := NewResampler(src, 16000).Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !src.Closed() {
		t.Error("Close() did not close the source")
	}
}

func BenchmarkResampler(b *testing.B) {
	buf := make([]float32, 4096)

	b.ReportAllocs()
	for b.Loop() {
		r := NewResampler(audiotest.Sine(44100, 2, 44100, 440), 16000)
		for {
			if _, err := r.ReadSamples(buf); err != nil {
				break
			}
		}
	}
}
