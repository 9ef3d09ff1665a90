// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/ik5/speex/internal/audiotest"
)

func typeName(v any) string { return fmt.Sprintf("%T", v) }

func TestFrameReader(t *testing.T) {
	t.Parallel()

	r := NewFrameReader(audiotest.Constant(8000, 1, 400, 0.25), 160)
	frame := make([]int16, 160)

	for i, valid := range []int{160, 160, 80} {
		if err := r.ReadIntFrame(frame); err != nil {
			t.Fatalf("frame %d: ReadIntFrame() error = %v", i, err)
		}
		for j, v := range frame {
			want := int16(0)
			if j < valid {
				want = 8192
			}
			if v != want {
				t.Fatalf("frame %d sample %d = %d, want %d", i, j, v, want)
			}
		}
	}

	if err := r.ReadIntFrame(frame); !errors.Is(err, io.EOF) {
		t.Errorf("ReadIntFrame() after the end error = %v, want EOF", err)
	}
	if r.Frames() != 3 {
		t.Errorf("Frames() = %d, want 3", r.Frames())
	}
}

func TestFrameReader_Float(t *testing.T) {
	t.Parallel()

	r := NewFrameReader(audiotest.Constant(16000, 1, 320, -0.5), 320)
	frame := make([]float32, 320)
	if err := r.ReadFrame(frame); err != nil {
		t.Fatalf("ReadFrame() error = %v", err)
	}
	if frame[0] != -16384 || frame[319] != -16384 {
		t.Errorf("frame = %v ... %v, want -16384", frame[0], frame[319])
	}
	if err := r.ReadFrame(frame); !errors.Is(err, io.EOF) {
		t.Errorf("ReadFrame() error = %v, want EOF", err)
	}
}

func TestFrameReader_Errors(t *testing.T) {
	t.Parallel()

	r := NewFrameReader(audiotest.Silence(8000, 1, 1000).FailAfter(200), 160)
	if err := r.ReadFrame(make([]float32, 100)); !errors.Is(err, ErrFrameSize) {
		t.Errorf("ReadFrame(100) error = %v, want ErrFrameSize", err)
	}

	frame := make([]float32, 160)
	if err := r.ReadFrame(frame); err != nil {
		t.Fatalf("ReadFrame() error = %v", err)
	}
	if err := r.ReadFrame(frame); !errors.Is(err, audiotest.ErrRead) {
		t.Errorf("ReadFrame() error = %v, want ErrRead", err)
	}
}

func TestNewFrameReader_Panics(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  Source
		size int
	}{
		{"stereo", audiotest.Silence(8000, 2, 1), 160},
		{"zero size", audiotest.Silence(8000, 1, 1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			defer func() {
				if recover() == nil {
					t.Error("NewFrameReader() did not panic")
				}
			}()
			NewFrameReader(tt.src, tt.size)
		})
	}
}
