// SPDX-License-Identifier: EPL-2.0

package coder

import (
	"errors"
	"testing"

	"github.com/ik5/speex/bits"
	"github.com/ik5/speex/engine"
	"github.com/ik5/speex/internal/enginetest"
)

// encodeFrames encodes n ramp frames with a fresh encoder of mode M and
// terminates the stream.
func encodeFrames[M Mode](t *testing.T, eng engine.Engine, n int) (*bits.Buffer, []int16) {
	t.Helper()

	enc, err := NewEncoder[M](eng)
	if err != nil {
		t.Fatalf("NewEncoder() error = %v", err)
	}
	defer enc.Close()

	frame := make([]int16, enc.Descriptor().FrameSize)
	for i := range frame {
		frame[i] = int16((i%64 - 32) * 256)
	}

	buf := bits.New()
	for range n {
		if err := enc.EncodeInt(frame, buf); err != nil {
			t.Fatalf("EncodeInt() error = %v", err)
		}
	}
	buf.InsertTerminator()

	return buf, frame
}

func TestDecoder_RoundTrip(t *testing.T) {
	t.Parallel()

	eng := enginetest.New()
	buf, frame := encodeFrames[WideBand](t, eng, 2)

	dec, err := NewWBDecoder(eng)
	if err != nil {
		t.Fatalf("NewWBDecoder() error = %v", err)
	}
	defer dec.Close()

	for i := range 2 {
		out, err := dec.DecodeIntFrame(buf)
		if err != nil {
			t.Fatalf("frame %d: DecodeIntFrame() error = %v", i, err)
		}
		for j := range frame {
			if out[j] != frame[j] {
				t.Fatalf("frame %d: out[%d] = %d, want %d", i, j, out[j], frame[j])
			}
		}
	}

	if _, err := dec.DecodeIntFrame(buf); !errors.Is(err, ErrEndOfStream) {
		t.Errorf("DecodeIntFrame() past the last frame error = %v, want ErrEndOfStream", err)
	}
}

func TestDecoder_FloatOutput(t *testing.T) {
	t.Parallel()

	eng := enginetest.New()
	buf, frame := encodeFrames[NarrowBand](t, eng, 1)

	dec, err := NewNBDecoder(eng)
	if err != nil {
		t.Fatalf("NewNBDecoder() error = %v", err)
	}
	defer dec.Close()

	// larger than a frame: only the first 160 samples are written
	out := make([]float32, 200)
	out[199] = -1
	if err := dec.Decode(buf, out); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if out[10] != float32(frame[10]) {
		t.Errorf("out[10] = %v, want %v", out[10], frame[10])
	}
	if out[199] != -1 {
		t.Error("Decode() wrote past the frame")
	}
}

func TestDecoder_BufferTooSmall(t *testing.T) {
	t.Parallel()

	eng := enginetest.New()
	dec, err := NewNBDecoder(eng)
	if err != nil {
		t.Fatalf("NewNBDecoder() error = %v", err)
	}
	defer dec.Close()

	if err := dec.Decode(bits.New(), make([]float32, 100)); !errors.Is(err, ErrBufferTooSmall) {
		t.Errorf("Decode() error = %v, want ErrBufferTooSmall", err)
	}
	if err := dec.DecodeInt(bits.New(), make([]int16, 159)); !errors.Is(err, ErrBufferTooSmall) {
		t.Errorf("DecodeInt() error = %v, want ErrBufferTooSmall", err)
	}
	if eng.Decodes() != 0 {
		t.Errorf("engine saw %d decodes, want 0", eng.Decodes())
	}
}

func TestDecoder_Statuses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		st   engine.Status
		want error
	}{
		{"end of stream", engine.StatusEndOfStream, ErrEndOfStream},
		{"corrupt", engine.StatusCorruptStream, ErrCorruptStream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			eng := enginetest.New()
			eng.DecodeHook = func() (engine.Status, bool) { return tt.st, true }

			dec, err := NewUWBDecoder(eng)
			if err != nil {
				t.Fatalf("NewUWBDecoder() error = %v", err)
			}
			defer dec.Close()

			if _, err := dec.DecodeFrame(bits.New()); !errors.Is(err, tt.want) {
				t.Errorf("DecodeFrame() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDecoder_UndefinedStatusPanics(t *testing.T) {
	t.Parallel()

	eng := enginetest.New()
	eng.DecodeHook = func() (engine.Status, bool) { return -9, true }

	dec, err := NewNBDecoder(eng)
	if err != nil {
		t.Fatalf("NewNBDecoder() error = %v", err)
	}
	defer dec.Close()

	defer func() {
		v, ok := recover().(*ContractViolation)
		if !ok || v.Op != "decode" || v.Status != -9 {
			t.Errorf("Decode() panic = %v, want decode contract violation", v)
		}
	}()
	_ = dec.Decode(bits.New(), make([]float32, 160))
}

func TestDecoder_Enhancement(t *testing.T) {
	t.Parallel()

	dec, err := NewWBDecoder(enginetest.New())
	if err != nil {
		t.Fatalf("NewWBDecoder() error = %v", err)
	}
	defer dec.Close()

	if on, _ := dec.Enhancement(); !on {
		t.Error("Enhancement() = false, want true by default")
	}
	if err := dec.SetEnhancement(false); err != nil {
		t.Fatalf("SetEnhancement() error = %v", err)
	}
	if on, _ := dec.Enhancement(); on {
		t.Error("Enhancement() = true after SetEnhancement(false)")
	}

	for _, s := range WBSubmodes {
		if err := dec.SetHighSubmode(s); err != nil {
			t.Fatalf("SetHighSubmode(%v) error = %v", s, err)
		}
		if got, _ := dec.HighSubmode(); got != s {
			t.Errorf("HighSubmode() = %v, want %v", got, s)
		}
	}
}

func TestDecoder_CloseOnce(t *testing.T) {
	t.Parallel()

	eng := enginetest.New()
	dec, err := NewDecoder[UltraWideBand](eng)
	if err != nil {
		t.Fatalf("NewDecoder() error = %v", err)
	}

	dec.Close()
	dec.Close()

	if eng.Destroyed() != 1 {
		t.Errorf("Destroyed() = %d, want 1", eng.Destroyed())
	}

	defer func() {
		if r := recover(); r != ErrClosed {
			t.Errorf("Decode() after Close panicked with %v, want ErrClosed", r)
		}
	}()
	_ = dec.Decode(bits.New(), make([]float32, 640))
}
