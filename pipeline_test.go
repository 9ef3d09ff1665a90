// SPDX-License-Identifier: EPL-2.0

package speex

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ik5/speex/coder"
	"github.com/ik5/speex/internal/audiotest"
	"github.com/ik5/speex/internal/enginetest"
)

func newNB(t *testing.T) (*coder.NBEncoder, *coder.NBDecoder) {
	t.Helper()

	eng := enginetest.New()
	enc, err := coder.NewNBEncoder(eng)
	if err != nil {
		t.Fatalf("NewNBEncoder() error = %v", err)
	}
	t.Cleanup(enc.Close)

	dec, err := coder.NewNBDecoder(eng)
	if err != nil {
		t.Fatalf("NewNBDecoder() error = %v", err)
	}
	t.Cleanup(dec.Close)

	return enc, dec
}

func TestEncodeDecode(t *testing.T) {
	t.Parallel()

	enc, dec := newNB(t)

	packets, err := Encode(context.Background(), enc, audiotest.Constant(8000, 1, 400, 0.25))
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if len(packets) != 3 {
		t.Fatalf("Encode() = %d packets, want 3", len(packets))
	}

	pcm, err := Decode(dec, packets)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(pcm) != 480 {
		t.Fatalf("Decode() = %d samples, want 480", len(pcm))
	}
	for i, v := range pcm {
		want := int16(8192)
		if i >= 400 {
			want = 0
		}
		if v != want {
			t.Fatalf("sample %d = %d, want %d", i, v, want)
		}
	}
}

func TestEncodeTo_FramesPerPacket(t *testing.T) {
	t.Parallel()

	enc, dec := newNB(t)

	var packets [][]byte
	n, err := EncodeTo(context.Background(), enc, audiotest.Silence(8000, 1, 800), 2, func(p []byte) error {
		packets = append(packets, p)
		return nil
	})
	if err != nil {
		t.Fatalf("EncodeTo() error = %v", err)
	}
	if n != 5 || len(packets) != 3 {
		t.Errorf("EncodeTo() = %d frames in %d packets, want 5 in 3", n, len(packets))
	}

	pcm, err := Decode(dec, packets)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(pcm) != 800 {
		t.Errorf("Decode() = %d samples, want 800", len(pcm))
	}
}

func TestEncode_PreparesSource(t *testing.T) {
	t.Parallel()

	enc, dec := newNB(t)

	// 0.1 s of 16 kHz stereo becomes 800 narrowband samples
	packets, err := Encode(context.Background(), enc, audiotest.Constant(16000, 2, 1600, 0.25))
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if len(packets) != 5 {
		t.Fatalf("Encode() = %d packets, want 5", len(packets))
	}

	pcm, err := Decode(dec, packets)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if pcm[0] != 8192 || pcm[799] != 8192 {
		t.Errorf("decoded = %d ... %d, want 8192", pcm[0], pcm[799])
	}
}

func TestEncodeTo_Errors(t *testing.T) {
	t.Parallel()

	enc, _ := newNB(t)
	emitted := 0
	discard := func([]byte) error { emitted++; return nil }

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := EncodeTo(ctx, enc, audiotest.Silence(8000, 1, 800), 1, discard); !errors.Is(err, context.Canceled) {
		t.Errorf("EncodeTo() with canceled context error = %v, want Canceled", err)
	}

	src := audiotest.Silence(8000, 1, 8000).FailAfter(400)
	n, err := EncodeTo(context.Background(), enc, src, 1, discard)
	if !errors.Is(err, audiotest.ErrRead) {
		t.Errorf("EncodeTo() error = %v, want ErrRead", err)
	}
	if n != 2 {
		t.Errorf("EncodeTo() = %d frames before the failure, want 2", n)
	}

	errSink := errors.New("sink full")
	_, err = EncodeTo(context.Background(), enc, audiotest.Silence(8000, 1, 800), 1, func([]byte) error { return errSink })
	if !errors.Is(err, errSink) {
		t.Errorf("EncodeTo() error = %v, want the emit error", err)
	}

	if emitted != 2 {
		t.Errorf("emit called %d times, want 2", emitted)
	}
}

func TestEncodeTo_PanicsOnZeroFramesPerPacket(t *testing.T) {
	t.Parallel()

	enc, _ := newNB(t)
	defer func() {
		if recover() == nil {
			t.Error("EncodeTo(0 frames per packet) did not panic")
		}
	}()
	_, _ = EncodeTo(context.Background(), enc, audiotest.Silence(8000, 1, 1), 0, nil)
}

func TestDecode_Corrupt(t *testing.T) {
	t.Parallel()

	enc, dec := newNB(t)
	packets, err := Encode(context.Background(), enc, audiotest.Silence(8000, 1, 160))
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	packets = append(packets, []byte{0x80, 0, 0})
	if _, err := Decode(dec, packets); !errors.Is(err, coder.ErrCorruptStream) {
		t.Errorf("Decode() error = %v, want ErrCorruptStream", err)
	}
}

func TestDecodeToIntBuffer(t *testing.T) {
	t.Parallel()

	enc, dec := newNB(t)
	packets, err := Encode(context.Background(), enc, audiotest.Constant(8000, 1, 320, -0.5))
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	buf, err := DecodeToIntBuffer(dec, packets)
	if err != nil {
		t.Fatalf("DecodeToIntBuffer() error = %v", err)
	}
	if buf.Format.SampleRate != 8000 || buf.NumFrames() != 320 {
		t.Errorf("DecodeToIntBuffer() = %d Hz, %d frames", buf.Format.SampleRate, buf.NumFrames())
	}
	if buf.Data[0] != -16384 {
		t.Errorf("Data[0] = %d, want -16384", buf.Data[0])
	}
}

func TestResampleToMono16(t *testing.T) {
	t.Parallel()

	pcm, err := ResampleToMono16(audiotest.Sine(44100, 2, 44100, 440), 8000)
	if err != nil {
		t.Fatalf("ResampleToMono16() error = %v", err)
	}
	if len(pcm) != 8000 {
		t.Errorf("ResampleToMono16() = %d samples, want 8000", len(pcm))
	}

	_, err = ResampleToMono16(audiotest.Silence(8000, 1, 10000).FailAfter(5000), 8000)
	if !errors.Is(err, audiotest.ErrRead) {
		t.Errorf("ResampleToMono16() error = %v, want ErrRead", err)
	}
}

// not parallel: swaps the package logger
func TestEncodeTo_Logs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	coder.SetLogger(zap.New(core))
	defer coder.SetLogger(nil)

	enc, _ := newNB(t)
	if _, err := Encode(context.Background(), enc, audiotest.Silence(8000, 1, 480)); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	entries := logs.FilterMessage("source encoded").All()
	if len(entries) != 1 {
		t.Fatalf("got %d log entries, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["frames"] != int64(3) || fields["packets"] != int64(3) || fields["mode"] != "narrowband" {
		t.Errorf("log fields = %v", fields)
	}
}
