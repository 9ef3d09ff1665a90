// SPDX-License-Identifier: EPL-2.0

package enginetest

import (
	"math"

	"github.com/ik5/speex/bits"
	"github.com/ik5/speex/engine"
)

const (
	terminatorSubmode = 15
	sampleBits        = 8
)

// Encoder is the reference encoder state.
type Encoder struct {
	*state
}

var _ engine.EncoderState = (*Encoder)(nil)

func (e *Encoder) Encode(frame []float32, out *bits.Buffer) error {
	q := make([]int8, len(frame))
	for i, v := range frame {
		q[i] = quantize(v)
	}
	return e.write(q, out)
}

func (e *Encoder) EncodeInt(frame []int16, out *bits.Buffer) error {
	q := make([]int8, len(frame))
	for i, v := range frame {
		q[i] = quantize(float32(v))
	}
	return e.write(q, out)
}

func (e *Encoder) headerBits() int {
	if e.desc.HasHighLayer() {
		return 9
	}
	return 5
}

func (e *Encoder) write(q []int8, out *bits.Buffer) error {
	e.mustBeLive()
	e.eng.encodes.Add(1)

	need := e.headerBits() + sampleBits*len(q)
	if !out.Owned() && out.Cap()*8-out.Len() < need {
		return bits.ErrCapacityExceeded
	}

	if err := out.Pack(0, 1); err != nil {
		return err
	}
	if err := out.Pack(uint32(e.low), 4); err != nil {
		return err
	}
	if e.desc.HasHighLayer() {
		if err := out.Pack(1, 1); err != nil {
			return err
		}
		if err := out.Pack(uint32(e.high), 3); err != nil {
			return err
		}
	}
	for _, v := range q {
		if err := out.Pack(uint32(uint8(v)), sampleBits); err != nil {
			return err
		}
	}

	e.relQuality = float32(e.low)
	return nil
}

// Decoder is the reference decoder state.
type Decoder struct {
	*state

	scratch []int8
}

var _ engine.DecoderState = (*Decoder)(nil)

func (d *Decoder) Decode(in *bits.Buffer, out []float32) engine.Status {
	q, st := d.read(in)
	if st != engine.StatusOK {
		return st
	}
	for i := range min(len(out), len(q)) {
		out[i] = float32(int32(q[i]) << sampleBits)
	}
	return engine.StatusOK
}

func (d *Decoder) DecodeInt(in *bits.Buffer, out []int16) engine.Status {
	q, st := d.read(in)
	if st != engine.StatusOK {
		return st
	}
	for i := range min(len(out), len(q)) {
		out[i] = int16(q[i]) << sampleBits
	}
	return engine.StatusOK
}

func (d *Decoder) read(in *bits.Buffer) ([]int8, engine.Status) {
	d.mustBeLive()
	d.eng.decodes.Add(1)

	if hook := d.eng.DecodeHook; hook != nil {
		if st, ok := hook(); ok {
			return nil, st
		}
	}

	if in.Remaining() < 5 {
		return nil, engine.StatusEndOfStream
	}

	flag, _ := in.UnpackUnsigned(1)
	low, _ := in.UnpackUnsigned(4)
	if low == terminatorSubmode {
		return nil, engine.StatusEndOfStream
	}
	if _, ok := d.desc.LowSubmode(int32(low)); flag != 0 || !ok {
		return nil, engine.StatusCorruptStream
	}

	if d.desc.HasHighLayer() {
		if in.Remaining() < 4 {
			return nil, engine.StatusCorruptStream
		}
		layer, _ := in.UnpackUnsigned(1)
		high, _ := in.UnpackUnsigned(3)
		if _, ok := d.desc.HighSubmode(int32(high)); layer != 1 || !ok {
			return nil, engine.StatusCorruptStream
		}
		d.high = int32(high)
	}
	d.low = int32(low)

	if in.Remaining() < uint(sampleBits*d.desc.FrameSize) {
		return nil, engine.StatusCorruptStream
	}

	if d.scratch == nil {
		d.scratch = make([]int8, d.desc.FrameSize)
	}
	var energy int64
	for i := range d.scratch {
		v, _ := in.UnpackSigned(sampleBits)
		d.scratch[i] = int8(v)
		energy += int64(abs(v))
	}
	d.activity = int32(min(100, energy*100/int64(128*len(d.scratch))))

	return d.scratch, engine.StatusOK
}

// quantize maps a sample in 16-bit scale to a signed byte.
func quantize(v float32) int8 {
	r := math.Round(float64(v) / (1 << sampleBits))
	return int8(max(math.MinInt8, min(math.MaxInt8, r)))
}

func abs(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
