// SPDX-License-Identifier: EPL-2.0

package coder

import (
	"fmt"
	"runtime"

	"github.com/ik5/speex/bits"
	"github.com/ik5/speex/engine"
)

// Decoder owns one engine decoder state for mode M.
//
// A Decoder is not safe for concurrent use. Call Close when done; any other
// method called after Close panics.
type Decoder[M Mode] struct {
	handle

	state engine.DecoderState
}

// NewDecoder allocates a decoder state for mode M from eng.
func NewDecoder[M Mode](eng engine.Engine, opts ...Option) (*Decoder[M], error) {
	desc := descriptorOf[M]()
	o := buildOptions(opts)

	st, err := eng.NewDecoder(desc)
	if err != nil {
		return nil, fmt.Errorf("create %s decoder: %w", desc.Name, err)
	}

	d := &Decoder[M]{state: st}
	d.open("decoder", desc, st, o)
	d.cleanup = runtime.AddCleanup(d, destroyLeaked, leak{state: st, log: d.log})

	return d, nil
}

// Decode reads one frame from in and writes it to out as float samples in
// 16-bit scale. out must hold at least one frame; only the first frame's
// worth of samples is written. It returns ErrEndOfStream when in holds no
// further frame and ErrCorruptStream when the frame cannot be decoded.
func (d *Decoder[M]) Decode(in *bits.Buffer, out []float32) error {
	d.mustBeOpen()
	if err := d.checkOutput(len(out)); err != nil {
		return err
	}
	st := d.state.Decode(in, out[:d.desc.FrameSize])
	runtime.KeepAlive(d)

	return checkDecode(d.log, st)
}

// DecodeInt is Decode for 16-bit integer samples.
func (d *Decoder[M]) DecodeInt(in *bits.Buffer, out []int16) error {
	d.mustBeOpen()
	if err := d.checkOutput(len(out)); err != nil {
		return err
	}
	st := d.state.DecodeInt(in, out[:d.desc.FrameSize])
	runtime.KeepAlive(d)

	return checkDecode(d.log, st)
}

// DecodeFrame decodes one frame into a newly allocated slice.
func (d *Decoder[M]) DecodeFrame(in *bits.Buffer) ([]float32, error) {
	d.mustBeOpen()

	out := make([]float32, d.desc.FrameSize)
	if err := d.Decode(in, out); err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeIntFrame decodes one frame into a newly allocated slice.
func (d *Decoder[M]) DecodeIntFrame(in *bits.Buffer) ([]int16, error) {
	d.mustBeOpen()

	out := make([]int16, d.desc.FrameSize)
	if err := d.DecodeInt(in, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (d *Decoder[M]) checkOutput(n int) error {
	if n < d.desc.FrameSize {
		return fmt.Errorf("%w: have %d samples, need %d", ErrBufferTooSmall, n, d.desc.FrameSize)
	}
	return nil
}

// Enhancement reports whether perceptual enhancement is on.
func (d *Decoder[M]) Enhancement() (bool, error) { return d.getBool(engine.GetEnhancement) }

func (d *Decoder[M]) SetEnhancement(on bool) error { return d.setBool(engine.SetEnhancement, on) }

// Activity returns the engine's voice activity estimate for the last frame.
func (d *Decoder[M]) Activity() (int, error) {
	v, err := d.getInt(engine.GetActivity)
	return int(v), err
}

// Close destroys the engine state. Calling it again does nothing.
func (d *Decoder[M]) Close() {
	if d.close() {
		d.state = nil
	}
}

// NBDecoder is a narrowband decoder.
type NBDecoder struct {
	*Decoder[NarrowBand]
}

func NewNBDecoder(eng engine.Engine, opts ...Option) (*NBDecoder, error) {
	d, err := NewDecoder[NarrowBand](eng, opts...)
	if err != nil {
		return nil, err
	}
	return &NBDecoder{d}, nil
}

func (d *NBDecoder) Submode() (NBSubmode, error)  { return d.lowSubmode() }
func (d *NBDecoder) SetSubmode(s NBSubmode) error { return d.setLowSubmode(s) }

// WBDecoder is a wideband decoder with a narrowband low layer.
type WBDecoder struct {
	*Decoder[WideBand]
}

func NewWBDecoder(eng engine.Engine, opts ...Option) (*WBDecoder, error) {
	d, err := NewDecoder[WideBand](eng, opts...)
	if err != nil {
		return nil, err
	}
	return &WBDecoder{d}, nil
}

func (d *WBDecoder) LowSubmode() (NBSubmode, error)   { return d.lowSubmode() }
func (d *WBDecoder) SetLowSubmode(s NBSubmode) error  { return d.setLowSubmode(s) }
func (d *WBDecoder) HighSubmode() (WBSubmode, error)  { return d.wbHighSubmode() }
func (d *WBDecoder) SetHighSubmode(s WBSubmode) error { return d.setWBHighSubmode(s) }

// UWBDecoder is an ultra-wideband decoder.
type UWBDecoder struct {
	*Decoder[UltraWideBand]
}

func NewUWBDecoder(eng engine.Engine, opts ...Option) (*UWBDecoder, error) {
	d, err := NewDecoder[UltraWideBand](eng, opts...)
	if err != nil {
		return nil, err
	}
	return &UWBDecoder{d}, nil
}

func (d *UWBDecoder) LowSubmode() (NBSubmode, error)  { return d.lowSubmode() }
func (d *UWBDecoder) SetLowSubmode(s NBSubmode) error { return d.setLowSubmode(s) }

// HighSubmode always returns UWBSubmodeOnly without asking the engine.
func (d *UWBDecoder) HighSubmode() UWBSubmode {
	d.mustBeOpen()
	return UWBSubmodeOnly
}
