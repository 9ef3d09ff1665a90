// SPDX-License-Identifier: EPL-2.0

package coder

import (
	"fmt"
	"runtime"

	"github.com/ik5/speex/bits"
	"github.com/ik5/speex/engine"
)

// Encoder owns one engine encoder state for mode M.
//
// An Encoder is not safe for concurrent use. Call Close when done; any other
// method called after Close panics.
type Encoder[M Mode] struct {
	handle

	state engine.EncoderState
}

// NewEncoder allocates an encoder state for mode M from eng.
func NewEncoder[M Mode](eng engine.Engine, opts ...Option) (*Encoder[M], error) {
	desc := descriptorOf[M]()
	o := buildOptions(opts)

	st, err := eng.NewEncoder(desc)
	if err != nil {
		return nil, fmt.Errorf("create %s encoder: %w", desc.Name, err)
	}

	e := &Encoder[M]{state: st}
	e.open("encoder", desc, st, o)
	e.cleanup = runtime.AddCleanup(e, destroyLeaked, leak{state: st, log: e.log})

	return e, nil
}

// Encode codes one frame of float samples in 16-bit scale and appends the
// bits to out. The frame must hold exactly one frame of samples. out is not
// reset, so several frames can share one buffer.
func (e *Encoder[M]) Encode(frame []float32, out *bits.Buffer) error {
	e.mustBeOpen()
	e.checkFrame(len(frame))

	err := e.state.Encode(frame, out)
	runtime.KeepAlive(e)

	if err != nil {
		return fmt.Errorf("encode %s frame: %w", e.desc.Name, err)
	}
	return nil
}

// EncodeInt is Encode for 16-bit integer samples.
func (e *Encoder[M]) EncodeInt(frame []int16, out *bits.Buffer) error {
	e.mustBeOpen()
	e.checkFrame(len(frame))

	err := e.state.EncodeInt(frame, out)
	runtime.KeepAlive(e)

	if err != nil {
		return fmt.Errorf("encode %s frame: %w", e.desc.Name, err)
	}
	return nil
}

// Complexity returns the encoder's search effort, 1..10.
func (e *Encoder[M]) Complexity() (int, error) {
	v, err := e.getInt(engine.GetComplexity)
	return int(v), err
}

func (e *Encoder[M]) SetComplexity(c int) error {
	return e.setInt(engine.SetComplexity, int32(c))
}

// RelativeQuality returns the engine's estimate of the last frame's quality.
func (e *Encoder[M]) RelativeQuality() (float32, error) {
	return e.getFloat(engine.GetRelativeQuality)
}

// Close destroys the engine state. Calling it again does nothing.
func (e *Encoder[M]) Close() {
	if e.close() {
		e.state = nil
	}
}

// NBEncoder is a narrowband encoder.
type NBEncoder struct {
	*Encoder[NarrowBand]
}

func NewNBEncoder(eng engine.Engine, opts ...Option) (*NBEncoder, error) {
	e, err := NewEncoder[NarrowBand](eng, opts...)
	if err != nil {
		return nil, err
	}
	return &NBEncoder{e}, nil
}

func (e *NBEncoder) Submode() (NBSubmode, error)  { return e.lowSubmode() }
func (e *NBEncoder) SetSubmode(s NBSubmode) error { return e.setLowSubmode(s) }

// WBEncoder is a wideband encoder with a narrowband low layer.
type WBEncoder struct {
	*Encoder[WideBand]
}

func NewWBEncoder(eng engine.Engine, opts ...Option) (*WBEncoder, error) {
	e, err := NewEncoder[WideBand](eng, opts...)
	if err != nil {
		return nil, err
	}
	return &WBEncoder{e}, nil
}

func (e *WBEncoder) LowSubmode() (NBSubmode, error)   { return e.lowSubmode() }
func (e *WBEncoder) SetLowSubmode(s NBSubmode) error  { return e.setLowSubmode(s) }
func (e *WBEncoder) HighSubmode() (WBSubmode, error)  { return e.wbHighSubmode() }
func (e *WBEncoder) SetHighSubmode(s WBSubmode) error { return e.setWBHighSubmode(s) }

// UWBEncoder is an ultra-wideband encoder. Its high layer has a single
// submode, so only the low layer is adjustable.
type UWBEncoder struct {
	*Encoder[UltraWideBand]
}

func NewUWBEncoder(eng engine.Engine, opts ...Option) (*UWBEncoder, error) {
	e, err := NewEncoder[UltraWideBand](eng, opts...)
	if err != nil {
		return nil, err
	}
	return &UWBEncoder{e}, nil
}

func (e *UWBEncoder) LowSubmode() (NBSubmode, error)  { return e.lowSubmode() }
func (e *UWBEncoder) SetLowSubmode(s NBSubmode) error { return e.setLowSubmode(s) }

// HighSubmode always returns UWBSubmodeOnly without asking the engine.
func (e *UWBEncoder) HighSubmode() UWBSubmode {
	e.mustBeOpen()
	return UWBSubmodeOnly
}
