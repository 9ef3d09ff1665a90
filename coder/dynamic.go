// SPDX-License-Identifier: EPL-2.0

package coder

import (
	"fmt"

	"github.com/ik5/speex/bits"
	"github.com/ik5/speex/engine"
)

type encoderSurface interface {
	Sender
	Controls
	Encode(frame []float32, out *bits.Buffer) error
	EncodeInt(frame []int16, out *bits.Buffer) error
	Complexity() (int, error)
	SetComplexity(c int) error
	RelativeQuality() (float32, error)
	Mode() engine.ModeID
	Descriptor() *engine.Descriptor
	Close()

	lowSubmode() (NBSubmode, error)
	setLowSubmode(s NBSubmode) error
}

type decoderSurface interface {
	Sender
	Controls
	Decode(in *bits.Buffer, out []float32) error
	DecodeInt(in *bits.Buffer, out []int16) error
	DecodeFrame(in *bits.Buffer) ([]float32, error)
	DecodeIntFrame(in *bits.Buffer) ([]int16, error)
	Enhancement() (bool, error)
	SetEnhancement(on bool) error
	Activity() (int, error)
	Mode() engine.ModeID
	Descriptor() *engine.Descriptor
	Close()

	lowSubmode() (NBSubmode, error)
	setLowSubmode(s NBSubmode) error
}

var (
	_ encoderSurface = (*NBEncoder)(nil)
	_ encoderSurface = (*WBEncoder)(nil)
	_ encoderSurface = (*UWBEncoder)(nil)
	_ decoderSurface = (*NBDecoder)(nil)
	_ decoderSurface = (*WBDecoder)(nil)
	_ decoderSurface = (*UWBDecoder)(nil)
)

// DynamicEncoder holds an encoder whose mode is chosen at run time. The
// shared operations work whatever the mode; mode-specific submode control
// needs IntoNB, IntoWB or IntoUWB.
//
// The Into methods consume the DynamicEncoder. After one of them returns,
// Close does nothing and any other method panics with ErrClosed.
type DynamicEncoder struct {
	encoderSurface
}

// NewDynamicEncoder creates an encoder for mode.
func NewDynamicEncoder(eng engine.Engine, mode engine.ModeID, opts ...Option) (*DynamicEncoder, error) {
	switch mode {
	case engine.NarrowBand:
		e, err := NewNBEncoder(eng, opts...)
		if err != nil {
			return nil, err
		}
		return &DynamicEncoder{e}, nil
	case engine.WideBand:
		e, err := NewWBEncoder(eng, opts...)
		if err != nil {
			return nil, err
		}
		return &DynamicEncoder{e}, nil
	case engine.UltraWideBand:
		e, err := NewUWBEncoder(eng, opts...)
		if err != nil {
			return nil, err
		}
		return &DynamicEncoder{e}, nil
	}

	return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int32(mode))
}

// LowSubmode returns the narrowband layer submode, present in every mode.
func (d *DynamicEncoder) LowSubmode() (NBSubmode, error)  { return d.lowSubmode() }
func (d *DynamicEncoder) SetLowSubmode(s NBSubmode) error { return d.setLowSubmode(s) }

// Close destroys the held encoder. Calling it again does nothing.
func (d *DynamicEncoder) Close() {
	d.encoderSurface.Close()
	d.encoderSurface = closedEncoder
}

// IntoNB returns the narrowband encoder. If d holds another mode, that
// encoder is closed and the result is nil, false.
func (d *DynamicEncoder) IntoNB() (*NBEncoder, bool) {
	return take[*NBEncoder](&d.encoderSurface, closedEncoder)
}

// IntoWB is IntoNB for wideband.
func (d *DynamicEncoder) IntoWB() (*WBEncoder, bool) {
	return take[*WBEncoder](&d.encoderSurface, closedEncoder)
}

// IntoUWB is IntoNB for ultra-wideband.
func (d *DynamicEncoder) IntoUWB() (*UWBEncoder, bool) {
	return take[*UWBEncoder](&d.encoderSurface, closedEncoder)
}

// DynamicDecoder is the decoder counterpart of DynamicEncoder.
type DynamicDecoder struct {
	decoderSurface
}

// NewDynamicDecoder creates a decoder for mode.
func NewDynamicDecoder(eng engine.Engine, mode engine.ModeID, opts ...Option) (*DynamicDecoder, error) {
	switch mode {
	case engine.NarrowBand:
		d, err := NewNBDecoder(eng, opts...)
		if err != nil {
			return nil, err
		}
		return &DynamicDecoder{d}, nil
	case engine.WideBand:
		d, err := NewWBDecoder(eng, opts...)
		if err != nil {
			return nil, err
		}
		return &DynamicDecoder{d}, nil
	case engine.UltraWideBand:
		d, err := NewUWBDecoder(eng, opts...)
		if err != nil {
			return nil, err
		}
		return &DynamicDecoder{d}, nil
	}

	return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int32(mode))
}

func (d *DynamicDecoder) LowSubmode() (NBSubmode, error)  { return d.lowSubmode() }
func (d *DynamicDecoder) SetLowSubmode(s NBSubmode) error { return d.setLowSubmode(s) }

// Close destroys the held decoder. Calling it again does nothing.
func (d *DynamicDecoder) Close() {
	d.decoderSurface.Close()
	d.decoderSurface = closedDecoder
}

func (d *DynamicDecoder) IntoNB() (*NBDecoder, bool) {
	return take[*NBDecoder](&d.decoderSurface, closedDecoder)
}

func (d *DynamicDecoder) IntoWB() (*WBDecoder, bool) {
	return take[*WBDecoder](&d.decoderSurface, closedDecoder)
}

func (d *DynamicDecoder) IntoUWB() (*UWBDecoder, bool) {
	return take[*UWBDecoder](&d.decoderSurface, closedDecoder)
}

// closedEncoder and closedDecoder stand in for a consumed union. They hold
// no engine state, so every method but Close panics with ErrClosed.
var (
	closedEncoder encoderSurface = func() *NBEncoder {
		e := &Encoder[NarrowBand]{}
		e.Channel = NewChannel(&e.handle)
		return &NBEncoder{e}
	}()
	closedDecoder decoderSurface = func() *NBDecoder {
		d := &Decoder[NarrowBand]{}
		d.Channel = NewChannel(&d.handle)
		return &NBDecoder{d}
	}()
)

// take replaces the union with closed and returns its coder as T. A coder
// of another type is closed.
func take[T any, S interface{ Close() }](slot *S, closed S) (T, bool) {
	inner := *slot
	*slot = closed

	var zero T
	if any(inner) == any(closed) {
		return zero, false
	}
	if t, ok := any(inner).(T); ok {
		return t, true
	}

	inner.Close()
	return zero, false
}
