// SPDX-License-Identifier: EPL-2.0

package coder

import "github.com/ik5/speex/engine"

// Sender performs one control request against a coder state. A nil slot
// means the request carries no parameter.
type Sender interface {
	Send(req engine.Request, slot *engine.Slot) error
}

// Controls is the control surface shared by every encoder and decoder.
type Controls interface {
	FrameSize() (int, error)
	SetQuality(q int) error
	Bitrate() (int, error)
	SetBitrate(bps int) error
	VBR() (bool, error)
	SetVBR(on bool) error
	VBRQuality() (float32, error)
	SetVBRQuality(q float32) error
	VAD() (bool, error)
	SetVAD(on bool) error
	DTX() (bool, error)
	SetDTX(on bool) error
	ABR() (int, error)
	SetABR(bps int) error
	SamplingRate() (int, error)
	SetSamplingRate(hz int) error
	ResetState() error
	SubmodeEncoding() (bool, error)
	SetSubmodeEncoding(on bool) error
	Lookahead() (int, error)
	PLCTuning() (int, error)
	SetPLCTuning(pct int) error
	VBRMaxBitrate() (int, error)
	SetVBRMaxBitrate(bps int) error
	Highpass() (bool, error)
	SetHighpass(on bool) error
}

// Channel builds the typed control accessors on top of a Sender. Each
// accessor is exactly one request.
type Channel struct {
	s Sender
}

var _ Controls = Channel{}

// NewChannel returns a Channel sending through s.
func NewChannel(s Sender) Channel {
	if s == nil {
		panic("sender can't be nil")
	}
	return Channel{s: s}
}

func (c Channel) getInt(req engine.Request) (int32, error) {
	var slot engine.Slot
	if err := c.s.Send(req, &slot); err != nil {
		return 0, err
	}
	return slot.Int, nil
}

func (c Channel) setInt(req engine.Request, v int32) error {
	return c.s.Send(req, &engine.Slot{Int: v})
}

func (c Channel) getFloat(req engine.Request) (float32, error) {
	var slot engine.Slot
	if err := c.s.Send(req, &slot); err != nil {
		return 0, err
	}
	return slot.Float, nil
}

func (c Channel) setFloat(req engine.Request, v float32) error {
	return c.s.Send(req, &engine.Slot{Float: v})
}

func (c Channel) getBool(req engine.Request) (bool, error) {
	v, err := c.getInt(req)
	return v != 0, err
}

func (c Channel) setBool(req engine.Request, on bool) error {
	var v int32
	if on {
		v = 1
	}
	return c.setInt(req, v)
}

// FrameSize asks the engine for its frame length in samples.
func (c Channel) FrameSize() (int, error) {
	v, err := c.getInt(engine.GetFrameSize)
	return int(v), err
}

// SetQuality maps a 0..10 quality onto submodes. There is no getter.
func (c Channel) SetQuality(q int) error { return c.setInt(engine.SetQuality, int32(q)) }

func (c Channel) Bitrate() (int, error) {
	v, err := c.getInt(engine.GetBitrate)
	return int(v), err
}

// SetBitrate picks the best submode not exceeding bps.
func (c Channel) SetBitrate(bps int) error { return c.setInt(engine.SetBitrate, int32(bps)) }

func (c Channel) VBR() (bool, error)   { return c.getBool(engine.GetVBR) }
func (c Channel) SetVBR(on bool) error { return c.setBool(engine.SetVBR, on) }

func (c Channel) VBRQuality() (float32, error)  { return c.getFloat(engine.GetVBRQuality) }
func (c Channel) SetVBRQuality(q float32) error { return c.setFloat(engine.SetVBRQuality, q) }

func (c Channel) VAD() (bool, error)   { return c.getBool(engine.GetVAD) }
func (c Channel) SetVAD(on bool) error { return c.setBool(engine.SetVAD, on) }

func (c Channel) DTX() (bool, error)   { return c.getBool(engine.GetDTX) }
func (c Channel) SetDTX(on bool) error { return c.setBool(engine.SetDTX, on) }

// ABR returns the average bitrate target, 0 when ABR is off.
func (c Channel) ABR() (int, error) {
	v, err := c.getInt(engine.GetABR)
	return int(v), err
}

func (c Channel) SetABR(bps int) error { return c.setInt(engine.SetABR, int32(bps)) }

func (c Channel) SamplingRate() (int, error) {
	v, err := c.getInt(engine.GetSamplingRate)
	return int(v), err
}

// SetSamplingRate records the real input rate. It only affects bitrate
// reporting, not the frame size.
func (c Channel) SetSamplingRate(hz int) error { return c.setInt(engine.SetSamplingRate, int32(hz)) }

// ResetState clears the engine's signal memory.
func (c Channel) ResetState() error { return c.s.Send(engine.ResetState, nil) }

func (c Channel) SubmodeEncoding() (bool, error) { return c.getBool(engine.GetSubmodeEncoding) }
func (c Channel) SetSubmodeEncoding(on bool) error {
	return c.setBool(engine.SetSubmodeEncoding, on)
}

// Lookahead returns the algorithmic delay in samples.
func (c Channel) Lookahead() (int, error) {
	v, err := c.getInt(engine.GetLookahead)
	return int(v), err
}

// PLCTuning returns the expected packet loss percentage.
func (c Channel) PLCTuning() (int, error) {
	v, err := c.getInt(engine.GetPLCTuning)
	return int(v), err
}

func (c Channel) SetPLCTuning(pct int) error { return c.setInt(engine.SetPLCTuning, int32(pct)) }

func (c Channel) VBRMaxBitrate() (int, error) {
	v, err := c.getInt(engine.GetVBRMaxBitrate)
	return int(v), err
}

func (c Channel) SetVBRMaxBitrate(bps int) error {
	return c.setInt(engine.SetVBRMaxBitrate, int32(bps))
}

func (c Channel) Highpass() (bool, error)   { return c.getBool(engine.GetHighpass) }
func (c Channel) SetHighpass(on bool) error { return c.setBool(engine.SetHighpass, on) }

func (c Channel) lowMode() (int32, error)    { return c.getInt(engine.GetLowMode) }
func (c Channel) setLowMode(id int32) error  { return c.setInt(engine.SetLowMode, id) }
func (c Channel) highMode() (int32, error)   { return c.getInt(engine.GetHighMode) }
func (c Channel) setHighMode(id int32) error { return c.setInt(engine.SetHighMode, id) }
