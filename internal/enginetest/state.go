// SPDX-License-Identifier: EPL-2.0

package enginetest

import (
	"slices"

	"github.com/ik5/speex/engine"
)

// quality 0..10 to narrowband submode, as the classic narrowband encoder maps it.
var nbQualityMap = [11]int32{1, 8, 2, 3, 3, 4, 4, 5, 5, 6, 7}

var wbQualityMap = [11]int32{1, 1, 1, 2, 2, 3, 3, 3, 3, 4, 4}

// lookahead in samples per mode.
var lookahead = [engine.NumModes]int32{40, 143, 349}

type state struct {
	eng     *Engine
	desc    *engine.Descriptor
	encoder bool

	low  int32
	high int32
	rate int32

	vbr        bool
	vbrQuality float32
	vbrMax     int32
	abr        int32
	vad        bool
	dtx        bool
	highpass   bool
	submodeEnc bool
	enhance    bool
	complexity int32
	plc        int32

	relQuality float32
	activity   int32

	calls     []engine.Request
	destroyed bool
}

func newState(eng *Engine, d *engine.Descriptor, encoder bool) *state {
	return &state{
		eng:        eng,
		desc:       d,
		encoder:    encoder,
		low:        d.DefaultLow,
		high:       d.DefaultHigh,
		rate:       int32(d.SampleRate),
		vbrQuality: 8,
		highpass:   true,
		submodeEnc: true,
		enhance:    true,
		complexity: 2,
		plc:        2,
	}
}

// Calls returns the control requests seen so far, in order.
func (s *state) Calls() []engine.Request { return slices.Clone(s.calls) }

// Mode returns the descriptor the state was created for.
func (s *state) Mode() *engine.Descriptor { return s.desc }

// IsDestroyed reports whether Destroy was called.
func (s *state) IsDestroyed() bool { return s.destroyed }

// Destroy releases the state. A second call panics, which is how tests
// catch double destruction.
func (s *state) Destroy() {
	if s.destroyed {
		panic("enginetest: state destroyed twice")
	}
	s.destroyed = true
	s.eng.destroyed.Add(1)
}

func (s *state) mustBeLive() {
	if s.destroyed {
		panic("enginetest: use of destroyed state")
	}
}

func (s *state) Control(req engine.Request, slot *engine.Slot) engine.Status {
	s.mustBeLive()
	s.eng.controls.Add(1)
	s.calls = append(s.calls, req)

	if hook := s.eng.ControlHook; hook != nil {
		if st, ok := hook(req, slot); ok {
			return st
		}
	}

	if req == engine.ResetState {
		s.relQuality = 0
		s.activity = 0
		return engine.StatusOK
	}
	if slot == nil {
		return engine.StatusInvalidParameter
	}

	if s.encoder {
		if st, ok := s.encoderControl(req, slot); ok {
			return st
		}
	} else {
		if st, ok := s.decoderControl(req, slot); ok {
			return st
		}
	}

	return s.sharedControl(req, slot)
}

func (s *state) sharedControl(req engine.Request, slot *engine.Slot) engine.Status {
	switch req {
	case engine.GetFrameSize:
		slot.Int = int32(s.desc.FrameSize)
	case engine.SetMode, engine.SetLowMode:
		if _, ok := s.desc.LowSubmode(slot.Int); !ok {
			return engine.StatusInvalidParameter
		}
		s.low = slot.Int
	case engine.GetMode, engine.GetLowMode:
		slot.Int = s.low
	case engine.SetHighMode:
		if !s.desc.HasHighLayer() {
			return engine.StatusUnknownRequest
		}
		if _, ok := s.desc.HighSubmode(slot.Int); !ok {
			return engine.StatusInvalidParameter
		}
		s.high = slot.Int
	case engine.GetHighMode:
		if !s.desc.HasHighLayer() {
			return engine.StatusUnknownRequest
		}
		slot.Int = s.high
	case engine.GetBitrate:
		slot.Int = s.bitrate()
	case engine.SetSamplingRate:
		if slot.Int <= 0 {
			return engine.StatusInvalidParameter
		}
		s.rate = slot.Int
	case engine.GetSamplingRate:
		slot.Int = s.rate
	case engine.SetDTX:
		s.dtx = slot.Int != 0
	case engine.GetDTX:
		slot.Int = boolInt(s.dtx)
	case engine.SetSubmodeEncoding:
		s.submodeEnc = slot.Int != 0
	case engine.GetSubmodeEncoding:
		slot.Int = boolInt(s.submodeEnc)
	case engine.GetLookahead:
		slot.Int = lookahead[s.desc.ID]
	case engine.SetHighpass:
		s.highpass = slot.Int != 0
	case engine.GetHighpass:
		slot.Int = boolInt(s.highpass)
	default:
		return engine.StatusUnknownRequest
	}

	return engine.StatusOK
}

func (s *state) encoderControl(req engine.Request, slot *engine.Slot) (engine.Status, bool) {
	switch req {
	case engine.SetQuality:
		q := slot.Int
		if q < 0 || q > 10 {
			return engine.StatusInvalidParameter, true
		}
		s.low = nbQualityMap[q]
		if s.desc.ID == engine.WideBand {
			s.high = wbQualityMap[q]
		}
	case engine.SetBitrate:
		s.low = s.lowForBitrate(slot.Int)
	case engine.SetComplexity:
		if slot.Int < 1 || slot.Int > 10 {
			return engine.StatusInvalidParameter, true
		}
		s.complexity = slot.Int
	case engine.GetComplexity:
		slot.Int = s.complexity
	case engine.SetVBR:
		s.vbr = slot.Int != 0
	case engine.GetVBR:
		slot.Int = boolInt(s.vbr)
	case engine.SetVBRQuality:
		if slot.Float < 0 || slot.Float > 10 {
			return engine.StatusInvalidParameter, true
		}
		s.vbrQuality = slot.Float
	case engine.GetVBRQuality:
		slot.Float = s.vbrQuality
	case engine.SetVBRMaxBitrate:
		if slot.Int < 0 {
			return engine.StatusInvalidParameter, true
		}
		s.vbrMax = slot.Int
	case engine.GetVBRMaxBitrate:
		slot.Int = s.vbrMax
	case engine.SetABR:
		if slot.Int < 0 {
			return engine.StatusInvalidParameter, true
		}
		s.abr = slot.Int
		if s.abr > 0 {
			s.vbr = true
		}
	case engine.GetABR:
		slot.Int = s.abr
	case engine.SetVAD:
		s.vad = slot.Int != 0
	case engine.GetVAD:
		slot.Int = boolInt(s.vad)
	case engine.SetPLCTuning:
		if slot.Int < 0 || slot.Int > 100 {
			return engine.StatusInvalidParameter, true
		}
		s.plc = slot.Int
	case engine.GetPLCTuning:
		slot.Int = s.plc
	case engine.GetRelativeQuality:
		slot.Float = s.relQuality
	case engine.SetEnhancement, engine.GetEnhancement, engine.GetActivity:
		return engine.StatusUnknownRequest, true
	default:
		return 0, false
	}

	return engine.StatusOK, true
}

func (s *state) decoderControl(req engine.Request, slot *engine.Slot) (engine.Status, bool) {
	switch req {
	case engine.SetEnhancement:
		s.enhance = slot.Int != 0
	case engine.GetEnhancement:
		slot.Int = boolInt(s.enhance)
	case engine.GetActivity:
		slot.Int = s.activity
	case engine.SetQuality, engine.SetBitrate,
		engine.SetComplexity, engine.GetComplexity,
		engine.SetVBR, engine.GetVBR,
		engine.SetVBRQuality, engine.GetVBRQuality,
		engine.SetVBRMaxBitrate, engine.GetVBRMaxBitrate,
		engine.SetABR, engine.GetABR,
		engine.SetVAD, engine.GetVAD,
		engine.SetPLCTuning, engine.GetPLCTuning,
		engine.GetRelativeQuality:
		return engine.StatusUnknownRequest, true
	default:
		return 0, false
	}

	return engine.StatusOK, true
}

// bitrate is the bits of one frame at the current submodes scaled to the
// configured sampling rate.
func (s *state) bitrate() int32 {
	bitsPerFrame := 0
	if sm, ok := s.desc.LowSubmode(s.low); ok {
		bitsPerFrame += sm.BitsPerFrame
	}
	if sm, ok := s.desc.HighSubmode(s.high); ok {
		bitsPerFrame += sm.BitsPerFrame
	}
	return int32(bitsPerFrame * int(s.rate) / s.desc.FrameSize)
}

// lowForBitrate picks the richest low submode whose total rate does not
// exceed target, or the poorest one if none fits.
func (s *state) lowForBitrate(target int32) int32 {
	table := s.desc.LowSubmodes()
	best := table[0]
	for _, sm := range table {
		saved := s.low
		s.low = sm.ID
		rate := s.bitrate()
		s.low = saved

		if rate <= target && sm.Bitrate >= best.Bitrate {
			best = sm
		}
	}
	return best.ID
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
