// SPDX-License-Identifier: EPL-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ik5/speex/coder"
	"github.com/ik5/speex/engine"
	"gopkg.in/yaml.v3"
)

// Settings configures one coder. Nil fields are left at the engine's
// defaults.
type Settings struct {
	// Engine is the registry name of the engine, see engine.Register.
	Engine string `yaml:"engine" cbor:"engine"`

	// Mode is nb, wb or uwb (or narrowband, wideband, ultra-wideband).
	Mode string `yaml:"mode" cbor:"mode"`

	// Quality 0..10 picks submodes. Bitrate and explicit submodes are
	// applied after it and win.
	Quality *int `yaml:"quality,omitempty" cbor:"quality,omitempty"`

	// Complexity 1..10 is the encoder's search effort.
	Complexity *int `yaml:"complexity,omitempty" cbor:"complexity,omitempty"`

	// Bitrate in bits per second selects the best submode not above it.
	Bitrate *int `yaml:"bitrate,omitempty" cbor:"bitrate,omitempty"`

	VBR           *bool    `yaml:"vbr,omitempty" cbor:"vbr,omitempty"`
	VBRQuality    *float32 `yaml:"vbr_quality,omitempty" cbor:"vbr_quality,omitempty"`
	VBRMaxBitrate *int     `yaml:"vbr_max_bitrate,omitempty" cbor:"vbr_max_bitrate,omitempty"`

	// ABR is an average bitrate target. It turns VBR on.
	ABR *int `yaml:"abr,omitempty" cbor:"abr,omitempty"`

	VAD      *bool `yaml:"vad,omitempty" cbor:"vad,omitempty"`
	DTX      *bool `yaml:"dtx,omitempty" cbor:"dtx,omitempty"`
	Highpass *bool `yaml:"highpass,omitempty" cbor:"highpass,omitempty"`

	// PLCTuning is the expected packet loss in percent, 0..100.
	PLCTuning *int `yaml:"plc_tuning,omitempty" cbor:"plc_tuning,omitempty"`

	SubmodeEncoding *bool `yaml:"submode_encoding,omitempty" cbor:"submode_encoding,omitempty"`

	// SamplingRate is the real input rate in Hz when it differs from the
	// mode's nominal rate.
	SamplingRate *int `yaml:"sampling_rate,omitempty" cbor:"sampling_rate,omitempty"`

	// LowSubmode is the narrowband layer submode, 1..8.
	LowSubmode *int `yaml:"low_submode,omitempty" cbor:"low_submode,omitempty"`

	// HighSubmode is the wideband layer submode, 1..4. Ultra-wideband
	// accepts only 1; narrowband has no high layer.
	HighSubmode *int `yaml:"high_submode,omitempty" cbor:"high_submode,omitempty"`

	// Enhancement turns decoder perceptual enhancement on or off.
	Enhancement *bool `yaml:"enhancement,omitempty" cbor:"enhancement,omitempty"`
}

// Parse decodes YAML settings and validates them. Unknown keys are an error.
func Parse(data []byte) (*Settings, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Settings
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	return &s, nil
}

// LoadFile reads and parses a YAML settings file.
func LoadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// ModeID resolves Mode.
func (s *Settings) ModeID() (engine.ModeID, error) {
	id, ok := engine.ParseMode(s.Mode)
	if !ok {
		return 0, fmt.Errorf("%w: mode %q", ErrInvalidSettings, s.Mode)
	}
	return id, nil
}

// Validate reports every out-of-range field at once.
func (s *Settings) Validate() error {
	var errs []error

	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidSettings}, args...)...))
		}
	}
	inRange := func(name string, v *int, lo, hi int) {
		if v != nil {
			check(*v >= lo && *v <= hi, "%s %d not in %d..%d", name, *v, lo, hi)
		}
	}
	nonNegative := func(name string, v *int) {
		if v != nil {
			check(*v >= 0, "%s %d is negative", name, *v)
		}
	}

	mode, err := s.ModeID()
	if err != nil {
		errs = append(errs, err)
	}

	inRange("quality", s.Quality, 0, 10)
	inRange("complexity", s.Complexity, 1, 10)
	inRange("plc_tuning", s.PLCTuning, 0, 100)
	inRange("low_submode", s.LowSubmode, 1, 8)
	nonNegative("bitrate", s.Bitrate)
	nonNegative("vbr_max_bitrate", s.VBRMaxBitrate)
	nonNegative("abr", s.ABR)

	if s.VBRQuality != nil {
		check(*s.VBRQuality >= 0 && *s.VBRQuality <= 10, "vbr_quality %v not in 0..10", *s.VBRQuality)
	}
	if s.SamplingRate != nil {
		check(*s.SamplingRate > 0, "sampling_rate %d is not positive", *s.SamplingRate)
	}

	if s.HighSubmode != nil && err == nil {
		switch mode {
		case engine.NarrowBand:
			check(false, "high_submode set for narrowband")
		case engine.WideBand:
			inRange("high_submode", s.HighSubmode, 1, 4)
		case engine.UltraWideBand:
			inRange("high_submode", s.HighSubmode, 1, 1)
		}
	}

	return errors.Join(errs...)
}

// Encoder is the control surface ApplyEncoder configures.
type Encoder interface {
	coder.Controls
	SetComplexity(c int) error
}

// Decoder is the control surface ApplyDecoder configures.
type Decoder interface {
	coder.Controls
	SetEnhancement(on bool) error
}

type lowSubmodeSetter interface {
	SetLowSubmode(s coder.NBSubmode) error
}

type nbSubmodeSetter interface {
	SetSubmode(s coder.NBSubmode) error
}

type highSubmodeSetter interface {
	SetHighSubmode(s coder.WBSubmode) error
}

type step struct {
	name  string
	set   bool
	apply func() error
}

func run(steps []step) error {
	for _, st := range steps {
		if !st.set {
			continue
		}
		if err := st.apply(); err != nil {
			return fmt.Errorf("apply %s: %w", st.name, err)
		}
	}
	return nil
}

// ApplyEncoder sends the set fields to enc, one control request each.
// Quality goes first so that bitrate and explicit submodes override it.
// It stops at the first error.
func (s *Settings) ApplyEncoder(enc Encoder) error {
	return run([]step{
		{"quality", s.Quality != nil, func() error { return enc.SetQuality(*s.Quality) }},
		{"bitrate", s.Bitrate != nil, func() error { return enc.SetBitrate(*s.Bitrate) }},
		{"low_submode", s.LowSubmode != nil, func() error { return setLowSubmode(enc, coder.NBSubmode(*s.LowSubmode)) }},
		{"high_submode", s.HighSubmode != nil, func() error { return setHighSubmode(enc, *s.HighSubmode) }},
		{"vbr", s.VBR != nil, func() error { return enc.SetVBR(*s.VBR) }},
		{"vbr_quality", s.VBRQuality != nil, func() error { return enc.SetVBRQuality(*s.VBRQuality) }},
		{"vbr_max_bitrate", s.VBRMaxBitrate != nil, func() error { return enc.SetVBRMaxBitrate(*s.VBRMaxBitrate) }},
		{"abr", s.ABR != nil, func() error { return enc.SetABR(*s.ABR) }},
		{"complexity", s.Complexity != nil, func() error { return enc.SetComplexity(*s.Complexity) }},
		{"vad", s.VAD != nil, func() error { return enc.SetVAD(*s.VAD) }},
		{"dtx", s.DTX != nil, func() error { return enc.SetDTX(*s.DTX) }},
		{"highpass", s.Highpass != nil, func() error { return enc.SetHighpass(*s.Highpass) }},
		{"plc_tuning", s.PLCTuning != nil, func() error { return enc.SetPLCTuning(*s.PLCTuning) }},
		{"submode_encoding", s.SubmodeEncoding != nil, func() error { return enc.SetSubmodeEncoding(*s.SubmodeEncoding) }},
		{"sampling_rate", s.SamplingRate != nil, func() error { return enc.SetSamplingRate(*s.SamplingRate) }},
	})
}

// ApplyDecoder sends the fields meaningful to a decoder.
func (s *Settings) ApplyDecoder(dec Decoder) error {
	return run([]step{
		{"enhancement", s.Enhancement != nil, func() error { return dec.SetEnhancement(*s.Enhancement) }},
		{"highpass", s.Highpass != nil, func() error { return dec.SetHighpass(*s.Highpass) }},
		{"submode_encoding", s.SubmodeEncoding != nil, func() error { return dec.SetSubmodeEncoding(*s.SubmodeEncoding) }},
		{"sampling_rate", s.SamplingRate != nil, func() error { return dec.SetSamplingRate(*s.SamplingRate) }},
	})
}

func setLowSubmode(c any, s coder.NBSubmode) error {
	switch c := c.(type) {
	case lowSubmodeSetter:
		return c.SetLowSubmode(s)
	case nbSubmodeSetter:
		return c.SetSubmode(s)
	}
	return fmt.Errorf("%w: %T has no low submode", ErrNotApplicable, c)
}

func setHighSubmode(c any, id int) error {
	switch c := c.(type) {
	case highSubmodeSetter:
		return c.SetHighSubmode(coder.WBSubmode(id))
	case interface{ HighSubmode() coder.UWBSubmode }:
		if coder.UWBSubmode(id) == c.HighSubmode() {
			return nil
		}
		return fmt.Errorf("%w: ultra-wideband high submode %d", ErrInvalidSettings, id)
	case coder.Sender:
		// run-time mode: the engine checks the id against its mode
		return c.Send(engine.SetHighMode, &engine.Slot{Int: int32(id)})
	}
	return fmt.Errorf("%w: %T has no high submode", ErrNotApplicable, c)
}

// NewEncoder opens the configured engine and returns a configured encoder.
func (s *Settings) NewEncoder(opts ...coder.Option) (*coder.DynamicEncoder, error) {
	eng, mode, err := s.open()
	if err != nil {
		return nil, err
	}

	enc, err := coder.NewDynamicEncoder(eng, mode, opts...)
	if err != nil {
		return nil, err
	}
	if err := s.ApplyEncoder(enc); err != nil {
		enc.Close()
		return nil, err
	}
	return enc, nil
}

// NewDecoder opens the configured engine and returns a configured decoder.
func (s *Settings) NewDecoder(opts ...coder.Option) (*coder.DynamicDecoder, error) {
	eng, mode, err := s.open()
	if err != nil {
		return nil, err
	}

	dec, err := coder.NewDynamicDecoder(eng, mode, opts...)
	if err != nil {
		return nil, err
	}
	if err := s.ApplyDecoder(dec); err != nil {
		dec.Close()
		return nil, err
	}
	return dec, nil
}

func (s *Settings) open() (engine.Engine, engine.ModeID, error) {
	mode, err := s.ModeID()
	if err != nil {
		return nil, 0, err
	}
	eng, err := engine.Open(s.Engine)
	if err != nil {
		return nil, 0, err
	}
	return eng, mode, nil
}
