// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"fmt"

	"github.com/ik5/speex/bits"
)

// Status is the integer result an engine returns from control and decode calls.
type Status int32

const (
	// StatusOK reports success.
	StatusOK Status = 0
	// StatusUnknownRequest is returned by Control for an opcode the engine
	// does not implement. Decode uses the same value for end of stream.
	StatusUnknownRequest Status = -1
	// StatusInvalidParameter is returned by Control for a rejected slot value.
	// Decode uses the same value for a corrupt stream.
	StatusInvalidParameter Status = -2
)

// Decode results share the control status values.
const (
	StatusEndOfStream   = StatusUnknownRequest
	StatusCorruptStream = StatusInvalidParameter
)

// Slot is the parameter cell passed by address with a control request. The
// request code decides which field the engine reads or writes. Booleans are
// carried in Int as 0 or nonzero.
type Slot struct {
	Int   int32
	Float float32
}

// Version describes the engine library.
type Version struct {
	Major int
	Minor int
	Micro int
	Extra string
}

// String returns the version in "major.minor.micro[extra]" form.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d%s", v.Major, v.Minor, v.Micro, v.Extra)
}

// Engine creates coder states for a mode. It is the only way the coder layer
// reaches the numeric codec.
type Engine interface {
	// NewEncoder allocates a fresh encoder state for the mode.
	NewEncoder(mode *Descriptor) (EncoderState, error)
	// NewDecoder allocates a fresh decoder state for the mode.
	NewDecoder(mode *Descriptor) (DecoderState, error)
	// Version reports the library version.
	Version() Version
}

// EncoderState is one live encoder instance owned by exactly one caller.
type EncoderState interface {
	// Encode codes one frame of float samples in 16-bit scale into out.
	Encode(frame []float32, out *bits.Buffer) error
	// EncodeInt codes one frame of 16-bit samples into out.
	EncodeInt(frame []int16, out *bits.Buffer) error
	// Control performs one get or set request on the state.
	Control(req Request, slot *Slot) Status
	// Destroy releases the state. It is called exactly once.
	Destroy()
}

// DecoderState is one live decoder instance owned by exactly one caller.
type DecoderState interface {
	// Decode reads one frame from in into out as float samples in 16-bit scale.
	Decode(in *bits.Buffer, out []float32) Status
	// DecodeInt reads one frame from in into out as 16-bit samples.
	DecodeInt(in *bits.Buffer, out []int16) Status
	// Control performs one get or set request on the state.
	Control(req Request, slot *Slot) Status
	// Destroy releases the state. It is called exactly once.
	Destroy()
}
