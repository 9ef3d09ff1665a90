// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"slices"
	"strconv"
	"sync"
)

// ModeID identifies a coder mode.
type ModeID int32

const (
	NarrowBand    ModeID = 0 // 8 kHz
	WideBand      ModeID = 1 // 16 kHz
	UltraWideBand ModeID = 2 // 32 kHz
)

// NumModes is the number of defined modes.
const NumModes = 3

// BitstreamVersion is the bit-stream revision written into stream headers.
const BitstreamVersion = 4

func (m ModeID) String() string {
	switch m {
	case NarrowBand:
		return "narrowband"
	case WideBand:
		return "wideband"
	case UltraWideBand:
		return "ultra-wideband"
	default:
		return "mode(" + strconv.Itoa(int(m)) + ")"
	}
}

// Valid reports whether m names a defined mode.
func (m ModeID) Valid() bool { return m >= NarrowBand && m <= UltraWideBand }

// ParseMode maps a mode name to its id. Both the long names returned by
// String and the short forms "nb", "wb" and "uwb" are accepted.
func ParseMode(s string) (ModeID, bool) {
	switch s {
	case "narrowband", "nb":
		return NarrowBand, true
	case "wideband", "wb":
		return WideBand, true
	case "ultra-wideband", "ultrawideband", "uwb":
		return UltraWideBand, true
	}
	return 0, false
}

// Submode describes one bitrate variant of a layer.
type Submode struct {
	ID           int32
	Name         string
	Bitrate      int // nominal bits per second of this layer
	BitsPerFrame int
}

// Descriptor is the static description of a mode. Descriptors are built once
// and shared by every coder in the process, so their fields are read-only.
// The submode tables are only reachable through copies.
type Descriptor struct {
	ID         ModeID
	Name       string
	SampleRate int
	FrameSize  int

	DefaultLow  int32
	DefaultHigh int32

	low  []Submode // narrowband layer, shared by every mode
	high []Submode // empty for narrowband
}

// LowSubmodes returns a copy of the low layer table.
func (d *Descriptor) LowSubmodes() []Submode { return slices.Clone(d.low) }

// HighSubmodes returns a copy of the high layer table. It is empty for
// narrowband.
func (d *Descriptor) HighSubmodes() []Submode { return slices.Clone(d.high) }

// HasHighLayer reports whether the mode codes a layer above narrowband.
func (d *Descriptor) HasHighLayer() bool { return len(d.high) > 0 }

// LowSubmode returns the low layer entry with the given id.
func (d *Descriptor) LowSubmode(id int32) (Submode, bool) {
	return findSubmode(d.low, id)
}

// HighSubmode returns the high layer entry with the given id.
func (d *Descriptor) HighSubmode(id int32) (Submode, bool) {
	return findSubmode(d.high, id)
}

func findSubmode(table []Submode, id int32) (Submode, bool) {
	for _, s := range table {
		if s.ID == id {
			return s, true
		}
	}
	return Submode{}, false
}

var narrowbandSubmodes = []Submode{
	{ID: 1, Name: "vocoder-like", Bitrate: 2150, BitsPerFrame: 43},
	{ID: 8, Name: "extreme-low", Bitrate: 3950, BitsPerFrame: 79},
	{ID: 2, Name: "very-low", Bitrate: 5950, BitsPerFrame: 119},
	{ID: 3, Name: "low", Bitrate: 8000, BitsPerFrame: 160},
	{ID: 4, Name: "medium", Bitrate: 11000, BitsPerFrame: 220},
	{ID: 5, Name: "high", Bitrate: 15000, BitsPerFrame: 300},
	{ID: 6, Name: "very-high", Bitrate: 18200, BitsPerFrame: 364},
	{ID: 7, Name: "extreme-high", Bitrate: 24600, BitsPerFrame: 492},
}

var widebandSubmodes = []Submode{
	{ID: 1, Name: "no-quantize", Bitrate: 1800, BitsPerFrame: 36},
	{ID: 2, Name: "quantized-low", Bitrate: 5600, BitsPerFrame: 112},
	{ID: 3, Name: "quantized-medium", Bitrate: 9600, BitsPerFrame: 192},
	{ID: 4, Name: "quantized-high", Bitrate: 17600, BitsPerFrame: 352},
}

var ultraWidebandSubmodes = []Submode{
	{ID: 1, Name: "only", Bitrate: 1800, BitsPerFrame: 36},
}

var descriptors = sync.OnceValue(func() [NumModes]*Descriptor {
	return [NumModes]*Descriptor{
		NarrowBand: {
			ID:         NarrowBand,
			Name:       NarrowBand.String(),
			SampleRate: 8000,
			FrameSize:  160,
			low:        narrowbandSubmodes,
			DefaultLow: 5,
		},
		WideBand: {
			ID:          WideBand,
			Name:        WideBand.String(),
			SampleRate:  16000,
			FrameSize:   320,
			low:         narrowbandSubmodes,
			high:        widebandSubmodes,
			DefaultLow:  5,
			DefaultHigh: 3,
		},
		UltraWideBand: {
			ID:          UltraWideBand,
			Name:        UltraWideBand.String(),
			SampleRate:  32000,
			FrameSize:   640,
			low:         narrowbandSubmodes,
			high:        ultraWidebandSubmodes,
			DefaultLow:  5,
			DefaultHigh: 1,
		},
	}
})

// Lookup returns the descriptor for id.
func Lookup(id ModeID) (*Descriptor, bool) {
	if !id.Valid() {
		return nil, false
	}
	return descriptors()[id], true
}

// MustLookup is like Lookup but panics for an undefined mode.
func MustLookup(id ModeID) *Descriptor {
	d, ok := Lookup(id)
	if !ok {
		panic("engine: undefined " + id.String())
	}
	return d
}
