// SPDX-License-Identifier: EPL-2.0

package coder

import (
	"strconv"

	"github.com/ik5/speex/engine"
)

// Mode is the closed set of mode markers a coder can be typed with.
type Mode interface {
	NarrowBand | WideBand | UltraWideBand
	ID() engine.ModeID
}

// NarrowBand marks an 8 kHz coder.
type NarrowBand struct{}

// WideBand marks a 16 kHz coder.
type WideBand struct{}

// UltraWideBand marks a 32 kHz coder.
type UltraWideBand struct{}

func (NarrowBand) ID() engine.ModeID    { return engine.NarrowBand }
func (WideBand) ID() engine.ModeID      { return engine.WideBand }
func (UltraWideBand) ID() engine.ModeID { return engine.UltraWideBand }

func descriptorOf[M Mode]() *engine.Descriptor {
	var m M
	return engine.MustLookup(m.ID())
}

// NBSubmode selects the narrowband layer bit allocation. WB and UWB coders
// use it for their low layer.
type NBSubmode int32

const (
	NBVocoderLike NBSubmode = 1
	NBVeryLow     NBSubmode = 2
	NBLow         NBSubmode = 3
	NBMedium      NBSubmode = 4
	NBHigh        NBSubmode = 5
	NBVeryHigh    NBSubmode = 6
	NBExtremeHigh NBSubmode = 7
	NBExtremeLow  NBSubmode = 8
)

// NBSubmodes lists every narrowband submode in id order.
var NBSubmodes = []NBSubmode{
	NBVocoderLike, NBVeryLow, NBLow, NBMedium,
	NBHigh, NBVeryHigh, NBExtremeHigh, NBExtremeLow,
}

func (s NBSubmode) Valid() bool { return s >= NBVocoderLike && s <= NBExtremeLow }

func (s NBSubmode) String() string {
	if sm, ok := engine.MustLookup(engine.NarrowBand).LowSubmode(int32(s)); ok {
		return sm.Name
	}
	return "nb-submode(" + strconv.Itoa(int(s)) + ")"
}

// WBSubmode selects the wideband high layer bit allocation.
type WBSubmode int32

const (
	WBNoQuantize      WBSubmode = 1
	WBQuantizedLow    WBSubmode = 2
	WBQuantizedMedium WBSubmode = 3
	WBQuantizedHigh   WBSubmode = 4
)

// WBSubmodes lists every wideband high-layer submode in id order.
var WBSubmodes = []WBSubmode{WBNoQuantize, WBQuantizedLow, WBQuantizedMedium, WBQuantizedHigh}

func (s WBSubmode) Valid() bool { return s >= WBNoQuantize && s <= WBQuantizedHigh }

func (s WBSubmode) String() string {
	if sm, ok := engine.MustLookup(engine.WideBand).HighSubmode(int32(s)); ok {
		return sm.Name
	}
	return "wb-submode(" + strconv.Itoa(int(s)) + ")"
}

// UWBSubmode is the ultra-wideband high layer submode. It has one value.
type UWBSubmode int32

// UWBSubmodeOnly is the single ultra-wideband high-layer submode.
const UWBSubmodeOnly UWBSubmode = 1

func (s UWBSubmode) String() string {
	if s == UWBSubmodeOnly {
		return "only"
	}
	return "uwb-submode(" + strconv.Itoa(int(s)) + ")"
}
