// SPDX-License-Identifier: EPL-2.0

package engine

import "strconv"

// Request is a control opcode. Values follow the Speex numbering so that a
// binding can forward them unchanged.
type Request int32

const (
	SetEnhancement     Request = 0
	GetEnhancement     Request = 1
	GetFrameSize       Request = 3
	SetQuality         Request = 4
	SetMode            Request = 6
	GetMode            Request = 7
	SetLowMode         Request = 8
	GetLowMode         Request = 9
	SetHighMode        Request = 10
	GetHighMode        Request = 11
	SetVBR             Request = 12
	GetVBR             Request = 13
	SetVBRQuality      Request = 14
	GetVBRQuality      Request = 15
	SetComplexity      Request = 16
	GetComplexity      Request = 17
	SetBitrate         Request = 18
	GetBitrate         Request = 19
	SetSamplingRate    Request = 24
	GetSamplingRate    Request = 25
	ResetState         Request = 26
	GetRelativeQuality Request = 29
	SetVAD             Request = 30
	GetVAD             Request = 31
	SetABR             Request = 32
	GetABR             Request = 33
	SetDTX             Request = 34
	GetDTX             Request = 35
	SetSubmodeEncoding Request = 36
	GetSubmodeEncoding Request = 37
	GetLookahead       Request = 39
	SetPLCTuning       Request = 40
	GetPLCTuning       Request = 41
	SetVBRMaxBitrate   Request = 42
	GetVBRMaxBitrate   Request = 43
	SetHighpass        Request = 44
	GetHighpass        Request = 45
	GetActivity        Request = 47
)

var requestNames = map[Request]string{
	SetEnhancement:     "SET_ENH",
	GetEnhancement:     "GET_ENH",
	GetFrameSize:       "GET_FRAME_SIZE",
	SetQuality:         "SET_QUALITY",
	SetMode:            "SET_MODE",
	GetMode:            "GET_MODE",
	SetLowMode:         "SET_LOW_MODE",
	GetLowMode:         "GET_LOW_MODE",
	SetHighMode:        "SET_HIGH_MODE",
	GetHighMode:        "GET_HIGH_MODE",
	SetVBR:             "SET_VBR",
	GetVBR:             "GET_VBR",
	SetVBRQuality:      "SET_VBR_QUALITY",
	GetVBRQuality:      "GET_VBR_QUALITY",
	SetComplexity:      "SET_COMPLEXITY",
	GetComplexity:      "GET_COMPLEXITY",
	SetBitrate:         "SET_BITRATE",
	GetBitrate:         "GET_BITRATE",
	SetSamplingRate:    "SET_SAMPLING_RATE",
	GetSamplingRate:    "GET_SAMPLING_RATE",
	ResetState:         "RESET_STATE",
	GetRelativeQuality: "GET_RELATIVE_QUALITY",
	SetVAD:             "SET_VAD",
	GetVAD:             "GET_VAD",
	SetABR:             "SET_ABR",
	GetABR:             "GET_ABR",
	SetDTX:             "SET_DTX",
	GetDTX:             "GET_DTX",
	SetSubmodeEncoding: "SET_SUBMODE_ENCODING",
	GetSubmodeEncoding: "GET_SUBMODE_ENCODING",
	GetLookahead:       "GET_LOOKAHEAD",
	SetPLCTuning:       "SET_PLC_TUNING",
	GetPLCTuning:       "GET_PLC_TUNING",
	SetVBRMaxBitrate:   "SET_VBR_MAX_BITRATE",
	GetVBRMaxBitrate:   "GET_VBR_MAX_BITRATE",
	SetHighpass:        "SET_HIGHPASS",
	GetHighpass:        "GET_HIGHPASS",
	GetActivity:        "GET_ACTIVITY",
}

func (r Request) String() string {
	if name, ok := requestNames[r]; ok {
		return name
	}
	return "REQUEST(" + strconv.Itoa(int(r)) + ")"
}
