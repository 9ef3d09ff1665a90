// SPDX-License-Identifier: EPL-2.0

// Package header reads and writes the 80-byte stream header that opens a
// Speex stream.
//
// A header is built from a mode and a sample rate:
//
//	h := header.New(16000, 1, engine.WideBand).WithVBR(true)
//	packet, _ := h.MarshalBinary()
//
// and recovered from the first packet of a stream:
//
//	h, err := header.Parse(packet)
//	if errors.Is(err, header.ErrNotSpeexHeader) {
//		// not a speex stream
//	}
//
// The mode in a parsed header selects the coder, for instance through
// coder.NewDynamicDecoder.
package header
