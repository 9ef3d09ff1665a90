// SPDX-License-Identifier: EPL-2.0

// Package speexrtp carries coded frames in RTP packets using the Speex
// payload format of RFC 5574.
//
// A payload is one or more frames of the same mode written back to back and
// padded to a byte with the bit buffer terminator. The receiver needs no
// frame count: decoding stops at coder.ErrEndOfStream.
//
// # Sending
//
//	p := speexrtp.NewPacketizer(engine.WideBand, 97, ssrc, speexrtp.FramesPerPacket(2))
//	for frame := range frames {
//		if err := enc.EncodeInt(frame, buf); err != nil {
//			return err
//		}
//		pkt, err := p.Push(buf)
//		if err != nil {
//			return err
//		}
//		if pkt != nil {
//			send(pkt)
//		}
//	}
//
// # Receiving
//
// Depacketizer.Feed loads the payload into a bit buffer and reports packets
// lost since the previous one, so the caller can conceal them.
package speexrtp
