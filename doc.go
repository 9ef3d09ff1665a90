// SPDX-License-Identifier: EPL-2.0

// Package speex is a safe layer over a Speex speech coder engine.
//
// The engine, the numeric codec, sits behind the interfaces of package
// engine. Everything above it is plain Go:
//
//   - bits: the packed bit buffer frames are written to and read from
//   - coder: encoders and decoders with typed control requests
//   - header: the 80-byte stream header
//   - config: YAML settings applied to coders
//   - speexrtp: the RTP payload format
//   - audio: PCM sources, resampling and framing
//
// This package ties them into pipelines.
//
// # Encoding
//
//	enc, err := coder.NewWBEncoder(eng)
//	if err != nil {
//		return err
//	}
//	defer enc.Close()
//
//	packets, err := speex.Encode(ctx, enc, src)
//
// The source is resampled and mixed down to the encoder's mode. EncodeTo
// streams packets instead of collecting them and can put several frames in
// one packet.
//
// # Decoding
//
//	pcm, err := speex.Decode(dec, packets)
//
// DecodeToIntBuffer returns a go-audio IntBuffer instead.
//
// # Many streams
//
// EncodeStreams encodes sources concurrently, one encoder per source, all
// configured from the same config.Settings.
package speex
