// SPDX-License-Identifier: EPL-2.0

// Package audio turns PCM streams into coder frames.
//
// Every stage is a Source: a pull-based stream of interleaved float32
// samples in [-1, 1]. Stages wrap each other and Close propagates down the
// chain.
//
//	src := audio.Prepare(input, 16000)      // resample, then mix to mono
//	frames := audio.NewFrameReader(src, 320)
//	frame := make([]int16, 320)
//	for frames.ReadIntFrame(frame) == nil {
//		enc.EncodeInt(frame, buf)
//	}
//
// # Resampling
//
// Resampler uses Catmull-Rom interpolation over four source frames. Its
// position is kept as an integer fraction of the two rates, so output
// length never drifts. Downsampling runs a one-pole low-pass first.
//
// # Frames
//
// FrameReader hands out fixed-size frames, either as int16 or as float32
// in 16-bit scale, padding the last one with silence.
//
// # go-audio
//
// FromIntBuffer and ToIntBuffer bridge to github.com/go-audio/audio
// buffers, so decoded speech can go straight to a go-audio encoder.
//
// # End of stream
//
// ReadSamples may return io.EOF together with the final samples. A read
// that returns 0 and io.EOF means the stream is done.
package audio
