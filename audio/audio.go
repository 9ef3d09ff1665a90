// SPDX-License-Identifier: EPL-2.0

package audio

// Source is a stream of interleaved PCM samples normalized to [-1, 1].
type Source interface {
	// SampleRate of the stream in Hz.
	SampleRate() int

	// Channels per frame (1=mono, 2=stereo).
	Channels() int

	// ReadSamples fills dst with whole frames and returns the number of
	// samples written, not frames. io.EOF may come with the last samples;
	// n == 0 with io.EOF means the stream is finished.
	ReadSamples(dst []float32) (n int, err error)

	// Close releases the source and any source it reads from.
	Close() error
}

// Prepare adapts src to a coder's input: resampled to rate and mixed down
// to mono. Stages that would do nothing are left out.
func Prepare(src Source, rate int) Source {
	if src.SampleRate() != rate {
		src = NewResampler(src, rate)
	}
	if src.Channels() != 1 {
		src = NewMonoMixer(src)
	}
	return src
}
