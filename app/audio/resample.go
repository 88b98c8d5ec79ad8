package audio

import "fmt"

// TargetRate is the sample rate every dictation clip is resampled to
// before concatenation.
const TargetRate = 48000

// Downmix averages interleaved channels into a mono signal.
func Downmix(p *PCM) []float64 {
	if p.Channels <= 1 {
		return p.Samples
	}

	frames := len(p.Samples) / p.Channels
	out := make([]float64, frames)
	for i := 0; i < frames; i++ {
		var sum float64
		for c := 0; c < p.Channels; c++ {
			sum += p.Samples[i*p.Channels+c]
		}
		out[i] = sum / float64(p.Channels)
	}
	return out
}

// Resample converts mono samples from srcRate to dstRate by linear
// interpolation. Output length is the input duration at the new rate,
// rounded to the nearest frame.
func Resample(samples []float64, srcRate, dstRate int) []float64 {
	if srcRate == dstRate || len(samples) == 0 {
		out := make([]float64, len(samples))
		copy(out, samples)
		return out
	}

	n := int(float64(len(samples))*float64(dstRate)/float64(srcRate) + 0.5)
	out := make([]float64, n)
	ratio := float64(srcRate) / float64(dstRate)

	for i := 0; i < n; i++ {
		pos := float64(i) * ratio
		j := int(pos)
		if j >= len(samples)-1 {
			out[i] = samples[len(samples)-1]
			continue
		}
		frac := pos - float64(j)
		out[i] = samples[j]*(1-frac) + samples[j+1]*frac
	}
	return out
}

// MergeClips decodes each WAV clip in order, downmixes to mono,
// resamples to TargetRate and concatenates the results into one 16-bit
// PCM WAV. Clips are processed one at a time to bound memory. An empty
// list is ErrNoClips, never a silent empty file.
func MergeClips(clips [][]byte) ([]byte, error) {
	if len(clips) == 0 {
		return nil, ErrNoClips
	}

	var merged []float64
	for i, clip := range clips {
		pcm, err := DecodeWAV(clip)
		if err != nil {
			return nil, fmt.Errorf("clip %d: %w", i+1, err)
		}
		mono := Downmix(pcm)
		merged = append(merged, Resample(mono, pcm.SampleRate, TargetRate)...)
	}

	return EncodeWAV(merged, TargetRate, 1), nil
}
