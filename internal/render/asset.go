// ABOUTME: Decoded sprite audio asset
// ABOUTME: Shared read-only PCM buffer addressed by seconds offsets
package render

// Asset is the decoded, continuous waveform backing every instrument's
// segments. One instance per session, referenced by all voices and never
// mutated after load.
type Asset struct {
	samples    []float32 // interleaved
	sampleRate int
	channels   int
}

// NewAsset wraps decoded interleaved PCM. The sample slice is owned by the
// asset after the call.
func NewAsset(samples []float32, sampleRate, channels int) *Asset {
	if channels < 1 {
		channels = 1
	}
	return &Asset{
		samples:    samples,
		sampleRate: sampleRate,
		channels:   channels,
	}
}

// SampleRate returns the asset's sample rate in Hz.
func (a *Asset) SampleRate() int { return a.sampleRate }

// Channels returns the asset's channel count.
func (a *Asset) Channels() int { return a.channels }

// Frames returns the number of sample frames in the asset.
func (a *Asset) Frames() int { return len(a.samples) / a.channels }

// Duration returns the asset length in seconds.
func (a *Asset) Duration() float64 {
	return float64(a.Frames()) / float64(a.sampleRate)
}

// at returns the sample for a frame and channel, zero outside the asset.
func (a *Asset) at(frame, ch int) float32 {
	if frame < 0 || frame >= a.Frames() {
		return 0
	}
	return a.samples[frame*a.channels+ch]
}
