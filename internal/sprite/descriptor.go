// ABOUTME: Sampled note descriptor type
// ABOUTME: Locates one recorded segment inside the sprite and its pitch range
package sprite

// Pitch bounds of the representable note domain.
const (
	MinPitch = 0
	MaxPitch = 127
)

// Descriptor describes one sampled segment of the sprite for one instrument.
// SampledPitch is the pitch of the actual recording and serves as the
// zero-detune reference; [RangeStart, RangeEnd] is the inclusive pitch range
// this segment answers for.
type Descriptor struct {
	SampledPitch int `json:"pitch"`
	RangeStart   int `json:"range_start"`
	RangeEnd     int `json:"range_end"`

	// Offsets into the sprite, in seconds.
	SegmentStart    float64 `json:"segment_start"`
	SegmentDuration float64 `json:"segment_duration"`

	// Optional sustain loop region within the segment. Both are set for
	// segments meant to sustain indefinitely, neither otherwise.
	LoopStart *float64 `json:"loop_start,omitempty"`
	LoopEnd   *float64 `json:"loop_end,omitempty"`
}

// Contains reports whether pitch falls inside the descriptor's range.
func (d Descriptor) Contains(pitch int) bool {
	return pitch >= d.RangeStart && pitch <= d.RangeEnd
}

// Loopable reports whether the descriptor defines a sustain loop region.
func (d Descriptor) Loopable() bool {
	return d.LoopStart != nil && d.LoopEnd != nil
}

// DetuneCents returns the pitch shift in cents needed to play the requested
// pitch from this descriptor's recording.
func (d Descriptor) DetuneCents(pitch int) int {
	return (pitch - d.SampledPitch) * 100
}
