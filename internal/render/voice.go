// ABOUTME: Per-voice sample renderer with detune, loop, and gain envelope
// ABOUTME: Implements io.Reader so the output mixer can pull int16 frames
package render

import (
	"io"
	"math"
	"sync"
	"sync/atomic"
)

// State is the lifecycle phase of a voice.
type State int32

const (
	StateScheduled State = iota // delay frames still being rendered
	StateSounding
	StateFadingOut
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateScheduled:
		return "scheduled"
	case StateSounding:
		return "sounding"
	case StateFadingOut:
		return "fading"
	case StateStopped:
		return "stopped"
	}
	return "unknown"
}

// Params configures a voice renderer. All offsets and durations are seconds.
type Params struct {
	Asset *Asset

	SegmentStart    float64
	SegmentDuration float64

	// Sustain loop region, used when Loop is set.
	Loop      bool
	LoopStart float64
	LoopEnd   float64

	DetuneCents int
	Gain        float64

	// Delay before the segment starts sounding, rendered as silence so the
	// start lands on the audio clock rather than the wall clock.
	Delay float64

	// Duration of audible playback before the fade begins. Zero or negative
	// means indefinite: the voice sounds until Release is called.
	Duration float64

	// Fade envelope shape.
	FadeTimeConstant float64
	StopGrace        float64
}

// Voice renders one playback instance of a sprite segment. It reads from the
// shared asset at a fractional cursor advanced by the detune rate, applies a
// one-pole exponential gain envelope, and reports io.EOF once the scheduled
// stop point has passed so the mixer releases it.
type Voice struct {
	asset    *Asset
	channels int

	rate    float64 // asset frames per output frame
	cursor  float64 // asset frame position
	segEnd  float64 // asset frames
	loop    bool
	loopBeg float64
	loopLen float64

	baseGain float64
	gain     float64 // envelope level, approaches target
	target   float64
	decay    float64 // per-frame envelope coefficient

	pos         int64 // output frames produced
	delayFrames int64
	fadeAt      int64 // -1 when no fade is scheduled
	stopAt      int64 // -1 when no stop is scheduled

	graceFrames int64

	state atomic.Int32
	mu    sync.Mutex
}

// NewVoice builds a voice renderer from playback parameters.
func NewVoice(p Params) *Voice {
	sr := float64(p.Asset.SampleRate())

	v := &Voice{
		asset:       p.Asset,
		channels:    p.Asset.Channels(),
		rate:        math.Pow(2, float64(p.DetuneCents)/1200),
		cursor:      p.SegmentStart * sr,
		segEnd:      (p.SegmentStart + p.SegmentDuration) * sr,
		baseGain:    p.Gain,
		gain:        1,
		target:      1,
		decay:       math.Exp(-1 / (p.FadeTimeConstant * sr)),
		delayFrames: int64(p.Delay * sr),
		fadeAt:      -1,
		stopAt:      -1,
		graceFrames: int64(p.StopGrace * sr),
	}

	if p.Loop {
		v.loop = true
		v.loopBeg = p.LoopStart * sr
		v.loopLen = (p.LoopEnd - p.LoopStart) * sr
	}

	if p.Duration > 0 {
		v.fadeAt = v.delayFrames + int64(p.Duration*sr)
		v.stopAt = v.fadeAt + v.graceFrames
	}

	return v
}

// State returns the voice's current lifecycle phase.
func (v *Voice) State() State {
	return State(v.state.Load())
}

// Release schedules an immediate fade to silence and a hard stop after the
// grace padding. Any previously scheduled fade is superseded. Safe to call
// concurrently with Read and idempotent once stopped.
func (v *Voice) Release() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.State() == StateStopped {
		return
	}
	v.fadeAt = v.pos
	v.stopAt = v.pos + v.graceFrames
}

// Read renders little-endian int16 interleaved frames. It returns io.EOF at
// the scheduled stop point; the trailing fade keeps the cut inaudible.
func (v *Voice) Read(p []byte) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	frameBytes := v.channels * 2
	frames := len(p) / frameBytes
	written := 0

	for i := 0; i < frames; i++ {
		if v.stopAt >= 0 && v.pos >= v.stopAt {
			v.state.Store(int32(StateStopped))
			if written == 0 {
				return 0, io.EOF
			}
			return written, io.EOF
		}

		if v.pos < v.delayFrames {
			for ch := 0; ch < v.channels; ch++ {
				off := written + ch*2
				p[off] = 0
				p[off+1] = 0
			}
			v.pos++
			written += frameBytes
			continue
		}

		if v.fadeAt >= 0 && v.pos >= v.fadeAt {
			v.target = 0
			v.state.Store(int32(StateFadingOut))
		} else {
			v.state.Store(int32(StateSounding))
		}

		// One-pole approach toward the target, setTargetAtTime-style.
		v.gain = v.target + (v.gain-v.target)*v.decay

		base := math.Floor(v.cursor)
		frac := float32(v.cursor - base)
		fi := int(base)

		level := float32(v.baseGain * v.gain)
		for ch := 0; ch < v.channels; ch++ {
			var s float32
			if v.cursor < v.segEnd {
				s = cubicInterpolate(
					v.asset.at(fi-1, ch),
					v.asset.at(fi, ch),
					v.asset.at(fi+1, ch),
					v.asset.at(fi+2, ch),
					frac,
				) * level
			}
			off := written + ch*2
			iv := sampleToInt16(s)
			p[off] = byte(iv)
			p[off+1] = byte(iv >> 8)
		}

		v.cursor += v.rate
		if v.loop && v.cursor >= v.loopBeg+v.loopLen {
			v.cursor -= v.loopLen
		}

		v.pos++
		written += frameBytes
	}

	return written, nil
}

// sampleToInt16 clamps and converts a float sample to int16.
func sampleToInt16(s float32) int16 {
	if s > 1 {
		s = 1
	} else if s < -1 {
		s = -1
	}
	return int16(s * 32767)
}
