// ABOUTME: Playback scheduling engine for sprite-backed notes
// ABOUTME: Turns resolved descriptors into voices and manages their lifecycle
package engine

import (
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/notesprite/notesprite-go/internal/render"
	"github.com/notesprite/notesprite-go/internal/sprite"
)

const (
	// DefaultDuration is the note length when none is requested, in seconds.
	DefaultDuration = 1.0

	// DefaultVolume is the note volume when none is requested.
	DefaultVolume = 0.6

	// fadeTimeConstant shapes the exponential fade to silence. Short enough
	// to feel immediate, long enough to avoid a discontinuity click.
	fadeTimeConstant = 0.05

	// stopGrace is how long after the fade begins the source is hard-stopped.
	// Six time constants, so the fade is inaudible rather than truncated.
	stopGrace = 0.3

	// releaseMargin pads the device-player teardown timer past the renderer's
	// own stop point.
	releaseMargin = 200 * time.Millisecond
)

// Output starts playback of a rendered voice stream and returns a handle that
// releases the device player when closed.
type Output interface {
	Play(r io.Reader) (io.Closer, error)
}

// NoteParams carries the optional parts of a note-on request.
type NoteParams struct {
	// ID names the voice so a later NoteOff can stop it. Required when Hold
	// is set, optional otherwise.
	ID string

	// Duration is the audible length in seconds. Zero means DefaultDuration.
	// Ignored when Hold is set.
	Duration float64

	// Hold sustains the note indefinitely until NoteOff.
	Hold bool

	// Volume in [0,1]. Zero means DefaultVolume.
	Volume float64

	// Delay in seconds before the note starts sounding.
	Delay float64
}

// Voice is one live playback instance: the renderer producing its frames and
// the device handle that releases it.
type Voice struct {
	VoiceID    string
	Instrument string
	Pitch      int

	renderer *render.Voice
	handle   io.Closer
}

// State returns the voice's lifecycle phase.
func (v *Voice) State() render.State { return v.renderer.State() }

// Engine owns the session's shared playback state: the decoded sprite asset,
// the instrument catalog, the audio output, and the registry of sustain
// voices. Construct one per session; all operations go through it.
type Engine struct {
	mu      sync.Mutex
	out     Output
	catalog *sprite.Catalog
	asset   *render.Asset
	voices  *Registry
}

// New creates an engine bound to an audio output. Notes are rejected with
// ErrNotLoaded until Load installs the sprite.
func New(out Output) *Engine {
	return &Engine{
		out:    out,
		voices: NewRegistry(),
	}
}

// Load installs the decoded sprite asset and its catalog, after which notes
// are accepted. The asset and catalog are treated as immutable from here on.
func (e *Engine) Load(asset *render.Asset, catalog *sprite.Catalog) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.asset = asset
	e.catalog = catalog
}

// Ready reports whether the sprite has been loaded.
func (e *Engine) Ready() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.asset != nil && e.catalog != nil
}

// NoteOn resolves the requested pitch to a sprite segment and starts a voice
// for it. Held notes are registered under params.ID for a later NoteOff;
// finite notes fade and stop on their own.
func (e *Engine) NoteOn(instrument string, pitch int, params NoteParams) error {
	e.mu.Lock()
	asset, catalog := e.asset, e.catalog
	e.mu.Unlock()

	if asset == nil || catalog == nil {
		return fmt.Errorf("%w: cannot play %s %d", ErrNotLoaded, instrument, pitch)
	}

	if params.Hold && params.ID == "" {
		return fmt.Errorf("%w: %s %d", ErrIdentifierRequired, instrument, pitch)
	}

	desc, err := catalog.Resolve(instrument, pitch)
	if err != nil {
		return err
	}

	duration := params.Duration
	if duration == 0 {
		duration = DefaultDuration
	}
	volume := params.Volume
	if volume == 0 {
		volume = DefaultVolume
	}

	// Sustain mode loops the segment: either held until NoteOff, or a finite
	// duration that outlives the natural segment when loop points exist.
	sustain := params.Hold || (duration > desc.SegmentDuration && desc.Loopable())
	if !sustain && duration > desc.SegmentDuration {
		duration = desc.SegmentDuration
	}

	rp := render.Params{
		Asset:            asset,
		SegmentStart:     desc.SegmentStart,
		SegmentDuration:  desc.SegmentDuration,
		DetuneCents:      desc.DetuneCents(pitch),
		Gain:             volume,
		Delay:            params.Delay,
		FadeTimeConstant: fadeTimeConstant,
		StopGrace:        stopGrace,
	}
	if sustain && desc.Loopable() {
		rp.Loop = true
		rp.LoopStart = *desc.LoopStart
		rp.LoopEnd = *desc.LoopEnd
	}
	if !params.Hold {
		rp.Duration = duration
	}

	renderer := render.NewVoice(rp)

	handle, err := e.out.Play(renderer)
	if err != nil {
		return fmt.Errorf("failed to start voice for %s %d: %w", instrument, pitch, err)
	}

	voice := &Voice{
		VoiceID:    uuid.New().String(),
		Instrument: instrument,
		Pitch:      pitch,
		renderer:   renderer,
		handle:     handle,
	}

	if params.Hold {
		e.voices.Register(params.ID, voice)
		log.Printf("NoteOn: %s %d held as %q (voice %s, detune %+d cents)",
			instrument, pitch, params.ID, voice.VoiceID, desc.DetuneCents(pitch))
		return nil
	}

	total := params.Delay + duration + stopGrace
	time.AfterFunc(secondsToDuration(total)+releaseMargin, func() {
		if err := handle.Close(); err != nil {
			log.Printf("NoteOn: error releasing voice %s: %v", voice.VoiceID, err)
		}
	})

	log.Printf("NoteOn: %s %d for %.2fs (voice %s, detune %+d cents)",
		instrument, pitch, duration, voice.VoiceID, desc.DetuneCents(pitch))
	return nil
}

// NoteOff stops the held voice registered under id. A missing id is an
// expected condition in event-driven usage (late or duplicate stops) and is
// logged rather than failed; the return value reports whether a voice was
// actually stopped.
func (e *Engine) NoteOff(id string) bool {
	voice, ok := e.voices.Lookup(id)
	if !ok {
		log.Printf("NoteOff: %q not active", id)
		return false
	}

	// The registry entry's lifetime ends now, not when the audio actually
	// stops: a second NoteOff during the fade reports not-active.
	e.voices.Remove(id)

	voice.renderer.Release()

	handle := voice.handle
	time.AfterFunc(secondsToDuration(stopGrace)+releaseMargin, func() {
		if err := handle.Close(); err != nil {
			log.Printf("NoteOff: error releasing voice %s: %v", voice.VoiceID, err)
		}
	})

	log.Printf("NoteOff: %q fading (voice %s)", id, voice.VoiceID)
	return true
}

// StopAll releases every registered voice, as on shutdown or panic.
func (e *Engine) StopAll() {
	for _, id := range e.voices.IDs() {
		e.NoteOff(id)
	}
}

// ActiveVoices returns the identifiers of currently registered voices.
func (e *Engine) ActiveVoices() []string {
	return e.voices.IDs()
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
