// ABOUTME: Audio output using oto library
// ABOUTME: One oto player per voice; oto performs the mixing
package render

import (
	"fmt"
	"io"
	"log"

	"github.com/ebitengine/oto/v3"
)

// Output manages the audio device. Each voice gets its own oto player pulling
// from a Voice reader; the oto context mixes them.
type Output struct {
	otoCtx *oto.Context
	ready  bool
}

// NewOutput creates an uninitialized audio output.
func NewOutput() *Output {
	return &Output{}
}

// Initialize sets up oto for the sprite asset's format. Must complete before
// any voice can start.
func (o *Output) Initialize(sampleRate, channels int) error {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return fmt.Errorf("failed to create oto context: %w", err)
	}

	<-readyChan

	o.otoCtx = ctx
	o.ready = true

	log.Printf("Audio output initialized: %dHz, %d channels", sampleRate, channels)

	return nil
}

// Play starts pulling frames from r on the audio device and returns a handle
// that releases the underlying player when closed.
func (o *Output) Play(r io.Reader) (io.Closer, error) {
	if !o.ready {
		return nil, fmt.Errorf("output not initialized")
	}

	player := o.otoCtx.NewPlayer(r)
	player.Play()

	return player, nil
}

// Close suspends the audio device.
func (o *Output) Close() error {
	if o.otoCtx != nil {
		o.ready = false
		return o.otoCtx.Suspend()
	}
	return nil
}
