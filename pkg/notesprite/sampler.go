// ABOUTME: High-level Sampler API for sprite-backed note playback
// ABOUTME: Wires the loader, audio output, and engine behind one type
package notesprite

import (
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/notesprite/notesprite-go/internal/engine"
	"github.com/notesprite/notesprite-go/internal/loader"
	"github.com/notesprite/notesprite-go/internal/render"
	"github.com/notesprite/notesprite-go/internal/sprite"
	"github.com/notesprite/notesprite-go/internal/version"
)

// Config holds sampler configuration
type Config struct {
	// Name is the display name for this sampler
	Name string

	// OnReady is called once the sprite finishes loading, with the
	// instrument names it provides
	OnReady func(instruments []string)

	// OnError is called when asynchronous errors occur
	OnError func(error)
}

// Note carries the optional parts of a note request.
type Note struct {
	// ID names the note so Stop can end it. Required when Hold is set.
	ID string

	// Duration is the audible length in seconds. Zero means the engine default.
	Duration float64

	// Hold sustains the note until Stop is called with its ID.
	Hold bool

	// Volume in [0,1]. Zero means the engine default.
	Volume float64

	// Delay in seconds before the note starts sounding.
	Delay float64
}

// audioOutput is the device surface the sampler drives.
type audioOutput interface {
	Initialize(sampleRate, channels int) error
	Play(r io.Reader) (io.Closer, error)
	Close() error
}

// Sampler provides high-level playback of pitched notes from an audio sprite
type Sampler struct {
	config Config

	// Components
	out    audioOutput
	engine *engine.Engine

	// State
	mu          sync.Mutex
	instruments []string
	loaded      bool
}

// New creates a sampler with the given configuration. Load must be called
// before notes can play.
func New(config Config) *Sampler {
	if config.Name == "" {
		config.Name = version.Product
	}

	out := render.NewOutput()

	return &Sampler{
		config: config,
		out:    out,
		engine: engine.New(out),
	}
}

// newWithOutput wires a custom audio output, for tests.
func newWithOutput(config Config, out audioOutput) *Sampler {
	if config.Name == "" {
		config.Name = version.Product
	}

	return &Sampler{
		config: config,
		out:    out,
		engine: engine.New(out),
	}
}

// Load decodes the sprite audio file and its catalog, opens the audio device
// in the sprite's format, and readies the engine.
func (s *Sampler) Load(spritePath, catalogPath string) error {
	asset, err := loader.LoadSprite(spritePath)
	if err != nil {
		return fmt.Errorf("failed to load sprite: %w", err)
	}

	catalog, err := loader.LoadCatalog(catalogPath)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	return s.install(asset, catalog)
}

// install binds a decoded asset and catalog to the engine.
func (s *Sampler) install(asset *render.Asset, catalog *sprite.Catalog) error {
	if err := s.out.Initialize(asset.SampleRate(), asset.Channels()); err != nil {
		return fmt.Errorf("failed to open audio output: %w", err)
	}

	s.engine.Load(asset, catalog)

	s.mu.Lock()
	s.instruments = catalog.Instruments()
	s.loaded = true
	instruments := s.instruments
	s.mu.Unlock()

	log.Printf("%s loaded sprite: %.2fs, %dHz, %d instruments",
		s.config.Name, asset.Duration(), asset.SampleRate(), len(instruments))

	if s.config.OnReady != nil {
		s.config.OnReady(instruments)
	}

	return nil
}

// Play starts a note on the given instrument at the given pitch.
func (s *Sampler) Play(instrument string, pitch int, note Note) error {
	err := s.engine.NoteOn(instrument, pitch, engine.NoteParams{
		ID:       note.ID,
		Duration: note.Duration,
		Hold:     note.Hold,
		Volume:   note.Volume,
		Delay:    note.Delay,
	})
	if err != nil {
		s.notifyError(err)
		return err
	}
	return nil
}

// Stop ends the held note registered under id. It reports whether a note was
// actually stopped; stopping an unknown id is a no-op.
func (s *Sampler) Stop(id string) bool {
	return s.engine.NoteOff(id)
}

// Ready reports whether the sprite has been loaded.
func (s *Sampler) Ready() bool {
	return s.engine.Ready()
}

// Instruments returns the loaded catalog's instrument names.
func (s *Sampler) Instruments() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.instruments
}

// ActiveNotes returns the identifiers of currently held notes.
func (s *Sampler) ActiveNotes() []string {
	return s.engine.ActiveVoices()
}

// Close stops all held notes and releases the audio device.
func (s *Sampler) Close() error {
	s.engine.StopAll()
	return s.out.Close()
}

// notifyError calls the OnError callback if set
func (s *Sampler) notifyError(err error) {
	if s.config.OnError != nil {
		s.config.OnError(err)
	}
}
