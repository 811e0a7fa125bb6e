// ABOUTME: Integration tests for the Sampler API
// ABOUTME: Tests configuration, loading, and note lifecycle with a fake output
package notesprite

import (
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/notesprite/notesprite-go/internal/render"
	"github.com/notesprite/notesprite-go/internal/sprite"
)

// fakeOutput stands in for the audio device.
type fakeOutput struct {
	mu          sync.Mutex
	initialized bool
	sampleRate  int
	channels    int
	plays       int
	closed      bool
}

func (f *fakeOutput) Initialize(sampleRate, channels int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.initialized = true
	f.sampleRate = sampleRate
	f.channels = channels
	return nil
}

func (f *fakeOutput) Play(r io.Reader) (io.Closer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.plays++
	return io.NopCloser(nil), nil
}

func (f *fakeOutput) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func testAsset() *render.Asset {
	samples := make([]float32, 8000)
	for i := range samples {
		samples[i] = 0.25
	}
	return render.NewAsset(samples, 8000, 1)
}

func testCatalog() *sprite.Catalog {
	return sprite.NewCatalog(map[string][]sprite.Descriptor{
		"guitar": {
			{SampledPitch: 60, RangeStart: 48, RangeEnd: 72, SegmentStart: 0, SegmentDuration: 1},
		},
	})
}

func loadedSampler(t *testing.T) (*Sampler, *fakeOutput) {
	t.Helper()

	out := &fakeOutput{}
	s := newWithOutput(Config{Name: "test"}, out)

	if err := s.install(testAsset(), testCatalog()); err != nil {
		t.Fatalf("install failed: %v", err)
	}

	return s, out
}

func TestNewDefaults(t *testing.T) {
	s := New(Config{})

	if s.config.Name == "" {
		t.Error("expected default Name to be set")
	}

	if s.Ready() {
		t.Error("expected not ready before Load")
	}
}

func TestLoadInitializesOutput(t *testing.T) {
	var readyInstruments []string

	out := &fakeOutput{}
	s := newWithOutput(Config{
		OnReady: func(instruments []string) { readyInstruments = instruments },
	}, out)

	if err := s.install(testAsset(), testCatalog()); err != nil {
		t.Fatalf("install failed: %v", err)
	}

	if !out.initialized {
		t.Error("expected output to be initialized")
	}
	if out.sampleRate != 8000 || out.channels != 1 {
		t.Errorf("output format = %dHz/%dch, want 8000Hz/1ch", out.sampleRate, out.channels)
	}

	if !s.Ready() {
		t.Error("expected ready after install")
	}

	if len(readyInstruments) != 1 || readyInstruments[0] != "guitar" {
		t.Errorf("OnReady instruments = %v, want [guitar]", readyInstruments)
	}
}

func TestPlayBeforeLoad(t *testing.T) {
	var gotErr error

	out := &fakeOutput{}
	s := newWithOutput(Config{
		OnError: func(err error) { gotErr = err },
	}, out)

	if err := s.Play("guitar", 60, Note{}); err == nil {
		t.Fatal("expected error before load")
	}

	if gotErr == nil {
		t.Error("expected OnError callback")
	}
}

func TestPlayFiniteNote(t *testing.T) {
	s, out := loadedSampler(t)

	if err := s.Play("guitar", 60, Note{Duration: 0.5}); err != nil {
		t.Fatalf("play failed: %v", err)
	}

	if out.plays != 1 {
		t.Errorf("plays = %d, want 1", out.plays)
	}

	if len(s.ActiveNotes()) != 0 {
		t.Error("finite note should not be held")
	}
}

func TestHeldNoteLifecycle(t *testing.T) {
	s, _ := loadedSampler(t)

	if err := s.Play("guitar", 64, Note{ID: "n1", Hold: true}); err != nil {
		t.Fatalf("play failed: %v", err)
	}

	if len(s.ActiveNotes()) != 1 {
		t.Fatalf("active notes = %d, want 1", len(s.ActiveNotes()))
	}

	if !s.Stop("n1") {
		t.Error("expected Stop to report a stopped note")
	}

	if len(s.ActiveNotes()) != 0 {
		t.Error("note should be gone after Stop")
	}

	if s.Stop("n1") {
		t.Error("second Stop should report nothing stopped")
	}
}

func TestPlayUnknownInstrument(t *testing.T) {
	s, _ := loadedSampler(t)

	err := s.Play("bagpipes", 60, Note{})
	if !errors.Is(err, sprite.ErrUnknownInstrument) {
		t.Errorf("err = %v, want ErrUnknownInstrument", err)
	}
}

func TestInstruments(t *testing.T) {
	s, _ := loadedSampler(t)

	got := s.Instruments()
	if len(got) != 1 || got[0] != "guitar" {
		t.Errorf("instruments = %v, want [guitar]", got)
	}
}

func TestClose(t *testing.T) {
	s, out := loadedSampler(t)

	if err := s.Play("guitar", 64, Note{ID: "n1", Hold: true}); err != nil {
		t.Fatalf("play failed: %v", err)
	}

	if err := s.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	if !out.closed {
		t.Error("expected output to be closed")
	}

	if len(s.ActiveNotes()) != 0 {
		t.Error("held notes should be stopped on close")
	}
}
