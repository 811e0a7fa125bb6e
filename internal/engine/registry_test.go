// ABOUTME: Tests for the voice registry
// ABOUTME: Verifies overwrite, lookup, and idempotent removal semantics
package engine

import "testing"

func TestRegistryRegisterAndLookup(t *testing.T) {
	r := NewRegistry()

	v := &Voice{VoiceID: "v1"}
	r.Register("a", v)

	got, ok := r.Lookup("a")
	if !ok || got != v {
		t.Errorf("Lookup(a) = %v, %v; want registered voice", got, ok)
	}

	if _, ok := r.Lookup("b"); ok {
		t.Error("Lookup(b) found a voice that was never registered")
	}
}

func TestRegistryOverwrite(t *testing.T) {
	r := NewRegistry()

	first := &Voice{VoiceID: "v1"}
	second := &Voice{VoiceID: "v2"}
	r.Register("a", first)
	r.Register("a", second)

	got, ok := r.Lookup("a")
	if !ok || got != second {
		t.Errorf("Lookup(a) after reuse = %v, want the second voice", got)
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
}

func TestRegistryRemoveIdempotent(t *testing.T) {
	r := NewRegistry()

	r.Register("a", &Voice{VoiceID: "v1"})
	r.Remove("a")
	r.Remove("a") // absent, must not panic

	if r.Len() != 0 {
		t.Errorf("Len() = %d, want 0", r.Len())
	}
}
