// ABOUTME: Sentinel errors for note scheduling
// ABOUTME: Configuration and readiness failures surfaced to NoteOn callers
package engine

import "errors"

var (
	// ErrNotLoaded is returned when a note arrives before the sprite asset
	// and catalog have been installed.
	ErrNotLoaded = errors.New("sprite not loaded")

	// ErrIdentifierRequired is returned when an indefinite-sustain note is
	// requested without an identifier; without one there is no way to stop it.
	ErrIdentifierRequired = errors.New("identifier required for held note")
)
