// ABOUTME: Sentinel errors for catalog lookup and resolution
// ABOUTME: Distinguishes configuration errors from data-quality conditions
package sprite

import "errors"

var (
	// ErrUnknownInstrument is returned when the catalog has no entry for the
	// requested instrument name.
	ErrUnknownInstrument = errors.New("unknown instrument")

	// ErrEmptyCatalog is returned when an instrument exists but has no
	// descriptors to resolve against.
	ErrEmptyCatalog = errors.New("instrument has no sampled notes")
)
