// ABOUTME: Sentinel errors for sprite and catalog loading
// ABOUTME: Separates unsupported input from malformed input
package loader

import "errors"

var (
	// ErrUnsupportedFormat is returned when the sprite audio container
	// cannot be identified as wav, mp3, flac, or ogg.
	ErrUnsupportedFormat = errors.New("unsupported sprite audio format")

	// ErrEmptySprite is returned when the decoded sprite holds no frames.
	ErrEmptySprite = errors.New("sprite audio contains no samples")
)
