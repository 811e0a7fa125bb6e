// ABOUTME: Parses the sprite catalog JSON into an instrument catalog
// ABOUTME: Validates descriptors and warns about data-quality issues
package loader

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/notesprite/notesprite-go/internal/sprite"
)

// LoadCatalog reads and parses the catalog JSON file at path.
func LoadCatalog(path string) (*sprite.Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()

	return ParseCatalog(f)
}

// ParseCatalog parses catalog JSON from r: a mapping from instrument name to
// an array of descriptors pre-sorted by range start. Hard validation covers
// only what would break playback; coverage gaps are tolerated and merely
// logged, since resolution degrades gracefully.
func ParseCatalog(r io.Reader) (*sprite.Catalog, error) {
	var instruments map[string][]sprite.Descriptor
	if err := json.NewDecoder(r).Decode(&instruments); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	for name, descs := range instruments {
		for i, d := range descs {
			if err := validateDescriptor(d); err != nil {
				return nil, fmt.Errorf("catalog %q descriptor %d: %w", name, i, err)
			}
		}
		warnAboutGaps(name, descs)
	}

	return sprite.NewCatalog(instruments), nil
}

func validateDescriptor(d sprite.Descriptor) error {
	if d.SampledPitch < sprite.MinPitch || d.SampledPitch > sprite.MaxPitch {
		return fmt.Errorf("sampled pitch %d outside [%d,%d]", d.SampledPitch, sprite.MinPitch, sprite.MaxPitch)
	}
	if d.RangeStart > d.RangeEnd {
		return fmt.Errorf("range [%d,%d] is inverted", d.RangeStart, d.RangeEnd)
	}
	if d.SegmentStart < 0 || d.SegmentDuration <= 0 {
		return fmt.Errorf("segment start %.3f / duration %.3f invalid", d.SegmentStart, d.SegmentDuration)
	}
	if (d.LoopStart == nil) != (d.LoopEnd == nil) {
		return fmt.Errorf("loop region must define both ends")
	}
	if d.Loopable() {
		segEnd := d.SegmentStart + d.SegmentDuration
		if *d.LoopStart < d.SegmentStart || *d.LoopEnd > segEnd || *d.LoopStart >= *d.LoopEnd {
			return fmt.Errorf("loop region [%.3f,%.3f] outside segment [%.3f,%.3f]",
				*d.LoopStart, *d.LoopEnd, d.SegmentStart, segEnd)
		}
	}
	return nil
}

// warnAboutGaps flags interior pitch-coverage gaps. Boundary gaps are normal
// (the resolver widens the edge descriptors); interior ones usually mean a
// mis-authored sprite map.
func warnAboutGaps(name string, descs []sprite.Descriptor) {
	for i := 1; i < len(descs); i++ {
		prev, cur := descs[i-1], descs[i]
		if cur.RangeStart > prev.RangeEnd+1 {
			log.Printf("Catalog: %q leaves pitches %d-%d uncovered", name, prev.RangeEnd+1, cur.RangeStart-1)
		}
		if cur.RangeStart <= prev.RangeEnd {
			log.Printf("Catalog: %q ranges [%d,%d] and [%d,%d] overlap",
				name, prev.RangeStart, prev.RangeEnd, cur.RangeStart, cur.RangeEnd)
		}
	}
}
