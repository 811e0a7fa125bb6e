// ABOUTME: Maps a requested pitch to the nearest sampled sprite segment
// ABOUTME: Binary search over sorted ranges with boundary widening at the extremes
package sprite

import (
	"fmt"
	"log"
	"sort"
)

// Resolve finds the descriptor covering pitch for the named instrument.
//
// The normal path is a binary search over the instrument's sorted, disjoint
// ranges. Pitches below the first range or above the last return a copy of
// the boundary descriptor with its range widened to the edge of the pitch
// domain, so a catalog that only samples the middle of the keyboard still
// answers for every pitch in [MinPitch, MaxPitch]. An interior gap between
// two ranges should not occur in well-formed data; it falls back to a linear
// nearest-sample scan and logs a data-quality warning.
func (c *Catalog) Resolve(instrument string, pitch int) (Descriptor, error) {
	descs, err := c.Descriptors(instrument)
	if err != nil {
		return Descriptor{}, err
	}
	if len(descs) == 0 {
		return Descriptor{}, fmt.Errorf("%w: %q", ErrEmptyCatalog, instrument)
	}

	// First descriptor whose range does not end below pitch. Ranges are
	// disjoint, so if any range contains pitch it is this one.
	i := sort.Search(len(descs), func(i int) bool {
		return descs[i].RangeEnd >= pitch
	})

	if i < len(descs) && descs[i].Contains(pitch) {
		return descs[i], nil
	}

	if pitch < descs[0].RangeStart {
		d := descs[0]
		d.RangeStart = MinPitch
		return d, nil
	}

	if pitch > descs[len(descs)-1].RangeEnd {
		d := descs[len(descs)-1]
		d.RangeEnd = MaxPitch
		return d, nil
	}

	// Interior gap: malformed catalog. Degrade to the descriptor whose
	// recording is closest in pitch rather than refusing to play.
	log.Printf("Resolve: pitch %d falls in a gap of %q catalog, using nearest sample", pitch, instrument)

	best := descs[0]
	bestDist := absInt(pitch - best.SampledPitch)
	for _, d := range descs[1:] {
		if dist := absInt(pitch - d.SampledPitch); dist < bestDist {
			best = d
			bestDist = dist
		}
	}
	return best, nil
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
