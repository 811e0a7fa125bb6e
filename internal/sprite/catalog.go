// ABOUTME: Immutable per-instrument table of sampled note descriptors
// ABOUTME: Provides lookup by instrument name for the range resolver
package sprite

import (
	"fmt"
	"log"
	"sort"
)

// Catalog maps instrument names to their descriptor sequences, each sorted
// ascending by range start. Immutable after construction; the loader builds
// one per session and every resolution reads it concurrently.
type Catalog struct {
	instruments map[string][]Descriptor
}

// NewCatalog builds a catalog from pre-sorted descriptor sequences. The sort
// order is assumed from the loader; NewCatalog re-sorts defensively only when
// a sequence arrives out of order, logging the anomaly since it signals a
// malformed sprite map.
func NewCatalog(instruments map[string][]Descriptor) *Catalog {
	c := &Catalog{instruments: make(map[string][]Descriptor, len(instruments))}

	for name, descs := range instruments {
		owned := make([]Descriptor, len(descs))
		copy(owned, descs)

		if !sort.SliceIsSorted(owned, func(i, j int) bool {
			return owned[i].RangeStart < owned[j].RangeStart
		}) {
			log.Printf("Catalog: descriptors for %q arrived unsorted, re-sorting", name)
			sort.Slice(owned, func(i, j int) bool {
				return owned[i].RangeStart < owned[j].RangeStart
			})
		}

		c.instruments[name] = owned
	}

	return c
}

// Instruments returns the catalog's instrument names, sorted.
func (c *Catalog) Instruments() []string {
	names := make([]string, 0, len(c.instruments))
	for name := range c.instruments {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Descriptors returns the descriptor sequence for an instrument.
func (c *Catalog) Descriptors(instrument string) ([]Descriptor, error) {
	descs, ok := c.instruments[instrument]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownInstrument, instrument)
	}
	return descs, nil
}
