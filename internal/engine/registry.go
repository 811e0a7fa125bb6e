// ABOUTME: Registry of live sustain voices keyed by caller identifier
// ABOUTME: Permits targeted early stop of indefinitely sounding notes
package engine

import "sync"

// Registry maps caller-chosen identifiers to live voices. Only sustain
// voices are registered; finite-duration notes self-terminate and never
// appear here. Registering an identifier that is already present overwrites
// the old entry, orphaning its stop path.
type Registry struct {
	mu     sync.Mutex
	voices map[string]*Voice
}

// NewRegistry creates an empty voice registry.
func NewRegistry() *Registry {
	return &Registry{voices: make(map[string]*Voice)}
}

// Register inserts or overwrites the voice for id.
func (r *Registry) Register(id string, v *Voice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.voices[id] = v
}

// Lookup returns the current voice for id.
func (r *Registry) Lookup(id string) (*Voice, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.voices[id]
	return v, ok
}

// Remove deletes the entry for id. Idempotent if absent.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.voices, id)
}

// Len returns the number of registered voices.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.voices)
}

// IDs returns the identifiers of all registered voices.
func (r *Registry) IDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.voices))
	for id := range r.voices {
		ids = append(ids, id)
	}
	return ids
}
