package driver

import (
	"fmt"
	"sort"
	"sync"

	"github.com/sealablab/BPD-001/pkg/registers"
)

// Registry maps probe identifiers to driver constructors, so the
// concrete probe is selectable by configuration rather than by code
// change.
//
// A Registry is an explicit object held by the composition root rather
// than an ambient singleton, so tests can construct isolated
// registries. Registration happens during the startup window, before
// any Resolve call; after startup the registry is read-mostly.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Constructor
	order   []string // insertion order for deterministic listing
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]Constructor),
	}
}

// Register adds a constructor under the given probe ID.
// A duplicate ID is a registration-time error, never a silent
// overwrite.
func (r *Registry) Register(probeID string, ctor Constructor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[probeID]; exists {
		return fmt.Errorf("%q: %w", probeID, ErrDuplicateID)
	}
	r.entries[probeID] = ctor
	r.order = append(r.order, probeID)
	return nil
}

// Resolve constructs a driver for the given probe ID over the given
// register back end.
func (r *Registry) Resolve(probeID string, regs registers.Interface, opts Options) (Driver, error) {
	r.mu.RLock()
	ctor, ok := r.entries[probeID]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%q: %w", probeID, ErrUnknownID)
	}
	return ctor(regs, opts)
}

// IDs returns the registered probe IDs in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, len(r.order))
	copy(ids, r.order)
	sort.Strings(ids)
	return ids
}
