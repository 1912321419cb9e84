package catalog

import (
	"fmt"
	"sort"
	"sync"
)

// Catalog is a read-mostly collection of platform and probe
// specifications. Loading happens during the startup window; after
// that the core only issues accessor queries.
type Catalog struct {
	mu        sync.RWMutex
	platforms map[string]*Platform
	probes    map[string]*ProbeSpec
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{
		platforms: make(map[string]*Platform),
		probes:    make(map[string]*ProbeSpec),
	}
}

// AddPlatform adds or replaces a platform specification.
func (c *Catalog) AddPlatform(p Platform) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.platforms[p.ID] = &p
}

// AddProbe adds or replaces a probe specification.
func (c *Catalog) AddProbe(p ProbeSpec) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.probes[p.ID] = &p
}

// PlatformByID returns the platform specification for the given ID.
func (c *Catalog) PlatformByID(id string) (*Platform, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.platforms[id]
	if !ok {
		return nil, fmt.Errorf("platform %q: %w", id, ErrNotFound)
	}
	return p, nil
}

// ProbeByID returns the probe specification for the given ID.
func (c *Catalog) ProbeByID(id string) (*ProbeSpec, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.probes[id]
	if !ok {
		return nil, fmt.Errorf("probe %q: %w", id, ErrNotFound)
	}
	return p, nil
}

// PlatformIDs returns the known platform identifiers in sorted order.
func (c *Catalog) PlatformIDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := make([]string, 0, len(c.platforms))
	for id := range c.platforms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ProbeIDs returns the known probe identifiers in sorted order.
func (c *Catalog) ProbeIDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := make([]string, 0, len(c.probes))
	for id := range c.probes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
