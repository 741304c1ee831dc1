// Copyright 2026 The NovaGE Authors
// SPDX-License-Identifier: MIT

package backend

import (
	"fmt"
	"sort"
	"sync"
)

// Factory creates a new, uninitialized backend instance.
type Factory func() RenderBackend

// RegistryEntry represents a registered backend.
type RegistryEntry struct {
	// Name is the unique identifier for this backend.
	Name string

	// Priority determines selection order (higher = preferred).
	Priority int

	// New creates backend instances.
	New Factory

	// Available reports if the backend can run on this system.
	// A nil Available means always available.
	Available func() bool
}

// Registry manages registered renderer backends.
//
// The global registry is populated by backend packages at init time;
// most code uses the package-level Register, Get, and Default functions.
// The registry is mutex-guarded because init-time registration from
// imported packages may interleave with lookups in tests.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*RegistryEntry
}

// globalRegistry is the default registry.
var globalRegistry = NewRegistry()

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*RegistryEntry)}
}

// Register adds a backend to the global registry.
// Registering a name that already exists replaces the previous entry.
func Register(name string, priority int, factory Factory, available func() bool) {
	globalRegistry.Register(name, priority, factory, available)
}

// Get constructs the named backend from the global registry.
func Get(name string) (RenderBackend, error) {
	return globalRegistry.Get(name)
}

// Default constructs the highest-priority available backend from the
// global registry.
func Default() (RenderBackend, error) {
	return globalRegistry.Default()
}

// List returns all registered backend names sorted by priority
// (highest first).
func List() []string {
	return globalRegistry.List()
}

// Register adds a backend to the registry.
func (r *Registry) Register(name string, priority int, factory Factory, available func() bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[name] = &RegistryEntry{
		Name:      name,
		Priority:  priority,
		New:       factory,
		Available: available,
	}
}

// Unregister removes a backend from the registry.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, name)
}

// Get constructs the named backend.
func (r *Registry) Get(name string) (RenderBackend, error) {
	r.mu.RLock()
	entry, ok := r.entries[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotRegistered, name)
	}
	if entry.Available != nil && !entry.Available() {
		return nil, fmt.Errorf("backend %q: %w", name, ErrNoneAvailable)
	}
	return entry.New(), nil
}

// Default constructs the highest-priority available backend.
func (r *Registry) Default() (RenderBackend, error) {
	for _, entry := range r.sorted() {
		if entry.Available == nil || entry.Available() {
			return entry.New(), nil
		}
	}
	return nil, ErrNoneAvailable
}

// List returns all registered backend names sorted by priority
// (highest first).
func (r *Registry) List() []string {
	entries := r.sorted()
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

// sorted returns entries ordered by descending priority, name as
// tiebreaker for deterministic selection.
func (r *Registry) sorted() []*RegistryEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entries := make([]*RegistryEntry, 0, len(r.entries))
	for _, e := range r.entries {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Priority != entries[j].Priority {
			return entries[i].Priority > entries[j].Priority
		}
		return entries[i].Name < entries[j].Name
	})
	return entries
}
