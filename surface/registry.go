// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/gogpu/canvas/internal/logging"
)

// Names of the built-in backends.
const (
	BackendRaster = "raster"
	BackendGPU    = "gpu"
)

// Factory creates a new Surface with the given options.
type Factory func(opts Options) (Surface, error)

// RegistryEntry represents a registered surface backend.
type RegistryEntry struct {
	// Name is the unique identifier for this backend.
	Name string

	// Priority orders automatic selection, highest first.
	Priority int

	Factory Factory

	// Available reports if the backend can be used on this system.
	Available func() bool
}

var globalRegistry = NewRegistry()

// Registry manages named surface backends.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*RegistryEntry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*RegistryEntry)}
}

// Register adds a backend to the global registry. A nil available function
// means always available. Registering an existing name replaces it.
func Register(name string, priority int, factory Factory, available func() bool) {
	globalRegistry.Register(name, priority, factory, available)
}

// Unregister removes a backend from the global registry.
func Unregister(name string) {
	globalRegistry.Unregister(name)
}

// NewSurface creates a surface with the best available backend. Hosts can
// Register their own backend above the built-in ones to take over
// contexts on GPU devices.
func NewSurface(opts Options) (Surface, error) {
	return globalRegistry.NewSurface(opts)
}

// NewSurfaceByName creates a surface with the named backend.
func NewSurfaceByName(name string, opts Options) (Surface, error) {
	return globalRegistry.NewSurfaceByName(name, opts)
}

// Register adds a backend to this registry.
func (r *Registry) Register(name string, priority int, factory Factory, available func() bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if available == nil {
		available = func() bool { return true }
	}
	r.entries[name] = &RegistryEntry{
		Name:      name,
		Priority:  priority,
		Factory:   factory,
		Available: available,
	}
}

// Unregister removes a backend from this registry.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, name)
}

// List returns all registered backend names sorted by priority.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames(false)
}

// NewSurface tries every available backend in priority order.
func (r *Registry) NewSurface(opts Options) (Surface, error) {
	r.mu.RLock()
	names := r.sortedNames(true)
	r.mu.RUnlock()

	if len(names) == 0 {
		return nil, ErrNoBackendAvailable
	}
	var errs []error
	for _, name := range names {
		s, err := r.NewSurfaceByName(name, opts)
		if err == nil {
			return s, nil
		}
		logging.Logger().Debug("surface: backend skipped", "backend", name, "err", err)
		errs = append(errs, err)
	}
	return nil, errors.Join(errs...)
}

// NewSurfaceByName creates a surface with a specific backend.
func (r *Registry) NewSurfaceByName(name string, opts Options) (Surface, error) {
	r.mu.RLock()
	entry, ok := r.entries[name]
	r.mu.RUnlock()

	if !ok {
		return nil, &BackendNotFoundError{Name: name}
	}
	if !entry.Available() {
		return nil, &BackendUnavailableError{Name: name}
	}
	s, err := entry.Factory(opts)
	if err != nil {
		return nil, fmt.Errorf("surface: %s backend: %w", name, err)
	}
	logging.Logger().Debug("surface created", "backend", name, "width", opts.Width, "height", opts.Height)
	return s, nil
}

// sortedNames must be called with the lock held.
func (r *Registry) sortedNames(onlyAvailable bool) []string {
	type entry struct {
		name     string
		priority int
	}
	entries := make([]entry, 0, len(r.entries))
	for name, e := range r.entries {
		if onlyAvailable && !e.Available() {
			continue
		}
		entries = append(entries, entry{name: name, priority: e.Priority})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].priority != entries[j].priority {
			return entries[i].priority > entries[j].priority
		}
		return entries[i].name < entries[j].name
	})
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name
	}
	return names
}

// ErrNoBackendAvailable is returned when no surface backends are registered
// or available.
var ErrNoBackendAvailable = errors.New("surface: no backend available")

// BackendNotFoundError indicates a named backend is not registered.
type BackendNotFoundError struct {
	Name string
}

func (e *BackendNotFoundError) Error() string {
	return "surface: backend not found: " + e.Name
}

// BackendUnavailableError indicates a backend exists but is not available.
type BackendUnavailableError struct {
	Name string
}

func (e *BackendUnavailableError) Error() string {
	return "surface: backend unavailable: " + e.Name
}

// newRasterSurface is the "raster" factory.
func newRasterSurface(opts Options) (Surface, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, opts.Width, opts.Height)
	}
	s := NewImageSurface(opts.Width, opts.Height)
	if opts.Background != nil {
		s.Clear(opts.Background)
	}
	return s, nil
}

// newGPUSurface is the "gpu" factory. Without a host backend factory it
// falls back to the software backend.
func newGPUSurface(opts Options) (Surface, error) {
	if opts.GPU == nil {
		return nil, errors.New("surface: gpu backend requires Options.GPU")
	}
	target := *opts.GPU
	if target.Width == 0 && target.Height == 0 {
		target.Width, target.Height = opts.Width, opts.Height
	}
	var backend GPUBackend
	if opts.GPUBackend != nil {
		b, err := opts.GPUBackend(target)
		if err != nil {
			return nil, err
		}
		backend = b
	} else {
		logging.Logger().Warn("surface: no GPU backend, rendering GPU target in software",
			"framebuffer", target.Framebuffer)
		backend = NewSoftwareBackend(target)
	}
	s, err := NewGPUSurface(target, backend)
	if err != nil {
		_ = backend.Close()
		return nil, err
	}
	if opts.Background != nil {
		s.Clear(opts.Background)
	}
	return s, nil
}

func init() {
	Register(BackendRaster, 10, newRasterSurface, nil)
	Register(BackendGPU, 100, newGPUSurface, nil)
}
