// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps engine names (e.g., "speex", "reference") to engines.
type Registry struct {
	engines map[string]Engine

	mtx *sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{
		engines: make(map[string]Engine),
		mtx:     &sync.RWMutex{},
	}
}

// Register adds e under name, replacing any earlier entry.
func (r *Registry) Register(name string, e Engine) {
	if e == nil {
		panic("engine: Register of nil engine " + name)
	}

	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.engines[name] = e
}

func (r *Registry) Get(name string) (Engine, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	e, ok := r.engines[name]
	return e, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	names := make([]string, 0, len(r.engines))
	for name := range r.engines {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

var defaultRegistry = NewRegistry()

// Register adds e to the process-wide registry.
func Register(name string, e Engine) { defaultRegistry.Register(name, e) }

// Open looks name up in the process-wide registry.
func Open(name string) (Engine, error) {
	e, ok := defaultRegistry.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, name)
	}
	return e, nil
}

// Names lists the engines in the process-wide registry.
func Names() []string { return defaultRegistry.Names() }
