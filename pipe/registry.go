package pipe

import (
	"sort"
	"sync"

	"github.com/lyteflow/lyteflow/errors"
)

// Factory builds an element from definition options.
type Factory func(options map[string]any) (Element, error)

// Registry provides named element factories for definition-driven graph
// construction.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory under the given kind.
func (r *Registry) Register(kind string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[kind] = f
}

// Get retrieves a factory by kind.
func (r *Registry) Get(kind string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, found := r.factories[kind]
	return f, found
}

// New builds an element of the given kind.
func (r *Registry) New(kind string, options map[string]any) (Element, error) {
	f, found := r.Get(kind)
	if !found {
		return nil, errors.NotFound("element kind", kind)
	}
	return f(options)
}

// List returns sorted kinds of all registered factories.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]string, 0, len(r.factories))
	for k := range r.factories {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
