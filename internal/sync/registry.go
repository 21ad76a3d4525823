package sync

import (
	"fmt"
	"sort"
)

// Registry resolves entity-type names to their typed adapters. It is built
// once at startup from the closed list of known adapters and is read-only
// afterwards, so lookups are safe for concurrent use.
type Registry struct {
	adapters map[string]Adapter
}

// NewRegistry builds a Registry from the given adapters.
//
// Returns ErrDuplicateAdapter if two adapters share a name.
func NewRegistry(adapters ...Adapter) (*Registry, error) {
	r := &Registry{adapters: make(map[string]Adapter, len(adapters))}

	for _, ad := range adapters {
		if _, exists := r.adapters[ad.Name()]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateAdapter, ad.Name())
		}
		r.adapters[ad.Name()] = ad
	}

	return r, nil
}

// Lookup returns the adapter registered under name.
//
// Returns ErrUnknownEntity for unregistered names; this check runs before
// any engine work touches the store.
func (r *Registry) Lookup(name string) (Adapter, error) {
	ad, found := r.adapters[name]
	if !found {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEntity, name)
	}

	return ad, nil
}

// Names returns the registered entity-type names in lexical order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.adapters))
	for name := range r.adapters {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
