package model

import (
	"fmt"
	"sort"

	"github.com/Matt-Int/crossval/dataset"
	"github.com/Matt-Int/crossval/pkg/errors"
)

// Registry composes per-family backends into a single Backend that
// dispatches on Config.Family. A selection search over a mixed candidate
// list ("linear" plus a "forest" grid, say) hands the search one Registry
// instead of one backend per family.
type Registry struct {
	backends map[string]Backend
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{backends: make(map[string]Backend)}
}

// Register binds a family name to its backend, replacing any previous
// binding. It returns the registry for chaining.
func (r *Registry) Register(family string, be Backend) *Registry {
	r.backends[family] = be
	return r
}

// Families returns the registered family names in sorted order.
func (r *Registry) Families() []string {
	families := make([]string, 0, len(r.backends))
	for family := range r.backends {
		families = append(families, family)
	}
	sort.Strings(families)
	return families
}

// Fit implements Backend by delegating to the backend registered for the
// configuration's family. An unregistered family is a ValueError.
func (r *Registry) Fit(train *dataset.Dataset, cfg Config) (Fitted, error) {
	be, ok := r.backends[cfg.Family]
	if !ok {
		return nil, errors.NewValueError("model.Registry.Fit",
			fmt.Sprintf("no backend registered for family %q", cfg.Family))
	}
	return be.Fit(train, cfg)
}
