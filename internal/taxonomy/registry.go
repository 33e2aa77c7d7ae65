// Package taxonomy holds the keyword dictionaries currently in use.
package taxonomy

import (
	"sync/atomic"
	"time"

	"github.com/MrSnakeDoc/linkvault/internal/domain"
)

// Registry publishes the active taxonomy to concurrent readers.
// Readers must treat the returned value as immutable.
type Registry struct {
	current    atomic.Pointer[domain.Taxonomy]
	lastReload atomic.Int64
}

// NewRegistry starts with initial, or the built-in taxonomy when initial is nil.
func NewRegistry(initial *domain.Taxonomy) *Registry {
	if initial == nil {
		initial = domain.DefaultTaxonomy()
	}
	r := &Registry{}
	r.current.Store(initial)
	return r
}

// Current returns the active taxonomy.
func (r *Registry) Current() *domain.Taxonomy {
	return r.current.Load()
}

// Swap replaces the active taxonomy.
func (r *Registry) Swap(t *domain.Taxonomy) {
	if t == nil {
		return
	}
	r.current.Store(t)
	r.lastReload.Store(time.Now().UnixNano())
}

// LastReload returns when Swap last ran, zero if never.
func (r *Registry) LastReload() time.Time {
	ns := r.lastReload.Load()
	if ns == 0 {
		return time.Time{}
	}
	return time.Unix(0, ns)
}
