// Package providers is the comicdl source registry. A source is looked up by
// the ID named in the configuration; the app rebuilds the registry whenever
// the base URL changes.
package providers

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vrsandeep/comicdl/internal/models"
)

var (
	mu       sync.RWMutex
	registry = make(map[string]models.Provider)
)

// Register adds p under its ID. Registering the same ID twice is a
// programming error and panics.
func Register(p models.Provider) {
	id := p.GetInfo().ID
	mu.Lock()
	defer mu.Unlock()
	if _, exists := registry[id]; exists {
		panic(fmt.Sprintf("provider with ID '%s' is already registered", id))
	}
	registry[id] = p
}

// Get returns the provider registered under id.
func Get(id string) (models.Provider, bool) {
	mu.RLock()
	defer mu.RUnlock()
	p, ok := registry[id]
	return p, ok
}

// Lookup is Get with an error naming the registered IDs when id is unknown.
func Lookup(id string) (models.Provider, error) {
	if p, ok := Get(id); ok {
		return p, nil
	}
	return nil, fmt.Errorf("unknown provider %q (available: %s)", id, strings.Join(IDs(), ", "))
}

// IDs returns the registered provider IDs in sorted order.
func IDs() []string {
	mu.RLock()
	defer mu.RUnlock()
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// GetAll returns the info of every registered provider, sorted by ID.
func GetAll() []models.ProviderInfo {
	ids := IDs()
	infos := make([]models.ProviderInfo, 0, len(ids))
	for _, id := range ids {
		if p, ok := Get(id); ok {
			infos = append(infos, p.GetInfo())
		}
	}
	return infos
}

// UnregisterAll empties the registry.
func UnregisterAll() {
	mu.Lock()
	defer mu.Unlock()
	registry = make(map[string]models.Provider)
}
