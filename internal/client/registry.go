package client

import (
	"context"
	"sort"
	"sync"
)

// DefaultModel is used for every question until a load succeeds or the user
// picks another entry.
const DefaultModel = "llama3-70b-8192"

// ModelRegistry holds the display-name to model-id mapping fetched from the
// backend. A failed refresh keeps whatever mapping was loaded before, so the
// client always has a usable model list.
type ModelRegistry struct {
	mu     sync.RWMutex
	api    *Client
	models map[string]string
}

// NewModelRegistry creates a registry backed by api. It starts empty; call
// Load to populate it.
func NewModelRegistry(api *Client) *ModelRegistry {
	return &ModelRegistry{
		api:    api,
		models: map[string]string{},
	}
}

// Load refreshes the mapping from the backend. On failure the previous
// mapping is kept and the error returned.
func (r *ModelRegistry) Load(ctx context.Context) error {
	models, err := r.api.Models(ctx)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.models = models
	r.mu.Unlock()
	return nil
}

// Names returns the display names in sorted order.
func (r *ModelRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve maps a display name to its model id. Unknown names fall back to
// DefaultModel so a stale selection never blocks asking.
func (r *ModelRegistry) Resolve(displayName string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if id, ok := r.models[displayName]; ok {
		return id
	}
	return DefaultModel
}
