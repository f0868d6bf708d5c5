// Package static provides a map-based TemplateResolver.
package static

import (
	"context"
	"fmt"

	notification "github.com/Javivb/notifications-engine-dreamole-19"
)

// Resolver is a map-based TemplateResolver for testing and simple
// deployments. Safe for concurrent use (read-only after creation).
type Resolver struct {
	templates map[string]notification.Identifier
}

// New creates a Resolver from a map of template name to identifier.
// The map is copied to prevent external mutation.
func New(templates map[string]notification.Identifier) *Resolver {
	m := make(map[string]notification.Identifier, len(templates))
	for k, v := range templates {
		m[k] = v
	}
	return &Resolver{templates: m}
}

// ResolveByName returns the identifier for the named template.
func (r *Resolver) ResolveByName(_ context.Context, name string) (notification.Identifier, error) {
	id, ok := r.templates[name]
	if !ok {
		return "", fmt.Errorf("resolve %q: %w", name, notification.ErrTemplateNotFound)
	}
	return id, nil
}
