// Package static provides a map-based TypeRegistry.
package static

import (
	notification "github.com/Javivb/notifications-engine-dreamole-19"
)

// Registry is a map-based TypeRegistry for testing and simple deployments.
// Safe for concurrent use (read-only after creation).
type Registry struct {
	prefixes map[string]notification.TypeTag
}

// New creates a Registry from a map of key prefix to type tag.
// The map is copied to prevent external mutation.
func New(prefixes map[string]notification.TypeTag) *Registry {
	m := make(map[string]notification.TypeTag, len(prefixes))
	for k, v := range prefixes {
		m[k] = v
	}
	return &Registry{prefixes: m}
}

// Default creates a Registry preloaded with the standard prefix table.
func Default() *Registry {
	return &Registry{prefixes: notification.StandardPrefixes()}
}

// TypeOf returns the type tag registered for the given key prefix.
func (r *Registry) TypeOf(keyPrefix string) (notification.TypeTag, bool) {
	tag, ok := r.prefixes[keyPrefix]
	return tag, ok
}
