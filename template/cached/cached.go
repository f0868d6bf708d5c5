// Package cached provides a Redis read-through cache for template
// resolution.
//
// Template name to identifier mappings change rarely, so resolutions are
// cached with a TTL. Cache unavailability never fails a resolution: reads
// and writes degrade to the backend resolver with a logged warning.
package cached

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	notification "github.com/Javivb/notifications-engine-dreamole-19"
)

// Compile-time check
var _ notification.TemplateResolver = (*Resolver)(nil)

// Resolver wraps a TemplateResolver with Redis caching.
type Resolver struct {
	backend notification.TemplateResolver
	client  redis.UniversalClient
	opts    *options
}

// New creates a caching resolver wrapping the given backend.
// Compatible with *redis.Client, *redis.ClusterClient, and
// redis.UniversalClient.
func New(backend notification.TemplateResolver, client redis.UniversalClient, opts ...Option) *Resolver {
	return &Resolver{
		backend: backend,
		client:  client,
		opts:    newOptions(opts...),
	}
}

// ResolveByName returns the cached identifier for the named template, or
// resolves through the backend and populates the cache.
func (r *Resolver) ResolveByName(ctx context.Context, name string) (notification.Identifier, error) {
	key := r.opts.keyPrefix + name

	val, err := r.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		if id, ok := notification.ParseIdentifier(val); ok {
			return id, nil
		}
		// Corrupt entry: drop it and fall through to the backend.
		r.client.Del(ctx, key)
	case errors.Is(err, redis.Nil):
		// Cache miss
	default:
		r.opts.logger.Warn("template cache read failed", "name", name, "error", err)
	}

	id, err := r.backend.ResolveByName(ctx, name)
	if err != nil {
		return "", err
	}

	if err := r.client.Set(ctx, key, id.String(), r.opts.ttl).Err(); err != nil {
		r.opts.logger.Warn("template cache write failed", "name", name, "error", err)
	}

	return id, nil
}

// Invalidate removes a cached resolution.
func (r *Resolver) Invalidate(ctx context.Context, name string) error {
	return r.client.Del(ctx, r.opts.keyPrefix+name).Err()
}
