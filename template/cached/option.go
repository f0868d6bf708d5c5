package cached

import (
	"log/slog"
	"time"
)

// Default configuration values.
const (
	DefaultTTL       = 1 * time.Hour
	DefaultKeyPrefix = "notification:template:"
)

// options holds cache configuration.
type options struct {
	ttl       time.Duration
	keyPrefix string
	logger    *slog.Logger
}

// Option configures the caching resolver.
type Option func(*options)

// newOptions creates options with defaults and applies provided options.
func newOptions(opts ...Option) *options {
	o := &options{
		ttl:       DefaultTTL,
		keyPrefix: DefaultKeyPrefix,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithTTL sets how long resolutions stay cached.
// Default is 1 hour.
func WithTTL(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.ttl = d
		}
	}
}

// WithKeyPrefix sets the Redis key prefix.
// Default is "notification:template:".
func WithKeyPrefix(prefix string) Option {
	return func(o *options) {
		if prefix != "" {
			o.keyPrefix = prefix
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
