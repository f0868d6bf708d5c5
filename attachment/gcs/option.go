package gcs

import (
	"log/slog"
)

// options holds GCS fetcher configuration.
type options struct {
	bucket string
	prefix string

	// Authentication
	credentialsJSON []byte
	credentialsFile string
	apiKey          string

	// Custom endpoint (for emulators, testing)
	endpoint string

	logger *slog.Logger
}

// Option configures the GCS fetcher.
type Option func(*options)

// newOptions creates options with defaults and applies provided options.
func newOptions(opts ...Option) *options {
	o := &options{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithBucket sets the GCS bucket name (required).
func WithBucket(bucket string) Option {
	return func(o *options) {
		o.bucket = bucket
	}
}

// WithPrefix sets the key prefix prepended to every fetched key.
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// WithCredentialsJSON sets service account JSON credentials.
func WithCredentialsJSON(credentials []byte) Option {
	return func(o *options) {
		o.credentialsJSON = credentials
	}
}

// WithCredentialsFile sets the path to a service account credentials file.
func WithCredentialsFile(path string) Option {
	return func(o *options) {
		o.credentialsFile = path
	}
}

// WithAPIKey sets an API key for authentication.
// Limited functionality; prefer service account credentials in production.
func WithAPIKey(key string) Option {
	return func(o *options) {
		o.apiKey = key
	}
}

// WithEndpoint sets a custom GCS endpoint (for emulators, testing).
func WithEndpoint(endpoint string) Option {
	return func(o *options) {
		o.endpoint = endpoint
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
