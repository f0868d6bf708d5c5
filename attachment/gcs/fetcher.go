// Package gcs turns Google Cloud Storage objects into email attachment
// sources.
package gcs

import (
	"context"
	"fmt"
	"io"
	"path"

	"cloud.google.com/go/auth/credentials"
	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	notification "github.com/Javivb/notifications-engine-dreamole-19"
)

// Fetcher loads GCS objects as attachment sources.
type Fetcher struct {
	client *storage.Client
	bucket string
	prefix string
	opts   *options
}

// New creates a new GCS fetcher.
func New(ctx context.Context, opts ...Option) (*Fetcher, error) {
	o := newOptions(opts...)

	if o.bucket == "" {
		return nil, fmt.Errorf("bucket is required")
	}

	clientOpts, err := buildClientOptions(o)
	if err != nil {
		return nil, fmt.Errorf("build client options: %w", err)
	}

	client, err := storage.NewClient(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create gcs client: %w", err)
	}

	return &Fetcher{
		client: client,
		bucket: o.bucket,
		prefix: o.prefix,
		opts:   o,
	}, nil
}

// buildClientOptions builds GCS client options based on authentication settings.
func buildClientOptions(o *options) ([]option.ClientOption, error) {
	var opts []option.ClientOption

	switch {
	case o.credentialsJSON != nil:
		// Use provided JSON credentials (service account key)
		creds, err := credentials.DetectDefault(&credentials.DetectOptions{
			Scopes:          []string{"https://www.googleapis.com/auth/cloud-platform"},
			CredentialsJSON: o.credentialsJSON,
		})
		if err != nil {
			return nil, fmt.Errorf("detect credentials from json: %w", err)
		}
		opts = append(opts, option.WithAuthCredentials(creds))

	case o.credentialsFile != "":
		// Use credentials from file
		creds, err := credentials.DetectDefault(&credentials.DetectOptions{
			Scopes:          []string{"https://www.googleapis.com/auth/cloud-platform"},
			CredentialsFile: o.credentialsFile,
		})
		if err != nil {
			return nil, fmt.Errorf("detect credentials from file: %w", err)
		}
		opts = append(opts, option.WithAuthCredentials(creds))

	case o.apiKey != "":
		// Use API key (limited functionality, not recommended for production)
		opts = append(opts, option.WithAPIKey(o.apiKey))

	default:
		// Application Default Credentials (GOOGLE_APPLICATION_CREDENTIALS,
		// gcloud auth, Workload Identity, compute default service account).
	}

	// Add custom endpoint if specified (for emulators, testing)
	if o.endpoint != "" {
		opts = append(opts, option.WithEndpoint(o.endpoint))
	}

	return opts, nil
}

// Fetch downloads the given object keys and returns one attachment source
// per key, preserving input order. The attachment filename is the base name
// of the key. Any failed download fails the whole fetch.
func (f *Fetcher) Fetch(ctx context.Context, keys ...string) ([]notification.AttachmentSource, error) {
	sources := make([]notification.AttachmentSource, len(keys))

	for i, key := range keys {
		fullKey := key
		if f.prefix != "" {
			fullKey = path.Join(f.prefix, key)
		}

		r, err := f.client.Bucket(f.bucket).Object(fullKey).NewReader(ctx)
		if err != nil {
			return nil, fmt.Errorf("open object %q: %w", fullKey, err)
		}

		data, err := io.ReadAll(r)
		closeErr := r.Close()
		if err != nil {
			return nil, fmt.Errorf("read object %q: %w", fullKey, err)
		}
		if closeErr != nil {
			return nil, fmt.Errorf("close object %q: %w", fullKey, closeErr)
		}

		f.opts.logger.Debug("fetched attachment from gcs", "bucket", f.bucket, "key", fullKey, "size", len(data))

		sources[i] = notification.RawAttachment{
			Filename: path.Base(key),
			Content:  data,
		}
	}

	return sources, nil
}

// Close releases the underlying GCS client.
func (f *Fetcher) Close() error {
	return f.client.Close()
}
