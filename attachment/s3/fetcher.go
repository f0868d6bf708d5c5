// Package s3 turns S3 objects into email attachment sources.
package s3

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"golang.org/x/sync/errgroup"

	notification "github.com/Javivb/notifications-engine-dreamole-19"
)

// Fetcher loads S3 objects as attachment sources.
type Fetcher struct {
	client *s3.Client
	bucket string
	prefix string
	opts   *options
}

// New creates a new S3 fetcher.
// The context is used for AWS credential loading and configuration.
func New(ctx context.Context, opts ...Option) (*Fetcher, error) {
	o := newOptions(opts...)

	if o.bucket == "" {
		return nil, fmt.Errorf("bucket is required")
	}

	awsCfg, err := buildAWSConfig(ctx, o)
	if err != nil {
		return nil, fmt.Errorf("build aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(opts *s3.Options) {
		if o.endpoint != "" {
			opts.BaseEndpoint = aws.String(o.endpoint)
			opts.UsePathStyle = o.usePathStyle
		}
	})

	return &Fetcher{
		client: client,
		bucket: o.bucket,
		prefix: o.prefix,
		opts:   o,
	}, nil
}

// buildAWSConfig builds AWS config based on authentication options.
func buildAWSConfig(ctx context.Context, o *options) (aws.Config, error) {
	var optFns []func(*config.LoadOptions) error

	optFns = append(optFns, config.WithRegion(o.region))

	switch {
	case o.accessKey != "" && o.secretKey != "":
		// Static credentials (Access Key + Secret Key)
		creds := credentials.NewStaticCredentialsProvider(o.accessKey, o.secretKey, o.sessionToken)
		optFns = append(optFns, config.WithCredentialsProvider(creds))

	case o.roleARN != "":
		// IAM Role - use STS AssumeRole
		baseCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(o.region))
		if err != nil {
			return aws.Config{}, fmt.Errorf("load base config for role: %w", err)
		}
		stsCreds := newAssumeRoleProvider(baseCfg, o.roleARN, o.roleSessionName, o.externalID)
		optFns = append(optFns, config.WithCredentialsProvider(stsCreds))

	default:
		// Default credential chain (env vars, shared config, IAM role on
		// EC2/EKS, ECS task role). No explicit credentials needed.
	}

	return config.LoadDefaultConfig(ctx, optFns...)
}

// Fetch downloads the given object keys with bounded concurrency and
// returns one attachment source per key, preserving input order. The
// attachment filename is the base name of the key. Any failed download
// fails the whole fetch.
func (f *Fetcher) Fetch(ctx context.Context, keys ...string) ([]notification.AttachmentSource, error) {
	sources := make([]notification.AttachmentSource, len(keys))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(f.opts.concurrency)

	for i, key := range keys {
		g.Go(func() error {
			fullKey := key
			if f.prefix != "" {
				fullKey = path.Join(f.prefix, key)
			}

			out, err := f.client.GetObject(ctx, &s3.GetObjectInput{
				Bucket: aws.String(f.bucket),
				Key:    aws.String(fullKey),
			})
			if err != nil {
				return fmt.Errorf("get object %q: %w", fullKey, err)
			}
			defer out.Body.Close()

			data, err := io.ReadAll(out.Body)
			if err != nil {
				return fmt.Errorf("read object %q: %w", fullKey, err)
			}

			f.opts.logger.Debug("fetched attachment from s3", "bucket", f.bucket, "key", fullKey, "size", len(data))

			sources[i] = notification.RawAttachment{
				Filename: path.Base(key),
				Content:  data,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sources, nil
}
