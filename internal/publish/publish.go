// Package publish uploads rendered page snapshots to S3 or an
// S3-compatible store.
package publish

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/kyu49/euonymus/internal/config"
	"github.com/kyu49/euonymus/internal/errors"
)

// PutObjectAPI is the part of *s3.Client the publisher uses.
type PutObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Result describes an uploaded snapshot.
type Result struct {
	Bucket string
	Key    string
	ETag   string
	Size   int
}

// Publisher uploads snapshots to one bucket.
type Publisher struct {
	client PutObjectAPI
	bucket string
	key    string
	logger *slog.Logger
	now    func() time.Time
}

// New creates a publisher. A nil logger uses slog.Default.
func New(client PutObjectAPI, cfg config.PublishConfig, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{
		client: client,
		bucket: cfg.Bucket,
		key:    cfg.Key,
		logger: logger.With("component", "publish"),
		now:    time.Now,
	}
}

// NewClient builds an S3 client for cfg. Credentials come from the
// standard AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and AWS_SESSION_TOKEN
// variables. A custom endpoint switches to path-style addressing.
func NewClient(cfg config.PublishConfig) *s3.Client {
	opts := s3.Options{
		Region:      cfg.Region,
		Credentials: aws.NewCredentialsCache(aws.CredentialsProviderFunc(envCredentials)),
	}
	if opts.Region == "" {
		opts.Region = os.Getenv("AWS_REGION")
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}
	return s3.New(opts)
}

func envCredentials(context.Context) (aws.Credentials, error) {
	creds := aws.Credentials{
		AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
		Source:          "Environment",
	}
	if creds.AccessKeyID == "" || creds.SecretAccessKey == "" {
		return aws.Credentials{}, errors.New("E030").
			WithDetail("AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY must be set.")
	}
	return creds, nil
}

// Publish uploads page as an HTML object.
func (p *Publisher) Publish(ctx context.Context, page []byte) (Result, error) {
	if p.bucket == "" || p.key == "" {
		return Result{}, errors.New("E031").
			WithSuggestion("set publish.bucket in the config or pass --bucket")
	}

	out, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(p.bucket),
		Key:           aws.String(p.key),
		Body:          bytes.NewReader(page),
		ContentLength: aws.Int64(int64(len(page))),
		ContentType:   aws.String("text/html; charset=utf-8"),
		CacheControl:  aws.String("no-cache"),
		Metadata: map[string]string{
			"published-at": p.now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return Result{}, errors.New("E030").Wrap(err)
	}

	res := Result{Bucket: p.bucket, Key: p.key, Size: len(page)}
	if out != nil {
		res.ETag = aws.ToString(out.ETag)
	}
	p.logger.Info("snapshot published", "bucket", res.Bucket, "key", res.Key, "bytes", res.Size)
	return res, nil
}
