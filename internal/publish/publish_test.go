package publish

import (
	"context"
	stderrors "errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/kyu49/euonymus/internal/config"
	"github.com/kyu49/euonymus/internal/errors"
)

type fakeS3 struct {
	in   *s3.PutObjectInput
	body []byte
	err  error
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	f.body, _ = io.ReadAll(in.Body)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{ETag: aws.String(`"abc"`)}, nil
}

func TestPublish(t *testing.T) {
	fake := &fakeS3{}
	p := New(fake, config.PublishConfig{Bucket: "snaps", Key: "demo/index.html"}, nil)
	p.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	page := []byte("<!DOCTYPE html><html></html>")
	res, err := p.Publish(context.Background(), page)
	if err != nil {
		t.Fatal(err)
	}

	if res.Bucket != "snaps" || res.Key != "demo/index.html" || res.ETag != `"abc"` || res.Size != len(page) {
		t.Errorf("result = %+v", res)
	}
	if aws.ToString(fake.in.Bucket) != "snaps" || aws.ToString(fake.in.Key) != "demo/index.html" {
		t.Errorf("input = %+v", fake.in)
	}
	if aws.ToString(fake.in.ContentType) != "text/html; charset=utf-8" {
		t.Errorf("content type = %q", aws.ToString(fake.in.ContentType))
	}
	if string(fake.body) != string(page) {
		t.Errorf("body = %q", fake.body)
	}
	if fake.in.Metadata["published-at"] != "2026-01-02T03:04:05Z" {
		t.Errorf("metadata = %v", fake.in.Metadata)
	}
}

func TestPublishErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.PublishConfig
		err  error
		code string
	}{
		{"missing bucket", config.PublishConfig{Key: "k"}, nil, "E031"},
		{"upload failure", config.PublishConfig{Bucket: "b", Key: "k"}, stderrors.New("access denied"), "E030"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(&fakeS3{err: tt.err}, tt.cfg, nil)
			_, err := p.Publish(context.Background(), []byte("x"))
			var e *errors.Error
			if !stderrors.As(err, &e) || e.Code != tt.code {
				t.Fatalf("err = %v, want %s", err, tt.code)
			}
			if tt.err != nil && !stderrors.Is(err, tt.err) {
				t.Error("cause not wrapped")
			}
		})
	}
}

func TestNewClient(t *testing.T) {
	c := NewClient(config.PublishConfig{Region: "eu-west-1", Endpoint: "http://localhost:9000"})
	opts := c.Options()
	if opts.Region != "eu-west-1" || !opts.UsePathStyle || aws.ToString(opts.BaseEndpoint) != "http://localhost:9000" {
		t.Errorf("options = region %q path-style %v endpoint %q", opts.Region, opts.UsePathStyle, aws.ToString(opts.BaseEndpoint))
	}
}

func TestEnvCredentials(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "")
	if _, err := envCredentials(context.Background()); err == nil {
		t.Error("missing keys should fail")
	}

	t.Setenv("AWS_ACCESS_KEY_ID", "AKID")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "secret")
	creds, err := envCredentials(context.Background())
	if err != nil || creds.AccessKeyID != "AKID" {
		t.Errorf("creds = %+v, err = %v", creds, err)
	}
}
