package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3ProofUploader stores payment proofs in a bucket, namespaced by store id
// with a millisecond timestamp prefix on the filename to dodge collisions.
type S3ProofUploader struct {
	client   *s3.Client
	bucket   string
	region   string
	endpoint string
}

// S3Options configures the uploader. Endpoint is only set for LocalStack;
// when it is, path-style addressing and static dev credentials are used.
type S3Options struct {
	Bucket   string
	Region   string
	Endpoint string
}

func NewS3ProofUploader(ctx context.Context, opts S3Options) (*S3ProofUploader, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(opts.Region),
	}
	if opts.Endpoint != "" {
		loadOpts = append(loadOpts,
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("test", "test", "")))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3ProofUploader{
		client:   client,
		bucket:   opts.Bucket,
		region:   opts.Region,
		endpoint: opts.Endpoint,
	}, nil
}

func (u *S3ProofUploader) Upload(ctx context.Context, storeID, filename string, body io.Reader) (string, error) {
	key := fmt.Sprintf("payment_proofs/%s/%d-%s",
		storeID, time.Now().UnixMilli(), sanitizeFilename(filename))

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
		Body:   body,
	})
	if err != nil {
		return "", fmt.Errorf("failed to put proof object: %w", err)
	}
	return u.objectURL(key), nil
}

func (u *S3ProofUploader) objectURL(key string) string {
	if u.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(u.endpoint, "/"), u.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.bucket, u.region, key)
}

// sanitizeFilename strips directory components and characters that do not
// belong in an object key.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		}
		return '_'
	}, name)
}
