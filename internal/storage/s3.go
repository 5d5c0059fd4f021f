package storage

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
	"github.com/google/uuid"
	perrors "github.com/tamnd/productsvc/internal/errors"
	"github.com/tamnd/productsvc/pkg/config"
)

// imageFolder is the key prefix under which all product images are stored.
const imageFolder = "products"

// publicReadPolicy grants anonymous read on every object in the bucket.
const publicReadPolicy = `{
	"Version": "2012-10-17",
	"Statement": [
		{
			"Effect": "Allow",
			"Principal": {"AWS": "*"},
			"Action": ["s3:GetObject"],
			"Resource": ["arn:aws:s3:::%s/*"]
		}
	]
}`

// S3Store implements ObjectStore against an S3-compatible endpoint (MinIO in
// local setups).
type S3Store struct {
	client    *s3.Client
	presigner *s3.PresignClient
	bucket    string
	publicURL string
}

// NewS3Store creates a new S3Store from the given configuration.
func NewS3Store(ctx context.Context, cfg config.ObjectStoreConfig) (*S3Store, error) {
	// Custom resolver so the SDK talks to the configured endpoint instead of AWS
	customResolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL:               cfg.Endpoint,
			HostnameImmutable: true,
			SigningRegion:     cfg.Region,
		}, nil
	})

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
		awsconfig.WithEndpointResolverWithOptions(customResolver),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
	})

	return &S3Store{
		client:    client,
		presigner: s3.NewPresignClient(client),
		bucket:    cfg.Bucket,
		publicURL: cfg.PublicURL,
	}, nil
}

// EnsureBucket creates the bucket if it does not exist and applies a
// public-read policy. Idempotent.
func (s *S3Store) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err == nil {
		return nil
	}

	if _, err := s.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(s.bucket),
	}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}

	policy := fmt.Sprintf(publicReadPolicy, s.bucket)
	if _, err := s.client.PutBucketPolicy(ctx, &s3.PutBucketPolicyInput{
		Bucket: aws.String(s.bucket),
		Policy: aws.String(policy),
	}); err != nil {
		return fmt.Errorf("failed to set public-read policy on bucket %s: %w", s.bucket, err)
	}
	return nil
}

// Store writes the object under a generated key and returns its public URL.
func (s *S3Store) Store(ctx context.Context, r io.Reader, filename, contentType string, size int64) (string, error) {
	key := buildObjectKey(filename)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          r,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return "", fmt.Errorf("%w: put object %s: %v", perrors.ErrStorageWrite, key, err)
	}

	return s.objectURL(key), nil
}

// Delete removes the object identified by a previously returned public URL.
func (s *S3Store) Delete(ctx context.Context, objectURL string) error {
	key, ok := s.objectKeyFromURL(objectURL)
	if !ok {
		return fmt.Errorf("%w: unrecognized object URL %s", perrors.ErrStorageDelete, objectURL)
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("%w: delete object %s: %v", perrors.ErrStorageDelete, key, err)
	}
	return nil
}

// PresignedURL produces a time-limited retrieval URL for the given object key.
func (s *S3Store) PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", fmt.Errorf("failed to presign object %s: %w", key, err)
	}
	return req.URL, nil
}

// objectURL builds the public URL for a stored object key.
func (s *S3Store) objectURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, key)
}

// objectKeyFromURL derives the object key by stripping the known public prefix.
func (s *S3Store) objectKeyFromURL(objectURL string) (string, bool) {
	prefix := fmt.Sprintf("%s/%s/", s.publicURL, s.bucket)
	key := strings.TrimPrefix(objectURL, prefix)
	if key == objectURL || key == "" {
		return "", false
	}
	return key, true
}

// buildObjectKey generates a unique key under the image folder, preserving
// the original file extension.
func buildObjectKey(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("%s/%s%s", imageFolder, uuid.NewString(), ext)
}
