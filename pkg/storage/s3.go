package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config holds configuration for the S3 blob store.
type S3Config struct {
	// Bucket is the S3 bucket name.
	Bucket string `mapstructure:"bucket" yaml:"bucket"`

	// Region is the AWS region (optional, uses SDK default if empty).
	Region string `mapstructure:"region" yaml:"region"`

	// Endpoint is the S3 endpoint URL (optional, for S3-compatible services).
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`

	// KeyPrefix is prepended to all upload keys (e.g., "uploads/").
	// Should end with "/" if non-empty.
	KeyPrefix string `mapstructure:"key_prefix" yaml:"key_prefix"`

	// AccessKeyID and SecretAccessKey override the SDK credential chain
	// when both are set (for MinIO and similar).
	AccessKeyID     string `mapstructure:"access_key_id" yaml:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key" yaml:"secret_access_key"`

	// ForcePathStyle forces path-style addressing (required for Localstack/MinIO).
	ForcePathStyle bool `mapstructure:"force_path_style" yaml:"force_path_style"`
}

// S3Store keeps uploaded bytes in an S3 bucket. Links are "s3://bucket/key"
// URIs so the store can find its own objects again for download and delete.
type S3Store struct {
	client    *s3.Client
	bucket    string
	keyPrefix string
}

// NewS3Store creates a new S3 blob store with an existing client.
func NewS3Store(client *s3.Client, config S3Config) *S3Store {
	return &S3Store{
		client:    client,
		bucket:    config.Bucket,
		keyPrefix: config.KeyPrefix,
	}
}

// NewS3StoreFromConfig creates a new S3 blob store by creating an S3 client
// from config. This is the preferred constructor when you don't have an
// existing S3 client.
func NewS3StoreFromConfig(ctx context.Context, config S3Config) (*S3Store, error) {
	if config.Bucket == "" {
		return nil, fmt.Errorf("s3 blob store requires a bucket")
	}

	var opts []func(*awsconfig.LoadOptions) error

	if config.Region != "" {
		opts = append(opts, awsconfig.WithRegion(config.Region))
	}
	if config.AccessKeyID != "" && config.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(config.AccessKeyID, config.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var s3Opts []func(*s3.Options)

	if config.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(config.Endpoint)
		})
	}
	if config.ForcePathStyle {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.UsePathStyle = true
		})
	}

	client := s3.NewFromConfig(awsCfg, s3Opts...)

	return NewS3Store(client, config), nil
}

// Save uploads the reader's contents under a fresh key.
func (s *S3Store) Save(ctx context.Context, name string, r io.Reader) (*Blob, error) {
	key := s.keyPrefix + uniqueKey(name)

	// PutObject needs a seekable body or a known length for signing, so
	// the upload is buffered first. Drive uploads are user files, not bulk
	// data, and the API caps request size upstream.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return nil, fmt.Errorf("s3 put object: %w", err)
	}

	return &Blob{
		Link: fmt.Sprintf("s3://%s/%s", s.bucket, key),
		Size: int64(len(data)),
	}, nil
}

// Open returns a reader for the object behind a link produced by Save.
func (s *S3Store) Open(ctx context.Context, link string) (io.ReadCloser, error) {
	key, err := s.keyFromLink(link)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isS3NotFound(err) {
			return nil, ErrBlobNotFound
		}
		return nil, fmt.Errorf("s3 get object: %w", err)
	}
	return resp.Body, nil
}

// Delete removes the object behind a link. S3 deletes are idempotent, so a
// missing object is not an error.
func (s *S3Store) Delete(ctx context.Context, link string) error {
	key, err := s.keyFromLink(link)
	if err != nil {
		return err
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s3 delete object: %w", err)
	}
	return nil
}

// keyFromLink validates an s3:// link against this store's bucket and
// extracts the object key.
func (s *S3Store) keyFromLink(link string) (string, error) {
	prefix := fmt.Sprintf("s3://%s/", s.bucket)
	if !strings.HasPrefix(link, prefix) {
		return "", ErrInvalidLink
	}
	key := strings.TrimPrefix(link, prefix)
	if key == "" {
		return "", ErrInvalidLink
	}
	return key, nil
}

// isS3NotFound reports whether the error is an S3 NoSuchKey/NotFound error.
func isS3NotFound(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "NoSuchKey") || strings.Contains(msg, "NotFound")
}
