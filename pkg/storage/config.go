package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// BackendType identifies a blob storage backend.
type BackendType string

const (
	// BackendLocal stores uploads on the local filesystem.
	BackendLocal BackendType = "local"
	// BackendS3 stores uploads in an S3 bucket.
	BackendS3 BackendType = "s3"
)

// Config selects and configures the blob storage backend.
type Config struct {
	// Type selects the backend. Default: local.
	Type BackendType `mapstructure:"type" yaml:"type"`

	// Local configures the local disk backend.
	Local LocalConfig `mapstructure:"local" yaml:"local"`

	// S3 configures the S3 backend.
	S3 S3Config `mapstructure:"s3" yaml:"s3"`
}

// ApplyDefaults fills in zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Type == "" {
		c.Type = BackendLocal
	}
	if c.Type == BackendLocal && c.Local.Dir == "" {
		dataHome := os.Getenv("XDG_DATA_HOME")
		if dataHome == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				home = "."
			}
			dataHome = filepath.Join(home, ".local", "share")
		}
		c.Local.Dir = filepath.Join(dataHome, "skydrive", "uploads")
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	switch c.Type {
	case BackendLocal:
		if c.Local.Dir == "" {
			return fmt.Errorf("local blob store requires a directory")
		}
	case BackendS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("s3 blob store requires a bucket")
		}
	default:
		return fmt.Errorf("unsupported blob store type: %s", c.Type)
	}
	return nil
}

// New creates the configured blob store.
func New(ctx context.Context, config *Config) (BlobStore, error) {
	config.ApplyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case BackendLocal:
		return NewLocalStore(config.Local)
	case BackendS3:
		return NewS3StoreFromConfig(ctx, config.S3)
	default:
		return nil, fmt.Errorf("unsupported blob store type: %s", config.Type)
	}
}
