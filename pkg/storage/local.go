package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// localLinkPrefix is the server-relative prefix for local blob links.
// The API mounts a download route under the same prefix.
const localLinkPrefix = "/uploads/"

// LocalConfig holds configuration for the local disk blob store.
type LocalConfig struct {
	// Dir is the directory uploads are written to.
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// LocalStore keeps uploaded bytes on the local filesystem.
//
// Keys are the upload timestamp joined with a sanitized file name, so
// repeated uploads of the same name never collide on disk.
type LocalStore struct {
	dir string
}

// NewLocalStore creates the upload directory if needed and returns a store.
func NewLocalStore(config LocalConfig) (*LocalStore, error) {
	if config.Dir == "" {
		return nil, fmt.Errorf("local blob store requires a directory")
	}
	if err := os.MkdirAll(config.Dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStore{dir: config.Dir}, nil
}

// Save writes the upload to a uniquely named file and returns its link.
func (s *LocalStore) Save(ctx context.Context, name string, r io.Reader) (*Blob, error) {
	key := uniqueKey(name)
	path := filepath.Join(s.dir, key)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0640)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob file: %w", err)
	}

	size, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to write blob: %w", err)
	}

	return &Blob{Link: localLinkPrefix + key, Size: size}, nil
}

// Open returns a reader for a previously saved blob.
func (s *LocalStore) Open(ctx context.Context, link string) (io.ReadCloser, error) {
	key, err := s.keyFromLink(link)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(s.dir, key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrBlobNotFound
		}
		return nil, fmt.Errorf("failed to open blob: %w", err)
	}
	return f, nil
}

// Delete removes a blob. Missing blobs are ignored.
func (s *LocalStore) Delete(ctx context.Context, link string) error {
	key, err := s.keyFromLink(link)
	if err != nil {
		return err
	}

	if err := os.Remove(filepath.Join(s.dir, key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete blob: %w", err)
	}
	return nil
}

// keyFromLink validates a link and extracts the on-disk key. The key is
// sanitized at save time, but the base-name check keeps a crafted link from
// escaping the upload directory.
func (s *LocalStore) keyFromLink(link string) (string, error) {
	if !strings.HasPrefix(link, localLinkPrefix) {
		return "", ErrInvalidLink
	}
	key := strings.TrimPrefix(link, localLinkPrefix)
	if key == "" || key != filepath.Base(key) {
		return "", ErrInvalidLink
	}
	return key, nil
}

// uniqueKey builds an upload key from the current time and the file name,
// with path separators and spaces replaced.
func uniqueKey(name string) string {
	sanitized := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ' ':
			return '_'
		default:
			return r
		}
	}, filepath.Base(name))
	if sanitized == "" || sanitized == "." || sanitized == ".." {
		sanitized = "upload"
	}
	return fmt.Sprintf("%d-%s", time.Now().UnixNano(), sanitized)
}
