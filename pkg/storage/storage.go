// Package storage provides the blob backends that hold uploaded file bytes.
//
// The drive core only tracks metadata; bytes live behind the BlobStore
// contract and are addressed by the opaque link stored on each file record.
package storage

import (
	"context"
	"errors"
	"io"
)

// Common errors for blob operations.
var (
	ErrBlobNotFound = errors.New("blob not found")
	ErrInvalidLink  = errors.New("link does not belong to this store")
)

// Blob describes a stored object.
type Blob struct {
	// Link is the opaque pointer recorded on the file row. For the local
	// backend this is a server-relative path, for S3 a full object URL.
	Link string

	// Size is the number of bytes written.
	Size int64
}

// BlobStore stores and retrieves uploaded file bytes.
//
// Save must never overwrite an existing object: implementations generate a
// unique key per upload, so two files with the same display name coexist.
type BlobStore interface {
	// Save writes the reader's contents under a fresh key derived from name.
	Save(ctx context.Context, name string, r io.Reader) (*Blob, error)

	// Open returns a reader for the blob behind a link produced by Save.
	Open(ctx context.Context, link string) (io.ReadCloser, error)

	// Delete removes the blob behind a link. Deleting a missing blob is not
	// an error; the metadata row is already gone and the bytes are garbage.
	Delete(ctx context.Context, link string) error
}
