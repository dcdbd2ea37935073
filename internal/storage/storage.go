package storage

import (
	"context"
	"io"
	"time"
)

// Package storage contains blob storage abstractions for version files.
// Keys are slash-separated paths built from a folder's resolved ancestor
// names plus a generated filename; the cascade path removes whole key
// subtrees at once.

// PutObjectOptions define optional parameters for storing blobs.
// Size should be the exact number of bytes if known; if unknown, set to -1
// and the implementation will buffer/chunk as supported by the backend.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about a stored blob.
type ObjectInfo struct {
	Key          string
	Size         int64
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is the blob store used by the version service. Implementations are
// safe for concurrent use.
type Storage interface {
	// Put stores a blob under the given key using the provided reader and
	// options, creating intermediate directories/prefixes as needed.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Delete removes a blob by key. Deleting a missing blob is not an error.
	Delete(ctx context.Context, key string) error
	// DeleteTree removes every blob under the given key prefix (a folder's
	// on-disk subtree). A missing prefix is not an error.
	DeleteTree(ctx context.Context, prefix string) error
}
