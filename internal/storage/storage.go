package storage

import (
	"context"
	"io"
	"time"
)

// Package storage contains the binary payload store abstraction. The
// manifest only keeps keys; the bytes behind a key live here, either in
// a local content directory or an S3-compatible bucket.

// PutObjectOptions define optional parameters for storing payloads.
// Size should be the exact number of bytes if known; if unknown, set to
// -1 and the implementation will buffer/chunk as the backend supports.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about a stored payload.
type ObjectInfo struct {
	Key          string
	Size         int64
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage stores and retrieves binary media payloads by key.
type Storage interface {
	// Put stores a payload under the given key using the provided
	// reader and options.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get retrieves a payload's content as a streaming reader alongside
	// its info.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes a payload by key. Deleting an absent key is not an
	// error: payload removal is best-effort by contract.
	Delete(ctx context.Context, key string) error
}
