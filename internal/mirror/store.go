// Package mirror keeps a local install root in sync with an
// S3-compatible copy of the game's Downloads tree.
//
// Callers depend on the Store interface, never on a concrete provider;
// the minio subpackage implements it. The Syncer materializes the
// mirrored objects into the directory layout the reader expects.
package mirror

import (
	"context"
	"io"
	"time"
)

// Store is the read-only object-store surface the Syncer needs. The
// bucket is fixed at construction.
type Store interface {
	// Ping verifies the store is reachable and the bucket exists.
	Ping(ctx context.Context) error

	// Close releases held resources.
	Close() error

	// List returns every object under prefix, recursively.
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)

	// Fetch opens a streaming handle to the object at key.
	// The caller must close it.
	Fetch(ctx context.Context, key string) (io.ReadCloser, error)
}

// ObjectInfo describes one stored object.
type ObjectInfo struct {
	// Key is the full object path within the bucket.
	Key string

	// Size is the byte size of the object. -1 if unknown.
	Size int64

	// ETag is the entity tag reported by the backend.
	ETag string

	// LastModified is when the object was last written.
	LastModified time.Time
}

// Config holds the connection settings for an object-store mirror.
type Config struct {
	// Endpoint is the host:port of the store.
	Endpoint string

	// AccessKey and SecretKey are the S3-style credentials.
	AccessKey string
	SecretKey string

	// Bucket holds the mirrored Downloads tree.
	Bucket string

	// UseSSL controls whether TLS is used for the connection.
	UseSSL bool

	// Region is used by region-aware backends. Leave empty for MinIO.
	Region string
}
