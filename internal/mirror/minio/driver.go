// Package minio provides a MinIO implementation of mirror.Store.
package minio

import (
	"context"
	"io"

	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/Drasnov/mtga-reader/internal/errs"
	"github.com/Drasnov/mtga-reader/internal/mirror"
)

// Driver is a MinIO-backed mirror.Store scoped to one bucket.
// It is safe for concurrent use by multiple goroutines.
type Driver struct {
	client *miniogo.Client
	bucket string
}

// New connects to the store and validates that the configured bucket
// exists before returning.
func New(ctx context.Context, cfg mirror.Config) (*Driver, error) {
	client, err := miniogo.New(cfg.Endpoint, &miniogo.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindConnectionFailed, "create minio client", err)
	}

	d := &Driver{client: client, bucket: cfg.Bucket}
	if err := d.Ping(ctx); err != nil {
		return nil, err
	}
	return d, nil
}

// Ping verifies the bucket is reachable with the configured credentials.
func (d *Driver) Ping(ctx context.Context) error {
	ok, err := d.client.BucketExists(ctx, d.bucket)
	if err != nil {
		return mapError(err, "ping failed")
	}
	if !ok {
		return errs.New(errs.ErrKindNotFound, "bucket "+d.bucket+" does not exist")
	}
	return nil
}

// Close is a no-op; the SDK client holds no persistent connections.
func (d *Driver) Close() error {
	return nil
}

// List returns every object under prefix, walking virtual directories.
func (d *Driver) List(ctx context.Context, prefix string) ([]mirror.ObjectInfo, error) {
	opts := miniogo.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}

	var objects []mirror.ObjectInfo
	for obj := range d.client.ListObjects(ctx, d.bucket, opts) {
		if obj.Err != nil {
			return nil, mapError(obj.Err, "list objects under "+prefix)
		}
		objects = append(objects, mirror.ObjectInfo{
			Key:          obj.Key,
			Size:         obj.Size,
			ETag:         obj.ETag,
			LastModified: obj.LastModified,
		})
	}
	return objects, nil
}

// Fetch opens the object at key. Stat runs first so a missing key
// surfaces here instead of on the first read.
func (d *Driver) Fetch(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := d.client.GetObject(ctx, d.bucket, key, miniogo.GetObjectOptions{})
	if err != nil {
		return nil, mapError(err, "get object "+key)
	}
	if _, err := obj.Stat(); err != nil {
		_ = obj.Close()
		return nil, mapError(err, "stat object "+key)
	}
	return obj, nil
}
