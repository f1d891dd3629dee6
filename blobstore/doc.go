// Package blobstore stores training artifacts (model snapshots, CSV exports,
// plots) as immutable named blobs.
//
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: a directory on the local filesystem
//   - MemoryStore: an in-process map, mostly for tests
//   - minio.Store: MinIO and other S3-compatible services
//   - s3.Store: Amazon S3 with multipart uploads
//
// # Custom Implementations
//
//	type Store interface {
//	    Put(ctx, name, data) error            // Atomic write
//	    Get(ctx, name) ([]byte, error)        // ErrNotFound if missing
//	    Delete(ctx, name) error               // Missing blobs are not an error
//	    List(ctx, prefix) ([]string, error)   // Sorted names
//	}
package blobstore
