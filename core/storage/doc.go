// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind a small interface used to export dataset
// records (image bytes and metadata documents) and to verify the bucket layout.
// Both AWS S3 and self-hosted MinIO instances are supported.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider so storage
// interactions can be mocked in unit tests (see core/storage/mocks).
//
// # Operations
//
//   - BucketExists / MakeBucket: Verify or create the export bucket.
//   - PutObject: Upload an image or metadata document.
//   - GetObject: Stream an exported object back.
//   - ListObjects / RemoveObjects: Enumerate and purge a shard's exported objects.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	exists, err := client.BucketExists(ctx, cfg.Storage.Bucket)
package storage
