package ingest

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"laion-dataset/core/storage"
	"laion-dataset/feature/laion"

	"github.com/goccy/go-json"
	"github.com/minio/minio-go/v7"
)

// Object key prefixes in the bucket.
const (
	ImagesPrefix   = "images"
	MetadataPrefix = "metadata"
)

// ShardPrefix returns the folder holding one shard's objects under prefix.
func ShardPrefix(prefix string, shardIdx int) string {
	return fmt.Sprintf("%s/%05d/", prefix, shardIdx)
}

// ImageObjectKey returns the object key of a record's image.
func ImageObjectKey(rec laion.Record) string {
	return ShardPrefix(ImagesPrefix, rec.ShardIdx) + rec.Key + ".jpg"
}

// MetadataObjectKey returns the object key of a record's metadata document.
func MetadataObjectKey(rec laion.Record) string {
	return ShardPrefix(MetadataPrefix, rec.ShardIdx) + rec.Key + ".json"
}

// StorageSink uploads records to an object storage bucket.
type StorageSink struct {
	client storage.Client
	bucket string
	region string
}

// NewStorageSink creates a sink writing to bucket.
func NewStorageSink(client storage.Client, bucket, region string) *StorageSink {
	return &StorageSink{client: client, bucket: bucket, region: region}
}

// Name implements Sink.
func (s *StorageSink) Name() string {
	return SinkStorage
}

// Prepare creates the bucket if needed.
func (s *StorageSink) Prepare(ctx context.Context) error {
	return storage.EnsureBucket(ctx, s.client, s.bucket, s.region)
}

// Reset removes a shard's images and metadata documents.
func (s *StorageSink) Reset(ctx context.Context, shardIdx int) error {
	for _, prefix := range []string{ImagesPrefix, MetadataPrefix} {
		if err := s.removePrefix(ctx, ShardPrefix(prefix, shardIdx)); err != nil {
			return err
		}
	}
	return nil
}

func (s *StorageSink) removePrefix(ctx context.Context, prefix string) error {
	objects := make(chan minio.ObjectInfo)
	listErr := make(chan error, 1)

	go func() {
		defer close(objects)
		for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
			if obj.Err != nil {
				listErr <- obj.Err
				return
			}
			select {
			case objects <- obj:
			case <-ctx.Done():
				listErr <- ctx.Err()
				return
			}
		}
		listErr <- nil
	}()

	var firstErr error
	for rerr := range s.client.RemoveObjects(ctx, s.bucket, objects, minio.RemoveObjectsOptions{}) {
		if firstErr == nil {
			firstErr = fmt.Errorf("failed to remove %s: %w", rerr.ObjectName, rerr.Err)
		}
	}
	// RemoveObjects may stop reading early; drain so the lister can exit.
	for range objects {
	}
	if err := <-listErr; err != nil {
		return fmt.Errorf("failed to list %s: %w", prefix, err)
	}
	return firstErr
}

// Open implements Sink.
func (s *StorageSink) Open(ctx context.Context, shardIdx int) (ShardWriter, error) {
	return &storageWriter{sink: s}, nil
}

// metadataDocument is the JSON stored next to each image.
type metadataDocument struct {
	Key        string         `json:"key"`
	Shard      int            `json:"shard"`
	Row        int            `json:"row"`
	MemberName string         `json:"member_name"`
	ImageKey   string         `json:"image_key"`
	ImageSize  int            `json:"image_size"`
	Fields     map[string]any `json:"fields"`
}

type storageWriter struct {
	sink *StorageSink
}

func (w *storageWriter) Write(ctx context.Context, rec laion.Record) error {
	imageKey := ImageObjectKey(rec)
	_, err := w.sink.client.PutObject(ctx, w.sink.bucket, imageKey,
		bytes.NewReader(rec.Image), int64(len(rec.Image)),
		minio.PutObjectOptions{ContentType: http.DetectContentType(rec.Image)})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", imageKey, err)
	}

	doc, err := json.Marshal(metadataDocument{
		Key:        rec.Key,
		Shard:      rec.ShardIdx,
		Row:        rec.RowIdx,
		MemberName: rec.MemberName,
		ImageKey:   imageKey,
		ImageSize:  len(rec.Image),
		Fields:     rec.Fields,
	})
	if err != nil {
		return fmt.Errorf("failed to encode metadata of %s: %w", rec.Key, err)
	}

	metaKey := MetadataObjectKey(rec)
	_, err = w.sink.client.PutObject(ctx, w.sink.bucket, metaKey,
		bytes.NewReader(doc), int64(len(doc)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", metaKey, err)
	}
	return nil
}

func (w *storageWriter) Close(ctx context.Context) error {
	return nil
}
