package ingest

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"laion-dataset/core/catalog"
	"laion-dataset/core/reconcile"
	"laion-dataset/core/shards"
	"laion-dataset/core/storage"
	"laion-dataset/feature/laion"

	"github.com/minio/minio-go/v7"
)

// ShardAdapter reconciles one ingested shard against its source archive.
// Scopes are shard indices. Source and catalog items are catalog.Record values.
type ShardAdapter struct {
	builder *laion.Builder
	repo    *catalog.Repository
	client  storage.Client
	bucket  string
	catalog *CatalogSink
	storage *StorageSink
}

// NewShardAdapter creates an adapter over both sinks' backends.
func NewShardAdapter(builder *laion.Builder, b Backends, batchSize int) (*ShardAdapter, error) {
	if b.Storage == nil {
		return nil, fmt.Errorf("storage client not configured")
	}
	if b.Catalog == nil {
		return nil, fmt.Errorf("database not configured")
	}
	return &ShardAdapter{
		builder: builder,
		repo:    b.Catalog,
		client:  b.Storage,
		bucket:  b.Bucket,
		catalog: NewCatalogSink(b.Catalog, batchSize, true),
		storage: NewStorageSink(b.Storage, b.Bucket, b.Region),
	}, nil
}

// Spec returns the reconcile spec of one shard.
func (a *ShardAdapter) Spec(shardIdx int) *reconcile.Spec {
	return &reconcile.Spec{Adapter: a, Scope: strconv.Itoa(shardIdx)}
}

// Prepare makes sure the bucket and catalog table exist.
func (a *ShardAdapter) Prepare(ctx context.Context) error {
	if err := a.storage.Prepare(ctx); err != nil {
		return err
	}
	return a.catalog.Prepare(ctx)
}

// Name implements reconcile.Adapter.
func (a *ShardAdapter) Name() string {
	return "laion-shard"
}

func parseScope(scope string) (int, error) {
	idx, err := strconv.Atoi(scope)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", shards.ErrShardOutOfRange, scope)
	}
	if err := shards.Validate(idx); err != nil {
		return 0, err
	}
	return idx, nil
}

// LoadSourceIndex generates the shard and keeps each record's catalog row.
func (a *ShardAdapter) LoadSourceIndex(ctx context.Context, scope string) (map[string]reconcile.Item, error) {
	idx, err := parseScope(scope)
	if err != nil {
		return nil, err
	}
	index := make(map[string]reconcile.Item)
	for rec, err := range a.builder.GenerateShard(ctx, idx) {
		if err != nil {
			return nil, err
		}
		row := ToCatalogRecord(rec)
		row.ObjectKey = ImageObjectKey(rec)
		index[rec.Key] = row
	}
	return index, nil
}

// LoadCatalogIndex loads the shard's catalog rows.
func (a *ShardAdapter) LoadCatalogIndex(ctx context.Context, scope string) (map[string]reconcile.Item, error) {
	idx, err := parseScope(scope)
	if err != nil {
		return nil, err
	}
	rows, err := a.repo.ListShard(ctx, idx, 0)
	if err != nil {
		return nil, err
	}
	index := make(map[string]reconcile.Item, len(rows))
	for _, row := range rows {
		index[row.Key] = row
	}
	return index, nil
}

// LoadStorageSet lists the shard's uploaded images.
func (a *ShardAdapter) LoadStorageSet(ctx context.Context, scope string) (map[string]struct{}, error) {
	idx, err := parseScope(scope)
	if err != nil {
		return nil, err
	}
	prefix := ShardPrefix(ImagesPrefix, idx)
	set := make(map[string]struct{})
	for obj := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", prefix, obj.Err)
		}
		name := strings.TrimPrefix(obj.Key, prefix)
		key, ok := strings.CutSuffix(name, ".jpg")
		if !ok || key == "" || strings.Contains(key, "/") {
			continue
		}
		set[key] = struct{}{}
	}
	return set, nil
}

// CompareFields implements reconcile.Adapter.
func (a *ShardAdapter) CompareFields(source, cat reconcile.Item) []string {
	src := source.(catalog.Record)
	row := cat.(catalog.Record)

	var out []string
	check := func(field string, s, c any) {
		if s != c {
			out = append(out, fmt.Sprintf("%s: source=%v catalog=%v", field, s, c))
		}
	}
	check("row_idx", src.RowIdx, row.RowIdx)
	check("caption", src.Caption, row.Caption)
	check("url", src.URL, row.URL)
	check("nsfw", src.NSFW, row.NSFW)
	check("similarity", src.Similarity, row.Similarity)
	check("license", src.License, row.License)
	check("original_width", src.OriginalWidth, row.OriginalWidth)
	check("original_height", src.OriginalHeight, row.OriginalHeight)
	check("image_size", src.ImageSize, row.ImageSize)
	return out
}

// DeleteCatalog implements reconcile.Mutator.
func (a *ShardAdapter) DeleteCatalog(ctx context.Context, keys []string) error {
	_, err := a.repo.DeleteKeys(ctx, keys)
	return err
}

// DeleteStorage removes the image and metadata objects of keys in one batch.
func (a *ShardAdapter) DeleteStorage(ctx context.Context, keys []string) error {
	objects := make(chan minio.ObjectInfo, 2*len(keys))
	for _, key := range keys {
		shardIdx, _, err := shards.ParseKey(key)
		if err != nil {
			close(objects)
			return err
		}
		rec := laion.Record{Key: key, ShardIdx: shardIdx}
		objects <- minio.ObjectInfo{Key: ImageObjectKey(rec)}
		objects <- minio.ObjectInfo{Key: MetadataObjectKey(rec)}
	}
	close(objects)

	var errs []string
	for rerr := range a.client.RemoveObjects(ctx, a.bucket, objects, minio.RemoveObjectsOptions{}) {
		if rerr.Err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", rerr.ObjectName, rerr.Err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("batch delete had %d errors: %v", len(errs), errs)
	}
	return nil
}

// Sync regenerates the shard once and rewrites the records named by actions
// through the catalog and storage sinks.
func (a *ShardAdapter) Sync(ctx context.Context, scope string, actions []reconcile.Action) error {
	idx, err := parseScope(scope)
	if err != nil {
		return err
	}

	toCatalog := make(map[string]struct{})
	toStorage := make(map[string]struct{})
	for _, action := range actions {
		switch action.Type {
		case reconcile.ActionSyncCatalog:
			toCatalog[action.Key] = struct{}{}
		case reconcile.ActionSyncStorage:
			toStorage[action.Key] = struct{}{}
		default:
			return fmt.Errorf("unexpected action %s for %s", action.Type, action.Key)
		}
	}

	catalogWriter, err := a.catalog.Open(ctx, idx)
	if err != nil {
		return err
	}
	storageWriter, err := a.storage.Open(ctx, idx)
	if err != nil {
		return err
	}

	for rec, err := range a.builder.GenerateShard(ctx, idx) {
		if err != nil {
			return err
		}
		if _, ok := toCatalog[rec.Key]; ok {
			if err := catalogWriter.Write(ctx, rec); err != nil {
				return err
			}
		}
		if _, ok := toStorage[rec.Key]; ok {
			if err := storageWriter.Write(ctx, rec); err != nil {
				return err
			}
		}
	}

	if err := catalogWriter.Close(ctx); err != nil {
		return err
	}
	return storageWriter.Close(ctx)
}
