package ingest

import (
	"context"

	"laion-dataset/core/catalog"
	"laion-dataset/core/utils"
	"laion-dataset/feature/laion"
)

// CatalogSink upserts record fields into the catalog table.
type CatalogSink struct {
	repo       *catalog.Repository
	batchSize  int
	objectKeys bool
}

// NewCatalogSink creates a sink buffering batchSize records per upsert. When
// objectKeys is set, catalog rows reference the image's storage object.
func NewCatalogSink(repo *catalog.Repository, batchSize int, objectKeys bool) *CatalogSink {
	if batchSize <= 0 {
		batchSize = catalog.DefaultBatchSize
	}
	return &CatalogSink{
		repo:       repo.WithBatchSize(batchSize),
		batchSize:  batchSize,
		objectKeys: objectKeys,
	}
}

// Name implements Sink.
func (s *CatalogSink) Name() string {
	return SinkCatalog
}

// Prepare migrates the catalog table.
func (s *CatalogSink) Prepare(ctx context.Context) error {
	return s.repo.Migrate()
}

// Reset deletes a shard's catalog rows.
func (s *CatalogSink) Reset(ctx context.Context, shardIdx int) error {
	_, err := s.repo.DeleteShard(ctx, shardIdx)
	return err
}

// Open implements Sink.
func (s *CatalogSink) Open(ctx context.Context, shardIdx int) (ShardWriter, error) {
	return &catalogWriter{sink: s, batch: make([]catalog.Record, 0, s.batchSize)}, nil
}

type catalogWriter struct {
	sink  *CatalogSink
	batch []catalog.Record
}

func (w *catalogWriter) Write(ctx context.Context, rec laion.Record) error {
	row := ToCatalogRecord(rec)
	if w.sink.objectKeys {
		row.ObjectKey = ImageObjectKey(rec)
	}
	w.batch = append(w.batch, row)
	if len(w.batch) >= w.sink.batchSize {
		return w.flush(ctx)
	}
	return nil
}

func (w *catalogWriter) Close(ctx context.Context) error {
	return w.flush(ctx)
}

func (w *catalogWriter) flush(ctx context.Context) error {
	if len(w.batch) == 0 {
		return nil
	}
	if err := w.sink.repo.Upsert(ctx, w.batch); err != nil {
		return err
	}
	w.batch = w.batch[:0]
	return nil
}

// ToCatalogRecord converts a generated record to its catalog row.
func ToCatalogRecord(rec laion.Record) catalog.Record {
	f := rec.Fields
	return catalog.Record{
		Key:            rec.Key,
		ShardIdx:       rec.ShardIdx,
		RowIdx:         rec.RowIdx,
		Caption:        utils.ToString(f[laion.FieldCaption]),
		URL:            utils.ToString(f[laion.FieldURL]),
		NSFW:           utils.ToString(f[laion.FieldNSFW]),
		Similarity:     utils.ToFloat(f[laion.FieldSimilarity]),
		License:        utils.ToString(f[laion.FieldLicense]),
		OriginalWidth:  utils.ToInt(f[laion.FieldOriginalWidth]),
		OriginalHeight: utils.ToInt(f[laion.FieldOriginalHeight]),
		ImageSize:      int64(len(rec.Image)),
	}
}
