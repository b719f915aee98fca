package catalog

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned when no record has the requested key.
var ErrNotFound = errors.New("record not found")

// DefaultBatchSize is the number of rows per INSERT statement.
const DefaultBatchSize = 500

// Repository reads and writes catalog records.
type Repository struct {
	db        *gorm.DB
	batchSize int
}

// NewRepository creates a repository over db.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db, batchSize: DefaultBatchSize}
}

// WithBatchSize returns a copy of the repository inserting size rows per statement.
func (r *Repository) WithBatchSize(size int) *Repository {
	cp := *r
	if size > 0 {
		cp.batchSize = size
	}
	return &cp
}

// Migrate creates or updates the catalog table.
func (r *Repository) Migrate() error {
	if err := r.db.AutoMigrate(&Record{}); err != nil {
		return fmt.Errorf("failed to migrate %s: %w", TableName, err)
	}
	return nil
}

// Upsert inserts records, replacing rows whose key already exists.
func (r *Repository) Upsert(ctx context.Context, records []Record) error {
	if len(records) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "record_key"}},
			UpdateAll: true,
		}).
		CreateInBatches(records, r.batchSize).Error
	if err != nil {
		return fmt.Errorf("failed to upsert %d records: %w", len(records), err)
	}
	return nil
}

// Get returns the record with the given key.
func (r *Repository) Get(ctx context.Context, key string) (*Record, error) {
	var rec Record
	err := r.db.WithContext(ctx).Where("record_key = ?", key).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get record %s: %w", key, err)
	}
	return &rec, nil
}

// ListShard returns up to limit records of a shard ordered by row index.
func (r *Repository) ListShard(ctx context.Context, shardIdx, limit int) ([]Record, error) {
	var out []Record
	q := r.db.WithContext(ctx).Where("shard_idx = ?", shardIdx).Order("row_idx")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list shard %d: %w", shardIdx, err)
	}
	return out, nil
}

// CountByShard returns the number of catalogued records of a shard.
func (r *Repository) CountByShard(ctx context.Context, shardIdx int) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&Record{}).Where("shard_idx = ?", shardIdx).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count shard %d: %w", shardIdx, err)
	}
	return n, nil
}

// DeleteShard removes every record of a shard and returns how many were deleted.
func (r *Repository) DeleteShard(ctx context.Context, shardIdx int) (int64, error) {
	res := r.db.WithContext(ctx).Where("shard_idx = ?", shardIdx).Delete(&Record{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete shard %d: %w", shardIdx, res.Error)
	}
	return res.RowsAffected, nil
}

// DeleteKeys removes the records with the given keys and returns how many were deleted.
func (r *Repository) DeleteKeys(ctx context.Context, keys []string) (int64, error) {
	if len(keys) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Where("record_key IN ?", keys).Delete(&Record{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete %d records: %w", len(keys), res.Error)
	}
	return res.RowsAffected, nil
}
