package integrity

import (
	"context"
	"errors"
	"fmt"

	"laion-dataset/core/shards"
	"laion-dataset/core/storage"
	"laion-dataset/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNotConfigured is returned by checks whose backend is not connected.
var ErrNotConfigured = errors.New("backend not configured")

// Service handles integrity checks.
type Service struct {
	client    storage.Client
	bucket    string
	db        *gorm.DB
	manualDir string
	shards    shards.Range
	logger    *zap.Logger
}

// NewService creates a new integrity service. client and db may be nil when
// the corresponding backend is not configured.
func NewService(client storage.Client, bucket string, db *gorm.DB, manualDir string, r shards.Range, logger *zap.Logger) *Service {
	return &Service{
		client:    client,
		bucket:    bucket,
		db:        db,
		manualDir: manualDir,
		shards:    r,
		logger:    logger,
	}
}

// Range returns the configured shard range.
func (s *Service) Range() shards.Range {
	return s.shards
}

// CheckShards reports missing shard files in r, or in the configured range
// when r is the zero value.
func (s *Service) CheckShards(ctx context.Context, r shards.Range) (*checks.ShardReport, error) {
	if r == (shards.Range{}) {
		r = s.shards
	}
	return checks.CheckShards(ctx, s.manualDir, r)
}

// CheckStructure returns a list of missing folders.
func (s *Service) CheckStructure(ctx context.Context) ([]string, error) {
	if s.client == nil {
		return nil, fmt.Errorf("storage: %w", ErrNotConfigured)
	}
	return checks.CheckStructure(ctx, s.client, s.bucket)
}

// FixStructure creates the missing folders.
func (s *Service) FixStructure(ctx context.Context, missing []string) error {
	if s.client == nil {
		return fmt.Errorf("storage: %w", ErrNotConfigured)
	}
	return checks.FixStructure(ctx, s.client, s.bucket, s.logger, missing)
}

// CheckCatalog compares the catalog table against the record model.
func (s *Service) CheckCatalog() (*checks.CatalogReport, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database: %w", ErrNotConfigured)
	}
	return checks.CheckCatalog(s.db)
}
