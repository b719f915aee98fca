package laion

import (
	"context"
	"errors"
	"fmt"
	"os"

	"laion-dataset/core/shards"

	"go.uber.org/zap"
)

// ErrRecordNotFound is returned when a shard holds no record with the requested row.
var ErrRecordNotFound = errors.New("record not found")

// ShardStatus describes the presence of a shard's files.
type ShardStatus struct {
	Index           int    `json:"index"`
	ArchivePath     string `json:"archive_path"`
	MetadataPath    string `json:"metadata_path"`
	ArchivePresent  bool   `json:"archive_present"`
	MetadataPresent bool   `json:"metadata_present"`
	ArchiveSize     int64  `json:"archive_size"`
	MetadataSize    int64  `json:"metadata_size"`
}

// Complete reports whether both shard files are present.
func (s ShardStatus) Complete() bool {
	return s.ArchivePresent && s.MetadataPresent
}

// Service answers dataset queries on top of a Builder.
type Service struct {
	builder *Builder
	info    Info
	logger  *zap.Logger
}

// NewService creates a new dataset service.
func NewService(builder *Builder, logger *zap.Logger) *Service {
	return &Service{
		builder: builder,
		info:    NewInfo(),
		logger:  logger,
	}
}

// Builder returns the underlying record builder.
func (s *Service) Builder() *Builder {
	return s.builder
}

// Info returns the dataset description.
func (s *Service) Info() Info {
	return s.info
}

// Shard reports where a shard's files are expected and whether they exist.
func (s *Service) Shard(shardIdx int) (*ShardStatus, error) {
	if err := shards.Validate(shardIdx); err != nil {
		return nil, err
	}
	archivePath, metadataPath := s.builder.ShardPaths(shardIdx)
	status := &ShardStatus{
		Index:        shardIdx,
		ArchivePath:  archivePath,
		MetadataPath: metadataPath,
	}
	if fi, err := os.Stat(archivePath); err == nil {
		status.ArchivePresent = true
		status.ArchiveSize = fi.Size()
	}
	if fi, err := os.Stat(metadataPath); err == nil {
		status.MetadataPresent = true
		status.MetadataSize = fi.Size()
	}
	return status, nil
}

// ShardRecords returns the first limit records of a shard. A limit <= 0 returns all.
func (s *Service) ShardRecords(ctx context.Context, shardIdx, limit int) ([]Record, error) {
	var out []Record
	for rec, err := range s.builder.GenerateShard(ctx, shardIdx) {
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

// Record returns the record with the given key by scanning its shard.
func (s *Service) Record(ctx context.Context, key string) (*Record, error) {
	shardIdx, rowIdx, err := shards.ParseKey(key)
	if err != nil {
		return nil, err
	}

	for rec, err := range s.builder.GenerateShard(ctx, shardIdx) {
		if err != nil {
			return nil, err
		}
		if rec.RowIdx == rowIdx {
			return &rec, nil
		}
	}

	s.logger.Debug("Record not present in shard archive", zap.String("key", key))
	return nil, fmt.Errorf("%w: %s", ErrRecordNotFound, key)
}
