package ingest

import (
	"context"
	"fmt"

	"laion-dataset/core/catalog"
	"laion-dataset/core/storage"
	"laion-dataset/feature/laion"
)

// Sink receives the records of ingested shards.
type Sink interface {
	// Name identifies the sink in logs and errors.
	Name() string
	// Prepare is called once before any shard is ingested.
	Prepare(ctx context.Context) error
	// Reset removes everything previously written for a shard.
	Reset(ctx context.Context, shardIdx int) error
	// Open starts writing one shard.
	Open(ctx context.Context, shardIdx int) (ShardWriter, error)
}

// ShardWriter writes the records of a single shard. It is used by one
// goroutine only.
type ShardWriter interface {
	Write(ctx context.Context, rec laion.Record) error
	// Close flushes buffered records. It is not called when the shard fails.
	Close(ctx context.Context) error
}

// Backends are the connections sinks may be built on.
type Backends struct {
	Storage storage.Client
	Bucket  string
	Region  string
	Catalog *catalog.Repository
}

// BuildSinks creates the sinks named in cfg.
func BuildSinks(cfg Config, b Backends) ([]Sink, error) {
	names := cfg.SinkNames()
	if len(names) == 0 {
		return nil, fmt.Errorf("no sinks configured")
	}

	storageEnabled := false
	for _, name := range names {
		if name == SinkStorage {
			storageEnabled = true
		}
	}

	sinks := make([]Sink, 0, len(names))
	for _, name := range names {
		switch name {
		case SinkStorage:
			if b.Storage == nil {
				return nil, fmt.Errorf("sink %s: storage client not configured", name)
			}
			sinks = append(sinks, NewStorageSink(b.Storage, b.Bucket, b.Region))
		case SinkCatalog:
			if b.Catalog == nil {
				return nil, fmt.Errorf("sink %s: database not configured", name)
			}
			sinks = append(sinks, NewCatalogSink(b.Catalog, cfg.BatchSize, storageEnabled))
		default:
			return nil, fmt.Errorf("unknown sink %q", name)
		}
	}
	return sinks, nil
}
