package ingest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"laion-dataset/core/shards"
	"laion-dataset/feature/laion"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Pipeline ingests ranges of shards into a set of sinks.
type Pipeline struct {
	builder *laion.Builder
	sinks   []Sink
	workers int
	clean   bool
	logger  *zap.Logger
}

// NewPipeline creates a pipeline over builder writing to sinks.
func NewPipeline(builder *laion.Builder, cfg Config, logger *zap.Logger, sinks ...Sink) *Pipeline {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	return &Pipeline{
		builder: builder,
		sinks:   sinks,
		workers: workers,
		clean:   cfg.Clean,
		logger:  logger,
	}
}

// Run ingests every shard of r. Shards run concurrently on up to Workers
// goroutines; records of one shard are written in archive order. The first
// failing shard cancels the run. The returned summary counts the shards that
// completed, also when err is non-nil.
func (p *Pipeline) Run(ctx context.Context, r shards.Range) (*Summary, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if err := p.builder.DownloadData(ctx); err != nil {
		return nil, err
	}
	for _, s := range p.sinks {
		if err := s.Prepare(ctx); err != nil {
			return nil, fmt.Errorf("failed to prepare sink %s: %w", s.Name(), err)
		}
	}

	p.logger.Info("Ingestion started",
		zap.Int("start", r.Start),
		zap.Int("end", r.End),
		zap.Int("workers", p.workers))

	var (
		mu      sync.Mutex
		summary Summary
	)
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for _, idx := range r.Indices() {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			records, size, err := p.ingestShard(gctx, idx)
			if err != nil {
				return err
			}
			mu.Lock()
			summary.Shards++
			summary.Records += records
			summary.Bytes += size
			mu.Unlock()
			return nil
		})
	}

	err := g.Wait()
	summary.Duration = time.Since(start)
	if err == nil {
		// A cancelled parent stops scheduling without any shard failing.
		err = ctx.Err()
	}

	if err != nil {
		p.logger.Error("Ingestion failed", zap.Error(err), summaryField(summary))
		return &summary, err
	}
	p.logger.Info("Ingestion finished", summaryField(summary))
	return &summary, nil
}

func (p *Pipeline) ingestShard(ctx context.Context, idx int) (records, size int64, err error) {
	if p.clean {
		for _, s := range p.sinks {
			if err := s.Reset(ctx, idx); err != nil {
				return 0, 0, fmt.Errorf("shard %d: reset %s: %w", idx, s.Name(), err)
			}
		}
	}

	writers := make([]ShardWriter, 0, len(p.sinks))
	for _, s := range p.sinks {
		w, err := s.Open(ctx, idx)
		if err != nil {
			return 0, 0, fmt.Errorf("shard %d: open %s: %w", idx, s.Name(), err)
		}
		writers = append(writers, w)
	}

	for rec, err := range p.builder.GenerateShard(ctx, idx) {
		if err != nil {
			return 0, 0, err
		}
		for i, w := range writers {
			if err := w.Write(ctx, rec); err != nil {
				return 0, 0, fmt.Errorf("shard %d: %s: %w", idx, p.sinks[i].Name(), err)
			}
		}
		records++
		size += int64(len(rec.Image))
	}

	for i, w := range writers {
		if err := w.Close(ctx); err != nil {
			return 0, 0, fmt.Errorf("shard %d: %s: %w", idx, p.sinks[i].Name(), err)
		}
	}

	p.logger.Debug("Shard ingested",
		zap.Int("shard", idx),
		zap.Int64("records", records))
	return records, size, nil
}
