package ingest

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"testing"

	"laion-dataset/core/archive/archivetest"
	"laion-dataset/core/metadata"
	"laion-dataset/core/metadata/metadatatest"
	"laion-dataset/core/shards"
	"laion-dataset/feature/laion"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// writeShard writes shard idx with n images and n metadata rows into dir.
func writeShard(t *testing.T, dir string, idx, n int) {
	t.Helper()
	var members []archivetest.File
	rows := make([]metadatatest.LaionRow, 0, n)
	for i := 0; i < n; i++ {
		members = append(members,
			archivetest.File{Name: strconv.Itoa(i) + ".jpg", Body: []byte(fmt.Sprintf("img-%d-%d", idx, i))},
			archivetest.File{Name: strconv.Itoa(i) + ".json", Body: []byte("{}")})
		rows = append(rows, metadatatest.LaionRow{
			Caption:    metadatatest.Ptr(fmt.Sprintf("caption %d/%d", idx, i)),
			URL:        fmt.Sprintf("https://example.com/%d/%d.jpg", idx, i),
			NSFW:       metadatatest.Ptr("UNLIKELY"),
			Similarity: metadatatest.Ptr(0.32),
			License:    nil,
		})
	}
	archivePath, metadataPath := shards.Paths(dir, idx)
	archivetest.WriteTar(t, archivePath, members...)
	metadatatest.WriteLaion(t, metadataPath, rows...)
}

func newTestBuilder(t *testing.T, dir string) *laion.Builder {
	t.Helper()
	reader, err := metadata.NewReader()
	require.NoError(t, err)
	t.Cleanup(func() { _ = reader.Close() })
	return laion.NewBuilder(dir, reader, zap.NewNop())
}

// memorySink records everything written to it.
type memorySink struct {
	mu       sync.Mutex
	prepared int
	resets   []int
	records  map[int][]string
	closed   map[int]bool
	failOn   string
}

func newMemorySink() *memorySink {
	return &memorySink{records: make(map[int][]string), closed: make(map[int]bool)}
}

func (s *memorySink) Name() string { return "memory" }

func (s *memorySink) Prepare(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prepared++
	return nil
}

func (s *memorySink) Reset(ctx context.Context, shardIdx int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resets = append(s.resets, shardIdx)
	return nil
}

func (s *memorySink) Open(ctx context.Context, shardIdx int) (ShardWriter, error) {
	return &memoryWriter{sink: s, shard: shardIdx}, nil
}

func (s *memorySink) keys(shardIdx int) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records[shardIdx]
}

type memoryWriter struct {
	sink  *memorySink
	shard int
}

func (w *memoryWriter) Write(ctx context.Context, rec laion.Record) error {
	if rec.Key == w.sink.failOn {
		return fmt.Errorf("write %s refused", rec.Key)
	}
	w.sink.mu.Lock()
	defer w.sink.mu.Unlock()
	w.sink.records[w.shard] = append(w.sink.records[w.shard], rec.Key)
	return nil
}

func (w *memoryWriter) Close(ctx context.Context) error {
	w.sink.mu.Lock()
	defer w.sink.mu.Unlock()
	w.sink.closed[w.shard] = true
	return nil
}
