package laion

import (
	"fmt"
	"testing"

	"laion-dataset/core/archive/archivetest"
	"laion-dataset/core/metadata"
	"laion-dataset/core/metadata/metadatatest"
	"laion-dataset/core/shards"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// laionRows returns n metadata rows with distinct captions and URLs.
func laionRows(n int) []metadatatest.LaionRow {
	rows := make([]metadatatest.LaionRow, n)
	for i := range rows {
		rows[i] = metadatatest.LaionRow{
			Caption:        metadatatest.Ptr(fmt.Sprintf("caption %d", i)),
			URL:            fmt.Sprintf("https://example.com/%d.jpg", i),
			NSFW:           metadatatest.Ptr("UNLIKELY"),
			Similarity:     metadatatest.Ptr(0.3),
			License:        metadatatest.Ptr("?"),
			OriginalWidth:  metadatatest.Ptr(640),
			OriginalHeight: metadatatest.Ptr(480),
		}
	}
	return rows
}

// writeShard writes the tar and parquet files of shard idx into dir.
func writeShard(t *testing.T, dir string, idx int, members []archivetest.File, rows []metadatatest.LaionRow) {
	t.Helper()
	archivePath, metadataPath := shards.Paths(dir, idx)
	archivetest.WriteTar(t, archivePath, members...)
	metadatatest.WriteLaion(t, metadataPath, rows...)
}

func newTestBuilder(t *testing.T, dir string, opts ...BuilderOpt) *Builder {
	t.Helper()
	reader, err := metadata.NewReader()
	require.NoError(t, err)
	t.Cleanup(func() { _ = reader.Close() })
	return NewBuilder(dir, reader, zap.NewNop(), opts...)
}

func imageFile(name string) archivetest.File {
	return archivetest.File{Name: name, Body: []byte("jpeg:" + name)}
}

func sidecar(name string) archivetest.File {
	return archivetest.File{Name: name, Body: []byte("{}")}
}

