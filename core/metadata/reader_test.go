package metadata_test

import (
	"context"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"testing"

	"laion-dataset/core/metadata"
	"laion-dataset/core/metadata/metadatatest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReader_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "00000.parquet")
	metadatatest.WriteLaion(t, path,
		metadatatest.LaionRow{
			Caption:        metadatatest.Ptr("a red bicycle"),
			URL:            "https://example.com/0.jpg",
			NSFW:           metadatatest.Ptr("UNLIKELY"),
			Similarity:     metadatatest.Ptr(0.34),
			License:        metadatatest.Ptr("?"),
			OriginalWidth:  metadatatest.Ptr(640),
			OriginalHeight: metadatatest.Ptr(480),
		},
		metadatatest.LaionRow{
			URL: "https://example.com/1.jpg",
		},
	)

	table, err := metadata.Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, path, table.Path())
	assert.Equal(t, 2, table.Len())
	assert.Equal(t,
		[]string{"caption", "url", "NSFW", "similarity", "LICENSE", "original_width", "original_height"},
		table.Columns())

	t.Run("Values", func(t *testing.T) {
		row, err := table.Row(0)
		require.NoError(t, err)
		assert.Equal(t, "a red bicycle", row.String("caption"))
		assert.Equal(t, "https://example.com/0.jpg", row.String("url"))
		assert.InDelta(t, 0.34, row.Float("similarity"), 1e-9)
		w, ok := row.Int("original_width")
		assert.True(t, ok)
		assert.Equal(t, 640, w)
	})

	t.Run("Nulls", func(t *testing.T) {
		row, err := table.Row(1)
		require.NoError(t, err)
		assert.True(t, row.IsNull("caption"))
		assert.Equal(t, "", row.String("caption"))
		assert.True(t, math.IsNaN(row.Float("similarity")))
		_, ok := row.Int("original_height")
		assert.False(t, ok)
		assert.Equal(t, "https://example.com/1.jpg", row.String("url"))
	})

	t.Run("OutOfRange", func(t *testing.T) {
		_, err := table.Row(2)
		assert.ErrorIs(t, err, metadata.ErrRowOutOfRange)
		_, err = table.Row(-1)
		assert.ErrorIs(t, err, metadata.ErrRowOutOfRange)
	})
}

func TestReader_PreservesFileOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ordered.parquet")
	metadatatest.WriteQuery(t, path, "SELECT 999 - i AS v FROM range(1000) t(i)")

	reader, err := metadata.NewReader(metadata.WithThreads(4), metadata.WithMemoryLimit("256MB"))
	require.NoError(t, err)
	defer reader.Close()

	table, err := reader.Load(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, 1000, table.Len())

	for _, i := range []int{0, 1, 500, 999} {
		row, err := table.Row(i)
		require.NoError(t, err)
		v, ok := row.Int("v")
		require.True(t, ok)
		assert.Equal(t, 999-i, v)
	}
}

func TestReader_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.parquet")
	metadatatest.WriteLaion(t, path)

	table, err := metadata.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
	_, err = table.Row(0)
	assert.ErrorIs(t, err, metadata.ErrRowOutOfRange)
}

func TestReader_MissingFile(t *testing.T) {
	_, err := metadata.Load(context.Background(), filepath.Join(t.TempDir(), "00001.parquet"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestReader_QuotedPath(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "it's here")
	path := filepath.Join(dir, "00000.parquet")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	metadatatest.WriteQuery(t, path, "SELECT 1 AS v")

	table, err := metadata.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())
}

func TestNewTable(t *testing.T) {
	table := metadata.NewTable([]string{"caption"}, []metadata.Row{{"caption": "x"}})
	row, err := table.Row(0)
	require.NoError(t, err)
	assert.Equal(t, "x", row.String("caption"))
	assert.Equal(t, "", table.Path())
}
