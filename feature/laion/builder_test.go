package laion

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"laion-dataset/core/archive/archivetest"
	"laion-dataset/core/metadata"
	"laion-dataset/core/metadata/metadatatest"
	"laion-dataset/core/shards"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func collect(t *testing.T, b *Builder, idx int) ([]Record, error) {
	t.Helper()
	var out []Record
	for rec, err := range b.GenerateShard(context.Background(), idx) {
		if err != nil {
			return out, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func TestGenerateShard_Scenario(t *testing.T) {
	dir := t.TempDir()
	writeShard(t, dir, 0,
		[]archivetest.File{imageFile("0.jpg"), imageFile("1.jpg"), sidecar("0.json")},
		laionRows(2))

	records, err := collect(t, newTestBuilder(t, dir), 0)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "0_0", records[0].Key)
	assert.Equal(t, []byte("jpeg:0.jpg"), records[0].Image)
	assert.Equal(t, "caption 0", records[0].Fields[FieldCaption])
	assert.Equal(t, "https://example.com/0.jpg", records[0].Fields[FieldURL])

	assert.Equal(t, "0_1", records[1].Key)
	assert.Equal(t, []byte("jpeg:1.jpg"), records[1].Image)
	assert.Equal(t, "caption 1", records[1].Fields[FieldCaption])
	assert.Equal(t, 1, records[1].RowIdx)
	assert.Equal(t, "1.jpg", records[1].MemberName)
}

func TestGenerateShard_ArchiveOrder(t *testing.T) {
	dir := t.TempDir()
	writeShard(t, dir, 12,
		[]archivetest.File{imageFile("2.jpg"), sidecar("2.txt"), imageFile("0.jpg"), imageFile("1.jpg")},
		laionRows(3))

	records, err := collect(t, newTestBuilder(t, dir), 12)
	require.NoError(t, err)

	var keys []string
	for _, r := range records {
		keys = append(keys, r.Key)
	}
	assert.Equal(t, []string{"12_2", "12_0", "12_1"}, keys)
}

func TestGenerateShard_OneRecordPerImage(t *testing.T) {
	const n = 25
	dir := t.TempDir()
	var members []archivetest.File
	for i := 0; i < n; i++ {
		members = append(members,
			imageFile(strconv.Itoa(i)+".jpg"),
			sidecar(strconv.Itoa(i)+".json"),
			archivetest.File{Name: strconv.Itoa(i) + ".txt", Body: []byte("caption")})
	}
	writeShard(t, dir, 3, members, laionRows(n))

	records, err := collect(t, newTestBuilder(t, dir), 3)
	require.NoError(t, err)
	require.Len(t, records, n)

	seen := make(map[string]struct{}, n)
	for _, r := range records {
		seen[r.Key] = struct{}{}
	}
	assert.Len(t, seen, n)
}

func TestGenerateShard_SidecarsOnly(t *testing.T) {
	dir := t.TempDir()
	writeShard(t, dir, 1,
		[]archivetest.File{sidecar("0.json"), {Name: "0.txt", Body: []byte("x")}},
		laionRows(1))

	records, err := collect(t, newTestBuilder(t, dir), 1)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestGenerateShard_RowOutOfRange(t *testing.T) {
	dir := t.TempDir()
	writeShard(t, dir, 0,
		[]archivetest.File{imageFile("0.jpg"), imageFile("5.jpg"), imageFile("1.jpg")},
		laionRows(2))

	records, err := collect(t, newTestBuilder(t, dir), 0)
	assert.ErrorIs(t, err, metadata.ErrRowOutOfRange)
	require.Len(t, records, 1, "emission halts at the failing member")
	assert.Equal(t, "0_0", records[0].Key)
}

func TestGenerateShard_NegativeRowIndex(t *testing.T) {
	dir := t.TempDir()
	writeShard(t, dir, 0, []archivetest.File{imageFile("-1.jpg")}, laionRows(2))

	records, err := collect(t, newTestBuilder(t, dir), 0)
	assert.ErrorIs(t, err, metadata.ErrRowOutOfRange)
	assert.Empty(t, records)
}

func TestGenerateShard_MalformedName(t *testing.T) {
	dir := t.TempDir()
	writeShard(t, dir, 0, []archivetest.File{imageFile("cover.jpg")}, laionRows(1))

	_, err := collect(t, newTestBuilder(t, dir), 0)
	assert.ErrorIs(t, err, strconv.ErrSyntax)
}

func TestGenerateShard_MissingFiles(t *testing.T) {
	t.Run("Metadata", func(t *testing.T) {
		dir := t.TempDir()
		archivePath, _ := shards.Paths(dir, 4)
		archivetest.WriteTar(t, archivePath, imageFile("0.jpg"))

		_, err := collect(t, newTestBuilder(t, dir), 4)
		assert.True(t, IsNotExist(err))
	})

	t.Run("Archive", func(t *testing.T) {
		dir := t.TempDir()
		_, metadataPath := shards.Paths(dir, 4)
		metadatatest.WriteLaion(t, metadataPath, laionRows(1)...)

		_, err := collect(t, newTestBuilder(t, dir), 4)
		assert.True(t, IsNotExist(err))
		assert.Contains(t, err.Error(), "shard 4")
	})
}

func TestGenerateShard_InvalidShard(t *testing.T) {
	_, err := collect(t, newTestBuilder(t, t.TempDir()), shards.Count)
	assert.ErrorIs(t, err, shards.ErrShardOutOfRange)
}

func TestGenerateShard_EarlyBreakAndRestart(t *testing.T) {
	dir := t.TempDir()
	writeShard(t, dir, 0,
		[]archivetest.File{imageFile("0.jpg"), imageFile("1.jpg"), imageFile("2.jpg")},
		laionRows(3))
	b := newTestBuilder(t, dir)

	seq := b.GenerateShard(context.Background(), 0)
	for rec, err := range seq {
		require.NoError(t, err)
		assert.Equal(t, "0_0", rec.Key)
		break
	}

	// A second pass re-opens the shard and starts over.
	var keys []string
	for rec, err := range seq {
		require.NoError(t, err)
		keys = append(keys, rec.Key)
	}
	assert.Equal(t, []string{"0_0", "0_1", "0_2"}, keys)
}

func TestGenerateShard_Cancelled(t *testing.T) {
	dir := t.TempDir()
	writeShard(t, dir, 0, []archivetest.File{imageFile("0.jpg")}, laionRows(1))
	b := newTestBuilder(t, dir)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var gotErr error
	for _, err := range b.GenerateShard(ctx, 0) {
		gotErr = err
	}
	assert.ErrorIs(t, gotErr, context.Canceled)
}

func TestGenerateShard_CustomExtractor(t *testing.T) {
	dir := t.TempDir()
	writeShard(t, dir, 0, []archivetest.File{imageFile("0.jpg")}, laionRows(1))

	extractor := ExtractorFunc(func(row metadata.Row) (map[string]any, error) {
		return map[string]any{"alt": row.String(ColumnCaption)}, nil
	})
	records, err := collect(t, newTestBuilder(t, dir, WithExtractor(extractor)), 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, map[string]any{"alt": "caption 0"}, records[0].Fields)

	t.Run("ExtractorError", func(t *testing.T) {
		failing := ExtractorFunc(func(metadata.Row) (map[string]any, error) {
			return nil, assert.AnError
		})
		_, err := collect(t, newTestBuilder(t, dir, WithExtractor(failing)), 0)
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestRecord_Features(t *testing.T) {
	rec := Record{
		Key:    "0_0",
		Image:  []byte("img"),
		Fields: map[string]any{FieldCaption: "c", FieldURL: "u"},
	}
	features := rec.Features()
	assert.Equal(t, []byte("img"), features[FieldImage])
	assert.Equal(t, "c", features[FieldCaption])
	assert.Len(t, features, 3)
	assert.NotContains(t, rec.Fields, FieldImage)
}

func TestDownloadData(t *testing.T) {
	ctx := context.Background()

	t.Run("Missing", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "absent")
		loader := &countingLoader{}
		b := NewBuilder(dir, loader, zap.NewNop())

		err := b.DownloadData(ctx)
		var mde *ManualDirError
		require.True(t, errors.As(err, &mde))
		assert.Equal(t, dir, mde.Dir)
		assert.True(t, IsNotExist(err))
		assert.Contains(t, err.Error(), "requires manual download")
		assert.Contains(t, err.Error(), dir)
		assert.Zero(t, loader.calls)
	})

	t.Run("Empty", func(t *testing.T) {
		err := NewBuilder(t.TempDir(), &countingLoader{}, zap.NewNop()).DownloadData(ctx)
		assert.ErrorIs(t, err, ErrManualDirEmpty)
	})

	t.Run("NotADirectory", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
		err := NewBuilder(file, &countingLoader{}, zap.NewNop()).DownloadData(ctx)
		var mde *ManualDirError
		assert.True(t, errors.As(err, &mde))
	})

	t.Run("Present", func(t *testing.T) {
		dir := t.TempDir()
		writeShard(t, dir, 0, []archivetest.File{imageFile("0.jpg")}, laionRows(1))
		assert.NoError(t, newTestBuilder(t, dir).DownloadData(ctx))
	})
}

type countingLoader struct {
	calls int
}

func (l *countingLoader) Load(ctx context.Context, path string) (*metadata.Table, error) {
	l.calls++
	return metadata.NewTable(nil, nil), nil
}
