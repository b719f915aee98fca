package laion

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"

	"laion-dataset/core/archive"
	"laion-dataset/core/metadata"
	"laion-dataset/core/shards"

	"go.uber.org/zap"
)

// TableLoader loads a shard's metadata table. *metadata.Reader implements it.
type TableLoader interface {
	Load(ctx context.Context, path string) (*metadata.Table, error)
}

// Record is one dataset example.
type Record struct {
	// Key is the globally unique "<shard>_<row>" key.
	Key string
	// ShardIdx is the shard the record was read from.
	ShardIdx int
	// RowIdx is the record's row in the shard's metadata table.
	RowIdx int
	// MemberName is the archive member holding the image.
	MemberName string
	// Image holds the encoded image bytes.
	Image []byte
	// Fields holds the extracted metadata fields.
	Fields map[string]any
}

// Features returns the record in output schema form: the image plus every
// metadata field.
func (r Record) Features() map[string]any {
	out := make(map[string]any, len(r.Fields)+1)
	for k, v := range r.Fields {
		out[k] = v
	}
	out[FieldImage] = r.Image
	return out
}

// ManualDirError reports a missing or empty manual download directory.
type ManualDirError struct {
	Dir string
	Err error
}

func (e *ManualDirError) Error() string {
	return fmt.Sprintf("LAION-400M requires manual download of the images. "+
		"Please download the images and place them into: %s (%s)", e.Dir, ManualDownloadInstructions)
}

func (e *ManualDirError) Unwrap() error {
	return e.Err
}

// ErrManualDirEmpty is wrapped by ManualDirError when the directory has no entries.
var ErrManualDirEmpty = errors.New("manual directory is empty")

// Builder generates LAION-400M records from the shards in a manual directory.
type Builder struct {
	manualDir string
	tables    TableLoader
	extractor Extractor
	logger    *zap.Logger
}

// BuilderOpt configures a Builder.
type BuilderOpt func(*Builder)

// WithExtractor replaces the LAION metadata extractor.
func WithExtractor(e Extractor) BuilderOpt {
	return func(b *Builder) {
		b.extractor = e
	}
}

// NewBuilder creates a builder over manualDir.
func NewBuilder(manualDir string, tables TableLoader, logger *zap.Logger, opts ...BuilderOpt) *Builder {
	b := &Builder{
		manualDir: manualDir,
		tables:    tables,
		extractor: LaionExtractor{},
		logger:    logger,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// ManualDir returns the directory the shards are read from.
func (b *Builder) ManualDir() string {
	return b.manualDir
}

// DownloadData verifies that the manually downloaded data is in place. It must
// succeed before any shard is generated; nothing is downloaded.
func (b *Builder) DownloadData(ctx context.Context) error {
	info, err := os.Stat(b.manualDir)
	if err != nil {
		return &ManualDirError{Dir: b.manualDir, Err: err}
	}
	if !info.IsDir() {
		return &ManualDirError{Dir: b.manualDir, Err: fmt.Errorf("%s is not a directory", b.manualDir)}
	}
	entries, err := os.ReadDir(b.manualDir)
	if err != nil {
		return &ManualDirError{Dir: b.manualDir, Err: err}
	}
	if len(entries) == 0 {
		return &ManualDirError{Dir: b.manualDir, Err: ErrManualDirEmpty}
	}
	return nil
}

// ShardPaths returns the archive and metadata paths of a shard.
func (b *Builder) ShardPaths(shardIdx int) (archivePath, metadataPath string) {
	return shards.Paths(b.manualDir, shardIdx)
}

// GenerateShard yields every record of one shard in archive order.
func (b *Builder) GenerateShard(ctx context.Context, shardIdx int) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		fail := func(err error) {
			yield(Record{}, fmt.Errorf("shard %d: %w", shardIdx, err))
		}

		if err := shards.Validate(shardIdx); err != nil {
			yield(Record{}, err)
			return
		}

		archivePath, metadataPath := b.ShardPaths(shardIdx)

		table, err := b.tables.Load(ctx, metadataPath)
		if err != nil {
			fail(err)
			return
		}

		r, err := archive.Open(archivePath)
		if err != nil {
			fail(err)
			return
		}
		defer r.Close()

		b.logger.Debug("Generating shard",
			zap.Int("shard", shardIdx),
			zap.Int("rows", table.Len()))

		for r.Next() {
			if err := ctx.Err(); err != nil {
				fail(err)
				return
			}

			member := r.Member()
			if member.IsSidecar() {
				continue
			}

			rec, err := b.join(shardIdx, member, table)
			if err != nil {
				fail(err)
				return
			}
			if !yield(rec, nil) {
				return
			}
		}
		if err := r.Err(); err != nil {
			fail(err)
		}
	}
}

func (b *Builder) join(shardIdx int, member archive.Member, table *metadata.Table) (Record, error) {
	rowIdx, err := member.RowIndex()
	if err != nil {
		return Record{}, err
	}

	row, err := table.Row(rowIdx)
	if err != nil {
		return Record{}, err
	}

	image, err := member.Read()
	if err != nil {
		return Record{}, err
	}

	fields, err := b.extractor.Extract(row)
	if err != nil {
		return Record{}, fmt.Errorf("row %d: %w", rowIdx, err)
	}

	return Record{
		Key:        shards.Key(shardIdx, rowIdx),
		ShardIdx:   shardIdx,
		RowIdx:     rowIdx,
		MemberName: member.Name,
		Image:      image,
		Fields:     fields,
	}, nil
}

// IsNotExist reports whether err was caused by a missing shard file or directory.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
