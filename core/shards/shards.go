package shards

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// Count is the total number of shards (image archives and metadata files).
const Count = 41455

const (
	// ArchiveExt is the extension of a shard's image archive.
	ArchiveExt = ".tar"
	// MetadataExt is the extension of a shard's metadata table.
	MetadataExt = ".parquet"
)

var (
	// ErrShardOutOfRange is returned for shard indices outside [0, Count).
	ErrShardOutOfRange = errors.New("shard index out of range")
	// ErrInvalidKey is returned when a record key cannot be parsed.
	ErrInvalidKey = errors.New("invalid record key")
)

// Validate checks that idx addresses one of the declared shards.
func Validate(idx int) error {
	if idx < 0 || idx >= Count {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrShardOutOfRange, idx, Count)
	}
	return nil
}

// FileName returns the file name of a shard file with the given extension.
func FileName(idx int, ext string) string {
	return fmt.Sprintf("%05d%s", idx, ext)
}

// Paths returns the archive and metadata paths of a shard inside manualDir.
func Paths(manualDir string, idx int) (archive, metadata string) {
	return filepath.Join(manualDir, FileName(idx, ArchiveExt)),
		filepath.Join(manualDir, FileName(idx, MetadataExt))
}

// Key returns the external key of the record at rowIdx in shard shardIdx.
func Key(shardIdx, rowIdx int) string {
	return strconv.Itoa(shardIdx) + "_" + strconv.Itoa(rowIdx)
}

// ParseKey splits a record key back into its shard and row indices.
func ParseKey(key string) (shardIdx, rowIdx int, err error) {
	shardPart, rowPart, ok := strings.Cut(key, "_")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	shardIdx, err = strconv.Atoi(shardPart)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q: %v", ErrInvalidKey, key, err)
	}
	rowIdx, err = strconv.Atoi(rowPart)
	if err != nil || rowIdx < 0 {
		return 0, 0, fmt.Errorf("%w: %q: bad row index", ErrInvalidKey, key)
	}
	if err := Validate(shardIdx); err != nil {
		return 0, 0, err
	}
	return shardIdx, rowIdx, nil
}

// Range is a half-open range of shard indices [Start, End).
type Range struct {
	Start int
	End   int
}

// All covers every shard of the collection.
func All() Range {
	return Range{Start: 0, End: Count}
}

// Validate checks that the range is non-empty and inside the collection.
func (r Range) Validate() error {
	if r.Start < 0 || r.End > Count || r.Start >= r.End {
		return fmt.Errorf("%w: range [%d, %d)", ErrShardOutOfRange, r.Start, r.End)
	}
	return nil
}

// Len returns the number of shards in the range.
func (r Range) Len() int {
	if r.End <= r.Start {
		return 0
	}
	return r.End - r.Start
}

// Indices returns every shard index in the range, in ascending order.
func (r Range) Indices() []int {
	out := make([]int, 0, r.Len())
	for i := r.Start; i < r.End; i++ {
		out = append(out, i)
	}
	return out
}
