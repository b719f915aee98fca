package checks

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"laion-dataset/core/shards"
)

// ShardReport lists the shards of a range whose files are missing from the
// manual directory.
type ShardReport struct {
	ManualDir       string `json:"manual_dir"`
	Start           int    `json:"start"`
	End             int    `json:"end"`
	Checked         int    `json:"checked"`
	Complete        int    `json:"complete"`
	MissingArchives []int  `json:"missing_archives"`
	MissingMetadata []int  `json:"missing_metadata"`
}

// Matched reports whether every shard of the range is complete.
func (r *ShardReport) Matched() bool {
	return r.Complete == r.Checked
}

// CheckShards verifies that both files of every shard in r are present.
func CheckShards(ctx context.Context, manualDir string, r shards.Range) (*ShardReport, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(manualDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read manual directory: %w", err)
	}
	present := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if isRegularFile(manualDir, e) {
			present[e.Name()] = struct{}{}
		}
	}

	report := &ShardReport{
		ManualDir:       manualDir,
		Start:           r.Start,
		End:             r.End,
		MissingArchives: []int{},
		MissingMetadata: []int{},
	}

	for _, idx := range r.Indices() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		report.Checked++

		_, hasArchive := present[shards.FileName(idx, shards.ArchiveExt)]
		_, hasMetadata := present[shards.FileName(idx, shards.MetadataExt)]
		if !hasArchive {
			report.MissingArchives = append(report.MissingArchives, idx)
		}
		if !hasMetadata {
			report.MissingMetadata = append(report.MissingMetadata, idx)
		}
		if hasArchive && hasMetadata {
			report.Complete++
		}
	}

	return report, nil
}

// isRegularFile reports whether e is a regular file or a symlink to one.
func isRegularFile(dir string, e fs.DirEntry) bool {
	if e.Type().IsRegular() {
		return true
	}
	if e.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(dir, e.Name()))
	return err == nil && info.Mode().IsRegular()
}
