package archive

import (
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"
)

// SidecarExts lists member extensions that accompany an image but are not records.
var SidecarExts = []string{".json", ".txt"}

// Member is one regular file inside an archive.
type Member struct {
	// Name is the member path as stored in the archive.
	Name string
	// Size is the uncompressed size in bytes.
	Size int64

	open func() (io.ReadCloser, error)
}

// Ext returns the extension of the member's base name, including the dot.
func (m Member) Ext() string {
	return path.Ext(path.Base(m.Name))
}

// Stem returns the member's base name without its extension.
func (m Member) Stem() string {
	base := path.Base(m.Name)
	return strings.TrimSuffix(base, path.Ext(base))
}

// IsSidecar reports whether the member is an auxiliary .json/.txt file.
func (m Member) IsSidecar() bool {
	ext := m.Ext()
	for _, s := range SidecarExts {
		if ext == s {
			return true
		}
	}
	return false
}

// RowIndex parses the member's stem as a base-10 row index.
func (m Member) RowIndex() (int, error) {
	idx, err := strconv.Atoi(m.Stem())
	if err != nil {
		return 0, fmt.Errorf("member %s: %w", m.Name, err)
	}
	return idx, nil
}

// Open returns a stream over the member content.
func (m Member) Open() (io.ReadCloser, error) {
	if m.open == nil {
		return nil, fmt.Errorf("member %s has no content", m.Name)
	}
	return m.open()
}

// Read returns the full member content.
func (m Member) Read() ([]byte, error) {
	rc, err := m.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read member %s: %w", m.Name, err)
	}
	return data, nil
}
