package archive

import (
	"archive/tar"
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Type is the container format of an archive file.
type Type string

const (
	TypeTar   Type = "tar"
	TypeTarGz Type = "tar.gz"
	TypeZip   Type = "zip"
)

// ErrUnsupported is returned for files whose extension maps to no known container.
var ErrUnsupported = errors.New("unsupported archive type")

// DetectType maps a file name to its container format.
func DetectType(name string) (Type, error) {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		return TypeTarGz, nil
	case strings.HasSuffix(lower, ".tar"):
		return TypeTar, nil
	case strings.HasSuffix(lower, ".zip"):
		return TypeZip, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupported, name)
	}
}

// Reader iterates the regular-file members of an archive.
type Reader struct {
	path    string
	closers []io.Closer
	advance func() (Member, bool, error)
	current Member
	err     error
	done    bool
}

// Open opens the archive at path. A missing file surfaces as the *fs.PathError
// returned by os.Open.
func Open(path string) (*Reader, error) {
	typ, err := DetectType(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	r := &Reader{path: path, closers: []io.Closer{f}}

	switch typ {
	case TypeTar:
		r.advance = tarAdvance(tar.NewReader(f))
	case TypeTarGz:
		gz, err := gzip.NewReader(f)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("failed to open gzip stream %s: %w", path, err)
		}
		r.closers = append(r.closers, gz)
		r.advance = tarAdvance(tar.NewReader(gz))
	case TypeZip:
		info, err := f.Stat()
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		zr, err := zip.NewReader(f, info.Size())
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("failed to open zip %s: %w", path, err)
		}
		r.advance = zipAdvance(zr)
	}

	return r, nil
}

// Path returns the file the reader was opened on.
func (r *Reader) Path() string {
	return r.path
}

// Next advances to the next regular-file member. It returns false at the end
// of the archive or on the first error, which is then reported by Err.
func (r *Reader) Next() bool {
	if r.done {
		return false
	}
	m, ok, err := r.advance()
	if err != nil {
		r.err = fmt.Errorf("failed to read archive %s: %w", r.path, err)
		r.done = true
		return false
	}
	if !ok {
		r.done = true
		return false
	}
	r.current = m
	return true
}

// Member returns the member Next advanced to.
func (r *Reader) Member() Member {
	return r.current
}

// Err returns the error that stopped iteration, if any.
func (r *Reader) Err() error {
	return r.err
}

// Close releases the underlying file handles. It is safe to call more than once.
func (r *Reader) Close() error {
	var errs []error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	r.closers = nil
	r.done = true
	return errors.Join(errs...)
}

// Each opens the archive at path and calls fn for every member in order.
// Iteration stops at the first error returned by fn.
func Each(path string, fn func(Member) error) error {
	r, err := Open(path)
	if err != nil {
		return err
	}
	defer r.Close()

	for r.Next() {
		if err := fn(r.Member()); err != nil {
			return err
		}
	}
	return r.Err()
}

func tarAdvance(tr *tar.Reader) func() (Member, bool, error) {
	return func() (Member, bool, error) {
		for {
			hdr, err := tr.Next()
			if err == io.EOF {
				return Member{}, false, nil
			}
			if err != nil {
				return Member{}, false, err
			}
			if !hdr.FileInfo().Mode().IsRegular() {
				continue
			}
			return Member{
				Name: hdr.Name,
				Size: hdr.Size,
				open: func() (io.ReadCloser, error) { return io.NopCloser(tr), nil },
			}, true, nil
		}
	}
}

func zipAdvance(zr *zip.Reader) func() (Member, bool, error) {
	i := 0
	return func() (Member, bool, error) {
		for i < len(zr.File) {
			zf := zr.File[i]
			i++
			if !zf.Mode().IsRegular() {
				continue
			}
			return Member{
				Name: zf.Name,
				Size: int64(zf.UncompressedSize64),
				open: zf.Open,
			}, true, nil
		}
		return Member{}, false, nil
	}
}
