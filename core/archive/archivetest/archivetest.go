// Package archivetest writes small archives for tests.
package archivetest

import (
	"archive/tar"
	"archive/zip"
	"io"
	"os"
	"testing"

	"github.com/klauspost/compress/gzip"
)

// File is one member to write into a test archive.
type File struct {
	Name string
	Body []byte
}

// WriteTar writes files as a plain tar archive at path.
func WriteTar(t testing.TB, path string, files ...File) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create %s: %v", path, err)
	}
	defer f.Close()
	writeTar(t, f, files)
}

// WriteTarGz writes files as a gzip-compressed tar archive at path.
func WriteTarGz(t testing.TB, path string, files ...File) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create %s: %v", path, err)
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	writeTar(t, gz, files)
	if err := gz.Close(); err != nil {
		t.Fatalf("Failed to close gzip writer: %v", err)
	}
}

// WriteZip writes files as a zip archive at path.
func WriteZip(t testing.TB, path string, files ...File) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create %s: %v", path, err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, file := range files {
		w, err := zw.Create(file.Name)
		if err != nil {
			t.Fatalf("Failed to add %s: %v", file.Name, err)
		}
		if _, err := w.Write(file.Body); err != nil {
			t.Fatalf("Failed to write %s: %v", file.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to close zip writer: %v", err)
	}
}

func writeTar(t testing.TB, w io.Writer, files []File) {
	t.Helper()
	tw := tar.NewWriter(w)
	for _, file := range files {
		hdr := &tar.Header{
			Name:     file.Name,
			Mode:     0644,
			Size:     int64(len(file.Body)),
			Typeflag: tar.TypeReg,
		}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatalf("Failed to write header %s: %v", file.Name, err)
		}
		if _, err := tw.Write(file.Body); err != nil {
			t.Fatalf("Failed to write %s: %v", file.Name, err)
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("Failed to close tar writer: %v", err)
	}
}
