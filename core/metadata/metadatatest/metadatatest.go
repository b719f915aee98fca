// Package metadatatest writes parquet fixtures for tests.
package metadatatest

import (
	"database/sql"
	"fmt"
	"strings"
	"testing"

	_ "github.com/marcboeker/go-duckdb"
)

// WriteQuery writes the result of a DuckDB query to a parquet file at path.
func WriteQuery(t testing.TB, path, query string) {
	t.Helper()
	db, err := sql.Open("duckdb", "")
	if err != nil {
		t.Fatalf("Failed to open duckdb: %v", err)
	}
	defer db.Close()

	stmt := fmt.Sprintf("COPY (%s) TO '%s' (FORMAT PARQUET)", query, strings.ReplaceAll(path, "'", "''"))
	if _, err := db.Exec(stmt); err != nil {
		t.Fatalf("Failed to write parquet %s: %v", path, err)
	}
}

// LaionRow is one row of a LAION metadata fixture. Nil pointers become NULL.
type LaionRow struct {
	Caption        *string
	URL            string
	NSFW           *string
	Similarity     *float64
	License        *string
	OriginalWidth  *int
	OriginalHeight *int
}

// WriteLaion writes rows with the LAION img2dataset column layout.
func WriteLaion(t testing.TB, path string, rows ...LaionRow) {
	t.Helper()
	if len(rows) == 0 {
		WriteQuery(t, path, "SELECT NULL::VARCHAR AS caption, NULL::VARCHAR AS url, NULL::VARCHAR AS \"NSFW\", "+
			"NULL::DOUBLE AS similarity, NULL::VARCHAR AS \"LICENSE\", NULL::INTEGER AS original_width, "+
			"NULL::INTEGER AS original_height WHERE false")
		return
	}

	values := make([]string, 0, len(rows))
	for _, r := range rows {
		values = append(values, fmt.Sprintf("(%s, %s, %s, %s, %s, %s, %s)",
			str(r.Caption), str(&r.URL), str(r.NSFW), float(r.Similarity),
			str(r.License), integer(r.OriginalWidth), integer(r.OriginalHeight)))
	}
	query := "SELECT caption::VARCHAR AS caption, url::VARCHAR AS url, nsfw::VARCHAR AS \"NSFW\", " +
		"similarity::DOUBLE AS similarity, license::VARCHAR AS \"LICENSE\", " +
		"original_width::INTEGER AS original_width, original_height::INTEGER AS original_height " +
		"FROM (VALUES " + strings.Join(values, ", ") + ") " +
		"v(caption, url, nsfw, similarity, license, original_width, original_height)"
	WriteQuery(t, path, query)
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

func str(s *string) string {
	if s == nil {
		return "NULL"
	}
	return "'" + strings.ReplaceAll(*s, "'", "''") + "'"
}

func float(f *float64) string {
	if f == nil {
		return "NULL"
	}
	return fmt.Sprintf("%g", *f)
}

func integer(i *int) string {
	if i == nil {
		return "NULL"
	}
	return fmt.Sprintf("%d", *i)
}
