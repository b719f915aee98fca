package metadata

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "github.com/marcboeker/go-duckdb"
)

// rowNumberColumn is the helper column read_parquet adds with file_row_number = true.
const rowNumberColumn = "file_row_number"

// ReaderOpt configures a Reader.
type ReaderOpt func(*Reader)

// WithMemoryLimit caps the memory DuckDB may use, e.g. "2GB".
func WithMemoryLimit(limit string) ReaderOpt {
	return func(r *Reader) {
		r.memoryLimit = limit
	}
}

// WithThreads sets the number of DuckDB worker threads.
func WithThreads(n int) ReaderOpt {
	return func(r *Reader) {
		r.threads = n
	}
}

// Reader loads parquet metadata tables. It is safe for concurrent use; every
// Load returns an independent Table.
type Reader struct {
	db          *sql.DB
	memoryLimit string
	threads     int
}

// NewReader opens an in-memory DuckDB database for reading parquet files.
func NewReader(opts ...ReaderOpt) (*Reader, error) {
	r := &Reader{}
	for _, opt := range opts {
		opt(r)
	}

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("failed to open DuckDB connection: %w", err)
	}
	r.db = db

	if r.memoryLimit != "" {
		if _, err := db.Exec(fmt.Sprintf("SET memory_limit = '%s';", r.memoryLimit)); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to set memory_limit: %w", err)
		}
	}
	if r.threads > 0 {
		if _, err := db.Exec(fmt.Sprintf("SET threads = %d;", r.threads)); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to set threads: %w", err)
		}
	}

	return r, nil
}

// Close releases the DuckDB database.
func (r *Reader) Close() error {
	return r.db.Close()
}

// Load reads the parquet file at path in full. A missing file surfaces as the
// *fs.PathError from os.Stat.
func (r *Reader) Load(ctx context.Context, path string) (*Table, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		"SELECT * FROM read_parquet(%s, file_row_number = true) ORDER BY %s",
		quoteLiteral(path), rowNumberColumn,
	)
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet %s: %w", path, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", path, err)
	}

	table := &Table{path: path}
	for _, c := range cols {
		if c != rowNumberColumn {
			table.columns = append(table.columns, c)
		}
	}

	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row %d of %s: %w", len(table.rows), path, err)
		}
		row := make(Row, len(table.columns))
		for i, c := range cols {
			if c == rowNumberColumn {
				continue
			}
			row[c] = values[i]
		}
		table.rows = append(table.rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read parquet %s: %w", path, err)
	}

	return table, nil
}

// Load reads one parquet file with a short-lived Reader.
func Load(ctx context.Context, path string) (*Table, error) {
	r, err := NewReader()
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return r.Load(ctx, path)
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
