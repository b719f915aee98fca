package metadata

import (
	"errors"
	"fmt"
	"math"

	"laion-dataset/core/utils"
)

// ErrRowOutOfRange is returned when a row index does not address a table row.
var ErrRowOutOfRange = errors.New("row index out of range")

// Table is a metadata file held fully in memory.
type Table struct {
	path    string
	columns []string
	rows    []Row
}

// NewTable builds a Table from rows already in memory.
func NewTable(columns []string, rows []Row) *Table {
	return &Table{columns: columns, rows: rows}
}

// Path returns the file the table was loaded from.
func (t *Table) Path() string {
	return t.path
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Columns returns the column names in file order.
func (t *Table) Columns() []string {
	return t.columns
}

// Row returns the row at the given position.
func (t *Table) Row(i int) (Row, error) {
	if i < 0 || i >= len(t.rows) {
		return nil, fmt.Errorf("%w: index %d, table has %d rows", ErrRowOutOfRange, i, len(t.rows))
	}
	return t.rows[i], nil
}

// Row maps column names to the values of one table row. NULL is nil.
type Row map[string]any

// IsNull reports whether the column is absent or NULL.
func (r Row) IsNull(col string) bool {
	v, ok := r[col]
	return !ok || v == nil
}

// String returns the column as a string, "" for NULL.
func (r Row) String(col string) string {
	return utils.ToString(r[col])
}

// Float returns the column as a float64, NaN for NULL or non-numeric values.
func (r Row) Float(col string) float64 {
	if r.IsNull(col) {
		return math.NaN()
	}
	return utils.ToFloat(r[col])
}

// Int returns the column as an int. ok is false for NULL.
func (r Row) Int(col string) (v int, ok bool) {
	if r.IsNull(col) {
		return 0, false
	}
	return utils.ToInt(r[col]), true
}
