// Package metadata loads a shard's metadata table into memory.
//
// Parquet files are read through an embedded DuckDB instance using
// read_parquet. The whole file is materialised as a Table whose rows are
// addressed by position, in file order, so that row i of the table is the
// i-th row of the file.
//
// # Usage
//
//	reader, err := metadata.NewReader()
//	if err != nil {
//	    return err
//	}
//	defer reader.Close()
//
//	table, err := reader.Load(ctx, "/data/laion/00007.parquet")
//	row, err := table.Row(42)
//	caption := row.String("caption")
package metadata
