// Package utils provides common utility functions for the dataset adapter.
// It includes loose type conversions for values read from metadata tables,
// where column types vary between shards (int32 vs int64, NULLs, strings).
package utils
