// Package shards defines how the LAION-400M collection is partitioned on disk.
//
// The collection is split into a fixed number of shards. Every shard is backed
// by exactly two files in the manual download directory, both named from the
// zero-padded shard index:
//
//	00007.tar      image archive (plus .json/.txt sidecar members)
//	00007.parquet  metadata table, one row per record
//
// Records are keyed "<shard>_<row>", where row is the positional index of the
// record's metadata row inside the shard's table.
package shards
