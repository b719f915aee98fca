package shards

// Config locates the manually downloaded shards and selects which to process.
type Config struct {
	// ManualDir is the directory holding the NNNNN.tar / NNNNN.parquet pairs.
	ManualDir string `mapstructure:"manual_dir" default:"./data/laion400m"`
	// Start is the first shard index to process.
	Start int `mapstructure:"shard_start" default:"0"`
	// End is one past the last shard index to process. Zero means all shards.
	End int `mapstructure:"shard_end" default:"0"`
	// MemoryLimit caps DuckDB memory while loading metadata tables (e.g. "2GB").
	MemoryLimit string `mapstructure:"memory_limit" default:""`
}

// Range returns the configured shard range.
func (c Config) Range() Range {
	end := c.End
	if end <= 0 {
		end = Count
	}
	return Range{Start: c.Start, End: end}
}
