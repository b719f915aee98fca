package ingest

import (
	"strings"
)

// Sink names accepted in Config.Sinks.
const (
	SinkStorage = "storage"
	SinkCatalog = "catalog"
)

// Config holds configuration for the ingestion pipeline.
type Config struct {
	// Workers is the number of shards processed concurrently.
	Workers int `mapstructure:"workers" default:"4"`
	// BatchSize is the number of catalog rows written per statement.
	BatchSize int `mapstructure:"batch_size" default:"500"`
	// Sinks is a comma separated list of enabled sinks.
	Sinks string `mapstructure:"sinks" default:"storage,catalog"`
	// Clean removes previously ingested records of a shard before writing it.
	Clean bool `mapstructure:"clean" default:"false"`
}

// SinkNames returns the enabled sink names, lower-cased and de-duplicated.
func (c Config) SinkNames() []string {
	var names []string
	seen := make(map[string]struct{})
	for _, part := range strings.Split(c.Sinks, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}
