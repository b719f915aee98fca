package config

import (
	"os"
	"path/filepath"
	"testing"

	"laion-dataset/core/shards"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 1000, cfg.Server.MaxRecordLimit)
	assert.Equal(t, "./data/laion400m", cfg.Dataset.ManualDir)
	assert.Equal(t, shards.Range{Start: 0, End: shards.Count}, cfg.Dataset.Range())
	assert.Equal(t, 4, cfg.Pipeline.Workers)
	assert.Equal(t, []string{"storage", "catalog"}, cfg.Pipeline.SinkNames())
	assert.False(t, cfg.Pipeline.Clean)
	assert.Equal(t, "laion400m", cfg.Storage.Bucket)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("DATASET_MANUAL_DIR", "/mnt/laion")
	t.Setenv("DATASET_SHARD_START", "10")
	t.Setenv("DATASET_SHARD_END", "20")
	t.Setenv("PIPELINE_SINKS", "catalog")
	t.Setenv("PIPELINE_CLEAN", "true")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "/mnt/laion", cfg.Dataset.ManualDir)
	assert.Equal(t, shards.Range{Start: 10, End: 20}, cfg.Dataset.Range())
	assert.Equal(t, []string{"catalog"}, cfg.Pipeline.SinkNames())
	assert.True(t, cfg.Pipeline.Clean)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	// Registers restoration of the variables the .env file overrides.
	t.Setenv("PIPELINE_WORKERS", "")
	t.Setenv("DATABASE_DRIVER", "")

	dir := t.TempDir()
	env := "PIPELINE_WORKERS=16\nDATABASE_DRIVER=mysql\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.Pipeline.Workers)
	assert.Equal(t, "mysql", cfg.Database.Driver)
}
