// Package config provides configuration management for the LAION-400M dataset service.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file. Defaults come from the `default` struct tags of each
// section.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key, record listing limit)
//   - Dataset: Manual download directory and shard range (DATASET_MANUAL_DIR, DATASET_SHARD_START, DATASET_SHARD_END)
//   - Pipeline: Ingestion workers, catalog batch size and enabled sinks
//   - Storage: S3/MinIO credentials and bucket settings
//   - Log: Logging level and format
//   - Database: Catalog database driver (sqlite or mysql) and connection details
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Dataset.ManualDir)
package config
