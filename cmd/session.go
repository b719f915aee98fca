package cmd

import (
	"fmt"

	"laion-dataset/core/config"
	"laion-dataset/core/database"
	"laion-dataset/core/logger"
	"laion-dataset/core/metadata"
	"laion-dataset/feature/laion"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// session bundles what every command needs.
type session struct {
	cfg    *config.Config
	logger *zap.Logger
	reader *metadata.Reader
}

func newSession() (*session, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	var opts []metadata.ReaderOpt
	if cfg.Dataset.MemoryLimit != "" {
		opts = append(opts, metadata.WithMemoryLimit(cfg.Dataset.MemoryLimit))
	}
	reader, err := metadata.NewReader(opts...)
	if err != nil {
		return nil, err
	}

	return &session{cfg: cfg, logger: logg, reader: reader}, nil
}

func (rt *session) builder() *laion.Builder {
	return laion.NewBuilder(rt.cfg.Dataset.ManualDir, rt.reader, rt.logger)
}

// catalogDB connects to the catalog database, logging instead of failing when
// it is unreachable.
func (rt *session) catalogDB() *gorm.DB {
	db, err := database.Connect(rt.cfg.Database)
	if err != nil {
		rt.logger.Warn("Optional database connection failed", zap.Error(err))
		return nil
	}
	return db
}

func (rt *session) Close() {
	_ = rt.reader.Close()
	_ = rt.logger.Sync()
}
