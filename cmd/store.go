package cmd

import (
	"tunebox/config"
	"tunebox/logger"
	"tunebox/store"
)

// setup loads config, initializes logging and opens the blob store for CLI
// commands.
func setup() (*config.Config, store.Store, error) {
	cfg := config.Load()

	logger.Init(logger.Config{
		Level:      logger.LogLevel(cfg.LogLevel),
		OutputPath: cfg.LogPath,
		MaxSize:    50,
		MaxBackups: 5,
		MaxAge:     14,
		Compress:   true,
	})

	var kv store.Store
	var err error
	switch cfg.StoreBackend {
	case "redis":
		kv, err = store.NewRedisStore(cfg)
	default:
		kv, err = store.NewFileStore(cfg.DataDir)
	}
	if err != nil {
		return nil, nil, err
	}
	return cfg, kv, nil
}
