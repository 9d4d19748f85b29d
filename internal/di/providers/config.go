// Package providers contains dependency injection providers for the message board server.
package providers

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/board-server/internal/config"
	"github.com/listenupapp/board-server/internal/logger"
)

// Args are the command-line arguments handed to config.LoadConfig.
type Args []string

// ProvideConfig provides the application configuration.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	args := do.MustInvoke[Args](i)
	return config.LoadConfig(args)
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		Format:      cfg.Logger.Format,
		AddSource:   cfg.IsDevelopment(),
		Environment: cfg.App.Environment,
		File:        cfg.Logger.File,
		MaxSizeMB:   cfg.Logger.MaxSizeMB,
		MaxBackups:  cfg.Logger.MaxBackups,
	})

	log.Info("Starting message board",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"data_dir", cfg.Storage.DataDir,
		"page_size", cfg.Board.PageSize,
		"max_messages", cfg.Board.MaxMessages,
	)

	return log, nil
}
