package main

import (
	"log/slog"
	"os"

	"staffd/internal/config"
	"staffd/internal/infra/db"
	httpinfra "staffd/internal/infra/http"
)

func main() {
	cfg := config.FromEnv()
	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	store, err := db.NewStore(cfg)
	if err != nil {
		logger.Error("failed to init store", "error", err)
		os.Exit(1)
	}
	if err := store.AutoMigrate(); err != nil {
		logger.Error("failed to migrate schema", "error", err)
		os.Exit(1)
	}

	srv := httpinfra.NewServer(cfg, store, logger)
	logger.Info("listening", "addr", cfg.HTTPAddr)
	if err := srv.Run(); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}
