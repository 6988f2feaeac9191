package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"gopkg.in/natefinch/lumberjack.v2"

	"diagnosis_api/internal/application"
	"diagnosis_api/internal/config"
	"diagnosis_api/pkg/contextx"
	"diagnosis_api/pkg/logx"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config.Load", logx.Error(err))
		os.Exit(1)
	}

	log, closeLog, err := newLogger(cfg)
	if err != nil {
		slog.Error("newLogger", logx.Error(err))
		os.Exit(1)
	}
	defer closeLog()

	log = log.With(
		slog.String(logx.FieldAppName, cfg.App.Name),
		slog.String(logx.FieldAppVersion, cfg.App.Version),
	)
	slog.SetDefault(log)

	ctx = contextx.WithLogger(ctx, log)

	if err := application.Run(ctx, cfg); err != nil {
		log.Error("application failed", logx.Error(err))
		closeLog()
		os.Exit(1) //nolint:gocritic // closeLog is called above
	}

	log.Info("application stopped")
}

// newLogger writes to stdout and, when LOG_FILE is set, to a rotated file.
func newLogger(cfg config.Config) (*slog.Logger, func(), error) {
	level, err := logx.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("logx.ParseLevel: %w", err)
	}

	var (
		w       io.Writer = os.Stdout
		closeFn           = func() {}
	)

	if cfg.Log.File != "" {
		file := &lumberjack.Logger{
			Filename:   cfg.Log.File,
			MaxSize:    cfg.Log.FileMaxSizeMB,
			MaxBackups: cfg.Log.FileMaxBackups,
		}

		w = io.MultiWriter(os.Stdout, file)
		closeFn = func() { _ = file.Close() }
	}

	log, err := logx.New(w, cfg.Log.Format, level)
	if err != nil {
		return nil, nil, fmt.Errorf("logx.New: %w", err)
	}

	return log, closeFn, nil
}
