package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"recipebox/internal/app"
	"recipebox/internal/config"
	"recipebox/internal/logger"
	"recipebox/internal/server"
)

func main() {
	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := a.Close(); err != nil {
			slog.Error("Failed to close application", "error", err)
		}
	}()

	if err := server.Run(ctx, a); err != nil {
		slog.Error("Server failed", "error", err)
		return
	}
	slog.Info("Server exiting")
}
