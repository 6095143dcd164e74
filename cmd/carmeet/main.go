package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	_ "github.com/kirinyoku/carmeet/docs"
	"github.com/kirinyoku/carmeet/internal/app"
	"github.com/kirinyoku/carmeet/internal/config"
)

// @title Carmeet Registrations API
// @version 1.0
// @description Event registration lifecycle for the vehicle marketplace.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	envFile := pflag.String("env-file", "", "load environment variables from this file")
	sweepOnce := pflag.Bool("sweep-once", false, "run one expiration sweep and exit")
	debug := pflag.Bool("debug", false, "enable debug logging")
	pflag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	cfg, err := config.New(*envFile)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to create application", "error", err)
		os.Exit(1)
	}

	if *sweepOnce {
		res, err := application.SweepOnce(ctx)
		if err != nil {
			logger.Error("sweep failed", "error", err)
			os.Exit(1)
		}
		logger.Info("sweep done", "reclaimed", res.Reclaimed, "skipped", res.Skipped, "failed", res.Failed)
		return
	}

	if err := application.Run(ctx); err != nil {
		logger.Error("application finished with error", "error", err)
		os.Exit(1)
	}
}
