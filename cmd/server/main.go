package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/config"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/database"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/logger"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	slog.SetDefault(log)

	if err := database.Init(cfg); err != nil {
		log.Error("database init failed", "error", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(cfg.MediaPath, 0o755); err != nil {
		log.Error("media directory could not be created", "path", cfg.MediaPath, "error", err)
		os.Exit(1)
	}

	app := server.New(cfg, log)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit

		log.Info("shutting down")
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			log.Error("shutdown failed", "error", err)
		}
	}()

	log.Info("server listening", "port", cfg.HTTPPort, "driver", cfg.DatabaseDriver)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
