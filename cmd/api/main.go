package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"content-studio-backend/internal/app"
	"content-studio-backend/internal/config"
	"content-studio-backend/pkg/logger"
)

const shutdownGrace = 30 * time.Second

func main() {
	// Load .env before Init so LOG_LEVEL and APP_ENV from the file take effect.
	envLoaded := godotenv.Load() == nil
	logger.Init()
	if !envLoaded {
		logger.Info("No .env file found, using environment variables", nil)
	}

	application, err := app.New(config.New())
	if err != nil {
		logger.Error(err, "Failed to initialize application", nil)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		if err := application.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received", nil)
	case err := <-serveErr:
		logger.Error(err, "Server failed, shutting down", nil)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	if err := application.Shutdown(shutdownCtx); err != nil {
		logger.Error(err, "Server forced to shutdown", nil)
		os.Exit(1)
	}

	logger.Info("Server exited gracefully", nil)
}
