package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hiperfaturometro/hiperfaturometro/internal/api"
	"github.com/hiperfaturometro/hiperfaturometro/internal/cache"
	"github.com/hiperfaturometro/hiperfaturometro/internal/monitoring"
	"github.com/hiperfaturometro/hiperfaturometro/internal/store"
)

func main() {
	appLogger := monitoring.NewLogger()
	appLogger.SetDefault()

	// Configuration from environment with defaults
	dataDir := getEnvOrDefault("DATA_DIR", "./data")
	port := getEnvOrDefault("PORT", "8080")

	snapshots, err := store.NewStore(dataDir)
	if err != nil {
		slog.Error("Failed to initialize snapshot store", "error", err, "data_dir", dataDir)
		os.Exit(1)
	}

	service := api.NewDataService(snapshots)
	server := api.NewServer(service, appLogger)

	// Responses only change when a batch run swaps the snapshots, so a short
	// TTL cache absorbs read bursts without serving meaningfully stale data.
	responseCache := cache.NewCache(1 * time.Minute)

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: server.Router(responseCache),
	}

	go func() {
		slog.Info("Starting server", "port", port, "data_dir", dataDir)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
