package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/skydrive/skydrive/internal/logger"
	"github.com/skydrive/skydrive/pkg/api"
	"github.com/skydrive/skydrive/pkg/config"
	"github.com/skydrive/skydrive/pkg/drive/store"
	"github.com/skydrive/skydrive/pkg/metrics"
	"github.com/skydrive/skydrive/pkg/storage"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the SkyDrive server",
	Long: `Start the SkyDrive server with the specified configuration.

Use --config to specify a custom configuration file, or it will use the
default location at $XDG_CONFIG_HOME/skydrive/config.yaml.

Examples:
  # Start with default config location
  skydrive start

  # Start with custom config file
  skydrive start --config /etc/skydrive/config.yaml

  # Start with environment variable overrides
  SKYDRIVE_LOGGING_LEVEL=DEBUG skydrive start`,
	RunE: runStart,
}

func runStart(cmd *cobra.Command, args []string) error {
	cfg, err := config.MustLoad(GetConfigFile())
	if err != nil {
		return err
	}

	// Initialize the structured logger
	if err := InitLogger(cfg); err != nil {
		return err
	}

	// Create cancellable context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fmt.Println("SkyDrive - Personal cloud drive server")
	logger.Info("Log level", "level", cfg.Logging.Level, "format", cfg.Logging.Format)
	logger.Info("Configuration loaded", "source", getConfigSource(GetConfigFile()))

	// Initialize metrics FIRST so the API router picks up the middleware
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		logger.Info("Metrics enabled", "endpoint", "/metrics")
	} else {
		logger.Info("Metrics collection disabled")
	}

	// Initialize the drive metadata store
	driveStore, err := store.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize drive store: %w", err)
	}
	defer func() {
		if err := driveStore.Close(); err != nil {
			logger.Error("Drive store close error", "error", err)
		}
	}()
	logger.Info("Drive store initialized", "type", cfg.Database.Type)

	// Initialize the blob store for uploaded file contents
	blobs, err := storage.New(ctx, &cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize blob store: %w", err)
	}
	logger.Info("Blob store initialized", "type", cfg.Storage.Type)

	// Create the API server
	apiServer, err := api.NewServer(cfg.API, driveStore, blobs)
	if err != nil {
		return fmt.Errorf("failed to create API server: %w", err)
	}
	logger.Info("API server configured", "port", apiServer.Port())

	// Start server in background
	serverDone := make(chan error, 1)
	go func() {
		serverDone <- apiServer.Start(ctx)
	}()

	// Wait for interrupt signal or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("Server is running. Press Ctrl+C to stop.")

	select {
	case <-sigChan:
		signal.Stop(sigChan)
		logger.Info("Shutdown signal received, initiating graceful shutdown")

		// Stop with the configured timeout, then cancel so Start returns.
		// Start's own Stop call is a no-op once shutdown has begun.
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer shutdownCancel()
		stopErr := apiServer.Stop(shutdownCtx)
		cancel()

		if err := <-serverDone; err != nil {
			logger.Error("Server shutdown error", "error", err)
			return err
		}
		if stopErr != nil {
			logger.Error("Server shutdown error", "error", stopErr)
			return stopErr
		}
		logger.Info("Server stopped gracefully")

	case err := <-serverDone:
		signal.Stop(sigChan)
		if err != nil {
			logger.Error("Server error", "error", err)
			return err
		}
		logger.Info("Server stopped")
	}

	return nil
}
