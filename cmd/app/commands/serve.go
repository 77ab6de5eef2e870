package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ablecats/filestream/internal/app"
	"github.com/ablecats/filestream/internal/config"
)

// shutdownTimeout bounds the graceful stop of the ops server.
const shutdownTimeout = 15 * time.Second

// RunServe starts the operational HTTP server with graceful shutdown support.
// Loads and validates configuration, initializes the DI container, and serves
// metrics and health probes until SIGINT/SIGTERM. The platform client is an
// external collaborator injected by the embedding program; this entry point
// carries only the operational surface.
func RunServe(ctx context.Context, version string) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	container := app.NewContainer(cfg)
	logger := container.Logger()
	logger.Info("starting", slog.String("version", version))

	defer closeContainer(container, logger)

	opsServer, err := container.OpsServer()
	if err != nil {
		return fmt.Errorf("failed to initialize ops server: %w", err)
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	serverErr := make(chan error, 1)
	go func() {
		if err := opsServer.Start(ctx); err != nil {
			serverErr <- fmt.Errorf("ops server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serverErr:
		logger.Error("server error, initiating shutdown", slog.Any("error", err))
		return err
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := opsServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("ops server shutdown: %w", err)
	}
	return nil
}
