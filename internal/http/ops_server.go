// Package http provides the operational HTTP server: Prometheus metrics and
// health probes. The bot itself has no inbound HTTP surface.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ablecats/filestream/internal/metrics"
)

// OpsServer serves /metrics, /healthz, and /readyz.
type OpsServer struct {
	server *http.Server
	logger *slog.Logger
}

// NewOpsServer creates the operational server. metricsProvider may be nil when
// metrics are disabled; the health probes are always mounted.
func NewOpsServer(
	host string,
	port int,
	logger *slog.Logger,
	metricsProvider *metrics.Provider,
) *OpsServer {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(CustomLoggerMiddleware(logger))

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), "filestream"))
		router.GET("/metrics", gin.WrapH(metricsProvider.Handler()))
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.GET("/readyz", func(c *gin.Context) {
		select {
		case <-c.Request.Context().Done():
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready"})
		default:
			c.JSON(http.StatusOK, gin.H{"status": "ready"})
		}
	})

	return &OpsServer{
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}
}

// GetHandler returns the http.Handler for testing purposes.
func (s *OpsServer) GetHandler() http.Handler {
	return s.server.Handler
}

// Start starts the operational HTTP server.
func (s *OpsServer) Start(ctx context.Context) error {
	s.logger.Info("starting ops server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start ops server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the operational HTTP server.
func (s *OpsServer) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down ops server")
	return s.server.Shutdown(ctx)
}
