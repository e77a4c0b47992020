package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tregmine/webapi/internal/metrics"
)

// newHTTPServer returns an http.Server with the timeouts shared by both listeners.
func newHTTPServer(host string, port int, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf("%s:%d", host, port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// listenAndServe treats a graceful close as a clean exit.
func listenAndServe(srv *http.Server, logger *slog.Logger, name string) error {
	logger.Info("listening", slog.String("listener", name), slog.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s listener failed: %w", name, err)
	}
	return nil
}

// MetricsServer exposes /metrics on its own port, away from the public API.
type MetricsServer struct {
	server *http.Server
	logger *slog.Logger
}

// NewMetricsServer builds the metrics listener. A nil provider yields a server without routes.
func NewMetricsServer(host string, port int, logger *slog.Logger, provider *metrics.Provider) *MetricsServer {
	router := gin.New()
	router.Use(gin.Recovery(), CustomLoggerMiddleware(logger))
	if provider != nil {
		router.GET("/metrics", gin.WrapH(provider.Handler()))
	}

	return &MetricsServer{
		server: newHTTPServer(host, port, router),
		logger: logger,
	}
}

// GetHandler returns the metrics router.
func (s *MetricsServer) GetHandler() http.Handler {
	return s.server.Handler
}

// Start serves metrics until Shutdown is called.
func (s *MetricsServer) Start(_ context.Context) error {
	return listenAndServe(s.server, s.logger, "metrics")
}

// Shutdown stops the metrics listener.
func (s *MetricsServer) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down metrics server")
	return s.server.Shutdown(ctx)
}
