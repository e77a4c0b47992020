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
	"golang.org/x/sync/errgroup"

	"github.com/tregmine/webapi/internal/app"
	"github.com/tregmine/webapi/internal/config"
)

const defaultShutdownTimeout = 30 * time.Second

// listener is the part of the API and metrics servers RunServer drives.
type listener interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// RunServer starts the API server, and the metrics server when enabled, and
// blocks until SIGINT/SIGTERM or until one of them fails. Both are then shut
// down gracefully.
func RunServer(ctx context.Context, version string) error {
	cfg := config.Load()
	gin.SetMode(cfg.GetGinMode())

	container := app.NewContainer(cfg)
	logger := container.Logger()
	logger.Info("starting server",
		slog.String("version", version),
		slog.Int64("server_id", cfg.ServerID),
	)
	defer closeContainer(container, logger)

	server, err := container.HTTPServer()
	if err != nil {
		return fmt.Errorf("failed to initialize HTTP server: %w", err)
	}
	servers := []listener{server}

	metricsServer, err := container.MetricsServer()
	if err != nil {
		return fmt.Errorf("failed to initialize metrics server: %w", err)
	}
	if metricsServer != nil {
		servers = append(servers, metricsServer)
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	shutdownTimeout := cfg.DBConnMaxLifetime
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}
	return serve(ctx, logger, shutdownTimeout, servers...)
}

// serve runs every server until ctx is done or one returns an error, then
// shuts all of them down within timeout.
func serve(ctx context.Context, logger *slog.Logger, timeout time.Duration, servers ...listener) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, s := range servers {
		g.Go(func() error {
			return s.Start(gctx)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down servers")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
		defer shutdownCancel()

		var firstErr error
		for _, s := range servers {
			if err := s.Shutdown(shutdownCtx); err != nil && firstErr == nil {
				firstErr = fmt.Errorf("server shutdown: %w", err)
			}
		}
		return firstErr
	})

	return g.Wait()
}
