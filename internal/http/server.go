// Package http provides the API server, its router and the metrics server.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	applicationDomain "github.com/tregmine/webapi/internal/application/domain"
	applicationHTTP "github.com/tregmine/webapi/internal/application/http"
	applicationUseCase "github.com/tregmine/webapi/internal/application/usecase"
	"github.com/tregmine/webapi/internal/config"
	"github.com/tregmine/webapi/internal/metrics"
)

const readinessTimeout = 2 * time.Second

// Server is the public API server.
type Server struct {
	db     *sql.DB
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
}

// NewServer creates a new API server. Call SetupRouter before Start.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: newHTTPServer(host, port, nil),
	}
}

// SetupRouter builds the gin engine with every route and middleware.
//
// Routes under /v0 authenticate the calling application first. Route guards
// run after the group guards, so access checks always see an authenticated
// caller. ctx bounds background work started by middleware.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	appUseCase applicationUseCase.ApplicationUseCase,
	tokenUseCase applicationUseCase.TokenUseCase,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), metricsProvider.Namespace()))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	appHandler := applicationHTTP.NewApplicationHandler(appUseCase, s.logger)
	tokenHandler := applicationHTTP.NewTokenHandler(tokenUseCase, s.logger)

	v0 := router.Group("/v0")
	v0.Use(applicationHTTP.ApplicationAuthenticationMiddleware(tokenUseCase, s.logger))
	if cfg.RateLimitEnabled {
		v0.Use(applicationHTTP.RateLimitMiddleware(
			ctx,
			cfg.RateLimitRequestsPerSec,
			cfg.RateLimitBurst,
			s.logger,
		))
	}

	requireAdmin := applicationHTTP.RequireAccessLevel(applicationDomain.AccessAdmin, s.logger)
	prep := applicationHTTP.ApplicationPrepMiddleware(appUseCase, s.logger)

	applications := v0.Group("/applications")
	{
		applications.GET("", requireAdmin, appHandler.ListHandler)
		applications.POST("", requireAdmin, appHandler.CreateHandler)
		applications.GET("/:id", prep, appHandler.GetHandler)
		applications.PUT("/:id", requireAdmin, appHandler.UpdateHandler)
		applications.DELETE("/:id", requireAdmin, appHandler.DeleteHandler)
		applications.POST("/:id/tokens", prep, appHandler.IssueTokenHandler)
		applications.POST("/:id/roll-salt", prep, appHandler.RollSaltHandler)
	}

	v0.POST("/tokens/verify", tokenHandler.VerifyHandler)

	s.router = router
}

// GetHandler returns the router, or nil before SetupRouter.
func (s *Server) GetHandler() http.Handler {
	if s.router == nil {
		return nil
	}
	return s.router
}

// Start serves until Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router not configured")
	}
	s.server.Handler = s.router
	return listenAndServe(s.server, s.logger, "api")
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports ready only when the database answers a ping.
func (s *Server) readinessHandler(c *gin.Context) {
	if s.db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": "error"},
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		s.logger.Warn("readiness check failed", slog.Any("error", err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": "error"},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"database": "ok"},
	})
}
