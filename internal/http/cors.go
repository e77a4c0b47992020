package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// createCORSMiddleware returns nil unless CORS is enabled with at least one origin.
// Applications normally call the API server-to-server, so CORS stays off by default.
func createCORSMiddleware(enabled bool, allowOrigins string, logger *slog.Logger) gin.HandlerFunc {
	if !enabled {
		return nil
	}

	origins := parseOrigins(allowOrigins)
	if len(origins) == 0 {
		logger.Warn("cors enabled without any allowed origin, skipping")
		return nil
	}
	logger.Info("cors enabled", slog.Any("origins", origins))

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"X-Request-Id", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

// parseOrigins splits a comma-separated origin list, dropping blanks.
func parseOrigins(raw string) []string {
	var origins []string
	for origin := range strings.SplitSeq(raw, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
