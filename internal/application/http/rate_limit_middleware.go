package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	apperrors "github.com/tregmine/webapi/internal/errors"
	"github.com/tregmine/webapi/internal/httputil"
)

const (
	limiterCleanupInterval = 5 * time.Minute
	limiterIdleTimeout     = time.Hour
)

// rateLimiterStore holds one token bucket per application id.
type rateLimiterStore struct {
	limiters sync.Map // map[snowflake.ID]*rateLimiterEntry
	rps      float64
	burst    int
}

type rateLimiterEntry struct {
	limiter    *rate.Limiter
	mu         sync.Mutex
	lastAccess time.Time
}

// RateLimitMiddleware enforces a per-application token bucket of rps requests
// per second with the given burst. Requests over the limit get 429 with a
// Retry-After header in seconds.
//
// Must run after ApplicationAuthenticationMiddleware. Idle limiters are
// removed until ctx is done.
func RateLimitMiddleware(ctx context.Context, rps float64, burst int, logger *slog.Logger) gin.HandlerFunc {
	store := &rateLimiterStore{rps: rps, burst: burst}
	go store.cleanupStale(ctx, limiterCleanupInterval, limiterIdleTimeout)

	return func(c *gin.Context) {
		app, ok := GetApplication(c.Request.Context())
		if !ok || app == nil {
			logger.Error("rate limit middleware: no authenticated application in context")
			httputil.AbortWithErrorGin(c, apperrors.ErrUnauthorized, logger)
			return
		}

		limiter := store.getLimiter(app.ID)
		if !limiter.Allow() {
			reservation := limiter.Reserve()
			retryAfter := int(reservation.Delay().Seconds())
			reservation.Cancel()
			if retryAfter < 1 {
				retryAfter = 1
			}

			logger.Debug("rate limit exceeded",
				slog.String("application_id", app.ID.String()),
				slog.Int("retry_after", retryAfter))

			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, httputil.ErrorResponse{
				Error:   "rate_limit_exceeded",
				Message: "Too many requests. Please retry after the specified delay.",
			})
			return
		}

		c.Next()
	}
}

func (s *rateLimiterStore) getLimiter(id snowflake.ID) *rate.Limiter {
	now := time.Now()
	if val, ok := s.limiters.Load(id); ok {
		entry := val.(*rateLimiterEntry)
		entry.mu.Lock()
		entry.lastAccess = now
		entry.mu.Unlock()
		return entry.limiter
	}

	entry := &rateLimiterEntry{
		limiter:    rate.NewLimiter(rate.Limit(s.rps), s.burst),
		lastAccess: now,
	}
	actual, _ := s.limiters.LoadOrStore(id, entry)
	return actual.(*rateLimiterEntry).limiter
}

func (s *rateLimiterStore) cleanupStale(ctx context.Context, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.removeIdle(time.Now().Add(-idle))
		}
	}
}

func (s *rateLimiterStore) removeIdle(threshold time.Time) {
	s.limiters.Range(func(key, value any) bool {
		entry := value.(*rateLimiterEntry)
		entry.mu.Lock()
		stale := entry.lastAccess.Before(threshold)
		entry.mu.Unlock()
		if stale {
			s.limiters.Delete(key)
		}
		return true
	})
}
