package http

import (
	"log/slog"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	validation "github.com/jellydator/validation"

	applicationDomain "github.com/tregmine/webapi/internal/application/domain"
	applicationUseCase "github.com/tregmine/webapi/internal/application/usecase"
	apperrors "github.com/tregmine/webapi/internal/errors"
	"github.com/tregmine/webapi/internal/httputil"
	customValidation "github.com/tregmine/webapi/internal/validation"
)

// SelfID is the path id that resolves to the calling application.
const SelfID = "@me"

const bearerPrefix = "bearer "

// extractToken returns the token from "Authorization: Bearer <token>"
// (scheme is case-insensitive) or, when no header is sent, from ?token=.
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return c.Query("token")
	}
	if len(authHeader) < len(bearerPrefix) ||
		!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(authHeader[len(bearerPrefix):])
}

// ApplicationAuthenticationMiddleware authenticates the calling application
// from its token and stores it in the request context.
//
// Error handling:
//   - Missing, malformed or rejected token → 401 with the same body in every case
//   - Disabled application → 403 Forbidden
//   - Storage failures → 500 Internal Server Error
//
// The token itself is never logged.
func ApplicationAuthenticationMiddleware(
	tokenUseCase applicationUseCase.TokenUseCase,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			logger.Debug("authentication failed: missing application token")
			httputil.AbortWithErrorGin(c, apperrors.ErrUnauthorized, logger)
			return
		}

		app, err := tokenUseCase.GetApplication(c.Request.Context(), token)
		if err != nil {
			httputil.AbortWithErrorGin(c, err, logger)
			return
		}

		if app.Disabled {
			logger.Debug("authentication failed: application disabled",
				slog.String("application_id", app.ID.String()))
			httputil.AbortWithErrorGin(c, applicationDomain.ErrApplicationDisabled, logger)
			return
		}

		c.Request = c.Request.WithContext(WithApplication(c.Request.Context(), app))
		c.Next()
	}
}

// RequireAccessLevel rejects callers below level with 403. It must run after
// ApplicationAuthenticationMiddleware.
func RequireAccessLevel(level applicationDomain.AccessLevel, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := GetApplication(c.Request.Context())
		if !ok || caller == nil {
			logger.Error("access check: no authenticated application in context")
			httputil.AbortWithErrorGin(c, apperrors.ErrUnauthorized, logger)
			return
		}

		if !caller.AccessLevel.Allows(level) {
			logger.Debug("access check failed",
				slog.String("application_id", caller.ID.String()),
				slog.String("access_level", string(caller.AccessLevel)),
				slog.String("required", string(level)))
			httputil.AbortWithErrorGin(c, applicationDomain.ErrInsufficientAccess, logger)
			return
		}

		c.Next()
	}
}

// ApplicationPrepMiddleware resolves the :id path parameter into the target
// application. "@me" is the caller itself and needs no particular access level.
// Any other id requires admin and must exist.
func ApplicationPrepMiddleware(
	appUseCase applicationUseCase.ApplicationUseCase,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := GetApplication(c.Request.Context())
		if !ok || caller == nil {
			logger.Error("application prep: no authenticated application in context")
			httputil.AbortWithErrorGin(c, apperrors.ErrUnauthorized, logger)
			return
		}

		raw := c.Param("id")
		if raw == SelfID {
			c.Request = c.Request.WithContext(WithTargetApplication(c.Request.Context(), caller))
			c.Next()
			return
		}

		if !caller.AccessLevel.Allows(applicationDomain.AccessAdmin) {
			httputil.AbortWithErrorGin(c, applicationDomain.ErrInsufficientAccess, logger)
			return
		}

		id, err := parseApplicationID(raw)
		if err != nil {
			httputil.HandleValidationErrorGin(c, err, logger)
			c.Abort()
			return
		}

		target, err := appUseCase.Get(c.Request.Context(), id)
		if err != nil {
			httputil.AbortWithErrorGin(c, err, logger)
			return
		}

		c.Request = c.Request.WithContext(WithTargetApplication(c.Request.Context(), target))
		c.Next()
	}
}

// parseApplicationID validates a decimal snowflake id from a path parameter.
func parseApplicationID(raw string) (snowflake.ID, error) {
	if err := validation.Validate(raw, validation.Required, customValidation.Snowflake); err != nil {
		return 0, customValidation.WrapValidationError(err)
	}
	id, err := snowflake.ParseString(raw)
	if err != nil || id <= 0 {
		return 0, apperrors.Wrap(apperrors.ErrInvalidInput, "invalid application id")
	}
	return id, nil
}
