// Package httputil maps domain errors and request parameters onto the JSON API.
package httputil

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/tregmine/webapi/internal/errors"
)

// ErrorResponse is the body of every error answer.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// UnauthorizedResponse is the body of every 401. Missing, malformed and
// rejected credentials all produce it so callers cannot tell them apart.
var UnauthorizedResponse = ErrorResponse{
	Error:   "unauthorized",
	Message: "Authentication is required",
}

type errorMapping struct {
	target error
	status int
	body   ErrorResponse
	// echo replaces the fixed message with err.Error().
	echo bool
}

// errorMappings is checked in order; the first sentinel found in the chain wins.
var errorMappings = []errorMapping{
	{apperrors.ErrNotFound, http.StatusNotFound, ErrorResponse{"not_found", "Resource not found"}, false},
	{apperrors.ErrConflict, http.StatusConflict, ErrorResponse{"conflict", "Resource already exists"}, false},
	{apperrors.ErrInvalidInput, http.StatusUnprocessableEntity, ErrorResponse{Error: "invalid_input"}, true},
	{apperrors.ErrUnauthorized, http.StatusUnauthorized, UnauthorizedResponse, false},
	{apperrors.ErrForbidden, http.StatusForbidden, ErrorResponse{"forbidden", "Application is not allowed to perform this action"}, false},
}

var internalErrorResponse = ErrorResponse{"internal_error", "Internal server error"}

func resolveError(err error) (int, ErrorResponse) {
	for _, m := range errorMappings {
		if !apperrors.Is(err, m.target) {
			continue
		}
		body := m.body
		if m.echo {
			body.Message = err.Error()
		}
		return m.status, body
	}
	return http.StatusInternalServerError, internalErrorResponse
}

// HandleErrorGin writes the JSON answer for err. Details of unmapped errors
// are logged and never sent to the client.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	status, body := resolveError(err)

	if logger != nil {
		level := slog.LevelWarn
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(c.Request.Context(), level, "request failed",
			slog.Int("status_code", status),
			slog.String("error_code", body.Error),
			slog.Any("error", err),
		)
	}

	c.JSON(status, body)
}

// AbortWithErrorGin is HandleErrorGin for middleware: it also stops the chain.
func AbortWithErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	HandleErrorGin(c, err, logger)
	c.Abort()
}

// HandleBadRequestGin answers 400 for bodies or parameters that cannot be decoded.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("bad request", slog.Any("error", err))
	}
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: err.Error()})
}

// HandleValidationErrorGin answers 422 for decoded requests that fail validation.
func HandleValidationErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("validation failed", slog.Any("error", err))
	}
	c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation_error", Message: err.Error()})
}
