package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	applicationDomain "github.com/tregmine/webapi/internal/application/domain"
	"github.com/tregmine/webapi/internal/application/http/dto"
	applicationUseCase "github.com/tregmine/webapi/internal/application/usecase"
	apperrors "github.com/tregmine/webapi/internal/errors"
	"github.com/tregmine/webapi/internal/httputil"
	customValidation "github.com/tregmine/webapi/internal/validation"
)

// TokenHandler lets an authenticated application verify a third-party token.
type TokenHandler struct {
	tokenUseCase applicationUseCase.TokenUseCase
	logger       *slog.Logger
}

// NewTokenHandler creates a new token handler.
func NewTokenHandler(tokenUseCase applicationUseCase.TokenUseCase, logger *slog.Logger) *TokenHandler {
	return &TokenHandler{
		tokenUseCase: tokenUseCase,
		logger:       logger,
	}
}

// VerifyHandler decodes the submitted token.
// POST /v0/tokens/verify - Returns 200 with {"valid": false} for any rejected
// token; the failure reason is not disclosed.
func (h *TokenHandler) VerifyHandler(c *gin.Context) {
	var req dto.VerifyTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	decoded, err := h.tokenUseCase.DecodeToken(c.Request.Context(), req.Token)
	if err != nil {
		if apperrors.Is(err, applicationDomain.ErrInvalidToken) {
			c.JSON(http.StatusOK, dto.VerifyTokenResponse{Valid: false})
			return
		}
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	info := decoded.Application.Info()
	issuedAt := decoded.IssuedAt.UTC()
	c.JSON(http.StatusOK, dto.VerifyTokenResponse{
		Valid:       true,
		Application: &info,
		IssuedAt:    &issuedAt,
	})
}
