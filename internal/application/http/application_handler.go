package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tregmine/webapi/internal/application/http/dto"
	applicationUseCase "github.com/tregmine/webapi/internal/application/usecase"
	apperrors "github.com/tregmine/webapi/internal/errors"
	"github.com/tregmine/webapi/internal/httputil"
	customValidation "github.com/tregmine/webapi/internal/validation"
)

// ApplicationHandler handles the /v0/applications endpoints.
type ApplicationHandler struct {
	appUseCase applicationUseCase.ApplicationUseCase
	logger     *slog.Logger
}

// NewApplicationHandler creates a new application handler.
func NewApplicationHandler(
	appUseCase applicationUseCase.ApplicationUseCase,
	logger *slog.Logger,
) *ApplicationHandler {
	return &ApplicationHandler{
		appUseCase: appUseCase,
		logger:     logger,
	}
}

// ListHandler lists applications, newest first.
// GET /v0/applications?offset=0&limit=50 - admin.
func (h *ApplicationHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	apps, err := h.appUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapApplicationsToListResponse(apps))
}

// CreateHandler registers an application.
// POST /v0/applications - admin. Returns 201 with the application and its first token.
func (h *ApplicationHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	output, err := h.appUseCase.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.ApplicationTokenResponse{
		Application: dto.MapApplicationToResponse(output.Application),
		Token:       output.Token,
	})
}

// GetHandler returns the application resolved by ApplicationPrepMiddleware.
// GET /v0/applications/:id
func (h *ApplicationHandler) GetHandler(c *gin.Context) {
	target, ok := GetTargetApplication(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.New("target application not resolved"), h.logger)
		return
	}
	c.JSON(http.StatusOK, dto.MapApplicationToResponse(target))
}

// UpdateHandler changes name, access level and disabled state.
// PUT /v0/applications/:id - admin.
func (h *ApplicationHandler) UpdateHandler(c *gin.Context) {
	id, err := parseApplicationID(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var req dto.UpdateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	app, err := h.appUseCase.Update(c.Request.Context(), id, req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapApplicationToResponse(app))
}

// DeleteHandler removes an application. Its tokens stop verifying immediately.
// DELETE /v0/applications/:id - admin. Returns 204.
func (h *ApplicationHandler) DeleteHandler(c *gin.Context) {
	id, err := parseApplicationID(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := h.appUseCase.Delete(c.Request.Context(), id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// IssueTokenHandler mints an additional token for the target application.
// POST /v0/applications/:id/tokens
func (h *ApplicationHandler) IssueTokenHandler(c *gin.Context) {
	target, ok := GetTargetApplication(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.New("target application not resolved"), h.logger)
		return
	}

	token, err := h.appUseCase.IssueToken(c.Request.Context(), target.ID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.TokenResponse{Token: token})
}

// RollSaltHandler rotates the target's salt, revoking all of its tokens, and
// returns a replacement token.
// POST /v0/applications/:id/roll-salt
func (h *ApplicationHandler) RollSaltHandler(c *gin.Context) {
	target, ok := GetTargetApplication(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.New("target application not resolved"), h.logger)
		return
	}

	output, err := h.appUseCase.RollSalt(c.Request.Context(), target.ID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ApplicationTokenResponse{
		Application: dto.MapApplicationToResponse(output.Application),
		Token:       output.Token,
	})
}
