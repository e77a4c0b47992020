package httputil

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/tregmine/webapi/internal/errors"
)

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestHandleErrorGin(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name         string
		err          error
		expectedCode int
		expectedBody string
	}{
		{
			name:         "not found",
			err:          apperrors.Wrap(apperrors.ErrNotFound, "application not found"),
			expectedCode: http.StatusNotFound,
			expectedBody: `{"error":"not_found","message":"Resource not found"}`,
		},
		{
			name:         "conflict",
			err:          apperrors.ErrConflict,
			expectedCode: http.StatusConflict,
			expectedBody: `{"error":"conflict","message":"Resource already exists"}`,
		},
		{
			name:         "invalid input",
			err:          apperrors.Wrap(apperrors.ErrInvalidInput, "name: cannot be blank"),
			expectedCode: http.StatusUnprocessableEntity,
			expectedBody: `{"error":"invalid_input","message":"name: cannot be blank: invalid input"}`,
		},
		{
			name:         "unauthorized",
			err:          apperrors.Wrap(apperrors.ErrUnauthorized, "invalid token"),
			expectedCode: http.StatusUnauthorized,
			expectedBody: `{"error":"unauthorized","message":"Authentication is required"}`,
		},
		{
			name:         "forbidden",
			err:          apperrors.ErrForbidden,
			expectedCode: http.StatusForbidden,
			expectedBody: `{"error":"forbidden","message":"Application is not allowed to perform this action"}`,
		},
		{
			name:         "internal error hides details",
			err:          errors.New("dial tcp 10.0.0.1:3306: connection refused"),
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"error":"internal_error","message":"Internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext()

			HandleErrorGin(c, tt.err, logger)

			assert.Equal(t, tt.expectedCode, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestHandleErrorGin_NilError(t *testing.T) {
	c, w := newTestContext()

	HandleErrorGin(c, nil, nil)

	assert.Empty(t, w.Body.String())
}

func TestAbortWithErrorGin(t *testing.T) {
	c, w := newTestContext()

	AbortWithErrorGin(c, apperrors.ErrUnauthorized, nil)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandleBadRequestGin(t *testing.T) {
	c, w := newTestContext()

	HandleBadRequestGin(c, errors.New("invalid character"), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"bad_request","message":"invalid character"}`, w.Body.String())
}

func TestHandleValidationErrorGin(t *testing.T) {
	c, w := newTestContext()

	HandleValidationErrorGin(c, errors.New("name: cannot be blank."), nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.JSONEq(t, `{"error":"validation_error","message":"name: cannot be blank."}`, w.Body.String())
}
