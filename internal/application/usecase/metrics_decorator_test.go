package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	applicationDomain "github.com/tregmine/webapi/internal/application/domain"
	"github.com/tregmine/webapi/internal/application/usecase/mocks"
	"github.com/tregmine/webapi/internal/metrics"
)

type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

func (m *mockBusinessMetrics) RecordTokenDecode(ctx context.Context, result string) {
	m.Called(ctx, result)
}

func expectOperation(m *mockBusinessMetrics, domain, operation, status string) {
	m.On("RecordOperation", mock.Anything, domain, operation, status).Once()
	m.On("RecordDuration", mock.Anything, domain, operation, mock.AnythingOfType("time.Duration"), status).Once()
}

func TestApplicationUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()
	id := snowflake.ID(42)

	t.Run("Success_RecordsSuccess", func(t *testing.T) {
		next := &mocks.MockApplicationUseCase{}
		m := &mockBusinessMetrics{}
		output := &applicationDomain.RollSaltOutput{Token: "a.b.c"}
		next.On("RollSalt", ctx, id).Return(output, nil).Once()
		expectOperation(m, "application", "roll_salt", "success")

		got, err := NewApplicationUseCaseWithMetrics(next, m).RollSalt(ctx, id)

		require.NoError(t, err)
		assert.Equal(t, output, got)
		next.AssertExpectations(t)
		m.AssertExpectations(t)
	})

	t.Run("Error_RecordsError", func(t *testing.T) {
		next := &mocks.MockApplicationUseCase{}
		m := &mockBusinessMetrics{}
		next.On("Delete", ctx, id).Return(applicationDomain.ErrApplicationNotFound).Once()
		expectOperation(m, "application", "delete", "error")

		err := NewApplicationUseCaseWithMetrics(next, m).Delete(ctx, id)

		assert.ErrorIs(t, err, applicationDomain.ErrApplicationNotFound)
		m.AssertExpectations(t)
	})

	t.Run("Success_IssueToken", func(t *testing.T) {
		next := &mocks.MockApplicationUseCase{}
		m := &mockBusinessMetrics{}
		next.On("IssueToken", ctx, id).Return("a.b.c", nil).Once()
		expectOperation(m, "application", "issue_token", "success")

		token, err := NewApplicationUseCaseWithMetrics(next, m).IssueToken(ctx, id)

		require.NoError(t, err)
		assert.Equal(t, "a.b.c", token)
		m.AssertExpectations(t)
	})
}

func TestTokenUseCaseWithMetrics_DecodeResults(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		err    error
		status string
		result string
	}{
		{
			name:   "Valid",
			status: "success",
			result: metrics.DecodeResultValid,
		},
		{
			name: "Invalid",
			err: applicationDomain.NewDecodeFailure(
				applicationDomain.ReasonSignatureMismatch,
				errors.New("mismatch"),
			),
			status: "error",
			result: metrics.DecodeResultInvalid,
		},
		{
			name:   "StorageFault",
			err:    errors.New("connection refused"),
			status: "error",
			result: metrics.DecodeResultError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := &mocks.MockTokenUseCase{}
			m := &mockBusinessMetrics{}
			if tt.err != nil {
				next.On("DecodeToken", ctx, "a.b.c").Return(nil, tt.err).Once()
			} else {
				next.On("DecodeToken", ctx, "a.b.c").
					Return(&applicationDomain.DecodedToken{ApplicationID: "42"}, nil).
					Once()
			}
			expectOperation(m, "token", "decode", tt.status)
			m.On("RecordTokenDecode", mock.Anything, tt.result).Once()

			_, err := NewTokenUseCaseWithMetrics(next, m).DecodeToken(ctx, "a.b.c")

			assert.Equal(t, tt.err, err)
			next.AssertExpectations(t)
			m.AssertExpectations(t)
		})
	}
}

func TestTokenUseCaseWithMetrics_CreateToken(t *testing.T) {
	ctx := context.Background()
	next := &mocks.MockTokenUseCase{}
	m := &mockBusinessMetrics{}
	app := &applicationDomain.Application{ID: 42}
	next.On("CreateToken", ctx, app).Return("a.b.c", nil).Once()
	expectOperation(m, "token", "create", "success")

	token, err := NewTokenUseCaseWithMetrics(next, m).CreateToken(ctx, app)

	require.NoError(t, err)
	assert.Equal(t, "a.b.c", token)
	m.AssertExpectations(t)
}
