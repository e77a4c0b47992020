// Package mocks provides testify mocks of the application use cases.
package mocks

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/mock"

	applicationDomain "github.com/tregmine/webapi/internal/application/domain"
)

// MockTokenUseCase is a mock implementation of usecase.TokenUseCase.
type MockTokenUseCase struct {
	mock.Mock
}

func (m *MockTokenUseCase) CreateToken(ctx context.Context, app *applicationDomain.Application) (string, error) {
	args := m.Called(ctx, app)
	return args.String(0), args.Error(1)
}

func (m *MockTokenUseCase) CreateTokenByID(ctx context.Context, id snowflake.ID) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockTokenUseCase) DecodeToken(
	ctx context.Context,
	token string,
) (*applicationDomain.DecodedToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*applicationDomain.DecodedToken), args.Error(1)
}

func (m *MockTokenUseCase) GetApplication(ctx context.Context, token string) (*applicationDomain.Application, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*applicationDomain.Application), args.Error(1)
}

// MockApplicationUseCase is a mock implementation of usecase.ApplicationUseCase.
type MockApplicationUseCase struct {
	mock.Mock
}

func (m *MockApplicationUseCase) Create(
	ctx context.Context,
	input *applicationDomain.CreateApplicationInput,
) (*applicationDomain.CreateApplicationOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*applicationDomain.CreateApplicationOutput), args.Error(1)
}

func (m *MockApplicationUseCase) Get(ctx context.Context, id snowflake.ID) (*applicationDomain.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*applicationDomain.Application), args.Error(1)
}

func (m *MockApplicationUseCase) List(
	ctx context.Context,
	offset, limit int,
) ([]*applicationDomain.Application, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*applicationDomain.Application), args.Error(1)
}

func (m *MockApplicationUseCase) Update(
	ctx context.Context,
	id snowflake.ID,
	input *applicationDomain.UpdateApplicationInput,
) (*applicationDomain.Application, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*applicationDomain.Application), args.Error(1)
}

func (m *MockApplicationUseCase) Delete(ctx context.Context, id snowflake.ID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockApplicationUseCase) RollSalt(
	ctx context.Context,
	id snowflake.ID,
) (*applicationDomain.RollSaltOutput, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*applicationDomain.RollSaltOutput), args.Error(1)
}

func (m *MockApplicationUseCase) IssueToken(ctx context.Context, id snowflake.ID) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}
