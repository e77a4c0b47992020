// Package mocks provides mock implementations of the database package interfaces.
package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
)

// MockTxManager is a mock implementation of database.TxManager. When the
// configured return is nil, WithTx runs fn with the given context.
type MockTxManager struct {
	mock.Mock
}

// NewMockTxManager creates a MockTxManager that expects any number of WithTx
// calls and asserts expectations on test cleanup.
func NewMockTxManager(t *testing.T) *MockTxManager {
	m := &MockTxManager{}
	m.On("WithTx", mock.Anything, mock.Anything).Return(nil).Maybe()
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// WithTx mocks the WithTx method of TxManager.
func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx)
}
