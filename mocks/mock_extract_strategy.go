package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/philipeduarte001/licitacao/internal/domain"
	"github.com/philipeduarte001/licitacao/internal/port"
)

// MockExtractStrategy is a mock implementation of port.ExtractStrategy.
type MockExtractStrategy struct {
	mock.Mock
}

func (m *MockExtractStrategy) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockExtractStrategy) Available() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockExtractStrategy) Extract(ctx context.Context, input port.ExtractInput) (*domain.Notice, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notice), args.Error(1)
}
