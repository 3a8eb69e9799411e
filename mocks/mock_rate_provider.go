package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockRateProvider is a mock implementation of port.RateProvider.
type MockRateProvider struct {
	mock.Mock
}

func (m *MockRateProvider) CurrentRate(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}
