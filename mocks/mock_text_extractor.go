package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/philipeduarte001/licitacao/internal/port"
)

// MockTextExtractor is a mock implementation of port.TextExtractor.
type MockTextExtractor struct {
	mock.Mock
}

func (m *MockTextExtractor) ExtractText(ctx context.Context, fileBytes []byte) (*port.DocumentText, error) {
	args := m.Called(ctx, fileBytes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.DocumentText), args.Error(1)
}
