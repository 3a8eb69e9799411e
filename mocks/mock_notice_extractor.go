package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/philipeduarte001/licitacao/internal/domain"
	"github.com/philipeduarte001/licitacao/internal/port"
)

// MockNoticeExtractor is a mock implementation of port.NoticeExtractor.
type MockNoticeExtractor struct {
	mock.Mock
}

func (m *MockNoticeExtractor) Extract(ctx context.Context, input port.ExtractInput) *domain.Notice {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*domain.Notice)
}
