package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/philipeduarte001/licitacao/internal/domain"
)

// MockSupplierCatalog is a mock implementation of port.SupplierCatalog.
type MockSupplierCatalog struct {
	mock.Mock
}

func (m *MockSupplierCatalog) Search(ctx context.Context, object string) ([]domain.Supplier, error) {
	args := m.Called(ctx, object)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Supplier), args.Error(1)
}
