package port

import (
	"context"

	"github.com/philipeduarte001/licitacao/internal/domain"
)

// SupplierCatalog looks up candidate vendors for a notice's object
// description.
type SupplierCatalog interface {
	Search(ctx context.Context, object string) ([]domain.Supplier, error)
}
