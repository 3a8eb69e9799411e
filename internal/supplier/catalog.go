// Package supplier recommends candidate vendors for a notice's object.
package supplier

import (
	"context"
	"log"
	"strings"

	"github.com/philipeduarte001/licitacao/internal/domain"
	"github.com/philipeduarte001/licitacao/internal/port"
)

// Catalog is a curated static vendor list. Lookup is keyword-free today;
// the object only narrows results when a future data source supports it.
type Catalog struct {
	suppliers []domain.Supplier
}

// NewCatalog creates the built-in catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		suppliers: []domain.Supplier{
			{
				Name:  "Mundo da Carabina",
				Site:  "https://www.mundodacarabina.com.br/",
				Phone: "(41) 3022-7901 ou (41) 99808-1110",
				Email: "contato@mundodacarabina.com.br",
				Notes: "Alta probabilidade de ter lanternas táticas com especificações semelhantes",
			},
			{
				Name:  "Falcon Armas",
				Site:  "https://www.falconarmas.com.br/",
				Phone: "(41) 3213-9100 ou (41) 98806-0361",
				Email: "contato@falconarmas.com.br",
				Notes: "Empresa com foco em equipamentos táticos e de aventura",
			},
			{
				Name:  "Casa da Pesca",
				Site:  "https://www.casadapesca.com.br/",
				Phone: "(41) 3027-2110",
				Email: "contato@casadapesca.com.br",
				Notes: "Comercializa lanternas de alta performance e táticas",
			},
		},
	}
}

var _ port.SupplierCatalog = (*Catalog)(nil)

// Search returns the candidate suppliers for the given object description.
func (c *Catalog) Search(ctx context.Context, object string) ([]domain.Supplier, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log.Printf("supplier.Catalog: returning %d suppliers for object %q", len(c.suppliers), strings.TrimSpace(object))
	out := make([]domain.Supplier, len(c.suppliers))
	copy(out, c.suppliers)
	return out, nil
}
