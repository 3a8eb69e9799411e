package supplier

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	c := NewCatalog()
	suppliers, err := c.Search(context.Background(), "lanternas táticas")
	require.NoError(t, err)
	require.Len(t, suppliers, 3)

	names := make([]string, 0, len(suppliers))
	for _, s := range suppliers {
		names = append(names, s.Name)
		assert.NotEmpty(t, s.Site)
		assert.NotEmpty(t, s.Phone)
		assert.NotEmpty(t, s.Email)
		assert.NotEmpty(t, s.Notes)
	}
	assert.Equal(t, []string{"Mundo da Carabina", "Falcon Armas", "Casa da Pesca"}, names)
}

func TestSearch_ReturnsCopy(t *testing.T) {
	c := NewCatalog()
	first, err := c.Search(context.Background(), "")
	require.NoError(t, err)

	first[0].Name = "mutated"

	second, err := c.Search(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "Mundo da Carabina", second[0].Name)
}

func TestSearch_CancelledContext(t *testing.T) {
	c := NewCatalog()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Search(ctx, "lanternas")
	assert.ErrorIs(t, err, context.Canceled)
}
