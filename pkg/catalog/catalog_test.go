package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticProvider(t *testing.T) {
	products, err := NewStaticProvider().Products(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 6)

	assert.Equal(t, int64(1), products[0].ID)
	assert.Equal(t, "tshirts", products[0].Category)
	assert.False(t, products[0].Price.IsNegative())
}

func TestCategories(t *testing.T) {
	products, err := NewStaticProvider().Products(context.Background())
	require.NoError(t, err)

	categories := Categories(products)
	assert.Equal(t, []string{"tshirts", "hoodies", "bottoms", "accessories"}, categories)
}

func TestFilterByCategory(t *testing.T) {
	products, err := NewStaticProvider().Products(context.Background())
	require.NoError(t, err)

	t.Run("Named category", func(t *testing.T) {
		tshirts := FilterByCategory(products, "tshirts")
		require.Len(t, tshirts, 2)
		for _, product := range tshirts {
			assert.Equal(t, "tshirts", product.Category)
		}
	})

	t.Run("All keeps everything", func(t *testing.T) {
		assert.Len(t, FilterByCategory(products, "all"), 6)
		assert.Len(t, FilterByCategory(products, ""), 6)
	})

	t.Run("Unknown category is empty", func(t *testing.T) {
		assert.Empty(t, FilterByCategory(products, "shoes"))
	})
}
