package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	cat, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cat)

	assert.NotEmpty(t, cat.Categories())
}

func TestCatalog_ProductsByCategory(t *testing.T) {
	cat, err := Load()
	require.NoError(t, err)

	pipes := cat.ProductsByCategory("pipes")
	require.NotEmpty(t, pipes)
	for _, p := range pipes {
		assert.Equal(t, "pipes", p.CategoryID)
	}
}

func TestCatalog_ProductsByCategory_Unknown(t *testing.T) {
	cat, err := Load()
	require.NoError(t, err)

	assert.Empty(t, cat.ProductsByCategory("boilers"))
}

func TestCatalog_Product(t *testing.T) {
	cat, err := Load()
	require.NoError(t, err)

	product, ok := cat.Product("ball-valve")
	require.True(t, ok)
	assert.Equal(t, "Ball Valve", product.Name)
	assert.Equal(t, []string{"size"}, product.Dimensions)
}

func TestCatalog_Product_Unknown(t *testing.T) {
	cat, err := Load()
	require.NoError(t, err)

	product, ok := cat.Product("garden-hose")
	assert.False(t, ok)
	assert.Nil(t, product)
}
