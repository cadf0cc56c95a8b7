package main

import (
	"testing"

	"tienda/internal/models"
	"tienda/internal/repositories"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedProducts(t *testing.T) {
	repo := repositories.NewMemoryProductRepository()

	seedProducts(repo, zerolog.Nop())

	products, err := repo.GetAll()
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, "Mouse Inalambrico", products[0].Name, "listed cheapest first")
	for _, p := range products {
		assert.True(t, p.Availability)
		assert.True(t, p.Price.IsPositive())
	}
}

func TestSeedProducts_SkipsNonEmptyStore(t *testing.T) {
	repo := repositories.NewMemoryProductRepository()
	require.NoError(t, repo.Create(&models.Product{Name: "Existing", Price: decimal.NewFromInt(10)}))

	seedProducts(repo, zerolog.Nop())

	products, err := repo.GetAll()
	require.NoError(t, err)
	assert.Len(t, products, 1)
}
