package repositories

import (
	"errors"

	"tienda/internal/models"
)

// ErrProductNotFound is returned when no product has the requested ID.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	// GetAll returns every product ordered by price, cheapest first.
	GetAll() ([]models.Product, error)
	GetByID(id uint) (*models.Product, error)
	Create(product *models.Product) error
	// Update replaces all mutable fields of an existing product.
	Update(product *models.Product) error
	Delete(id uint) error
}
