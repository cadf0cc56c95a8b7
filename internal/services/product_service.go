package services

import (
	"fmt"
	"time"

	"tienda/internal/models"
	"tienda/internal/repositories"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// EventPublisher delivers product lifecycle events to interested consumers.
type EventPublisher interface {
	PublishProductEvent(event models.ProductEvent) error
}

// ProductInput carries the client-supplied fields of a product.
// A nil Availability means the client did not send one.
type ProductInput struct {
	Name         string
	Price        decimal.Decimal
	Availability *bool
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher
	log       zerolog.Logger
}

// NewProductService creates a new ProductService. publisher may be nil, in
// which case no events are emitted.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher, log zerolog.Logger) *ProductService {
	return &ProductService{
		repo:      repo,
		publisher: publisher,
		log:       log.With().Str("component", "product_service").Logger(),
	}
}

// GetAllProducts retrieves all products, cheapest first.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id uint) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct stores a new product. Availability defaults to true.
func (s *ProductService) CreateProduct(input ProductInput) (*models.Product, error) {
	product := &models.Product{
		Name:         input.Name,
		Price:        input.Price.Round(models.PriceScale),
		Availability: true,
	}
	if input.Availability != nil {
		product.Availability = *input.Availability
	}
	if err := s.repo.Create(product); err != nil {
		return nil, err
	}
	s.publish(models.ProductCreated, product)
	return product, nil
}

// UpdateProduct replaces name, price and availability of an existing product.
// Availability keeps its stored value when the input carries none.
func (s *ProductService) UpdateProduct(id uint, input ProductInput) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	product.Name = input.Name
	product.Price = input.Price.Round(models.PriceScale)
	if input.Availability != nil {
		product.Availability = *input.Availability
	}
	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	s.publish(models.ProductUpdated, product)
	return product, nil
}

// ToggleAvailability flips the stored availability of a product.
func (s *ProductService) ToggleAvailability(id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	product.Availability = !product.Availability
	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	s.publish(models.ProductAvailabilityToggled, product)
	return product, nil
}

// DeleteProduct removes a product and returns the record as it was before deletion.
func (s *ProductService) DeleteProduct(id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(id); err != nil {
		return nil, fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	s.publish(models.ProductDeleted, product)
	return product, nil
}

func (s *ProductService) publish(eventType models.ProductEventType, product *models.Product) {
	if s.publisher == nil {
		return
	}
	event := models.ProductEvent{
		Type:       eventType,
		Product:    *product,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.publisher.PublishProductEvent(event); err != nil {
		s.log.Warn().Err(err).
			Str("event", string(eventType)).
			Uint("product_id", product.ID).
			Msg("failed to publish product event")
	}
}
