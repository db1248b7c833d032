package services

import (
	"encoding/json"
	"log"
	"time"

	"katalog/internal/models"
	"katalog/internal/repositories"
)

// Product event types published after successful mutations.
const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
)

// EventPublisher publishes a serialized product event under a routing key.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// ProductEvent is the message body of a product event.
type ProductEvent struct {
	Type       string          `json:"type"`
	Product    *models.Product `json:"product,omitempty"`
	ProductID  string          `json:"productId"`
	OccurredAt time.Time       `json:"occurredAt"`
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo         repositories.ProductRepository
	policy       models.MergePolicy
	defaultLimit int
	events       EventPublisher
}

// NewProductService creates a new ProductService. events may be nil.
func NewProductService(repo repositories.ProductRepository, policy models.MergePolicy, defaultLimit int, events EventPublisher) *ProductService {
	if defaultLimit < 1 {
		defaultLimit = 10
	}
	return &ProductService{
		repo:         repo,
		policy:       policy,
		defaultLimit: defaultLimit,
		events:       events,
	}
}

// ListProducts returns the filtered, searched and paginated product window.
func (s *ProductService) ListProducts(q ProductQuery) (ProductPage, error) {
	products, err := s.repo.GetAll()
	if err != nil {
		return ProductPage{}, err
	}
	return ApplyQuery(products, q, s.defaultLimit), nil
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct stores a new product built from validated fields.
func (s *ProductService) CreateProduct(fields models.ProductFields) (*models.Product, error) {
	product, err := s.repo.Create(fields)
	if err != nil {
		return nil, err
	}
	s.publish(EventProductCreated, product.ID, product)
	return product, nil
}

// UpdateProduct merges fields into an existing product using the configured policy.
func (s *ProductService) UpdateProduct(id string, fields models.ProductFields) (*models.Product, error) {
	product, err := s.repo.Update(id, fields, s.policy)
	if err != nil {
		return nil, err
	}
	s.publish(EventProductUpdated, product.ID, product)
	return product, nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id string) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.publish(EventProductDeleted, id, nil)
	return nil
}

// CategoryStats counts products per category.
func (s *ProductService) CategoryStats() (map[string]int, error) {
	products, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}
	return CategoryCounts(products), nil
}

// Seed creates every product in catalog, logging failures.
func (s *ProductService) Seed(catalog []models.ProductFields) {
	for _, fields := range catalog {
		product, err := s.repo.Create(fields)
		if err != nil {
			log.Printf("Error seeding product: %v", err)
			continue
		}
		log.Printf("Seeded product: %s (ID: %s)", product.Name, product.ID)
	}
}

// publish never fails the request; broker problems are only logged.
func (s *ProductService) publish(eventType, id string, product *models.Product) {
	if s.events == nil {
		return
	}
	body, err := json.Marshal(ProductEvent{
		Type:       eventType,
		Product:    product,
		ProductID:  id,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		log.Printf("Failed to marshal %s event for product %s: %v", eventType, id, err)
		return
	}
	if err := s.events.Publish(eventType, body); err != nil {
		log.Printf("Warning: Failed to publish %s event for product %s: %v", eventType, id, err)
	}
}
