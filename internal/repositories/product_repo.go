package repositories

import (
	"katalog/internal/models"
)

// ProductRepository defines the interface for product data access.
// Lookups of unknown IDs return *apperrors.NotFoundError.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(fields models.ProductFields) (*models.Product, error)
	Update(id string, fields models.ProductFields, policy models.MergePolicy) (*models.Product, error)
	Delete(id string) error
}
