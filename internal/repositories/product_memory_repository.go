package repositories

import (
	"sync"

	"katalog/internal/apperrors"
	"katalog/internal/models"

	"github.com/google/uuid"
)

// MemoryProductRepository is an in-memory implementation of ProductRepository.
// Products are kept in insertion order; writers are serialised by mu.
type MemoryProductRepository struct {
	mu       sync.RWMutex
	products []models.Product
	retired  map[string]struct{}
	newID    func() string
}

// NewMemoryProductRepository creates an empty MemoryProductRepository.
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{
		retired: make(map[string]struct{}),
		newID:   func() string { return uuid.New().String() },
	}
}

// GetAll returns a copy of every product in insertion order.
func (r *MemoryProductRepository) GetAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, len(r.products))
	copy(productList, r.products)
	return productList, nil
}

// GetByID returns a product by its ID.
func (r *MemoryProductRepository) GetByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, apperrors.NotFound(apperrors.MsgProductNotFound)
	}
	product := r.products[i]
	return &product, nil
}

// Create appends a new product with a freshly generated ID.
func (r *MemoryProductRepository) Create(fields models.ProductFields) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.newID()
	for r.taken(id) {
		id = r.newID()
	}
	product := models.NewProduct(id, fields)
	r.products = append(r.products, product)
	return &product, nil
}

// Update merges fields into an existing product.
func (r *MemoryProductRepository) Update(id string, fields models.ProductFields, policy models.MergePolicy) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, apperrors.NotFound(apperrors.MsgProductNotFound)
	}
	r.products[i].Apply(fields, policy)
	product := r.products[i]
	return &product, nil
}

// Delete removes a product by its ID. The ID is never issued again.
func (r *MemoryProductRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return apperrors.NotFound(apperrors.MsgProductNotFound)
	}
	r.retired[r.products[i].ID] = struct{}{}
	r.products = append(r.products[:i], r.products[i+1:]...)
	return nil
}

// indexOf must be called with mu held.
func (r *MemoryProductRepository) indexOf(id string) int {
	for i := range r.products {
		if r.products[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *MemoryProductRepository) taken(id string) bool {
	if _, ok := r.retired[id]; ok {
		return true
	}
	return r.indexOf(id) >= 0
}
