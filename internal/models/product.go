package models

import "fmt"

// Product represents a sellable item in the catalog.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	InStock     bool    `json:"inStock"`
}

// ProductPayload is the raw request body for create and update.
// Fields stay loosely typed so the validation gate can apply truthiness
// rules before anything is coerced.
type ProductPayload struct {
	Name        any `json:"name" validate:"truthy"`
	Description any `json:"description" validate:"truthy"`
	Price       any `json:"price" validate:"truthy"`
	Category    any `json:"category" validate:"truthy"`
	InStock     any `json:"inStock" validate:"strictbool"`
}

// ProductFields is the coerced field set handed to the store.
// A nil pointer means the field was not supplied.
type ProductFields struct {
	Name        *string  `validate:"required"`
	Description *string  `validate:"required"`
	Price       *float64 `validate:"required"`
	Category    *string  `validate:"required"`
	InStock     *bool
}

// MergePolicy decides which supplied fields an update applies.
type MergePolicy string

const (
	// MergeLegacy keeps the old value for name, description, price and category
	// unless the new one is non-zero; inStock applies whenever supplied.
	MergeLegacy MergePolicy = "legacy"
	// MergeStrict applies every supplied field, zero values included.
	MergeStrict MergePolicy = "strict"
)

// ParseMergePolicy converts a config value into a MergePolicy.
func ParseMergePolicy(s string) (MergePolicy, error) {
	switch MergePolicy(s) {
	case MergeLegacy, MergeStrict:
		return MergePolicy(s), nil
	default:
		return "", fmt.Errorf("unknown merge policy %q", s)
	}
}

// NewProduct builds a product with the given ID from a full field set.
func NewProduct(id string, f ProductFields) Product {
	p := Product{ID: id}
	p.Apply(f, MergeStrict)
	return p
}

// Apply merges f into p according to policy. The ID is never touched.
func (p *Product) Apply(f ProductFields, policy MergePolicy) {
	if policy == MergeStrict {
		if f.Name != nil {
			p.Name = *f.Name
		}
		if f.Description != nil {
			p.Description = *f.Description
		}
		if f.Price != nil {
			p.Price = *f.Price
		}
		if f.Category != nil {
			p.Category = *f.Category
		}
		if f.InStock != nil {
			p.InStock = *f.InStock
		}
		return
	}

	if f.Name != nil && *f.Name != "" {
		p.Name = *f.Name
	}
	if f.Description != nil && *f.Description != "" {
		p.Description = *f.Description
	}
	if f.Price != nil && *f.Price != 0 {
		p.Price = *f.Price
	}
	if f.Category != nil && *f.Category != "" {
		p.Category = *f.Category
	}
	// inStock is presence-checked so an explicit false still applies.
	if f.InStock != nil {
		p.InStock = *f.InStock
	}
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
