package repository

import (
	"context"

	"github.com/oksasatya/go-catalog-api/internal/domain/entity"
)

// ProductRepository persists products together with their images.
// Create, Update and Delete are atomic with respect to the product row and its image rows.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	// Update replaces the scalar fields and the whole image set of p.ID.
	Update(ctx context.Context, p *entity.Product) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
	// GetByID returns the product with its category and images attached.
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	// Find returns products with category and images attached.
	Find(ctx context.Context, q ProductQuery) ([]entity.Product, error)
}
