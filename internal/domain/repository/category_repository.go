package repository

import (
	"context"

	"github.com/oksasatya/go-catalog-api/internal/domain/entity"
)

type CategoryRepository interface {
	Create(ctx context.Context, c *entity.Category) error
	GetByID(ctx context.Context, id int64) (*entity.Category, error)
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	// List returns every category in store order.
	List(ctx context.Context) ([]entity.Category, error)
	Delete(ctx context.Context, id int64) error
}
