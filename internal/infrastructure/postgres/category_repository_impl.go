package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-catalog-api/internal/domain/entity"
	"github.com/oksasatya/go-catalog-api/internal/domain/repository"
)

type CategoryRepository struct {
	pool *pgxpool.Pool
}

func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

func (r *CategoryRepository) Create(ctx context.Context, c *entity.Category) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO categories (name)
		VALUES ($1)
		RETURNING id, created_at, updated_at
	`, c.Name)
	return mapError(row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt))
}

func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*entity.Category, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

func (r *CategoryRepository) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	return r.getOne(ctx, `WHERE name = $1`, name)
}

func (r *CategoryRepository) getOne(ctx context.Context, where string, arg any) (*entity.Category, error) {
	c := &entity.Category{}
	row := r.pool.QueryRow(ctx, `SELECT id, name, created_at, updated_at FROM categories `+where, arg)
	if err := row.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, mapError(err)
	}
	return c, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]entity.Category, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, created_at, updated_at FROM categories ORDER BY id`)
	if err != nil {
		return nil, mapError(err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Category, error) {
		var c entity.Category
		err := row.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
		return c, err
	})
	return list, mapError(err)
}

// Delete fails with ErrForeignKey while products still reference the category.
func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.CategoryRepository = (*CategoryRepository)(nil)
