package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-catalog-api/internal/domain/entity"
	"github.com/oksasatya/go-catalog-api/internal/domain/repository"
)

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// Create inserts the product and its images in one transaction.
func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `
			INSERT INTO products (category_id, title, description, price, quantity)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at, updated_at
		`, p.CategoryID, p.Title, p.Description, p.Price, p.Quantity)
		if err := row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return mapError(err)
		}
		return insertImages(ctx, tx, p)
	})
}

// Update overwrites the scalar columns and swaps the image set in one transaction.
func (r *ProductRepository) Update(ctx context.Context, p *entity.Product) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `
			UPDATE products
			SET category_id = $1, title = $2, description = $3, price = $4, quantity = $5, updated_at = NOW()
			WHERE id = $6
			RETURNING created_at, updated_at
		`, p.CategoryID, p.Title, p.Description, p.Price, p.Quantity, p.ID)
		if err := row.Scan(&p.CreatedAt, &p.UpdatedAt); err != nil {
			return mapError(err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM images WHERE product_id = $1`, p.ID); err != nil {
			return mapError(err)
		}
		return insertImages(ctx, tx, p)
	})
}

// Delete removes the product; images go with it through ON DELETE CASCADE.
func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var ok bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, id).Scan(&ok)
	return ok, mapError(err)
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	list, err := r.query(ctx, productSelect+"\n\tWHERE p.id = $1", id)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, repository.ErrNotFound
	}
	return &list[0], nil
}

func (r *ProductRepository) Find(ctx context.Context, q repository.ProductQuery) ([]entity.Product, error) {
	sql, args, err := buildProductSelect(q)
	if err != nil {
		return nil, err
	}
	return r.query(ctx, sql, args...)
}

// query loads products with their category, then their images in a single extra round trip.
func (r *ProductRepository) query(ctx context.Context, sql string, args ...any) ([]entity.Product, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapError(err)
	}
	list, err := pgx.CollectRows(rows, scanProduct)
	if err != nil {
		return nil, mapError(err)
	}
	if len(list) == 0 {
		return []entity.Product{}, nil
	}
	if err := attachImages(ctx, r.pool, list); err != nil {
		return nil, err
	}
	return list, nil
}

func scanProduct(row pgx.CollectableRow) (entity.Product, error) {
	var (
		p entity.Product
		c entity.Category
	)
	err := row.Scan(&p.ID, &p.CategoryID, &p.Title, &p.Description, &p.Price, &p.Quantity, &p.CreatedAt, &p.UpdatedAt,
		&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return p, err
	}
	p.Category = &c
	p.Images = []entity.Image{}
	return p, nil
}

func attachImages(ctx context.Context, q querier, list []entity.Product) error {
	ids := make([]int64, len(list))
	byID := make(map[int64]int, len(list))
	for i := range list {
		ids[i] = list[i].ID
		byID[list[i].ID] = i
	}
	rows, err := q.Query(ctx, `
		SELECT id, product_id, asset_id, public_id, url, secure_url, created_at, updated_at
		FROM images
		WHERE product_id = ANY($1)
		ORDER BY id
	`, ids)
	if err != nil {
		return mapError(err)
	}
	images, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Image, error) {
		var img entity.Image
		err := row.Scan(&img.ID, &img.ProductID, &img.AssetID, &img.PublicID, &img.URL, &img.SecureURL,
			&img.CreatedAt, &img.UpdatedAt)
		return img, err
	})
	if err != nil {
		return mapError(err)
	}
	for _, img := range images {
		if i, ok := byID[img.ProductID]; ok {
			list[i].Images = append(list[i].Images, img)
		}
	}
	return nil
}

func insertImages(ctx context.Context, q querier, p *entity.Product) error {
	for i := range p.Images {
		img := &p.Images[i]
		img.ProductID = p.ID
		row := q.QueryRow(ctx, `
			INSERT INTO images (product_id, asset_id, public_id, url, secure_url)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at, updated_at
		`, img.ProductID, img.AssetID, img.PublicID, img.URL, img.SecureURL)
		if err := row.Scan(&img.ID, &img.CreatedAt, &img.UpdatedAt); err != nil {
			return mapError(err)
		}
	}
	return nil
}

var _ repository.ProductRepository = (*ProductRepository)(nil)
