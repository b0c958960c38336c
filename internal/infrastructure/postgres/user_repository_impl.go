package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-catalog-api/internal/domain/entity"
	"github.com/oksasatya/go-catalog-api/internal/domain/repository"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create inserts the user. An empty Role falls back to the column default.
func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, password, role)
		VALUES ($1, $2, COALESCE(NULLIF($3, ''), 'user'))
		RETURNING id, role, enabled, created_at, updated_at
	`, u.Email, u.Password, string(u.Role))

	return mapError(row.Scan(&u.ID, &u.Role, &u.Enabled, &u.CreatedAt, &u.UpdatedAt))
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, `WHERE email = $1`, email)
}

func (r *UserRepository) getOne(ctx context.Context, where string, arg any) (*entity.User, error) {
	u := &entity.User{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, password, role, enabled, created_at, updated_at
		FROM users
		`+where, arg)

	if err := row.Scan(&u.ID, &u.Email, &u.Password, &u.Role, &u.Enabled,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, mapError(err)
	}
	return u, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
