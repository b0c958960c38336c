package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oksasatya/go-catalog-api/internal/domain/repository"
)

func TestMapError(t *testing.T) {
	other := errors.New("connection reset")
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"no rows", pgx.ErrNoRows, repository.ErrNotFound},
		{"unique", &pgconn.PgError{Code: codeUniqueViolation, ConstraintName: "categories_name_key"}, repository.ErrConflict},
		{"foreign key", fmt.Errorf("exec: %w", &pgconn.PgError{Code: codeForeignKeyViolation}), repository.ErrForeignKey},
		{"check violation passes through", &pgconn.PgError{Code: "23514"}, nil},
		{"other", other, other},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapError(tt.in)
			if tt.want == nil {
				if got != tt.in {
					t.Fatalf("expected the error unchanged, got %v", got)
				}
				return
			}
			if !errors.Is(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
	if mapError(nil) != nil {
		t.Fatal("nil must stay nil")
	}
}
