package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-catalog-api/internal/domain/apperror"
	"github.com/oksasatya/go-catalog-api/internal/domain/entity"
	repo "github.com/oksasatya/go-catalog-api/internal/domain/repository"
	"github.com/oksasatya/go-catalog-api/pkg/validation"
)

const msgInvalidCategoryID = "Invalid or missing category ID"

type CategoryInput struct {
	Name string `json:"name" validate:"notblank"`
}

var categoryMessages = validation.Messages{
	"name": "Category name is required and must be a non-empty string!",
}

func (in CategoryInput) Validate() error {
	if err := validation.Check(in, categoryMessages); err != nil {
		return apperror.Validation(err.Error())
	}
	return nil
}

type CategoryService struct {
	Repo   repo.CategoryRepository
	Logger *logrus.Logger
}

func NewCategoryService(r repo.CategoryRepository, logger *logrus.Logger) *CategoryService {
	return &CategoryService{Repo: r, Logger: logger}
}

// Create stores the trimmed name. Names are unique; the store's unique index
// settles concurrent creates that both pass the lookup.
func (s *CategoryService) Create(ctx context.Context, in CategoryInput) (*entity.Category, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)

	_, err := s.Repo.GetByName(ctx, name)
	switch {
	case err == nil:
		return nil, apperror.ErrCategoryExists
	case !errors.Is(err, repo.ErrNotFound):
		return nil, storeFailure(s.Logger, "lookup category failed", err, logrus.Fields{"name": name})
	}

	c := &entity.Category{Name: name}
	if err := s.Repo.Create(ctx, c); err != nil {
		if errors.Is(err, repo.ErrConflict) {
			return nil, apperror.ErrCategoryExists
		}
		return nil, storeFailure(s.Logger, "create category failed", err, logrus.Fields{"name": name})
	}
	return c, nil
}

func (s *CategoryService) FetchAll(ctx context.Context) ([]entity.Category, error) {
	list, err := s.Repo.List(ctx)
	if err != nil {
		return nil, storeFailure(s.Logger, "list categories failed", err, nil)
	}
	if list == nil {
		list = []entity.Category{}
	}
	return list, nil
}

// Delete removes a category that no product references.
func (s *CategoryService) Delete(ctx context.Context, rawID string) error {
	id, err := parseID(rawID, msgInvalidCategoryID)
	if err != nil {
		return err
	}

	if _, err := s.Repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return apperror.ErrCategoryNotFound
		}
		return storeFailure(s.Logger, "lookup category failed", err, logrus.Fields{"category_id": id})
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			return apperror.ErrCategoryNotFound
		case errors.Is(err, repo.ErrForeignKey):
			return apperror.ErrCategoryInUse
		}
		return storeFailure(s.Logger, "delete category failed", err, logrus.Fields{"category_id": id})
	}
	return nil
}
