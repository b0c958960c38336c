package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-catalog-api/internal/domain/apperror"
	"github.com/oksasatya/go-catalog-api/internal/domain/entity"
	repo "github.com/oksasatya/go-catalog-api/internal/domain/repository"
	"github.com/oksasatya/go-catalog-api/pkg/helpers"
	"github.com/oksasatya/go-catalog-api/pkg/validation"
)

const msgInvalidProductID = "Invalid or missing ID"

type ImageInput struct {
	AssetID   string `json:"asset_id"`
	PublicID  string `json:"public_id"`
	URL       string `json:"url"`
	SecureURL string `json:"secure_url"`
}

// ProductInput is the candidate for create and update. Nil Price and Quantity default to zero.
// CategoryID and Quantity decode as JSON numbers and must be whole, so 3.0 is accepted.
type ProductInput struct {
	CategoryID  *float64     `json:"categoryId" validate:"required,gt=0,integral"`
	Title       *string      `json:"title" validate:"required,notblank"`
	Description *string      `json:"description"`
	Price       *float64     `json:"price" validate:"omitempty,gte=0"`
	Quantity    *float64     `json:"quantity" validate:"omitempty,gte=0,integral"`
	Images      []ImageInput `json:"images"`
}

var productMessages = validation.Messages{
	"categoryId": "Category ID is required and must be a number!",
	"title":      "Title is required and must be a non-empty string!",
	"price":      "Price must be a positive number or zero!",
	"quantity":   "Quantity must be a non-negative integer!",
	"images":     "Images must be an array!",
}

// ProductPayloadError reports a body whose field has the wrong JSON type with that
// field's validation message. It returns nil for errors it does not recognise.
func ProductPayloadError(err error) error {
	if fe := validation.DecodeError(err, productMessages); fe != nil {
		return apperror.Validation(fe.Error())
	}
	return nil
}

func (in ProductInput) Validate() error {
	if err := validation.Check(in, productMessages); err != nil {
		return apperror.Validation(err.Error())
	}
	return nil
}

// toEntity applies defaults and trimming to a validated input.
func (in ProductInput) toEntity() *entity.Product {
	p := &entity.Product{
		CategoryID: int64(*in.CategoryID),
		Title:      strings.TrimSpace(*in.Title),
		Images:     make([]entity.Image, 0, len(in.Images)),
	}
	if in.Description != nil {
		if d := strings.TrimSpace(*in.Description); d != "" {
			p.Description = &d
		}
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Quantity != nil {
		p.Quantity = int64(*in.Quantity)
	}
	for _, img := range in.Images {
		p.Images = append(p.Images, entity.Image{
			AssetID:   img.AssetID,
			PublicID:  img.PublicID,
			URL:       img.URL,
			SecureURL: img.SecureURL,
		})
	}
	return p
}

// SortInput is the body of a sorted listing. Limit arrives as text and is coerced.
type SortInput struct {
	Sort  string
	Order string
	Limit string
}

// FilterInput carries the candidate predicates of a filtered listing.
// Only one is applied: the last present of title, category, price.
type FilterInput struct {
	Title    *string
	Category []any
	Price    []any
}

// IndexAction names what the index worker should do with a product.
type IndexAction string

const (
	IndexUpsert IndexAction = "upsert"
	IndexDelete IndexAction = "delete"
)

// IndexJob is the queue message that keeps the search index in step with the store.
type IndexJob struct {
	Action    IndexAction     `json:"action"`
	ProductID int64           `json:"product_id"`
	Product   *entity.Product `json:"product,omitempty"`
	At        time.Time       `json:"at"`
}

// JobPublisher enqueues index jobs. helpers.RabbitQueue satisfies it.
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// ProductSearcher runs full-text queries against the search index.
type ProductSearcher interface {
	Search(ctx context.Context, q string, size int) ([]map[string]any, error)
}

type ProductService struct {
	Repo     repo.ProductRepository
	Jobs     JobPublisher
	Searcher ProductSearcher
	Logger   *logrus.Logger
}

func NewProductService(r repo.ProductRepository, jobs JobPublisher, searcher ProductSearcher, logger *logrus.Logger) *ProductService {
	return &ProductService{Repo: r, Jobs: jobs, Searcher: searcher, Logger: logger}
}

// Create persists the product together with its images in one store operation.
func (s *ProductService) Create(ctx context.Context, in ProductInput) (*entity.Product, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	p := in.toEntity()
	if err := s.Repo.Create(ctx, p); err != nil {
		if errors.Is(err, repo.ErrForeignKey) {
			return nil, apperror.ErrCategoryMissing
		}
		return nil, storeFailure(s.Logger, "create product failed", err, logrus.Fields{"category_id": p.CategoryID})
	}
	s.publish(ctx, IndexUpsert, p.ID, p)
	return p, nil
}

// Update replaces the scalar fields and the whole image set of an existing product.
func (s *ProductService) Update(ctx context.Context, rawID string, in ProductInput) error {
	if err := in.Validate(); err != nil {
		return err
	}
	id, err := parseID(rawID, msgInvalidProductID)
	if err != nil {
		return err
	}
	if err := s.requireExists(ctx, id); err != nil {
		return err
	}

	p := in.toEntity()
	p.ID = id
	if err := s.Repo.Update(ctx, p); err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			return apperror.ErrProductNotFound
		case errors.Is(err, repo.ErrForeignKey):
			return apperror.ErrCategoryMissing
		}
		return storeFailure(s.Logger, "update product failed", err, logrus.Fields{"product_id": id})
	}
	s.publish(ctx, IndexUpsert, id, p)
	return nil
}

// Delete removes the product and, with it, its images.
func (s *ProductService) Delete(ctx context.Context, rawID string) error {
	id, err := parseID(rawID, msgInvalidProductID)
	if err != nil {
		return err
	}
	if err := s.requireExists(ctx, id); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return apperror.ErrProductNotFound
		}
		return storeFailure(s.Logger, "delete product failed", err, logrus.Fields{"product_id": id})
	}
	s.publish(ctx, IndexDelete, id, nil)
	return nil
}

// FetchLimit returns up to limit products, newest first.
func (s *ProductService) FetchLimit(ctx context.Context, rawLimit string) ([]entity.Product, error) {
	limit, err := ParseLimit(rawLimit)
	if err != nil {
		return nil, err
	}
	return s.find(ctx, repo.ProductQuery{
		Sort:  &repo.ProductSort{Column: repo.ColumnCreatedAt, Direction: repo.SortDesc},
		Limit: limit,
	}, limit == 0)
}

func (s *ProductService) FetchOne(ctx context.Context, rawID string) (*entity.Product, error) {
	id, err := parseID(rawID, msgInvalidProductID)
	if err != nil {
		return nil, err
	}
	p, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperror.ErrProductNotFound
		}
		return nil, storeFailure(s.Logger, "fetch product failed", err, logrus.Fields{"product_id": id})
	}
	return p, nil
}

// FetchSort returns up to in.Limit products ordered by an allow-listed column.
func (s *ProductService) FetchSort(ctx context.Context, in SortInput) ([]entity.Product, error) {
	sort, err := BuildSort(in.Sort, in.Order)
	if err != nil {
		return nil, err
	}
	limit, err := ParseLimit(in.Limit)
	if err != nil {
		return nil, err
	}
	return s.find(ctx, repo.ProductQuery{Sort: &sort, Limit: limit}, limit == 0)
}

// FilterBy applies exactly one predicate selected by key.
func (s *ProductService) FilterBy(ctx context.Context, key string, value any) ([]entity.Product, error) {
	f, err := BuildFilter(key, value)
	if err != nil {
		return nil, err
	}
	return s.find(ctx, repo.ProductQuery{Filter: &f}, false)
}

// FetchFilter picks the last present field of in and filters by it alone.
// With no field present the result is empty.
func (s *ProductService) FetchFilter(ctx context.Context, in FilterInput) ([]entity.Product, error) {
	var (
		key   string
		value any
	)
	if in.Title != nil && *in.Title != "" {
		key, value = string(repo.FilterTitle), *in.Title
	}
	if in.Category != nil {
		key, value = string(repo.FilterCategory), in.Category
	}
	if in.Price != nil {
		key, value = string(repo.FilterPrice), in.Price
	}
	if key == "" {
		return []entity.Product{}, nil
	}
	return s.FilterBy(ctx, key, value)
}

// Search queries the product index. Without a configured index the result is empty.
func (s *ProductService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, apperror.Validation("Search query is required!")
	}
	if s.Searcher == nil {
		return []map[string]any{}, nil
	}
	hits, err := s.Searcher.Search(ctx, q, size)
	if err != nil {
		return nil, storeFailure(s.Logger, "product search failed", err, logrus.Fields{"q": q})
	}
	return hits, nil
}

func (s *ProductService) requireExists(ctx context.Context, id int64) error {
	ok, err := s.Repo.Exists(ctx, id)
	if err != nil {
		return storeFailure(s.Logger, "lookup product failed", err, logrus.Fields{"product_id": id})
	}
	if !ok {
		return apperror.ErrProductNotFound
	}
	return nil
}

func (s *ProductService) find(ctx context.Context, q repo.ProductQuery, empty bool) ([]entity.Product, error) {
	if empty {
		return []entity.Product{}, nil
	}
	list, err := s.Repo.Find(ctx, q)
	if err != nil {
		return nil, storeFailure(s.Logger, "find products failed", err, nil)
	}
	if list == nil {
		list = []entity.Product{}
	}
	return list, nil
}

// publish is best effort: the store change is already committed, so a queue
// failure is logged and the index catches up on the next change of the product.
func (s *ProductService) publish(ctx context.Context, action IndexAction, id int64, p *entity.Product) {
	if s.Jobs == nil {
		return
	}
	job := IndexJob{Action: action, ProductID: id, Product: p, At: time.Now().UTC()}
	if err := s.Jobs.PublishJSON(ctx, job); err != nil {
		helpers.LogWarn(s.Logger, "publish index job failed", err, logrus.Fields{"product_id": id, "action": action})
	}
}
