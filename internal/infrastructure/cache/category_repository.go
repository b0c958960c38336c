package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-catalog-api/internal/domain/entity"
	"github.com/oksasatya/go-catalog-api/internal/domain/repository"
	"github.com/oksasatya/go-catalog-api/pkg/helpers"
)

// categoryGenKey counts category writes. The cached list lives under a key that
// embeds the generation read before the store, so a list read concurrently with a
// write is stored under a generation no later reader asks for.
var categoryGenKey = helpers.CacheKey("categories", "gen")

func categoryListKey(gen int64) string {
	return helpers.CacheKey("categories", "all", strconv.FormatInt(gen, 10))
}

// CategoryRepository serves List from redis and bumps the list generation on every write.
// Redis failures fall through to the wrapped repository.
type CategoryRepository struct {
	repository.CategoryRepository
	RDB    *redis.Client
	TTL    time.Duration
	Logger *logrus.Logger
}

func NewCategoryRepository(next repository.CategoryRepository, rdb *redis.Client, ttl time.Duration, logger *logrus.Logger) *CategoryRepository {
	return &CategoryRepository{CategoryRepository: next, RDB: rdb, TTL: ttl, Logger: logger}
}

func (r *CategoryRepository) List(ctx context.Context) ([]entity.Category, error) {
	if r.RDB == nil || r.TTL <= 0 {
		return r.CategoryRepository.List(ctx)
	}

	gen, err := r.generation(ctx)
	if err != nil {
		helpers.LogWarn(r.Logger, "category cache generation read failed", err, nil)
		return r.CategoryRepository.List(ctx)
	}
	key := categoryListKey(gen)

	var cached []entity.Category
	hit, err := helpers.RedisGetJSON(ctx, r.RDB, key, &cached)
	if err != nil {
		helpers.LogWarn(r.Logger, "category cache read failed", err, logrus.Fields{"key": key})
	}
	if hit {
		return cached, nil
	}

	list, err := r.CategoryRepository.List(ctx)
	if err != nil {
		return nil, err
	}
	if err := helpers.RedisSetJSON(ctx, r.RDB, key, list, r.TTL); err != nil {
		helpers.LogWarn(r.Logger, "category cache write failed", err, logrus.Fields{"key": key})
	}
	return list, nil
}

func (r *CategoryRepository) Create(ctx context.Context, c *entity.Category) error {
	if err := r.CategoryRepository.Create(ctx, c); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	if err := r.CategoryRepository.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

// generation is 0 until the first write.
func (r *CategoryRepository) generation(ctx context.Context) (int64, error) {
	gen, err := r.RDB.Get(ctx, categoryGenKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (r *CategoryRepository) invalidate(ctx context.Context) {
	if r.RDB == nil {
		return
	}
	if err := r.RDB.Incr(ctx, categoryGenKey).Err(); err != nil {
		helpers.LogWarn(r.Logger, "category cache invalidation failed", err, logrus.Fields{"key": categoryGenKey})
	}
}

var _ repository.CategoryRepository = (*CategoryRepository)(nil)
