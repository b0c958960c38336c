package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-catalog-api/internal/domain/entity"
	repo "github.com/oksasatya/go-catalog-api/internal/domain/repository"
	"github.com/oksasatya/go-catalog-api/pkg/helpers"
)

// ErrUnknownIndexAction marks a job that can never succeed and should be dropped.
var ErrUnknownIndexAction = errors.New("unknown index action")

// ProductIndexer writes product documents. search.ProductIndex satisfies it.
type ProductIndexer interface {
	Upsert(ctx context.Context, p *entity.Product) error
	Delete(ctx context.Context, id int64) error
}

// IndexWorker applies queued IndexJobs to the search index.
type IndexWorker struct {
	Repo   repo.ProductRepository
	Index  ProductIndexer
	Logger *logrus.Logger
}

func NewIndexWorker(r repo.ProductRepository, index ProductIndexer, logger *logrus.Logger) *IndexWorker {
	return &IndexWorker{Repo: r, Index: index, Logger: logger}
}

// Handle reloads the product for an upsert so the document carries its category and the
// latest images. A product deleted since the job was queued is removed from the index.
func (w *IndexWorker) Handle(ctx context.Context, job IndexJob) error {
	switch job.Action {
	case IndexUpsert:
		p, err := w.Repo.GetByID(ctx, job.ProductID)
		if errors.Is(err, repo.ErrNotFound) {
			return w.Index.Delete(ctx, job.ProductID)
		}
		if err != nil {
			return fmt.Errorf("load product %d: %w", job.ProductID, err)
		}
		if err := w.Index.Upsert(ctx, p); err != nil {
			return err
		}
	case IndexDelete:
		if err := w.Index.Delete(ctx, job.ProductID); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownIndexAction, job.Action)
	}
	helpers.LogInfo(w.Logger, "product index updated", logrus.Fields{"product_id": job.ProductID, "action": job.Action})
	return nil
}
