package application

import (
	"context"
	"errors"
	"testing"

	"github.com/oksasatya/go-catalog-api/internal/domain/entity"
)

type fakeIndex struct {
	docs map[int64]entity.Product
	err  error
}

func (f *fakeIndex) Upsert(_ context.Context, p *entity.Product) error {
	if f.err != nil {
		return f.err
	}
	f.docs[p.ID] = *p
	return nil
}

func (f *fakeIndex) Delete(_ context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	delete(f.docs, id)
	return nil
}

func TestIndexWorkerFollowsStore(t *testing.T) {
	svc, store, jobs := newProductFixture()
	index := &fakeIndex{docs: map[int64]entity.Product{}}
	worker := NewIndexWorker(fakeProducts{store}, index, nil)
	ctx := context.Background()

	p, err := svc.Create(ctx, shirt(1, ptr(9.5), img1))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := worker.Handle(ctx, jobs.jobs[0]); err != nil {
		t.Fatalf("handle upsert: %v", err)
	}
	doc, ok := index.docs[p.ID]
	if !ok || doc.Category == nil || doc.Category.Name != "cat-1" || len(doc.Images) != 1 {
		t.Fatalf("expected reloaded document, got %+v", doc)
	}

	if err := svc.Delete(ctx, idOf(p)); err != nil {
		t.Fatalf("delete: %v", err)
	}
	// A stale upsert for a deleted product removes the document.
	index.docs[p.ID] = doc
	if err := worker.Handle(ctx, IndexJob{Action: IndexUpsert, ProductID: p.ID}); err != nil {
		t.Fatalf("stale upsert: %v", err)
	}
	if _, ok := index.docs[p.ID]; ok {
		t.Fatal("document for deleted product must be removed")
	}

	index.docs[p.ID] = doc
	if err := worker.Handle(ctx, jobs.jobs[len(jobs.jobs)-1]); err != nil {
		t.Fatalf("handle delete: %v", err)
	}
	if _, ok := index.docs[p.ID]; ok {
		t.Fatal("delete job must remove the document")
	}
}

func TestIndexWorkerErrors(t *testing.T) {
	_, store, _ := newProductFixture()
	index := &fakeIndex{docs: map[int64]entity.Product{}}
	worker := NewIndexWorker(fakeProducts{store}, index, nil)
	ctx := context.Background()

	if err := worker.Handle(ctx, IndexJob{Action: "reindex", ProductID: 1}); !errors.Is(err, ErrUnknownIndexAction) {
		t.Fatalf("expected unknown action, got %v", err)
	}

	index.err = errors.New("cluster red")
	if err := worker.Handle(ctx, IndexJob{Action: IndexDelete, ProductID: 1}); err == nil || errors.Is(err, ErrUnknownIndexAction) {
		t.Fatalf("expected a retryable error, got %v", err)
	}

	store.failWith = errors.New("db down")
	if err := worker.Handle(ctx, IndexJob{Action: IndexUpsert, ProductID: 1}); err == nil {
		t.Fatal("expected store failure to surface")
	}
}
