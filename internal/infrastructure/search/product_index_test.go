package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/oksasatya/go-catalog-api/internal/domain/entity"
)

func newTestIndex(t *testing.T, h http.HandlerFunc) *ProductIndex {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		h(w, r)
	}))
	t.Cleanup(srv.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	return NewProductIndex(es, "products", nil)
}

func TestProductDocument(t *testing.T) {
	desc := "cotton"
	p := &entity.Product{
		ID:          7,
		CategoryID:  2,
		Title:       "Shirt",
		Description: &desc,
		Price:       12.5,
		Quantity:    3,
		CreatedAt:   time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Category:    &entity.Category{ID: 2, Name: "Clothes"},
		Images:      []entity.Image{{SecureURL: "https://cdn/1.png"}},
	}
	doc := productDocument(p)
	if doc["title"] != "Shirt" || doc["description"] != "cotton" || doc["category"] != "Clothes" {
		t.Fatalf("unexpected document %v", doc)
	}
	if doc["image"] != "https://cdn/1.png" || doc["createdAt"] != "2024-05-01T00:00:00Z" {
		t.Fatalf("unexpected document %v", doc)
	}

	bare := productDocument(&entity.Product{ID: 8, Title: "Hat"})
	for _, k := range []string{"description", "category", "image"} {
		if _, ok := bare[k]; ok {
			t.Fatalf("expected %s to be omitted, got %v", k, bare)
		}
	}
}

func TestSearchReturnsSources(t *testing.T) {
	var gotBody map[string]any
	x := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/products/_search") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &gotBody)
		_, _ = io.WriteString(w, `{"hits":{"hits":[{"_id":"1","_source":{"id":1,"title":"Blue Shirt"}}]}}`)
	})

	hits, err := x.Search(context.Background(), "shirt", 500)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(hits) != 1 || hits[0]["title"] != "Blue Shirt" {
		t.Fatalf("unexpected hits %v", hits)
	}
	if gotBody["size"] != float64(defaultSearchSize) {
		t.Fatalf("expected size clamped to %d, got %v", defaultSearchSize, gotBody["size"])
	}
}

func TestSearchMissingIndexIsEmpty(t *testing.T) {
	x := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":{"type":"index_not_found_exception"},"status":404}`)
	})
	hits, err := x.Search(context.Background(), "shirt", 5)
	if err != nil || len(hits) != 0 {
		t.Fatalf("expected empty hits, got %v %v", hits, err)
	}
}

func TestUpsertAndDelete(t *testing.T) {
	var calls []string
	x := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNotFound)
		}
		_, _ = io.WriteString(w, `{}`)
	})

	if err := x.Upsert(context.Background(), &entity.Product{ID: 3, Title: "Hat"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := x.Delete(context.Background(), 3); err != nil {
		t.Fatalf("delete of a missing document should succeed: %v", err)
	}
	if len(calls) != 2 || calls[0] != "PUT /products/_doc/3" || calls[1] != "DELETE /products/_doc/3" {
		t.Fatalf("unexpected calls %v", calls)
	}
}
