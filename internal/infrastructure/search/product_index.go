package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-catalog-api/internal/domain/entity"
)

const (
	defaultSearchSize = 10
	maxSearchSize     = 50
	requestTimeout    = 3 * time.Second
)

const productMapping = `{
  "mappings": {
    "properties": {
      "id":          {"type": "long"},
      "categoryId":  {"type": "long"},
      "category":    {"type": "keyword"},
      "title":       {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "description": {"type": "text"},
      "price":       {"type": "double"},
      "quantity":    {"type": "long"},
      "image":       {"type": "keyword", "index": false},
      "createdAt":   {"type": "date"},
      "updatedAt":   {"type": "date"}
    }
  }
}`

// ProductIndex keeps a denormalized copy of products for full-text search.
type ProductIndex struct {
	ES     *elasticsearch.Client
	Index  string
	Logger *logrus.Logger
}

func NewProductIndex(es *elasticsearch.Client, index string, logger *logrus.Logger) *ProductIndex {
	return &ProductIndex{ES: es, Index: index, Logger: logger}
}

// EnsureIndex creates the index with its mapping unless it already exists.
func (x *ProductIndex) EnsureIndex(ctx context.Context) error {
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := esapi.IndicesExistsRequest{Index: []string{x.Index}}.Do(c, x.ES)
	if err != nil {
		return err
	}
	_ = res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}

	res, err = esapi.IndicesCreateRequest{Index: x.Index, Body: bytes.NewReader([]byte(productMapping))}.Do(c, x.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != http.StatusBadRequest {
		return fmt.Errorf("create index %s: %s", x.Index, res.Status())
	}
	return nil
}

// Upsert writes the product document under its id.
func (x *ProductIndex) Upsert(ctx context.Context, p *entity.Product) error {
	b, err := json.Marshal(productDocument(p))
	if err != nil {
		return err
	}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req := esapi.IndexRequest{
		Index:      x.Index,
		DocumentID: strconv.FormatInt(p.ID, 10),
		Body:       bytes.NewReader(b),
		Refresh:    "false",
	}
	res, err := req.Do(c, x.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("index product %d: %s", p.ID, res.Status())
	}
	return nil
}

// Delete removes the document. A missing document is not an error.
func (x *ProductIndex) Delete(ctx context.Context, id int64) error {
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := esapi.DeleteRequest{Index: x.Index, DocumentID: strconv.FormatInt(id, 10)}.Do(c, x.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("delete product %d: %s", id, res.Status())
	}
	return nil
}

// Search runs a multi_match over title and description and returns the stored documents.
func (x *ProductIndex) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if size <= 0 || size > maxSearchSize {
		size = defaultSearchSize
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "description", "category"},
			},
		},
		"size": size,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := x.ES.Search(
		x.ES.Search.WithContext(c),
		x.ES.Search.WithIndex(x.Index),
		x.ES.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		if res.StatusCode == http.StatusNotFound {
			return []map[string]any{}, nil
		}
		return nil, fmt.Errorf("search %s: %s", x.Index, res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

func productDocument(p *entity.Product) map[string]any {
	doc := map[string]any{
		"id":         p.ID,
		"categoryId": p.CategoryID,
		"title":      p.Title,
		"price":      p.Price,
		"quantity":   p.Quantity,
		"createdAt":  p.CreatedAt.Format(time.RFC3339Nano),
		"updatedAt":  p.UpdatedAt.Format(time.RFC3339Nano),
	}
	if p.Description != nil {
		doc["description"] = *p.Description
	}
	if p.Category != nil {
		doc["category"] = p.Category.Name
	}
	if len(p.Images) > 0 {
		doc["image"] = p.Images[0].SecureURL
	}
	return doc
}
