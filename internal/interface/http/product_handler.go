package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-catalog-api/internal/application"
	"github.com/oksasatya/go-catalog-api/internal/domain/entity"
	"github.com/oksasatya/go-catalog-api/pkg/response"
)

type ProductService interface {
	Create(ctx context.Context, in application.ProductInput) (*entity.Product, error)
	Update(ctx context.Context, rawID string, in application.ProductInput) error
	Delete(ctx context.Context, rawID string) error
	FetchLimit(ctx context.Context, rawLimit string) ([]entity.Product, error)
	FetchOne(ctx context.Context, rawID string) (*entity.Product, error)
	FetchSort(ctx context.Context, in application.SortInput) ([]entity.Product, error)
	FetchFilter(ctx context.Context, in application.FilterInput) ([]entity.Product, error)
	Search(ctx context.Context, q string, size int) ([]map[string]any, error)
}

type ProductHandler struct {
	Svc ProductService
}

func NewProductHandler(svc ProductService) *ProductHandler {
	return &ProductHandler{Svc: svc}
}

// sortRequest accepts limit as a JSON number or a numeric string.
type sortRequest struct {
	Sort  string `json:"sort"`
	Order string `json:"order"`
	Limit any    `json:"limit"`
}

type filterRequest struct {
	Title    *string `json:"title"`
	Category []any   `json:"category"`
	Price    []any   `json:"price"`
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req application.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		productPayload(c, err)
		return
	}
	p, err := h.Svc.Create(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, p, "Create product success", nil)
}

func (h *ProductHandler) Update(c *gin.Context) {
	var req application.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		productPayload(c, err)
		return
	}
	if err := h.Svc.Update(c.Request.Context(), c.Param("id"), req); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, nil, "Update product success", nil)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, nil, "Delete product success", nil)
}

func (h *ProductHandler) FetchLimit(c *gin.Context) {
	list, err := h.Svc.FetchLimit(c.Request.Context(), c.Param("limit"))
	h.list(c, list, err)
}

func (h *ProductHandler) FetchOne(c *gin.Context) {
	p, err := h.Svc.FetchOne(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, p, "product", nil)
}

func (h *ProductHandler) FetchSort(c *gin.Context) {
	var req sortRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	list, err := h.Svc.FetchSort(c.Request.Context(), application.SortInput{
		Sort:  req.Sort,
		Order: req.Order,
		Limit: limitText(req.Limit),
	})
	h.list(c, list, err)
}

func (h *ProductHandler) FetchFilter(c *gin.Context) {
	var req filterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	list, err := h.Svc.FetchFilter(c.Request.Context(), application.FilterInput{
		Title:    req.Title,
		Category: req.Category,
		Price:    req.Price,
	})
	h.list(c, list, err)
}

// Search serves GET /product-search?q=&size=.
func (h *ProductHandler) Search(c *gin.Context) {
	size, _ := strconv.Atoi(c.Query("size"))
	hits, err := h.Svc.Search(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		fail(c, err)
		return
	}
	response.List(c, hits, len(hits), "search results")
}

// productPayload words a mistyped product field like its validation rule.
func productPayload(c *gin.Context, err error) {
	if verr := application.ProductPayloadError(err); verr != nil {
		fail(c, verr)
		return
	}
	badPayload(c, err)
}

func (h *ProductHandler) list(c *gin.Context, list []entity.Product, err error) {
	if err != nil {
		fail(c, err)
		return
	}
	response.List(c, list, len(list), "products")
}

// limitText renders a decoded JSON limit back to text for ParseLimit.
// A missing limit becomes "" and fails validation there.
func limitText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}
