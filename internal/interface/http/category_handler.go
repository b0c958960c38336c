package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-catalog-api/internal/application"
	"github.com/oksasatya/go-catalog-api/internal/domain/entity"
	"github.com/oksasatya/go-catalog-api/pkg/response"
)

type CategoryService interface {
	Create(ctx context.Context, in application.CategoryInput) (*entity.Category, error)
	FetchAll(ctx context.Context) ([]entity.Category, error)
	Delete(ctx context.Context, rawID string) error
}

type CategoryHandler struct {
	Svc CategoryService
}

func NewCategoryHandler(svc CategoryService) *CategoryHandler {
	return &CategoryHandler{Svc: svc}
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req application.CategoryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	cat, err := h.Svc.Create(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, cat, "Create category success", nil)
}

// List answers 404 for an empty catalog.
func (h *CategoryHandler) List(c *gin.Context) {
	list, err := h.Svc.FetchAll(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	if len(list) == 0 {
		response.Error(c, http.StatusNotFound, "No categories found!", nil)
		return
	}
	response.List(c, list, len(list), "categories")
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, nil, fmt.Sprintf("Category with ID %s deleted successfully", id), nil)
}
