package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-catalog-api/internal/application"
	"github.com/oksasatya/go-catalog-api/pkg/response"
)

// MaxImageBytes caps a single uploaded image.
const MaxImageBytes = 5 << 20

type ImageUploader interface {
	Upload(ctx context.Context, r io.Reader, filename, contentType string) (application.ImageInput, error)
}

type UploadHandler struct {
	Svc ImageUploader
}

func NewUploadHandler(svc ImageUploader) *UploadHandler {
	return &UploadHandler{Svc: svc}
}

// Upload stores the multipart "file" field and returns the image record to attach to a product.
func (h *UploadHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxImageBytes+1<<20)
	fh, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "file is required", gin.H{"file": err.Error()})
		return
	}
	if fh.Size > MaxImageBytes {
		response.Error(c, http.StatusRequestEntityTooLarge, "file too large", gin.H{"max_bytes": MaxImageBytes})
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "file is unreadable", nil)
		return
	}
	defer func() { _ = f.Close() }()

	img, err := h.Svc.Upload(c.Request.Context(), f, fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, img, "image uploaded", nil)
}
