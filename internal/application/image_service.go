package application

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-catalog-api/internal/domain/apperror"
)

var errStorageNotConfigured = errors.New("object storage not configured")

// ObjectUploader stores an object and returns its public https URL.
type ObjectUploader interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}

// ImageService uploads product images and hands back the record a product update expects.
type ImageService struct {
	Uploader ObjectUploader
	Prefix   string
	Logger   *logrus.Logger
}

func NewImageService(u ObjectUploader, logger *logrus.Logger) *ImageService {
	return &ImageService{Uploader: u, Prefix: "products", Logger: logger}
}

func (s *ImageService) Upload(ctx context.Context, r io.Reader, filename, contentType string) (ImageInput, error) {
	if !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return ImageInput{}, apperror.Validation("Only image uploads are allowed!")
	}
	if s.Uploader == nil {
		return ImageInput{}, storeFailure(s.Logger, "image upload unavailable", errStorageNotConfigured, nil)
	}

	id := uuid.NewString()
	objectPath := path.Join(s.Prefix, id+strings.ToLower(path.Ext(filename)))
	secure, err := s.Uploader.Upload(ctx, objectPath, contentType, r)
	if err != nil {
		return ImageInput{}, storeFailure(s.Logger, "image upload failed", err, logrus.Fields{"object": objectPath})
	}
	return ImageInput{
		AssetID:   id,
		PublicID:  objectPath,
		URL:       "http://" + strings.TrimPrefix(secure, "https://"),
		SecureURL: secure,
	}, nil
}
