package router

import (
	"github.com/oksasatya/go-catalog-api/internal/application"
	"github.com/oksasatya/go-catalog-api/internal/container"
	"github.com/oksasatya/go-catalog-api/internal/domain/repository"
	"github.com/oksasatya/go-catalog-api/internal/infrastructure/cache"
	pginfra "github.com/oksasatya/go-catalog-api/internal/infrastructure/postgres"
	"github.com/oksasatya/go-catalog-api/internal/infrastructure/search"
	handlers "github.com/oksasatya/go-catalog-api/internal/interface/http"
	"github.com/oksasatya/go-catalog-api/internal/router/modules"
	"github.com/oksasatya/go-catalog-api/pkg/helpers"
)

type catalogDeps struct {
	Users      *application.UserService
	Categories *application.CategoryService
	Products   *application.ProductService
	Images     *application.ImageService
}

func buildCatalogDeps() catalogDeps {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	var categoryRepo repository.CategoryRepository = pginfra.NewCategoryRepository(pool)
	if rdb := container.GetRedis(); rdb != nil && cfg.CategoryCacheTTL > 0 {
		categoryRepo = cache.NewCategoryRepository(categoryRepo, rdb, cfg.CategoryCacheTTL, logger)
	}

	// Optional collaborators stay untyped nil when absent so the services can test for them.
	var jobs application.JobPublisher
	if q := container.GetIndexQueue(); q != nil {
		jobs = q
	}
	var searcher application.ProductSearcher
	if es := container.GetES(); es != nil {
		searcher = search.NewProductIndex(es, cfg.ESProductsIndex, logger)
	}
	var uploader application.ObjectUploader
	if gcs := container.GetGCS(); gcs != nil && cfg.GCSBucket != "" {
		uploader = helpers.NewGCSUploader(gcs, cfg.GCSBucket)
	}

	creds := application.NewCredentials(container.GetJWT(), cfg.BcryptCost)
	return catalogDeps{
		Users:      application.NewUserService(pginfra.NewUserRepository(pool), creds, cfg.JWTTTL, logger),
		Categories: application.NewCategoryService(categoryRepo, logger),
		Products:   application.NewProductService(pginfra.NewProductRepository(pool), jobs, searcher, logger),
		Images:     application.NewImageService(uploader, logger),
	}
}

// InitModules wires every module from the container and adds it to the registry.
// Call once during startup, after the container is populated.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	jwt := container.GetJWT()
	rdb := container.GetRedis()
	deps := buildCatalogDeps()

	r.Add(modules.NewAuthModule(
		handlers.NewAuthHandler(deps.Users, container.GetLogger(), cfg.CookieDomain, cfg.CookieSecure), jwt, rdb))
	r.Add(modules.NewCategoryModule(handlers.NewCategoryHandler(deps.Categories), jwt, rdb))
	r.Add(modules.NewProductModule(handlers.NewProductHandler(deps.Products), jwt, rdb))
	r.Add(modules.NewUploadModule(handlers.NewUploadHandler(deps.Images), jwt, rdb))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(container.GetPGPool(), rdb))
	}
}
