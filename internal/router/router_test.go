package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-catalog-api/config"
	"github.com/oksasatya/go-catalog-api/internal/container"
	"github.com/oksasatya/go-catalog-api/pkg/helpers"
)

func TestInitModulesRegistersCatalogRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := config.Load()
	cfg.DebugMetricsEnabled = true
	container.SetConfig(cfg)
	container.SetJWT(helpers.NewJWTManager("secret", time.Hour))

	engine := gin.New()
	reg := NewRegistry(engine, nil)
	InitModules(reg)
	reg.RegisterAll()

	want := map[string]bool{
		"POST /api/register":            false,
		"POST /api/login":               false,
		"POST /api/current-user":        false,
		"POST /api/current-admin":       false,
		"POST /api/category":            false,
		"GET /api/category":             false,
		"DELETE /api/category/:id":      false,
		"POST /api/product":             false,
		"PUT /api/product/:id":          false,
		"DELETE /api/product/:id":       false,
		"GET /api/product-limit/:limit": false,
		"GET /api/product-one/:id":      false,
		"POST /api/product-sort":        false,
		"POST /api/product-filter":      false,
		"GET /api/product-search":       false,
		"POST /api/images":              false,
		"GET /api/debug/vars":           false,
	}
	for _, rt := range engine.Routes() {
		key := rt.Method + " " + rt.Path
		if _, ok := want[key]; ok {
			want[key] = true
		}
	}
	for route, found := range want {
		if !found {
			t.Errorf("route %s not registered", route)
		}
	}

	// Writes are guarded before any store access.
	for _, path := range []string{"/api/category", "/api/product", "/api/images"} {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, path, nil))
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected 401 without a token, got %d", path, w.Code)
		}
	}
}
