package router

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-catalog-api/pkg/helpers"
)

// Module describes a feature module that can register its routes on a RouterGroup
type Module interface {
	Register(rg *gin.RouterGroup)
}

type Registry struct {
	Engine      *gin.Engine
	API         *gin.RouterGroup
	Logger      *logrus.Logger
	middlewares []gin.HandlerFunc
	modules     []Module
}

// NewRegistry mounts every module under /api.
func NewRegistry(engine *gin.Engine, logger *logrus.Logger) *Registry {
	return &Registry{Engine: engine, API: engine.Group("/api"), Logger: logger}
}

// Use adds middleware that runs for every /api route.
func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.middlewares = append(r.middlewares, mw...)
}

func (r *Registry) Add(mod Module) {
	if mod == nil {
		return
	}
	r.modules = append(r.modules, mod)
}

func (r *Registry) RegisterAll() {
	if len(r.middlewares) > 0 {
		r.API.Use(r.middlewares...)
	}
	for _, m := range r.modules {
		m.Register(r.API)
		helpers.LogInfo(r.Logger, "module registered", logrus.Fields{"module": fmt.Sprintf("%T", m)})
	}
}
