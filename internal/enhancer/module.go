package enhancer

import (
	"geoinsight_backend/internal/cache"
	"geoinsight_backend/internal/enhancer/handler"
	"geoinsight_backend/internal/enhancer/service"
	"geoinsight_backend/internal/gateway"
	apphttp "geoinsight_backend/internal/http"
	"geoinsight_backend/platform/config"
	"geoinsight_backend/platform/logger"
	"geoinsight_backend/platform/validator"
)

type Module struct {
	handler *handler.Handler
	svc     *service.Service
}

func NewModule(provider gateway.TextProvider, resultCache *cache.ResultCache, cfg config.EnhancerConfig, log *logger.Logger, val *validator.Validator) *Module {
	svc := service.New(provider, resultCache, cfg, log)
	h := handler.New(svc, val)

	return &Module{handler: h, svc: svc}
}

func (m *Module) Name() string {
	return "enhancer"
}

// Service exposes the enhancer for other modules.
func (m *Module) Service() *service.Service {
	return m.svc
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/content")
	m.handler.RegisterRoutes(group)
}

var _ apphttp.Module = (*Module)(nil)
