package analysis

import (
	"geoinsight_backend/internal/analysis/handler"
	"geoinsight_backend/internal/analysis/service"
	"geoinsight_backend/internal/cache"
	"geoinsight_backend/internal/cities"
	"geoinsight_backend/internal/gateway"
	apphttp "geoinsight_backend/internal/http"
	"geoinsight_backend/platform/config"
	"geoinsight_backend/platform/geomath"
	"geoinsight_backend/platform/logger"
	"geoinsight_backend/platform/validator"
)

type Module struct {
	handler *handler.Handler
	svc     *service.Service
}

// Deps carries everything the analysis module needs from the
// composition root.
type Deps struct {
	Geocoder   gateway.Geocoder
	Places     gateway.PlacesProvider
	Directions gateway.DirectionsProvider
	Cache      *cache.ResultCache
	Resolver   *cities.Resolver
	Region     geomath.Region
	Analyzer   config.AnalyzerConfig
	Gateway    config.GatewayConfig
	Logger     *logger.Logger
	Validator  *validator.Validator
}

func NewModule(d Deps) *Module {
	svc := service.New(d.Geocoder, d.Places, d.Directions, d.Cache, d.Resolver, d.Region, d.Analyzer, d.Gateway, d.Logger)
	h := handler.New(svc, d.Validator)

	return &Module{handler: h, svc: svc}
}

func (m *Module) Name() string {
	return "analysis"
}

// Service exposes the analyzer for other modules.
func (m *Module) Service() *service.Service {
	return m.svc
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/analysis")
	m.handler.RegisterRoutes(group)
}

var _ apphttp.Module = (*Module)(nil)
