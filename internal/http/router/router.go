// Package router assembles the Gin engine from the application modules.
package router

import (
	"context"
	"net/http"
	"time"

	apphttp "geoinsight_backend/internal/http"
	"geoinsight_backend/platform/httpkit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const healthPingTimeout = 2 * time.Second

// New builds the engine, wires the shared middleware chain, mounts the
// health endpoint, and registers every module under /api/v1.
func New(app *apphttp.App) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(httpkit.RequestID())
	engine.Use(httpkit.RequestLogger(app.Logger))
	engine.Use(httpkit.SecurityHeaders())
	engine.Use(corsMiddleware(app))

	limiter := httpkit.NewIPRateLimiter(10, 30, app.Logger)
	engine.Use(limiter.RateLimit())

	engine.GET("/api/health", healthHandler(app))

	ctx := &apphttp.RouterContext{
		Engine: engine,
		V1:     engine.Group("/api/v1"),
	}
	for _, m := range app.Modules {
		m.RegisterRoutes(ctx)
		app.Logger.Info("registered module routes", "module", m.Name())
	}

	return engine
}

func corsMiddleware(app *apphttp.App) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if app.Config.GetCORSAllowAll() {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = app.Config.GetCORSOrigins()
	}
	return cors.New(cfg)
}

// healthHandler pings each configured dependency under a short timeout.
// A degraded dependency reports 503 but the process stays up.
func healthHandler(app *apphttp.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := http.StatusOK
		deps := make(map[string]string, len(app.Health))
		for name, checker := range app.Health {
			ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
			if err := checker.Ping(ctx); err != nil {
				deps[name] = "unavailable"
				status = http.StatusServiceUnavailable
			} else {
				deps[name] = "ok"
			}
			cancel()
		}

		body := gin.H{"status": "ok"}
		if status != http.StatusOK {
			body["status"] = "degraded"
		}
		if len(deps) > 0 {
			body["dependencies"] = deps
		}
		c.JSON(status, body)
	}
}
