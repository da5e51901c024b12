package http

import (
	"context"

	"geoinsight_backend/platform/config"
	"geoinsight_backend/platform/logger"
)

// HealthChecker exposes minimal functionality for readiness checks.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// App holds the fully initialized application dependencies.
// This is populated by main.go (the composition root) and passed to the router.
type App struct {
	// Config holds the HTTP server settings.
	Config config.HTTPConfig
	// Logger is the structured logger.
	Logger *logger.Logger
	// Health maps dependency names to their readiness checks. Optional
	// dependencies that were not configured are simply absent.
	Health map[string]HealthChecker
	// Modules contains all HTTP-facing domain modules.
	Modules []Module
}
