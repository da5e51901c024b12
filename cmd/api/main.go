package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"geoinsight_backend/internal/analysis"
	"geoinsight_backend/internal/cache"
	"geoinsight_backend/internal/cities"
	"geoinsight_backend/internal/enhancer"
	"geoinsight_backend/internal/gateway"
	apphttp "geoinsight_backend/internal/http"
	"geoinsight_backend/internal/http/router"
	"geoinsight_backend/migrations"
	"geoinsight_backend/platform/ai/gemini"
	"geoinsight_backend/platform/config"
	"geoinsight_backend/platform/db"
	"geoinsight_backend/platform/geomath"
	"geoinsight_backend/platform/logger"
	"geoinsight_backend/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	health := make(map[string]apphttp.HealthChecker)

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	// City catalog: Postgres when configured, embedded seed otherwise.
	catalog := cities.Seed()
	if cfg.IsDatabaseEnabled() {
		if err := db.RunMigrations(ctx, cfg, migrations.FS); err != nil {
			log.Error("failed to run database migrations", "error", err)
			panic("failed to run database migrations: " + err.Error())
		}
		log.Info("database migrations complete")

		pool, err := db.NewPool(ctx, cfg)
		if err != nil {
			log.Error("failed to connect to database", "error", err)
			panic("failed to connect to database: " + err.Error())
		}
		defer pool.Close()
		health["database"] = pool

		loaded, err := cities.NewRepo(pool).LoadAll(ctx)
		if err != nil {
			log.DatabaseError("load city catalog", err)
			log.Warn("falling back to embedded city catalog")
		} else if len(loaded) > 0 {
			catalog = loaded
		}
		log.Info("city catalog loaded", "cities", len(catalog))
	} else {
		log.Warn("DATABASE_URL not configured; using embedded city catalog")
	}

	// Result cache: redis when configured, in-memory otherwise.
	var store cache.Store
	if cfg.IsRedisEnabled() {
		redisStore, err := cache.NewRedisStore(ctx, cfg.GetRedisURL())
		if err != nil {
			log.Error("failed to connect to redis", "error", err)
			panic("failed to connect to redis: " + err.Error())
		}
		defer redisStore.Close()
		health["redis"] = redisStore
		store = redisStore
		log.Info("redis connection established")
	} else {
		memStore := cache.NewMemoryStore()
		defer memStore.Close()
		store = memStore
		log.Warn("REDIS_URL not configured; using in-memory result cache")
	}
	resultCache := cache.New(store, cfg, log)

	// Upstream providers.
	geocoder := gateway.NewNominatimGeocoder(cfg.GetNominatimURL(), cfg.GetNominatimUserAgent(), log)
	places := gateway.NewGooglePlacesProvider(cfg.GetGoogleMapsAPIKey(), "", log)
	directions := gateway.NewGoogleDirectionsProvider(cfg.GetGoogleMapsAPIKey(), "", log)

	var textProvider gateway.TextProvider
	if cfg.IsEnhancerEnabled() {
		client, err := gemini.NewClient(ctx, cfg.GetGeminiAPIKey())
		if err != nil {
			log.Error("failed to initialize gemini client", "error", err)
			panic("failed to initialize gemini client: " + err.Error())
		}
		textProvider = gateway.NewGeminiTextProvider(client, log)
	} else {
		log.Warn("content enhancer disabled; generation requests will return placeholders")
	}

	region := geomath.Region{
		MinLat: cfg.GetRegionMinLat(),
		MaxLat: cfg.GetRegionMaxLat(),
		MinLng: cfg.GetRegionMinLng(),
		MaxLng: cfg.GetRegionMaxLng(),
	}
	resolver := cities.NewResolver(catalog, cfg.GetMaxCityDistanceKm())

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules
	// ========================================================================

	analysisModule := analysis.NewModule(analysis.Deps{
		Geocoder:   geocoder,
		Places:     places,
		Directions: directions,
		Cache:      resultCache,
		Resolver:   resolver,
		Region:     region,
		Analyzer:   cfg,
		Gateway:    cfg,
		Logger:     log,
		Validator:  val,
	})
	enhancerModule := enhancer.NewModule(textProvider, resultCache, cfg, log, val)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config: cfg,
		Logger: log,
		Health: health,
		Modules: []apphttp.Module{
			analysisModule,
			enhancerModule,
		},
	}

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router.New(app),
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "error", err)
		}
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}
