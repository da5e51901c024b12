// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
	IsDatabaseEnabled() bool
}

// RedisConfig provides redis connection settings for the result cache.
type RedisConfig interface {
	GetRedisURL() string
	IsRedisEnabled() bool
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
}

// RegionConfig provides the operational bounding region for coordinate
// validation. Coordinates outside this region are rejected, not corrected.
type RegionConfig interface {
	GetRegionMinLat() float64
	GetRegionMaxLat() float64
	GetRegionMinLng() float64
	GetRegionMaxLng() float64
}

// CacheConfig provides per-kind TTLs for the result cache.
type CacheConfig interface {
	GetGeocodeTTL() time.Duration
	GetPOITTL() time.Duration
	GetRouteTTL() time.Duration
	GetAIContentTTL() time.Duration
}

// GatewayConfig provides settings for upstream capability providers.
type GatewayConfig interface {
	GetNominatimURL() string
	GetNominatimUserAgent() string
	GetGoogleMapsAPIKey() string
	GetGeocodeTimeout() time.Duration
	GetPlacesTimeout() time.Duration
	GetDirectionsTimeout() time.Duration
}

// AnalyzerConfig provides settings for the location analyzer.
type AnalyzerConfig interface {
	GetMaxCityDistanceKm() float64
	GetDefaultPOIRadiusMeters() int
}

// EnhancerConfig provides settings for the content enhancer.
type EnhancerConfig interface {
	GetGeminiAPIKey() string
	IsEnhancerEnabled() bool
	GetGenerateTimeout() time.Duration
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env               string
	HTTPAddr          string
	CORSAllowAll      bool
	CORSOrigins       []string
	DatabaseURL       string
	RedisURL          string
	RegionMinLat      float64
	RegionMaxLat      float64
	RegionMinLng      float64
	RegionMaxLng      float64
	GeocodeTTL        time.Duration
	POITTL            time.Duration
	RouteTTL          time.Duration
	AIContentTTL      time.Duration
	NominatimURL      string
	NominatimUA       string
	GoogleMapsAPIKey  string
	GeocodeTimeout    time.Duration
	PlacesTimeout     time.Duration
	DirectionsTimeout time.Duration
	GeminiAPIKey      string
	EnhancerEnabled   bool
	GenerateTimeout   time.Duration
	MaxCityDistanceKm float64
	DefaultPOIRadiusM int
}

// =============================================================================
// Interface Implementations
// =============================================================================

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string  { return c.DatabaseURL }
func (c *Config) IsDatabaseEnabled() bool { return c.DatabaseURL != "" }

// RedisConfig implementation
func (c *Config) GetRedisURL() string  { return c.RedisURL }
func (c *Config) IsRedisEnabled() bool { return c.RedisURL != "" }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }

// RegionConfig implementation
func (c *Config) GetRegionMinLat() float64 { return c.RegionMinLat }
func (c *Config) GetRegionMaxLat() float64 { return c.RegionMaxLat }
func (c *Config) GetRegionMinLng() float64 { return c.RegionMinLng }
func (c *Config) GetRegionMaxLng() float64 { return c.RegionMaxLng }

// CacheConfig implementation
func (c *Config) GetGeocodeTTL() time.Duration   { return c.GeocodeTTL }
func (c *Config) GetPOITTL() time.Duration       { return c.POITTL }
func (c *Config) GetRouteTTL() time.Duration     { return c.RouteTTL }
func (c *Config) GetAIContentTTL() time.Duration { return c.AIContentTTL }

// GatewayConfig implementation
func (c *Config) GetNominatimURL() string             { return c.NominatimURL }
func (c *Config) GetNominatimUserAgent() string       { return c.NominatimUA }
func (c *Config) GetGoogleMapsAPIKey() string         { return c.GoogleMapsAPIKey }
func (c *Config) GetGeocodeTimeout() time.Duration    { return c.GeocodeTimeout }
func (c *Config) GetPlacesTimeout() time.Duration     { return c.PlacesTimeout }
func (c *Config) GetDirectionsTimeout() time.Duration { return c.DirectionsTimeout }

// AnalyzerConfig implementation
func (c *Config) GetMaxCityDistanceKm() float64  { return c.MaxCityDistanceKm }
func (c *Config) GetDefaultPOIRadiusMeters() int { return c.DefaultPOIRadiusM }

// EnhancerConfig implementation
func (c *Config) GetGeminiAPIKey() string           { return c.GeminiAPIKey }
func (c *Config) IsEnhancerEnabled() bool           { return c.EnhancerEnabled && c.GeminiAPIKey != "" }
func (c *Config) GetGenerateTimeout() time.Duration { return c.GenerateTimeout }

// Load reads configuration from environment variables.
//
// The default operational region covers Sri Lanka; the city reference
// dataset shipped in migrations matches it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	enhancerEnabled := strings.EqualFold(getEnv("AI_ENHANCER_ENABLED", "true"), "true")

	cfg := &Config{
		Env:               getEnv("APP_ENV", "development"),
		HTTPAddr:          getEnv("HTTP_ADDR", ":8080"),
		CORSAllowAll:      strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true"),
		CORSOrigins:       splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200")),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		RedisURL:          getEnv("REDIS_URL", ""),
		RegionMinLat:      mustFloat(getEnv("REGION_MIN_LAT", "5.5")),
		RegionMaxLat:      mustFloat(getEnv("REGION_MAX_LAT", "10.0")),
		RegionMinLng:      mustFloat(getEnv("REGION_MIN_LNG", "79.0")),
		RegionMaxLng:      mustFloat(getEnv("REGION_MAX_LNG", "82.0")),
		GeocodeTTL:        mustDuration(getEnv("CACHE_TTL_GEOCODE", "24h")),
		POITTL:            mustDuration(getEnv("CACHE_TTL_POI", "6h")),
		RouteTTL:          mustDuration(getEnv("CACHE_TTL_ROUTE", "24h")),
		AIContentTTL:      mustDuration(getEnv("CACHE_TTL_AI_CONTENT", "72h")),
		NominatimURL:      getEnv("NOMINATIM_URL", "https://nominatim.openstreetmap.org"),
		NominatimUA:       getEnv("NOMINATIM_USER_AGENT", "GeoInsight/1.0"),
		GoogleMapsAPIKey:  getEnv("GOOGLE_MAPS_API_KEY", ""),
		GeocodeTimeout:    mustDuration(getEnv("GEOCODE_TIMEOUT", "5s")),
		PlacesTimeout:     mustDuration(getEnv("PLACES_TIMEOUT", "8s")),
		DirectionsTimeout: mustDuration(getEnv("DIRECTIONS_TIMEOUT", "8s")),
		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		EnhancerEnabled:   enhancerEnabled,
		GenerateTimeout:   mustDuration(getEnv("GENERATE_TIMEOUT", "30s")),
		MaxCityDistanceKm: mustFloat(getEnv("MAX_CITY_DISTANCE_KM", "500")),
		DefaultPOIRadiusM: int(mustInt64(getEnv("DEFAULT_POI_RADIUS_M", "1500"))),
	}

	if cfg.RegionMinLat >= cfg.RegionMaxLat || cfg.RegionMinLng >= cfg.RegionMaxLng {
		return nil, fmt.Errorf("invalid operational region bounds")
	}
	if cfg.GeocodeTTL <= 0 || cfg.POITTL <= 0 || cfg.RouteTTL <= 0 || cfg.AIContentTTL <= 0 {
		return nil, fmt.Errorf("cache TTLs must be positive durations")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt64(value string) int64 {
	result, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0
	}
	return result
}

func mustFloat(value string) float64 {
	result, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}
