package gateway

import (
	"context"
	"time"

	"geoinsight_backend/platform/geomath"
)

// AdministrativeLocation is the reverse-geocoding result for a coordinate.
type AdministrativeLocation struct {
	City        string `json:"city,omitempty"`
	District    string `json:"district,omitempty"`
	Province    string `json:"province,omitempty"`
	Country     string `json:"country,omitempty"`
	PostalCode  string `json:"postal_code,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
}

// POI is a point of interest returned by the places provider. DistanceKm
// is filled per request by the analyzer relative to the query origin; it
// is never part of the cached provider payload.
type POI struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Category    string             `json:"category"`
	Coordinates geomath.Coordinate `json:"coordinates"`
	Address     string             `json:"address,omitempty"`
	Rating      *float64           `json:"rating,omitempty"`
	DistanceKm  float64            `json:"distance_km"`
}

// RouteNarrative summarizes a route between two coordinates.
type RouteNarrative struct {
	Summary        string        `json:"summary"`
	DistanceMeters int           `json:"distance_meters"`
	Duration       time.Duration `json:"duration"`
	Mode           string        `json:"mode"`
}

// Completion is the generative-text provider result.
type Completion struct {
	Text       string `json:"text"`
	TokensUsed int    `json:"tokens_used"`
}

// Geocoder resolves a coordinate to its administrative location.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, c geomath.Coordinate) (*AdministrativeLocation, error)
}

// PlacesProvider searches points of interest around a coordinate.
type PlacesProvider interface {
	SearchNearby(ctx context.Context, c geomath.Coordinate, radiusMeters int, category string) ([]POI, error)
}

// DirectionsProvider computes a route narrative between two coordinates.
type DirectionsProvider interface {
	GetRoute(ctx context.Context, origin, destination geomath.Coordinate, mode string) (*RouteNarrative, error)
}

// TextProvider generates prose from a prompt under a token budget.
type TextProvider interface {
	Complete(ctx context.Context, model, prompt string, maxTokens int) (*Completion, error)
}
