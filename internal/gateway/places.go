package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"geoinsight_backend/platform/geomath"
	"geoinsight_backend/platform/logger"
)

const placesProvider = "google_places"

// GooglePlacesProvider searches nearby points of interest through the
// Google Places Nearby Search API.
type GooglePlacesProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
	log     *logger.Logger
}

// NewGooglePlacesProvider creates the places search client. baseURL is
// overridable for tests; pass "" for the production endpoint.
func NewGooglePlacesProvider(apiKey, baseURL string, log *logger.Logger) *GooglePlacesProvider {
	if baseURL == "" {
		baseURL = "https://maps.googleapis.com/maps/api/place/nearbysearch/json"
	}
	return &GooglePlacesProvider{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		log:     log,
	}
}

// SearchNearby returns POIs of the given category around a coordinate.
// The returned POIs carry no origin-relative distance; the analyzer
// computes DistanceKm per request.
func (p *GooglePlacesProvider) SearchNearby(ctx context.Context, c geomath.Coordinate, radiusMeters int, category string) ([]POI, error) {
	const op = "search_nearby"

	params := url.Values{}
	params.Set("location", fmt.Sprintf("%f,%f", c.Lat, c.Lng))
	params.Set("radius", fmt.Sprintf("%d", radiusMeters))
	params.Set("type", category)
	params.Set("key", p.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s?%s", p.baseURL, params.Encode()), nil)
	if err != nil {
		return nil, newError(KindUnavailable, placesProvider, op, err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		p.log.GatewayFailure(placesProvider, op, err)
		return nil, wrapTransport(placesProvider, op, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("status %d", resp.StatusCode)
		p.log.GatewayFailure(placesProvider, op, err)
		return nil, newError(classifyStatus(resp.StatusCode), placesProvider, op, err)
	}

	var raw googlePlacesResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		p.log.GatewayFailure(placesProvider, op, err)
		return nil, newError(KindInvalidResponse, placesProvider, op, err)
	}

	switch raw.Status {
	case "OK", "ZERO_RESULTS":
	case "OVER_QUERY_LIMIT":
		return nil, newError(KindRateLimited, placesProvider, op, fmt.Errorf("places status %s", raw.Status))
	default:
		return nil, newError(KindInvalidResponse, placesProvider, op, fmt.Errorf("places status %s: %s", raw.Status, raw.ErrorMessage))
	}

	pois := make([]POI, 0, len(raw.Results))
	for _, r := range raw.Results {
		poi := POI{
			ID:       r.PlaceID,
			Name:     r.Name,
			Category: category,
			Coordinates: geomath.Coordinate{
				Lat: r.Geometry.Location.Lat,
				Lng: r.Geometry.Location.Lng,
			},
			Address: r.Vicinity,
		}
		if r.Rating != 0 {
			rating := r.Rating
			poi.Rating = &rating
		}
		pois = append(pois, poi)
	}

	return pois, nil
}

// --- Google Places API response structures ---

type googlePlacesResponse struct {
	Results      []googlePlaceResult `json:"results"`
	Status       string              `json:"status"`
	ErrorMessage string              `json:"error_message,omitempty"`
}

type googlePlaceResult struct {
	PlaceID  string              `json:"place_id"`
	Name     string              `json:"name"`
	Vicinity string              `json:"vicinity"`
	Rating   float64             `json:"rating"`
	Geometry googlePlaceGeometry `json:"geometry"`
}

type googlePlaceGeometry struct {
	Location googleLatLng `json:"location"`
}

type googleLatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
