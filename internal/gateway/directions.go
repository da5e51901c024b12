package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"geoinsight_backend/platform/geomath"
	"geoinsight_backend/platform/logger"
)

const directionsProvider = "google_directions"

// GoogleDirectionsProvider computes route narratives through the Google
// Directions API.
type GoogleDirectionsProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
	log     *logger.Logger
}

// NewGoogleDirectionsProvider creates the directions client. baseURL is
// overridable for tests; pass "" for the production endpoint.
func NewGoogleDirectionsProvider(apiKey, baseURL string, log *logger.Logger) *GoogleDirectionsProvider {
	if baseURL == "" {
		baseURL = "https://maps.googleapis.com/maps/api/directions/json"
	}
	return &GoogleDirectionsProvider{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		log:     log,
	}
}

// GetRoute returns a narrative summary of the route between two coordinates.
func (g *GoogleDirectionsProvider) GetRoute(ctx context.Context, origin, destination geomath.Coordinate, mode string) (*RouteNarrative, error) {
	const op = "get_route"

	if mode == "" {
		mode = "driving"
	}

	params := url.Values{}
	params.Set("origin", fmt.Sprintf("%f,%f", origin.Lat, origin.Lng))
	params.Set("destination", fmt.Sprintf("%f,%f", destination.Lat, destination.Lng))
	params.Set("mode", mode)
	params.Set("key", g.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s?%s", g.baseURL, params.Encode()), nil)
	if err != nil {
		return nil, newError(KindUnavailable, directionsProvider, op, err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		g.log.GatewayFailure(directionsProvider, op, err)
		return nil, wrapTransport(directionsProvider, op, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("status %d", resp.StatusCode)
		g.log.GatewayFailure(directionsProvider, op, err)
		return nil, newError(classifyStatus(resp.StatusCode), directionsProvider, op, err)
	}

	var raw googleRouteResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		g.log.GatewayFailure(directionsProvider, op, err)
		return nil, newError(KindInvalidResponse, directionsProvider, op, err)
	}

	switch raw.Status {
	case "OK":
	case "OVER_QUERY_LIMIT":
		return nil, newError(KindRateLimited, directionsProvider, op, fmt.Errorf("directions status %s", raw.Status))
	default:
		return nil, newError(KindInvalidResponse, directionsProvider, op, fmt.Errorf("directions status %s: %s", raw.Status, raw.ErrorMessage))
	}
	if len(raw.Routes) == 0 {
		return nil, newError(KindInvalidResponse, directionsProvider, op, fmt.Errorf("no routes returned"))
	}

	first := raw.Routes[0]
	var distanceMeters, durationSec int
	towns := make([]string, 0, len(first.Legs))
	for _, leg := range first.Legs {
		distanceMeters += leg.Distance.Value
		durationSec += leg.Duration.Value
		if leg.EndAddress != "" {
			towns = append(towns, leg.EndAddress)
		}
	}

	summary := first.Summary
	if summary == "" && len(towns) > 0 {
		summary = "via " + strings.Join(towns, ", ")
	}

	return &RouteNarrative{
		Summary:        summary,
		DistanceMeters: distanceMeters,
		Duration:       time.Duration(durationSec) * time.Second,
		Mode:           mode,
	}, nil
}

// --- Google Directions API response structures ---

type googleRouteResponse struct {
	Routes       []googleRoute `json:"routes"`
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message,omitempty"`
}

type googleRoute struct {
	Summary string      `json:"summary"`
	Legs    []googleLeg `json:"legs"`
}

type googleLeg struct {
	Distance   googleValue `json:"distance"`
	Duration   googleValue `json:"duration"`
	EndAddress string      `json:"end_address"`
}

type googleValue struct {
	Value int `json:"value"`
}
