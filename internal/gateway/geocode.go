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

	"golang.org/x/time/rate"
)

const geocodeProvider = "nominatim"

// NominatimGeocoder resolves coordinates against the OSM Nominatim API.
// Calls are rate limited to one per second per the Nominatim usage policy.
type NominatimGeocoder struct {
	baseURL   string
	userAgent string
	client    *http.Client
	limiter   *rate.Limiter
	log       *logger.Logger
}

// NewNominatimGeocoder creates the reverse geocoding client.
func NewNominatimGeocoder(baseURL, userAgent string, log *logger.Logger) *NominatimGeocoder {
	return &NominatimGeocoder{
		baseURL:   baseURL,
		userAgent: userAgent,
		client:    &http.Client{Timeout: 10 * time.Second},
		limiter:   rate.NewLimiter(rate.Limit(1), 1),
		log:       log,
	}
}

// ReverseGeocode resolves a coordinate to its administrative location.
func (g *NominatimGeocoder) ReverseGeocode(ctx context.Context, c geomath.Coordinate) (*AdministrativeLocation, error) {
	const op = "reverse_geocode"

	if err := g.limiter.Wait(ctx); err != nil {
		return nil, wrapTransport(geocodeProvider, op, err)
	}

	params := url.Values{}
	params.Set("lat", fmt.Sprintf("%f", c.Lat))
	params.Set("lon", fmt.Sprintf("%f", c.Lng))
	params.Set("format", "json")
	params.Set("addressdetails", "1")
	params.Set("zoom", "14")

	reqURL := fmt.Sprintf("%s/reverse?%s", g.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, newError(KindUnavailable, geocodeProvider, op, err)
	}
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		g.log.GatewayFailure(geocodeProvider, op, err)
		return nil, wrapTransport(geocodeProvider, op, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("status %d", resp.StatusCode)
		g.log.GatewayFailure(geocodeProvider, op, err)
		return nil, newError(classifyStatus(resp.StatusCode), geocodeProvider, op, err)
	}

	var raw nominatimReverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		g.log.GatewayFailure(geocodeProvider, op, err)
		return nil, newError(KindInvalidResponse, geocodeProvider, op, err)
	}
	if raw.Error != "" {
		return nil, newError(KindInvalidResponse, geocodeProvider, op, fmt.Errorf("nominatim: %s", raw.Error))
	}

	return &AdministrativeLocation{
		City:        pickCity(raw.Address),
		District:    raw.Address.StateDistrict,
		Province:    raw.Address.State,
		Country:     raw.Address.Country,
		PostalCode:  raw.Address.Postcode,
		DisplayName: raw.DisplayName,
	}, nil
}

func pickCity(address nominatimAddress) string {
	if address.City != "" {
		return address.City
	}
	if address.Town != "" {
		return address.Town
	}
	if address.Village != "" {
		return address.Village
	}
	if address.Municipality != "" {
		return address.Municipality
	}
	return address.Hamlet
}

type nominatimAddress struct {
	City          string `json:"city"`
	Town          string `json:"town"`
	Village       string `json:"village"`
	Municipality  string `json:"municipality"`
	Hamlet        string `json:"hamlet"`
	StateDistrict string `json:"state_district"`
	State         string `json:"state"`
	Postcode      string `json:"postcode"`
	Country       string `json:"country"`
}

// nominatimReverseResponse mirrors the relevant parts of the OSM reverse payload.
type nominatimReverseResponse struct {
	DisplayName string           `json:"display_name"`
	Address     nominatimAddress `json:"address"`
	Error       string           `json:"error"`
}
