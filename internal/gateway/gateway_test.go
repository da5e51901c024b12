package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"geoinsight_backend/platform/geomath"
	"geoinsight_backend/platform/logger"
)

func testLogger() *logger.Logger {
	return logger.New("development")
}

func colombo() geomath.Coordinate {
	return geomath.Coordinate{Lat: 6.9271, Lng: 79.8612}
}

func TestReverseGeocode_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/reverse" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("User-Agent") != "geoinsight-test" {
			t.Fatalf("expected custom user agent, got %q", r.Header.Get("User-Agent"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"display_name": "Colombo, Western Province, Sri Lanka",
			"address": {
				"city": "Colombo",
				"state_district": "Colombo District",
				"state": "Western Province",
				"postcode": "00100",
				"country": "Sri Lanka"
			}
		}`))
	}))
	defer srv.Close()

	g := NewNominatimGeocoder(srv.URL, "geoinsight-test", testLogger())
	loc, err := g.ReverseGeocode(context.Background(), colombo())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.City != "Colombo" || loc.Province != "Western Province" || loc.Country != "Sri Lanka" {
		t.Fatalf("unexpected location: %+v", loc)
	}
}

func TestReverseGeocode_CityFallsBackThroughAddressLevels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"address": {"village": "Habarana", "country": "Sri Lanka"}}`))
	}))
	defer srv.Close()

	g := NewNominatimGeocoder(srv.URL, "geoinsight-test", testLogger())
	loc, err := g.ReverseGeocode(context.Background(), colombo())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.City != "Habarana" {
		t.Fatalf("expected village used as city, got %q", loc.City)
	}
}

func TestReverseGeocode_ErrorClassification(t *testing.T) {
	cases := []struct {
		name   string
		status int
		want   ErrorKind
	}{
		{"rate limited", http.StatusTooManyRequests, KindRateLimited},
		{"server error", http.StatusBadGateway, KindUnavailable},
		{"client error", http.StatusNotFound, KindInvalidResponse},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
			}))
			defer srv.Close()

			g := NewNominatimGeocoder(srv.URL, "geoinsight-test", testLogger())
			_, err := g.ReverseGeocode(context.Background(), colombo())
			kind, ok := KindOf(err)
			if !ok || kind != tc.want {
				t.Fatalf("expected kind %s, got %v", tc.want, err)
			}
		})
	}
}

func TestReverseGeocode_TimeoutIsTyped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	g := NewNominatimGeocoder(srv.URL, "geoinsight-test", testLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := g.ReverseGeocode(ctx, colombo())
	if !IsTimeout(err) {
		t.Fatalf("expected typed timeout, got %v", err)
	}
}

func TestSearchNearby_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("type"); got != "restaurant" {
			t.Fatalf("expected category forwarded as type, got %q", got)
		}
		_, _ = w.Write([]byte(`{
			"status": "OK",
			"results": [
				{
					"place_id": "p1",
					"name": "Ministry of Crab",
					"vicinity": "Old Dutch Hospital, Colombo",
					"rating": 4.6,
					"geometry": {"location": {"lat": 6.9355, "lng": 79.8410}}
				},
				{
					"place_id": "p2",
					"name": "Unrated Kiosk",
					"geometry": {"location": {"lat": 6.93, "lng": 79.84}}
				}
			]
		}`))
	}))
	defer srv.Close()

	p := NewGooglePlacesProvider("key", srv.URL, testLogger())
	pois, err := p.SearchNearby(context.Background(), colombo(), 1500, "restaurant")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pois) != 2 {
		t.Fatalf("expected two pois, got %d", len(pois))
	}
	if pois[0].Rating == nil || *pois[0].Rating != 4.6 {
		t.Fatalf("expected rating pointer set, got %v", pois[0].Rating)
	}
	if pois[1].Rating != nil {
		t.Fatalf("expected absent rating to stay nil")
	}
	if pois[0].Category != "restaurant" {
		t.Fatalf("expected category stamped on results, got %q", pois[0].Category)
	}
	if pois[0].DistanceKm != 0 {
		t.Fatalf("provider must not compute distances, got %f", pois[0].DistanceKm)
	}
}

func TestSearchNearby_ZeroResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status": "ZERO_RESULTS", "results": []}`))
	}))
	defer srv.Close()

	p := NewGooglePlacesProvider("key", srv.URL, testLogger())
	pois, err := p.SearchNearby(context.Background(), colombo(), 1500, "casino")
	if err != nil {
		t.Fatalf("zero results is a legitimate empty answer, got %v", err)
	}
	if len(pois) != 0 {
		t.Fatalf("expected empty result, got %d", len(pois))
	}
}

func TestSearchNearby_QuotaMapsToRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status": "OVER_QUERY_LIMIT"}`))
	}))
	defer srv.Close()

	p := NewGooglePlacesProvider("key", srv.URL, testLogger())
	_, err := p.SearchNearby(context.Background(), colombo(), 1500, "school")
	if kind, ok := KindOf(err); !ok || kind != KindRateLimited {
		t.Fatalf("expected rate limited, got %v", err)
	}
}

func TestGetRoute_SumsLegsAndDefaultsMode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("mode"); got != "driving" {
			t.Fatalf("expected driving mode default, got %q", got)
		}
		_, _ = w.Write([]byte(`{
			"status": "OK",
			"routes": [
				{
					"summary": "A1",
					"legs": [
						{"distance": {"value": 60000}, "duration": {"value": 4500}, "end_address": "Kegalle"},
						{"distance": {"value": 34000}, "duration": {"value": 2700}, "end_address": "Kandy"}
					]
				}
			]
		}`))
	}))
	defer srv.Close()

	d := NewGoogleDirectionsProvider("key", srv.URL, testLogger())
	route, err := d.GetRoute(context.Background(), colombo(), geomath.Coordinate{Lat: 7.2906, Lng: 80.6337}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if route.DistanceMeters != 94000 {
		t.Fatalf("expected summed leg distance, got %d", route.DistanceMeters)
	}
	if route.Duration != 2*time.Hour {
		t.Fatalf("expected summed duration, got %s", route.Duration)
	}
	if route.Summary != "A1" || route.Mode != "driving" {
		t.Fatalf("unexpected route: %+v", route)
	}
}

func TestGetRoute_SummaryFallsBackToTowns(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{
			"status": "OK",
			"routes": [{"legs": [{"distance": {"value": 1000}, "duration": {"value": 120}, "end_address": "Kandy"}]}]
		}`))
	}))
	defer srv.Close()

	d := NewGoogleDirectionsProvider("key", srv.URL, testLogger())
	route, err := d.GetRoute(context.Background(), colombo(), geomath.Coordinate{Lat: 7.29, Lng: 80.63}, "walking")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if route.Summary != "via Kandy" {
		t.Fatalf("expected town fallback summary, got %q", route.Summary)
	}
}

func TestGetRoute_NoRoutesIsInvalidResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status": "OK", "routes": []}`))
	}))
	defer srv.Close()

	d := NewGoogleDirectionsProvider("key", srv.URL, testLogger())
	_, err := d.GetRoute(context.Background(), colombo(), geomath.Coordinate{Lat: 7.29, Lng: 80.63}, "driving")
	if kind, ok := KindOf(err); !ok || kind != KindInvalidResponse {
		t.Fatalf("expected invalid response, got %v", err)
	}
}
