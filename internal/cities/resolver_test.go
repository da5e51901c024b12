package cities

import (
	"math"
	"testing"

	"geoinsight_backend/platform/geomath"
)

func TestResolver_CityResolvesToItself(t *testing.T) {
	r := NewResolver(Seed(), 500)

	kandy := geomath.Coordinate{Lat: 7.2906, Lng: 80.6337}
	match, ok := r.Nearest(kandy)
	if !ok {
		t.Fatalf("expected a match inside the catalog")
	}
	if match.City.Name != "Kandy" {
		t.Fatalf("expected Kandy, got %s", match.City.Name)
	}
	if match.DistanceKm > 0.001 {
		t.Fatalf("expected near-zero distance, got %f", match.DistanceKm)
	}
}

func TestResolver_NearbyCoordinate(t *testing.T) {
	r := NewResolver(Seed(), 500)

	// Peradeniya, a few km southwest of Kandy town.
	match, ok := r.Nearest(geomath.Coordinate{Lat: 7.2599, Lng: 80.5977})
	if !ok {
		t.Fatalf("expected a match")
	}
	if match.City.Name != "Kandy" {
		t.Fatalf("expected Kandy, got %s", match.City.Name)
	}
	if match.DistanceKm <= 0 || match.DistanceKm > 10 {
		t.Fatalf("expected a single-digit distance, got %f", match.DistanceKm)
	}
}

func TestResolver_DistanceCap(t *testing.T) {
	r := NewResolver(Seed(), 500)

	// Mumbai is well over 500 km from every catalog city.
	if _, ok := r.Nearest(geomath.Coordinate{Lat: 19.0760, Lng: 72.8777}); ok {
		t.Fatalf("expected no match beyond the distance cap")
	}

	uncapped := NewResolver(Seed(), 0)
	if _, ok := uncapped.Nearest(geomath.Coordinate{Lat: 19.0760, Lng: 72.8777}); !ok {
		t.Fatalf("expected a match with the cap disabled")
	}
}

func TestResolver_Idempotent(t *testing.T) {
	r := NewResolver(Seed(), 500)
	coord := geomath.Coordinate{Lat: 6.5, Lng: 80.1}

	first, ok := r.Nearest(coord)
	if !ok {
		t.Fatalf("expected a match")
	}
	second, _ := r.Nearest(coord)
	if first.City.Name != second.City.Name || first.DistanceKm != second.DistanceKm {
		t.Fatalf("expected identical results across calls: %+v vs %+v", first, second)
	}
}

func TestResolver_PopulationTieBreak(t *testing.T) {
	catalog := []City{
		{Name: "East Twin", Population: 1000, Coordinates: geomath.Coordinate{Lat: 7.0, Lng: 80.1}},
		{Name: "West Twin", Population: 90000, Coordinates: geomath.Coordinate{Lat: 7.0, Lng: 79.9}},
	}
	r := NewResolver(catalog, 0)

	match, ok := r.Nearest(geomath.Coordinate{Lat: 7.0, Lng: 80.0})
	if !ok {
		t.Fatalf("expected a match")
	}
	if match.City.Name != "West Twin" {
		t.Fatalf("expected the larger city on an equidistant tie, got %s", match.City.Name)
	}
}

func TestResolver_NearestMajorSkipsMinorCities(t *testing.T) {
	catalog := []City{
		{Name: "Peradeniya", Population: 15000, IsMajor: false, Coordinates: geomath.Coordinate{Lat: 7.2599, Lng: 80.5977}},
		{Name: "Kandy", Population: 125400, IsMajor: true, Coordinates: geomath.Coordinate{Lat: 7.2906, Lng: 80.6337}},
	}
	r := NewResolver(catalog, 500)

	// Right on top of the minor town.
	coord := geomath.Coordinate{Lat: 7.2599, Lng: 80.5977}

	plain, ok := r.Nearest(coord)
	if !ok || plain.City.Name != "Peradeniya" {
		t.Fatalf("expected the minor town as overall nearest, got %+v", plain)
	}

	major, ok := r.NearestMajor(coord)
	if !ok {
		t.Fatalf("expected a major match")
	}
	if major.City.Name != "Kandy" {
		t.Fatalf("expected the major city, got %s", major.City.Name)
	}
	if major.DistanceKm <= plain.DistanceKm {
		t.Fatalf("expected the major match to be farther than the minor one")
	}
}

func TestResolver_InvalidCoordinate(t *testing.T) {
	r := NewResolver(Seed(), 500)
	if _, ok := r.Nearest(geomath.Coordinate{Lat: math.NaN(), Lng: 80.0}); ok {
		t.Fatalf("expected no match for an invalid coordinate")
	}
}

func TestResolver_EmptyCatalog(t *testing.T) {
	r := NewResolver(nil, 500)
	if _, ok := r.Nearest(geomath.Coordinate{Lat: 6.9271, Lng: 79.8612}); ok {
		t.Fatalf("expected no match from an empty catalog")
	}
}
