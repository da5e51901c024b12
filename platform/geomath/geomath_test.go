package geomath

import (
	"math"
	"testing"
)

var (
	colombo = Coordinate{Lat: 6.9271, Lng: 79.8612}
	kandy   = Coordinate{Lat: 7.2906, Lng: 80.6337}
	jaffna  = Coordinate{Lat: 9.6615, Lng: 80.0255}
)

func TestCoordinateValid_Bounds(t *testing.T) {
	valid := []Coordinate{
		{Lat: 0, Lng: 0},
		{Lat: 90, Lng: 180},
		{Lat: -90, Lng: -180},
		colombo,
	}
	for _, c := range valid {
		if !c.Valid() {
			t.Fatalf("expected %+v to be valid", c)
		}
	}

	invalid := []Coordinate{
		{Lat: 90.0001, Lng: 0},
		{Lat: -91, Lng: 0},
		{Lat: 0, Lng: 180.5},
		{Lat: 0, Lng: -181},
		{Lat: math.NaN(), Lng: 0},
		{Lat: 0, Lng: math.NaN()},
	}
	for _, c := range invalid {
		if c.Valid() {
			t.Fatalf("expected %+v to be invalid", c)
		}
	}
}

func TestDistanceKm_ZeroAndSymmetry(t *testing.T) {
	if d := DistanceKm(colombo, colombo); d != 0 {
		t.Fatalf("expected zero distance to self, got %f", d)
	}

	ab := DistanceKm(colombo, kandy)
	ba := DistanceKm(kandy, colombo)
	if math.Abs(ab-ba) > 1e-9 {
		t.Fatalf("expected symmetric distance, got %f vs %f", ab, ba)
	}
}

func TestDistanceKm_KnownReferencePoints(t *testing.T) {
	cases := []struct {
		name     string
		a, b     Coordinate
		expected float64
	}{
		{"colombo-kandy", colombo, kandy, 94.3},
		{"colombo-jaffna", colombo, jaffna, 304.6},
	}
	for _, tc := range cases {
		got := DistanceKm(tc.a, tc.b)
		if math.Abs(got-tc.expected) > 1.0 {
			t.Fatalf("%s: expected ~%.1f km, got %.3f km", tc.name, tc.expected, got)
		}
	}
}

func TestDistanceKm_NaNPropagates(t *testing.T) {
	d := DistanceKm(Coordinate{Lat: math.NaN(), Lng: 0}, colombo)
	if !math.IsNaN(d) {
		t.Fatalf("expected NaN distance for NaN input, got %f", d)
	}
}

func TestRegionContains(t *testing.T) {
	sriLanka := Region{MinLat: 5.5, MaxLat: 10.0, MinLng: 79.0, MaxLng: 82.0}

	if !sriLanka.Contains(colombo) {
		t.Fatalf("expected Colombo inside operational region")
	}
	if !sriLanka.Contains(Coordinate{Lat: 5.5, Lng: 79.0}) {
		t.Fatalf("expected boundary coordinate to be contained")
	}
	if sriLanka.Contains(Coordinate{Lat: 13.0827, Lng: 80.2707}) {
		t.Fatalf("expected Chennai outside operational region")
	}
	if sriLanka.Contains(Coordinate{Lat: 6.9, Lng: 73.0}) {
		t.Fatalf("expected out-of-range longitude to be rejected")
	}
}
