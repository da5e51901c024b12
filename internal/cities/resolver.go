package cities

import (
	"math"

	"geoinsight_backend/platform/geomath"
)

// distanceEpsilonKm treats distances this close as equal when breaking
// ties, so float noise does not decide between two equidistant cities.
const distanceEpsilonKm = 1e-6

// Match is the outcome of a nearest-city lookup.
type Match struct {
	City       City    `json:"city"`
	DistanceKm float64 `json:"distance_km"`
}

// Resolver finds the closest catalog city to a coordinate. The catalog
// is small enough that a linear scan beats any spatial index overhead.
type Resolver struct {
	cities        []City
	maxDistanceKm float64
}

// NewResolver builds a resolver over the given catalog. Matches farther
// than maxDistanceKm are rejected; a non-positive value disables the cap.
func NewResolver(catalog []City, maxDistanceKm float64) *Resolver {
	return &Resolver{cities: catalog, maxDistanceKm: maxDistanceKm}
}

// Nearest returns the closest city to the coordinate, or false when the
// catalog is empty, the coordinate is invalid, or every city is beyond
// the distance cap. Equidistant cities resolve to the larger population.
func (r *Resolver) Nearest(coord geomath.Coordinate) (Match, bool) {
	if !coord.Valid() || len(r.cities) == 0 {
		return Match{}, false
	}

	best := Match{DistanceKm: math.Inf(1)}
	for _, city := range r.cities {
		d := geomath.DistanceKm(coord, city.Coordinates)
		switch {
		case d < best.DistanceKm-distanceEpsilonKm:
			best = Match{City: city, DistanceKm: d}
		case d < best.DistanceKm+distanceEpsilonKm && city.Population > best.City.Population:
			best = Match{City: city, DistanceKm: d}
		}
	}

	if r.maxDistanceKm > 0 && best.DistanceKm > r.maxDistanceKm {
		return Match{}, false
	}
	return best, true
}

// NearestMajor behaves like Nearest but only considers major cities.
func (r *Resolver) NearestMajor(coord geomath.Coordinate) (Match, bool) {
	majors := make([]City, 0, len(r.cities))
	for _, city := range r.cities {
		if city.IsMajor {
			majors = append(majors, city)
		}
	}
	sub := Resolver{cities: majors, maxDistanceKm: r.maxDistanceKm}
	return sub.Nearest(coord)
}
