// Package geomath provides pure geodesic math: great-circle distances,
// coordinate validity, and containment against the operational region.
// This is part of the platform layer and contains no business logic.
package geomath

import "math"

// earthRadiusKm is the mean Earth radius used by the Haversine formula.
const earthRadiusKm = 6371.0

// Coordinate is a WGS84 latitude/longitude pair in degrees.
type Coordinate struct {
	Lat float64 `json:"latitude"`
	Lng float64 `json:"longitude"`
}

// Valid reports whether the coordinate is within global bounds. It knows
// nothing about the operational region; see Region.Contains for that.
func (c Coordinate) Valid() bool {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lng) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// Region is a rectangular operational boundary.
type Region struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

// Contains reports whether the coordinate falls inside the region,
// boundary inclusive.
func (r Region) Contains(c Coordinate) bool {
	return c.Lat >= r.MinLat && c.Lat <= r.MaxLat &&
		c.Lng >= r.MinLng && c.Lng <= r.MaxLng
}

// DistanceKm calculates the great-circle distance between two coordinates
// using the Haversine formula. NaN inputs propagate as NaN.
func DistanceKm(a, b Coordinate) float64 {
	dLat := toRad(b.Lat - a.Lat)
	dLng := toRad(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
