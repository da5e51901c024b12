// Package cities resolves coordinates to the nearest known city. The city
// catalog lives in Postgres and is seeded by migrations; when no database
// is configured the embedded seed list serves as the catalog so the
// resolver keeps working in minimal deployments.
package cities

import (
	"geoinsight_backend/platform/geomath"
)

// City is one entry in the reference catalog.
type City struct {
	Name        string             `json:"name"`
	Country     string             `json:"country"`
	Region      string             `json:"region"`
	Coordinates geomath.Coordinate `json:"coordinates"`
	Population  int                `json:"population"`
	IsMajor     bool               `json:"is_major_city"`
	Timezone    string             `json:"timezone"`
}

// Seed returns the embedded city catalog. It mirrors the migration seed
// data so resolver behavior is identical with or without a database.
func Seed() []City {
	return []City{
		{Name: "Colombo", Country: "Sri Lanka", Region: "Western", Coordinates: geomath.Coordinate{Lat: 6.9271, Lng: 79.8612}, Population: 752993, IsMajor: true, Timezone: "Asia/Colombo"},
		{Name: "Negombo", Country: "Sri Lanka", Region: "Western", Coordinates: geomath.Coordinate{Lat: 7.2008, Lng: 79.8737}, Population: 142136, IsMajor: true, Timezone: "Asia/Colombo"},
		{Name: "Kandy", Country: "Sri Lanka", Region: "Central", Coordinates: geomath.Coordinate{Lat: 7.2906, Lng: 80.6337}, Population: 125400, IsMajor: true, Timezone: "Asia/Colombo"},
		{Name: "Nuwara Eliya", Country: "Sri Lanka", Region: "Central", Coordinates: geomath.Coordinate{Lat: 6.9497, Lng: 80.7891}, Population: 27500, IsMajor: true, Timezone: "Asia/Colombo"},
		{Name: "Dambulla", Country: "Sri Lanka", Region: "Central", Coordinates: geomath.Coordinate{Lat: 7.8742, Lng: 80.6511}, Population: 75290, IsMajor: true, Timezone: "Asia/Colombo"},
		{Name: "Sigiriya", Country: "Sri Lanka", Region: "Central", Coordinates: geomath.Coordinate{Lat: 7.9570, Lng: 80.7603}, Population: 1500, IsMajor: true, Timezone: "Asia/Colombo"},
		{Name: "Galle", Country: "Sri Lanka", Region: "Southern", Coordinates: geomath.Coordinate{Lat: 6.0535, Lng: 80.2210}, Population: 93118, IsMajor: true, Timezone: "Asia/Colombo"},
		{Name: "Matara", Country: "Sri Lanka", Region: "Southern", Coordinates: geomath.Coordinate{Lat: 5.9485, Lng: 80.5353}, Population: 74193, IsMajor: true, Timezone: "Asia/Colombo"},
		{Name: "Hambantota", Country: "Sri Lanka", Region: "Southern", Coordinates: geomath.Coordinate{Lat: 6.1241, Lng: 81.1185}, Population: 11213, IsMajor: true, Timezone: "Asia/Colombo"},
		{Name: "Jaffna", Country: "Sri Lanka", Region: "Northern", Coordinates: geomath.Coordinate{Lat: 9.6615, Lng: 80.0255}, Population: 88138, IsMajor: true, Timezone: "Asia/Colombo"},
		{Name: "Vavuniya", Country: "Sri Lanka", Region: "Northern", Coordinates: geomath.Coordinate{Lat: 8.7542, Lng: 80.4982}, Population: 38101, IsMajor: true, Timezone: "Asia/Colombo"},
		{Name: "Mannar", Country: "Sri Lanka", Region: "Northern", Coordinates: geomath.Coordinate{Lat: 8.9810, Lng: 79.9044}, Population: 25000, IsMajor: true, Timezone: "Asia/Colombo"},
		{Name: "Trincomalee", Country: "Sri Lanka", Region: "Eastern", Coordinates: geomath.Coordinate{Lat: 8.5874, Lng: 81.2152}, Population: 99135, IsMajor: true, Timezone: "Asia/Colombo"},
		{Name: "Batticaloa", Country: "Sri Lanka", Region: "Eastern", Coordinates: geomath.Coordinate{Lat: 7.7310, Lng: 81.6747}, Population: 92332, IsMajor: true, Timezone: "Asia/Colombo"},
		{Name: "Anuradhapura", Country: "Sri Lanka", Region: "North Central", Coordinates: geomath.Coordinate{Lat: 8.3114, Lng: 80.4037}, Population: 63208, IsMajor: true, Timezone: "Asia/Colombo"},
		{Name: "Polonnaruwa", Country: "Sri Lanka", Region: "North Central", Coordinates: geomath.Coordinate{Lat: 7.9403, Lng: 81.0188}, Population: 15000, IsMajor: true, Timezone: "Asia/Colombo"},
		{Name: "Kurunegala", Country: "Sri Lanka", Region: "North Western", Coordinates: geomath.Coordinate{Lat: 7.4863, Lng: 80.3647}, Population: 30315, IsMajor: true, Timezone: "Asia/Colombo"},
		{Name: "Puttalam", Country: "Sri Lanka", Region: "North Western", Coordinates: geomath.Coordinate{Lat: 8.0362, Lng: 79.8283}, Population: 45661, IsMajor: true, Timezone: "Asia/Colombo"},
		{Name: "Ratnapura", Country: "Sri Lanka", Region: "Sabaragamuwa", Coordinates: geomath.Coordinate{Lat: 6.6828, Lng: 80.3992}, Population: 47832, IsMajor: true, Timezone: "Asia/Colombo"},
		{Name: "Badulla", Country: "Sri Lanka", Region: "Uva", Coordinates: geomath.Coordinate{Lat: 6.9934, Lng: 81.0550}, Population: 42923, IsMajor: true, Timezone: "Asia/Colombo"},
		{Name: "Bandarawela", Country: "Sri Lanka", Region: "Uva", Coordinates: geomath.Coordinate{Lat: 6.8326, Lng: 80.9861}, Population: 33040, IsMajor: true, Timezone: "Asia/Colombo"},
	}
}
