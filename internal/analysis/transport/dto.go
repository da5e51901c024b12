// Package transport defines the request and response shapes for the
// analysis endpoints.
package transport

// AnalyzeRequest is the body of POST /api/v1/analysis. Coordinates are
// pointers so a missing field is distinguishable from a zero value.
type AnalyzeRequest struct {
	Latitude   *float64 `json:"latitude" validate:"required,latitude_deg"`
	Longitude  *float64 `json:"longitude" validate:"required,longitude_deg"`
	RadiusM    int      `json:"radius_m" validate:"omitempty,min=50,max=50000"`
	Categories []string `json:"categories" validate:"omitempty,max=10,dive,min=1,max=64"`
	// MajorOnly restricts the nearest-city resolution to major cities,
	// skipping small catalog towns that happen to be closer.
	MajorOnly bool `json:"major_only"`
}
