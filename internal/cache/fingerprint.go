package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"geoinsight_backend/platform/geomath"
)

// coordPrecision is the number of decimal places a coordinate is rounded
// to before fingerprinting. Four decimals is roughly 11 m, close enough
// that two queries within it would produce the same geographic answer.
const coordPrecision = 4

// roundCoord normalizes a coordinate for fingerprinting.
func roundCoord(v float64) float64 {
	scale := math.Pow10(coordPrecision)
	return math.Round(v*scale) / scale
}

func coordPart(c geomath.Coordinate) string {
	return fmt.Sprintf("%.*f:%.*f", coordPrecision, roundCoord(c.Lat), coordPrecision, roundCoord(c.Lng))
}

// GeocodeFingerprint keys a reverse-geocode result by rounded coordinate.
func GeocodeFingerprint(c geomath.Coordinate) string {
	return coordPart(c)
}

// POIFingerprint keys a nearby-places result by rounded coordinate,
// radius, and category.
func POIFingerprint(c geomath.Coordinate, radiusMeters int, category string) string {
	return fmt.Sprintf("%s:%d:%s", coordPart(c), radiusMeters, strings.ToLower(category))
}

// RouteFingerprint keys a route narrative by its endpoints and mode.
func RouteFingerprint(origin, destination geomath.Coordinate, mode string) string {
	return fmt.Sprintf("%s:%s:%s", coordPart(origin), coordPart(destination), strings.ToLower(mode))
}

// ContentFingerprint keys generated prose by content type and a digest of
// the canonical JSON encoding of the inputs (json.Marshal sorts map keys,
// so semantically equal inputs hash identically).
func ContentFingerprint(contentType string, input map[string]string) string {
	canonical, err := json.Marshal(input)
	if err != nil {
		canonical = []byte("{}")
	}
	sum := sha256.Sum256(canonical)
	return fmt.Sprintf("%s:%s", contentType, hex.EncodeToString(sum[:]))
}
