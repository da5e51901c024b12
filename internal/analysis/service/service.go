// Package service orchestrates a full location analysis: administrative
// lookup, nearest city with a route narrative, and POIs per category.
// Upstream failures degrade individual sections; only coordinate
// validation fails the request.
package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"geoinsight_backend/internal/cache"
	"geoinsight_backend/internal/cities"
	"geoinsight_backend/internal/gateway"
	"geoinsight_backend/platform/apperr"
	"geoinsight_backend/platform/config"
	"geoinsight_backend/platform/geomath"
	"geoinsight_backend/platform/logger"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const routeMode = "driving"

// Section names reported in FailedSections.
const (
	sectionAdministrative = "administrative_location"
	sectionRoute          = "route_narrative"
	sectionPOIPrefix      = "pois:"
)

// NearestCity pairs the resolved city with its distance and, when the
// directions provider cooperated, a route narrative.
type NearestCity struct {
	City         cities.City `json:"city"`
	DistanceKm   float64     `json:"distance_km"`
	RouteSummary string      `json:"route_summary,omitempty"`
}

// LocationAnalysis is the composite result of one analysis request.
// It is constructed fresh per request and never mutated after return.
type LocationAnalysis struct {
	ID                     uuid.UUID                       `json:"id"`
	Origin                 geomath.Coordinate              `json:"origin"`
	AdministrativeLocation *gateway.AdministrativeLocation `json:"administrative_location,omitempty"`
	NearestCity            *NearestCity                    `json:"nearest_city,omitempty"`
	POIs                   map[string][]gateway.POI        `json:"pois"`
	Partial                bool                            `json:"partial"`
	FailedSections         []string                        `json:"failed_sections,omitempty"`
	GeneratedAt            time.Time                       `json:"generated_at"`
}

// AnalyzeParams are the validated inputs for one analysis run.
type AnalyzeParams struct {
	Origin       geomath.Coordinate
	RadiusMeters int
	Categories   []string
	MajorOnly    bool
}

// Service composes the gateway providers, the result cache, and the
// city resolver into the analysis pipeline.
type Service struct {
	geocoder   gateway.Geocoder
	places     gateway.PlacesProvider
	directions gateway.DirectionsProvider
	cache      *cache.ResultCache
	resolver   *cities.Resolver
	region     geomath.Region
	cfg        config.AnalyzerConfig
	timeouts   config.GatewayConfig
	log        *logger.Logger
}

func New(
	geocoder gateway.Geocoder,
	places gateway.PlacesProvider,
	directions gateway.DirectionsProvider,
	resultCache *cache.ResultCache,
	resolver *cities.Resolver,
	region geomath.Region,
	cfg config.AnalyzerConfig,
	timeouts config.GatewayConfig,
	log *logger.Logger,
) *Service {
	return &Service{
		geocoder:   geocoder,
		places:     places,
		directions: directions,
		cache:      resultCache,
		resolver:   resolver,
		region:     region,
		cfg:        cfg,
		timeouts:   timeouts,
		log:        log,
	}
}

// failureRecorder collects failed section names from concurrent branches.
type failureRecorder struct {
	mu       sync.Mutex
	sections []string
}

func (f *failureRecorder) record(section string) {
	f.mu.Lock()
	f.sections = append(f.sections, section)
	f.mu.Unlock()
}

func (f *failureRecorder) sorted() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := append([]string(nil), f.sections...)
	sort.Strings(out)
	return out
}

// Analyze runs the full pipeline. Validation failures are the only
// errors returned; every upstream failure degrades its own section and
// is reported through Partial and FailedSections.
func (s *Service) Analyze(ctx context.Context, params AnalyzeParams) (*LocationAnalysis, error) {
	if err := s.validate(params.Origin); err != nil {
		return nil, err
	}

	radius := params.RadiusMeters
	if radius <= 0 {
		radius = s.cfg.GetDefaultPOIRadiusMeters()
	}

	result := &LocationAnalysis{
		ID:          uuid.New(),
		Origin:      params.Origin,
		POIs:        make(map[string][]gateway.POI, len(params.Categories)),
		GeneratedAt: time.Now().UTC(),
	}
	failures := &failureRecorder{}

	var poiMu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		result.AdministrativeLocation = s.resolveAdministrative(gctx, params.Origin, failures)
		return nil
	})

	g.Go(func() error {
		result.NearestCity = s.resolveNearestCity(gctx, params.Origin, params.MajorOnly, failures)
		return nil
	})

	for _, category := range params.Categories {
		g.Go(func() error {
			pois := s.resolvePOIs(gctx, params.Origin, radius, category, failures)
			poiMu.Lock()
			result.POIs[category] = pois
			poiMu.Unlock()
			return nil
		})
	}

	// Branch goroutines never return errors; failures are recorded.
	_ = g.Wait()

	result.FailedSections = failures.sorted()
	result.Partial = len(result.FailedSections) > 0
	return result, nil
}

// validate rejects coordinates that are out of bounds or outside the
// operational region before any external call is made.
func (s *Service) validate(origin geomath.Coordinate) error {
	if !origin.Valid() {
		return apperr.Validation("coordinate out of bounds").
			WithDetails(map[string]float64{"latitude": origin.Lat, "longitude": origin.Lng})
	}
	if !s.region.Contains(origin) {
		return apperr.Validation("coordinate outside operational region").
			WithDetails(map[string]float64{"latitude": origin.Lat, "longitude": origin.Lng})
	}
	return nil
}

func (s *Service) resolveAdministrative(ctx context.Context, origin geomath.Coordinate, failures *failureRecorder) *gateway.AdministrativeLocation {
	fp := cache.GeocodeFingerprint(origin)

	var cached gateway.AdministrativeLocation
	if hit, _ := s.cache.Get(ctx, cache.KindGeocode, fp, &cached); hit {
		return &cached
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeouts.GetGeocodeTimeout())
	defer cancel()

	loc, err := s.geocoder.ReverseGeocode(callCtx, origin)
	if err != nil {
		s.log.GatewayFailure("geocoder", "reverse_geocode", err)
		failures.record(sectionAdministrative)
		return nil
	}

	s.cache.Put(context.WithoutCancel(ctx), cache.KindGeocode, fp, loc)
	return loc
}

func (s *Service) resolveNearestCity(ctx context.Context, origin geomath.Coordinate, majorOnly bool, failures *failureRecorder) *NearestCity {
	var match cities.Match
	var ok bool
	if majorOnly {
		match, ok = s.resolver.NearestMajor(origin)
	} else {
		match, ok = s.resolver.Nearest(origin)
	}
	if !ok {
		return nil
	}

	nearest := &NearestCity{City: match.City, DistanceKm: match.DistanceKm}
	nearest.RouteSummary = s.resolveRouteSummary(ctx, origin, match, failures)
	return nearest
}

// resolveRouteSummary fetches a route narrative toward the nearest city,
// falling back to a distance-only statement when the provider fails.
func (s *Service) resolveRouteSummary(ctx context.Context, origin geomath.Coordinate, match cities.Match, failures *failureRecorder) string {
	fp := cache.RouteFingerprint(origin, match.City.Coordinates, routeMode)

	var cached gateway.RouteNarrative
	if hit, _ := s.cache.Get(ctx, cache.KindRoute, fp, &cached); hit {
		return cached.Summary
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeouts.GetDirectionsTimeout())
	defer cancel()

	route, err := s.directions.GetRoute(callCtx, origin, match.City.Coordinates, routeMode)
	if err != nil {
		s.log.GatewayFailure("directions", "get_route", err)
		failures.record(sectionRoute)
		return fmt.Sprintf("Approximately %.1f km from %s.", match.DistanceKm, match.City.Name)
	}

	s.cache.Put(context.WithoutCancel(ctx), cache.KindRoute, fp, route)
	return route.Summary
}

func (s *Service) resolvePOIs(ctx context.Context, origin geomath.Coordinate, radius int, category string, failures *failureRecorder) []gateway.POI {
	fp := cache.POIFingerprint(origin, radius, category)

	var pois []gateway.POI
	hit, _ := s.cache.Get(ctx, cache.KindPOI, fp, &pois)
	if !hit {
		callCtx, cancel := context.WithTimeout(ctx, s.timeouts.GetPlacesTimeout())
		defer cancel()

		fetched, err := s.places.SearchNearby(callCtx, origin, radius, category)
		if err != nil {
			s.log.GatewayFailure("places", "search_nearby", err)
			failures.record(sectionPOIPrefix + category)
			return nil
		}
		pois = fetched
		s.cache.Put(context.WithoutCancel(ctx), cache.KindPOI, fp, pois)
	}

	// Distance is relative to this request's origin, so it is computed
	// after every cache hit or fetch rather than stored.
	for i := range pois {
		pois[i].DistanceKm = geomath.DistanceKm(origin, pois[i].Coordinates)
	}
	return pois
}
