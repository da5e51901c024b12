package service

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"geoinsight_backend/internal/cache"
	"geoinsight_backend/internal/gateway"
	"geoinsight_backend/platform/apperr"
	"geoinsight_backend/platform/config"
	"geoinsight_backend/platform/logger"
)

type fakeTextProvider struct {
	calls  atomic.Int64
	text   string
	fail   bool
	onCall func()
}

func (f *fakeTextProvider) Complete(_ context.Context, model, prompt string, _ int) (*gateway.Completion, error) {
	f.calls.Add(1)
	if f.onCall != nil {
		f.onCall()
	}
	if f.fail {
		return nil, &gateway.Error{Kind: gateway.KindUnavailable, Provider: "text", Op: "complete"}
	}
	text := f.text
	if text == "" {
		text = "generated by " + model + ": " + prompt
	}
	return &gateway.Completion{Text: text, TokensUsed: 500}, nil
}

func testService(t *testing.T, provider *fakeTextProvider, enabled bool) *Service {
	t.Helper()
	cfg := &config.Config{
		GeocodeTTL:      time.Hour,
		POITTL:          time.Hour,
		RouteTTL:        time.Hour,
		AIContentTTL:    time.Hour,
		GenerateTimeout: time.Second,
		EnhancerEnabled: enabled,
	}
	if enabled {
		cfg.GeminiAPIKey = "test-key"
	}
	log := logger.New("development")
	store := cache.NewMemoryStore()
	t.Cleanup(func() { store.Close() })

	return New(provider, cache.New(store, cfg, log), cfg, log)
}

func TestGenerate_Success(t *testing.T) {
	provider := &fakeTextProvider{text: "A short drive along the A1 leads into Kandy."}
	svc := testService(t, provider, true)

	result, err := svc.Generate(context.Background(), TypeRouteDescription, map[string]string{
		"city":          "Kandy",
		"distance_km":   "3.2",
		"route_summary": "via A1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Cached || result.Disabled {
		t.Fatalf("expected a fresh result, got %+v", result)
	}
	if result.ModelUsed != "gemini-2.0-flash" {
		t.Fatalf("expected flash model for a narrative type, got %s", result.ModelUsed)
	}
	if result.TokensUsed != 500 {
		t.Fatalf("expected token usage recorded, got %d", result.TokensUsed)
	}
	want := 500.0 / 1000 * 0.0004
	if result.CostUSD != want {
		t.Fatalf("expected cost %f, got %f", want, result.CostUSD)
	}
}

func TestGenerate_UnknownContentType(t *testing.T) {
	svc := testService(t, &fakeTextProvider{}, true)

	_, err := svc.Generate(context.Background(), ContentType("poem"), nil)
	if !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected bad request error, got %v", err)
	}
}

func TestGenerate_DisabledShortCircuits(t *testing.T) {
	provider := &fakeTextProvider{}
	svc := testService(t, provider, false)

	result, err := svc.Generate(context.Background(), TypeLocalityAnalysis, map[string]string{"city": "Galle"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Disabled {
		t.Fatalf("expected disabled marker")
	}
	if result.ModelUsed != FallbackModel {
		t.Fatalf("expected fallback model tag, got %s", result.ModelUsed)
	}
	if result.CostUSD != 0 || result.Cached {
		t.Fatalf("expected zero cost uncached fallback, got %+v", result)
	}
	if provider.calls.Load() != 0 {
		t.Fatalf("expected no provider call when disabled")
	}
	if !strings.Contains(result.Text, "Galle") {
		t.Fatalf("expected placeholder to reference the city, got %q", result.Text)
	}
}

func TestGenerate_ProviderFailureFallsBack(t *testing.T) {
	provider := &fakeTextProvider{fail: true}
	svc := testService(t, provider, true)

	result, err := svc.Generate(context.Background(), TypeRouteDescription, map[string]string{"city": "Kandy"})
	if err != nil {
		t.Fatalf("expected fallback instead of error, got %v", err)
	}
	if result.ModelUsed != FallbackModel {
		t.Fatalf("expected fallback model tag, got %s", result.ModelUsed)
	}
	if result.Disabled {
		t.Fatalf("provider failure must not report as disabled")
	}
	if result.CostUSD != 0 {
		t.Fatalf("expected zero cost on fallback, got %f", result.CostUSD)
	}
	if !strings.Contains(result.Text, "Kandy") {
		t.Fatalf("expected placeholder to reference the city, got %q", result.Text)
	}
	if provider.calls.Load() != 1 {
		t.Fatalf("expected exactly one provider attempt, no retries")
	}
}

func TestGenerate_CacheHit(t *testing.T) {
	provider := &fakeTextProvider{text: "The Fort area offers excellent amenities."}
	svc := testService(t, provider, true)

	input := map[string]string{"city": "Galle", "region": "Southern"}
	first, err := svc.Generate(context.Background(), TypeLocalityAnalysis, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := svc.Generate(context.Background(), TypeLocalityAnalysis, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !second.Cached {
		t.Fatalf("expected second call served from cache")
	}
	if second.Text != first.Text {
		t.Fatalf("expected identical text from cache")
	}
	if second.CostUSD != 0 {
		t.Fatalf("expected zero cost on cache hit, got %f", second.CostUSD)
	}
	if provider.calls.Load() != 1 {
		t.Fatalf("expected a single provider call across both requests")
	}
}

func TestGenerate_AbandonedRequestStillPopulatesCache(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	provider := &fakeTextProvider{
		text:   "A short drive along the A1 leads into Kandy.",
		onCall: cancel,
	}
	svc := testService(t, provider, true)

	input := map[string]string{"city": "Kandy"}
	if _, err := svc.Generate(ctx, TypeRouteDescription, input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := svc.Generate(context.Background(), TypeRouteDescription, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Cached {
		t.Fatalf("expected the second call to hit the cache written by the abandoned request")
	}
	if provider.calls.Load() != 1 {
		t.Fatalf("expected a single provider call, got %d", provider.calls.Load())
	}
}

func TestGenerate_InputSanitized(t *testing.T) {
	provider := &fakeTextProvider{}
	svc := testService(t, provider, true)

	input := map[string]string{"city": `<script>alert(1)</script>Kandy`}
	result, err := svc.Generate(context.Background(), TypeRouteDescription, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(result.Text, "script") || strings.Contains(result.Text, "alert") {
		t.Fatalf("expected markup stripped before prompting, got %q", result.Text)
	}
	if !strings.Contains(result.Text, "Kandy") {
		t.Fatalf("expected safe text preserved, got %q", result.Text)
	}
}

func TestCostUSD_UnknownModelUsesDefault(t *testing.T) {
	got := costUSD("experimental-model", 1000)
	if got != defaultPricePerKTokens {
		t.Fatalf("expected default price for an unknown model, got %f", got)
	}
}

func TestEnhanceMany_IndependentFallbacks(t *testing.T) {
	provider := &fakeTextProvider{}
	svc := testService(t, provider, true)

	record := map[string]any{
		"city":          "Kandy",
		"region":        "Central",
		"property_type": "residential",
		"land_size":     "undisclosed<script>x</script>",
		"bedrooms":      "not-a-number",
	}
	types := []ContentType{TypeRouteDescription, ContentType("poem"), TypeMarketAnalysis}

	results := svc.EnhanceMany(context.Background(), record, types)
	if len(results) != 3 {
		t.Fatalf("expected one result per requested type, got %d", len(results))
	}
	if results[0].ContentType != TypeRouteDescription || results[0].ModelUsed == FallbackModel {
		t.Fatalf("expected a fresh route description, got %+v", results[0])
	}
	if results[1].ModelUsed != FallbackModel {
		t.Fatalf("expected the unknown type to degrade to the placeholder, got %+v", results[1])
	}
	if results[2].ContentType != TypeMarketAnalysis || results[2].ModelUsed == FallbackModel {
		t.Fatalf("expected the market analysis unaffected by the failing sibling, got %+v", results[2])
	}
}
