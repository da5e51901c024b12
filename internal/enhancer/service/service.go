// Package service generates report prose through the generative-text
// provider. Every content type carries a declarative model, token
// budget, and prompt template; provider failures and a disabled
// enhancer both degrade to deterministic placeholder text so report
// assembly always receives usable content.
package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"geoinsight_backend/internal/cache"
	"geoinsight_backend/internal/gateway"
	"geoinsight_backend/platform/apperr"
	"geoinsight_backend/platform/config"
	"geoinsight_backend/platform/logger"
	"geoinsight_backend/platform/sanitize"
)

// ContentType identifies one report section kind.
type ContentType string

const (
	TypeRouteDescription    ContentType = "route_description"
	TypeLocalityAnalysis    ContentType = "locality_analysis"
	TypeMarketAnalysis      ContentType = "market_analysis"
	TypeBuildingDescription ContentType = "building_description"
	TypeQualityCheck        ContentType = "quality_check"
)

const (
	modelFlash = "gemini-2.0-flash"
	modelPro   = "gemini-2.5-pro"

	// FallbackModel tags results produced without a provider call.
	FallbackModel = "fallback-placeholder"
)

// contentSpec binds a content type to its model, budget, and template.
// Placeholders of the form {field} are replaced with input values.
type contentSpec struct {
	Model     string
	MaxTokens int
	Template  string
}

// Narrative types use the flash model with small budgets; analytical
// types get the pro model and room to reason.
var contentTypeSpecs = map[ContentType]contentSpec{
	TypeRouteDescription: {
		Model:     modelFlash,
		MaxTokens: 512,
		Template: "Write a concise route description for a property report. " +
			"The property is near {city}. Route details: {route_summary}. " +
			"Distance to the city center: {distance_km} km. Keep it factual, two or three sentences.",
	},
	TypeBuildingDescription: {
		Model:     modelFlash,
		MaxTokens: 512,
		Template: "Write a short building description for a property report. " +
			"Property type: {property_type}. Floor area: {building_size}. " +
			"Condition: {condition}. Bedrooms: {bedrooms}. Neutral tone, no embellishment.",
	},
	TypeLocalityAnalysis: {
		Model:     modelPro,
		MaxTokens: 1024,
		Template: "Analyze the locality of a property near {city} in the {region} region " +
			"for a valuation report. Nearby amenities: {pois_summary}. " +
			"Cover accessibility, amenities, and neighborhood character.",
	},
	TypeMarketAnalysis: {
		Model:     modelPro,
		MaxTokens: 1024,
		Template: "Write a market analysis for a {property_type} property near {city} " +
			"in the {region} region. Land extent: {land_size}. " +
			"Discuss demand drivers and comparable market activity. Avoid specific price predictions.",
	},
	TypeQualityCheck: {
		Model:     modelPro,
		MaxTokens: 2048,
		Template: "Review the following property report text for internal consistency, " +
			"missing sections, and factual contradictions. List findings as bullet points.\n\n{report_text}",
	},
}

// modelPricePerKTokens is USD per 1000 tokens. Unknown models fall back
// to defaultPricePerKTokens rather than failing the request.
var modelPricePerKTokens = map[string]float64{
	modelFlash: 0.0004,
	modelPro:   0.00375,
}

const defaultPricePerKTokens = 0.002

// reportSchema declares the record fields the batch endpoint accepts.
// Unknown fields are dropped before any prompt sees them.
var reportSchema = sanitize.Schema{
	"city":          sanitize.FieldString,
	"region":        sanitize.FieldString,
	"address":       sanitize.FieldString,
	"route_summary": sanitize.FieldString,
	"distance_km":   sanitize.FieldNumber,
	"property_type": sanitize.FieldString,
	"building_size": sanitize.FieldString,
	"land_size":     sanitize.FieldString,
	"condition":     sanitize.FieldString,
	"bedrooms":      sanitize.FieldNumber,
	"pois_summary":  sanitize.FieldString,
	"report_text":   sanitize.FieldString,
}

// batchInputFields lists the record fields each content type consumes
// in EnhanceMany.
var batchInputFields = map[ContentType][]string{
	TypeRouteDescription:    {"city", "route_summary", "distance_km"},
	TypeBuildingDescription: {"property_type", "building_size", "condition", "bedrooms"},
	TypeLocalityAnalysis:    {"city", "region", "pois_summary"},
	TypeMarketAnalysis:      {"city", "region", "property_type", "land_size"},
	TypeQualityCheck:        {"report_text"},
}

// GeneratedContent is the outcome of one generation request.
type GeneratedContent struct {
	ContentType ContentType `json:"content_type"`
	Text        string      `json:"text"`
	ModelUsed   string      `json:"model_used"`
	TokensUsed  int         `json:"tokens_used"`
	CostUSD     float64     `json:"cost_usd"`
	Cached      bool        `json:"cached"`
	Disabled    bool        `json:"disabled,omitempty"`
}

// cachedText is the cache payload. Cost is recomputed per call and
// never cached.
type cachedText struct {
	Text string `json:"text"`
}

type Service struct {
	provider gateway.TextProvider
	cache    *cache.ResultCache
	cfg      config.EnhancerConfig
	log      *logger.Logger
}

func New(provider gateway.TextProvider, resultCache *cache.ResultCache, cfg config.EnhancerConfig, log *logger.Logger) *Service {
	return &Service{provider: provider, cache: resultCache, cfg: cfg, log: log}
}

// Generate produces text for one content type. The only error is an
// unknown content type; provider failures return placeholder content.
func (s *Service) Generate(ctx context.Context, contentType ContentType, input map[string]string) (*GeneratedContent, error) {
	spec, ok := contentTypeSpecs[contentType]
	if !ok {
		return nil, apperr.BadRequest(fmt.Sprintf("unknown content type %q", contentType))
	}

	clean := sanitizeInput(input)

	if !s.cfg.IsEnhancerEnabled() {
		out := s.placeholder(contentType, clean)
		out.Disabled = true
		return out, nil
	}

	fp := cache.ContentFingerprint(string(contentType), clean)

	var hit cachedText
	if found, _ := s.cache.Get(ctx, cache.KindAIContent, fp, &hit); found {
		return &GeneratedContent{
			ContentType: contentType,
			Text:        hit.Text,
			ModelUsed:   spec.Model,
			Cached:      true,
		}, nil
	}

	callCtx, cancel := context.WithTimeout(ctx, s.cfg.GetGenerateTimeout())
	defer cancel()

	completion, err := s.provider.Complete(callCtx, spec.Model, renderTemplate(spec.Template, clean), spec.MaxTokens)
	if err != nil {
		s.log.GatewayFailure("text", "complete", err)
		return s.placeholder(contentType, clean), nil
	}

	s.cache.Put(context.WithoutCancel(ctx), cache.KindAIContent, fp, cachedText{Text: completion.Text})

	return &GeneratedContent{
		ContentType: contentType,
		Text:        completion.Text,
		ModelUsed:   spec.Model,
		TokensUsed:  completion.TokensUsed,
		CostUSD:     costUSD(spec.Model, completion.TokensUsed),
	}, nil
}

// EnhanceMany generates every requested type from a shared sanitized
// record. Types run concurrently and independently; one fallback never
// affects another. Results keep the order of the requested types.
func (s *Service) EnhanceMany(ctx context.Context, record map[string]any, types []ContentType) []GeneratedContent {
	record = sanitize.Record(record, reportSchema)
	results := make([]GeneratedContent, len(types))

	var wg sync.WaitGroup
	for i, contentType := range types {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := s.Generate(ctx, contentType, extractInput(record, contentType))
			if err != nil {
				out = s.placeholder(contentType, nil)
			}
			results[i] = *out
		}()
	}
	wg.Wait()

	return results
}

// costUSD prices a completion, failing open to the default price for
// models missing from the table.
func costUSD(model string, tokens int) float64 {
	price, ok := modelPricePerKTokens[model]
	if !ok {
		price = defaultPricePerKTokens
	}
	return float64(tokens) / 1000 * price
}

// placeholder synthesizes deterministic fallback text referencing known
// input fields so report assembly always has something to print.
func (s *Service) placeholder(contentType ContentType, input map[string]string) *GeneratedContent {
	place := firstNonEmpty(input, "city", "address", "region")

	var text string
	switch contentType {
	case TypeRouteDescription:
		if place != "" {
			text = fmt.Sprintf("The property is located near %s. Detailed route information is currently unavailable.", place)
		} else {
			text = "Detailed route information is currently unavailable for this property."
		}
	case TypeLocalityAnalysis:
		if place != "" {
			text = fmt.Sprintf("The property is situated in the %s area. A detailed locality analysis is currently unavailable.", place)
		} else {
			text = "A detailed locality analysis is currently unavailable for this property."
		}
	case TypeMarketAnalysis:
		if place != "" {
			text = fmt.Sprintf("Market conditions around %s could not be analyzed at this time.", place)
		} else {
			text = "A market analysis is currently unavailable for this property."
		}
	case TypeBuildingDescription:
		if pt := input["property_type"]; pt != "" {
			text = fmt.Sprintf("This is a %s property. A detailed building description is currently unavailable.", pt)
		} else {
			text = "A detailed building description is currently unavailable for this property."
		}
	default:
		text = "Automated review is currently unavailable for this report."
	}

	return &GeneratedContent{
		ContentType: contentType,
		Text:        text,
		ModelUsed:   FallbackModel,
	}
}

// sanitizeInput strips markup from every value and drops empty fields.
func sanitizeInput(input map[string]string) map[string]string {
	clean := make(map[string]string, len(input))
	for key, value := range input {
		if v := sanitize.Text(value); v != "" {
			clean[key] = v
		}
	}
	return clean
}

// extractInput pulls the fields a content type consumes out of the
// shared record, stringifying numbers the way reports print them.
func extractInput(record map[string]any, contentType ContentType) map[string]string {
	fields := batchInputFields[contentType]
	input := make(map[string]string, len(fields))
	for _, field := range fields {
		switch v := record[field].(type) {
		case string:
			input[field] = v
		case float64:
			input[field] = strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
		case int:
			input[field] = fmt.Sprintf("%d", v)
		}
	}
	return input
}

// renderTemplate substitutes {field} placeholders. Placeholders with no
// value render as "unknown" so prompts stay well formed.
func renderTemplate(tmpl string, input map[string]string) string {
	keys := make([]string, 0, len(input))
	for key := range input {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys)*2)
	for _, key := range keys {
		pairs = append(pairs, "{"+key+"}", input[key])
	}
	rendered := strings.NewReplacer(pairs...).Replace(tmpl)

	for {
		start := strings.Index(rendered, "{")
		if start < 0 {
			break
		}
		end := strings.Index(rendered[start:], "}")
		if end < 0 {
			break
		}
		rendered = rendered[:start] + "unknown" + rendered[start+end+1:]
	}
	return rendered
}

func firstNonEmpty(input map[string]string, keys ...string) string {
	for _, key := range keys {
		if v := input[key]; v != "" {
			return v
		}
	}
	return ""
}
