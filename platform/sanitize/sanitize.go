// Package sanitize provides text sanitization utilities to prevent XSS attacks,
// plus coercion of loosely-typed record fields before they enter the pipeline.
package sanitize

import (
	"math"
	"strconv"
	"strings"
)

// maxStripPasses bounds the strip/decode fixpoint loop; entity-encoded
// tags cannot nest deeper than this in practice.
const maxStripPasses = 5

// StripHTML removes all tag-like constructs from a string, including nested
// and malformed tag attempts, making it safe for text-only display.
// This is a defense-in-depth measure; frontend should also escape output.
func StripHTML(s string) string {
	result := s
	for i := 0; i < maxStripPasses; i++ {
		stripped := stripTags(result)
		stripped = decodeEntities(stripped)
		if stripped == result {
			break
		}
		result = stripped
	}
	return strings.TrimSpace(stripTags(result))
}

// stripTags drops every character inside angle brackets, tracking nesting
// depth so constructs like "<<script>...>" do not leak inner text.
func stripTags(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	depth := 0
	for _, r := range s {
		switch {
		case r == '<':
			depth++
		case r == '>':
			if depth > 0 {
				depth--
			} else {
				b.WriteRune(r)
			}
		case depth == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func decodeEntities(s string) string {
	s = strings.ReplaceAll(s, "&lt;", "<")
	s = strings.ReplaceAll(s, "&gt;", ">")
	s = strings.ReplaceAll(s, "&amp;", "&")
	s = strings.ReplaceAll(s, "&quot;", "\"")
	s = strings.ReplaceAll(s, "&#39;", "'")
	return s
}

// Text sanitizes a string for safe text storage by stripping markup.
// Use for user-provided text fields like descriptions, notes, and comments.
func Text(s string) string {
	return StripHTML(s)
}

// TextPtr is a helper for optional string pointers
func TextPtr(s *string) *string {
	if s == nil {
		return nil
	}
	result := Text(*s)
	return &result
}

// FieldKind declares the expected type of a record field.
type FieldKind int

const (
	// FieldString is a free-text field, sanitized with StripHTML.
	FieldString FieldKind = iota
	// FieldNumber is a numeric field; numeric strings are parsed, anything
	// unparseable is omitted. The output never contains NaN or a string
	// where a number is expected.
	FieldNumber
	// FieldStringList is a list of strings; empty and markup-only elements
	// are dropped.
	FieldStringList
)

// Schema maps known field names to their expected kind. Fields not present
// in the schema are dropped, not passed through.
type Schema map[string]FieldKind

// Record cleans a loosely-typed record against the schema. A nil record
// yields an empty result, not an error.
func Record(raw map[string]any, schema Schema) map[string]any {
	clean := make(map[string]any, len(schema))
	if raw == nil {
		return clean
	}

	for name, kind := range schema {
		value, ok := raw[name]
		if !ok || value == nil {
			continue
		}

		switch kind {
		case FieldString:
			if s, ok := coerceString(value); ok {
				clean[name] = StripHTML(s)
			}
		case FieldNumber:
			if n, ok := coerceNumber(value); ok {
				clean[name] = n
			}
		case FieldStringList:
			if list, ok := coerceStringList(value); ok && len(list) > 0 {
				clean[name] = list
			}
		}
	}

	return clean
}

func coerceString(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return "", false
	}
}

func coerceNumber(value any) (float64, bool) {
	var n float64
	switch v := value.(type) {
	case float64:
		n = v
	case float32:
		n = float64(v)
	case int:
		n = float64(v)
	case int64:
		n = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		n = parsed
	default:
		return 0, false
	}

	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func coerceStringList(value any) ([]string, bool) {
	var items []any
	switch v := value.(type) {
	case []any:
		items = v
	case []string:
		items = make([]any, len(v))
		for i, s := range v {
			items[i] = s
		}
	default:
		return nil, false
	}

	list := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := coerceString(item)
		if !ok {
			continue
		}
		cleaned := StripHTML(s)
		if cleaned == "" {
			continue
		}
		list = append(list, cleaned)
	}
	return list, true
}
