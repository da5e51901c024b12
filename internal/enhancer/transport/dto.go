// Package transport defines the request shapes for the content
// generation endpoints.
package transport

// GenerateRequest is the body of POST /api/v1/content/generate.
type GenerateRequest struct {
	ContentType string            `json:"content_type" validate:"required,min=1,max=64"`
	Input       map[string]string `json:"input" validate:"required"`
}

// BatchRequest is the body of POST /api/v1/content/batch. Record is the
// shared report record the per-type inputs are extracted from.
type BatchRequest struct {
	Record       map[string]any `json:"record" validate:"required"`
	ContentTypes []string       `json:"content_types" validate:"required,min=1,max=10,dive,min=1,max=64"`
}
