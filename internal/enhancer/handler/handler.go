package handler

import (
	"net/http"

	"geoinsight_backend/internal/enhancer/service"
	"geoinsight_backend/internal/enhancer/transport"
	"geoinsight_backend/platform/httpkit"
	"geoinsight_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/generate", h.Generate)
	rg.POST("/batch", h.Batch)
}

func (h *Handler) Generate(c *gin.Context) {
	var req transport.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Generate(c.Request.Context(), service.ContentType(req.ContentType), req.Input)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

func (h *Handler) Batch(c *gin.Context) {
	var req transport.BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	types := make([]service.ContentType, len(req.ContentTypes))
	for i, t := range req.ContentTypes {
		types[i] = service.ContentType(t)
	}

	results := h.svc.EnhanceMany(c.Request.Context(), req.Record, types)
	httpkit.OK(c, results)
}
