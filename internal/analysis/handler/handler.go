package handler

import (
	"net/http"

	"geoinsight_backend/internal/analysis/service"
	"geoinsight_backend/internal/analysis/transport"
	"geoinsight_backend/platform/geomath"
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
	rg.POST("", h.Analyze)
}

func (h *Handler) Analyze(c *gin.Context) {
	var req transport.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Analyze(c.Request.Context(), service.AnalyzeParams{
		Origin:       geomath.Coordinate{Lat: *req.Latitude, Lng: *req.Longitude},
		RadiusMeters: req.RadiusM,
		Categories:   req.Categories,
		MajorOnly:    req.MajorOnly,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}
