// Package http provides http transport for the analyze endpoints
package http

import (
	stdhttp "net/http"

	"khmerfold/internal/core/normalize"
	"khmerfold/internal/modkit/httpkit"
	"khmerfold/internal/platform/net/http/bind"
	"khmerfold/internal/services/api/analyze/domain"
	svc "khmerfold/internal/services/api/analyze/service"
)

// RegisterValidators adds the normlevel tag used by the request DTOs
func RegisterValidators() error {
	return bind.RegisterValidation("normlevel", func(fl bind.FieldLevel) bool {
		return normalize.Level(fl.Field().Int()).Valid()
	}, "{0} must be 0, 1 or 2")
}

// Register mounts analyze endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON(r, "/", h.analyze)
	httpkit.PostJSON(r, "/normalize", h.normalize)
	httpkit.PostJSON(r, "/segment", h.segment)
	httpkit.PostJSON(r, "/reorder", h.reorder)
}

type handlers struct{ svc svc.Service }

// @Summary Normalize, segment and reorder text into index terms
// @Tags Analyze
// @Accept json
// @Produce json
// @Param payload body domain.AnalyzeInput true "Text"
// @Success 200 {object} domain.AnalyzeOutput "ok"
// @Router /analyze [post]
func (h *handlers) analyze(r *stdhttp.Request, in domain.AnalyzeInput) (any, error) {
	return h.svc.Analyze(r.Context(), in)
}

// @Summary Apply the normalization rule tiers
// @Tags Analyze
// @Accept json
// @Produce json
// @Param payload body domain.NormalizeInput true "Text"
// @Success 200 {object} domain.NormalizeOutput "ok"
// @Router /analyze/normalize [post]
func (h *handlers) normalize(r *stdhttp.Request, in domain.NormalizeInput) (any, error) {
	return h.svc.Normalize(r.Context(), in)
}

// @Summary Split text into grapheme clusters
// @Tags Analyze
// @Accept json
// @Produce json
// @Param payload body domain.SegmentInput true "Text"
// @Success 200 {object} domain.SegmentOutput "ok"
// @Router /analyze/segment [post]
func (h *handlers) segment(r *stdhttp.Request, in domain.SegmentInput) (any, error) {
	return h.svc.Segment(r.Context(), in)
}

// @Summary Canonicalize clusters
// @Tags Analyze
// @Accept json
// @Produce json
// @Param payload body domain.ReorderInput true "Tokens"
// @Success 200 {object} domain.ReorderOutput "ok"
// @Router /analyze/reorder [post]
func (h *handlers) reorder(r *stdhttp.Request, in domain.ReorderInput) (any, error) {
	return h.svc.Reorder(r.Context(), in)
}
