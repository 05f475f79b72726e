// Package http provides http transport for term statistics
package http

import (
	stdhttp "net/http"

	"khmerfold/internal/modkit/httpkit"
	"khmerfold/internal/platform/net/http/bind"
	svc "khmerfold/internal/services/api/termstats/service"
)

// Register mounts termstats endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/terms", h.terms)
	httpkit.Get(r, "/variants", h.variants)
}

type handlers struct{ svc svc.Service }

// @Summary Most frequent canonical terms
// @Tags Stats
// @Produce json
// @Param limit query int false "Rows to return (1-500)" default(20)
// @Success 200 {array} domain.TopTerm "ok"
// @Router /stats/terms [get]
func (h *handlers) terms(r *stdhttp.Request) (any, error) {
	limit, err := bind.QueryInt(r, "limit", 20, 1, 500)
	if err != nil {
		return nil, err
	}
	return h.svc.TopTerms(r.Context(), limit)
}

// @Summary Spellings folded into one canonical term
// @Tags Stats
// @Produce json
// @Param term query string true "Any spelling of a single cluster"
// @Success 200 {object} domain.VariantsOutput "ok"
// @Router /stats/variants [get]
func (h *handlers) variants(r *stdhttp.Request) (any, error) {
	term, err := bind.QueryString(r, "term")
	if err != nil {
		return nil, err
	}
	return h.svc.Variants(r.Context(), term)
}
