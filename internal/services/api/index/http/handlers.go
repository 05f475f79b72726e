// Package http provides http transport for the term index
package http

import (
	stdhttp "net/http"

	"khmerfold/internal/modkit/httpkit"
	"khmerfold/internal/services/api/index/domain"
	svc "khmerfold/internal/services/api/index/service"
)

// Register mounts index endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON(r, "/documents", h.create)
	httpkit.Get(r, "/documents/{id}", h.get)
	httpkit.Delete(r, "/documents/{id}", h.remove)
	httpkit.PostJSON(r, "/search", h.search)
}

type handlers struct{ svc svc.Service }

// @Summary Analyze and store a document
// @Tags Index
// @Accept json
// @Produce json
// @Param body body domain.IndexInput true "Document"
// @Success 201 {object} domain.IndexOutput "created"
// @Failure 422 {object} net.Wire "no khmer terms"
// @Router /index/documents [post]
func (h *handlers) create(r *stdhttp.Request, in domain.IndexInput) (any, error) {
	out, err := h.svc.Index(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(out), nil
}

// @Summary Fetch a stored document with its postings
// @Tags Index
// @Produce json
// @Param id path string true "Document id"
// @Success 200 {object} domain.Document "ok"
// @Failure 404 {object} net.Wire "not found"
// @Router /index/documents/{id} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	return h.svc.Get(r.Context(), httpkit.URLParam(r, "id"))
}

// @Summary Delete a document
// @Tags Index
// @Param id path string true "Document id"
// @Success 204 "deleted"
// @Router /index/documents/{id} [delete]
func (h *handlers) remove(r *stdhttp.Request) (any, error) {
	if err := h.svc.Delete(r.Context(), httpkit.URLParam(r, "id")); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}

// @Summary Search documents by canonical term
// @Tags Index
// @Accept json
// @Produce json
// @Param body body domain.SearchInput true "Query"
// @Success 200 {object} domain.SearchOutput "ok"
// @Router /index/search [post]
func (h *handlers) search(r *stdhttp.Request, in domain.SearchInput) (any, error) {
	return h.svc.Search(r.Context(), in)
}
