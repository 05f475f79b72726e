// Package http provides meta endpoints
package http

import (
	"context"
	"net/http"
	"slices"
	"time"

	"khmerfold/internal/core/normalize"
	"khmerfold/internal/core/rulepack"
	"khmerfold/internal/core/version"
	"khmerfold/internal/modkit/httpkit"
)

// readyTimeout bounds the backend pings of one readiness probe
const readyTimeout = 2 * time.Second

// Checker reports per backend status: "ok", "skipped" or an error text
type Checker interface {
	Check(ctx context.Context) (map[string]string, error)
}

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Level       normalize.Level
	Store       Checker
	Modules     func() []string

	// Now defaults to time.Now
	Now func() time.Time
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	if d.Now == nil {
		d.Now = time.Now
	}
	h := &handlers{deps: d}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
	httpkit.Get(r, "/analyzer", h.analyzer)
}

// HealthResponse is the liveness payload
type HealthResponse struct {
	OK      bool   `json:"ok"      example:"true"`
	Service string `json:"service" example:"khmerfold-api"`
	Started string `json:"started" example:"2026-10-19T08:00:00Z"`
	Now     string `json:"now"     example:"2026-10-19T08:05:00Z"`
}

// ReadyCheck is one backend probe
type ReadyCheck struct {
	Name   string `json:"name"            example:"pg"`
	Status string `json:"status"          example:"ok"` // ok fail skipped
	Error  string `json:"error,omitempty" example:"dial tcp 127.0.0.1:5432: connect: connection refused"`
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"` // ok degraded fail
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2026-10-19T08:05:00Z"`
}

// ServiceResponse describes the running process
type ServiceResponse struct {
	Name    string   `json:"name"    example:"khmerfold-api"`
	Started string   `json:"started" example:"2026-10-19T08:00:00Z"`
	Uptime  int64    `json:"uptime"  example:"300"`
	Modules []string `json:"modules"`
}

// AnalyzerResponse reports the canonicalization behavior terms were built with
type AnalyzerResponse struct {
	AnalyzerVersion int               `json:"analyzer_version" example:"1"`
	Level           string            `json:"level"            example:"standard"`
	MaxLevel        int               `json:"max_level"        example:"2"`
	Build           version.BuildInfo `json:"build"`
}

// @Summary Liveness
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse "ok"
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Now:     h.deps.Now().UTC().Format(time.RFC3339),
	}, nil
}

// @Summary Readiness with backend checks
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse "ok"
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	status := map[string]string{"pg": "skipped", "ch": "skipped"}
	if h.deps.Store != nil {
		// per backend failures are already in the map
		status, _ = h.deps.Store.Check(ctx)
	}
	return summarize(status, h.deps.Now()), nil
}

// summarize folds backend statuses: fail when every enabled backend fails,
// degraded when only some do, ok otherwise. Disabled backends never count
func summarize(status map[string]string, now time.Time) ReadyResponse {
	names := make([]string, 0, len(status))
	for k := range status {
		names = append(names, k)
	}
	slices.Sort(names)

	checks := make([]ReadyCheck, 0, len(names))
	enabled, failed := 0, 0
	for _, n := range names {
		c := ReadyCheck{Name: n, Status: status[n]}
		switch c.Status {
		case "skipped":
		case "ok":
			enabled++
		default:
			enabled++
			failed++
			c.Error, c.Status = c.Status, "fail"
		}
		checks = append(checks, c)
	}

	overall := "ok"
	switch {
	case failed > 0 && failed == enabled:
		overall = "fail"
	case failed > 0:
		overall = "degraded"
	}
	return ReadyResponse{Status: overall, Checks: checks, Now: now.UTC().Format(time.RFC3339)}
}

// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo "ok"
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

// @Summary Service info, uptime and mounted modules
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse "ok"
// @Router /meta/service [get]
func (h *handlers) service(_ *http.Request) (any, error) {
	mods := []string{}
	if h.deps.Modules != nil {
		mods = h.deps.Modules()
	}
	return ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(h.deps.Now().Sub(h.deps.StartedAt) / time.Second),
		Modules: mods,
	}, nil
}

// @Summary Analyzer version and default level
// @Tags Meta
// @Produce json
// @Success 200 {object} AnalyzerResponse "ok"
// @Router /meta/analyzer [get]
func (h *handlers) analyzer(_ *http.Request) (any, error) {
	return AnalyzerResponse{
		AnalyzerVersion: version.Analyzer,
		Level:           h.deps.Level.String(),
		MaxLevel:        rulepack.MaxLevel,
		Build:           version.Info(),
	}, nil
}
