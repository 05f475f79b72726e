// Package module wires term statistics into the API
package module

import (
	"context"

	"khmerfold/internal/core/analyzer"
	modkit "khmerfold/internal/modkit"
	"khmerfold/internal/modkit/httpkit"
	str "khmerfold/internal/platform/strings"
	"khmerfold/internal/services/api/termstats/domain"
	tshttp "khmerfold/internal/services/api/termstats/http"
	"khmerfold/internal/services/api/termstats/repo"
	"khmerfold/internal/services/api/termstats/service"
)

// Module implements modkit.Module
type Module struct {
	b   modkit.Built
	svc *service.Svc
}

// Ports is what termstats offers other modules
type Ports struct {
	Stats    domain.ServicePort
	Recorder domain.Recorder
}

// New builds the module over deps.CH and makes sure the event table exists
func New(ctx context.Context, deps modkit.Deps, opts ...modkit.Option) (modkit.Module, error) {
	if !deps.HasCH() {
		panic("termstats module requires clickhouse")
	}
	a := deps.Analyzer
	if a == nil {
		var err error
		if a, err = analyzer.New(); err != nil {
			return nil, err
		}
	}
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("termstats"),
		modkit.WithPrefix("/stats"),
	}, opts...)...)

	r := repo.NewCH(deps.CH)
	if err := r.Ensure(ctx); err != nil {
		return nil, err
	}
	b.Log.Info().Str("table", repo.Table).Msg("term event table ready")
	return &Module{b: b, svc: service.New(r, a)}, nil
}

// MountRoutes mounts the module under its prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { tshttp.Register(rr, m.svc) })
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.b.Name, "module name") }

// Ports exposes the stats service and its event recorder
func (m *Module) Ports() any { return Ports{Stats: m.svc, Recorder: m.svc} }
