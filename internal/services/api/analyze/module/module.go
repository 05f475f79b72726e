// Package module wires the analyze endpoints into the API
package module

import (
	"khmerfold/internal/core/analyzer"
	modkit "khmerfold/internal/modkit"
	"khmerfold/internal/modkit/httpkit"
	str "khmerfold/internal/platform/strings"
	"khmerfold/internal/services/api/analyze/domain"
	analyzehttp "khmerfold/internal/services/api/analyze/http"
	"khmerfold/internal/services/api/analyze/service"
)

// Module implements modkit.Module
type Module struct {
	b   modkit.Built
	svc *service.Svc
}

// Ports is what the analyze module offers other modules
type Ports struct {
	Analyze domain.ServicePort
}

// New constructs the analyze module. It needs deps.Analyzer, or builds one
// at the default level when that is nil
func New(deps modkit.Deps, opts ...modkit.Option) (modkit.Module, error) {
	a := deps.Analyzer
	if a == nil {
		var err error
		if a, err = analyzer.New(); err != nil {
			return nil, err
		}
	}
	svc, err := service.New(a)
	if err != nil {
		return nil, err
	}
	if err := analyzehttp.RegisterValidators(); err != nil {
		return nil, err
	}
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("analyze"),
		modkit.WithPrefix("/analyze"),
	}, opts...)...)
	b.Log.Debug().Str("level", a.Level().String()).Msg("analyze module ready")
	return &Module{b: b, svc: svc}, nil
}

// MountRoutes mounts the module under its prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { analyzehttp.Register(rr, m.svc) })
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.b.Name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.b.Prefix) }

// Ports exposes the analyze service
func (m *Module) Ports() any { return Ports{Analyze: m.svc} }
