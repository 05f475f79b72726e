// Package module wires meta endpoints into the API
package module

import (
	"time"

	"khmerfold/internal/core/normalize"
	modkit "khmerfold/internal/modkit"
	"khmerfold/internal/modkit/httpkit"
	mod "khmerfold/internal/modkit/module"
	str "khmerfold/internal/platform/strings"
	metahttp "khmerfold/internal/services/api/meta/http"
)

// ServiceName is reported by the health and service endpoints
const ServiceName = "khmerfold-api"

// Module implements modkit.Module
type Module struct {
	b    modkit.Built
	deps metahttp.Deps
}

// New constructs the meta module. Readiness checks deps.Store and the
// module list comes from the port registry
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	level := normalize.DefaultLevel
	if deps.Analyzer != nil {
		level = deps.Analyzer.Level()
	}
	d := metahttp.Deps{
		ServiceName: ServiceName,
		StartedAt:   time.Now(),
		Level:       level,
		Modules:     mod.Names,
	}
	if deps.Store != nil {
		d.Store = deps.Store
	}
	return &Module{b: b, deps: d}
}

// MountRoutes mounts the module under its prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { metahttp.Register(rr, m.deps) })
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.b.Name, "meta") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.b.Prefix) }

// Ports implements modkit.Module; meta offers none
func (m *Module) Ports() any { return nil }
