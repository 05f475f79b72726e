// Package module wires the term index into the API
package module

import (
	"context"
	"time"

	"khmerfold/internal/core/analyzer"
	modkit "khmerfold/internal/modkit"
	"khmerfold/internal/modkit/httpkit"
	"khmerfold/internal/modkit/repokit"
	str "khmerfold/internal/platform/strings"
	"khmerfold/internal/services/api/index/domain"
	ixhttp "khmerfold/internal/services/api/index/http"
	"khmerfold/internal/services/api/index/repo"
	"khmerfold/internal/services/api/index/service"
)

// DefaultStatementTimeout bounds each statement of an index transaction
const DefaultStatementTimeout = 5 * time.Second

// Module implements modkit.Module
type Module struct {
	b   modkit.Built
	svc *service.Svc
}

// Ports is what the index offers other modules
type Ports struct {
	Index domain.ServicePort
}

// New builds the module over deps.PG and makes sure the schema exists.
// A domain.TermSink passed with modkit.WithPorts receives document terms
func New(ctx context.Context, deps modkit.Deps, opts ...modkit.Option) (modkit.Module, error) {
	if !deps.HasPG() {
		panic("index module requires postgres")
	}
	a := deps.Analyzer
	if a == nil {
		var err error
		if a, err = analyzer.New(); err != nil {
			return nil, err
		}
	}
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("index"),
		modkit.WithPrefix("/index"),
	}, opts...)...)

	if err := repo.Ensure(ctx, deps.PG); err != nil {
		return nil, err
	}

	timeout := deps.Cfg.MayDuration("INDEX_STMT_TIMEOUT", DefaultStatementTimeout)
	db := repokit.WithBeginHooks(deps.PG, repokit.StatementTimeout(timeout))

	sopts := []service.Option{service.WithLogger(b.Log)}
	if sink, ok := b.Ports.(domain.TermSink); ok && sink != nil {
		sopts = append(sopts, service.WithSink(sink))
	}
	b.Log.Info().
		Dur("statement_timeout", timeout).
		Bool("term_events", len(sopts) > 1).
		Msg("index ready")

	return &Module{b: b, svc: service.New(db, repo.NewPG(), a, sopts...)}, nil
}

// MountRoutes mounts the module under its prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { ixhttp.Register(rr, m.svc) })
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.b.Name, "module name") }

// Ports exposes the index service
func (m *Module) Ports() any { return Ports{Index: m.svc} }
