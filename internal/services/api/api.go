// Package api provides the HTTP API for the application
package api

import (
	"context"
	"fmt"

	"khmerfold/internal/core/analyzer"
	"khmerfold/internal/platform/config"
	"khmerfold/internal/platform/logger"
	phttp "khmerfold/internal/platform/net/http"
	"khmerfold/internal/platform/net/middleware"
	"khmerfold/internal/platform/store"

	"khmerfold/internal/modkit"
	"khmerfold/internal/modkit/httpkit"
	"khmerfold/internal/modkit/module"
	"khmerfold/internal/modkit/swaggerkit"

	analyzemod "khmerfold/internal/services/api/analyze/module"
	ixdomain "khmerfold/internal/services/api/index/domain"
	indexmod "khmerfold/internal/services/api/index/module"
	metamod "khmerfold/internal/services/api/meta/module"
	tsmod "khmerfold/internal/services/api/termstats/module"
)

// HealthPath answers load balancer probes outside the versioned api
const HealthPath = "/health"

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	Analyzer       *analyzer.Analyzer
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount builds every module the store supports and mounts them under /api/v1.
// It returns the mounted module names
func Mount(ctx context.Context, r phttp.Router, opt Options) ([]string, error) {
	log := opt.Logger
	if log == nil {
		log = logger.Named("api")
	}
	a := opt.Analyzer
	if a == nil {
		var err error
		if a, err = analyzer.New(); err != nil {
			return nil, err
		}
	}

	deps := modkit.Deps{Log: *log, Cfg: opt.Config, Analyzer: a}.FromStore(opt.Store)

	mods, err := build(ctx, deps)
	if err != nil {
		return nil, err
	}

	r.Use(middleware.Heartbeat(HealthPath))

	base := httpkit.APIPrefix("v1")
	stack := httpkit.CommonStack(httpkit.StackOptions{
		Timeout: opt.Config.MayDuration("HTTP_TIMEOUT", 0),
		Slow:    opt.Config.MayDuration("HTTP_SLOW", 0),
		Quiet:   []string{base + "/meta/health", base + "/meta/ready"},
		CORS: middleware.CORSOptions{
			AllowedOrigins: opt.Config.MayCSV("CORS_ORIGINS", nil),
		},
	})

	var names []string
	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		for _, m := range mods {
			module.RegisterModule(m)
		}
		names = modkit.MountAll(api, mods...)
	})
	swaggerkit.Mount(r, opt.Config, base, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	log.Info().Strs("modules", names).Str("level", a.Level().String()).Msg("api mounted")
	return names, nil
}

// build constructs the modules in dependency order: termstats before index,
// which records its terms through the termstats recorder
func build(ctx context.Context, deps modkit.Deps) ([]modkit.Module, error) {
	analyze, err := analyzemod.New(deps)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	mods := []modkit.Module{metamod.New(deps), analyze}

	var sink ixdomain.TermSink
	if deps.HasCH() {
		ts, err := tsmod.New(ctx, deps)
		if err != nil {
			return nil, fmt.Errorf("termstats: %w", err)
		}
		sink = module.MustPortsOf[tsmod.Ports](ts).Recorder
		mods = append(mods, ts)
	}

	if deps.HasPG() {
		var opts []modkit.Option
		if sink != nil {
			opts = append(opts, modkit.WithPorts(sink))
		}
		ix, err := indexmod.New(ctx, deps, opts...)
		if err != nil {
			return nil, fmt.Errorf("index: %w", err)
		}
		mods = append(mods, ix)
	}
	return mods, nil
}
