// @title         khmerfold API
// @version       1.0
// @description   Khmer text canonicalization for search indexing

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"khmerfold/internal/core/analyzer"
	"khmerfold/internal/core/normalize"
	"khmerfold/internal/platform/config"
	"khmerfold/internal/platform/logger"
	phttp "khmerfold/internal/platform/net/http"
	"khmerfold/internal/platform/store"

	"khmerfold/internal/services/api"
)

func main() {
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	level, err := normalize.ParseLevel(root.Prefix("CORE_ANALYZER_").MayString("LEVEL", normalize.DefaultLevel.String()))
	if err != nil {
		l.Panic().Err(err).Msg("bad CORE_ANALYZER_LEVEL")
	}
	a, err := analyzer.New(analyzer.WithLevel(level))
	if err != nil {
		l.Panic().Err(err).Msg("analyzer.New failed")
	}

	// both backends are optional; SERVICE_PGSQL_ENABLED and SERVICE_CLICKHOUSE_ENABLED
	st, err := store.Open(ctx, store.ConfigFrom(root, "api"), store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	srv := phttp.NewServer(apiCfg)
	if _, err := api.Mount(ctx, srv.Router(), api.Options{
		Config:         apiCfg,
		Store:          st,
		Logger:         l,
		Analyzer:       a,
		EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
	}); err != nil {
		l.Panic().Err(err).Msg("api.Mount failed")
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Run(ctx) }()

	select {
	case err := <-errc:
		if err != nil {
			l.Error().Err(err).Msg("http server stopped")
		}
	case <-ctx.Done():
		l.Info().Msg("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), apiCfg.MayDuration("SHUTDOWN_TIMEOUT", 15*time.Second))
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			l.Error().Err(err).Msg("graceful shutdown failed")
		}
	}
}
