package store

import (
	"context"
	"fmt"
	"time"

	"khmerfold/internal/platform/store/ch"
	"khmerfold/internal/platform/store/pg"
)

const (
	defaultRetries = 20
	defaultPingTO  = 3 * time.Second
	backoffStart   = 150 * time.Millisecond
	backoffCeiling = 2 * time.Second
)

// sleep is a seam so tests do not wait out the backoff
var sleep = func(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// waitReady pings until it succeeds, attempts run out or ctx ends
func waitReady(ctx context.Context, attempts int, timeout time.Duration, ping func(context.Context) error) error {
	if attempts <= 0 {
		attempts = defaultRetries
	}
	if timeout <= 0 {
		timeout = defaultPingTO
	}
	var last error
	backoff := backoffStart
	for range attempts {
		pctx, cancel := context.WithTimeout(ctx, timeout)
		last = ping(pctx)
		cancel()
		if last == nil {
			return nil
		}
		if err := sleep(ctx, backoff); err != nil {
			return err
		}
		backoff = min(backoff*2, backoffCeiling)
	}
	return fmt.Errorf("ping failed after %d attempts: %w", attempts, last)
}

// openPG opens the pool and publishes the adapter once it answers
func openPG(ctx context.Context, cfg PGConfig, s *Store) (*pgAdapter, error) {
	var tracer pg.QueryTracer
	if cfg.LogSQL {
		tracer = pg.Tracer(s.Log)
	}
	p, err := pg.Open(ctx, pg.Config{
		URL:      cfg.URL,
		MaxConns: cfg.MaxConns,
		SlowMs:   cfg.SlowQueryMs,
	}, tracer, nil)
	if err != nil {
		return nil, err
	}
	// ping the pool directly so the retry loop stays out of the SQL trace
	if err := waitReady(ctx, cfg.ConnectRetries, cfg.PingTimeout, p.Pool.Ping); err != nil {
		p.Close()
		return nil, err
	}
	s.Log.Info().Int32("max_conns", cfg.MaxConns).Msg("postgres ready")
	return newPGAdapter(p), nil
}

func openCH(ctx context.Context, cfg CHConfig, s *Store) (*clickhouseAdapter, error) {
	c, err := ch.Open(ctx, ch.Config{
		URL:          cfg.URL,
		MaxOpenConns: cfg.MaxOpenConns,
		ClientName:   cfg.ClientName,
		ClientTag:    cfg.ClientTag,
	})
	if err != nil {
		return nil, err
	}
	if err := waitReady(ctx, cfg.ConnectRetries, cfg.PingTimeout, c.Ping); err != nil {
		_ = c.Close()
		return nil, err
	}
	s.Log.Info().Str("client", cfg.ClientTag).Msg("clickhouse ready")
	return newCHAdapter(c), nil
}
