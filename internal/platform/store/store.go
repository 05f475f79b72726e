// Package store opens the optional Postgres and ClickHouse backends behind small seams
package store

import (
	"context"
	"errors"
	"fmt"

	"khmerfold/internal/platform/logger"
)

// Store holds whichever backends were enabled; nil seams are disabled
type Store struct {
	Log logger.Logger

	// PG is the term index database
	PG TxRunner

	// CH is the term event warehouse
	CH Clickhouse
}

// Row is the single row scan contract
type Row interface {
	Scan(dest ...any) error
}

// Rows is result set iteration
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
	Columns() []string
}

// CommandTag reports what a write touched
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// Querier runs selects; both backends satisfy it
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
}

// RowQuerier is the sql surface repos use
type RowQuerier interface {
	Querier
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner runs fn inside one transaction, rolling back when it errors
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Clickhouse is the columnar seam: DDL, batched appends and selects
type Clickhouse interface {
	Querier
	Exec(ctx context.Context, sql string, args ...any) error
	InsertBatch(ctx context.Context, table string, rows [][]any) error
	Close() error
}

// Pinger is any seam that can report readiness
type Pinger interface{ Ping(context.Context) error }

// Open brings up every backend enabled in cfg, pinging each before returning
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{Log: *logger.Named("store")}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}

	if cfg.PG.Enabled {
		pg, err := openPG(ctx, cfg.PG, s)
		if err != nil {
			return nil, fmt.Errorf("pg: %w", err)
		}
		s.PG = pg
	}

	if cfg.CH.Enabled {
		c, err := openCH(ctx, cfg.CH, s)
		if err != nil {
			_ = s.Close(ctx)
			return nil, fmt.Errorf("ch: %w", err)
		}
		s.CH = c
	}

	return s, nil
}

// Check pings every enabled backend and reports per backend status:
// "ok", "skipped" or the error text
func (s *Store) Check(ctx context.Context) (map[string]string, error) {
	out := map[string]string{"pg": "skipped", "ch": "skipped"}
	if s == nil {
		return out, errors.New("nil store")
	}
	var errs []error
	probe := func(name string, seam any) {
		if seam == nil {
			return
		}
		p, ok := seam.(Pinger)
		if !ok {
			out[name] = "ok"
			return
		}
		if err := p.Ping(ctx); err != nil {
			out[name] = err.Error()
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			return
		}
		out[name] = "ok"
	}
	if s.PG != nil {
		probe("pg", s.PG)
	}
	if s.CH != nil {
		probe("ch", s.CH)
	}
	return out, errors.Join(errs...)
}

// Guard fails when any enabled backend does not answer
func (s *Store) Guard(ctx context.Context) error {
	_, err := s.Check(ctx)
	return err
}

// Close closes all opened backends
func (s *Store) Close(_ context.Context) error {
	if s == nil {
		return nil
	}
	var errs []error
	if s.CH != nil {
		errs = append(errs, s.CH.Close())
	}
	if c, ok := s.PG.(interface{ Close() error }); ok {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
