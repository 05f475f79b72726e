// Package repo provides clickhouse access for term statistics
package repo

import (
	"context"
	_ "embed"

	"khmerfold/internal/modkit/repokit"
	perr "khmerfold/internal/platform/errors"
	"khmerfold/internal/platform/store"
	"khmerfold/internal/services/api/termstats/domain"
)

//go:embed schema.sql
var schema string

// Table is the event table name
const Table = "term_events"

// Repo is the persistence surface for term statistics
type Repo interface {
	Ensure(ctx context.Context) error
	Insert(ctx context.Context, events []domain.Event) error
	Top(ctx context.Context, limit int) ([]domain.TopTerm, error)
	Variants(ctx context.Context, term string) ([]domain.Variant, error)
}

type chRepo struct{ ch store.Clickhouse }

// NewCH binds the repo to a clickhouse seam
func NewCH(ch store.Clickhouse) Repo {
	if ch == nil {
		panic("termstats repo requires a non nil Clickhouse")
	}
	return &chRepo{ch: ch}
}

func (r *chRepo) Ensure(ctx context.Context) error {
	return repokit.EnsureSchema(ctx, "termstats", func(ctx context.Context, stmt string) error {
		return r.ch.Exec(ctx, stmt)
	}, schema)
}

func (r *chRepo) Insert(ctx context.Context, events []domain.Event) error {
	if len(events) == 0 {
		return nil
	}
	rows := make([][]any, 0, len(events))
	for _, e := range events {
		rows = append(rows, []any{
			e.At.UTC(), e.DocumentID, e.Term, e.Surface,
			uint32(e.Position), uint16(e.AnalyzerVersion),
		})
	}
	return perr.FromClickHouse(r.ch.InsertBatch(ctx, Table, rows), "insert term events")
}

func (r *chRepo) Top(ctx context.Context, limit int) ([]domain.TopTerm, error) {
	const sql = `
SELECT term, count() AS hits, uniqExact(document_id) AS documents
FROM term_events
GROUP BY term
ORDER BY hits DESC, term ASC
LIMIT ?`
	out, err := store.Many(ctx, r.ch, func(row store.Row) (domain.TopTerm, error) {
		var t domain.TopTerm
		err := row.Scan(&t.Term, &t.Hits, &t.Documents)
		return t, err
	}, sql, limit)
	return out, perr.FromClickHouse(err, "top terms")
}

func (r *chRepo) Variants(ctx context.Context, term string) ([]domain.Variant, error) {
	const sql = `
SELECT surface, count() AS hits
FROM term_events
WHERE term = ?
GROUP BY surface
ORDER BY hits DESC, surface ASC`
	out, err := store.Many(ctx, r.ch, func(row store.Row) (domain.Variant, error) {
		var v domain.Variant
		err := row.Scan(&v.Surface, &v.Hits)
		return v, err
	}, sql, term)
	return out, perr.FromClickHouse(err, "term variants")
}
