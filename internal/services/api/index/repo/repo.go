// Package repo provides postgres access for the term index
package repo

import (
	"context"
	_ "embed"
	"time"

	"khmerfold/internal/modkit/repokit"
	perr "khmerfold/internal/platform/errors"
	"khmerfold/internal/platform/store"
)

//go:embed schema.sql
var schema string

// Repo is the persistence surface for the index
type Repo interface {
	InsertDocument(ctx context.Context, d Document) error
	InsertPostings(ctx context.Context, docID string, ps []Posting) error
	GetDocument(ctx context.Context, id string) (Document, error)
	Postings(ctx context.Context, id string) ([]Posting, error)
	DeleteDocument(ctx context.Context, id string) error
	Search(ctx context.Context, terms []string, minMatch, limit int) ([]Hit, error)
}

// Document is a documents row
type Document struct {
	ID              string
	Title           string
	Body            string
	Normalized      string
	Level           int
	AnalyzerVersion int
	TermCount       int
	CreatedAt       time.Time
}

// Posting is a postings row
type Posting struct {
	Term        string
	Surface     string
	Position    int
	SourceStart int
	SourceEnd   int
}

// Hit is a ranked search row; Body holds the first 200 characters
type Hit struct {
	ID      string
	Title   string
	Body    string
	Matched int
	Hits    int
}

type (
	// PG binds the repo to a Queryer or TxRunner
	PG struct{}
	// queries implements Repo
	queries struct{ q repokit.Queryer }
)

// NewPG returns the postgres binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

// Ensure creates the tables and indexes when missing
func Ensure(ctx context.Context, q repokit.Queryer) error {
	return repokit.EnsureSchema(ctx, "index", func(ctx context.Context, stmt string) error {
		_, err := q.Exec(ctx, stmt)
		return err
	}, schema)
}

// dbErr keeps already classified errors and maps raw driver ones
func dbErr(err error, msg string) error {
	if err == nil {
		return nil
	}
	if _, ok := perr.As(err); ok {
		return err
	}
	return perr.FromPostgres(err, msg)
}

func (r *queries) InsertDocument(ctx context.Context, d Document) error {
	const sql = `
insert into documents (id, title, body, normalized, level, analyzer_version, term_count)
values ($1::uuid, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, sql, d.ID, d.Title, d.Body, d.Normalized, d.Level, d.AnalyzerVersion, d.TermCount)
	return dbErr(err, "insert document")
}

func (r *queries) InsertPostings(ctx context.Context, docID string, ps []Posting) error {
	if len(ps) == 0 {
		return nil
	}
	// one round trip: parallel arrays expanded by unnest
	const sql = `
insert into postings (document_id, position, term, surface, source_start, source_end)
select $1::uuid, u.position, u.term, u.surface, u.source_start, u.source_end
from unnest($2::int[], $3::text[], $4::text[], $5::int[], $6::int[])
  as u(position, term, surface, source_start, source_end)`
	n := len(ps)
	pos, start, end := make([]int32, n), make([]int32, n), make([]int32, n)
	terms, surfaces := make([]string, n), make([]string, n)
	for i, p := range ps {
		pos[i], start[i], end[i] = int32(p.Position), int32(p.SourceStart), int32(p.SourceEnd)
		terms[i], surfaces[i] = p.Term, p.Surface
	}
	_, err := r.q.Exec(ctx, sql, docID, pos, terms, surfaces, start, end)
	return dbErr(err, "insert postings")
}

func (r *queries) GetDocument(ctx context.Context, id string) (Document, error) {
	const sql = `
select id::text, title, body, normalized, level, analyzer_version, term_count, created_at
from documents
where id = $1::uuid`
	d, err := store.One(ctx, r.q, func(row store.Row) (Document, error) {
		var d Document
		err := row.Scan(&d.ID, &d.Title, &d.Body, &d.Normalized, &d.Level, &d.AnalyzerVersion, &d.TermCount, &d.CreatedAt)
		return d, err
	}, sql, id)
	return d, dbErr(err, "get document")
}

func (r *queries) Postings(ctx context.Context, id string) ([]Posting, error) {
	const sql = `
select term, surface, position, source_start, source_end
from postings
where document_id = $1::uuid
order by position`
	out, err := store.Many(ctx, r.q, func(row store.Row) (Posting, error) {
		var p Posting
		err := row.Scan(&p.Term, &p.Surface, &p.Position, &p.SourceStart, &p.SourceEnd)
		return p, err
	}, sql, id)
	return out, dbErr(err, "list postings")
}

func (r *queries) DeleteDocument(ctx context.Context, id string) error {
	return dbErr(store.ExecOne(ctx, r.q, `delete from documents where id = $1::uuid`, id), "delete document")
}

func (r *queries) Search(ctx context.Context, terms []string, minMatch, limit int) ([]Hit, error) {
	const sql = `
select d.id::text, d.title, left(d.body, 200),
       count(distinct p.term)::int as matched,
       count(*)::int as hits
from postings p
join documents d on d.id = p.document_id
where p.term = any($1::text[])
group by d.id
having count(distinct p.term) >= $2
order by matched desc, hits desc, d.created_at desc
limit $3`
	out, err := store.Many(ctx, r.q, func(row store.Row) (Hit, error) {
		var h Hit
		err := row.Scan(&h.ID, &h.Title, &h.Body, &h.Matched, &h.Hits)
		return h, err
	}, sql, terms, minMatch, limit)
	return out, dbErr(err, "search")
}
