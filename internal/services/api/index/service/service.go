// Package service contains the index workflows: store, fetch, delete, search
package service

import (
	"context"
	"time"

	"khmerfold/internal/core/analyzer"
	"khmerfold/internal/core/normalize"
	"khmerfold/internal/core/version"
	"khmerfold/internal/modkit/repokit"
	perr "khmerfold/internal/platform/errors"
	"khmerfold/internal/platform/logger"
	pstrings "khmerfold/internal/platform/strings"
	"khmerfold/internal/services/api/index/domain"
	"khmerfold/internal/services/api/index/repo"
	tsdomain "khmerfold/internal/services/api/termstats/domain"

	"github.com/google/uuid"
)

const (
	defaultLimit = 10
	snippetLen   = 80
	maxAttempts  = 3
)

// Service defines the index service contract
type Service interface {
	domain.ServicePort
}

// Svc implements Service
type Svc struct {
	Repo     repo.Repo
	binder   repokit.Binder[repo.Repo]
	db       repokit.TxRunner
	analyzer *analyzer.Analyzer
	sink     domain.TermSink
	log      logger.Logger

	// seams for tests
	newID func() uuid.UUID
	now   func() time.Time
	sleep func(context.Context, time.Duration) error
}

var _ Service = (*Svc)(nil)

// Option tunes a Svc
type Option func(*Svc)

// WithSink forwards the terms of stored documents; failures are only logged
func WithSink(s domain.TermSink) Option { return func(x *Svc) { x.sink = s } }

// WithLogger sets the service logger
func WithLogger(l logger.Logger) Option { return func(x *Svc) { x.log = l } }

// New constructs an index service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], a *analyzer.Analyzer, opts ...Option) *Svc {
	if db == nil {
		panic("index.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("index.Service requires a non nil Repo binder")
	}
	if a == nil {
		panic("index.Service requires a non nil Analyzer")
	}
	s := &Svc{
		Repo:     repokit.MustBind(binder, db),
		binder:   binder,
		db:       db,
		analyzer: a,
		log:      *logger.Named("index"),
		newID:    uuid.New,
		now:      time.Now,
		sleep:    sleepCtx,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Index analyzes in.Text and stores the document with its postings in one tx
func (s *Svc) Index(ctx context.Context, in domain.IndexInput) (domain.IndexOutput, error) {
	text := normalize.Sanitize(in.Text)
	res := s.analyzer.Analyze(text)
	if len(res.Terms) == 0 {
		return domain.IndexOutput{}, perr.WithField(perr.InvalidArgf("text has no clusters to index"), "text")
	}

	doc := repo.Document{
		ID:              s.newID().String(),
		Title:           normalize.Sanitize(in.Title),
		Body:            text,
		Normalized:      res.Normalized,
		Level:           int(s.analyzer.Level()),
		AnalyzerVersion: version.Analyzer,
		TermCount:       len(res.Terms),
	}
	postings := make([]repo.Posting, 0, len(res.Terms))
	for _, t := range res.Terms {
		postings = append(postings, repo.Posting{
			Term:        t.Text,
			Surface:     t.Surface,
			Position:    t.Position,
			SourceStart: t.SourceStart,
			SourceEnd:   t.SourceEnd,
		})
	}

	err := s.retry(ctx, func() error {
		return repokit.WithTx(ctx, s.db, s.binder, func(r repo.Repo) error {
			if err := r.InsertDocument(ctx, doc); err != nil {
				return err
			}
			return r.InsertPostings(ctx, doc.ID, postings)
		})
	})
	if err != nil {
		return domain.IndexOutput{}, err
	}

	s.record(ctx, doc.ID, res.Terms)

	return domain.IndexOutput{
		ID:              doc.ID,
		Terms:           doc.TermCount,
		Level:           s.analyzer.Level().String(),
		AnalyzerVersion: doc.AnalyzerVersion,
	}, nil
}

// record hands the terms to the sink; the document is already committed
func (s *Svc) record(ctx context.Context, docID string, terms []analyzer.Term) {
	if s.sink == nil {
		return
	}
	at := s.now().UTC()
	events := make([]tsdomain.Event, 0, len(terms))
	for _, t := range terms {
		events = append(events, tsdomain.Event{
			At:              at,
			DocumentID:      docID,
			Term:            t.Text,
			Surface:         t.Surface,
			Position:        t.Position,
			AnalyzerVersion: version.Analyzer,
		})
	}
	if err := s.sink.Record(ctx, events); err != nil {
		s.log.Warn().Err(err).Str("document_id", docID).Int("events", len(events)).Msg("term events dropped")
	}
}

// Get returns a document with its postings
func (s *Svc) Get(ctx context.Context, id string) (domain.Document, error) {
	uid, err := parseID(id)
	if err != nil {
		return domain.Document{}, err
	}
	d, err := s.Repo.GetDocument(ctx, uid)
	if err != nil {
		return domain.Document{}, err
	}
	ps, err := s.Repo.Postings(ctx, uid)
	if err != nil {
		return domain.Document{}, err
	}
	out := domain.Document{
		ID:              d.ID,
		Title:           d.Title,
		Text:            d.Body,
		Normalized:      d.Normalized,
		Level:           normalize.Level(d.Level).String(),
		AnalyzerVersion: d.AnalyzerVersion,
		TermCount:       d.TermCount,
		CreatedAt:       d.CreatedAt,
		Postings:        make([]domain.Posting, 0, len(ps)),
	}
	for _, p := range ps {
		out.Postings = append(out.Postings, domain.Posting(p))
	}
	return out, nil
}

// Delete removes a document; postings cascade
func (s *Svc) Delete(ctx context.Context, id string) error {
	uid, err := parseID(id)
	if err != nil {
		return err
	}
	return s.Repo.DeleteDocument(ctx, uid)
}

// Search canonicalizes the query and ranks documents by matched terms
func (s *Svc) Search(ctx context.Context, in domain.SearchInput) (domain.SearchOutput, error) {
	terms := dedupe(s.analyzer.Canonical(normalize.Sanitize(in.Query)))
	if len(terms) == 0 {
		return domain.SearchOutput{}, perr.WithField(perr.InvalidArgf("query has no clusters"), "query")
	}
	mode := in.Mode
	if mode == "" {
		mode = domain.ModeAll
	}
	limit := in.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	minMatch := 1
	if mode == domain.ModeAll {
		minMatch = len(terms)
	}

	rows, err := s.Repo.Search(ctx, terms, minMatch, limit)
	if err != nil {
		return domain.SearchOutput{}, err
	}
	out := domain.SearchOutput{Terms: terms, Mode: mode, Hits: make([]domain.Hit, 0, len(rows))}
	for _, h := range rows {
		out.Hits = append(out.Hits, domain.Hit{
			ID:      h.ID,
			Title:   h.Title,
			Snippet: pstrings.Clip(h.Body, snippetLen),
			Matched: h.Matched,
			Hits:    h.Hits,
		})
	}
	return out, nil
}

// retry reruns fn while it fails with serialization or overload errors
func (s *Svc) retry(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err = fn(); err == nil || !perr.Retryable(err) {
			return err
		}
		if attempt == maxAttempts {
			break
		}
		s.log.Debug().Err(err).Int("attempt", attempt).Msg("retrying index tx")
		if serr := s.sleep(ctx, time.Duration(attempt)*50*time.Millisecond); serr != nil {
			return serr
		}
	}
	return err
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func parseID(id string) (string, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", perr.WithField(perr.InvalidArgf("id must be a uuid"), "id")
	}
	return u.String(), nil
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
