// Package service contains term statistics workflows
package service

import (
	"context"

	"khmerfold/internal/core/analyzer"
	perr "khmerfold/internal/platform/errors"
	"khmerfold/internal/services/api/termstats/domain"
	"khmerfold/internal/services/api/termstats/repo"
)

// Service defines the termstats service contract
type Service interface {
	domain.ServicePort
}

// Svc implements Service
type Svc struct {
	Repo     repo.Repo
	analyzer *analyzer.Analyzer
}

var _ Service = (*Svc)(nil)

// New constructs a termstats service; a canonicalizes variant lookups
func New(r repo.Repo, a *analyzer.Analyzer) *Svc {
	if r == nil {
		panic("termstats.Service requires a non nil Repo")
	}
	if a == nil {
		panic("termstats.Service requires a non nil Analyzer")
	}
	return &Svc{Repo: r, analyzer: a}
}

// Record appends events in one batch
func (s *Svc) Record(ctx context.Context, events []domain.Event) error {
	return s.Repo.Insert(ctx, events)
}

// TopTerms returns the most frequent canonical terms
func (s *Svc) TopTerms(ctx context.Context, limit int) ([]domain.TopTerm, error) {
	out, err := s.Repo.Top(ctx, limit)
	if out == nil && err == nil {
		out = []domain.TopTerm{}
	}
	return out, err
}

// Variants canonicalizes term and lists the spellings seen for it
func (s *Svc) Variants(ctx context.Context, term string) (domain.VariantsOutput, error) {
	canon := s.analyzer.Canonical(term)
	switch len(canon) {
	case 0:
		return domain.VariantsOutput{}, perr.WithField(perr.InvalidArgf("term has no clusters"), "term")
	case 1:
	default:
		return domain.VariantsOutput{}, perr.WithField(perr.InvalidArgf("term must be a single cluster, got %d", len(canon)), "term")
	}
	vs, err := s.Repo.Variants(ctx, canon[0])
	if err != nil {
		return domain.VariantsOutput{}, err
	}
	if vs == nil {
		vs = []domain.Variant{}
	}
	return domain.VariantsOutput{Term: canon[0], Variants: vs}, nil
}
