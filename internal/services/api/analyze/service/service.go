// Package service runs the canonicalization pipeline for API callers
package service

import (
	"context"

	"khmerfold/internal/core/analyzer"
	"khmerfold/internal/core/normalize"
	"khmerfold/internal/core/reorder"
	"khmerfold/internal/core/rulepack"
	"khmerfold/internal/core/segment"
	perr "khmerfold/internal/platform/errors"
	"khmerfold/internal/services/api/analyze/domain"
)

// Service defines the analyze service contract
type Service interface {
	domain.ServicePort
}

// Svc implements Service over one analyzer per normalization level
type Svc struct {
	def    *analyzer.Analyzer
	levels [rulepack.MaxLevel + 1]*analyzer.Analyzer
}

var _ Service = (*Svc)(nil)

// New builds the per level analyzers; def answers requests without a level
func New(def *analyzer.Analyzer) (*Svc, error) {
	if def == nil {
		panic("analyze.Service requires a non nil Analyzer")
	}
	s := &Svc{def: def}
	for l := range s.levels {
		lvl := normalize.Level(l)
		if lvl == def.Level() {
			s.levels[l] = def
			continue
		}
		a, err := analyzer.New(analyzer.WithLevel(lvl))
		if err != nil {
			return nil, err
		}
		s.levels[l] = a
	}
	return s, nil
}

// Analyzer returns the analyzer for an optional level
func (s *Svc) Analyzer(level *int) (*analyzer.Analyzer, error) {
	if level == nil {
		return s.def, nil
	}
	if !normalize.Level(*level).Valid() {
		return nil, perr.WithField(perr.InvalidArgf("unknown level %d", *level), "level")
	}
	return s.levels[*level], nil
}

// Normalize maps text and reports every substitution
func (s *Svc) Normalize(_ context.Context, in domain.NormalizeInput) (domain.NormalizeOutput, error) {
	a, err := s.Analyzer(in.Level)
	if err != nil {
		return domain.NormalizeOutput{}, err
	}
	norm, tr := a.Normalize(in.Text)
	return domain.NormalizeOutput{
		Normalized: norm,
		Level:      a.Level().String(),
		Edits:      tr.Edits(),
	}, nil
}

// Segment splits text into clusters without normalizing it first
func (s *Svc) Segment(_ context.Context, in domain.SegmentInput) (domain.SegmentOutput, error) {
	toks := segment.All(in.Text)
	if toks == nil {
		toks = []segment.Token{}
	}
	return domain.SegmentOutput{Tokens: toks}, nil
}

// Reorder canonicalizes each token independently
func (s *Svc) Reorder(_ context.Context, in domain.ReorderInput) (domain.ReorderOutput, error) {
	return domain.ReorderOutput{Canonical: reorder.All(in.Tokens)}, nil
}

// Analyze runs the whole pipeline
func (s *Svc) Analyze(_ context.Context, in domain.AnalyzeInput) (domain.AnalyzeOutput, error) {
	a, err := s.Analyzer(in.Level)
	if err != nil {
		return domain.AnalyzeOutput{}, err
	}
	res := a.Analyze(in.Text)
	terms := res.Terms
	if terms == nil {
		terms = []analyzer.Term{}
	}
	return domain.AnalyzeOutput{
		Normalized: res.Normalized,
		Level:      a.Level().String(),
		Terms:      terms,
	}, nil
}
