// Package analyzer chains the three canonicalization stages: normalize the
// text, cut it into grapheme clusters, then reorder every cluster. The result
// is the stream of index terms for a document or a query
package analyzer

import (
	"iter"

	"khmerfold/internal/core/normalize"
	"khmerfold/internal/core/reorder"
	"khmerfold/internal/core/segment"
)

// Term is one canonical index term. Start and End are codepoint offsets into
// the normalized text, SourceStart and SourceEnd the same span in the input
type Term struct {
	Text        string `json:"text"`
	Surface     string `json:"surface"`
	Position    int    `json:"position"`
	Start       int    `json:"start"`
	End         int    `json:"end"`
	SourceStart int    `json:"source_start"`
	SourceEnd   int    `json:"source_end"`
}

// Result is the full output of one Analyze call
type Result struct {
	Normalized string          `json:"normalized"`
	Trace      normalize.Trace `json:"-"`
	Terms      []Term          `json:"terms"`
}

// Analyzer is immutable and safe for concurrent use
type Analyzer struct {
	mapper  *normalize.Mapper
	reorder bool
}

type config struct {
	level   normalize.Level
	reorder bool
}

// Option configures an Analyzer
type Option func(*config)

// WithLevel selects the normalization tier
func WithLevel(l normalize.Level) Option { return func(c *config) { c.level = l } }

// WithoutReorder leaves clusters as segmented, useful to inspect what the
// reorder stage changes
func WithoutReorder() Option { return func(c *config) { c.reorder = false } }

// New builds an Analyzer at normalize.DefaultLevel unless told otherwise
func New(opts ...Option) (*Analyzer, error) {
	cfg := config{level: normalize.DefaultLevel, reorder: true}
	for _, o := range opts {
		o(&cfg)
	}
	m, err := normalize.New(cfg.level)
	if err != nil {
		return nil, err
	}
	return &Analyzer{mapper: m, reorder: cfg.reorder}, nil
}

// Level returns the normalization tier in use
func (a *Analyzer) Level() normalize.Level { return a.mapper.Level() }

// Normalize runs only the first stage
func (a *Analyzer) Normalize(text string) (string, normalize.Trace) {
	return a.mapper.Normalize(text)
}

// Analyze runs the pipeline over text and collects every term
func (a *Analyzer) Analyze(text string) Result {
	norm, tr := a.mapper.Normalize(text)
	res := Result{Normalized: norm, Trace: tr}
	for t := range a.terms(norm, tr) {
		res.Terms = append(res.Terms, t)
	}
	return res
}

// Terms lazily yields the terms of text. Normalization happens up front,
// segmentation and reordering as the sequence is consumed
func (a *Analyzer) Terms(text string) iter.Seq[Term] {
	norm, tr := a.mapper.Normalize(text)
	return a.terms(norm, tr)
}

func (a *Analyzer) terms(norm string, tr normalize.Trace) iter.Seq[Term] {
	return func(yield func(Term) bool) {
		pos := 0
		for tok := range segment.Segment(norm) {
			text := tok.Text
			if a.reorder {
				text = reorder.Reorder(text)
			}
			t := Term{
				Text:        text,
				Surface:     tok.Text,
				Position:    pos,
				Start:       tok.Start,
				End:         tok.End,
				SourceStart: tr.SourceOffset(tok.Start),
				SourceEnd:   tr.SourceOffset(tok.End),
			}
			if !yield(t) {
				return
			}
			pos++
		}
	}
}

// Canonical returns just the canonical term texts of text, in order
func (a *Analyzer) Canonical(text string) []string {
	var out []string
	for t := range a.Terms(text) {
		out = append(out, t.Text)
	}
	return out
}
