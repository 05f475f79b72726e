// Package domain holds the term index types
package domain

import (
	"context"
	"time"

	tsdomain "khmerfold/internal/services/api/termstats/domain"
)

// search modes
const (
	ModeAll = "all"
	ModeAny = "any"
)

// IndexInput is a document to analyze and store
type IndexInput struct {
	Title string `json:"title,omitempty" validate:"max=500"        example:"ស្ត្រី"`
	Text  string `json:"text"            validate:"required,notblank" example:"ស្រ្តី និង បុរស"`
}

// IndexOutput acknowledges a stored document
type IndexOutput struct {
	ID              string `json:"id"               example:"5b0c2f7e-8d6b-4d1f-9b7a-3f1e2d4c5b6a"`
	Terms           int    `json:"terms"            example:"4"`
	Level           string `json:"level"            example:"standard"`
	AnalyzerVersion int    `json:"analyzer_version" example:"1"`
}

// Posting is one term occurrence inside a document
type Posting struct {
	Term        string `json:"term"`
	Surface     string `json:"surface"`
	Position    int    `json:"position"`
	SourceStart int    `json:"source_start"`
	SourceEnd   int    `json:"source_end"`
}

// Document is a stored document with its analysis
type Document struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Text            string    `json:"text"`
	Normalized      string    `json:"normalized"`
	Level           string    `json:"level"`
	AnalyzerVersion int       `json:"analyzer_version"`
	TermCount       int       `json:"term_count"`
	CreatedAt       time.Time `json:"created_at"`
	Postings        []Posting `json:"postings"`
}

// SearchInput is a free text query. Mode all requires every query term,
// any ranks by how many match
type SearchInput struct {
	Query string `json:"query"          validate:"required,notblank"           example:"ស្រ្តី"`
	Mode  string `json:"mode,omitempty"  validate:"omitempty,oneof=all any"     example:"all"`
	Limit int    `json:"limit,omitempty" validate:"omitempty,min=1,max=100"     example:"10"`
}

// Hit is one matching document
type Hit struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Matched int    `json:"matched"`
	Hits    int    `json:"hits"`
}

// SearchOutput lists the canonical query terms and the ranked hits
type SearchOutput struct {
	Terms []string `json:"terms"`
	Mode  string   `json:"mode"`
	Hits  []Hit    `json:"hits"`
}

// ServicePort is consumed by handlers and by other modules
type ServicePort interface {
	Index(ctx context.Context, in IndexInput) (IndexOutput, error)
	Get(ctx context.Context, id string) (Document, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, in SearchInput) (SearchOutput, error)
}

// TermSink receives the terms of every stored document
type TermSink = tsdomain.Recorder
