// Package domain holds the term statistics types
package domain

import (
	"context"
	"time"
)

// Event is one occurrence of a term in an indexed document
type Event struct {
	At              time.Time
	DocumentID      string
	Term            string
	Surface         string
	Position        int
	AnalyzerVersion int
}

// TopTerm is a canonical term with its occurrence counts
type TopTerm struct {
	Term      string `json:"term"      example:"ស្ត្រី"`
	Hits      uint64 `json:"hits"      example:"42"`
	Documents uint64 `json:"documents" example:"7"`
}

// Variant is one surface spelling that folded into a term
type Variant struct {
	Surface string `json:"surface" example:"ស្រ្តី"`
	Hits    uint64 `json:"hits"    example:"3"`
}

// VariantsOutput names the canonical term the query resolved to
type VariantsOutput struct {
	Term     string    `json:"term"`
	Variants []Variant `json:"variants"`
}

// Recorder accepts term events; writes are best effort for callers
type Recorder interface {
	Record(ctx context.Context, events []Event) error
}

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Recorder
	TopTerms(ctx context.Context, limit int) ([]TopTerm, error)
	Variants(ctx context.Context, term string) (VariantsOutput, error)
}
