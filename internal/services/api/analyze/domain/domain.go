// Package domain holds the analyze request and response shapes
package domain

import (
	"context"

	"khmerfold/internal/core/analyzer"
	"khmerfold/internal/core/normalize"
	"khmerfold/internal/core/segment"
)

// NormalizeInput asks for the mapped form of Text. Level defaults to the
// server level when omitted
type NormalizeInput struct {
	Text  string `json:"text"            validate:"required,utf8"          example:"ស្រ្តី"`
	Level *int   `json:"level,omitempty" validate:"omitempty,normlevel"    example:"1"`
}

// NormalizeOutput is the mapped text with the substitutions made
type NormalizeOutput struct {
	Normalized string           `json:"normalized"`
	Level      string           `json:"level"      example:"standard"`
	Edits      []normalize.Edit `json:"edits"`
}

// SegmentInput asks for the grapheme clusters of Text as given
type SegmentInput struct {
	Text string `json:"text" validate:"required,utf8" example:"ស្ត្រី"`
}

// SegmentOutput lists the clusters in order
type SegmentOutput struct {
	Tokens []segment.Token `json:"tokens"`
}

// ReorderInput is a batch of clusters to put in canonical order
type ReorderInput struct {
	Tokens []string `json:"tokens" validate:"required,min=1,max=1024,dive,required,max=255"`
}

// ReorderOutput pairs one canonical form with each input token
type ReorderOutput struct {
	Canonical []string `json:"canonical"`
}

// AnalyzeInput runs the full pipeline over Text
type AnalyzeInput struct {
	Text  string `json:"text"            validate:"required,utf8"       example:"ស្រ្តី"`
	Level *int   `json:"level,omitempty" validate:"omitempty,normlevel" example:"1"`
}

// AnalyzeOutput is the normalized text and its terms
type AnalyzeOutput struct {
	Normalized string          `json:"normalized"`
	Level      string          `json:"level"`
	Terms      []analyzer.Term `json:"terms"`
}

// ServicePort is consumed by handlers and by other modules
type ServicePort interface {
	Normalize(ctx context.Context, in NormalizeInput) (NormalizeOutput, error)
	Segment(ctx context.Context, in SegmentInput) (SegmentOutput, error)
	Reorder(ctx context.Context, in ReorderInput) (ReorderOutput, error)
	Analyze(ctx context.Context, in AnalyzeInput) (AnalyzeOutput, error)
}
