// Package net carries request scoped values and the response envelope shared by transports
package net

import (
	"context"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type ctxKey uint8

const keyStarted ctxKey = iota

// WithRequest stores the request id where chi's RequestID middleware would put it
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID == "" {
		return ctx
	}
	return context.WithValue(ctx, chimw.RequestIDKey, reqID)
}

// RequestID returns the request id on the context, or ""
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// WithStarted records when request handling began
func WithStarted(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, keyStarted, t)
}

// Elapsed reports time since WithStarted, zero when it was never set
func Elapsed(ctx context.Context) time.Duration {
	t, ok := ctx.Value(keyStarted).(time.Time)
	if !ok {
		return 0
	}
	return time.Since(t)
}
