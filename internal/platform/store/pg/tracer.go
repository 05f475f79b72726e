package pg

import (
	"context"
	"strings"

	"khmerfold/internal/platform/logger"
	pnet "khmerfold/internal/platform/net"

	"github.com/rs/zerolog"
)

// QueryEvent describes one finished statement
type QueryEvent struct {
	SQL       string
	Args      []any
	ElapsedUS int64
	Err       error
	Slow      bool
}

// QueryTracer receives every statement run through the store adapters
type QueryTracer interface {
	OnQuery(ctx context.Context, ev QueryEvent)
}

// Tracer logs statements at info, slow ones at warn, whatever the root level
func Tracer(root logger.Logger) QueryTracer {
	return &zlTracer{log: root.Level(zerolog.DebugLevel).With().Str("component", "pg").Logger()}
}

type zlTracer struct{ log logger.Logger }

func (z *zlTracer) OnQuery(ctx context.Context, ev QueryEvent) {
	evt := z.log.Info()
	if ev.Slow {
		evt = z.log.Warn()
	}
	if ev.Err != nil {
		evt = z.log.Error().Err(ev.Err)
	}
	if id := pnet.RequestID(ctx); id != "" {
		evt = evt.Str("request_id", id)
	}
	evt.Float64("elapsed_ms", float64(ev.ElapsedUS)/1000).
		Bool("slow", ev.Slow).
		Str("sql", compact(ev.SQL)).
		Int("args", len(ev.Args)).
		Msg("pg query")
}

// compact folds runs of whitespace so multi-line SQL logs on one line
func compact(s string) string { return strings.Join(strings.Fields(s), " ") }
