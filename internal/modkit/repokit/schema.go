package repokit

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// ExecFunc runs one statement; it papers over the differing Exec shapes of
// the postgres and clickhouse seams
type ExecFunc func(ctx context.Context, stmt string) error

// Statements splits a schema file on semicolons, dropping blanks and
// whole line -- comments
func Statements(schema string) []string {
	var out []string
	for part := range strings.SplitSeq(schema, ";") {
		var b strings.Builder
		for line := range strings.SplitSeq(part, "\n") {
			if strings.HasPrefix(strings.TrimSpace(line), "--") {
				continue
			}
			b.WriteString(line)
			b.WriteByte('\n')
		}
		if s := strings.TrimSpace(b.String()); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// EnsureSchema applies idempotent DDL in order, stopping at the first
// failure. Without a deadline on ctx each statement gets 10s
func EnsureSchema(ctx context.Context, name string, exec ExecFunc, schema string) error {
	if exec == nil {
		return fmt.Errorf("%s: schema: nil exec", name)
	}
	for i, stmt := range Statements(schema) {
		sctx, cancel := ctx, context.CancelFunc(func() {})
		if _, ok := ctx.Deadline(); !ok {
			sctx, cancel = context.WithTimeout(ctx, 10*time.Second)
		}
		err := exec(sctx, stmt)
		cancel()
		if err != nil {
			return fmt.Errorf("%s: schema statement %d: %w", name, i+1, err)
		}
	}
	return nil
}
