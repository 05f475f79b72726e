package store

import (
	"context"
	"fmt"

	perr "khmerfold/internal/platform/errors"
)

// ExecOne runs a write that must touch exactly one row, NotFound otherwise
func ExecOne(ctx context.Context, q RowQuerier, sql string, args ...any) error {
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	switch n := tag.RowsAffected(); n {
	case 1:
		return nil
	case 0:
		return perr.ErrNotFound
	default:
		return fmt.Errorf("expected one row affected, got %d", n)
	}
}

// Scalar scans the first column of the first row into T
func Scalar[T any](ctx context.Context, q RowQuerier, sql string, args ...any) (T, error) {
	var v T
	if err := q.QueryRow(ctx, sql, args...).Scan(&v); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// One maps exactly one row with scan, NotFound when there is none
func One[T any](ctx context.Context, q Querier, scan func(Row) (T, error), sql string, args ...any) (T, error) {
	var zero T
	items, err := collect(ctx, q, scan, 2, sql, args...)
	switch {
	case err != nil:
		return zero, err
	case len(items) == 0:
		return zero, perr.ErrNotFound
	case len(items) > 1:
		return zero, fmt.Errorf("expected 1 row, got more")
	}
	return items[0], nil
}

// Many maps every row with scan. Works against Postgres and ClickHouse alike
func Many[T any](ctx context.Context, q Querier, scan func(Row) (T, error), sql string, args ...any) ([]T, error) {
	return collect(ctx, q, scan, -1, sql, args...)
}

// collect reads at most limit rows, all of them when limit < 0
func collect[T any](ctx context.Context, q Querier, scan func(Row) (T, error), limit int, sql string, args ...any) ([]T, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for (limit < 0 || len(out) < limit) && rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}
