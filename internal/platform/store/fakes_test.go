package store

import (
	"context"
	"errors"
	"fmt"
)

// fakeRows yields canned rows; each row is scanned positionally into *string or *int
type fakeRows struct {
	data   [][]any
	i      int
	err    error
	closed bool
}

func (r *fakeRows) Next() bool {
	if r.i >= len(r.data) {
		return false
	}
	r.i++
	return true
}

func (r *fakeRows) Scan(dst ...any) error {
	row := r.data[r.i-1]
	if len(dst) != len(row) {
		return fmt.Errorf("scan: %d dest for %d cols", len(dst), len(row))
	}
	for i, d := range dst {
		switch p := d.(type) {
		case *string:
			*p = row[i].(string)
		case *int:
			*p = row[i].(int)
		default:
			return fmt.Errorf("unsupported dest %T", d)
		}
	}
	return nil
}

func (r *fakeRows) Err() error        { return r.err }
func (r *fakeRows) Close()            { r.closed = true }
func (r *fakeRows) Columns() []string { return nil }

type fakeTag int64

func (t fakeTag) String() string      { return fmt.Sprintf("UPDATE %d", int64(t)) }
func (t fakeTag) RowsAffected() int64 { return int64(t) }

type fakeRow struct{ rows *fakeRows }

func (r fakeRow) Scan(dst ...any) error {
	if !r.rows.Next() {
		return errors.New("no rows")
	}
	return r.rows.Scan(dst...)
}

// fakeQuerier satisfies RowQuerier and TxRunner with canned answers
type fakeQuerier struct {
	rows     *fakeRows
	queryErr error
	affected int64
	execErr  error
	pingErr  error
	closed   bool
	last     string
}

func (f *fakeQuerier) Query(_ context.Context, sql string, _ ...any) (Rows, error) {
	f.last = sql
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.rows, nil
}

func (f *fakeQuerier) QueryRow(_ context.Context, sql string, _ ...any) Row {
	f.last = sql
	return fakeRow{rows: f.rows}
}

func (f *fakeQuerier) Exec(_ context.Context, sql string, _ ...any) (CommandTag, error) {
	f.last = sql
	return fakeTag(f.affected), f.execErr
}

func (f *fakeQuerier) Tx(_ context.Context, fn func(RowQuerier) error) error { return fn(f) }

func (f *fakeQuerier) Ping(context.Context) error { return f.pingErr }

func (f *fakeQuerier) Close() error { f.closed = true; return nil }
