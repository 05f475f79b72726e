package repokit

import (
	"context"

	"khmerfold/internal/platform/store"
)

type fakeQ struct {
	execs []string
	err   error
}

func (f *fakeQ) Exec(_ context.Context, sql string, _ ...any) (store.CommandTag, error) {
	f.execs = append(f.execs, sql)
	return nil, f.err
}

func (f *fakeQ) Query(context.Context, string, ...any) (store.Rows, error) { return nil, nil }
func (f *fakeQ) QueryRow(context.Context, string, ...any) store.Row        { return nil }

type fakeTx struct {
	fakeQ
	txs int
}

func (f *fakeTx) Tx(_ context.Context, fn func(q Queryer) error) error {
	f.txs++
	return fn(&f.fakeQ)
}

var (
	_ Queryer  = (*fakeQ)(nil)
	_ TxRunner = (*fakeTx)(nil)
)
