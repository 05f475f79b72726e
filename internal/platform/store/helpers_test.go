package store

import (
	"context"
	"errors"
	"testing"

	perr "khmerfold/internal/platform/errors"
)

func scanTerm(r Row) (string, error) {
	var term string
	var n int
	err := r.Scan(&term, &n)
	return term, err
}

func TestMany(t *testing.T) {
	rows := &fakeRows{data: [][]any{{"ស្ត្រី", 3}, {"ស៊ើ", 1}}}
	q := &fakeQuerier{rows: rows}

	got, err := Many(context.Background(), q, scanTerm, "select term, n from t")
	if err != nil || len(got) != 2 || got[0] != "ស្ត្រី" || got[1] != "ស៊ើ" {
		t.Fatalf("Many = %v %v", got, err)
	}
	if !rows.closed {
		t.Fatalf("rows not closed")
	}

	iterErr := errors.New("stream broke")
	_, err = Many(context.Background(), &fakeQuerier{rows: &fakeRows{err: iterErr}}, scanTerm, "x")
	if !errors.Is(err, iterErr) {
		t.Fatalf("iteration error lost: %v", err)
	}

	_, err = Many(context.Background(), &fakeQuerier{rows: &fakeRows{data: [][]any{{"a"}}}}, scanTerm, "x")
	if err == nil {
		t.Fatalf("scan error swallowed")
	}
}

func TestOne(t *testing.T) {
	ctx := context.Background()

	got, err := One(ctx, &fakeQuerier{rows: &fakeRows{data: [][]any{{"ក", 1}}}}, scanTerm, "x")
	if err != nil || got != "ក" {
		t.Fatalf("One = %q %v", got, err)
	}

	_, err = One(ctx, &fakeQuerier{rows: &fakeRows{}}, scanTerm, "x")
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("empty result should be NotFound: %v", err)
	}

	_, err = One(ctx, &fakeQuerier{rows: &fakeRows{data: [][]any{{"a", 1}, {"b", 2}}}}, scanTerm, "x")
	if err == nil {
		t.Fatalf("two rows accepted")
	}

	boom := errors.New("boom")
	if _, err := One(ctx, &fakeQuerier{queryErr: boom}, scanTerm, "x"); !errors.Is(err, boom) {
		t.Fatalf("query error lost: %v", err)
	}
}

func TestScalar(t *testing.T) {
	n, err := Scalar[int](context.Background(), &fakeQuerier{rows: &fakeRows{data: [][]any{{42}}}}, "select 42")
	if err != nil || n != 42 {
		t.Fatalf("Scalar = %d %v", n, err)
	}
	if _, err := Scalar[int](context.Background(), &fakeQuerier{rows: &fakeRows{}}, "x"); err == nil {
		t.Fatalf("missing row accepted")
	}
}

func TestExecOne(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		affected int64
		execErr  error
		check    func(error) bool
	}{
		{1, nil, func(err error) bool { return err == nil }},
		{0, nil, func(err error) bool { return perr.IsCode(err, perr.ErrorCodeNotFound) }},
		{3, nil, func(err error) bool { return err != nil && !perr.IsCode(err, perr.ErrorCodeNotFound) }},
		{0, errors.New("down"), func(err error) bool { return err != nil && err.Error() == "down" }},
	}
	for _, c := range cases {
		err := ExecOne(ctx, &fakeQuerier{affected: c.affected, execErr: c.execErr}, "delete from t")
		if !c.check(err) {
			t.Fatalf("affected=%d execErr=%v: got %v", c.affected, c.execErr, err)
		}
	}
}
