package service

import (
	"context"
	"errors"
	"testing"

	"khmerfold/internal/core/analyzer"
	perr "khmerfold/internal/platform/errors"
	"khmerfold/internal/platform/testkit"
	"khmerfold/internal/services/api/termstats/domain"
)

type fakeRepo struct {
	inserted []domain.Event
	lastTerm string
	top      []domain.TopTerm
	variants []domain.Variant
	err      error
}

func (f *fakeRepo) Ensure(context.Context) error { return f.err }

func (f *fakeRepo) Insert(_ context.Context, ev []domain.Event) error {
	f.inserted = append(f.inserted, ev...)
	return f.err
}

func (f *fakeRepo) Top(_ context.Context, limit int) ([]domain.TopTerm, error) {
	if limit < len(f.top) {
		return f.top[:limit], f.err
	}
	return f.top, f.err
}

func (f *fakeRepo) Variants(_ context.Context, term string) ([]domain.Variant, error) {
	f.lastTerm = term
	return f.variants, f.err
}

func newSvc(t *testing.T, r *fakeRepo) *Svc {
	t.Helper()
	a, err := analyzer.New()
	if err != nil {
		t.Fatal(err)
	}
	return New(r, a)
}

func TestNew_Guards(t *testing.T) {
	t.Parallel()
	a, _ := analyzer.New()
	testkit.MustPanic(t, func() { New(nil, a) })
	testkit.MustPanic(t, func() { New(&fakeRepo{}, nil) })
}

func TestRecordAndTop(t *testing.T) {
	t.Parallel()
	r := &fakeRepo{top: []domain.TopTerm{{Term: "ក", Hits: 3}, {Term: "ខ", Hits: 1}}}
	s := newSvc(t, r)

	if err := s.Record(context.Background(), []domain.Event{{Term: "ក"}}); err != nil {
		t.Fatal(err)
	}
	if len(r.inserted) != 1 {
		t.Fatalf("inserted = %v", r.inserted)
	}

	top, err := s.TopTerms(context.Background(), 1)
	if err != nil || len(top) != 1 || top[0].Term != "ក" {
		t.Fatalf("top = %v err=%v", top, err)
	}

	empty, _ := newSvc(t, &fakeRepo{}).TopTerms(context.Background(), 5)
	if empty == nil {
		t.Fatal("empty result should be a non nil slice")
	}
}

func TestVariants_CanonicalizesQuery(t *testing.T) {
	t.Parallel()
	r := &fakeRepo{variants: []domain.Variant{{Surface: "សើុ", Hits: 2}}}
	s := newSvc(t, r)

	got, err := s.Variants(context.Background(), "សើុ")
	if err != nil {
		t.Fatal(err)
	}
	if r.lastTerm != "ស៊ើ" || got.Term != "ស៊ើ" {
		t.Fatalf("looked up %q, answered %q", r.lastTerm, got.Term)
	}
	if len(got.Variants) != 1 {
		t.Fatalf("variants = %v", got.Variants)
	}
}

func TestVariants_RejectsNonSingleCluster(t *testing.T) {
	t.Parallel()
	s := newSvc(t, &fakeRepo{})

	for _, in := range []string{"   ", "ធ្វើការ"} {
		_, err := s.Variants(context.Background(), in)
		if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
			t.Fatalf("Variants(%q) err = %v", in, err)
		}
	}
}

func TestVariants_RepoError(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	_, err := newSvc(t, &fakeRepo{err: boom}).Variants(context.Background(), "ក")
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}
