package service

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"khmerfold/internal/core/analyzer"
	"khmerfold/internal/modkit/repokit"
	perr "khmerfold/internal/platform/errors"
	"khmerfold/internal/platform/store"
	"khmerfold/internal/platform/testkit"
	"khmerfold/internal/services/api/index/domain"
	"khmerfold/internal/services/api/index/repo"
	tsdomain "khmerfold/internal/services/api/termstats/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

// fakeRepo keeps rows in memory; a tx sees and commits into the same maps
type fakeRepo struct {
	docs     map[string]repo.Document
	postings map[string][]repo.Posting
	hits     []repo.Hit

	insertErrs []error
	searchArgs struct {
		terms    []string
		minMatch int
		limit    int
	}
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{docs: map[string]repo.Document{}, postings: map[string][]repo.Posting{}}
}

func (f *fakeRepo) InsertDocument(_ context.Context, d repo.Document) error {
	if len(f.insertErrs) > 0 {
		err := f.insertErrs[0]
		f.insertErrs = f.insertErrs[1:]
		return err
	}
	f.docs[d.ID] = d
	return nil
}

func (f *fakeRepo) InsertPostings(_ context.Context, id string, ps []repo.Posting) error {
	f.postings[id] = ps
	return nil
}

func (f *fakeRepo) GetDocument(_ context.Context, id string) (repo.Document, error) {
	d, ok := f.docs[id]
	if !ok {
		return repo.Document{}, perr.ErrNotFound
	}
	return d, nil
}

func (f *fakeRepo) Postings(_ context.Context, id string) ([]repo.Posting, error) {
	return f.postings[id], nil
}

func (f *fakeRepo) DeleteDocument(_ context.Context, id string) error {
	if _, ok := f.docs[id]; !ok {
		return perr.ErrNotFound
	}
	delete(f.docs, id)
	return nil
}

func (f *fakeRepo) Search(_ context.Context, terms []string, minMatch, limit int) ([]repo.Hit, error) {
	f.searchArgs.terms, f.searchArgs.minMatch, f.searchArgs.limit = terms, minMatch, limit
	return f.hits, nil
}

type fakeTx struct{ txs int }

func (f *fakeTx) Exec(context.Context, string, ...any) (store.CommandTag, error) { return nil, nil }
func (f *fakeTx) Query(context.Context, string, ...any) (store.Rows, error)      { return nil, nil }
func (f *fakeTx) QueryRow(context.Context, string, ...any) store.Row             { return nil }

func (f *fakeTx) Tx(_ context.Context, fn func(repokit.Queryer) error) error {
	f.txs++
	return fn(f)
}

type fakeSink struct {
	events []tsdomain.Event
	err    error
}

func (f *fakeSink) Record(_ context.Context, ev []tsdomain.Event) error {
	f.events = append(f.events, ev...)
	return f.err
}

func newSvc(t *testing.T, r *fakeRepo, opts ...Option) (*Svc, *fakeTx) {
	t.Helper()
	a, err := analyzer.New()
	if err != nil {
		t.Fatal(err)
	}
	tx := &fakeTx{}
	s := New(tx, repokit.BindFunc[repo.Repo](func(repokit.Queryer) repo.Repo { return r }), a, opts...)
	s.newID = func() uuid.UUID { return uuid.MustParse("5b0c2f7e-8d6b-4d1f-9b7a-3f1e2d4c5b6a") }
	s.now = func() time.Time { return time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC) }
	s.sleep = func(context.Context, time.Duration) error { return nil }
	return s, tx
}

func TestNew_Guards(t *testing.T) {
	t.Parallel()
	a, _ := analyzer.New()
	b := repo.NewPG()
	testkit.MustPanic(t, func() { New(nil, b, a) })
	testkit.MustPanic(t, func() { New(&fakeTx{}, nil, a) })
	testkit.MustPanic(t, func() { New(&fakeTx{}, b, nil) })
}

func TestIndex_StoresDocumentPostingsAndEvents(t *testing.T) {
	t.Parallel()
	r := newFakeRepo()
	sink := &fakeSink{}
	s, tx := newSvc(t, r, WithSink(sink))

	out, err := s.Index(context.Background(), domain.IndexInput{Title: "t", Text: "\ufeffសើុ ធ្វើ"})
	if err != nil {
		t.Fatal(err)
	}
	if out.ID != "5b0c2f7e-8d6b-4d1f-9b7a-3f1e2d4c5b6a" || out.Terms != 2 || out.AnalyzerVersion != 1 || out.Level != "standard" {
		t.Fatalf("out = %+v", out)
	}
	if tx.txs != 1 {
		t.Fatalf("txs = %d", tx.txs)
	}

	doc := r.docs[out.ID]
	if strings.ContainsRune(doc.Body, '\ufeff') {
		t.Fatalf("body not sanitized: %+q", doc.Body)
	}
	ps := r.postings[out.ID]
	if len(ps) != 2 || ps[0].Term != "ស៊ើ" || ps[0].Surface != "សើុ" || ps[1].Position != 1 {
		t.Fatalf("postings = %+v", ps)
	}

	if len(sink.events) != 2 || sink.events[0].DocumentID != out.ID || sink.events[0].Term != "ស៊ើ" {
		t.Fatalf("events = %+v", sink.events)
	}
}

func TestIndex_NoClusters(t *testing.T) {
	t.Parallel()
	s, tx := newSvc(t, newFakeRepo())

	_, err := s.Index(context.Background(), domain.IndexInput{Text: " ... "})
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("err = %v", err)
	}
	if tx.txs != 0 {
		t.Fatal("nothing should be written")
	}
}

func TestIndex_RetriesSerializationFailures(t *testing.T) {
	t.Parallel()
	r := newFakeRepo()
	serial := &pgconn.PgError{Code: "40001"}
	r.insertErrs = []error{serial, serial}
	s, tx := newSvc(t, r)

	if _, err := s.Index(context.Background(), domain.IndexInput{Text: "ក"}); err != nil {
		t.Fatal(err)
	}
	if tx.txs != 3 {
		t.Fatalf("txs = %d, want 3", tx.txs)
	}

	r.insertErrs = []error{serial, serial, serial}
	if _, err := s.Index(context.Background(), domain.IndexInput{Text: "ក"}); !errors.Is(err, serial) {
		t.Fatalf("err = %v", err)
	}
}

func TestIndex_DoesNotRetryOtherErrors(t *testing.T) {
	t.Parallel()
	r := newFakeRepo()
	boom := errors.New("boom")
	r.insertErrs = []error{boom}
	s, tx := newSvc(t, r)

	if _, err := s.Index(context.Background(), domain.IndexInput{Text: "ក"}); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	if tx.txs != 1 {
		t.Fatalf("txs = %d", tx.txs)
	}
}

func TestIndex_SinkFailureIsLogged(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	sink := &fakeSink{err: errors.New("clickhouse down")}
	s, _ := newSvc(t, newFakeRepo(), WithSink(sink), WithLogger(zerolog.New(&buf)))

	if _, err := s.Index(context.Background(), domain.IndexInput{Text: "ក"}); err != nil {
		t.Fatalf("sink failure must not fail the request: %v", err)
	}
	testkit.MustContain(t, buf.String(), "term events dropped")
}

func TestGetAndDelete(t *testing.T) {
	t.Parallel()
	r := newFakeRepo()
	s, _ := newSvc(t, r)
	ctx := context.Background()

	out, err := s.Index(ctx, domain.IndexInput{Text: "ធ្វើការ"})
	if err != nil {
		t.Fatal(err)
	}

	doc, err := s.Get(ctx, strings.ToUpper(out.ID))
	if err != nil {
		t.Fatal(err)
	}
	if doc.Level != "standard" || len(doc.Postings) != 3 || doc.Postings[2].Term != "រ" {
		t.Fatalf("doc = %+v", doc)
	}

	if _, err := s.Get(ctx, "nope"); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("bad id err = %v", err)
	}
	if err := s.Delete(ctx, out.ID); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, out.ID); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("second delete err = %v", err)
	}
	if _, err := s.Get(ctx, out.ID); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("get after delete err = %v", err)
	}
}

func TestSearch(t *testing.T) {
	t.Parallel()
	r := newFakeRepo()
	r.hits = []repo.Hit{{ID: "a", Body: strings.Repeat("ក", 100), Matched: 2, Hits: 3}}
	s, _ := newSvc(t, r)
	ctx := context.Background()

	out, err := s.Search(ctx, domain.SearchInput{Query: "សើុ ស៊ើ ធ្វើ"})
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(out.Terms, []string{"ស៊ើ", "ធ្វើ"}) || out.Mode != domain.ModeAll {
		t.Fatalf("out = %+v", out)
	}
	if r.searchArgs.minMatch != 2 || r.searchArgs.limit != defaultLimit {
		t.Fatalf("args = %+v", r.searchArgs)
	}
	if got := []rune(out.Hits[0].Snippet); len(got) != snippetLen+1 {
		t.Fatalf("snippet runes = %d", len(got))
	}

	if _, err := s.Search(ctx, domain.SearchInput{Query: "ក", Mode: domain.ModeAny, Limit: 3}); err != nil {
		t.Fatal(err)
	}
	if r.searchArgs.minMatch != 1 || r.searchArgs.limit != 3 {
		t.Fatalf("any args = %+v", r.searchArgs)
	}

	if _, err := s.Search(ctx, domain.SearchInput{Query: "!!"}); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("empty query err = %v", err)
	}
}
