package module

import (
	"context"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	modkit "khmerfold/internal/modkit"
	mod "khmerfold/internal/modkit/module"
	phttp "khmerfold/internal/platform/net/http"
	"khmerfold/internal/platform/store"
	"khmerfold/internal/platform/testkit"
	"khmerfold/internal/services/api/termstats/domain"

	"github.com/go-chi/chi/v5"
)

type emptyRows struct{}

func (emptyRows) Next() bool        { return false }
func (emptyRows) Scan(...any) error { return nil }
func (emptyRows) Err() error        { return nil }
func (emptyRows) Close()            {}
func (emptyRows) Columns() []string { return nil }

type fakeCH struct {
	ddl int
	err error
}

func (f *fakeCH) Exec(context.Context, string, ...any) error         { f.ddl++; return f.err }
func (f *fakeCH) InsertBatch(context.Context, string, [][]any) error { return nil }
func (f *fakeCH) Close() error                                       { return nil }

func (f *fakeCH) Query(context.Context, string, ...any) (store.Rows, error) {
	return emptyRows{}, nil
}

func TestNew_RequiresClickhouse(t *testing.T) {
	testkit.MustPanic(t, func() { _, _ = New(context.Background(), modkit.Deps{}) })
}

func TestNew_EnsuresSchemaAndMounts(t *testing.T) {
	ch := &fakeCH{}
	m, err := New(context.Background(), modkit.Deps{CH: ch})
	if err != nil {
		t.Fatal(err)
	}
	if ch.ddl != 1 {
		t.Fatalf("ddl statements = %d", ch.ddl)
	}
	if _, ok := mod.PortsOf[domain.Recorder](m); !ok {
		t.Fatal("recorder port missing")
	}

	mux := chi.NewRouter()
	m.MountRoutes(phttp.AdaptChi(mux))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/stats/terms", nil))
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	testkit.MustContain(t, rec.Body.String(), `"status_code":200`)
}

func TestNew_SchemaFailure(t *testing.T) {
	boom := errors.New("readonly")
	_, err := New(context.Background(), modkit.Deps{CH: &fakeCH{err: boom}})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}
