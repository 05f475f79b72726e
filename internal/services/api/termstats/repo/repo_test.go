package repo

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	perr "khmerfold/internal/platform/errors"
	"khmerfold/internal/platform/store"
	"khmerfold/internal/platform/testkit"
	"khmerfold/internal/services/api/termstats/domain"

	"github.com/ClickHouse/clickhouse-go/v2"
)

type fakeRows struct {
	data [][]any
	i    int
}

func (r *fakeRows) Next() bool {
	r.i++
	return r.i <= len(r.data)
}

func (r *fakeRows) Scan(dst ...any) error {
	row := r.data[r.i-1]
	for i, d := range dst {
		switch p := d.(type) {
		case *string:
			*p = row[i].(string)
		case *uint64:
			*p = row[i].(uint64)
		default:
			return errors.New("unsupported scan target")
		}
	}
	return nil
}

func (r *fakeRows) Err() error        { return nil }
func (r *fakeRows) Close()            {}
func (r *fakeRows) Columns() []string { return nil }

type fakeCH struct {
	execs   []string
	table   string
	batch   [][]any
	sql     string
	args    []any
	rows    [][]any
	err     error
	queried int
}

func (f *fakeCH) Exec(_ context.Context, sql string, _ ...any) error {
	f.execs = append(f.execs, sql)
	return f.err
}

func (f *fakeCH) InsertBatch(_ context.Context, table string, rows [][]any) error {
	f.table, f.batch = table, rows
	return f.err
}

func (f *fakeCH) Query(_ context.Context, sql string, args ...any) (store.Rows, error) {
	f.queried++
	f.sql, f.args = sql, args
	if f.err != nil {
		return nil, f.err
	}
	return &fakeRows{data: f.rows}, nil
}

func (f *fakeCH) Close() error { return nil }

func TestNewCH_Nil(t *testing.T) {
	t.Parallel()
	testkit.MustPanic(t, func() { NewCH(nil) })
}

func TestEnsure(t *testing.T) {
	t.Parallel()
	ch := &fakeCH{}
	if err := NewCH(ch).Ensure(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(ch.execs) != 1 || !strings.HasPrefix(ch.execs[0], "CREATE TABLE IF NOT EXISTS term_events") {
		t.Fatalf("execs = %q", ch.execs)
	}
}

func TestInsert(t *testing.T) {
	t.Parallel()
	ch := &fakeCH{}
	r := NewCH(ch)

	if err := r.Insert(context.Background(), nil); err != nil || ch.table != "" {
		t.Fatalf("empty insert touched the table: %q %v", ch.table, err)
	}

	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.FixedZone("ICT", 7*3600))
	err := r.Insert(context.Background(), []domain.Event{
		{At: at, DocumentID: "d1", Term: "ស៊ើ", Surface: "សើុ", Position: 4, AnalyzerVersion: 1},
	})
	if err != nil {
		t.Fatal(err)
	}
	if ch.table != Table || len(ch.batch) != 1 {
		t.Fatalf("table=%q batch=%v", ch.table, ch.batch)
	}
	row := ch.batch[0]
	if row[0].(time.Time).Location() != time.UTC || row[2] != "ស៊ើ" || row[4] != uint32(4) || row[5] != uint16(1) {
		t.Fatalf("row = %#v", row)
	}
}

func TestInsert_MapsExceptions(t *testing.T) {
	t.Parallel()
	ch := &fakeCH{err: &clickhouse.Exception{Code: 241, Message: "memory limit"}}
	err := NewCH(ch).Insert(context.Background(), []domain.Event{{Term: "ក"}})
	if err == nil || perr.CodeOf(err) == perr.ErrorCodeUnknown {
		t.Fatalf("err = %v code=%v", err, perr.CodeOf(err))
	}
}

func TestTopAndVariants(t *testing.T) {
	t.Parallel()
	ch := &fakeCH{rows: [][]any{{"ក", uint64(5), uint64(2)}}}
	r := NewCH(ch)

	top, err := r.Top(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 1 || top[0] != (domain.TopTerm{Term: "ក", Hits: 5, Documents: 2}) {
		t.Fatalf("top = %+v", top)
	}
	if ch.args[0] != 10 {
		t.Fatalf("limit arg = %v", ch.args)
	}

	ch.rows = [][]any{{"សើុ", uint64(3)}, {"ស៊ើ", uint64(1)}}
	vs, err := r.Variants(context.Background(), "ស៊ើ")
	if err != nil {
		t.Fatal(err)
	}
	if len(vs) != 2 || vs[0].Surface != "សើុ" || ch.args[0] != "ស៊ើ" {
		t.Fatalf("variants = %+v args=%v", vs, ch.args)
	}
}
