package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"khmerfold/internal/platform/testkit"
)

func runLines(t *testing.T, stdin string, args ...string) []map[string]any {
	t.Helper()
	var out bytes.Buffer
	if err := run(context.Background(), args, strings.NewReader(stdin), &out); err != nil {
		t.Fatalf("run %v: %v", args, err)
	}
	var lines []map[string]any
	for l := range strings.SplitSeq(strings.TrimSpace(out.String()), "\n") {
		if l == "" {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(l), &m); err != nil {
			t.Fatalf("line %q: %v", l, err)
		}
		lines = append(lines, m)
	}
	return lines
}

func texts(t *testing.T, v any, key string) []string {
	t.Helper()
	var out []string
	for _, x := range v.([]any) {
		if key == "" {
			out = append(out, x.(string))
			continue
		}
		out = append(out, x.(map[string]any)[key].(string))
	}
	return out
}

func TestAnalyze_OneObjectPerLine(t *testing.T) {
	lines := runLines(t, "ធ្វើការ\nhello\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d", len(lines))
	}
	if got := strings.Join(texts(t, lines[0]["terms"], "text"), " "); got != "ធ្វើ កា រ" {
		t.Fatalf("terms = %q", got)
	}
	if len(lines[1]["terms"].([]any)) != 0 {
		t.Fatalf("latin line produced terms: %v", lines[1])
	}
}

func TestModes(t *testing.T) {
	cases := []struct {
		name string
		args []string
		key  string
		want string
	}{
		{"reorder", []string{"-mode", "reorder", "-text", "សើុ ក"}, "canonical", "ស៊ើ ក"},
		{"segment", []string{"-mode", "segment", "-text", "ធ្វើការ"}, "tokens", "ធ្វើ កា រ"},
		{"normalize level 2", []string{"-mode", "normalize", "-level", "2", "-text", "១២៣"}, "normalized", "123"},
		{"normalize level 1", []string{"-mode", "normalize", "-level", "standard", "-text", "១២៣"}, "normalized", "១២៣"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lines := runLines(t, "", tc.args...)
			if len(lines) != 1 {
				t.Fatalf("lines = %d", len(lines))
			}
			var got string
			switch v := lines[0][tc.key].(type) {
			case string:
				got = v
			case []any:
				sub := ""
				if _, ok := v[0].(map[string]any); ok {
					sub = "text"
				}
				got = strings.Join(texts(t, v, sub), " ")
			}
			if got != tc.want {
				t.Fatalf("%s = %q, want %q", tc.key, got, tc.want)
			}
		})
	}
}

func TestNormalize_Trace(t *testing.T) {
	lines := runLines(t, "", "-mode", "normalize", "-level", "2", "-trace", "-text", "១២៣")
	if edits, ok := lines[0]["edits"].([]any); !ok || len(edits) != 3 {
		t.Fatalf("edits = %v", lines[0]["edits"])
	}
}

func TestRules(t *testing.T) {
	l0 := runLines(t, "", "-mode", "rules", "-level", "0")
	l2 := runLines(t, "", "-mode", "rules", "-level", "2")
	if len(l2) <= len(l0) {
		t.Fatalf("level 2 rules %d should extend level 0 rules %d", len(l2), len(l0))
	}
	for _, r := range l0 {
		if r["level"].(float64) != 0 {
			t.Fatalf("level 0 dump has %v", r)
		}
	}
}

func TestBadFlags(t *testing.T) {
	for _, args := range [][]string{{"-mode", "shout"}, {"-level", "7"}} {
		err := run(context.Background(), args, strings.NewReader(""), &bytes.Buffer{})
		if err == nil {
			t.Fatalf("%v: expected error", args)
		}
	}
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := run(ctx, nil, strings.NewReader("ក\n"), &bytes.Buffer{})
	testkit.MustContain(t, err.Error(), "canceled")
}
