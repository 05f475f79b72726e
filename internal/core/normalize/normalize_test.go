package normalize

import (
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"golang.org/x/text/transform"

	"khmerfold/internal/core/rulepack"
	perr "khmerfold/internal/platform/errors"
)

func mustMapper(t *testing.T, level Level) *Mapper {
	t.Helper()
	m, err := New(level)
	if err != nil {
		t.Fatalf("New(%d): %v", level, err)
	}
	return m
}

func TestNormalize_Table(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		level Level
		in    string
		out   string
		edits int
	}{
		{"identity latin", LevelAggressive, "hello world", "hello world", 0},
		{"e plus ii composes", LevelCanonical, "កេី", "កើ", 1},
		{"e plus aa composes", LevelCanonical, "កេា", "កោ", 1},
		{"inherent vowels dropped", LevelCanonical, "ក\u17b4ខ\u17b5", "កខ", 2},
		{"stray coeng after ro", LevelCanonical, "្រ្ក", "្រក", 1},
		{"matches never overlap", LevelCanonical, "្រ្ដ", "្រដ", 1},
		{"subscript da", LevelCanonical, "ស្ដ", "ស្ត", 1},
		{"deprecated qaa expands", LevelCanonical, "ឤ", "អា", 1},
		{"beyyal expands", LevelCanonical, "៘", "។ល។", 1},
		{"lunar date", LevelCanonical, "២៓", "᧠", 1},
		{"lunar date beats digit fold", LevelAggressive, "២៓២", "᧠2", 2},
		{"colon kept at level 0", LevelCanonical, "a:b", "a:b", 0},
		{"colon becomes reahmuk", LevelStandard, "a:b", "aៈb", 1},
		{"longest pattern wins", LevelStandard, "េី្យ", "ឿ", 1},
		{"shorter pattern at level 0", LevelCanonical, "េី្យ", "ើ្យ", 1},
		{"tier 1 ligature", LevelStandard, "ទ្ប", "ឡ", 1},
		{"tier 1 not applied at level 0", LevelCanonical, "ទ្ប", "ទ្ប", 0},
		{"digits folded", LevelAggressive, "១២៣", "123", 3},
		{"digits kept at level 1", LevelStandard, "១២៣", "១២៣", 0},
		{"atthacan folds", LevelAggressive, "ក៝", "ក៑", 1},
		{"invalid bytes pass through", LevelCanonical, "\xffេី", "\xffើ", 1},
		{"empty", LevelAggressive, "", "", 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, tr := mustMapper(t, tc.level).Normalize(tc.in)
			if got != tc.out {
				t.Fatalf("Normalize(%+q) = %+q, want %+q", tc.in, got, tc.out)
			}
			if tr.Len() != tc.edits {
				t.Fatalf("Normalize(%+q) recorded %d edits, want %d", tc.in, tr.Len(), tc.edits)
			}
		})
	}
}

func TestNew_RejectsBadLevel(t *testing.T) {
	t.Parallel()

	for _, l := range []Level{-1, 3, 42} {
		m, err := New(l)
		if err == nil || m != nil {
			t.Fatalf("New(%d) should fail", l)
		}
		if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
			t.Fatalf("New(%d) code = %v, want invalid argument", l, perr.CodeOf(err))
		}
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Level
		ok   bool
	}{
		{"0", LevelCanonical, true},
		{"canonical", LevelCanonical, true},
		{" 1 ", LevelStandard, true},
		{"", DefaultLevel, true},
		{"AGGRESSIVE", LevelAggressive, true},
		{"2", LevelAggressive, true},
		{"3", 0, false},
		{"loud", 0, false},
	}
	for _, tc := range tests {
		got, err := ParseLevel(tc.in)
		if tc.ok != (err == nil) {
			t.Fatalf("ParseLevel(%q) err = %v", tc.in, err)
		}
		if tc.ok && got != tc.want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNormalize_LevelsAreCumulative(t *testing.T) {
	t.Parallel()

	pack, err := rulepack.Default()
	if err != nil {
		t.Fatalf("rulepack: %v", err)
	}
	for lvl := LevelCanonical; lvl <= LevelAggressive; lvl++ {
		for _, r := range pack.Tier(int(lvl)) {
			if r.Level != int(lvl) {
				continue
			}
			for higher := lvl; higher <= LevelAggressive; higher++ {
				if got := mustMapper(t, higher).String(r.From); got != r.To {
					t.Fatalf("level %d: %+q -> %+q, want %+q", higher, r.From, got, r.To)
				}
			}
		}
	}
}

func TestNormalize_UnchangedReturnsInput(t *testing.T) {
	t.Parallel()

	in := "ខ្ញុំ"
	got, tr := mustMapper(t, LevelAggressive).Normalize(in)
	if got != in || tr.Len() != 0 || tr.Delta() != 0 {
		t.Fatalf("expected identity, got %+q with %d edits", got, tr.Len())
	}
}

func TestTrace_SourceOffset(t *testing.T) {
	t.Parallel()

	// ka, inherent aq, e, ii, kha
	in := "ក\u17b4េីខ"
	got, tr := mustMapper(t, LevelCanonical).Normalize(in)
	if got != "កើខ" {
		t.Fatalf("unexpected output %+q", got)
	}
	want := []Edit{
		{Src: 1, Dst: 1, Consumed: 1, Produced: 0, From: "\u17b4", To: ""},
		{Src: 2, Dst: 1, Consumed: 2, Produced: 1, From: "េី", To: "ើ"},
	}
	edits := tr.Edits()
	if len(edits) != len(want) {
		t.Fatalf("edits = %+v", edits)
	}
	for i := range want {
		if edits[i] != want[i] {
			t.Fatalf("edit %d = %+v, want %+v", i, edits[i], want[i])
		}
	}
	if tr.Delta() != -2 {
		t.Fatalf("Delta() = %d, want -2", tr.Delta())
	}

	offsets := map[int]int{0: 0, 1: 2, 2: 4, 3: 5}
	for dst, src := range offsets {
		if got := tr.SourceOffset(dst); got != src {
			t.Fatalf("SourceOffset(%d) = %d, want %d", dst, got, src)
		}
	}
}

func TestTrace_SourceOffsetExpansion(t *testing.T) {
	t.Parallel()

	// beyyal expands one codepoint into three
	_, tr := mustMapper(t, LevelCanonical).Normalize("ក៘ខ")
	offsets := map[int]int{0: 0, 1: 1, 2: 2, 3: 2, 4: 2, 5: 3}
	for dst, src := range offsets {
		if got := tr.SourceOffset(dst); got != src {
			t.Fatalf("SourceOffset(%d) = %d, want %d", dst, got, src)
		}
	}
}

var streamCorpus = []string{
	"ខ្ញុំ ច_ង់៕ធ្វេីការ",
	"្រ្ដេី្យ២៓២",
	"a:b ៘ ឤឨ \u17b4\u17b5\xffព័ន្ឋ",
	strings.Repeat("ស្ត្រី ", 600),
}

func TestTransformer_MatchesNormalize(t *testing.T) {
	t.Parallel()

	for lvl := LevelCanonical; lvl <= LevelAggressive; lvl++ {
		m := mustMapper(t, lvl)
		for _, in := range streamCorpus {
			want := m.String(in)

			got, _, err := transform.String(m.Transformer(), in)
			if err != nil {
				t.Fatalf("transform.String: %v", err)
			}
			if got != want {
				t.Fatalf("level %d: transform.String mismatch for %+q", lvl, in)
			}

			r := transform.NewReader(iotest.OneByteReader(strings.NewReader(in)), m.Transformer())
			b, err := io.ReadAll(r)
			if err != nil {
				t.Fatalf("ReadAll: %v", err)
			}
			if string(b) != want {
				t.Fatalf("level %d: byte-at-a-time stream mismatch\n got %+q\nwant %+q", lvl, b, want)
			}
		}
	}
}

func TestTransformer_ShortSrcWaitsForLongerPattern(t *testing.T) {
	t.Parallel()

	tr := mustMapper(t, LevelStandard).Transformer()
	dst := make([]byte, 64)

	// e + ii could still grow into e + ii + coeng + yo
	nDst, nSrc, err := tr.Transform(dst, []byte("េី"), false)
	if err != transform.ErrShortSrc || nDst != 0 || nSrc != 0 {
		t.Fatalf("got (%d, %d, %v), want short src", nDst, nSrc, err)
	}
	nDst, nSrc, err = tr.Transform(dst, []byte("េី"), true)
	if err != nil || string(dst[:nDst]) != "ើ" || nSrc != 6 {
		t.Fatalf("got (%+q, %d, %v)", dst[:nDst], nSrc, err)
	}

	// split inside a multibyte rune
	src := []byte("ក")
	nDst, nSrc, err = tr.Transform(dst, src[:2], false)
	if err != transform.ErrShortSrc || nSrc != 0 || nDst != 0 {
		t.Fatalf("got (%d, %d, %v), want short src", nDst, nSrc, err)
	}
}

func TestTransformer_ShortDst(t *testing.T) {
	t.Parallel()

	tr := mustMapper(t, LevelCanonical).Transformer()
	dst := make([]byte, 4)
	// beyyal expands to nine bytes
	_, _, err := tr.Transform(dst, []byte("៘"), true)
	if err != transform.ErrShortDst {
		t.Fatalf("err = %v, want short dst", err)
	}
}

func TestSanitize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, out string
	}{
		{"clean កា", "clean កា"},
		{"tab\tnew\nline\r", "tab\tnew\nline\r"},
		{"nul\x00del\x7f", "nuldel"},
		{"c1\u0085bom\ufeff", "c1bom"},
		{"bad\xff\xfebytes", "badbytes"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := Sanitize(tc.in); got != tc.out {
			t.Fatalf("Sanitize(%+q) = %+q, want %+q", tc.in, got, tc.out)
		}
	}
}

func TestFromRules_IgnoresDuplicates(t *testing.T) {
	t.Parallel()

	m := FromRules(LevelCanonical, []rulepack.Rule{
		{From: "ab", To: "x"},
		{From: "ab", To: "y"},
		{From: "", To: "z"},
		{From: "abc", To: "w"},
	})
	if m.Rules() != 2 {
		t.Fatalf("Rules() = %d, want 2", m.Rules())
	}
	if got := m.String("abab abc"); got != "xx w" {
		t.Fatalf("got %q", got)
	}
}
