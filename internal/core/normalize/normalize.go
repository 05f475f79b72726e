// Package normalize rewrites Khmer text with the literal substitutions of the
// rule pack before segmentation.
//
// Matching is a single left to right pass. At each position the longest
// pattern of the selected tier wins, its replacement is emitted and the scan
// resumes after the matched input. Output is never rescanned, so replacements
// cannot cascade. Every substitution is recorded in a Trace so offsets in the
// normalized text can be mapped back to the input
package normalize

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"khmerfold/internal/core/rulepack"
	perr "khmerfold/internal/platform/errors"
)

// Level selects how many rule tiers apply
type Level int

// normalization levels; each includes the rules of the levels below it
const (
	LevelCanonical  Level = 0
	LevelStandard   Level = 1
	LevelAggressive Level = 2

	DefaultLevel = LevelStandard
)

// Valid reports whether l names a tier of the rule pack
func (l Level) Valid() bool { return l >= LevelCanonical && l <= rulepack.MaxLevel }

func (l Level) String() string {
	switch l {
	case LevelCanonical:
		return "canonical"
	case LevelStandard:
		return "standard"
	case LevelAggressive:
		return "aggressive"
	}
	return "level(" + strconv.Itoa(int(l)) + ")"
}

// ParseLevel accepts a tier number or its name
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "0", "canonical":
		return LevelCanonical, nil
	case "1", "standard", "":
		return LevelStandard, nil
	case "2", "aggressive":
		return LevelAggressive, nil
	}
	return 0, perr.InvalidArgf("normalize: unknown level %q", s)
}

// Mapper applies one tier set. It is immutable and safe for concurrent use
type Mapper struct {
	level Level
	trie  *trie
	rules []rule
}

type rule struct {
	from, to         string
	consumed, produced int
}

// New builds a Mapper for level. Levels outside 0..2 are rejected
func New(level Level) (*Mapper, error) {
	if !level.Valid() {
		return nil, perr.InvalidArgf("normalize: level %d out of range 0..%d", int(level), rulepack.MaxLevel)
	}
	pack, err := rulepack.Default()
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnknown, "normalize: load rule pack")
	}
	return FromRules(level, pack.Tier(int(level))), nil
}

// FromRules builds a Mapper over an explicit rule list. Later duplicates of a
// pattern are ignored
func FromRules(level Level, rs []rulepack.Rule) *Mapper {
	m := &Mapper{level: level, trie: newTrie(), rules: make([]rule, 0, len(rs))}
	for _, r := range rs {
		if r.From == "" || m.trie.has(r.From) {
			continue
		}
		m.trie.add(r.From, len(m.rules))
		m.rules = append(m.rules, rule{
			from:     r.From,
			to:       r.To,
			consumed: utf8.RuneCountInString(r.From),
			produced: utf8.RuneCountInString(r.To),
		})
	}
	return m
}

// Level returns the tier this mapper applies
func (m *Mapper) Level() Level { return m.level }

// Rules returns the number of patterns in the mapper
func (m *Mapper) Rules() int { return len(m.rules) }

// Normalize returns the rewritten text and the trace of substitutions. Text
// with no matches is returned as is with an empty trace. Invalid UTF-8 bytes
// are copied through and count as one codepoint each
func (m *Mapper) Normalize(s string) (string, Trace) {
	var (
		b      strings.Builder
		tr     Trace
		copied int // bytes of s already flushed to b
		src    int // codepoints consumed
		dst    int // codepoints produced
	)
	for i := 0; i < len(s); {
		if id, size, _ := longest(m.trie, s[i:]); id >= 0 {
			r := m.rules[id]
			if tr.Len() == 0 {
				b.Grow(len(s))
			}
			b.WriteString(s[copied:i])
			b.WriteString(r.to)
			tr.edits = append(tr.edits, Edit{
				Src: src, Dst: dst,
				Consumed: r.consumed, Produced: r.produced,
				From: r.from, To: r.to,
			})
			src += r.consumed
			dst += r.produced
			i += size
			copied = i
			continue
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		src++
		dst++
	}
	if tr.Len() == 0 {
		return s, tr
	}
	b.WriteString(s[copied:])
	return b.String(), tr
}

// String is Normalize without the trace
func (m *Mapper) String(s string) string {
	out, _ := m.Normalize(s)
	return out
}
