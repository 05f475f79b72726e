// Package reorder rewrites one grapheme cluster into canonical order.
//
// Codepoints are stably sorted by reorder class, a consonant written after a
// coeng being treated as part of the subscript, then a fixed list of rewrites
// repairs compositions the sort cannot express. Rewrites run in order and each
// sees the output of the previous one
package reorder

import (
	"cmp"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"khmerfold/internal/core/khmer"
)

// Tokens outside [MinLen, MaxLen] codepoints are returned unchanged
const (
	MinLen = 2
	MaxLen = 30
)

const (
	// consonants that may carry a shift sign, ie all but ba
	nonBa = `[\x{1780}-\x{1793}\x{1795}-\x{17A2}]`
	// series one consonants taking triisap
	triisapBase = `[\x{179E}-\x{17A0}\x{17A2}]`
	// series two consonants taking muusikatoan
	muusikatoanBase = `[\x{1784}\x{1789}\x{1793}\x{1794}\x{1798}-\x{179D}]`
	// vowels above, written after the u sign
	vowelAbove = `[\x{17B7}-\x{17BA}\x{17BE}\x{17D0}\x{17DD}]|\x{17B6}\x{17C6}`
)

// shiftCluster matches a consonant cluster of the given series followed by
// the u sign and a vowel above
func shiftCluster(series string) string {
	return `(` + series + `(?:\x{17D2}` + nonBa + `){0,2}` +
		`|` + nonBa + `(?:\x{17D2}` + series + `(?:\x{17D2}` + nonBa + `)?` +
		`|\x{17D2}` + nonBa + `\x{17D2}` + series + `))` +
		`\x{17BB}(` + vowelAbove + `)`
}

// Rewrite is one ordered substitution applied after sorting
type Rewrite struct {
	Name    string
	Pattern *regexp.Regexp
	Repl    string
}

var rewrites = []Rewrite{
	{"collapse joiners", regexp.MustCompile(`([\x{200C}\x{200D}])[\x{200C}\x{200D}]+`), "${1}"},
	{"collapse coeng", regexp.MustCompile(`\x{17D2}\x{17D2}+`), "\u17D2"},

	{"e ii to oe", regexp.MustCompile(`\x{17C1}(\x{17BB}?)\x{17B8}`), "${1}\u17BE"},
	{"e aa to au", regexp.MustCompile(`\x{17C1}(\x{17BB}?)\x{17B6}`), "${1}\u17C4"},
	{"ii e to oe", regexp.MustCompile(`\x{17B8}(\x{17BB}?)\x{17C1}`), "${1}\u17BE"},
	{"aa e to au", regexp.MustCompile(`\x{17B6}(\x{17BB}?)\x{17C1}`), "${1}\u17C4"},

	{"u before vowel above", regexp.MustCompile(`(` + vowelAbove + `)(\x{17BB})`), "${2}${1}"},

	{"triisap", regexp.MustCompile(shiftCluster(triisapBase)), "${1}\u17CA${2}"},
	{"muusikatoan", regexp.MustCompile(shiftCluster(muusikatoanBase)), "${1}\u17C9${2}"},

	{"subscript ro last", regexp.MustCompile(`(\x{17D2}\x{179A})(\x{17D2}[\x{1780}-\x{17B3}])`), "${2}${1}"},
	{"subscript da to ta", regexp.MustCompile(`(\x{17D2})\x{178A}`), "${1}\u178F"},
}

// Rewrites returns the post-sort rewrites in the order they run
func Rewrites() []Rewrite { return slices.Clone(rewrites) }

// Applies reports whether Reorder would touch token: it must be MinLen to
// MaxLen codepoints long and start with a base consonant
func Applies(token string) bool {
	n := utf8.RuneCountInString(token)
	if n < MinLen || n > MaxLen {
		return false
	}
	r, _ := utf8.DecodeRuneInString(token)
	return khmer.ReorderClassOf(r) == khmer.ClassBase
}

type unit struct {
	s     string
	class khmer.ReorderClass
}

// Reorder returns the canonical form of token. Tokens that do not qualify are
// returned unchanged
func Reorder(token string) string {
	if !Applies(token) {
		return token
	}

	var buf [MaxLen]unit
	units := buf[:0]
	prev := khmer.ClassOther
	for i := 0; i < len(token); {
		r, size := utf8.DecodeRuneInString(token[i:])
		c := khmer.ReorderClassOf(r)
		if c == khmer.ClassBase && prev == khmer.ClassCoeng {
			c = khmer.ClassCoeng
		}
		units = append(units, unit{s: token[i : i+size], class: c})
		prev = c
		i += size
	}
	slices.SortStableFunc(units, func(a, b unit) int { return cmp.Compare(a.class, b.class) })

	var b strings.Builder
	b.Grow(len(token))
	for _, u := range units {
		b.WriteString(u.s)
	}
	out := b.String()
	for _, rw := range rewrites {
		out = rw.Pattern.ReplaceAllString(out, rw.Repl)
	}
	return out
}

// All reorders each token in place and returns the slice
func All(tokens []string) []string {
	for i, t := range tokens {
		tokens[i] = Reorder(t)
	}
	return tokens
}
