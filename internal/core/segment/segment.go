// Package segment splits normalized Khmer text into grapheme cluster tokens.
//
// A small state machine walks the text one codepoint at a time: a base
// consonant or a digit opens a token, dependent signs and coeng stacks extend
// it, and anything outside the Khmer classes closes it and is dropped. Tokens
// carry codepoint offsets into the text they were cut from
package segment

import (
	"iter"
	"slices"
	"unicode/utf8"

	"khmerfold/internal/core/khmer"
)

// MaxTokenLen caps a token in codepoints; longer runs are split
const MaxTokenLen = 255

// sentinel force-closes the token that consumed it. The codepoint belongs to
// the Tibetan block and is classed ignorable, so it cannot currently be
// consumed into a token. Kept for compatibility with existing indexes
const sentinel rune = 0x0F7F

// Token is one grapheme cluster. Start and End are codepoint offsets,
// End exclusive
type Token struct {
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Len returns the token length in codepoints
func (t Token) Len() int { return t.End - t.Start }

type state uint8

const (
	stateInit state = iota
	stateInside
	stateAfterCoeng
	stateAfterDigit
)

// step returns the state after a codepoint of class c and whether c starts a
// new token. The boundary is only honored when the current token is non-empty
func step(st state, c khmer.SegClass) (state, bool) {
	switch st {
	case stateInit:
		switch c {
		case khmer.SegBase:
			return stateInside, true
		case khmer.SegDigit:
			return stateAfterDigit, true
		}
	case stateInside:
		switch c {
		case khmer.SegCoeng:
			return stateAfterCoeng, false
		case khmer.SegInside:
			return stateInside, false
		}
		return st, true
	case stateAfterCoeng:
		switch c {
		case khmer.SegDigit:
			return st, true
		case khmer.SegCoeng:
			return st, false
		}
		return stateInside, false
	case stateAfterDigit:
		if c != khmer.SegDigit {
			return st, true
		}
	}
	return st, false
}

type text interface{ ~string | ~[]byte }

// span describes the next token found at the start of a buffer
type span struct {
	lo, hi int  // token bytes
	adv    int  // bytes consumed, including dropped codepoints
	skip   int  // codepoints dropped before the token
	n      int  // token length in codepoints
	trail  int  // codepoints dropped after the token, 0 or 1
	open   bool // the buffer ended before the token was closed
}

// scan runs the state machine over s from its first byte. Unless atEOF, an
// incomplete trailing rune ends the scan with open set
func scan[S text](s S, atEOF bool) (sp span) {
	st := stateInit
	for i := 0; i < len(s); {
		head := s[i:min(len(s), i+utf8.UTFMax)]
		if !atEOF && !utf8.FullRuneInString(string(head)) {
			sp.open = true
			return sp
		}
		r, size := utf8.DecodeRuneInString(string(head))
		c := khmer.SegClassOf(r)
		if c == khmer.SegIgnore {
			i += size
			sp.adv = i
			if sp.n > 0 {
				sp.trail = 1
				return sp
			}
			sp.skip++
			continue
		}

		next, brk := step(st, c)
		if brk && sp.n > 0 {
			return sp
		}
		if sp.n == 0 {
			sp.lo = i
		}
		st = next
		i += size
		sp.hi, sp.adv = i, i
		sp.n++
		if r == sentinel || sp.n >= MaxTokenLen {
			return sp
		}
	}
	sp.open = true
	return sp
}

// Scanner pulls tokens from a string one at a time. The zero value is an
// exhausted scanner; use NewScanner or Reset
type Scanner struct {
	src string
	pos int // bytes
	off int // codepoints
	tok Token
}

// NewScanner returns a scanner over text
func NewScanner(text string) *Scanner {
	return &Scanner{src: text}
}

// Reset rewinds the scanner onto a new text
func (s *Scanner) Reset(text string) {
	*s = Scanner{src: text}
}

// Scan advances to the next token and reports whether there was one
func (s *Scanner) Scan() bool {
	if s.pos >= len(s.src) {
		return false
	}
	sp := scan(s.src[s.pos:], true)
	if sp.n == 0 {
		s.pos = len(s.src)
		s.off += sp.skip
		return false
	}
	start := s.off + sp.skip
	s.tok = Token{
		Text:  s.src[s.pos+sp.lo : s.pos+sp.hi],
		Start: start,
		End:   start + sp.n,
	}
	s.pos += sp.adv
	s.off = s.tok.End + sp.trail
	return true
}

// Token returns the token produced by the last successful Scan
func (s *Scanner) Token() Token { return s.tok }

// Segment lazily yields the tokens of text in order. The sequence can be
// ranged over more than once
func Segment(text string) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		sc := NewScanner(text)
		for sc.Scan() {
			if !yield(sc.Token()) {
				return
			}
		}
	}
}

// All returns every token of text
func All(text string) []Token {
	return slices.Collect(Segment(text))
}

// Texts returns just the token strings of text
func Texts(text string) []string {
	var out []string
	for tok := range Segment(text) {
		out = append(out, tok.Text)
	}
	return out
}

// SplitFunc is a bufio.SplitFunc yielding token bytes. Offsets are not
// tracked; use Scanner when they are needed
func SplitFunc(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	sp := scan(data, atEOF)
	if sp.open && !atEOF {
		if sp.n == 0 {
			return sp.adv, nil, nil
		}
		// token may continue; drop what was skipped and wait for more
		return sp.lo, nil, nil
	}
	if sp.n == 0 {
		return sp.adv, nil, nil
	}
	return sp.adv, data[sp.lo:sp.hi], nil
}
