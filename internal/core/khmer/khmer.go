// Package khmer holds the codepoint category tables shared by the segmenter
// and the reorderer. Tables are built once and never mutated
package khmer

import (
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

// Named codepoints used across the pipeline
const (
	LetterKa rune = 0x1780
	LetterDa rune = 0x178A
	LetterTa rune = 0x178F
	LetterRo rune = 0x179A
	LetterQa rune = 0x17A2

	SignAA      rune = 0x17B6
	SignII      rune = 0x17B8
	SignU       rune = 0x17BB
	SignOE      rune = 0x17BE
	SignE       rune = 0x17C1
	SignAU      rune = 0x17C4
	Nikahit     rune = 0x17C6
	Muusikatoan rune = 0x17C9
	Triisap     rune = 0x17CA
	Robat       rune = 0x17CC
	Coeng       rune = 0x17D2

	ZWNJ rune = 0x200C
	ZWJ  rune = 0x200D

	blockStart rune = 0x1780
	blockEnd   rune = 0x17DD
)

// SegClass is the category the segmenter uses to decide syllable boundaries
type SegClass uint8

// segmentation categories
const (
	SegIgnore SegClass = iota
	SegBase
	SegInside
	SegCoeng
	SegDigit
)

func (c SegClass) String() string {
	switch c {
	case SegBase:
		return "base"
	case SegInside:
		return "inside"
	case SegCoeng:
		return "coeng"
	case SegDigit:
		return "digit"
	default:
		return "ignore"
	}
}

// ReorderClass orders the codepoints of one cluster. The numeric order is the
// canonical sort order
type ReorderClass uint8

// reorder categories, ascending sort order
const (
	ClassOther ReorderClass = iota
	ClassBase
	ClassRobat
	ClassCoeng
	ClassJoiner
	ClassShift
	ClassVowel
	ClassSignAbove
	ClassSignFinal
)

var reorderNames = [...]string{
	ClassOther:     "other",
	ClassBase:      "base",
	ClassRobat:     "robat",
	ClassCoeng:     "coeng",
	ClassJoiner:    "joiner",
	ClassShift:     "shift",
	ClassVowel:     "vowel",
	ClassSignAbove: "sign_above",
	ClassSignFinal: "sign_final",
}

func (c ReorderClass) String() string {
	if int(c) < len(reorderNames) {
		return reorderNames[c]
	}
	return "other"
}

var (
	// Khmer digits, Khmer lek attak digits and ASCII digits
	segDigit = rangetable.Merge(&unicode.RangeTable{R16: []unicode.Range16{
		{Lo: '0', Hi: '9', Stride: 1},
		{Lo: 0x17E0, Hi: 0x17F9, Stride: 1},
	}})

	// consonants and independent vowels
	segBase = rangetable.Merge(&unicode.RangeTable{R16: []unicode.Range16{
		{Lo: 0x1780, Hi: 0x17B3, Stride: 1},
	}})

	// dependent vowels, signs and joiners. U+17D2 falls in here too but is
	// claimed by SegCoeng first
	segInside = rangetable.Merge(
		&unicode.RangeTable{R16: []unicode.Range16{
			{Lo: 0x17B6, Hi: 0x17D3, Stride: 1},
			{Lo: 0x17DD, Hi: 0x17DD, Stride: 1},
		}},
		rangetable.New(ZWNJ, ZWJ),
	)
)

// SegTables exposes the segmentation tables in priority order for callers that
// want to enumerate them, eg coverage checks
func SegTables() map[SegClass]*unicode.RangeTable {
	return map[SegClass]*unicode.RangeTable{
		SegDigit:  segDigit,
		SegBase:   segBase,
		SegCoeng:  rangetable.New(Coeng),
		SegInside: segInside,
	}
}

// SegClassOf returns the segmentation class of r. Unknown and invalid
// codepoints are SegIgnore
func SegClassOf(r rune) SegClass {
	if r < '0' {
		return SegIgnore
	}
	switch {
	case unicode.Is(segDigit, r):
		return SegDigit
	case unicode.Is(segBase, r):
		return SegBase
	case r == Coeng:
		return SegCoeng
	case unicode.Is(segInside, r):
		return SegInside
	}
	return SegIgnore
}

var reorderTable = buildReorderTable()

func buildReorderTable() (t [blockEnd - blockStart + 1]ReorderClass) {
	set := func(lo, hi rune, c ReorderClass) {
		for r := lo; r <= hi; r++ {
			t[r-blockStart] = c
		}
	}
	set(0x1780, 0x17B3, ClassBase)
	set(0x17B4, 0x17C5, ClassVowel)
	set(0x17C6, 0x17C6, ClassSignAbove)
	set(0x17C7, 0x17C8, ClassSignFinal)
	set(0x17C9, 0x17CA, ClassShift)
	set(0x17CB, 0x17CB, ClassSignAbove)
	set(0x17CC, 0x17CC, ClassRobat)
	set(0x17CD, 0x17D1, ClassSignAbove)
	set(0x17D2, 0x17D2, ClassCoeng)
	set(0x17D3, 0x17D3, ClassSignAbove)
	set(0x17D4, 0x17DC, ClassOther)
	set(0x17DD, 0x17DD, ClassSignAbove)
	return t
}

// ReorderClassOf returns the reorder class of r, ClassOther outside the table
func ReorderClassOf(r rune) ReorderClass {
	switch {
	case r >= blockStart && r <= blockEnd:
		return reorderTable[r-blockStart]
	case r == ZWNJ, r == ZWJ:
		return ClassJoiner
	}
	return ClassOther
}

// IsKhmer reports whether r lies in the main Khmer block U+1780..U+17FF
func IsKhmer(r rune) bool { return r >= blockStart && r <= 0x17FF }
