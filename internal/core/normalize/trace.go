package normalize

import "sort"

// Edit records one substitution. Offsets and lengths count codepoints: the
// rule consumed [Src, Src+Consumed) of the input and produced
// [Dst, Dst+Produced) of the output
type Edit struct {
	Src      int    `json:"src"`
	Dst      int    `json:"dst"`
	Consumed int    `json:"consumed"`
	Produced int    `json:"produced"`
	From     string `json:"from"`
	To       string `json:"to"`
}

// Trace lists the substitutions of one Normalize call in input order.
// Codepoints between edits were copied unchanged
type Trace struct {
	edits []Edit
}

// Len returns the number of substitutions
func (t Trace) Len() int { return len(t.edits) }

// Edits returns a copy of the recorded substitutions
func (t Trace) Edits() []Edit {
	out := make([]Edit, len(t.edits))
	copy(out, t.edits)
	return out
}

// Delta is the output length minus the input length, in codepoints
func (t Trace) Delta() int {
	d := 0
	for _, e := range t.edits {
		d += e.Produced - e.Consumed
	}
	return d
}

// SourceOffset maps a codepoint offset of the normalized text back to the
// input. Offsets inside a replacement clamp into the consumed span, offsets
// after it shift by the accumulated length difference
func (t Trace) SourceOffset(dst int) int {
	i := sort.Search(len(t.edits), func(i int) bool { return t.edits[i].Dst > dst }) - 1
	if i < 0 {
		return dst
	}
	e := t.edits[i]
	if dst < e.Dst+e.Produced {
		return e.Src + min(dst-e.Dst, e.Consumed)
	}
	return e.Src + e.Consumed + (dst - e.Dst - e.Produced)
}
