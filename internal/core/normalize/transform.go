package normalize

import (
	"unicode/utf8"

	"golang.org/x/text/transform"
)

// Transformer returns a streaming form of the mapper for use with
// transform.NewReader and friends. Output equals Normalize for any chunking
// of the input. No trace is kept
func (m *Mapper) Transformer() transform.Transformer {
	return mapTransformer{m: m}
}

type mapTransformer struct {
	transform.NopResetter
	m *Mapper
}

func (t mapTransformer) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		rest := src[nSrc:]
		id, size, partial := longest(t.m.trie, rest)
		if partial && !atEOF {
			// a longer pattern may continue in the next chunk
			return nDst, nSrc, transform.ErrShortSrc
		}
		if id >= 0 {
			to := t.m.rules[id].to
			if nDst+len(to) > len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			nDst += copy(dst[nDst:], to)
			nSrc += size
			continue
		}
		if !atEOF && !utf8.FullRune(rest) {
			return nDst, nSrc, transform.ErrShortSrc
		}
		_, n := utf8.DecodeRune(rest)
		if nDst+n > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += copy(dst[nDst:], rest[:n])
		nSrc += n
	}
	return nDst, nSrc, nil
}
