package normalize

import "unicode/utf8"

// trie is a rune keyed prefix tree over the rule patterns. Only the goto
// function is needed: matching restarts at every input position, so there are
// no failure links

type trieNode struct {
	next map[rune]int32
	rule int32 // index into Mapper.rules or -1
}

type trie struct {
	nodes []trieNode
}

func newTrie() *trie {
	return &trie{nodes: []trieNode{{rule: -1}}}
}

// add inserts pat and associates it with rule id
func (t *trie) add(pat string, id int) {
	state := int32(0)
	for _, r := range pat {
		nxt, ok := t.nodes[state].next[r]
		if !ok {
			nxt = int32(len(t.nodes))
			if t.nodes[state].next == nil {
				t.nodes[state].next = make(map[rune]int32, 2)
			}
			t.nodes[state].next[r] = nxt
			t.nodes = append(t.nodes, trieNode{rule: -1})
		}
		state = nxt
	}
	t.nodes[state].rule = int32(id)
}

// has reports whether pat is already a complete pattern
func (t *trie) has(pat string) bool {
	state := int32(0)
	for _, r := range pat {
		nxt, ok := t.nodes[state].next[r]
		if !ok {
			return false
		}
		state = nxt
	}
	return t.nodes[state].rule >= 0
}

type text interface{ ~string | ~[]byte }

// longest walks s from its first byte and returns the rule id and byte length
// of the longest pattern that prefixes s, or id -1. partial reports that s
// ran out while a longer pattern was still reachable, including an incomplete
// trailing rune
func longest[S text](t *trie, s S) (id, size int, partial bool) {
	id = -1
	state := int32(0)
	for i := 0; i < len(s); {
		if len(t.nodes[state].next) == 0 {
			return id, size, false
		}
		head := s[i:min(len(s), i+utf8.UTFMax)]
		if !utf8.FullRuneInString(string(head)) {
			return id, size, true
		}
		r, n := utf8.DecodeRuneInString(string(head))
		nxt, ok := t.nodes[state].next[r]
		if !ok {
			return id, size, false
		}
		state = nxt
		i += n
		if rid := t.nodes[state].rule; rid >= 0 {
			id, size = int(rid), i
		}
	}
	return id, size, len(t.nodes[state].next) > 0
}
