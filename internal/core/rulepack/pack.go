// Package rulepack loads the embedded normalization rule table. Rules are
// literal substring rewrites grouped in cumulative tiers: level n applies every
// rule whose tier is <= n
package rulepack

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"unicode/utf8"
)

//go:embed rules.json
var embedded []byte

// MaxLevel is the highest tier the pack defines
const MaxLevel = 2

type rawRule struct {
	From string `json:"from"`
	To   string `json:"to"`
	Note string `json:"note,omitempty"`
}

type rawTier struct {
	Level int       `json:"level"`
	Note  string    `json:"note"`
	Rules []rawRule `json:"rules"`
}

type rawPack struct {
	Version int            `json:"version"`
	Meta    map[string]any `json:"meta"`
	Tiers   []rawTier      `json:"tiers"`
}

// Rule is one literal rewrite. To may be empty, which deletes From
type Rule struct {
	From  string
	To    string
	Level int
	Note  string
}

// Pack is a validated rule table. It is immutable once loaded
type Pack struct {
	Version int
	Meta    map[string]any

	// ordered by level, then by file order within a level
	rules []Rule
}

// Load parses and validates the embedded rules.json
func Load() (*Pack, error) { return Parse(embedded) }

var defaultPack = sync.OnceValues(Load)

// Default returns the embedded pack, parsed once per process
func Default() (*Pack, error) { return defaultPack() }

// Parse builds a Pack from a rules.json document
func Parse(data []byte) (*Pack, error) {
	var rp rawPack
	if err := json.Unmarshal(data, &rp); err != nil {
		return nil, fmt.Errorf("rulepack: parse rules.json: %w", err)
	}
	if rp.Version != 1 {
		return nil, fmt.Errorf("rulepack: unsupported rules.json version %d (want 1)", rp.Version)
	}

	p := &Pack{Version: rp.Version, Meta: rp.Meta}
	for _, t := range rp.Tiers {
		if t.Level < 0 || t.Level > MaxLevel {
			return nil, fmt.Errorf("rulepack: tier level %d out of range 0..%d", t.Level, MaxLevel)
		}
		for _, r := range t.Rules {
			if r.From == "" {
				return nil, fmt.Errorf("rulepack: tier %d: empty pattern", t.Level)
			}
			if !utf8.ValidString(r.From) || !utf8.ValidString(r.To) {
				return nil, fmt.Errorf("rulepack: tier %d: rule %+q is not valid utf-8", t.Level, r.From)
			}
			p.rules = append(p.rules, Rule{From: r.From, To: r.To, Level: t.Level, Note: r.Note})
		}
	}
	sort.SliceStable(p.rules, func(i, j int) bool { return p.rules[i].Level < p.rules[j].Level })

	// a pattern may appear once per cumulative set, otherwise the winner
	// would depend on insertion order
	seen := make(map[string]int, len(p.rules))
	for _, r := range p.rules {
		if lvl, ok := seen[r.From]; ok {
			return nil, fmt.Errorf("rulepack: pattern %+q defined at level %d and %d", r.From, lvl, r.Level)
		}
		seen[r.From] = r.Level
	}
	return p, nil
}

// Tier returns the cumulative rule set for level. Levels above MaxLevel
// return every rule, negative levels return nil
func (p *Pack) Tier(level int) []Rule {
	if level < 0 {
		return nil
	}
	n := sort.Search(len(p.rules), func(i int) bool { return p.rules[i].Level > level })
	out := make([]Rule, n)
	copy(out, p.rules[:n])
	return out
}

// Len returns the total number of rules across all tiers
func (p *Pack) Len() int { return len(p.rules) }
