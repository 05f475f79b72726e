// Package modkit provides module wiring and core deps
package modkit

import (
	"khmerfold/internal/core/analyzer"
	"khmerfold/internal/modkit/repokit"
	"khmerfold/internal/platform/config"
	"khmerfold/internal/platform/logger"
	"khmerfold/internal/platform/store"
)

// Deps holds core dependencies passed to modules
// PG and CH stay nil when the backend is disabled
type Deps struct {
	Log      logger.Logger
	Cfg      config.Conf
	PG       repokit.TxRunner
	CH       store.Clickhouse
	Store    *store.Store
	Analyzer *analyzer.Analyzer
}

// HasPG reports whether the term index database is wired
func (d Deps) HasPG() bool { return d.PG != nil }

// HasCH reports whether the term event warehouse is wired
func (d Deps) HasCH() bool { return d.CH != nil }

// FromStore copies the backend seams of s into d
func (d Deps) FromStore(s *store.Store) Deps {
	d.Store = s
	if s == nil {
		return d
	}
	if s.PG != nil {
		d.PG = s.PG
	}
	if s.CH != nil {
		d.CH = s.CH
	}
	return d
}
