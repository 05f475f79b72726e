// Package version provides information about the build version of the service.
package version

import "strconv"

// Analyzer identifies the canonicalization behavior. Bump it whenever the
// rule pack, segmentation or reorder rules change so stored terms can be told
// apart from freshly analyzed ones
const Analyzer = 1

// BuildInfo holds version information about the service build.
type BuildInfo struct {
	Service  string `json:"service"`
	Version  string `json:"version"`
	Commit   string `json:"commit"`
	Date     string `json:"date"`
	Analyzer string `json:"analyzer"`
}

// Info returns the build information. The version, commit, and date variables
// are intended to be set at build time using -ldflags.
func Info() BuildInfo {
	// Set via -ldflags "-X 'khmerfold/internal/core/version.version=v0.0.1'
	// -X 'khmerfold/internal/core/version.commit=abcd' -X 'khmerfold/internal/core/version.date=2026-10-19'"
	return BuildInfo{
		Service:  service,
		Version:  version,
		Commit:   commit,
		Date:     date,
		Analyzer: "v" + strconv.Itoa(Analyzer),
	}
}

var (
	service = "khmerfold-api"
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
