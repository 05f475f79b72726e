// Package module defines the minimal contract for a modkit module
package module

import (
	phttp "khmerfold/internal/platform/net/http"
)

// Module defines the minimal contract used by modkit
// kept as a sibling package so a module can export its own ports type without import cycles
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}

// HasPorts reports whether m exposes any port set
func HasPorts(m Module) bool {
	if m == nil {
		return false
	}
	return m.Ports() != nil
}
