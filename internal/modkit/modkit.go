package modkit

import (
	phttp "khmerfold/internal/platform/net/http"
)

// Module is the common surface for API modules that can mount routes and expose ports
type Module interface {
	// MountRoutes mounts HTTP routes under the provided router seam
	MountRoutes(r phttp.Router)
	// Ports returns a module specific port set for cross wiring
	Ports() any

	// Name returns the module name
	Name() string
}

// Builder constructs a Module from shared deps and options
type Builder func(Deps, ...Option) Module

// MountAll mounts every non nil module on r in order
func MountAll(r phttp.Router, mods ...Module) []string {
	names := make([]string, 0, len(mods))
	for _, m := range mods {
		if m == nil {
			continue
		}
		m.MountRoutes(r)
		names = append(names, m.Name())
	}
	return names
}
