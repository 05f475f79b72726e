package modkit

import (
	"net/http"

	"khmerfold/internal/modkit/httpkit"
	"khmerfold/internal/platform/logger"
	str "khmerfold/internal/platform/strings"
)

// Built is a plain struct with the fields modules care about
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
	Ports  any
	Log    logger.Logger

	Subrouter func(httpkit.Router) httpkit.Router
	Register  func(httpkit.Router)
}

// Build applies options and fills defaults for the hooks and the logger
func Build(opts ...Option) Built {
	var c buildCfg
	for _, o := range opts {
		o(&c)
	}
	if c.subrouter == nil {
		c.subrouter = func(r httpkit.Router) httpkit.Router { return r }
	}
	if c.register == nil {
		c.register = func(httpkit.Router) {}
	}
	if c.log == nil {
		name := c.name
		if name == "" {
			name = "module"
		}
		c.log = logger.Named(name)
	}
	return Built{
		Name:      c.name,
		Prefix:    c.prefix,
		Mw:        append([]func(http.Handler) http.Handler(nil), c.mw...),
		Ports:     c.ports,
		Log:       *c.log,
		Subrouter: c.subrouter,
		Register:  c.register,
	}
}

// Mount is the MountRoutes body shared by modules: a route group at Prefix
// running the module middlewares and subrouter hook, then own and extra endpoints
func (b Built) Mount(r httpkit.Router, own func(httpkit.Router)) {
	r.Route(str.MustPrefix(b.Prefix), func(rr httpkit.Router) {
		if len(b.Mw) > 0 {
			rr.Use(b.Mw...)
		}
		rr = b.Subrouter(rr)
		if own != nil {
			own(rr)
		}
		b.Register(rr)
	})
}
