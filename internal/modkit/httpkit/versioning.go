package httpkit

import (
	"net/http"
	"strings"
)

// APIPrefix returns the mount path of an api version, e.g. /api/v1
func APIPrefix(version string) string {
	return "/api/" + strings.Trim(version, "/")
}

// MountAPI mounts a subrouter under /api/{version} with mw, then lets
// mount register routes on it
//
//	httpkit.MountAPI(r, "v1", httpkit.CommonStack(), func(api httpkit.Router) {
//	  analyze.MountRoutes(api)
//	})
func MountAPI(r Router, version string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	MountUnder(r, APIPrefix(version), mw, mount)
}

// MountUnder mounts a subrouter at prefix running mw before every route
func MountUnder(r Router, prefix string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route(prefix, func(sub Router) {
		if len(mw) > 0 {
			sub.Use(mw...)
		}
		mount(sub)
	})
}

// MountAPIV1 is MountAPI for v1
func MountAPIV1(r Router, mw []func(http.Handler) http.Handler, mount func(Router)) {
	MountAPI(r, "v1", mw, mount)
}
