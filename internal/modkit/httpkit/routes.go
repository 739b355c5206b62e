package httpkit

import "net/http"

// MountUnder opens a sub-router at prefix, applies the module's own
// middleware there and lets mount register the module routes on it.
// A module's middleware never leaks onto its siblings under /api/v1
func MountUnder(r Router, prefix string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route(prefix, func(sub Router) {
		if len(mw) != 0 {
			sub.Use(mw...)
		}
		if mount != nil {
			mount(sub)
		}
	})
}
