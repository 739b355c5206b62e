package http

import (
	stdhttp "net/http"

	mw "github.com/go-chi/chi/v5/middleware"
)

// MountProfiler serves net/http/pprof under prefix+"/pprof" when enabled.
// The api mounts it at "/debug" behind CORE_API_PROFILER
func MountProfiler(r Router, prefix string, enabled bool) {
	if !enabled {
		return
	}
	prof := stdhttp.StripPrefix(prefix, mw.Profiler())
	for _, p := range []string{prefix, prefix + "/*"} {
		r.Get(p, prof.ServeHTTP)
	}
}
