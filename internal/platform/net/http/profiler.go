package http

import (
	stdhttp "net/http"

	mw "github.com/go-chi/chi/v5/middleware"
)

// MountProfiler mounts pprof under prefix, e.g. "/debug" serves /debug/pprof/
// callers keep it off in production
func MountProfiler(r Router, prefix string, enabled bool) {
	if !enabled {
		return
	}
	r.Handle(prefix+"/*", stdhttp.StripPrefix(prefix, mw.Profiler()))
}
