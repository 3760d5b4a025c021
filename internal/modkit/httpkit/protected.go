package httpkit

import (
	"net/http"
	"strings"

	"kristech/internal/modkit/swaggerkit"
	"kristech/internal/platform/net/middleware"
)

// Protected groups routes under bearer auth and marks them secured in the served docs
// base is the path the group is mounted under, used only for the docs
// a nil port leaves the routes open and unmarked
func Protected(r Router, base string, p middleware.AuthPort, fn func(Router)) {
	if isNilPort(p) {
		r.Group(fn)
		return
	}
	r.Group(func(gr Router) {
		gr.Use(Auth(p))
		fn(&securedRouter{Router: gr, base: base})
	})
}

func isNilPort(p middleware.AuthPort) bool {
	if p == nil {
		return true
	}
	port, ok := p.(*Port)
	return ok && port == nil
}

type securedRouter struct {
	Router
	base string
}

func joinPath(a, b string) string {
	a = strings.TrimSuffix(a, "/")
	if !strings.HasPrefix(b, "/") {
		b = "/" + b
	}
	return a + b
}

func (s *securedRouter) Route(prefix string, fn func(Router)) {
	base := joinPath(s.base, prefix)
	s.Router.Route(prefix, func(sub Router) { fn(&securedRouter{Router: sub, base: base}) })
}

func (s *securedRouter) Group(fn func(Router)) {
	s.Router.Group(func(sub Router) { fn(&securedRouter{Router: sub, base: s.base}) })
}

func (s *securedRouter) Get(path string, h Handler) {
	swaggerkit.MarkSecure(joinPath(s.base, path), http.MethodGet)
	s.Router.Get(path, h)
}

func (s *securedRouter) Post(path string, h Handler) {
	swaggerkit.MarkSecure(joinPath(s.base, path), http.MethodPost)
	s.Router.Post(path, h)
}

func (s *securedRouter) Patch(path string, h Handler) {
	swaggerkit.MarkSecure(joinPath(s.base, path), http.MethodPatch)
	s.Router.Patch(path, h)
}
