// Package module wires health endpoints into the API using a tiny module
package module

import (
	"net/http"
	"time"

	modkit "kristech/internal/modkit"
	"kristech/internal/modkit/httpkit"
	"kristech/internal/modkit/repokit"

	healthhttp "kristech/internal/services/api/health/http"
)

// Module implements the modkit.Module interface
type Module struct {
	deps      modkit.Deps
	name      string
	prefix    string
	mws       []func(http.Handler) http.Handler
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	startedAt time.Time
}

// New constructs a health module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("health"),
		modkit.WithPrefix("/health"),
	}, opts...)...)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		startedAt: time.Now(),
	}

	// a nil TxRunner must stay a nil interface so the probe reports it
	var db repokit.Queryer
	if deps.PG != nil {
		db = deps.PG
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		healthhttp.Register(r, healthhttp.Deps{
			StartedAt:   m.startedAt,
			Environment: deps.Cfg.Environment(),
			Production:  deps.Cfg.IsProduction(),
			DB:          db,
		})
		if external != nil {
			external(r)
		}
	}

	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return m.name }

// Prefix implements the modkit.Module interface
func (m *Module) Prefix() string { return m.prefix }

// Middlewares implements the modkit.Module interface
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
