// Package module wires contact submissions into the API using modkit
package module

import (
	"net/http"

	modkit "kristech/internal/modkit"
	"kristech/internal/modkit/httpkit"

	"kristech/internal/core/ratelimit"
	"kristech/internal/services/api/contact/domain"
	chttp "kristech/internal/services/api/contact/http"
	crepo "kristech/internal/services/api/contact/repo"
	csvc "kristech/internal/services/api/contact/service"
	ndom "kristech/internal/services/notify/domain"
)

// Module implements the contact API module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     Exposed
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc     *csvc.Svc
	limiter *ratelimit.Limiter
}

// Ports declares the required injected worker port(s) for this API module
type Ports struct {
	Enqueuer ndom.EnqueuePort
}

// Exposed is the port bundle other modules read through Ports()
type Exposed struct {
	Service domain.ServicePort
	Backlog domain.BacklogPort
	Sweeper domain.SweeperPort
}

// New constructs the contact module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("contact"),
		modkit.WithPrefix("/contact"),
	}, opts...)...)

	cfg := FromConfig(deps.Cfg)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}
	if injected.Enqueuer == nil {
		panic("contact API module requires Enqueuer port (from services/notify)")
	}

	svc := csvc.New(deps.PG, crepo.NewPG(), csvc.Options{
		Enqueuer:         injected.Enqueuer,
		StatementTimeout: cfg.StatementTimeout,
	})
	limiter := ratelimit.New(ratelimit.Options{Window: cfg.RateWindow, Max: cfg.RateMax})

	auth := b.Auth
	if auth == nil && cfg.AdminSecret != "" {
		auth = httpkit.NewPortFunc(httpkit.HS256([]byte(cfg.AdminSecret), cfg.AdminIssuer))
	}
	if auth == nil {
		deps.Log.Warn().Msg("contact admin routes are open, set CONTACT_ADMIN_JWT_SECRET to protect them")
	}

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
		limiter:   limiter,
	}
	m.ports = Exposed{Service: svc, Backlog: svc, Sweeper: limiter}

	external := b.Register
	m.register = func(r httpkit.Router) {
		chttp.Register(r, m.svc, chttp.Options{
			Limiter: m.limiter,
			Auth:    auth,
			Base:    m.prefix,
		})
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
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

// Ports returns the exposed port bundle
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return m.name }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return m.prefix }
