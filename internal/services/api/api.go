// Package api provides the HTTP API for the application
package api

import (
	"fmt"

	"kristech/internal/platform/config"
	phttp "kristech/internal/platform/net/http"
	"kristech/internal/platform/net/middleware"
	"kristech/internal/platform/store"

	"kristech/internal/modkit"
	"kristech/internal/modkit/httpkit"
	"kristech/internal/modkit/module"
	"kristech/internal/modkit/swaggerkit"

	contactmod "kristech/internal/services/api/contact/module"
	"kristech/internal/services/api/docs"
	healthmod "kristech/internal/services/api/health/module"

	cdom "kristech/internal/services/api/contact/domain"
	hkdom "kristech/internal/services/housekeeping/domain"
	hkmod "kristech/internal/services/housekeeping/module"
	ndom "kristech/internal/services/notify/domain"
	notifymod "kristech/internal/services/notify/module"
)

// Prefix is where every module is mounted
const Prefix = "/api"

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	EnableSwagger  bool
	EnableProfiler bool

	// Auth overrides the admin port the contact module builds from config
	Auth middleware.AuthPort
	// Notify overrides non zero notify settings, mostly for tests
	Notify notifymod.Options
}

// Workers are the loops the process drives next to the http server
type Workers struct {
	Notify       ndom.RunnerPort
	Housekeeping hkdom.RunnerPort
}

// Mount mounts the API service onto the given router and returns its background workers
func Mount(r phttp.Router, opt Options) (Workers, error) {
	if opt.Store == nil || opt.Store.PG == nil {
		return Workers{}, fmt.Errorf("api: postgres store is required")
	}
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
		Log: opt.Store.Log,
	}

	// the notify worker owns the Enqueuer port the contact API needs
	notify, err := notifymod.New(deps, opt.Notify)
	if err != nil {
		return Workers{}, fmt.Errorf("api: notify: %w", err)
	}
	nports := module.MustPortsOf[notifymod.Ports](notify)

	contact := contactmod.New(
		deps,
		modkit.WithPorts(contactmod.Ports{Enqueuer: nports.Enqueuer}),
		modkit.WithAuth(opt.Auth),
	)

	house, err := hkmod.New(deps, hkmod.Needs{
		Sweeper: module.MustPortsOf[cdom.SweeperPort](contact),
		Backlog: module.MustPortsOf[cdom.BacklogPort](contact),
		Pending: notify,
	})
	if err != nil {
		return Workers{}, fmt.Errorf("api: housekeeping: %w", err)
	}

	mods := []module.Module{
		healthmod.New(deps),
		notify,  // worker, registered for its ports only
		contact, // API module that depends on the worker's Enqueuer
		house,
	}

	// Swagger + profiler sit outside the api stack
	swaggerkit.Mount(r, Prefix+"/docs", Prefix, docs.OpenAPI, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	httpkit.MountUnder(r, Prefix, httpkit.CommonStack(httpkit.StackFromEnv(opt.Config)), func(api httpkit.Router) {
		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})

	return Workers{Notify: nports.Runner, Housekeeping: module.MustPortsOf[hkmod.Ports](house).Runner}, nil
}
