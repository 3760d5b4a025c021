// Package module wires up the housekeeping scheduler as a modkit.Module
package module

import (
	"kristech/internal/modkit"
	"kristech/internal/modkit/httpkit"

	cdom "kristech/internal/services/api/contact/domain"
	hdom "kristech/internal/services/housekeeping/domain"
	hsvc "kristech/internal/services/housekeeping/service"
)

// Ports exported by the housekeeping module
type Ports struct {
	Runner hdom.RunnerPort
}

// Needs are the ports housekeeping reads from other modules
type Needs struct {
	Sweeper cdom.SweeperPort
	Backlog cdom.BacklogPort
	Pending hdom.PendingPort
}

// Module implements modkit.Module for housekeeping
type Module struct {
	deps  modkit.Deps
	ports Ports
	svc   *hsvc.Service
}

// New constructs and wires the housekeeping module using deps.Cfg
func New(deps modkit.Deps, needs Needs) (*Module, error) {
	opts := FromConfig(deps.Cfg)

	svc, err := hsvc.New(hsvc.Config{
		SweepSpec:   opts.SweepSpec,
		BacklogSpec: opts.BacklogSpec,
		JobTimeout:  opts.JobTimeout,
	}, needs.Sweeper, needs.Backlog, needs.Pending)
	if err != nil {
		return nil, err
	}

	m := &Module{deps: deps, svc: svc}
	m.ports = Ports{Runner: svc}
	return m, nil
}

// Name returns the module name
func (m *Module) Name() string { return "housekeeping" }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Prefix returns the module config prefix (none)
func (m *Module) Prefix() string { return "" }

// MountRoutes is a no-op: housekeeping has no HTTP routes
func (m *Module) MountRoutes(_ httpkit.Router) {}
