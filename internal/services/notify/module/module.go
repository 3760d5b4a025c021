// Package module wires the notification mailer and runner and exposes their ports
package module

import (
	"kristech/internal/modkit"
	"kristech/internal/modkit/httpkit"
	"kristech/internal/platform/logger"
	dom "kristech/internal/services/notify/domain"
	"kristech/internal/services/notify/mailer"
	"kristech/internal/services/notify/service"
)

// Ports holds the ports exposed by the notify module
type Ports struct {
	Notifier dom.NotifierPort
	Enqueuer dom.EnqueuePort
	Runner   dom.RunnerPort
}

// Module defines the notify worker module
type Module struct {
	deps   modkit.Deps
	ports  Ports
	runner *service.Runner
}

// New builds the mailer, notifier and runner from deps.Cfg with non zero overrides applied
func New(deps modkit.Deps, overrides Options) (*Module, error) {
	opts := FromConfig(deps.Cfg)
	if overrides.SMTP.Host != "" {
		opts.SMTP = overrides.SMTP
	}
	if overrides.Operator != "" {
		opts.Operator = overrides.Operator
	}
	if overrides.Brand.Company != "" {
		opts.Brand = overrides.Brand
	}
	if overrides.Workers != 0 {
		opts.Workers = overrides.Workers
	}
	if overrides.Queue != 0 {
		opts.Queue = overrides.Queue
	}
	if overrides.Timeout != 0 {
		opts.Timeout = overrides.Timeout
	}

	m, err := mailer.New(opts.SMTP)
	if err != nil {
		return nil, err
	}
	log := logger.Named("notify")
	if !m.Configured() {
		log.Warn().Msg("email configuration missing, notifications disabled")
	} else {
		log.Info().Str("host", opts.SMTP.Host).Int("port", opts.SMTP.Port).Msg("email transport configured")
	}

	notifier := service.NewNotifier(m, opts.Brand, opts.Operator)
	runner := service.NewRunner(notifier, service.RunnerConfig{
		Workers: opts.Workers,
		Queue:   opts.Queue,
		Timeout: opts.Timeout,
	})

	return &Module{
		deps:   deps,
		runner: runner,
		ports: Ports{
			Notifier: notifier,
			Enqueuer: runner,
			Runner:   runner,
		},
	}, nil
}

// Pending reports queued notifications not yet started
func (m *Module) Pending() int { return m.runner.Pending() }

// Ports returns the module ports (Notifier, Enqueuer, Runner)
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return "notify" }

// MountRoutes returns no HTTP routes
func (m *Module) MountRoutes(_ httpkit.Router) {}
