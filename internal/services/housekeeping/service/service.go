// Package service runs periodic maintenance for the contact API
package service

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"kristech/internal/platform/logger"
	ptime "kristech/internal/platform/time"
	cdom "kristech/internal/services/api/contact/domain"
	hdom "kristech/internal/services/housekeeping/domain"
)

// Config controls the schedules
// both specs take the robfig/cron syntax including @every and @hourly
type Config struct {
	SweepSpec   string
	BacklogSpec string

	// JobTimeout bounds one backlog report
	JobTimeout time.Duration
	Clock      ptime.Clock
}

// Service owns the cron scheduler and the jobs it runs
type Service struct {
	cron    *cron.Cron
	sweeper cdom.SweeperPort
	backlog cdom.BacklogPort
	pending hdom.PendingPort
	cfg     Config
	clock   ptime.Clock
}

// New registers the jobs; an invalid spec is returned as an error
// a nil backlog or pending port drops that part of the report
func New(cfg Config, sweeper cdom.SweeperPort, backlog cdom.BacklogPort, pending hdom.PendingPort) (*Service, error) {
	if sweeper == nil {
		panic("housekeeping.Service requires a non nil SweeperPort")
	}
	if cfg.SweepSpec == "" {
		cfg.SweepSpec = "@every 1m"
	}
	if cfg.BacklogSpec == "" {
		cfg.BacklogSpec = "@hourly"
	}
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = 30 * time.Second
	}

	clog := cronLogger{}
	s := &Service{
		cron: cron.New(
			cron.WithLogger(clog),
			cron.WithChain(cron.Recover(clog), cron.SkipIfStillRunning(clog)),
		),
		sweeper: sweeper,
		backlog: backlog,
		pending: pending,
		cfg:     cfg,
		clock:   ptime.OrSystem(cfg.Clock),
	}

	if _, err := s.cron.AddFunc(cfg.SweepSpec, func() { s.Sweep(context.Background()) }); err != nil {
		return nil, err
	}
	if _, err := s.cron.AddFunc(cfg.BacklogSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.JobTimeout)
		defer cancel()
		if _, err := s.Backlog(ctx); err != nil {
			logger.Named("housekeeping").Error().Err(err).Msg("backlog report failed")
		}
	}); err != nil {
		return nil, err
	}
	return s, nil
}

// Sweep drops expired rate limit windows and returns how many went
func (s *Service) Sweep(ctx context.Context) int {
	n := s.sweeper.Sweep()
	if n > 0 {
		logger.C(ctx).Debug().Int("removed", n).Int("tracked", s.sweeper.Len()).Msg("rate limit windows swept")
	}
	return n
}

// Backlog logs and returns the per status submission counts
func (s *Service) Backlog(ctx context.Context) (hdom.Report, error) {
	r := hdom.Report{
		At:       s.clock.Now().UTC(),
		ByStatus: map[string]int{},
		Tracked:  s.sweeper.Len(),
	}
	if s.pending != nil {
		r.Pending = s.pending.Pending()
	}
	if s.backlog != nil {
		counts, err := s.backlog.Backlog(ctx)
		if err != nil {
			return r, err
		}
		for st, n := range counts {
			r.ByStatus[string(st)] = n
		}
	}

	ev := logger.C(ctx).Info().Int("tracked_windows", r.Tracked).Int("pending_notifications", r.Pending)
	for _, st := range cdom.Statuses {
		ev = ev.Int(string(st), r.ByStatus[string(st)])
	}
	ev.Msg("contact backlog")
	return r, nil
}

// Run starts the scheduler and blocks until ctx ends, then waits for running jobs
func (s *Service) Run(ctx context.Context) error {
	l := logger.Named("housekeeping")
	l.Info().Str("sweep", s.cfg.SweepSpec).Str("backlog", s.cfg.BacklogSpec).Msg("housekeeping started")

	s.cron.Start()
	<-ctx.Done()
	<-s.cron.Stop().Done()

	l.Info().Msg("housekeeping stopped")
	return nil
}

// cronLogger routes scheduler messages through zerolog
type cronLogger struct{}

func (cronLogger) Info(msg string, kv ...any) {
	logger.Named("cron").Debug().Fields(kv).Msg(msg)
}

func (cronLogger) Error(err error, msg string, kv ...any) {
	logger.Named("cron").Error().Err(err).Fields(kv).Msg(msg)
}
