package module

import (
	"time"

	"kristech/internal/platform/config"
)

// Options for the housekeeping module
type Options struct {
	SweepSpec   string
	BacklogSpec string
	JobTimeout  time.Duration
}

// FromConfig fills options from environment
// HOUSEKEEPING_SWEEP_SPEC (default "@every 1m") drops expired rate limit windows
// HOUSEKEEPING_BACKLOG_SPEC (default "@hourly") logs per status submission counts
// HOUSEKEEPING_JOB_TIMEOUT (default 30s) bounds one backlog query
func FromConfig(cfg config.Conf) Options {
	h := cfg.Prefix("HOUSEKEEPING_")
	return Options{
		SweepSpec:   h.MayString("SWEEP_SPEC", "@every 1m"),
		BacklogSpec: h.MayString("BACKLOG_SPEC", "@hourly"),
		JobTimeout:  h.MayDuration("JOB_TIMEOUT", 30*time.Second),
	}
}
