package module

import (
	"time"

	"kristech/internal/platform/config"
)

// Options controls the limiter, admin auth and store behavior of the contact API
type Options struct {
	RateWindow time.Duration
	RateMax    int

	// AdminSecret enables bearer auth on the admin routes when set
	AdminSecret string
	AdminIssuer string

	StatementTimeout time.Duration
}

// FromConfig reads CONTACT_* values from process config/env
func FromConfig(cfg config.Conf) Options {
	cc := cfg.Prefix("CONTACT_")
	return Options{
		RateWindow:       cc.MayDuration("RATE_WINDOW", 15*time.Minute),
		RateMax:          cc.MayInt("RATE_MAX", 5),
		AdminSecret:      cc.MayString("ADMIN_JWT_SECRET", ""),
		AdminIssuer:      cc.MayString("ADMIN_JWT_ISSUER", "kristech"),
		StatementTimeout: cc.MayDuration("STATEMENT_TIMEOUT", 5*time.Second),
	}
}
