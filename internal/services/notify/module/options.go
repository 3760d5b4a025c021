package module

import (
	"time"

	"kristech/internal/platform/config"
	"kristech/internal/services/notify/domain"
	"kristech/internal/services/notify/mailer"
)

// Options controls the SMTP transport, message branding and the runner
type Options struct {
	SMTP     mailer.Config
	Operator string
	Brand    domain.Brand

	Workers int
	Queue   int
	Timeout time.Duration
}

// FromConfig reads SMTP_*, ADMIN_EMAIL and NOTIFY_* values
// ADMIN_EMAIL falls back to SMTP_USER so the operator still hears about submissions
func FromConfig(cfg config.Conf) Options {
	s := cfg.Prefix("SMTP_")
	n := cfg.Prefix("NOTIFY_")
	user := s.MayString("USER", "")
	company := n.MayString("COMPANY", "Kristech IT Solutions")
	return Options{
		SMTP: mailer.Config{
			Host:    s.MayString("HOST", ""),
			Port:    s.MayInt("PORT", 587),
			User:    user,
			Pass:    s.MayString("PASS", ""),
			From:    s.MayString("FROM", user),
			Timeout: s.MayDuration("TIMEOUT", 30*time.Second),
			RPS:     n.MayFloat64("SMTP_RPS", 2),
			Burst:   n.MayInt("SMTP_BURST", 4),
		},
		Operator: cfg.MayString("ADMIN_EMAIL", user),
		Brand: domain.Brand{
			Company:      company,
			OperatorFrom: n.MayString("OPERATOR_FROM", "Kristech IT Website"),
			ReplyFrom:    n.MayString("FROM_NAME", "Kristech IT"),
			Signer:       n.MayString("SIGNER", company),
			SiteURL:      n.MayString("SITE_URL", "https://kristechit.com"),
			Phone:        n.MayString("PHONE", ""),
			ContactEmail: n.MayString("CONTACT_EMAIL", cfg.MayString("ADMIN_EMAIL", user)),
		},
		Workers: n.MayInt("WORKERS", 4),
		Queue:   n.MayInt("QUEUE", 256),
		Timeout: n.MayDuration("TIMEOUT", 30*time.Second),
	}
}
