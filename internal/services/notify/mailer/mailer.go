// Package mailer delivers rendered messages over SMTP with an outbound rate limit
package mailer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kristech/internal/services/notify/domain"

	"github.com/wneessen/go-mail"
	"golang.org/x/time/rate"
)

// ErrNotConfigured is returned by Send when SMTP settings are incomplete
var ErrNotConfigured = errors.New("smtp transport not configured")

// Config holds SMTP settings
type Config struct {
	Host    string
	Port    int
	User    string
	Pass    string
	From    string // sender address, defaults to User
	Timeout time.Duration

	RPS   float64
	Burst int
}

// Configured reports whether host, user and password are all present
func (c Config) Configured() bool {
	return c.Host != "" && c.User != "" && c.Pass != ""
}

type sender interface {
	DialAndSendWithContext(ctx context.Context, msgs ...*mail.Msg) error
}

var newClient = func(host string, opts ...mail.Option) (sender, error) {
	return mail.NewClient(host, opts...)
}

// Mailer sends domain messages through one SMTP client
type Mailer struct {
	cfg     Config
	client  sender
	limiter *rate.Limiter
}

// New builds a Mailer; an unconfigured Config yields a Mailer whose Send always fails
func New(cfg Config) (*Mailer, error) {
	if cfg.Port <= 0 {
		cfg.Port = 587
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.From == "" {
		cfg.From = cfg.User
	}
	if cfg.RPS <= 0 {
		cfg.RPS = 2
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 4
	}
	m := &Mailer{cfg: cfg, limiter: rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst)}
	if !cfg.Configured() {
		return m, nil
	}
	c, err := newClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.User),
		mail.WithPassword(cfg.Pass),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
		mail.WithTimeout(cfg.Timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	m.client = c
	return m, nil
}

// Configured reports whether Send can deliver
func (m *Mailer) Configured() bool { return m != nil && m.client != nil }

// Send waits for a rate token then dials and delivers msg
func (m *Mailer) Send(ctx context.Context, msg domain.Message) error {
	if !m.Configured() {
		return ErrNotConfigured
	}
	out, err := m.build(msg)
	if err != nil {
		return err
	}
	if err := m.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("smtp throttle: %w", err)
	}
	if err := m.client.DialAndSendWithContext(ctx, out); err != nil {
		return fmt.Errorf("smtp send to %s: %w", msg.To, err)
	}
	return nil
}

func (m *Mailer) build(msg domain.Message) (*mail.Msg, error) {
	out := mail.NewMsg()
	if err := out.FromFormat(msg.FromName, m.cfg.From); err != nil {
		return nil, fmt.Errorf("from: %w", err)
	}
	if err := out.To(msg.To); err != nil {
		return nil, fmt.Errorf("to: %w", err)
	}
	if msg.ReplyTo != "" {
		if err := out.ReplyTo(msg.ReplyTo); err != nil {
			return nil, fmt.Errorf("reply-to: %w", err)
		}
	}
	out.Subject(msg.Subject)
	out.SetBodyString(mail.TypeTextPlain, msg.Text)
	if msg.HTML != "" {
		out.AddAlternativeString(mail.TypeTextHTML, msg.HTML)
	}
	return out, nil
}
