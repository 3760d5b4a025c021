// Package service sends contact notifications and runs them off the request path
package service

import (
	"context"
	"sync"

	"kristech/internal/platform/logger"
	"kristech/internal/services/notify/domain"
	"kristech/internal/services/notify/render"
)

// Sender delivers one rendered message
type Sender interface {
	Configured() bool
	Send(ctx context.Context, m domain.Message) error
}

// Notifier renders and sends the operator and requester messages
type Notifier struct {
	sender   Sender
	brand    domain.Brand
	operator string
}

// NewNotifier builds a Notifier that mails operator for every contact
func NewNotifier(s Sender, brand domain.Brand, operator string) *Notifier {
	if s == nil {
		panic("notify: Notifier requires a non nil Sender")
	}
	return &Notifier{sender: s, brand: brand, operator: operator}
}

// Notify sends both messages concurrently; failures are logged and reported as false
func (n *Notifier) Notify(ctx context.Context, c domain.Contact) domain.Outcome {
	log := logger.C(ctx).With().Str("component", "notify").Int64("submission_id", c.ID).Logger()
	if !n.sender.Configured() {
		log.Warn().Msg("skipping notification, smtp not configured")
		return domain.Outcome{}
	}

	var (
		out domain.Outcome
		wg  sync.WaitGroup
	)
	send := func(kind string, build func() (domain.Message, error), ok *bool) {
		defer wg.Done()
		m, err := build()
		if err != nil {
			log.Error().Err(err).Str("message", kind).Msg("render failed")
			return
		}
		if m.To == "" {
			log.Warn().Str("message", kind).Msg("no recipient address")
			return
		}
		if err := n.sender.Send(ctx, m); err != nil {
			log.Error().Err(err).Str("message", kind).Msg("send failed")
			return
		}
		*ok = true
	}

	wg.Add(2)
	go send("operator", func() (domain.Message, error) { return render.Operator(n.brand, c, n.operator) }, &out.OperatorSent)
	go send("requester", func() (domain.Message, error) { return render.Requester(n.brand, c) }, &out.RequesterSent)
	wg.Wait()

	log.Info().
		Bool("operator_sent", out.OperatorSent).
		Bool("requester_sent", out.RequesterSent).
		Msg("notification finished")
	return out
}
