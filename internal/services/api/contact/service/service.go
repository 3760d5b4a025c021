// Package service contains contact submission workflows
package service

import (
	"context"
	"time"

	"kristech/internal/modkit/repokit"
	perr "kristech/internal/platform/errors"
	"kristech/internal/platform/logger"
	pstrings "kristech/internal/platform/strings"
	"kristech/internal/services/api/contact/domain"
	"kristech/internal/services/api/contact/repo"
	ndom "kristech/internal/services/notify/domain"
)

// Service is the public service port
type Service interface{ domain.ServicePort }

// SubmitFailed is the public message for storage failures on submit
const SubmitFailed = "There was an error processing your request. Please try again later."

// Options control service behavior
type Options struct {
	// Enqueuer is optional; without it submissions are stored but never mailed
	Enqueuer ndom.EnqueuePort

	// StatementTimeout bounds each statement of the status update transaction
	StatementTimeout time.Duration
}

// Svc implements the service port
type Svc struct {
	Repo     repo.Repo
	binder   repokit.Binder[repo.Repo]
	db       repokit.TxRunner
	tx       repokit.TxRunner
	enqueuer ndom.EnqueuePort
}

// New constructs the service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], opt Options) *Svc {
	if db == nil {
		panic("contact.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("contact.Service requires a non nil Repo binder")
	}
	d := opt.StatementTimeout
	if d == 0 {
		d = 5 * time.Second
	}
	return &Svc{
		Repo:     binder.Bind(db),
		binder:   binder,
		db:       db,
		tx:       repokit.WithBeginHooks(db, repokit.StatementTimeout(d)),
		enqueuer: opt.Enqueuer,
	}
}

// Submit validates, stores and hands the submission to the notifier
// the receipt never waits on email delivery
func (s *Svc) Submit(ctx context.Context, in domain.SubmitInput, origin domain.Origin) (domain.Receipt, error) {
	clean, vs := domain.Validate(in)
	if len(vs) > 0 {
		return domain.Receipt{}, perr.Validation("Validation failed", vs)
	}

	created, err := s.Repo.Create(ctx, domain.NewSubmission{Clean: clean, Origin: origin})
	if err != nil {
		logger.C(ctx).Error().Err(err).Msg("store contact submission failed")
		return domain.Receipt{}, perr.Wrap(err, perr.ErrorCodeDB, SubmitFailed)
	}
	logger.C(ctx).Info().Int64("submission_id", created.ID).Str("service", string(clean.Service)).Msg("contact submission stored")

	s.notify(ctx, created, clean, origin)
	return domain.Receipt{ID: created.ID, CreatedAt: created.CreatedAt}, nil
}

func (s *Svc) notify(ctx context.Context, created domain.Created, c domain.Clean, origin domain.Origin) {
	if s.enqueuer == nil {
		return
	}
	contact := ndom.Contact{
		ID:          created.ID,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Email:       c.Email,
		Phone:       pstrings.Deref(c.Phone),
		Service:     string(c.Service),
		Message:     c.Message,
		IP:          origin.IP,
		SubmittedAt: created.CreatedAt,
	}
	id := created.ID
	done := func(out ndom.Outcome) {
		if !out.OperatorSent {
			return
		}
		// the request that queued us is long gone
		if err := s.SetEmailSent(context.WithoutCancel(ctx), id); err != nil {
			logger.C(ctx).Error().Err(err).Int64("submission_id", id).Msg("mark email sent failed")
		}
	}
	taskID, err := s.enqueuer.Enqueue(ctx, contact, done)
	if err != nil {
		logger.C(ctx).Warn().Err(err).Int64("submission_id", id).Msg("notification not queued")
		return
	}
	logger.C(ctx).Debug().Str("task_id", taskID).Int64("submission_id", id).Msg("notification queued")
}

// SetEmailSent marks the operator notification as delivered
// a missing or already marked row is logged, not returned
func (s *Svc) SetEmailSent(ctx context.Context, id int64) error {
	ok, err := s.Repo.SetEmailSent(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		logger.C(ctx).Warn().Int64("submission_id", id).Msg("email_sent unchanged, row missing or already marked")
	}
	return nil
}

// UpdateStatus applies any of the four statuses to an existing submission
func (s *Svc) UpdateStatus(ctx context.Context, id int64, raw string) (domain.Submission, error) {
	status, ok := domain.ParseStatus(raw)
	if !ok {
		return domain.Submission{}, perr.New(perr.ErrorCodeValidation, "Invalid status value")
	}
	var out domain.Submission
	err := repokit.InTx(ctx, s.tx, s.binder, func(r repo.Repo) error {
		var err error
		out, err = r.UpdateStatus(ctx, id, status)
		return err
	})
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			return domain.Submission{}, perr.New(perr.ErrorCodeNotFound, "Submission not found")
		}
		return domain.Submission{}, perr.Wrap(err, perr.CodeOf(err), "Error updating status")
	}
	logger.C(ctx).Info().Int64("submission_id", id).Str("status", string(status)).Msg("submission status updated")
	return out, nil
}

// List returns one page of submissions, newest first
func (s *Svc) List(ctx context.Context, page, limit int) (domain.Page, error) {
	page, limit = domain.NormalizePaging(page, limit)
	total, err := s.Repo.Count(ctx)
	if err != nil {
		return domain.Page{}, perr.Wrap(err, perr.ErrorCodeDB, "Error fetching submissions")
	}
	items, err := s.Repo.List(ctx, limit, (page-1)*limit)
	if err != nil {
		return domain.Page{}, perr.Wrap(err, perr.ErrorCodeDB, "Error fetching submissions")
	}
	return domain.Page{
		Submissions: items,
		Pagination: domain.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: domain.TotalPages(total, limit),
		},
	}, nil
}

// Backlog returns per status counts for housekeeping reports
func (s *Svc) Backlog(ctx context.Context) (map[domain.Status]int, error) {
	return s.Repo.CountByStatus(ctx)
}
