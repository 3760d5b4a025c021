// Package repo provides the contact submission repository
package repo

import (
	"context"
	"errors"
	"net/netip"

	"kristech/internal/modkit/repokit"
	perr "kristech/internal/platform/errors"
	"kristech/internal/platform/store"
	"kristech/internal/services/api/contact/domain"
)

// Repo is the contact persistence surface used by the service layer
type Repo interface {
	Create(ctx context.Context, in domain.NewSubmission) (domain.Created, error)
	SetEmailSent(ctx context.Context, id int64) (bool, error)
	UpdateStatus(ctx context.Context, id int64, status domain.Status) (domain.Submission, error)
	Get(ctx context.Context, id int64) (domain.Submission, error)
	List(ctx context.Context, limit, offset int) ([]domain.Submission, error)
	Count(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context) (map[domain.Status]int, error)
}

type (
	// PG is a Postgres implementation of the contact repo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder for the Postgres implementation
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind attaches a Queryer to the Postgres implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: repokit.RequireQueryer(q)} }

const columns = `id, first_name, last_name, email, phone, service, message, status,
	email_sent, host(ip_address), user_agent, created_at, updated_at`

func scanSubmission(r repokit.Row) (domain.Submission, error) {
	var (
		s       domain.Submission
		service string
		status  string
	)
	err := r.Scan(&s.ID, &s.FirstName, &s.LastName, &s.Email, &s.Phone, &service, &s.Message, &status,
		&s.EmailSent, &s.IPAddress, &s.UserAgent, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return domain.Submission{}, err
	}
	s.Service = domain.ServiceKind(service)
	s.Status = domain.Status(status)
	return s, nil
}

// Create inserts a pending submission with email_sent false
// an unparseable origin ip is stored as NULL
func (r *queries) Create(ctx context.Context, in domain.NewSubmission) (domain.Created, error) {
	const sql = `
		INSERT INTO contact_submissions (
			first_name, last_name, email, phone, service, message, ip_address, user_agent
		) VALUES ($1, $2, $3, $4, $5, $6, $7::text::inet, $8)
		RETURNING id, created_at
	`
	var out domain.Created
	err := r.q.QueryRow(ctx, sql,
		in.FirstName, in.LastName, in.Email, in.Phone, string(in.Service), in.Message,
		inetOrNil(in.Origin.IP), nilIfEmpty(in.Origin.UserAgent),
	).Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		return domain.Created{}, perr.FromPostgres(err, "insert contact submission")
	}
	return out, nil
}

// SetEmailSent flips email_sent once; false means the row was missing or already marked
func (r *queries) SetEmailSent(ctx context.Context, id int64) (bool, error) {
	const sql = `
		UPDATE contact_submissions
		   SET email_sent = true, updated_at = NOW()
		 WHERE id = $1 AND email_sent = false
	`
	err := store.ExecOne(ctx, r.q, sql, id)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, store.ErrNoRowsAffected):
		return false, nil
	default:
		return false, perr.FromPostgres(err, "mark email sent")
	}
}

// UpdateStatus sets status and moves updated_at strictly past created_at
func (r *queries) UpdateStatus(ctx context.Context, id int64, status domain.Status) (domain.Submission, error) {
	const sql = `
		UPDATE contact_submissions
		   SET status = $2,
		       updated_at = GREATEST(NOW(), created_at + interval '1 microsecond')
		 WHERE id = $1
		RETURNING ` + columns
	s, err := store.One(ctx, r.q, scanSubmission, sql, id, string(status))
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			return domain.Submission{}, perr.NotFoundf("submission %d not found", id)
		}
		return domain.Submission{}, perr.FromPostgres(err, "update submission status")
	}
	return s, nil
}

// Get loads one submission by id
func (r *queries) Get(ctx context.Context, id int64) (domain.Submission, error) {
	s, err := store.One(ctx, r.q, scanSubmission, `SELECT `+columns+` FROM contact_submissions WHERE id = $1`, id)
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			return domain.Submission{}, perr.NotFoundf("submission %d not found", id)
		}
		return domain.Submission{}, perr.FromPostgres(err, "get submission")
	}
	return s, nil
}

// List returns one page newest first, ties broken by id
func (r *queries) List(ctx context.Context, limit, offset int) ([]domain.Submission, error) {
	const sql = `
		SELECT ` + columns + `
		  FROM contact_submissions
		 ORDER BY created_at DESC, id DESC
		 LIMIT $1 OFFSET $2
	`
	out, err := store.Many(ctx, r.q, scanSubmission, sql, limit, offset)
	if err != nil {
		return nil, perr.FromPostgres(err, "list submissions")
	}
	if out == nil {
		out = []domain.Submission{}
	}
	return out, nil
}

// Count returns the number of stored submissions
func (r *queries) Count(ctx context.Context) (int, error) {
	n, err := store.Scalar[int64](ctx, r.q, `SELECT COUNT(*) FROM contact_submissions`)
	if err != nil {
		return 0, perr.FromPostgres(err, "count submissions")
	}
	return int(n), nil
}

type statusCount struct {
	status string
	n      int64
}

// CountByStatus returns per status totals, statuses with no rows are zero
func (r *queries) CountByStatus(ctx context.Context) (map[domain.Status]int, error) {
	const sql = `SELECT status, COUNT(*) FROM contact_submissions GROUP BY status`
	rows, err := store.Many(ctx, r.q, func(row repokit.Row) (statusCount, error) {
		var c statusCount
		err := row.Scan(&c.status, &c.n)
		return c, err
	}, sql)
	if err != nil {
		return nil, perr.FromPostgres(err, "count submissions by status")
	}
	out := make(map[domain.Status]int, len(domain.Statuses))
	for _, s := range domain.Statuses {
		out[s] = 0
	}
	for _, c := range rows {
		out[domain.Status(c.status)] = int(c.n)
	}
	return out, nil
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// inetOrNil keeps values postgres would reject as inet out of the insert
func inetOrNil(ip string) *string {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return nil
	}
	v := addr.String()
	return &v
}
