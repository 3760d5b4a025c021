// Package http provides http transport for contact submissions
package http

import (
	stdhttp "net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"kristech/internal/core/ratelimit"
	"kristech/internal/modkit/httpkit"
	perr "kristech/internal/platform/errors"
	"kristech/internal/platform/logger"
	pnet "kristech/internal/platform/net"
	"kristech/internal/platform/net/middleware"
	ptime "kristech/internal/platform/time"
	"kristech/internal/services/api/contact/domain"
	svc "kristech/internal/services/api/contact/service"
)

const (
	// SubmitMessage is the public text of a stored submission
	SubmitMessage = "Thank you for your message! We will get back to you within 24 hours."

	// TooManyMessage is the public text of a rate limited submission
	TooManyMessage = "Too many contact form submissions. Please try again later."

	// StatusUpdated is the public text of a status change
	StatusUpdated = "Status updated successfully"

	maxBody = 1 << 20
)

// Limiter admits or rejects one attempt per call
type Limiter interface {
	Allow(key string) ratelimit.Decision
}

// Options wire the optional collaborators of the routes
type Options struct {
	// Limiter guards submit; nil admits everything
	Limiter Limiter

	// Auth guards the admin routes; nil leaves them open
	Auth middleware.AuthPort

	// Base is the mount path of the router, used for docs only
	Base string
}

// Register mounts the router
func Register(r httpkit.Router, s svc.Service, o Options) {
	h := &handlers{svc: s, limiter: o.Limiter}
	r.Post("/submit", httpkit.Handle(h.submit))
	httpkit.Protected(r, o.Base, o.Auth, func(pr httpkit.Router) {
		httpkit.Get(pr, "/submissions", h.list)
		pr.Patch("/submissions/{id}/status", httpkit.Handle(h.status))
	})
}

type handlers struct {
	svc     svc.Service
	limiter Limiter
}

// SubmitReply is the body of an accepted submission
type SubmitReply struct {
	Success      bool   `json:"success"      example:"true"`
	Message      string `json:"message"`
	SubmissionID int64  `json:"submissionId" example:"42"`
	Timestamp    string `json:"timestamp"    example:"2025-01-01T12:00:00.000Z"`
}

// TooManyReply is the body of a rate limited submission
type TooManyReply struct {
	Error      string `json:"error"`
	RetryAfter int    `json:"retryAfter" example:"540"`
}

// swagger:route POST /contact/submit Contact submit
// @Summary Submit the contact form
// @Tags contact
// @Accept json
// @Produce json
// @Param payload body domain.SubmitInput true "Submission"
// @Success 201 {object} SubmitReply "stored"
// @Failure 400 {object} httpkit.Envelope "validation failed"
// @Failure 429 {object} TooManyReply "rate limited"
// @Failure 500 {object} httpkit.Envelope "storage failure"
// @Router /contact/submit [post]
func (h *handlers) submit(r *stdhttp.Request) httpkit.Response {
	var dec *ratelimit.Decision
	if h.limiter != nil {
		d := h.limiter.Allow(pnet.ClientIP(r))
		dec = &d
		if !d.Allowed {
			resp := httpkit.Raw(stdhttp.StatusTooManyRequests, TooManyReply{
				Error:      TooManyMessage,
				RetryAfter: d.RetryAfterSeconds(),
			}).WithHeader("Retry-After", strconv.Itoa(d.RetryAfterSeconds()))
			return withRateHeaders(resp, dec)
		}
	}

	in, err := httpkit.Decode[domain.SubmitInput](r, httpkit.JSONOptions{
		MaxBytes:       maxBody,
		AllowEmptyBody: true,
		SkipValidate:   true,
	})
	if err != nil {
		return withRateHeaders(httpkit.Error(perr.Validation("Validation failed", []perr.Violation{{
			Field:   "body",
			Message: "Request body must be valid JSON",
		}})), dec)
	}

	rec, err := h.svc.Submit(r.Context(), in, domain.Origin{
		IP:        pnet.ClientIP(r),
		UserAgent: r.UserAgent(),
	})
	if err != nil {
		return withRateHeaders(httpkit.Error(err), dec)
	}
	return withRateHeaders(httpkit.Raw(stdhttp.StatusCreated, SubmitReply{
		Success:      true,
		Message:      SubmitMessage,
		SubmissionID: rec.ID,
		Timestamp:    ptime.ISO(rec.CreatedAt),
	}), dec)
}

func withRateHeaders(resp httpkit.Response, d *ratelimit.Decision) httpkit.Response {
	if d == nil {
		return resp
	}
	return resp.
		WithHeader("RateLimit-Limit", strconv.Itoa(d.Limit)).
		WithHeader("RateLimit-Remaining", strconv.Itoa(d.Remaining)).
		WithHeader("RateLimit-Reset", strconv.Itoa(d.ResetSeconds()))
}

// swagger:route GET /contact/submissions Contact list
// @Summary List submissions, newest first
// @Tags contact
// @Produce json
// @Param page query int false "page, default 1"
// @Param limit query int false "page size, default 20, max 100"
// @Success 200 {object} domain.Page "ok"
// @Failure 401 {object} httpkit.Envelope "unauthorized"
// @Router /contact/submissions [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	return h.svc.List(r.Context(), page, limit)
}

// swagger:route PATCH /contact/submissions/{id}/status Contact status
// @Summary Change the status of a submission
// @Tags contact
// @Accept json
// @Produce json
// @Param id path int true "submission id"
// @Param payload body domain.StatusInput true "Status"
// @Success 200 {object} domain.Submission "updated"
// @Failure 400 {object} httpkit.Envelope "invalid status"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /contact/submissions/{id}/status [patch]
func (h *handlers) status(r *stdhttp.Request) httpkit.Response {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return httpkit.Error(perr.New(perr.ErrorCodeNotFound, "Submission not found"))
	}
	in, err := httpkit.Decode[domain.StatusInput](r, httpkit.JSONOptions{
		MaxBytes:       maxBody,
		AllowEmptyBody: true,
		SkipValidate:   true,
	})
	if err != nil {
		return httpkit.Error(perr.New(perr.ErrorCodeValidation, "Invalid status value"))
	}
	ctx := r.Context()
	if uid, err := httpkit.User(r); err == nil {
		ctx = logger.WithActor(ctx, uid)
	}
	out, err := h.svc.UpdateStatus(ctx, id, in.Status)
	if err != nil {
		return httpkit.Error(err)
	}
	return httpkit.Message(stdhttp.StatusOK, StatusUpdated, out)
}
