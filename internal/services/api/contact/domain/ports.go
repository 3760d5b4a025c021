package domain

import "context"

// ServicePort is the interface implemented by the contact service
type ServicePort interface {
	Submit(ctx context.Context, in SubmitInput, origin Origin) (Receipt, error)
	SetEmailSent(ctx context.Context, id int64) error
	UpdateStatus(ctx context.Context, id int64, raw string) (Submission, error)
	List(ctx context.Context, page, limit int) (Page, error)
}

// BacklogPort reports how many submissions sit in each status
type BacklogPort interface {
	Backlog(ctx context.Context) (map[Status]int, error)
}

// SweeperPort drops expired rate limit windows
type SweeperPort interface {
	Sweep() int
	Len() int
}
