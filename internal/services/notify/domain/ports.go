package domain

import "context"

// NotifierPort sends both messages for a contact and never fails the caller
type NotifierPort interface {
	Notify(ctx context.Context, c Contact) Outcome
}

// EnqueuePort schedules a notification in the background
// done runs once after the attempt finishes, with a zero Outcome on timeout or panic
type EnqueuePort interface {
	Enqueue(ctx context.Context, c Contact, done func(Outcome)) (string, error)
}

// RunnerPort drives the background queue until ctx is cancelled
type RunnerPort interface {
	Run(ctx context.Context) error
}
