// Package domain defines housekeeping ports
package domain

import (
	"context"
	"time"
)

// RunnerPort drives the scheduled jobs until ctx ends
type RunnerPort interface {
	Run(ctx context.Context) error
}

// PendingPort reports notification tasks waiting for a worker
type PendingPort interface {
	Pending() int
}

// Report is one backlog snapshot
type Report struct {
	At       time.Time
	ByStatus map[string]int
	Tracked  int // rate limit windows held in memory
	Pending  int // queued notifications
}
