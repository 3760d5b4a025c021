package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"kristech/internal/platform/logger"
	"kristech/internal/services/notify/domain"

	"github.com/google/uuid"
)

var (
	// ErrQueueFull is returned by Enqueue when the buffer has no room
	ErrQueueFull = errors.New("notify queue full")

	// ErrStopped is returned by Enqueue after Run has begun shutting down
	ErrStopped = errors.New("notify runner stopped")
)

// RunnerConfig bounds the background runner
type RunnerConfig struct {
	Workers int
	Queue   int
	Timeout time.Duration
}

type job struct {
	id      string
	contact domain.Contact
	done    func(domain.Outcome)
	ctx     context.Context
}

// Runner executes notifications on a bounded set of goroutines
type Runner struct {
	notifier domain.NotifierPort
	queue    chan job
	sem      chan struct{}
	timeout  time.Duration

	mu      sync.RWMutex
	stopped bool
	wg      sync.WaitGroup

	newID func() string
}

// NewRunner builds a Runner; zero config fields take defaults of 4 workers, 256 slots and 30s
func NewRunner(n domain.NotifierPort, cfg RunnerConfig) *Runner {
	if n == nil {
		panic("notify: Runner requires a non nil NotifierPort")
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.Queue <= 0 {
		cfg.Queue = 256
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Runner{
		notifier: n,
		queue:    make(chan job, cfg.Queue),
		sem:      make(chan struct{}, cfg.Workers),
		timeout:  cfg.Timeout,
		newID:    uuid.NewString,
	}
}

// Enqueue queues a notification without blocking and returns its task id
// request scoped values on ctx are kept, its cancellation is not
func (r *Runner) Enqueue(ctx context.Context, c domain.Contact, done func(domain.Outcome)) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.stopped {
		return "", ErrStopped
	}
	j := job{id: r.newID(), contact: c, done: done, ctx: context.WithoutCancel(ctx)}
	select {
	case r.queue <- j:
		logger.C(ctx).Debug().Str("task_id", j.id).Int64("submission_id", c.ID).Msg("notification queued")
		return j.id, nil
	default:
		return "", ErrQueueFull
	}
}

// Pending is the number of queued tasks not yet started
func (r *Runner) Pending() int { return len(r.queue) }

// Run starts queued tasks until ctx is cancelled, then drains the queue and waits for in-flight work
func (r *Runner) Run(ctx context.Context) error {
	log := logger.Named("notify-runner")
	log.Info().Int("workers", cap(r.sem)).Int("queue", cap(r.queue)).Msg("runner started")
	for {
		select {
		case <-ctx.Done():
			r.stop()
			n := r.drain()
			r.wg.Wait()
			log.Info().Int("drained", n).Msg("runner stopped")
			return nil
		case j := <-r.queue:
			r.start(j)
		}
	}
}

func (r *Runner) stop() {
	r.mu.Lock()
	r.stopped = true
	r.mu.Unlock()
}

func (r *Runner) drain() int {
	n := 0
	for {
		select {
		case j := <-r.queue:
			r.start(j)
			n++
		default:
			return n
		}
	}
}

func (r *Runner) start(j job) {
	r.sem <- struct{}{}
	r.wg.Add(1)
	go func() {
		defer func() {
			<-r.sem
			r.wg.Done()
		}()
		r.exec(j)
	}()
}

func (r *Runner) exec(j job) {
	ctx, cancel := context.WithTimeout(logger.WithTask(j.ctx, j.id), r.timeout)
	defer cancel()
	log := logger.C(ctx)

	var out domain.Outcome
	defer func() {
		if v := recover(); v != nil {
			log.Error().Str("panic", fmt.Sprint(v)).Int64("submission_id", j.contact.ID).Msg("notification panicked")
			out = domain.Outcome{}
		}
		if j.done != nil {
			j.done(out)
		}
	}()

	out = r.notifier.Notify(ctx, j.contact)
	if ctx.Err() != nil {
		log.Warn().Err(ctx.Err()).Int64("submission_id", j.contact.ID).Msg("notification hit its deadline")
	}
}
