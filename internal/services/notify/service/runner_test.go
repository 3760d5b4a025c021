package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"kristech/internal/platform/testkit"
	"kristech/internal/services/notify/domain"
)

type notifyFunc func(ctx context.Context, c domain.Contact) domain.Outcome

func (f notifyFunc) Notify(ctx context.Context, c domain.Contact) domain.Outcome { return f(ctx, c) }

func startRunner(t *testing.T, r *Runner) (stop func()) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = r.Run(ctx)
		close(done)
	}()
	return func() {
		cancel()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("runner did not stop")
		}
	}
}

func TestRunner_RunsTaskAndCallsDone(t *testing.T) {
	r := NewRunner(notifyFunc(func(_ context.Context, c domain.Contact) domain.Outcome {
		return domain.Outcome{OperatorSent: c.ID == 7}
	}), RunnerConfig{})
	stop := startRunner(t, r)
	defer stop()

	got := make(chan domain.Outcome, 1)
	id, err := r.Enqueue(context.Background(), domain.Contact{ID: 7}, func(o domain.Outcome) { got <- o })
	if err != nil || id == "" {
		t.Fatalf("enqueue = %q %v", id, err)
	}
	select {
	case o := <-got:
		if !o.OperatorSent {
			t.Fatalf("outcome = %+v", o)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("done not called")
	}
}

func TestRunner_TaskIDsAreUnique(t *testing.T) {
	r := NewRunner(notifyFunc(func(context.Context, domain.Contact) domain.Outcome { return domain.Outcome{} }), RunnerConfig{Queue: 4})
	a, _ := r.Enqueue(context.Background(), domain.Contact{}, nil)
	b, _ := r.Enqueue(context.Background(), domain.Contact{}, nil)
	if a == b {
		t.Fatalf("ids collide: %s", a)
	}
}

func TestRunner_QueueFull(t *testing.T) {
	r := NewRunner(notifyFunc(func(context.Context, domain.Contact) domain.Outcome { return domain.Outcome{} }), RunnerConfig{Queue: 1})
	if _, err := r.Enqueue(context.Background(), domain.Contact{}, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Enqueue(context.Background(), domain.Contact{}, nil); !errors.Is(err, ErrQueueFull) {
		t.Fatalf("err = %v", err)
	}
	if r.Pending() != 1 {
		t.Fatalf("pending = %d", r.Pending())
	}
}

func TestRunner_BoundedConcurrency(t *testing.T) {
	var cur, peak atomic.Int32
	release := make(chan struct{})
	r := NewRunner(notifyFunc(func(context.Context, domain.Contact) domain.Outcome {
		n := cur.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		<-release
		cur.Add(-1)
		return domain.Outcome{}
	}), RunnerConfig{Workers: 2, Queue: 10})
	stop := startRunner(t, r)

	var wg sync.WaitGroup
	for i := 0; i < 6; i++ {
		wg.Add(1)
		if _, err := r.Enqueue(context.Background(), domain.Contact{ID: int64(i)}, func(domain.Outcome) { wg.Done() }); err != nil {
			t.Fatal(err)
		}
	}
	testkit.Eventually(t, 2*time.Second, func() bool { return cur.Load() == 2 })
	close(release)
	wg.Wait()
	stop()

	if peak.Load() > 2 {
		t.Fatalf("peak concurrency = %d", peak.Load())
	}
}

func TestRunner_RecoversPanics(t *testing.T) {
	r := NewRunner(notifyFunc(func(context.Context, domain.Contact) domain.Outcome {
		panic("template exploded")
	}), RunnerConfig{})
	stop := startRunner(t, r)
	defer stop()

	got := make(chan domain.Outcome, 1)
	if _, err := r.Enqueue(context.Background(), domain.Contact{ID: 1}, func(o domain.Outcome) { got <- o }); err != nil {
		t.Fatal(err)
	}
	select {
	case o := <-got:
		if o.OperatorSent || o.RequesterSent {
			t.Fatalf("panicked task should report nothing sent: %+v", o)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("done not called after panic")
	}
}

func TestRunner_TimeoutBoundsTask(t *testing.T) {
	r := NewRunner(notifyFunc(func(ctx context.Context, _ domain.Contact) domain.Outcome {
		<-ctx.Done()
		return domain.Outcome{}
	}), RunnerConfig{Timeout: 20 * time.Millisecond})
	stop := startRunner(t, r)
	defer stop()

	got := make(chan struct{})
	if _, err := r.Enqueue(context.Background(), domain.Contact{}, func(domain.Outcome) { close(got) }); err != nil {
		t.Fatal(err)
	}
	select {
	case <-got:
	case <-time.After(5 * time.Second):
		t.Fatal("task was not bounded by its timeout")
	}
}

func TestRunner_RequestCancelDoesNotCancelTask(t *testing.T) {
	seen := make(chan error, 1)
	r := NewRunner(notifyFunc(func(ctx context.Context, _ domain.Contact) domain.Outcome {
		seen <- ctx.Err()
		return domain.Outcome{}
	}), RunnerConfig{})

	reqCtx, cancel := context.WithCancel(context.Background())
	if _, err := r.Enqueue(reqCtx, domain.Contact{}, nil); err != nil {
		t.Fatal(err)
	}
	cancel()

	stop := startRunner(t, r)
	defer stop()
	select {
	case err := <-seen:
		if err != nil {
			t.Fatalf("task context already done: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("task did not run")
	}
}

func TestRunner_DrainsOnShutdownAndRejectsAfter(t *testing.T) {
	var ran atomic.Int32
	r := NewRunner(notifyFunc(func(context.Context, domain.Contact) domain.Outcome {
		ran.Add(1)
		return domain.Outcome{}
	}), RunnerConfig{Queue: 8})
	for i := 0; i < 5; i++ {
		if _, err := r.Enqueue(context.Background(), domain.Contact{}, nil); err != nil {
			t.Fatal(err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := r.Run(ctx); err != nil {
		t.Fatal(err)
	}
	if ran.Load() != 5 {
		t.Fatalf("ran = %d, want every queued task drained", ran.Load())
	}
	if _, err := r.Enqueue(context.Background(), domain.Contact{}, nil); !errors.Is(err, ErrStopped) {
		t.Fatalf("err = %v", err)
	}
}
