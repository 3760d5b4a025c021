// Package ratelimit implements a fixed-window admission counter keyed by client identity
//
// Each key owns one window that opens on its first admitted request and lasts Window.
// At most Max requests are admitted inside a window; the rest are rejected with the time
// left until the window closes. State lives in process memory only and is lost on restart.
package ratelimit

import (
	"hash/fnv"
	"sync"
	"time"

	ptime "kristech/internal/platform/time"
)

const (
	// DefaultWindow is the window length used when Options.Window is zero
	DefaultWindow = 15 * time.Minute

	// DefaultMax is the per window quota used when Options.Max is zero
	DefaultMax = 5

	shardCount = 32
)

// Options configures a Limiter
type Options struct {
	Window time.Duration
	Max    int
	Clock  ptime.Clock
}

// Decision is the outcome of one admission check
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration // zero when Allowed
	ResetAt    time.Time
	ResetIn    time.Duration // time left in the current window
}

// RetryAfterSeconds rounds RetryAfter up to whole seconds
func (d Decision) RetryAfterSeconds() int {
	return ceilSeconds(d.RetryAfter)
}

// ResetSeconds rounds ResetIn up to whole seconds
func (d Decision) ResetSeconds() int { return ceilSeconds(d.ResetIn) }

func ceilSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}

type window struct {
	start time.Time
	count int
}

type shard struct {
	mu      sync.Mutex
	windows map[string]*window
}

// Limiter is a sharded fixed-window counter
// accesses to one key are serialized by its shard lock, keys on other shards proceed in parallel
type Limiter struct {
	window time.Duration
	max    int
	clock  ptime.Clock
	shards [shardCount]shard
}

// New builds a Limiter, filling zero options with defaults
func New(opt Options) *Limiter {
	l := &Limiter{
		window: opt.Window,
		max:    opt.Max,
		clock:  ptime.OrSystem(opt.Clock),
	}
	if l.window <= 0 {
		l.window = DefaultWindow
	}
	if l.max <= 0 {
		l.max = DefaultMax
	}
	for i := range l.shards {
		l.shards[i].windows = make(map[string]*window)
	}
	return l
}

// Window returns the configured window length
func (l *Limiter) Window() time.Duration { return l.window }

// Max returns the configured per window quota
func (l *Limiter) Max() int { return l.max }

// Allow records an attempt for key and reports whether it is admitted
func (l *Limiter) Allow(key string) Decision {
	now := l.clock.Now()
	sh := l.shardFor(key)

	sh.mu.Lock()
	defer sh.mu.Unlock()

	w, ok := sh.windows[key]
	if !ok || !now.Before(w.start.Add(l.window)) {
		w = &window{start: now}
		sh.windows[key] = w
	}
	reset := w.start.Add(l.window)

	if w.count >= l.max {
		return Decision{
			Allowed:    false,
			Limit:      l.max,
			Remaining:  0,
			RetryAfter: reset.Sub(now),
			ResetAt:    reset,
			ResetIn:    reset.Sub(now),
		}
	}

	w.count++
	return Decision{
		Allowed:   true,
		Limit:     l.max,
		Remaining: l.max - w.count,
		ResetAt:   reset,
		ResetIn:   reset.Sub(now),
	}
}

// Peek reports the state for key without recording an attempt
func (l *Limiter) Peek(key string) Decision {
	now := l.clock.Now()
	sh := l.shardFor(key)

	sh.mu.Lock()
	defer sh.mu.Unlock()

	w, ok := sh.windows[key]
	if !ok || !now.Before(w.start.Add(l.window)) {
		return Decision{Allowed: true, Limit: l.max, Remaining: l.max, ResetAt: now.Add(l.window), ResetIn: l.window}
	}
	reset := w.start.Add(l.window)
	d := Decision{Allowed: w.count < l.max, Limit: l.max, Remaining: max(0, l.max-w.count), ResetAt: reset, ResetIn: reset.Sub(now)}
	if !d.Allowed {
		d.RetryAfter = reset.Sub(now)
	}
	return d
}

// Sweep drops windows that closed at or before now and returns how many were removed
func (l *Limiter) Sweep() int {
	now := l.clock.Now()
	removed := 0
	for i := range l.shards {
		sh := &l.shards[i]
		sh.mu.Lock()
		for k, w := range sh.windows {
			if !now.Before(w.start.Add(l.window)) {
				delete(sh.windows, k)
				removed++
			}
		}
		sh.mu.Unlock()
	}
	return removed
}

// Len returns the number of tracked keys, open or expired
func (l *Limiter) Len() int {
	n := 0
	for i := range l.shards {
		sh := &l.shards[i]
		sh.mu.Lock()
		n += len(sh.windows)
		sh.mu.Unlock()
	}
	return n
}

func (l *Limiter) shardFor(key string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return &l.shards[h.Sum32()%shardCount]
}
