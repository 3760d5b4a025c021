package store

import (
	"context"
	"fmt"
	"time"

	"kristech/internal/platform/store/pg"
)

const (
	backoffStart   = 150 * time.Millisecond
	backoffCeiling = 2 * time.Second
)

var pgOpen = pg.Open

// openPG opens the pool and waits until it answers a ping
func openPG(ctx context.Context, cfg Config, s *Store) (*pg.PG, error) {
	var tracer pg.QueryTracer
	if cfg.PG.LogSQL {
		tracer = pg.Tracer(s.Log)
	}

	p, err := pgOpen(ctx, pg.Config{
		URL:      cfg.PG.URL,
		MaxConns: cfg.PG.MaxConns,
		SlowMs:   cfg.PG.SlowQueryMs,
		AppName:  cfg.AppName,
	}, tracer, nil)
	if err != nil {
		return nil, err
	}

	attempts := cfg.PG.retries()
	timeout := cfg.PG.pingTimeout()

	var lastErr error
	backoff := backoffStart
	for i := 0; i < attempts; i++ {
		toCtx, cancel := context.WithTimeout(ctx, timeout)
		// ping the pool directly so boot checks stay out of the sql trace
		lastErr = p.Pool.Ping(toCtx)
		cancel()

		if lastErr == nil {
			return p, nil
		}
		if ctx.Err() != nil {
			p.Close()
			return nil, ctx.Err()
		}
		s.Log.Warn().Err(lastErr).Int("attempt", i+1).Dur("backoff", backoff).Msg("postgres not ready")

		select {
		case <-ctx.Done():
			p.Close()
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, backoffCeiling)
	}

	p.Close()
	return nil, fmt.Errorf("postgres ping failed after %d attempts: %w", attempts, lastErr)
}
