package repokit

import (
	"context"
	"fmt"
	"time"
)

// BeginHook runs at the start of a transaction with the tx bound Queryer
type BeginHook func(ctx context.Context, q Queryer) error

// WithBeginHooks wraps a TxRunner and runs hooks before fn inside the same tx
// statements outside Tx pass straight through to inner
func WithBeginHooks(inner TxRunner, hooks ...BeginHook) TxRunner {
	return hookedTx{inner: inner, hooks: hooks}
}

// StatementTimeout bounds every statement of the transaction
func StatementTimeout(d time.Duration) BeginHook {
	ms := d.Milliseconds()
	return func(ctx context.Context, q Queryer) error {
		if ms <= 0 {
			return nil
		}
		// SET LOCAL does not take bind parameters
		_, err := q.Exec(ctx, fmt.Sprintf("SET LOCAL statement_timeout = %d", ms))
		return err
	}
}

type hookedTx struct {
	inner TxRunner
	hooks []BeginHook
}

func (h hookedTx) Tx(ctx context.Context, fn func(q Queryer) error) error {
	return h.inner.Tx(ctx, func(q Queryer) error {
		for _, hk := range h.hooks {
			if err := hk(ctx, q); err != nil {
				return err
			}
		}
		return fn(q)
	})
}

func (h hookedTx) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	return h.inner.Exec(ctx, sql, args...)
}

func (h hookedTx) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	return h.inner.Query(ctx, sql, args...)
}

func (h hookedTx) QueryRow(ctx context.Context, sql string, args ...any) Row {
	return h.inner.QueryRow(ctx, sql, args...)
}

// Ping forwards to inner when it can report readiness
func (h hookedTx) Ping(ctx context.Context) error {
	if p, ok := h.inner.(interface{ Ping(context.Context) error }); ok {
		return p.Ping(ctx)
	}
	return nil
}
