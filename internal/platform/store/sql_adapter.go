package store

import (
	"context"
	"errors"
	"time"

	"kristech/internal/platform/store/pg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgxQuerier is the surface pgxpool.Pool and pgx.Tx share
type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// querier adapts a pgx querier to RowQuerier and traces every statement
type querier struct {
	db     pgxQuerier
	tracer pg.QueryTracer
	slowUS int64
}

func (q querier) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	start := time.Now()
	ct, err := q.db.Exec(ctx, sql, args...)
	q.emit(ctx, sql, args, start, err)
	return tag{ct}, err
}

// Query traces on open, scan time is not included
func (q querier) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	start := time.Now()
	rs, err := q.db.Query(ctx, sql, args...)
	q.emit(ctx, sql, args, start, err)
	if err != nil {
		return nil, err
	}
	return rows{r: rs}, nil
}

// QueryRow traces once Scan returns so the scan error is captured
func (q querier) QueryRow(ctx context.Context, sql string, args ...any) Row {
	start := time.Now()
	r := q.db.QueryRow(ctx, sql, args...)
	return row{
		r: r,
		after: func(scanErr error) {
			q.emit(ctx, sql, args, start, scanErr)
		},
	}
}

func (q querier) emit(ctx context.Context, sql string, args []any, start time.Time, err error) {
	if q.tracer == nil {
		return
	}
	elapsedUS := time.Since(start).Microseconds()
	q.tracer.OnQuery(ctx, pg.QueryEvent{
		SQL:       sql,
		Args:      args,
		ElapsedUS: elapsedUS,
		Err:       err,
		Slow:      q.slowUS >= 0 && elapsedUS >= q.slowUS,
	})
}

// pgAdapter is the pool backed TxRunner
type pgAdapter struct {
	querier
	p *pg.PG
}

func newPGAdapter(p *pg.PG) *pgAdapter {
	return &pgAdapter{
		querier: querier{db: p.Pool, tracer: p.Tracer, slowUS: int64(p.SlowMs) * 1000},
		p:       p,
	}
}

func (a *pgAdapter) Ping(ctx context.Context) error {
	if a == nil || a.p == nil {
		return errors.New("pg: nil adapter")
	}
	var one int
	return a.QueryRow(ctx, "SELECT 1").Scan(&one)
}

func (a *pgAdapter) Close() error { a.p.Close(); return nil }

// Tx commits when fn returns nil and rolls back otherwise, panics included
func (a *pgAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	tx, err := a.p.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	return runTx(ctx, tx, a.tracer, a.slowUS, fn)
}

func runTx(ctx context.Context, tx pgx.Tx, tracer pg.QueryTracer, slowUS int64, fn func(q RowQuerier) error) error {
	done := false
	defer func() {
		if !done {
			_ = tx.Rollback(ctx)
		}
	}()
	if err := fn(querier{db: tx, tracer: tracer, slowUS: slowUS}); err != nil {
		return err
	}
	done = true
	return tx.Commit(ctx)
}

// adapters for pgx to our tiny Row/Rows/CommandTag

type row struct {
	r     pgx.Row
	after func(error)
}

func (x row) Scan(dst ...any) error {
	err := x.r.Scan(dst...)
	if x.after != nil {
		x.after(err)
	}
	return err
}

type rows struct{ r pgx.Rows }

func (x rows) Next() bool            { return x.r.Next() }
func (x rows) Scan(dst ...any) error { return x.r.Scan(dst...) }
func (x rows) Err() error            { return x.r.Err() }
func (x rows) Close()                { x.r.Close() }
func (x rows) Columns() []string {
	f := x.r.FieldDescriptions()
	out := make([]string, len(f))
	for i := range f {
		out[i] = f[i].Name
	}
	return out
}

type tag struct{ t pgconn.CommandTag }

func (t tag) String() string      { return t.t.String() }
func (t tag) RowsAffected() int64 { return t.t.RowsAffected() }
