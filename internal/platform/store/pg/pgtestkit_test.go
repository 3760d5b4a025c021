package pg

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
)

// WithTestDB opens a PG client tagged with appName and runs fn, closing it on cleanup
func WithTestDB(t *testing.T, dsn, appName string, poolMut func(*pgxpool.Config), fn func(p *PG)) {
	t.Helper()
	ctx := context.Background()
	client, err := Open(ctx, Config{URL: dsn, AppName: appName}, nil, poolMut)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { client.Close() })
	fn(client)
}

// AcquireConn pins one session so TEMP tables survive between statements
func AcquireConn(t *testing.T, p *PG, ctx context.Context) *pgxpool.Conn {
	t.Helper()
	conn, err := p.Pool.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	t.Cleanup(func() { conn.Release() })
	return conn
}
