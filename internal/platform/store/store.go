// Package store owns the postgres connection the services share
package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"kristech/internal/platform/logger"
	"kristech/internal/platform/store/pg"
)

// Store is the facade over the postgres backend
// zero value is safe but does nothing
type Store struct {
	// Log is the logger used by subclients
	// zero means a no op zerolog logger
	Log logger.Logger

	// PG is the postgres sql seam, nil when disabled
	PG TxRunner

	pool       *pg.PG
	migrations []migrationSet
}

type migrationSet struct {
	fsys fs.FS
	dir  string
}

// Row exposes the minimal scan contract a single row needs
type Row interface {
	Scan(dest ...any) error
}

// Rows exposes the minimal iteration and scan for a result set
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
	Columns() []string
}

// CommandTag is a tiny interface to inspect command results
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier is the read and write surface repos use for sql
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner wraps transaction execution around a function
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Pinger is any seam that can report readiness
type Pinger interface{ Ping(context.Context) error }

// Open constructs a Store with postgres when cfg enables it
// registered migrations run right after the pool answers a ping
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}

	// defaults for zero logger to avoid nil checks
	s.Log = s.Log.With().Logger()

	if !cfg.PG.Enabled {
		return s, nil
	}

	p, err := openPG(ctx, cfg, s)
	if err != nil {
		return nil, err
	}
	s.pool = p
	s.PG = newPGAdapter(p)

	if cfg.PG.Migrate {
		for _, m := range s.migrations {
			if err := s.Migrate(ctx, m.fsys, m.dir); err != nil {
				p.Close()
				return nil, err
			}
		}
	}
	return s, nil
}

// Guard verifies the configured backend answers
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("nil store")
	}
	if s.PG == nil {
		return nil
	}
	if p, ok := s.PG.(Pinger); ok {
		if err := p.Ping(ctx); err != nil {
			return fmt.Errorf("pg: %w", err)
		}
	}
	return nil
}

// Close closes the pool, nil backends are ignored
func (s *Store) Close(_ context.Context) error {
	if s == nil {
		return nil
	}
	if c, ok := s.PG.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
