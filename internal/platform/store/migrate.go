package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"kristech/internal/platform/logger"
	"kristech/internal/platform/store/pg"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// goose keeps its base fs and dialect in package state
var gooseMu sync.Mutex

var (
	gooseUp = goose.UpContext
	openDB  = func(p *pg.PG) *sql.DB { return stdlib.OpenDBFromPool(p.Pool) }
)

// Migrate applies the goose migrations found in dir of fsys
func (s *Store) Migrate(ctx context.Context, fsys fs.FS, dir string) error {
	if s == nil || s.pool == nil {
		return errors.New("store: migrate needs an open postgres pool")
	}
	db := openDB(s.pool)
	defer db.Close()

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(fsys)
	defer goose.SetBaseFS(nil)
	goose.SetLogger(gooseLogger{log: s.Log.With().Str("component", "migrate").Logger()})

	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := gooseUp(ctx, db, dir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// gooseLogger forwards goose output to zerolog
type gooseLogger struct{ log logger.Logger }

func (g gooseLogger) Printf(format string, v ...any) {
	g.log.Info().Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (g gooseLogger) Fatalf(format string, v ...any) {
	g.log.Fatal().Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}
