package store

import (
	"errors"
	"io/fs"

	"kristech/internal/platform/logger"
)

// Option mutates Store during Open
type Option func(*Store) error

// WithLogger sets the logger used by subclients
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log
		return nil
	}
}

// WithMigrations registers a goose migration set to apply when PG.Migrate is on
// sets run in registration order
func WithMigrations(fsys fs.FS, dir string) Option {
	return func(s *Store) error {
		if fsys == nil {
			return errors.New("store: nil migrations fs")
		}
		if dir == "" {
			dir = "."
		}
		s.migrations = append(s.migrations, migrationSet{fsys: fsys, dir: dir})
		return nil
	}
}
