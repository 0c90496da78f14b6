// Package store persists the schedule database. Every implementation makes a
// Put visible atomically: readers see either the previous state or the whole
// new database, never a partial one.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/jackzampolin/timetable/internal/schedule"
)

// ErrNotFound is returned by Get when no database has been stored.
var ErrNotFound = errors.New("schedule database not found")

// Store holds at most one schedule database.
type Store interface {
	Get(ctx context.Context) (*schedule.Database, error)
	Put(ctx context.Context, db *schedule.Database) error
	// Clear removes the stored database. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
	Close() error
}

// Driver names a Store implementation.
type Driver string

const (
	DriverFile   Driver = "file"
	DriverSQLite Driver = "sqlite"
	DriverMemory Driver = "memory"
)

// Config selects and configures a Store.
type Config struct {
	Driver Driver
	// Path is the file or database location. Relative paths are resolved
	// against Dir.
	Path   string
	Dir    string
	Logger *slog.Logger
}

// Open creates the Store described by cfg.
func Open(ctx context.Context, cfg Config) (Store, error) {
	path := cfg.Path
	if path != "" && !filepath.IsAbs(path) && cfg.Dir != "" {
		path = filepath.Join(cfg.Dir, path)
	}

	switch cfg.Driver {
	case DriverFile, "":
		if path == "" {
			return nil, fmt.Errorf("file store requires a path")
		}
		return NewFileStore(path, cfg.Logger), nil
	case DriverSQLite:
		if path == "" {
			return nil, fmt.Errorf("sqlite store requires a path")
		}
		return NewSQLiteStore(ctx, path, cfg.Logger)
	case DriverMemory:
		return NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
}
