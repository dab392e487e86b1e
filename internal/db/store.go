//-------------------------------------------------------------------------
//
// AG Data Generator
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package db

import (
	"context"
	"fmt"
	"slices"
	"sync"
)

// Config holds connection parameters for any supported driver.
type Config struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	Database string
	// Schema is the PostgreSQL schema holding the tables.
	Schema  string
	SSLMode string
	// Path is the SQLite database file.
	Path string
	// CreateDatabase creates the MySQL database before connecting.
	CreateDatabase bool
}

// Tx is one table's insert scope. Nothing is visible to other sessions
// until Commit.
type Tx interface {
	// InsertIgnore inserts rows, skipping any whose primary key already
	// exists, and returns how many rows were actually inserted.
	InsertIgnore(ctx context.Context, table string, columns []string, rows [][]any) (int64, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Store is a target database. It is the schema authority for its tables
// and the sink for their rows.
type Store interface {
	Dialect() Dialect
	// Columns lists a table's columns in ordinal order.
	Columns(ctx context.Context, table string) ([]string, error)
	// AddColumn adds a nullable text column.
	AddColumn(ctx context.Context, table, column string) error
	Begin(ctx context.Context) (Tx, error)
	CreateSchema(ctx context.Context) error
	DropSchema(ctx context.Context) error
	CountRows(ctx context.Context, table string) (int64, error)
	SaveMetadata(ctx context.Context, values map[string]string) error
	GetAllMetadata(ctx context.Context) (map[string]string, error)
	Close()
}

// OpenFunc connects to a database of one driver.
type OpenFunc func(ctx context.Context, cfg Config) (Store, error)

var (
	drivers = make(map[string]OpenFunc)
	mu      sync.RWMutex
)

// Register makes a driver available to Open.
func Register(name string, open OpenFunc) {
	mu.Lock()
	defer mu.Unlock()
	drivers[name] = open
}

// Drivers returns the registered driver names, sorted.
func Drivers() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Open connects to the database described by cfg.
func Open(ctx context.Context, cfg Config) (Store, error) {
	mu.RLock()
	open, ok := drivers[cfg.Driver]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown driver: %s", cfg.Driver)
	}
	return open(ctx, cfg)
}
