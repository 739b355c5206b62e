// Package sqlite opens a pure Go SQLite database for single node deployments and the CLI
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	"vesselq/internal/platform/store/sqltrace"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// DriverName is the database/sql name registered by modernc.org/sqlite
const DriverName = "sqlite"

// Config configures the database handle
type Config struct {
	Path        string
	MaxOpen     int
	BusyTimeout time.Duration
	ReadOnly    bool
	SlowMs      int
}

// DB holds the handle and the optional tracer
type DB struct {
	SQL    *sql.DB
	Tracer sqltrace.QueryTracer
	SlowMs int
}

var sqlOpen = sql.Open

// DSN renders cfg as a modernc file: URI with pragmas
func DSN(cfg Config) string {
	path := cfg.Path
	if path == "" {
		path = "vessels.db"
	}
	q := url.Values{}
	busy := cfg.BusyTimeout
	if busy <= 0 {
		busy = 5 * time.Second
	}
	q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", busy.Milliseconds()))
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "foreign_keys(1)")
	if cfg.ReadOnly {
		q.Set("mode", "ro")
	}
	if path == ":memory:" || strings.HasPrefix(path, "file:") {
		return path
	}
	return "file:" + path + "?" + q.Encode()
}

// Open opens the database; the first connection is made lazily
func Open(_ context.Context, cfg Config, tracer sqltrace.QueryTracer) (*DB, error) {
	db, err := sqlOpen(DriverName, DSN(cfg))
	if err != nil {
		return nil, err
	}
	maxOpen := cfg.MaxOpen
	if maxOpen <= 0 {
		maxOpen = 4
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxOpen)
	return &DB{SQL: db, Tracer: tracer, SlowMs: cfg.SlowMs}, nil
}

// Close closes the handle; nil safe
func (d *DB) Close() error {
	if d == nil || d.SQL == nil {
		return nil
	}
	return d.SQL.Close()
}
