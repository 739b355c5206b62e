// Package store fronts the positions database behind one small SQL seam.
// Exactly one relational backend (pg, sqlite or clickhouse) is open at a time
package store

import (
	"context"
	"errors"
	"fmt"

	"vesselq/internal/platform/logger"
)

// Driver names a backend
type Driver string

const (
	DriverPG         Driver = "pg"
	DriverSQLite     Driver = "sqlite"
	DriverClickhouse Driver = "clickhouse"
)

// Store is the facade repos receive through modkit deps
type Store struct {
	// Log is used by subclients; the zero value is a no op logger
	Log logger.Logger

	// Driver is the backend behind DB
	Driver Driver

	// DB is the SQL seam every repo reads through, nil until Open
	DB TxRunner

	// CH is the columnar batch writer, set only for the clickhouse driver
	CH Clickhouse
}

// Row exposes the scan contract of a single row
type Row interface {
	Scan(dest ...any) error
}

// Rows exposes iteration over a result set
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
	Columns() []string
}

// CommandTag reports the outcome of a write
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier is the read and write surface repos use.
// SQL is written with $N placeholders; adapters rebind as needed
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner adds transactions; backends without them run fn directly
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Clickhouse is the native batch insert seam
type Clickhouse interface {
	Insert(ctx context.Context, table string, columns []string, rows [][]any) error
}

// Pinger reports readiness
type Pinger interface{ Ping(context.Context) error }

// Open connects the configured driver and verifies it with a ping
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}
	s.Log = s.Log.With().Logger()

	d := cfg.Driver
	if d == "" {
		d = DriverPG
	}
	s.Driver = d

	switch d {
	case DriverPG:
		db, err := openPG(ctx, cfg, s)
		if err != nil {
			return nil, err
		}
		s.DB = db
	case DriverSQLite:
		db, err := openSQLite(ctx, cfg, s)
		if err != nil {
			return nil, err
		}
		s.DB = db
	case DriverClickhouse:
		a, err := openCH(ctx, cfg, s)
		if err != nil {
			return nil, err
		}
		s.DB = a
		s.CH = a
	default:
		return nil, fmt.Errorf("store: unknown driver %q", d)
	}

	s.Log.Info().Str("driver", string(d)).Msg("store opened")
	return s, nil
}

// Wrap builds a Store over a seam the caller already owns
func Wrap(d Driver, db TxRunner) *Store {
	s := &Store{Driver: d, DB: db}
	if c, ok := db.(Clickhouse); ok {
		s.CH = c
	}
	return s
}

// Guard pings the open backend
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("nil store")
	}
	if s.DB == nil {
		return errors.New("store: no backend open")
	}
	if p, ok := s.DB.(Pinger); ok {
		if err := p.Ping(ctx); err != nil {
			return fmt.Errorf("%s: %w", s.Driver, err)
		}
	}
	return nil
}

// Close releases the backend; nil safe
func (s *Store) Close(context.Context) error {
	if s == nil {
		return nil
	}
	if c, ok := s.DB.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
