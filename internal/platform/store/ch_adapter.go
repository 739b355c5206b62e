package store

import (
	"context"
	"errors"
	"time"

	chx "vesselq/internal/platform/store/ch"
	"vesselq/internal/platform/store/sqltrace"
)

type chClient interface {
	Query(ctx context.Context, sql string, args ...any) (chx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) chx.Row
	Exec(ctx context.Context, sql string, args ...any) error
	Insert(ctx context.Context, table string, columns []string, rows [][]any) error
	Ping(ctx context.Context) error
	Close() error
}

// chAdapter serves the SQL seam and batch inserts from ClickHouse.
// ClickHouse has no transactions; Tx runs fn against the adapter itself
type chAdapter struct {
	c      chClient
	tracer sqltrace.QueryTracer
	slowMs int
}

var (
	_ TxRunner   = (*chAdapter)(nil)
	_ Clickhouse = (*chAdapter)(nil)
)

func newCHAdapter(c chClient, tracer sqltrace.QueryTracer, slowMs int) *chAdapter {
	return &chAdapter{c: c, tracer: tracer, slowMs: slowMs}
}

func (a *chAdapter) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	start := time.Now()
	err := a.c.Exec(ctx, sql, args...)
	emit(ctx, a.tracer, "clickhouse", a.slowMs, sql, args, start, 0, err)
	return sqlTag{verb: verb(sql)}, err
}

func (a *chAdapter) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	start := time.Now()
	r, err := a.c.Query(ctx, sql, args...)
	emit(ctx, a.tracer, "clickhouse", a.slowMs, sql, args, start, 0, err)
	if err != nil {
		return nil, err
	}
	return chRows{r: r}, nil
}

func (a *chAdapter) QueryRow(ctx context.Context, sql string, args ...any) Row {
	start := time.Now()
	r := a.c.QueryRow(ctx, sql, args...)
	return sqlRowFunc(func(dst ...any) error {
		err := r.Err()
		if err == nil {
			err = r.Scan(dst...)
		}
		emit(ctx, a.tracer, "clickhouse", a.slowMs, sql, args, start, 1, err)
		return err
	})
}

func (a *chAdapter) Tx(_ context.Context, fn func(q RowQuerier) error) error { return fn(a) }

func (a *chAdapter) Insert(ctx context.Context, table string, columns []string, rows [][]any) error {
	start := time.Now()
	err := a.c.Insert(ctx, table, columns, rows)
	emit(ctx, a.tracer, "clickhouse", a.slowMs, "INSERT INTO "+table, nil, start, int64(len(rows)), err)
	return err
}

func (a *chAdapter) Ping(ctx context.Context) error {
	if a == nil || a.c == nil {
		return errors.New("clickhouse: nil adapter")
	}
	return a.c.Ping(ctx)
}

func (a *chAdapter) Close() error { return a.c.Close() }

type sqlRowFunc func(dst ...any) error

func (f sqlRowFunc) Scan(dst ...any) error { return f(dst...) }

type chRows struct{ r chx.Rows }

func (x chRows) Next() bool            { return x.r.Next() }
func (x chRows) Scan(dst ...any) error { return x.r.Scan(dst...) }
func (x chRows) Err() error            { return x.r.Err() }
func (x chRows) Close()                { _ = x.r.Close() }
func (x chRows) Columns() []string     { return x.r.Columns() }
