package store

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"vesselq/internal/platform/store/sqltrace"
)

// SQLiteTimeLayout is how timestamps are stored and bound on sqlite so text comparison orders correctly
const SQLiteTimeLayout = "2006-01-02 15:04:05"

// sqlAdapter implements TxRunner over database/sql.
// It rewrites $N placeholders to ?N and binds time.Time as UTC text
type sqlAdapter struct {
	db      *sql.DB
	backend string
	tracer  sqltrace.QueryTracer
	slowMs  int
}

func newSQLAdapter(db *sql.DB, backend string, tracer sqltrace.QueryTracer, slowMs int) *sqlAdapter {
	return &sqlAdapter{db: db, backend: backend, tracer: tracer, slowMs: slowMs}
}

// NewSQLite wraps an open *sql.DB using the sqlite dialect
func NewSQLite(db *sql.DB) TxRunner { return newSQLAdapter(db, "sqlite", nil, -1) }

func (a *sqlAdapter) Ping(ctx context.Context) error {
	if a == nil || a.db == nil {
		return errors.New("sqlite: nil adapter")
	}
	return a.db.PingContext(ctx)
}

func (a *sqlAdapter) Close() error { return a.db.Close() }

type sqlExecer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (a *sqlAdapter) Exec(ctx context.Context, q string, args ...any) (CommandTag, error) {
	return a.exec(ctx, a.db, q, args)
}

func (a *sqlAdapter) Query(ctx context.Context, q string, args ...any) (Rows, error) {
	return a.query(ctx, a.db, q, args)
}

func (a *sqlAdapter) QueryRow(ctx context.Context, q string, args ...any) Row {
	return a.queryRow(ctx, a.db, q, args)
}

func (a *sqlAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(sqlTx{a: a, tx: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (a *sqlAdapter) exec(ctx context.Context, e sqlExecer, q string, args []any) (CommandTag, error) {
	q, args = Rebind(q), bindArgs(args)
	start := time.Now()
	res, err := e.ExecContext(ctx, q, args...)
	var n int64
	if err == nil {
		n, _ = res.RowsAffected()
	}
	emit(ctx, a.tracer, a.backend, a.slowMs, q, args, start, n, err)
	return sqlTag{verb: verb(q), n: n}, err
}

func (a *sqlAdapter) query(ctx context.Context, e sqlExecer, q string, args []any) (Rows, error) {
	q, args = Rebind(q), bindArgs(args)
	start := time.Now()
	rs, err := e.QueryContext(ctx, q, args...)
	emit(ctx, a.tracer, a.backend, a.slowMs, q, args, start, 0, err)
	if err != nil {
		return nil, err
	}
	return &sqlRows{r: rs}, nil
}

func (a *sqlAdapter) queryRow(ctx context.Context, e sqlExecer, q string, args []any) Row {
	q, args = Rebind(q), bindArgs(args)
	start := time.Now()
	r := e.QueryRowContext(ctx, q, args...)
	return sqlRow{r: r, after: func(err error) {
		emit(ctx, a.tracer, a.backend, a.slowMs, q, args, start, 1, err)
	}}
}

type sqlTx struct {
	a  *sqlAdapter
	tx *sql.Tx
}

func (t sqlTx) Exec(ctx context.Context, q string, args ...any) (CommandTag, error) {
	return t.a.exec(ctx, t.tx, q, args)
}

func (t sqlTx) Query(ctx context.Context, q string, args ...any) (Rows, error) {
	return t.a.query(ctx, t.tx, q, args)
}

func (t sqlTx) QueryRow(ctx context.Context, q string, args ...any) Row {
	return t.a.queryRow(ctx, t.tx, q, args)
}

// Rebind rewrites $N placeholders to ?N, leaving quoted literals alone
func Rebind(q string) string {
	if !strings.Contains(q, "$") {
		return q
	}
	var b strings.Builder
	b.Grow(len(q))
	inQuote := false
	for i := 0; i < len(q); i++ {
		c := q[i]
		if c == '\'' {
			inQuote = !inQuote
		}
		if c == '$' && !inQuote && i+1 < len(q) && q[i+1] >= '0' && q[i+1] <= '9' {
			b.WriteByte('?')
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

func bindArgs(args []any) []any {
	var out []any
	for i, a := range args {
		var v any
		switch t := a.(type) {
		case time.Time:
			v = t.UTC().Format(SQLiteTimeLayout)
		case *time.Time:
			if t == nil {
				v = nil
			} else {
				v = t.UTC().Format(SQLiteTimeLayout)
			}
		default:
			continue
		}
		if out == nil {
			out = append([]any(nil), args...)
		}
		out[i] = v
	}
	if out == nil {
		return args
	}
	return out
}

func verb(q string) string {
	f := strings.Fields(q)
	if len(f) == 0 {
		return ""
	}
	return strings.ToUpper(f[0])
}

type sqlRow struct {
	r     *sql.Row
	after func(error)
}

func (x sqlRow) Scan(dst ...any) error {
	err := x.r.Scan(dst...)
	if x.after != nil {
		x.after(err)
	}
	return err
}

type sqlRows struct{ r *sql.Rows }

func (x *sqlRows) Next() bool            { return x.r.Next() }
func (x *sqlRows) Scan(dst ...any) error { return x.r.Scan(dst...) }
func (x *sqlRows) Err() error            { return x.r.Err() }
func (x *sqlRows) Close()                { _ = x.r.Close() }
func (x *sqlRows) Columns() []string {
	c, err := x.r.Columns()
	if err != nil {
		return nil
	}
	return c
}

type sqlTag struct {
	verb string
	n    int64
}

func (t sqlTag) String() string      { return strings.TrimSpace(t.verb + " " + strconv.FormatInt(t.n, 10)) }
func (t sqlTag) RowsAffected() int64 { return t.n }
