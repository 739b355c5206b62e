package store

import (
	"context"
	"fmt"
	"time"

	chx "vesselq/internal/platform/store/ch"
	"vesselq/internal/platform/store/pg"
	"vesselq/internal/platform/store/sqlite"
	"vesselq/internal/platform/store/sqltrace"
)

var sleep = time.Sleep

// pingWithRetry pings with exponential backoff until success, ctx end, or attempts run out
func pingWithRetry(ctx context.Context, s *Store, backend string, rc RetryConfig, ping func(context.Context) error) error {
	rc = rc.withDefaults()
	var lastErr error
	backoff := rc.Backoff
	for i := 0; i < rc.Attempts; i++ {
		toCtx, cancel := context.WithTimeout(ctx, rc.PingTimeout)
		lastErr = ping(toCtx)
		cancel()
		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.Log.Warn().Err(lastErr).Str("backend", backend).Int("attempt", i+1).Dur("backoff", backoff).
			Msg("store not ready")
		sleep(backoff)
		backoff *= 2
		if backoff > rc.MaxBackoff {
			backoff = rc.MaxBackoff
		}
	}
	return fmt.Errorf("%s ping failed after %d attempts: %w", backend, rc.Attempts, lastErr)
}

func tracerFor(s *Store, on bool) sqltrace.QueryTracer {
	if !on {
		return nil
	}
	return sqltrace.Tracer(s.Log)
}

func openPG(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	p, err := pg.Open(ctx, pg.Config{
		URL:      cfg.PG.URL,
		MaxConns: cfg.PG.MaxConns,
		SlowMs:   cfg.PG.SlowQueryMs,
		AppName:  cfg.AppName,
	}, tracerFor(s, cfg.PG.LogSQL), nil)
	if err != nil {
		return nil, err
	}
	// ping the pool directly so boot retries do not spam the tracer
	if err := pingWithRetry(ctx, s, "postgres", cfg.Retry, p.Pool.Ping); err != nil {
		p.Close()
		return nil, err
	}
	return newPGAdapter(p), nil
}

func openSQLite(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	d, err := sqlite.Open(ctx, sqlite.Config{
		Path:        cfg.SQLite.Path,
		MaxOpen:     cfg.SQLite.MaxOpen,
		BusyTimeout: cfg.SQLite.BusyTimeout,
		SlowMs:      cfg.SQLite.SlowQueryMs,
	}, tracerFor(s, cfg.SQLite.LogSQL))
	if err != nil {
		return nil, err
	}
	if err := pingWithRetry(ctx, s, "sqlite", cfg.Retry, d.SQL.PingContext); err != nil {
		_ = d.Close()
		return nil, err
	}
	return newSQLAdapter(d.SQL, "sqlite", d.Tracer, d.SlowMs), nil
}

func openCH(ctx context.Context, cfg Config, s *Store) (*chAdapter, error) {
	c, err := chx.Open(ctx, chx.Config{
		URL:          cfg.CH.URL,
		Addr:         cfg.CH.Addr,
		Database:     cfg.CH.Database,
		Username:     cfg.CH.Username,
		Password:     cfg.CH.Password,
		DialTimeout:  cfg.CH.DialTimeout,
		MaxOpenConns: cfg.CH.MaxOpenConns,
		Role:         cfg.CH.Role,
		Version:      cfg.Version,
	})
	if err != nil {
		return nil, err
	}
	if err := pingWithRetry(ctx, s, "clickhouse", cfg.Retry, c.Ping); err != nil {
		_ = c.Close()
		return nil, err
	}
	return newCHAdapter(c, tracerFor(s, cfg.CH.LogSQL), cfg.CH.SlowQueryMs), nil
}
