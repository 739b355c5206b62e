// Package importer loads AIS position csv files (MarineCadastre layout) into
// vessel_positions. Files are parsed concurrently; one writer inserts batches
// inside a single transaction where the backend has them
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"

	"vesselq/internal/core/track"
	"vesselq/internal/modkit"
	"vesselq/internal/modkit/repokit"
	perr "vesselq/internal/platform/errors"
	"vesselq/internal/platform/logger"
	"vesselq/internal/platform/store"
	"vesselq/internal/services/vessels/repo"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Defaults
const (
	DefaultBatchSize = 1000
	DefaultWorkers   = 4

	// maxBatch keeps one multi row insert under sqlite's host parameter limit
	maxBatch = 2900
)

// Config tunes an import
type Config struct {
	BatchSize int
	Workers   int
	// Replace purges the table in the same transaction before inserting
	Replace bool
}

// Source is one named csv stream
type Source struct {
	Name string
	Open func() (io.ReadCloser, error)
}

// Files turns paths into sources
func Files(paths ...string) []Source {
	out := make([]Source, 0, len(paths))
	for _, p := range paths {
		out = append(out, Source{Name: filepath.Base(p), Open: func() (io.ReadCloser, error) { return os.Open(p) }})
	}
	return out
}

// Stats summarises an import
type Stats struct {
	Files   int64 `json:"files"`
	Rows    int64 `json:"rows"`
	Skipped int64 `json:"skipped"`
	Batches int64 `json:"batches"`
}

type counters struct{ files, rows, skipped, batches atomic.Int64 }

func (c *counters) snapshot() Stats {
	return Stats{Files: c.files.Load(), Rows: c.rows.Load(), Skipped: c.skipped.Load(), Batches: c.batches.Load()}
}

// Importer writes parsed positions through the store seam
type Importer struct {
	db     repokit.TxRunner
	ch     store.Clickhouse
	binder repokit.Binder[repo.Storage]
	cfg    Config
	log    *logger.Logger
}

// New builds an importer over module deps. ClickHouse deps use native batches
func New(deps modkit.Deps, cfg Config) *Importer {
	if deps.DB == nil {
		panic("importer requires a non nil TxRunner")
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.BatchSize > maxBatch {
		cfg.BatchSize = maxBatch
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	return &Importer{db: deps.DB, ch: deps.CH, binder: repo.New(), cfg: cfg, log: logger.Named("importer")}
}

// Import parses every source and writes the rows. Malformed rows are counted
// and skipped; an unreadable source fails the whole import
func (im *Importer) Import(ctx context.Context, srcs []Source) (Stats, error) {
	if len(srcs) == 0 {
		return Stats{}, perr.InvalidArgf("no csv files given")
	}
	var (
		c       counters
		batches = make(chan []track.Position, im.cfg.Workers)
	)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		p, pctx := errgroup.WithContext(gctx)
		p.SetLimit(im.cfg.Workers)
		for _, s := range srcs {
			p.Go(func() error { return im.parse(pctx, s, batches, &c) })
		}
		if err := p.Wait(); err != nil {
			return err
		}
		close(batches)
		return nil
	})
	g.Go(func() error { return im.write(gctx, batches, &c) })

	err := g.Wait()
	st := c.snapshot()
	lvl := zerolog.InfoLevel
	if err != nil {
		lvl = zerolog.ErrorLevel
	}
	im.log.WithLevel(lvl).Err(err).Int64("files", st.Files).Int64("rows", st.Rows).Int64("skipped", st.Skipped).
		Int64("batches", st.Batches).Bool("replace", im.cfg.Replace).Msg("import finished")
	return st, err
}

func (im *Importer) parse(ctx context.Context, s Source, out chan<- []track.Position, c *counters) error {
	rc, err := s.Open()
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "open %s", s.Name)
	}
	defer rc.Close()

	r := newReader(rc)
	h, err := readHeader(r)
	if err != nil {
		return perr.WithOp(err, s.Name)
	}

	send := func(b []track.Position) error {
		select {
		case out <- b:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	batch := make([]track.Position, 0, im.cfg.BatchSize)
	line := 1
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			var pe *csv.ParseError
			if !errors.As(err, &pe) {
				return perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "read %s", s.Name)
			}
			c.skipped.Add(1)
			im.log.Debug().Err(err).Str("file", s.Name).Int("line", line).Msg("unreadable row")
			continue
		}
		p, err := h.Record(row)
		if err != nil {
			c.skipped.Add(1)
			im.log.Debug().Err(err).Str("file", s.Name).Int("line", line).Msg("skipped row")
			continue
		}
		batch = append(batch, p)
		if len(batch) == im.cfg.BatchSize {
			if err := send(batch); err != nil {
				return err
			}
			batch = make([]track.Position, 0, im.cfg.BatchSize)
		}
	}
	if len(batch) > 0 {
		if err := send(batch); err != nil {
			return err
		}
	}
	c.files.Add(1)
	return nil
}

// write drains batches inside one transaction. It returns on ctx end without
// committing so a failed parse rolls everything back
func (im *Importer) write(ctx context.Context, batches <-chan []track.Position, c *counters) error {
	tx := im.db
	if im.cfg.Replace {
		tx = repokit.WithBeginHooks(tx, im.purge)
	}
	return repokit.WithTx(ctx, tx, func(q repokit.Queryer) error {
		st := im.binder.Bind(q)
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case b, ok := <-batches:
				if !ok {
					return nil
				}
				if err := im.insert(ctx, st, b); err != nil {
					return perr.Wrapf(err, perr.ErrorCodeDB, "insert batch of %d", len(b))
				}
				c.rows.Add(int64(len(b)))
				c.batches.Add(1)
			}
		}
	})
}

func (im *Importer) insert(ctx context.Context, st repo.Storage, b []track.Position) error {
	if im.ch == nil {
		return st.InsertBatch(ctx, b)
	}
	rows := make([][]any, len(b))
	for i, p := range b {
		rows[i] = repo.Row(p)
	}
	return im.ch.Insert(ctx, repo.Table, repo.Columns, rows)
}

func (im *Importer) purge(ctx context.Context, q repokit.Queryer) error {
	im.log.Warn().Msg("replace requested; purging vessel_positions")
	return perr.WrapIf(im.binder.Bind(q).Purge(ctx), perr.ErrorCodeDB, "purge")
}
