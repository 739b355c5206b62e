package service

import (
	"context"
	"sync/atomic"
	"time"

	"vesselq/internal/core/queryparse"
	"vesselq/internal/platform/logger"
	vdomain "vesselq/internal/services/vessels/domain"

	"golang.org/x/sync/singleflight"
)

type builtParser struct {
	p  *queryparse.Parser
	at time.Time
}

// parsers hands out a parser over the current vessel names, rebuilding it
// once it is older than ttl. Concurrent rebuilds collapse into one catalog read
type parsers struct {
	catalog vdomain.Catalog
	opts    queryparse.Options
	ttl     time.Duration
	now     func() time.Time
	log     *logger.Logger

	cur   atomic.Pointer[builtParser]
	group singleflight.Group
}

func newParsers(catalog vdomain.Catalog, cfg Config) *parsers {
	return &parsers{
		catalog: catalog,
		opts:    queryparse.Options{Now: cfg.Now, AtAnchorsClock: cfg.AtAnchorsClock},
		ttl:     cfg.LexiconTTL,
		now:     cfg.Now,
		log:     logger.Named("parsers"),
	}
}

func (c *parsers) fresh() *queryparse.Parser {
	if b := c.cur.Load(); b != nil && c.now().Sub(b.at) < c.ttl {
		return b.p
	}
	return nil
}

// get never fails. A catalog error keeps serving the stale parser, or a
// parser without names when none was ever built
func (c *parsers) get(ctx context.Context) *queryparse.Parser {
	if p := c.fresh(); p != nil {
		return p
	}
	v, _, _ := c.group.Do("parser", func() (any, error) {
		if p := c.fresh(); p != nil {
			return p, nil
		}
		// the read serves every waiter, not just the caller that started it
		names, err := c.catalog.Names(context.WithoutCancel(ctx), "", 0)
		if err == nil {
			var p *queryparse.Parser
			if p, err = queryparse.New(names, c.opts); err == nil {
				c.cur.Store(&builtParser{p: p, at: c.now()})
				c.log.Debug().Int("names", p.Size()).Msg("parser rebuilt")
				return p, nil
			}
		}
		if b := c.cur.Load(); b != nil {
			c.log.Warn().Err(err).Msg("parser rebuild failed; keeping the stale vessel dictionary")
			return b.p, nil
		}
		c.log.Warn().Err(err).Msg("parser rebuild failed; parsing without vessel names")
		return queryparse.MustNew(nil, c.opts), nil
	})
	return v.(*queryparse.Parser)
}

// invalidate forces the next get to rebuild. The current parser stays as the
// stale fallback
func (c *parsers) invalidate() {
	if b := c.cur.Load(); b != nil {
		c.cur.Store(&builtParser{p: b.p})
	}
}
