// @title         vesselq API
// @version       0.1.0
// @description   Free text questions about tracked vessels over an AIS position store

package main

import (
	"context"
	"os/signal"
	"syscall"

	"vesselq/internal/core/version"
	"vesselq/internal/platform/config"
	"vesselq/internal/platform/config/raw"
	"vesselq/internal/platform/logger"
	phttp "vesselq/internal/platform/net/http"
	"vesselq/internal/platform/store"

	"vesselq/internal/services/api"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	lo := logger.FromEnv()
	lo.Service = raw.New().Prefix("LOG_").Get("SERVICE", "vesselq-api")
	logger.Init(lo)
	l := logger.Get()

	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	// CORE_STORE_DRIVER picks sqlite (default), pg or clickhouse
	cfg := store.FromConfig(root, "vesselq-api")
	cfg.Version = version.Info().Version
	st, err := store.Open(ctx, cfg, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Str("driver", string(cfg.Driver)).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// listens on CORE_API_API_PORT (default :4000)
	srv := phttp.NewServer(apiCfg)

	api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Store:          st,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
