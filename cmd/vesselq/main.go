// Command vesselq asks questions of, inspects and loads the vessel position store
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"vesselq/internal/platform/config"
	"vesselq/internal/platform/config/raw"
	"vesselq/internal/platform/logger"
	"vesselq/internal/platform/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// stdout carries answers; logs go to stderr and stay quiet unless asked
	lo := logger.FromEnv()
	lc := raw.New().Prefix("LOG_")
	lo.Level = lc.Get("LEVEL", "warn")
	lo.Service = lc.Get("SERVICE", "vesselq-cli")
	lo.Writer = os.Stderr
	logger.Init(lo)

	root := config.New()
	open := func(ctx context.Context) (*store.Store, error) {
		return store.Open(ctx, store.FromConfig(root, "vesselq-cli"), store.WithLogger(*logger.Get()))
	}

	cmd := newRootCmd(root, open)
	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)
	if err := cmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
