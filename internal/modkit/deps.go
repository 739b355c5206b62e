// Package modkit provides module wiring and core deps
package modkit

import (
	"vesselq/internal/modkit/repokit"
	"vesselq/internal/platform/config"
	"vesselq/internal/platform/logger"
	"vesselq/internal/platform/store"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log    logger.Logger
	Cfg    config.Conf
	Driver store.Driver
	DB     repokit.TxRunner
	// CH is set only when the clickhouse backend is open
	CH store.Clickhouse
}

// NewDeps projects an opened store onto module deps
func NewDeps(cfg config.Conf, st *store.Store) Deps {
	d := Deps{Log: logger.Nop(), Cfg: cfg}
	if st == nil {
		return d
	}
	d.Log, d.Driver, d.DB, d.CH = st.Log, st.Driver, st.DB, st.CH
	return d
}
