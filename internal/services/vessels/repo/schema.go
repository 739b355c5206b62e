package repo

import (
	"context"

	"vesselq/internal/modkit/repokit"
	perr "vesselq/internal/platform/errors"
	"vesselq/internal/platform/store"
)

var ddl = map[store.Driver][]string{
	store.DriverPG: {
		`CREATE TABLE IF NOT EXISTS vessel_positions (
			mmsi           BIGINT           NOT NULL,
			base_date_time TIMESTAMPTZ      NOT NULL,
			lat            DOUBLE PRECISION NOT NULL,
			lon            DOUBLE PRECISION NOT NULL,
			sog            DOUBLE PRECISION NOT NULL DEFAULT 0,
			cog            DOUBLE PRECISION NOT NULL DEFAULT 0,
			heading        DOUBLE PRECISION NOT NULL DEFAULT 0,
			vessel_name    TEXT             NOT NULL DEFAULT '',
			imo            TEXT,
			call_sign      TEXT,
			vessel_type    INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS vessel_positions_name_time ON vessel_positions (vessel_name, base_date_time)`,
		`CREATE INDEX IF NOT EXISTS vessel_positions_mmsi_time ON vessel_positions (mmsi, base_date_time)`,
		`CREATE INDEX IF NOT EXISTS vessel_positions_name_lower ON vessel_positions (lower(vessel_name))`,
	},
	store.DriverSQLite: {
		`CREATE TABLE IF NOT EXISTS vessel_positions (
			mmsi           INTEGER NOT NULL,
			base_date_time TEXT    NOT NULL,
			lat            REAL    NOT NULL,
			lon            REAL    NOT NULL,
			sog            REAL    NOT NULL DEFAULT 0,
			cog            REAL    NOT NULL DEFAULT 0,
			heading        REAL    NOT NULL DEFAULT 0,
			vessel_name    TEXT    NOT NULL DEFAULT '',
			imo            TEXT,
			call_sign      TEXT,
			vessel_type    INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS vessel_positions_name_time ON vessel_positions (vessel_name, base_date_time)`,
		`CREATE INDEX IF NOT EXISTS vessel_positions_mmsi_time ON vessel_positions (mmsi, base_date_time)`,
	},
	store.DriverClickhouse: {
		`CREATE TABLE IF NOT EXISTS vessel_positions (
			mmsi           Int64,
			base_date_time DateTime64(3, 'UTC'),
			lat            Float64,
			lon            Float64,
			sog            Float64 DEFAULT 0,
			cog            Float64 DEFAULT 0,
			heading        Float64 DEFAULT 0,
			vessel_name    String DEFAULT '',
			imo            Nullable(String),
			call_sign      Nullable(String),
			vessel_type    Nullable(Int64),
			INDEX vessel_positions_mmsi mmsi TYPE minmax GRANULARITY 4
		)
		ENGINE = MergeTree
		ORDER BY (vessel_name, base_date_time)`,
	},
}

// Schema returns the DDL statements for driver
func Schema(d store.Driver) ([]string, error) {
	stmts, ok := ddl[d]
	if !ok {
		return nil, perr.InvalidArgf("no schema for driver %q", d)
	}
	return append([]string(nil), stmts...), nil
}

// ApplySchema runs the DDL for driver inside one transaction where the backend has them
func ApplySchema(ctx context.Context, tx repokit.TxRunner, d store.Driver) error {
	stmts, err := Schema(d)
	if err != nil {
		return err
	}
	return repokit.WithTx(ctx, tx, func(q repokit.Queryer) error {
		for _, s := range stmts {
			if _, err := q.Exec(ctx, s); err != nil {
				return perr.Wrapf(err, perr.ErrorCodeDB, "apply schema on %s", d)
			}
		}
		return nil
	})
}
