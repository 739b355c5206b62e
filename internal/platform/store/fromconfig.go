package store

import (
	"time"

	"vesselq/internal/platform/config"
)

// Drivers lists the accepted CORE_STORE_DRIVER values
var Drivers = []string{string(DriverSQLite), string(DriverPG), string(DriverClickhouse)}

// FromConfig reads CORE_STORE_DRIVER and the settings of the selected backend
// from SERVICE_SQLITE_*, SERVICE_PGSQL_* or SERVICE_CLICKHOUSE_*. Only the
// selected backend's required keys must be set
func FromConfig(root config.Conf, app string) Config {
	c := Config{
		AppName: app,
		Driver:  Driver(root.Prefix("CORE_STORE_").MayEnum("DRIVER", string(DriverSQLite), Drivers...)),
	}
	switch c.Driver {
	case DriverPG:
		pg := root.Prefix("SERVICE_PGSQL_")
		c.PG = PGConfig{
			URL:         pg.MustString("DBURL"),
			MaxConns:    int32(pg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pg.MayInt("SLOW_MS", 500),
			LogSQL:      pg.MayBool("LOG_SQL", false),
		}
	case DriverClickhouse:
		ch := root.Prefix("SERVICE_CLICKHOUSE_")
		c.CH = CHConfig{
			URL:          ch.MayString("DBURL", ""),
			Addr:         ch.MayCSV("ADDR", nil),
			Database:     ch.MayString("DATABASE", "default"),
			Username:     ch.MayString("USERNAME", "default"),
			Password:     ch.MayString("PASSWORD", ""),
			DialTimeout:  ch.MayDuration("DIAL_TIMEOUT", 5*time.Second),
			MaxOpenConns: ch.MayInt("MAX_OPEN", 8),
			SlowQueryMs:  ch.MayInt("SLOW_MS", 500),
			LogSQL:       ch.MayBool("LOG_SQL", false),
			Role:         app,
		}
	default:
		sq := root.Prefix("SERVICE_SQLITE_")
		c.SQLite = SQLiteConfig{
			Path:        sq.MayString("PATH", "vessels.db"),
			MaxOpen:     sq.MayInt("MAX_OPEN", 1),
			BusyTimeout: sq.MayDuration("BUSY_TIMEOUT", 5*time.Second),
			SlowQueryMs: sq.MayInt("SLOW_MS", 500),
			LogSQL:      sq.MayBool("LOG_SQL", false),
		}
	}
	return c
}
