package store

import "time"

// Config selects a driver and carries every backend's settings
type Config struct {
	AppName string
	Version string
	Driver  Driver

	PG     PGConfig
	SQLite SQLiteConfig
	CH     CHConfig

	// Retry tunes the boot ping loop; zero values take defaults
	Retry RetryConfig
}

// PGConfig configures postgres
type PGConfig struct {
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int
}

// SQLiteConfig configures the embedded database
type SQLiteConfig struct {
	Path        string
	MaxOpen     int
	BusyTimeout time.Duration
	LogSQL      bool
	SlowQueryMs int
}

// CHConfig configures clickhouse
type CHConfig struct {
	URL          string
	Addr         []string
	Database     string
	Username     string
	Password     string
	DialTimeout  time.Duration
	MaxOpenConns int
	LogSQL       bool
	SlowQueryMs  int
	Role         string
}

// RetryConfig bounds the ping loop run at boot
type RetryConfig struct {
	Attempts    int
	PingTimeout time.Duration
	Backoff     time.Duration
	MaxBackoff  time.Duration
}

func (r RetryConfig) withDefaults() RetryConfig {
	if r.Attempts <= 0 {
		r.Attempts = 20
	}
	if r.PingTimeout <= 0 {
		r.PingTimeout = 3 * time.Second
	}
	if r.Backoff <= 0 {
		r.Backoff = 150 * time.Millisecond
	}
	if r.MaxBackoff <= 0 {
		r.MaxBackoff = 2 * time.Second
	}
	return r
}
