package store

import (
	"vesselq/internal/platform/logger"
)

// Option configures a Store before its driver is opened
type Option func(*Store) error

// WithLogger sets the logger the driver adapters and query tracer write to.
// Without it the store logs nothing
func WithLogger(l logger.Logger) Option {
	return func(s *Store) error {
		s.Log = l
		return nil
	}
}
