package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"vesselq/internal/platform/config"
	"vesselq/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	Origins  []string
	Timeout  time.Duration
	Slow     time.Duration
	RPS      float64
	Burst    int
	Throttle int
}

// StackFromConfig reads CORS_ORIGINS, TIMEOUT, SLOW, RATE_RPS, RATE_BURST and MAX_INFLIGHT from cfg
func StackFromConfig(cfg config.Conf) StackOptions {
	return StackOptions{
		Origins:  cfg.MayCSV("CORS_ORIGINS", []string{"*"}),
		Timeout:  cfg.MayDuration("TIMEOUT", 30*time.Second),
		Slow:     cfg.MayDuration("SLOW", 500*time.Millisecond),
		RPS:      cfg.MayFloat64("RATE_RPS", 20),
		Burst:    cfg.MayInt("RATE_BURST", 40),
		Throttle: cfg.MayInt("MAX_INFLIGHT", 0),
	}
}

// CommonStack returns the baseline API middleware slice, outermost first
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	stack := []func(http.Handler) http.Handler{
		// tracing / correlation
		middleware.RealIP(),
		middleware.RequestID(),

		// safety
		middleware.RecoverJSON,

		// observability
		middleware.AccessLog(middleware.AccessLogOptions{Slow: o.Slow}),

		// admission
		middleware.RateLimit(middleware.RateLimitOptions{RPS: o.RPS, Burst: o.Burst}),
	}
	if o.Throttle > 0 {
		stack = append(stack, middleware.Throttle(o.Throttle))
	}
	return append(stack,
		middleware.NoCache(),
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.Origins}),
		middleware.Compress(flate.BestSpeed),
		middleware.Timeout(o.Timeout),
	)
}
