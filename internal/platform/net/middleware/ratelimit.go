package middleware

import (
	stdjson "encoding/json"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	perr "vesselq/internal/platform/errors"
	pnet "vesselq/internal/platform/net"

	"golang.org/x/time/rate"
)

// RateLimitOptions configures the per client token bucket
type RateLimitOptions struct {
	RPS   float64
	Burst int
	// Idle evicts buckets not touched for this long, default 10m
	Idle time.Duration
	// Key derives the bucket key, default is the client IP
	Key func(*http.Request) string
}

type bucket struct {
	lim  *rate.Limiter
	seen time.Time
}

type limiterSet struct {
	mu      sync.Mutex
	rps     rate.Limit
	burst   int
	idle    time.Duration
	buckets map[string]*bucket
	swept   time.Time
}

var nowFn = time.Now // seam

func (s *limiterSet) get(key string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := nowFn()
	if now.Sub(s.swept) > s.idle {
		for k, b := range s.buckets {
			if now.Sub(b.seen) > s.idle {
				delete(s.buckets, k)
			}
		}
		s.swept = now
	}
	b, ok := s.buckets[key]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(s.rps, s.burst)}
		s.buckets[key] = b
	}
	b.seen = now
	return b.lim
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimit answers 429 with a JSON envelope once a client exceeds RPS sustained or Burst at once.
// RPS <= 0 disables the limiter
func RateLimit(o RateLimitOptions) func(http.Handler) http.Handler {
	if o.RPS <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if o.Burst < 1 {
		o.Burst = int(o.RPS) + 1
	}
	if o.Idle <= 0 {
		o.Idle = 10 * time.Minute
	}
	if o.Key == nil {
		o.Key = clientIP
	}
	set := &limiterSet{
		rps:     rate.Limit(o.RPS),
		burst:   o.Burst,
		idle:    o.Idle,
		buckets: make(map[string]*bucket),
		swept:   nowFn(),
	}
	retry := strconv.Itoa(int(1/o.RPS) + 1)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if set.get(o.Key(r)).AllowN(nowFn(), 1) {
				next.ServeHTTP(w, r)
				return
			}
			status, body := pnet.Error(
				perr.Newf(perr.ErrorCodeTooManyRequests, "rate limit exceeded"),
				pnet.RequestID(r.Context()),
			)
			w.Header().Set("Retry-After", retry)
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(status)
			_ = stdjson.NewEncoder(w).Encode(body)
		})
	}
}
