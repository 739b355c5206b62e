package bind

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	perr "vesselq/internal/platform/errors"
	ptime "vesselq/internal/platform/time"
)

// QueryString returns the trimmed query value or def
func QueryString(r *http.Request, key, def string) string {
	if v := strings.TrimSpace(r.URL.Query().Get(key)); v != "" {
		return v
	}
	return def
}

// QueryInt parses an integer query value within [lo, hi]; absent yields def
func QueryInt(r *http.Request, key string, def, lo, hi int) (int, error) {
	s := strings.TrimSpace(r.URL.Query().Get(key))
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, perr.WithField(perr.Newf(perr.ErrorCodeValidation, "%s must be an integer", key), key)
	}
	if n < lo || n > hi {
		return 0, perr.WithField(perr.Newf(perr.ErrorCodeValidation, "%s must be between %d and %d", key, lo, hi), key)
	}
	return n, nil
}

// QueryTime parses an optional time query value in any form ptime.Parse accepts
func QueryTime(r *http.Request, key string) (*time.Time, error) {
	s := strings.TrimSpace(r.URL.Query().Get(key))
	if s == "" {
		return nil, nil
	}
	t, err := ptime.Parse(s)
	if err != nil {
		return nil, perr.WithField(perr.Newf(perr.ErrorCodeValidation, "%s must be a time like %s", key, ptime.Layout), key)
	}
	return &t, nil
}
