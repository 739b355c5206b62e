package store

import (
	"fmt"
	"strings"
	"time"
)

// Time scans timestamps from every backend as UTC.
// pgx and clickhouse hand over time.Time; sqlite may hand over text
type Time time.Time

var timeLayouts = []string{
	SQLiteTimeLayout,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05",
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02",
}

// Scan implements sql.Scanner
func (t *Time) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*t = Time{}
		return nil
	case time.Time:
		*t = Time(v.UTC())
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	case int64:
		*t = Time(time.Unix(v, 0).UTC())
		return nil
	default:
		return fmt.Errorf("store.Time: unsupported source %T", src)
	}
}

// T returns the scanned value
func (t Time) T() time.Time { return time.Time(t) }

func (t *Time) parse(s string) error {
	s = strings.TrimSpace(s)
	for _, l := range timeLayouts {
		if p, err := time.Parse(l, s); err == nil {
			*t = Time(p.UTC())
			return nil
		}
	}
	return fmt.Errorf("store.Time: cannot parse %q", s)
}

// ParseTime parses any layout Time.Scan accepts
func ParseTime(s string) (time.Time, error) {
	var t Time
	err := t.parse(s)
	return t.T(), err
}
