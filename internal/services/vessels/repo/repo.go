// Package repo reads and writes vessel_positions through the store SQL seam.
// Queries use $N placeholders and portable SQL so one implementation serves
// postgres, sqlite and clickhouse
package repo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"vesselq/internal/core/track"
	"vesselq/internal/modkit/repokit"
	"vesselq/internal/platform/store"
	str "vesselq/internal/platform/strings"
	"vesselq/internal/services/vessels/domain"
)

// Table is the positional record table
const Table = "vessel_positions"

// Columns in insert and select order
var Columns = []string{
	"mmsi", "base_date_time", "lat", "lon", "sog", "cog", "heading",
	"vessel_name", "imo", "call_sign", "vessel_type",
}

const selectCols = `mmsi, base_date_time, lat, lon, sog, cog, heading,
	COALESCE(vessel_name, ''), COALESCE(imo, ''), COALESCE(call_sign, ''),
	CAST(COALESCE(vessel_type, 0) AS BIGINT)`

// Storage is the vessel_positions repository
type Storage interface {
	DistinctNames(ctx context.Context) ([]string, error)
	NamesByPrefix(ctx context.Context, prefix string, limit int) ([]string, error)
	NamesLike(ctx context.Context, needle string, limit int) ([]string, error)
	NameExact(ctx context.Context, name string) (string, error)
	Summaries(ctx context.Context) ([]domain.Summary, error)

	Latest(ctx context.Context, id domain.Identity) (track.Position, error)
	AtOrBefore(ctx context.Context, id domain.Identity, end time.Time) (track.Position, error)
	Between(ctx context.Context, id domain.Identity, from, to time.Time, limit int) (track.Track, error)
	Trailing(ctx context.Context, id domain.Identity, end time.Time, limit int) (track.Track, error)
	Range(ctx context.Context, q domain.TrackQuery) (track.Track, error)

	InsertBatch(ctx context.Context, xs []track.Position) error
	Purge(ctx context.Context) error
}

type (
	sqlRepo struct{ q repokit.Queryer }
	binder  struct{}
)

// New returns the binder for the SQL repository
func New() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &sqlRepo{q: q} }

// args accumulates positional arguments
type args []any

func (a *args) add(v any) string {
	*a = append(*a, v)
	return fmt.Sprintf("$%d", len(*a))
}

func (a *args) identity(id domain.Identity) string {
	if id.MMSI != 0 {
		return "mmsi = " + a.add(id.MMSI)
	}
	return "vessel_name = " + a.add(id.Name)
}

func scanPosition(r store.Row) (track.Position, error) {
	var (
		p     track.Position
		ts    store.Time
		vtype int64
	)
	err := r.Scan(&p.MMSI, &ts, &p.Lat, &p.Lon, &p.SOG, &p.COG, &p.Heading,
		&p.Name, &p.IMO, &p.CallSign, &vtype)
	p.Timestamp, p.VesselType = ts.T(), int(vtype)
	return p, err
}

// DistinctNames lists every non blank vessel name, sorted
func (s *sqlRepo) DistinctNames(ctx context.Context) ([]string, error) {
	return store.Strings(ctx, s.q, `SELECT DISTINCT vessel_name FROM `+Table+`
		WHERE vessel_name IS NOT NULL AND vessel_name <> ''
		ORDER BY vessel_name`)
}

// NamesByPrefix lists names starting with prefix, case insensitive
func (s *sqlRepo) NamesByPrefix(ctx context.Context, prefix string, limit int) ([]string, error) {
	var a args
	sql := `SELECT DISTINCT vessel_name FROM ` + Table + `
		WHERE lower(vessel_name) LIKE ` + a.add(strings.ToLower(likeEscape(prefix))+"%") + `
		ORDER BY vessel_name
		LIMIT ` + a.add(limit)
	return store.Strings(ctx, s.q, sql, a...)
}

// NamesLike lists names containing needle, case insensitive
func (s *sqlRepo) NamesLike(ctx context.Context, needle string, limit int) ([]string, error) {
	var a args
	sql := `SELECT DISTINCT vessel_name FROM ` + Table + `
		WHERE lower(vessel_name) LIKE ` + a.add("%"+strings.ToLower(likeEscape(needle))+"%") + `
		ORDER BY vessel_name
		LIMIT ` + a.add(limit)
	return store.Strings(ctx, s.q, sql, a...)
}

// NameExact returns the stored spelling of name, matched case insensitively
func (s *sqlRepo) NameExact(ctx context.Context, name string) (string, error) {
	return store.First(ctx, s.q, func(r store.Row) (string, error) {
		var n string
		err := r.Scan(&n)
		return n, err
	}, `SELECT vessel_name FROM `+Table+` WHERE lower(vessel_name) = lower($1) LIMIT 1`, name)
}

// Summaries reports count and first and last seen per name
func (s *sqlRepo) Summaries(ctx context.Context) ([]domain.Summary, error) {
	return store.Many(ctx, s.q, func(r store.Row) (domain.Summary, error) {
		var (
			x           domain.Summary
			first, last store.Time
		)
		err := r.Scan(&x.Name, &x.MMSI, &x.Count, &first, &last)
		x.FirstSeen, x.LastSeen = first.T(), last.T()
		return x, err
	}, `SELECT vessel_name, MAX(mmsi), CAST(COUNT(*) AS BIGINT), MIN(base_date_time), MAX(base_date_time)
		FROM `+Table+`
		WHERE vessel_name IS NOT NULL AND vessel_name <> ''
		GROUP BY vessel_name
		ORDER BY vessel_name`)
}

// Latest returns the newest fix
func (s *sqlRepo) Latest(ctx context.Context, id domain.Identity) (track.Position, error) {
	var a args
	sql := `SELECT ` + selectCols + ` FROM ` + Table + `
		WHERE ` + a.identity(id) + `
		ORDER BY base_date_time DESC
		LIMIT 1`
	return store.First(ctx, s.q, scanPosition, sql, a...)
}

// AtOrBefore returns the newest fix not after end
func (s *sqlRepo) AtOrBefore(ctx context.Context, id domain.Identity, end time.Time) (track.Position, error) {
	var a args
	sql := `SELECT ` + selectCols + ` FROM ` + Table + `
		WHERE ` + a.identity(id) + ` AND base_date_time <= ` + a.add(end.UTC()) + `
		ORDER BY base_date_time DESC
		LIMIT 1`
	return store.First(ctx, s.q, scanPosition, sql, a...)
}

// Between returns fixes in the closed window, ascending
func (s *sqlRepo) Between(ctx context.Context, id domain.Identity, from, to time.Time, limit int) (track.Track, error) {
	return s.Range(ctx, domain.TrackQuery{Identity: id, From: &from, To: &to, Limit: limit})
}

// Trailing returns up to limit fixes ending at end, ascending
func (s *sqlRepo) Trailing(ctx context.Context, id domain.Identity, end time.Time, limit int) (track.Track, error) {
	var a args
	sql := `SELECT ` + selectCols + ` FROM ` + Table + `
		WHERE ` + a.identity(id) + ` AND base_date_time <= ` + a.add(end.UTC()) + `
		ORDER BY base_date_time DESC
		LIMIT ` + a.add(limit)
	rows, err := store.Many(ctx, s.q, scanPosition, sql, a...)
	if err != nil {
		return nil, err
	}
	return track.Track(rows).NewestFirst(), nil
}

// Range returns fixes inside optional bounds, ascending. Without a lower bound
// the newest limit fixes are returned
func (s *sqlRepo) Range(ctx context.Context, q domain.TrackQuery) (track.Track, error) {
	limit := q.Limit
	if limit <= 0 || limit > track.HistoryLimit {
		limit = track.HistoryLimit
	}
	var (
		a  args
		sb strings.Builder
	)
	sb.WriteString(`SELECT ` + selectCols + ` FROM ` + Table + `
		WHERE ` + a.identity(q.Identity))
	if q.From != nil {
		sb.WriteString(` AND base_date_time >= ` + a.add(q.From.UTC()))
	}
	if q.To != nil {
		sb.WriteString(` AND base_date_time <= ` + a.add(q.To.UTC()))
	}
	order := "ASC"
	if q.From == nil {
		order = "DESC"
	}
	sb.WriteString(`
		ORDER BY base_date_time ` + order + `
		LIMIT ` + a.add(limit))

	rows, err := store.Many(ctx, s.q, scanPosition, sb.String(), a...)
	if err != nil {
		return nil, err
	}
	if order == "DESC" {
		return track.Track(rows).NewestFirst(), nil
	}
	return rows, nil
}

// InsertBatch writes xs as one multi row insert
func (s *sqlRepo) InsertBatch(ctx context.Context, xs []track.Position) error {
	if len(xs) == 0 {
		return nil
	}
	var (
		a  = make(args, 0, len(xs)*len(Columns))
		sb strings.Builder
	)
	sb.WriteString(`INSERT INTO ` + Table + ` (` + strings.Join(Columns, ", ") + `) VALUES `)
	for i, p := range xs {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteByte('(')
		for j, v := range Row(p) {
			if j > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(a.add(v))
		}
		sb.WriteByte(')')
	}
	_, err := s.q.Exec(ctx, sb.String(), a...)
	return err
}

// Purge removes every row
func (s *sqlRepo) Purge(ctx context.Context) error {
	_, err := s.q.Exec(ctx, `DELETE FROM `+Table+` WHERE 1 = 1`)
	return err
}

// Row flattens p in Columns order; blank optional text is written as NULL
func Row(p track.Position) []any {
	return []any{
		p.MMSI, p.Timestamp.UTC(), p.Lat, p.Lon, p.SOG, p.COG, p.Heading,
		p.Name, str.SQLNull(p.IMO), str.SQLNull(p.CallSign), int64(p.VesselType),
	}
}

var likeReplacer = strings.NewReplacer(`%`, ``, `_`, ``)

// likeEscape drops LIKE wildcards from user text
func likeEscape(s string) string { return likeReplacer.Replace(s) }
