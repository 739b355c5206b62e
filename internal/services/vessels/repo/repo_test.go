package repo

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"vesselq/internal/core/track"
	perr "vesselq/internal/platform/errors"
	"vesselq/internal/platform/store"
	kit "vesselq/internal/platform/testkit"
	"vesselq/internal/services/vessels/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMock(t *testing.T) (Storage, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Error(err)
		}
		_ = db.Close()
	})
	return New().Bind(store.NewSQLite(db)), mock
}

func q(s string) string { return regexp.QuoteMeta(s) }

func positionRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"mmsi", "base_date_time", "lat", "lon", "sog", "cog", "heading",
		"vessel_name", "imo", "call_sign", "vessel_type",
	})
}

func addFix(r *sqlmock.Rows, at string, lat, lon float64) *sqlmock.Rows {
	return r.AddRow(int64(367000001), at, lat, lon, 10.5, 90.0, 88.0, "LAVACA", "IMO9000001", "WDA1234", int64(70))
}

func TestNamesByPrefix_LowersAndStripsWildcards(t *testing.T) {
	s, mock := newMock(t)
	mock.ExpectQuery(q("WHERE lower(vessel_name) LIKE ?1") + `[\s\S]*` + q("LIMIT ?2")).
		WithArgs("la%", 5).
		WillReturnRows(sqlmock.NewRows([]string{"vessel_name"}).AddRow("LAVACA").AddRow("LAKER"))

	got, err := s.NamesByPrefix(context.Background(), "L%a_", 5)
	if err != nil {
		t.Fatal(err)
	}
	kit.MustEqual(t, got, []string{"LAVACA", "LAKER"})
}

func TestNamesLike(t *testing.T) {
	s, mock := newMock(t)
	mock.ExpectQuery(q("LIKE ?1")).
		WithArgs("%vac%", 3).
		WillReturnRows(sqlmock.NewRows([]string{"vessel_name"}).AddRow("LAVACA"))

	got, err := s.NamesLike(context.Background(), "VAC", 3)
	if err != nil {
		t.Fatal(err)
	}
	kit.MustEqual(t, got, []string{"LAVACA"})
}

func TestNameExact(t *testing.T) {
	s, mock := newMock(t)
	mock.ExpectQuery(q("WHERE lower(vessel_name) = lower(?1) LIMIT 1")).
		WithArgs("lavaca").
		WillReturnRows(sqlmock.NewRows([]string{"vessel_name"}).AddRow("LAVACA"))
	mock.ExpectQuery(q("WHERE lower(vessel_name) = lower(?1)")).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"vessel_name"}))

	got, err := s.NameExact(context.Background(), "lavaca")
	if err != nil || got != "LAVACA" {
		t.Fatalf("NameExact = %q, %v", got, err)
	}
	if _, err := s.NameExact(context.Background(), "ghost"); !errors.Is(err, perr.ErrNotFound) {
		t.Fatalf("missing name err = %v", err)
	}
}

func TestLatest_ByMMSI(t *testing.T) {
	s, mock := newMock(t)
	mock.ExpectQuery(q("WHERE mmsi = ?1") + `[\s\S]*` + q("ORDER BY base_date_time DESC")).
		WithArgs(int64(367000001)).
		WillReturnRows(addFix(positionRows(), "2024-03-05 18:25:00", 29.5, -94.8))

	p, err := s.Latest(context.Background(), domain.Identity{MMSI: 367000001, Name: "ignored"})
	if err != nil {
		t.Fatal(err)
	}
	want := track.Position{
		MMSI: 367000001, Name: "LAVACA",
		Timestamp: time.Date(2024, 3, 5, 18, 25, 0, 0, time.UTC),
		Lat:       29.5, Lon: -94.8, SOG: 10.5, COG: 90, Heading: 88,
		VesselType: 70, IMO: "IMO9000001", CallSign: "WDA1234",
	}
	kit.MustEqual(t, p, want)
}

func TestAtOrBefore_ByName(t *testing.T) {
	s, mock := newMock(t)
	end := time.Date(2024, 3, 5, 19, 0, 0, 0, time.UTC)
	mock.ExpectQuery(q("WHERE vessel_name = ?1 AND base_date_time <= ?2")).
		WithArgs("LAVACA", "2024-03-05 19:00:00").
		WillReturnRows(positionRows())

	_, err := s.AtOrBefore(context.Background(), domain.Identity{Name: "LAVACA"}, end)
	if !errors.Is(err, perr.ErrNotFound) {
		t.Fatalf("err = %v", err)
	}
}

func TestTrailing_ReturnsAscending(t *testing.T) {
	s, mock := newMock(t)
	end := time.Date(2024, 3, 5, 19, 0, 0, 0, time.UTC)
	rows := positionRows()
	addFix(rows, "2024-03-05 18:50:00", 3, 3)
	addFix(rows, "2024-03-05 18:40:00", 2, 2)
	addFix(rows, "2024-03-05 18:30:00", 1, 1)
	mock.ExpectQuery(q("ORDER BY base_date_time DESC") + `[\s\S]*` + q("LIMIT ?3")).
		WithArgs("LAVACA", "2024-03-05 19:00:00", 10).
		WillReturnRows(rows)

	tr, err := s.Trailing(context.Background(), domain.Identity{Name: "LAVACA"}, end, 10)
	if err != nil {
		t.Fatal(err)
	}
	if tr.Len() != 3 || tr[0].Lat != 1 || tr[2].Lat != 3 || !tr.Valid() {
		t.Fatalf("track = %+v", tr)
	}
}

func TestRange(t *testing.T) {
	from := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)

	cases := []struct {
		name  string
		query domain.TrackQuery
		sql   string
		args  []driver.Value
		desc  bool
	}{
		{
			name:  "bounded",
			query: domain.TrackQuery{Identity: domain.Identity{Name: "LAVACA"}, From: &from, To: &to, Limit: 50},
			sql:   q("base_date_time >= ?2 AND base_date_time <= ?3") + `[\s\S]*` + q("ASC"),
			args:  []driver.Value{"LAVACA", "2024-03-05 00:00:00", "2024-03-06 00:00:00", 50},
		},
		{
			name:  "newest when open below",
			query: domain.TrackQuery{Identity: domain.Identity{MMSI: 367000001}, To: &to},
			sql:   q("mmsi = ?1 AND base_date_time <= ?2") + `[\s\S]*` + q("DESC"),
			args:  []driver.Value{int64(367000001), "2024-03-06 00:00:00", track.HistoryLimit},
			desc:  true,
		},
		{
			name:  "limit capped",
			query: domain.TrackQuery{Identity: domain.Identity{Name: "LAVACA"}, Limit: 5000},
			sql:   q("WHERE vessel_name = ?1") + `[\s\S]*` + q("LIMIT ?2"),
			args:  []driver.Value{"LAVACA", track.HistoryLimit},
			desc:  true,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s, mock := newMock(t)
			rows := positionRows()
			if c.desc {
				addFix(rows, "2024-03-05 12:00:00", 2, 2)
				addFix(rows, "2024-03-05 11:00:00", 1, 1)
			} else {
				addFix(rows, "2024-03-05 11:00:00", 1, 1)
				addFix(rows, "2024-03-05 12:00:00", 2, 2)
			}
			mock.ExpectQuery(c.sql).WithArgs(c.args...).WillReturnRows(rows)

			tr, err := s.Range(context.Background(), c.query)
			if err != nil {
				t.Fatal(err)
			}
			if tr.Len() != 2 || tr[0].Lat != 1 {
				t.Fatalf("track = %+v", tr)
			}
		})
	}
}

func TestSummaries(t *testing.T) {
	s, mock := newMock(t)
	mock.ExpectQuery(q("GROUP BY vessel_name")).
		WillReturnRows(sqlmock.NewRows([]string{"vessel_name", "mmsi", "n", "first", "last"}).
			AddRow("LAVACA", int64(367000001), int64(42), "2024-03-05 00:00:00", "2024-03-05 23:59:00"))

	got, err := s.Summaries(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	kit.MustEqual(t, got, []domain.Summary{{
		Name: "LAVACA", MMSI: 367000001, Count: 42,
		FirstSeen: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		LastSeen:  time.Date(2024, 3, 5, 23, 59, 0, 0, time.UTC),
	}})
}

func TestInsertBatch(t *testing.T) {
	s, mock := newMock(t)
	at := time.Date(2024, 3, 5, 18, 25, 0, 0, time.UTC)
	xs := []track.Position{
		{MMSI: 1, Name: "A", Timestamp: at, Lat: 1, Lon: 2, VesselType: 30, IMO: "IMO1"},
		{MMSI: 2, Name: "B", Timestamp: at, Lat: 3, Lon: 4, CallSign: " "},
	}
	mock.ExpectExec(q("INSERT INTO vessel_positions (mmsi, base_date_time") + `[\s\S]*` + q("(?1,?2,?3,?4,?5,?6,?7,?8,?9,?10,?11),(?12,")).
		WithArgs(
			int64(1), "2024-03-05 18:25:00", 1.0, 2.0, 0.0, 0.0, 0.0, "A", "IMO1", nil, int64(30),
			int64(2), "2024-03-05 18:25:00", 3.0, 4.0, 0.0, 0.0, 0.0, "B", nil, nil, int64(0),
		).
		WillReturnResult(sqlmock.NewResult(0, 2))

	if err := s.InsertBatch(context.Background(), xs); err != nil {
		t.Fatal(err)
	}
	if err := s.InsertBatch(context.Background(), nil); err != nil {
		t.Fatalf("empty batch: %v", err)
	}
}

func TestPurge(t *testing.T) {
	s, mock := newMock(t)
	mock.ExpectExec(q("DELETE FROM vessel_positions WHERE 1 = 1")).WillReturnResult(sqlmock.NewResult(0, 9))
	if err := s.Purge(context.Background()); err != nil {
		t.Fatal(err)
	}
}

func TestSchema(t *testing.T) {
	for _, d := range []store.Driver{store.DriverPG, store.DriverSQLite, store.DriverClickhouse} {
		stmts, err := Schema(d)
		if err != nil || len(stmts) == 0 {
			t.Fatalf("Schema(%s) = %d, %v", d, len(stmts), err)
		}
		kit.MustContain(t, stmts[0], "CREATE TABLE IF NOT EXISTS vessel_positions")
		stmts[0] = ""
		if again, _ := Schema(d); again[0] == "" {
			t.Fatalf("Schema(%s) leaked its backing slice", d)
		}
	}
	if _, err := Schema("oracle"); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("unknown driver err = %v", err)
	}
}

func TestApplySchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(q("CREATE TABLE IF NOT EXISTS vessel_positions")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(q("CREATE INDEX IF NOT EXISTS vessel_positions_name_time")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(q("CREATE INDEX IF NOT EXISTS vessel_positions_mmsi_time")).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err = ApplySchema(context.Background(), store.NewSQLite(db), store.DriverSQLite)
	if !perr.IsCode(err, perr.ErrorCodeDB) {
		t.Fatalf("err = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestRow_NullsBlankText(t *testing.T) {
	r := Row(track.Position{MMSI: 9, IMO: "", CallSign: "K1", VesselType: 52})
	if len(r) != len(Columns) {
		t.Fatalf("row width = %d", len(r))
	}
	if r[8] != nil || r[9] != "K1" || r[10] != int64(52) {
		t.Fatalf("row = %v", r)
	}
}
