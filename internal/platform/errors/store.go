package errors

// Store error classification across the pgx, sqlite and clickhouse backends

import (
	"context"
	stderrs "errors"
	"fmt"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes we map
const (
	pgErrUniqueViolation           = "23505"
	pgErrNotNullViolation          = "23502"
	pgErrCheckViolation            = "23514"
	pgErrStringDataRightTruncation = "22001"
	pgErrInvalidTextRepresentation = "22P02"
	pgErrInvalidDatetimeFormat     = "22007"
	pgErrUndefinedTable            = "42P01"

	pgErrSerializationFailure   = "40001"
	pgErrDeadlockDetected       = "40P01"
	pgErrLockNotAvailable       = "55P03"
	pgErrReadOnlySQLTransaction = "25006"
	pgErrCannotConnectNow       = "57P03"
)

// sqlite primary result codes (modernc reports extended codes; the low byte is primary)
const (
	sqliteBusy       = 5
	sqliteLocked     = 6
	sqliteConstraint = 19
	sqliteUnique     = 2067
)

// clickhouse server exception codes
const (
	chUnknownTable        = 60
	chTimeoutExceeded     = 159
	chTooManyQueries      = 202
	chMemoryLimitExceeded = 241
)

type coder interface{ Code() int }

// ExtractPgError returns the root *pgconn.PgError, if any
func ExtractPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if stderrs.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// IsSQLState reports whether err is a Postgres error with code
func IsSQLState(err error, code string) bool {
	pgErr, ok := ExtractPgError(err)
	return ok && pgErr.Code == code
}

// IsDuplicateKey reports unique violations on any backend
func IsDuplicateKey(err error) bool {
	c, ok := StoreErrorCode(err)
	return ok && c == ErrorCodeDuplicateKey
}

// StoreErrorCode maps a backend error onto an ErrorCode.
// ok is false when err did not come from a recognised driver
func StoreErrorCode(err error) (ErrorCode, bool) {
	if pgErr, ok := ExtractPgError(err); ok {
		switch pgErr.Code {
		case pgErrUniqueViolation:
			return ErrorCodeDuplicateKey, true
		case pgErrNotNullViolation, pgErrCheckViolation:
			return ErrorCodeValidation, true
		case pgErrStringDataRightTruncation, pgErrInvalidTextRepresentation, pgErrInvalidDatetimeFormat:
			return ErrorCodeInvalidArgument, true
		case pgErrReadOnlySQLTransaction, pgErrCannotConnectNow:
			return ErrorCodeUnavailable, true
		default:
			return ErrorCodeDB, true
		}
	}

	var chErr *clickhouse.Exception
	if stderrs.As(err, &chErr) {
		switch chErr.Code {
		case chTimeoutExceeded, chTooManyQueries, chMemoryLimitExceeded:
			return ErrorCodeUnavailable, true
		default:
			return ErrorCodeDB, true
		}
	}

	var sc coder
	if stderrs.As(err, &sc) {
		code := sc.Code()
		switch {
		case code == sqliteUnique:
			return ErrorCodeDuplicateKey, true
		case code&0xff == sqliteConstraint:
			return ErrorCodeValidation, true
		case code&0xff == sqliteBusy, code&0xff == sqliteLocked:
			return ErrorCodeUnavailable, true
		default:
			return ErrorCodeDB, true
		}
	}
	return ErrorCodeUnknown, false
}

// FromStore wraps a driver error with its mapped code; nil stays nil.
// Context cancellation maps to Unavailable
func FromStore(err error, msg string) error {
	if err == nil {
		return nil
	}
	if stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return Wrap(err, ErrorCodeUnavailable, msg)
	}
	if code, ok := StoreErrorCode(err); ok {
		return Wrap(err, code, msg)
	}
	return Wrap(err, ErrorCodeDB, msg)
}

// FromStoref is the formatted variant of FromStore
func FromStoref(err error, format string, a ...any) error {
	return FromStore(err, fmt.Sprintf(format, a...))
}

// IsMissingTable reports whether the query hit a table that does not exist yet
func IsMissingTable(err error) bool {
	if err == nil {
		return false
	}
	if IsSQLState(err, pgErrUndefinedTable) {
		return true
	}
	var chErr *clickhouse.Exception
	if stderrs.As(err, &chErr) && chErr.Code == chUnknownTable {
		return true
	}
	return strings.Contains(strings.ToLower(Root(err).Error()), "no such table")
}

// Retryable reports whether err is transient contention worth retrying.
// Local cancellations are never retryable
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	if stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}

	if pgErr, ok := ExtractPgError(err); ok {
		switch pgErr.Code {
		case pgErrSerializationFailure, pgErrDeadlockDetected, pgErrLockNotAvailable, pgErrCannotConnectNow:
			return true
		}
		return false
	}
	var chErr *clickhouse.Exception
	if stderrs.As(err, &chErr) {
		return chErr.Code == chTooManyQueries || chErr.Code == chTimeoutExceeded
	}
	var sc coder
	if stderrs.As(err, &sc) {
		c := sc.Code() & 0xff
		return c == sqliteBusy || c == sqliteLocked
	}

	s := strings.ToLower(Root(err).Error())
	switch {
	case strings.Contains(s, "commit unexpectedly resulted in rollback"),
		strings.Contains(s, "deadlock detected"),
		strings.Contains(s, "could not serialize access"),
		strings.Contains(s, "database is locked"),
		strings.Contains(s, "connection reset by peer"),
		strings.Contains(s, "terminating connection due to administrator command"):
		return true
	default:
		return false
	}
}
