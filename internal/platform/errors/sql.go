package errors

// Helpers mapping postgres (pgx) and sqlite (modernc) driver errors onto ErrorCode

import (
	"context"
	stderrs "errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLSTATE codes we map
const (
	pgErrUniqueViolation           = "23505"
	pgErrForeignKeyViolation       = "23503"
	pgErrNotNullViolation          = "23502"
	pgErrCheckViolation            = "23514"
	pgErrStringDataRightTruncation = "22001"
	pgErrInvalidTextRepresentation = "22P02"

	pgErrSerializationFailure   = "40001"
	pgErrDeadlockDetected       = "40P01"
	pgErrLockNotAvailable       = "55P03"
	pgErrReadOnlySQLTransaction = "25006"
	pgErrCannotConnectNow       = "57P03"
	pgErrUndefinedTable         = "42P01"
)

// ExtractPgError returns the PgError at the root of err, if any
func ExtractPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if stderrs.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// IsSQLState reports whether err is a Postgres error with the given SQLSTATE
func IsSQLState(err error, code string) bool {
	pgErr, ok := ExtractPgError(err)
	return ok && pgErr.Code == code
}

func extractLiteError(err error) (*sqlite.Error, bool) {
	var le *sqlite.Error
	if stderrs.As(err, &le) {
		return le, true
	}
	return nil, false
}

// liteConstraint reports whether err is a sqlite constraint failure of the given extended kind
// older drivers only surface the primary code, so the message is checked too
func liteConstraint(err error, extended int, text string) bool {
	le, ok := extractLiteError(err)
	if !ok || le.Code()&0xff != sqlite3.SQLITE_CONSTRAINT {
		return false
	}
	return le.Code() == extended || strings.Contains(le.Error(), text)
}

// IsDuplicateKey reports a unique or primary key violation on either backend
func IsDuplicateKey(err error) bool {
	return IsSQLState(err, pgErrUniqueViolation) ||
		liteConstraint(err, sqlite3.SQLITE_CONSTRAINT_UNIQUE, "UNIQUE constraint failed") ||
		liteConstraint(err, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, "UNIQUE constraint failed")
}

// IsForeignKeyViolation reports a foreign key violation on either backend
func IsForeignKeyViolation(err error) bool {
	return IsSQLState(err, pgErrForeignKeyViolation) ||
		liteConstraint(err, sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY, "FOREIGN KEY constraint failed")
}

// IsUndefinedTable reports a missing relation, usually a schema that was never migrated
// DBErrorCode treats it as Unavailable
func IsUndefinedTable(err error) bool {
	if IsSQLState(err, pgErrUndefinedTable) {
		return true
	}
	le, ok := extractLiteError(err)
	return ok && strings.Contains(le.Error(), "no such table")
}

// DBErrorCode maps a driver error to an ErrorCode
// !ok means err came from neither driver
func DBErrorCode(err error) (ErrorCode, bool) {
	if pgErr, ok := ExtractPgError(err); ok {
		switch pgErr.Code {
		case pgErrUniqueViolation:
			return ErrorCodeDuplicateKey, true
		case pgErrForeignKeyViolation, pgErrStringDataRightTruncation, pgErrInvalidTextRepresentation:
			return ErrorCodeInvalidArgument, true
		case pgErrNotNullViolation, pgErrCheckViolation:
			return ErrorCodeValidation, true
		case pgErrReadOnlySQLTransaction, pgErrCannotConnectNow, pgErrUndefinedTable:
			return ErrorCodeUnavailable, true
		}
		return ErrorCodeDB, true
	}

	if le, ok := extractLiteError(err); ok {
		switch {
		case IsDuplicateKey(err):
			return ErrorCodeDuplicateKey, true
		case IsForeignKeyViolation(err):
			return ErrorCodeInvalidArgument, true
		case le.Code()&0xff == sqlite3.SQLITE_CONSTRAINT:
			return ErrorCodeValidation, true
		case le.Code()&0xff == sqlite3.SQLITE_BUSY, le.Code()&0xff == sqlite3.SQLITE_LOCKED, IsUndefinedTable(err):
			return ErrorCodeUnavailable, true
		}
		return ErrorCodeDB, true
	}
	return ErrorCodeUnknown, false
}

// FromDB wraps a driver error with its mapped ErrorCode and message
// nil stays nil; errors that are already ours keep their code
func FromDB(err error, msg string) error {
	if err == nil {
		return nil
	}
	if _, ours := As(err); ours {
		return err
	}
	if code, ok := DBErrorCode(err); ok {
		return Wrap(err, code, msg)
	}
	if stderrs.Is(err, context.DeadlineExceeded) {
		return Wrap(err, ErrorCodeTimeout, msg)
	}
	return Wrap(err, ErrorCodeDB, msg)
}

// FromDBf is the formatted variant of FromDB
func FromDBf(err error, format string, a ...any) error {
	return FromDB(err, fmt.Sprintf(format, a...))
}

// IsRetryable reports whether a database error is transient contention worth retrying
// local cancellations are never retryable
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}

	if pgErr, ok := ExtractPgError(err); ok {
		switch pgErr.Code {
		case pgErrSerializationFailure, pgErrDeadlockDetected, pgErrLockNotAvailable:
			return true
		}
		return false
	}
	if le, ok := extractLiteError(err); ok {
		primary := le.Code() & 0xff
		return primary == sqlite3.SQLITE_BUSY || primary == sqlite3.SQLITE_LOCKED
	}

	s := strings.ToLower(Root(err).Error())
	return strings.Contains(s, "commit unexpectedly resulted in rollback") ||
		strings.Contains(s, "could not serialize access") ||
		strings.Contains(s, "deadlock detected")
}
