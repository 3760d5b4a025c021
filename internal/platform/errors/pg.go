package errors

// Postgres-specific helpers for mapping pgx errors to project ErrorCode

import (
	stderrs "errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes the contact store can produce
const (
	pgErrUniqueViolation           = "23505"
	pgErrNotNullViolation          = "23502"
	pgErrCheckViolation            = "23514"
	pgErrStringDataRightTruncation = "22001"
	pgErrInvalidTextRepresentation = "22P02"

	pgErrSerializationFailure   = "40001"
	pgErrDeadlockDetected       = "40P01"
	pgErrLockNotAvailable       = "55P03"
	pgErrReadOnlySQLTransaction = "25006"
	pgErrCannotConnectNow       = "57P03"
	pgErrAdminShutdown          = "57P01"
)

// ExtractPgError returns (*pgconn.PgError, true) if the root cause is a PgError
func ExtractPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if stderrs.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// IsNoRows reports whether err is pgx's no rows sentinel
func IsNoRows(err error) bool { return stderrs.Is(err, pgx.ErrNoRows) }

// DBErrorCode maps a Postgres error to an ErrorCode with an ok flag
// !ok means err wasn't a PgError or pgx.ErrNoRows
func DBErrorCode(err error) (ErrorCode, bool) {
	if IsNoRows(err) {
		return ErrorCodeNotFound, true
	}
	pgErr, ok := ExtractPgError(err)
	if !ok {
		return ErrorCodeUnknown, false
	}

	switch pgErr.Code {
	case pgErrUniqueViolation:
		return ErrorCodeDuplicateKey, true
	case pgErrNotNullViolation, pgErrCheckViolation:
		return ErrorCodeValidation, true
	case pgErrStringDataRightTruncation, pgErrInvalidTextRepresentation:
		return ErrorCodeInvalidArgument, true
	case pgErrSerializationFailure, pgErrDeadlockDetected, pgErrLockNotAvailable:
		return ErrorCodeDB, true
	case pgErrReadOnlySQLTransaction, pgErrCannotConnectNow, pgErrAdminShutdown:
		return ErrorCodeUnavailable, true
	}
	return ErrorCodeDB, true
}

// FromPostgres wraps a pg error with a mapped ErrorCode and message
// If err is nil, returns nil
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	if code, ok := DBErrorCode(err); ok {
		return AttachFieldFromPg(Wrap(err, code, msg))
	}
	return Wrap(err, ErrorCodeDB, msg)
}

// AttachFieldFromPg enriches an error with the PgError column name when one is reported
func AttachFieldFromPg(err error) error {
	pgErr, ok := ExtractPgError(err)
	if !ok {
		return err
	}
	if col := strings.TrimSpace(pgErr.ColumnName); col != "" {
		return WithField(err, col)
	}
	return err
}
