package errors

import (
	"context"
	stderrs "errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes the index store distinguishes
const (
	pgErrUniqueViolation           = "23505"
	pgErrForeignKeyViolation       = "23503"
	pgErrNotNullViolation          = "23502"
	pgErrCheckViolation            = "23514"
	pgErrStringDataRightTruncation = "22001"
	pgErrInvalidTextRepresentation = "22P02"
	pgErrCharacterNotInRepertoire  = "22021"
	pgErrSerializationFailure      = "40001"
	pgErrDeadlockDetected          = "40P01"
	pgErrLockNotAvailable          = "55P03"
	pgErrReadOnlySQLTransaction    = "25006"
	pgErrCannotConnectNow          = "57P03"
)

// ExtractPgError returns the *pgconn.PgError at the root of err
func ExtractPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if stderrs.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// IsDuplicateKey reports a unique constraint violation
func IsDuplicateKey(err error) bool {
	pgErr, ok := ExtractPgError(err)
	return ok && pgErr.Code == pgErrUniqueViolation
}

// DBErrorCode maps a Postgres error to an ErrorCode. ok is false when err is
// not a Postgres error
func DBErrorCode(err error) (code ErrorCode, ok bool) {
	if stderrs.Is(err, pgx.ErrNoRows) {
		return ErrorCodeNotFound, true
	}
	pgErr, ok := ExtractPgError(err)
	if !ok {
		return ErrorCodeUnknown, false
	}
	switch pgErr.Code {
	case pgErrUniqueViolation:
		return ErrorCodeDuplicateKey, true
	case pgErrForeignKeyViolation, pgErrStringDataRightTruncation,
		pgErrInvalidTextRepresentation, pgErrCharacterNotInRepertoire:
		return ErrorCodeInvalidArgument, true
	case pgErrNotNullViolation, pgErrCheckViolation:
		return ErrorCodeValidation, true
	case pgErrReadOnlySQLTransaction, pgErrCannotConnectNow:
		return ErrorCodeUnavailable, true
	}
	return ErrorCodeDB, true
}

// FromPostgres wraps err with its mapped code, ErrorCodeDB when unmapped.
// The offending column, when Postgres reports one, becomes the field
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	code, ok := DBErrorCode(err)
	if !ok {
		code = ErrorCodeDB
	}
	out := Wrap(err, code, msg)
	if pgErr, ok := ExtractPgError(err); ok && strings.TrimSpace(pgErr.ColumnName) != "" {
		out = WithField(out, pgErr.ColumnName)
	}
	return out
}

// IsRetryable reports Postgres contention worth retrying. Local cancellation
// is never retryable
func IsRetryable(err error) bool {
	if err == nil || stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}
	if pgErr, ok := ExtractPgError(err); ok {
		switch pgErr.Code {
		case pgErrSerializationFailure, pgErrDeadlockDetected, pgErrLockNotAvailable:
			return true
		}
		return false
	}
	s := strings.ToLower(Root(err).Error())
	return strings.Contains(s, "commit unexpectedly resulted in rollback") ||
		strings.Contains(s, "deadlock detected") ||
		strings.Contains(s, "could not serialize access")
}
