package errors

import (
	stderrs "errors"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// ClickHouse server exception codes the term stats store distinguishes
const (
	chErrTypeMismatch        = 53
	chErrUnknownTable        = 60
	chErrUnknownDatabase     = 81
	chErrTimeoutExceeded     = 159
	chErrTooManyQueries      = 202
	chErrMemoryLimitExceeded = 241
	chErrTooManyParts        = 252
	chErrCannotParseInput    = 27
)

// ExtractCHException returns the *clickhouse.Exception in err's chain
func ExtractCHException(err error) (*clickhouse.Exception, bool) {
	var ex *clickhouse.Exception
	if stderrs.As(err, &ex) {
		return ex, true
	}
	return nil, false
}

// CHErrorCode maps a ClickHouse exception to an ErrorCode. ok is false when
// err is not a server exception
func CHErrorCode(err error) (ErrorCode, bool) {
	ex, ok := ExtractCHException(err)
	if !ok {
		return ErrorCodeUnknown, false
	}
	switch ex.Code {
	case chErrUnknownTable:
		return ErrorCodeNotFound, true
	case chErrTypeMismatch, chErrCannotParseInput:
		return ErrorCodeInvalidArgument, true
	case chErrUnknownDatabase, chErrTimeoutExceeded, chErrTooManyQueries,
		chErrMemoryLimitExceeded, chErrTooManyParts:
		return ErrorCodeUnavailable, true
	}
	return ErrorCodeDB, true
}

// FromClickHouse wraps err with its mapped code, ErrorCodeDB when unmapped
func FromClickHouse(err error, msg string) error {
	if err == nil {
		return nil
	}
	code, ok := CHErrorCode(err)
	if !ok {
		code = ErrorCodeDB
	}
	return Wrap(err, code, msg)
}

// IsRetryableCH reports ClickHouse overload conditions worth retrying
func IsRetryableCH(err error) bool {
	ex, ok := ExtractCHException(err)
	if !ok {
		return false
	}
	switch ex.Code {
	case chErrTimeoutExceeded, chErrTooManyQueries, chErrMemoryLimitExceeded, chErrTooManyParts:
		return true
	}
	return false
}
