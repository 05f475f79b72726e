// Package errors provides a structured error type carrying a machine code,
// an optional field and an optional operation label.
//
// Always import it as perr
package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies an error for callers and for the wire. Values are
// stable; append only
type ErrorCode uint16

const (
	// ErrorCodeUnknown is for unclassified errors
	ErrorCodeUnknown ErrorCode = iota
	// ErrorCodePanic is for panics recovered by middleware
	ErrorCodePanic
	// ErrorCodeUnavailable is for transient failures of a dependency
	ErrorCodeUnavailable
	// ErrorCodeConflict is for state conflicts
	ErrorCodeConflict
	// ErrorCodeInvalidArgument is for well formed input with bad values
	ErrorCodeInvalidArgument
	// ErrorCodeValidation is for input failing declared constraints
	ErrorCodeValidation
	// ErrorCodeJSON is for undecodable request bodies
	ErrorCodeJSON
	// ErrorCodeNotFound is for missing resources
	ErrorCodeNotFound
	// ErrorCodeDuplicateKey is for unique constraint violations
	ErrorCodeDuplicateKey
	// ErrorCodeDB is for other storage failures
	ErrorCodeDB
)

var codeInfo = [...]struct {
	name   string
	status int
}{
	ErrorCodeUnknown:         {"unknown", http.StatusInternalServerError},
	ErrorCodePanic:           {"panic", http.StatusInternalServerError},
	ErrorCodeUnavailable:     {"unavailable", http.StatusServiceUnavailable},
	ErrorCodeConflict:        {"conflict", http.StatusConflict},
	ErrorCodeInvalidArgument: {"invalid_argument", http.StatusUnprocessableEntity},
	ErrorCodeValidation:      {"validation", http.StatusBadRequest},
	ErrorCodeJSON:            {"json", http.StatusBadRequest},
	ErrorCodeNotFound:        {"not_found", http.StatusNotFound},
	ErrorCodeDuplicateKey:    {"duplicate_key", http.StatusConflict},
	ErrorCodeDB:              {"db", http.StatusInternalServerError},
}

func (c ErrorCode) String() string {
	if int(c) < len(codeInfo) {
		return codeInfo[c].name
	}
	return codeInfo[ErrorCodeUnknown].name
}

// HTTPStatusCode maps an ErrorCode to an HTTP status
func HTTPStatusCode(c ErrorCode) int {
	if int(c) < len(codeInfo) {
		return codeInfo[c].status
	}
	return http.StatusInternalServerError
}

// ErrNotFound is a sentinel not found error
var ErrNotFound = New(ErrorCodeNotFound, "not found")

// Error is the structured error. msg is developer facing, code machine facing
type Error struct {
	orig  error
	msg   string
	code  ErrorCode
	field string
	op    string
}

// Wire is the JSON form returned by the API
type Wire struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := e.msg
	if e.op != "" {
		msg = e.op + ": " + msg
	}
	if e.orig != nil {
		return msg + ": " + e.orig.Error()
	}
	return msg
}

// Unwrap returns the wrapped cause
func (e *Error) Unwrap() error { return e.orig }

// Code returns the error code
func (e *Error) Code() ErrorCode { return e.code }

// Field returns the offending input field, if any
func (e *Error) Field() string { return e.field }

// Op returns the operation label, if any
func (e *Error) Op() string { return e.op }

// ToWire converts e to its wire payload
func (e *Error) ToWire() Wire { return Wire{Code: e.code, Message: e.msg, Field: e.field} }

// WireFrom converts any error to a wire payload. Foreign errors become
// ErrorCodeUnknown with their message
func WireFrom(err error) Wire {
	if err == nil {
		return Wire{}
	}
	if e, ok := As(err); ok {
		return e.ToWire()
	}
	return Wire{Code: ErrorCodeUnknown, Message: err.Error()}
}

// HTTP returns status and wire payload for err
func HTTP(err error) (int, Wire) {
	if err == nil {
		return http.StatusOK, Wire{}
	}
	return HTTPStatus(err), WireFrom(err)
}

// Root returns the innermost wrapped cause
func Root(err error) error {
	for err != nil {
		next := stderrs.Unwrap(err)
		if next == nil {
			break
		}
		err = next
	}
	return err
}

// As returns the outermost *Error in err's chain
func As(err error) (*Error, bool) {
	var e *Error
	if stderrs.As(err, &e) {
		return e, true
	}
	return nil, false
}

// CodeOf returns err's code, ErrorCodeUnknown for foreign errors
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// IsCode reports whether err carries code
func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// HTTPStatus returns the HTTP status for err
func HTTPStatus(err error) int { return HTTPStatusCode(CodeOf(err)) }

func mutate(err error, fn func(*Error)) error {
	e, ok := As(err)
	if !ok {
		return err
	}
	c := *e
	fn(&c)
	return &c
}

// WithField returns a copy of err naming the offending field. Foreign errors
// are returned unchanged
func WithField(err error, field string) error {
	return mutate(err, func(e *Error) { e.field = field })
}

// WithOp returns a copy of err labelled with op
func WithOp(err error, op string) error {
	return mutate(err, func(e *Error) { e.op = op })
}

// New returns an *Error with code and msg
func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

// Newf is New with formatting
func Newf(code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...)}
}

// Wrap returns an *Error with code and msg wrapping orig
func Wrap(orig error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, orig: orig}
}

// Wrapf is Wrap with formatting
func Wrapf(orig error, code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...), orig: orig}
}

// WrapIf wraps only a non-nil err
func WrapIf(err error, code ErrorCode, msg string) error {
	if err == nil {
		return nil
	}
	return Wrap(err, code, msg)
}

// NotFoundf returns a not found error
func NotFoundf(format string, a ...any) error { return Newf(ErrorCodeNotFound, format, a...) }

// InvalidArgf returns an invalid argument error
func InvalidArgf(format string, a ...any) error { return Newf(ErrorCodeInvalidArgument, format, a...) }

// Validationf returns a validation error
func Validationf(format string, a ...any) error { return Newf(ErrorCodeValidation, format, a...) }

// JSONErrf returns a JSON decoding error
func JSONErrf(format string, a ...any) error { return Newf(ErrorCodeJSON, format, a...) }

// PanicErrf returns a recovered panic error
func PanicErrf(format string, a ...any) error { return Newf(ErrorCodePanic, format, a...) }

// Unavailablef returns an unavailable error
func Unavailablef(format string, a ...any) error { return Newf(ErrorCodeUnavailable, format, a...) }

// Internalf returns an unclassified error
func Internalf(format string, a ...any) error { return Newf(ErrorCodeUnknown, format, a...) }

// Retryable reports whether err is a transient storage failure worth retrying
func Retryable(err error) bool { return IsRetryable(err) || IsRetryableCH(err) }
