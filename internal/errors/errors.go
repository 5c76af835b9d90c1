package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure for callers that only care about the category
type Kind int

const (
	KindUnexpected Kind = iota
	KindUnauthorized
	KindValidation
	KindNotFound
	KindBusinessRule
)

func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindBusinessRule:
		return "business_rule"
	default:
		return "unexpected"
	}
}

// Error is a domain failure carrying a code and a message that is safe to show to users
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

// ErrorOption is a functional option for configuring an Error
type ErrorOption func(*Error)

// WithMessage overrides the default message for the error code
func WithMessage(message string) ErrorOption {
	return func(e *Error) {
		e.Message = message
	}
}

// WithCause attaches the underlying error for logging and errors.Is checks
func WithCause(err error) ErrorOption {
	return func(e *Error) {
		e.Err = err
	}
}

// New creates an Error for the given code
func New(code ErrorCode, opts ...ErrorOption) *Error {
	e := &Error{
		Code:    code,
		Message: GetErrorMessage(code),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Kind returns the failure kind of the error code
func (e *Error) Kind() Kind {
	return KindForCode(e.Code)
}

// HTTPStatus returns the HTTP status for the error code
func (e *Error) HTTPStatus() int {
	return GetHTTPStatus(e.Code)
}

// As extracts an *Error from an error chain
func As(err error) (*Error, bool) {
	var e *Error
	if stderrors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf returns the kind of err, KindUnexpected for anything that is not an *Error
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind()
	}
	return KindUnexpected
}

// HasCode reports whether err carries the given code
func HasCode(err error, code ErrorCode) bool {
	e, ok := As(err)
	return ok && e.Code == code
}

// MessageOf returns the user-facing message of err, or fallback when err is not an expected failure
func MessageOf(err error, fallback string) string {
	e, ok := As(err)
	if !ok || e.Kind() == KindUnexpected {
		return fallback
	}
	return e.Message
}

// StatusForKind maps a failure kind to the HTTP status used in responses
func StatusForKind(kind Kind) int {
	switch kind {
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindBusinessRule:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// GetHTTPStatus returns the appropriate HTTP status code for the error code
func GetHTTPStatus(code ErrorCode) int {
	switch code {
	// 429 Too Many Requests - Rate limiting
	case SystemRateLimitExceeded:
		return http.StatusTooManyRequests

	// 503 Service Unavailable - Service temporarily unavailable
	case SystemServiceUnavailable:
		return http.StatusServiceUnavailable

	default:
		return StatusForKind(KindForCode(code))
	}
}
