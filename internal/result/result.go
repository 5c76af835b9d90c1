// Package result defines the envelope every operation returns to its caller.
package result

import apperrors "finance-tracker/internal/errors"

// Result is {success, data?, message?}. Success is the only reliable failure signal;
// Message is meant for people, not for parsing.
type Result[T any] struct {
	Success bool   `json:"success"`
	Data    *T     `json:"data,omitempty"`
	Message string `json:"message,omitempty"`

	// Kind classifies a failure for transports that need a status code. It never
	// reaches the wire.
	Kind apperrors.Kind `json:"-"`
}

// Ok wraps data in a successful result
func Ok[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: &data}
}

// OkMessage is a successful result that carries data and a confirmation message
func OkMessage[T any](data T, message string) Result[T] {
	return Result[T]{Success: true, Data: &data, Message: message}
}

// Done is a successful result without data
func Done[T any](message string) Result[T] {
	return Result[T]{Success: true, Message: message}
}

// Fail is a failed result with a human readable message
func Fail[T any](message string) Result[T] {
	return Result[T]{Success: false, Message: message}
}

// FailKind is a failed result that remembers which kind of failure produced it
func FailKind[T any](kind apperrors.Kind, message string) Result[T] {
	return Result[T]{Success: false, Message: message, Kind: kind}
}

// Unauthorized is the result of every operation invoked without a principal
func Unauthorized[T any]() Result[T] {
	return FailKind[T](apperrors.KindUnauthorized, apperrors.GetErrorMessage(apperrors.AuthUnauthorized))
}
