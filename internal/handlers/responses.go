package handlers

import (
	apperrors "finance-tracker/internal/errors"
	"finance-tracker/internal/result"

	"github.com/labstack/echo/v4"
)

// RESPONSE PATTERNS
//
// Every endpoint answers with the result envelope {success, data?, message?}.
//
// 1. respond - for anything an action returned. The status comes from the failure
//    kind: Unauthorized 401, Validation 400, NotFound 404, BusinessRule 409,
//    Unexpected 500. Successful calls use the status the handler passes in.
//
// 2. SendError - for failures detected before an action runs (bad JSON, a
//    validation tag that did not pass).

const (
	// TraceIDContextKey is the context key for storing the trace ID
	TraceIDContextKey = "trace_id"
)

// respond writes an action result with the status its outcome calls for
func respond[T any](c echo.Context, successStatus int, r result.Result[T]) error {
	if r.Success {
		return c.JSON(successStatus, r)
	}
	return c.JSON(apperrors.StatusForKind(r.Kind), r)
}

// SendError writes a failed envelope for the given code. A non-empty message replaces
// the code's default one.
func SendError(c echo.Context, code apperrors.ErrorCode, message string) error {
	if message == "" {
		message = apperrors.GetErrorMessage(code)
	}
	return c.JSON(apperrors.GetHTTPStatus(code), result.Fail[struct{}](message))
}

// sendBindError answers a body that could not be decoded
func sendBindError(c echo.Context) error {
	return SendError(c, apperrors.ValidationGeneral, "Invalid request body")
}

// getTraceID extracts the trace ID from the Echo context
func getTraceID(c echo.Context) string {
	traceID, ok := c.Get(TraceIDContextKey).(string)
	if !ok {
		return ""
	}
	return traceID
}
