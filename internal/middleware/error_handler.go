package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	apperrors "finance-tracker/internal/errors"
	"finance-tracker/internal/result"
	"finance-tracker/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API errors counter metric
	apiErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_errors_total",
			Help: "Total number of API errors by endpoint and status",
		},
		[]string{"endpoint", "status"},
	)
)

// CustomHTTPErrorHandler is a custom error handler for Echo that answers with the
// result envelope and logs the failure
func CustomHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	traceID := GetTraceID(c)
	if traceID == "" {
		traceID = "unknown"
	}

	httpStatus, message := describeError(err)

	logLevel := slog.LevelWarn
	if httpStatus >= 500 {
		logLevel = slog.LevelError
	}

	slog.Log(c.Request().Context(), logLevel, "HTTP error occurred",
		"trace_id", traceID,
		"status", httpStatus,
		"message", message,
		"path", c.Request().URL.Path,
		"method", c.Request().Method,
		"error", err.Error(),
	)

	apiErrorsTotal.WithLabelValues(c.Path(), fmt.Sprintf("%d", httpStatus)).Inc()

	if sendErr := c.JSON(httpStatus, result.Fail[struct{}](message)); sendErr != nil {
		slog.Error("Failed to send error response",
			"trace_id", traceID,
			"error", sendErr.Error(),
		)
	}
}

// describeError picks the status and the public message for an error that escaped a handler
func describeError(err error) (int, string) {
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		return echoErr.Code, messageForStatus(echoErr)
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		return http.StatusBadRequest, validation.Message(validationErrs[0])
	}

	if appErr, ok := apperrors.As(err); ok {
		return appErr.HTTPStatus(), apperrors.MessageOf(appErr, apperrors.GetErrorMessage(apperrors.SystemInternalError))
	}

	return http.StatusInternalServerError, apperrors.GetErrorMessage(apperrors.SystemInternalError)
}

// messageForStatus keeps echo's own text for client errors and hides server ones
func messageForStatus(echoErr *echo.HTTPError) string {
	switch echoErr.Code {
	case http.StatusUnauthorized:
		return apperrors.GetErrorMessage(apperrors.AuthUnauthorized)
	case http.StatusTooManyRequests:
		return apperrors.GetErrorMessage(apperrors.SystemRateLimitExceeded)
	case http.StatusServiceUnavailable:
		return apperrors.GetErrorMessage(apperrors.SystemServiceUnavailable)
	}

	if echoErr.Code >= http.StatusInternalServerError {
		return apperrors.GetErrorMessage(apperrors.SystemInternalError)
	}
	if msg, ok := echoErr.Message.(string); ok && msg != "" {
		return msg
	}
	return http.StatusText(echoErr.Code)
}
