package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	apperrors "finance-tracker/internal/errors"
	"finance-tracker/internal/result"

	"github.com/labstack/echo/v4"
)

// PanicRecovery turns a panicking handler into a 500 with the generic failure envelope
func PanicRecovery() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				if r == http.ErrAbortHandler {
					panic(r)
				}

				req := c.Request()
				slog.ErrorContext(req.Context(), "Panic recovered",
					"trace_id", GetTraceID(c),
					"panic", fmt.Sprint(r),
					"stack_trace", string(debug.Stack()),
					"method", req.Method,
					"path", req.URL.Path,
				)

				if c.Response().Committed {
					return
				}
				body := result.FailKind[struct{}](apperrors.KindUnexpected, apperrors.GetErrorMessage(apperrors.SystemInternalError))
				err = c.JSON(http.StatusInternalServerError, body)
			}()

			return next(c)
		}
	}
}
