package handlers

import (
	"context"

	"finance-tracker/internal/session"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// requestContext returns the request context carrying the principal. RequireAuth
// already put it there; the echo value is a fallback for handlers mounted without it.
func requestContext(c echo.Context) context.Context {
	ctx := c.Request().Context()
	if _, ok := session.UserIDFromContext(ctx); ok {
		return ctx
	}

	if userID, ok := c.Get("user_id").(uuid.UUID); ok {
		ctx = session.WithUserID(ctx, userID)
	}
	if traceID := getTraceID(c); traceID != "" && session.TraceIDFromContext(ctx) == "" {
		ctx = session.WithTraceID(ctx, traceID)
	}
	return ctx
}
