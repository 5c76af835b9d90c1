// Package actions is the operation boundary. Every method resolves the caller from
// the context, runs one service operation, and folds the outcome into a result envelope.
package actions

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	apperrors "finance-tracker/internal/errors"
	"finance-tracker/internal/result"
	"finance-tracker/internal/services"
	"finance-tracker/internal/session"

	"github.com/google/uuid"
)

const somethingWentWrong = "Something went wrong!"

// Actions exposes the logical operations of the finance tracker
type Actions struct {
	accounts     services.AccountServiceInterface
	categories   services.CategoryServiceInterface
	transactions services.TransactionServiceInterface
	users        services.UserServiceInterface
	dashboard    services.DashboardServiceInterface
	metrics      services.MetricsRecorderInterface
	logger       *slog.Logger
}

// New creates the action layer over the given services
func New(
	accounts services.AccountServiceInterface,
	categories services.CategoryServiceInterface,
	transactions services.TransactionServiceInterface,
	users services.UserServiceInterface,
	dashboard services.DashboardServiceInterface,
	metrics services.MetricsRecorderInterface,
	logger *slog.Logger,
) *Actions {
	if logger == nil {
		logger = slog.Default()
	}
	return &Actions{
		accounts:     accounts,
		categories:   categories,
		transactions: transactions,
		users:        users,
		dashboard:    dashboard,
		metrics:      metrics,
		logger:       logger,
	}
}

// outcome is what an operation body hands back to run
type outcome[T any] struct {
	data    T
	hasData bool
	message string
}

func withData[T any](data T, message string) outcome[T] {
	return outcome[T]{data: data, hasData: true, message: message}
}

func withMessage[T any](message string) outcome[T] {
	return outcome[T]{message: message}
}

// run resolves the principal, times the operation and converts errors and panics
// into failed results. Expected failures keep their message; anything else gets fallback.
func run[T any](
	ctx context.Context,
	a *Actions,
	operation string,
	fallback string,
	body func(userID uuid.UUID) (outcome[T], error),
) (res result.Result[T]) {
	userID, ok := session.UserIDFromContext(ctx)
	if !ok {
		return result.Unauthorized[T]()
	}

	start := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			a.logger.ErrorContext(ctx, "operation panicked",
				"operation", operation,
				"user_id", userID,
				"trace_id", session.TraceIDFromContext(ctx),
				"panic", fmt.Sprint(rec),
			)
			res = result.FailKind[T](apperrors.KindUnexpected, fallback)
		}
		a.metrics.RecordProcessingTime(operation, time.Since(start))
	}()

	out, err := body(userID)
	if err != nil {
		kind := apperrors.KindOf(err)
		if kind == apperrors.KindUnexpected {
			a.logger.ErrorContext(ctx, "operation failed",
				"operation", operation,
				"user_id", userID,
				"trace_id", session.TraceIDFromContext(ctx),
				"error", err,
			)
		}
		return result.FailKind[T](kind, apperrors.MessageOf(err, fallback))
	}

	if !out.hasData {
		return result.Done[T](out.message)
	}
	if out.message == "" {
		return result.Ok(out.data)
	}
	return result.OkMessage(out.data, out.message)
}

// parseID turns a caller-supplied id into a uuid. An id that does not parse cannot
// name a row the caller owns, so it is reported with the not-found code.
func parseID(raw string, notFound apperrors.ErrorCode) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, apperrors.New(notFound)
	}
	return id, nil
}
