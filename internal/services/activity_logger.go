package services

import (
	"context"
	"log/slog"
	"time"

	"finance-tracker/internal/session"

	"github.com/google/uuid"
)

type ActivityLogger struct {
	logger *slog.Logger
}

func NewActivityLogger(logger *slog.Logger) ActivityLoggerInterface {
	return &ActivityLogger{
		logger: logger,
	}
}

func (al *ActivityLogger) LogAccountCreated(ctx context.Context, userID, accountID uuid.UUID, accountType string) {
	al.info(ctx, "account created", "account_created",
		slog.String("user_id", userID.String()),
		slog.String("account_id", accountID.String()),
		slog.String("account_type", accountType),
	)
}

func (al *ActivityLogger) LogAccountUpdated(ctx context.Context, userID, accountID uuid.UUID) {
	al.info(ctx, "account updated", "account_updated",
		slog.String("user_id", userID.String()),
		slog.String("account_id", accountID.String()),
	)
}

func (al *ActivityLogger) LogAccountDeleted(ctx context.Context, userID, accountID uuid.UUID) {
	al.info(ctx, "account deleted", "account_deleted",
		slog.String("user_id", userID.String()),
		slog.String("account_id", accountID.String()),
	)
}

func (al *ActivityLogger) LogCategoryCreated(ctx context.Context, userID, categoryID uuid.UUID, name string) {
	al.info(ctx, "category created", "category_created",
		slog.String("user_id", userID.String()),
		slog.String("category_id", categoryID.String()),
		slog.String("name", name),
	)
}

func (al *ActivityLogger) LogCategoryDeleted(ctx context.Context, userID, categoryID uuid.UUID) {
	al.info(ctx, "category deleted", "category_deleted",
		slog.String("user_id", userID.String()),
		slog.String("category_id", categoryID.String()),
	)
}

func (al *ActivityLogger) LogTransactionCreated(ctx context.Context, userID, transactionID uuid.UUID, amount, transactionType string) {
	al.info(ctx, "transaction created", "transaction_created",
		slog.String("user_id", userID.String()),
		slog.String("transaction_id", transactionID.String()),
		slog.String("amount", amount),
		slog.String("transaction_type", transactionType),
	)
}

func (al *ActivityLogger) LogTransactionDeleted(ctx context.Context, userID, transactionID uuid.UUID) {
	al.info(ctx, "transaction deleted", "transaction_deleted",
		slog.String("user_id", userID.String()),
		slog.String("transaction_id", transactionID.String()),
	)
}

func (al *ActivityLogger) LogDefaultCreditSet(ctx context.Context, userID uuid.UUID, balance string) {
	al.info(ctx, "default credit set", "default_credit_set",
		slog.String("user_id", userID.String()),
		slog.String("balance", balance),
	)
}

func (al *ActivityLogger) LogDefaultsInitialized(ctx context.Context, userID uuid.UUID, categoriesCreated int, accountCreated bool) {
	al.info(ctx, "user defaults initialized", "defaults_initialized",
		slog.String("user_id", userID.String()),
		slog.Int("categories_created", categoriesCreated),
		slog.Bool("account_created", accountCreated),
	)
}

func (al *ActivityLogger) LogAuthEvent(ctx context.Context, event string, userID uuid.UUID, email string) {
	al.info(ctx, "authentication event", event,
		slog.String("user_id", userID.String()),
		slog.String("email", email),
	)
}

func (al *ActivityLogger) LogBusinessRuleViolation(ctx context.Context, operation string, userID uuid.UUID, reason string) {
	al.logger.WarnContext(ctx, "business rule violation",
		slog.String("event_type", "business_rule_violation"),
		slog.String("operation", operation),
		slog.String("user_id", userID.String()),
		slog.String("reason", reason),
		slog.Time("timestamp", time.Now()),
		slog.String("correlation_id", session.TraceIDFromContext(ctx)),
	)
}

func (al *ActivityLogger) info(ctx context.Context, msg, eventType string, attrs ...slog.Attr) {
	attrs = append(attrs,
		slog.String("event_type", eventType),
		slog.Time("timestamp", time.Now()),
		slog.String("correlation_id", session.TraceIDFromContext(ctx)),
	)
	al.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}
