package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"finance-tracker/internal/config"
	apperrors "finance-tracker/internal/errors"
	"finance-tracker/internal/events"
	"finance-tracker/internal/models"
	"finance-tracker/internal/repositories"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type transactionService struct {
	transactionRepo repositories.TransactionRepositoryInterface
	accountRepo     repositories.AccountRepositoryInterface
	categoryRepo    repositories.CategoryRepositoryInterface
	publisher       events.Publisher
	metrics         MetricsRecorderInterface
	activity        ActivityLoggerInterface
	appConfig       config.AppConfig
	logger          *slog.Logger
}

// NewTransactionService creates a transaction service
func NewTransactionService(
	transactionRepo repositories.TransactionRepositoryInterface,
	accountRepo repositories.AccountRepositoryInterface,
	categoryRepo repositories.CategoryRepositoryInterface,
	publisher events.Publisher,
	metrics MetricsRecorderInterface,
	activity ActivityLoggerInterface,
	appConfig config.AppConfig,
	logger *slog.Logger,
) TransactionServiceInterface {
	return &transactionService{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		categoryRepo:    categoryRepo,
		publisher:       publisher,
		metrics:         metrics,
		activity:        activity,
		appConfig:       appConfig,
		logger:          logger,
	}
}

// CreateTransaction records a transaction against an account and category the user owns.
// The returned transaction carries both relations.
func (s *transactionService) CreateTransaction(ctx context.Context, userID uuid.UUID, input models.TransactionInput) (*models.Transaction, error) {
	if !models.IsValidAmount(input.Amount) {
		return nil, apperrors.New(apperrors.ValidationInvalidAmount)
	}
	if !models.IsValidTransactionType(input.Type) {
		return nil, apperrors.New(apperrors.ValidationTransactionType)
	}
	if !models.IsValidPaymentMethod(input.Method) {
		return nil, apperrors.New(apperrors.ValidationPaymentMethod)
	}

	account, category, err := s.resolveReferences(ctx, userID, input.AccountID, input.CategoryID)
	if err != nil {
		return nil, err
	}

	transaction := &models.Transaction{
		UserID:     userID,
		AccountID:  account.ID,
		CategoryID: category.ID,
		Amount:     input.Amount,
		Type:       input.Type,
		Method:     input.Method,
		Remarks:    input.Remarks,
		Date:       time.Now(),
	}
	if err := s.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	transaction.Account = account
	transaction.Category = category

	s.metrics.IncrementCounter("transaction_created", map[string]string{
		"type":   transaction.Type,
		"method": transaction.Method,
	})
	s.metrics.RecordGauge("transaction_amount", transaction.Amount.InexactFloat64(), nil)
	s.activity.LogTransactionCreated(ctx, userID, transaction.ID, transaction.Amount.String(), transaction.Type)
	s.publish(ctx, events.NewTransactionCreatedEvent(transaction))

	return transaction, nil
}

// resolveReferences loads the account and the category concurrently. Either
// one missing, or owned by someone else, is reported as a single not-found.
func (s *transactionService) resolveReferences(ctx context.Context, userID, accountID, categoryID uuid.UUID) (*models.Account, *models.Category, error) {
	var (
		account  *models.Account
		category *models.Category
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		account, err = s.accountRepo.FindOwned(gctx, accountID, userID)
		return err
	})
	g.Go(func() error {
		var err error
		category, err = s.categoryRepo.FindOwned(gctx, categoryID, userID)
		return err
	})

	if err := g.Wait(); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil, apperrors.New(apperrors.TransactionReferenceNotFound)
		}
		return nil, nil, fmt.Errorf("failed to resolve transaction references: %w", err)
	}

	return account, category, nil
}

// ListTransactions returns one page of the user's transactions, newest first.
// A non-positive limit falls back to the configured page size and limits above
// the configured maximum are clamped.
func (s *transactionService) ListTransactions(ctx context.Context, userID uuid.UUID, limit, offset int) (*models.TransactionPage, error) {
	limit, offset = s.clampPage(limit, offset)

	transactions, total, err := s.transactionRepo.ListPage(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	if transactions == nil {
		transactions = []models.Transaction{}
	}

	return &models.TransactionPage{
		Transactions: transactions,
		Total:        total,
		Limit:        limit,
		Offset:       offset,
	}, nil
}

// DeleteTransaction removes a transaction the user owns
func (s *transactionService) DeleteTransaction(ctx context.Context, userID, transactionID uuid.UUID) error {
	transaction, err := s.transactionRepo.FindOwnedWithRelations(ctx, transactionID, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return apperrors.New(apperrors.TransactionNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to load transaction: %w", err)
	}

	if err := s.transactionRepo.DeleteOwned(ctx, transactionID, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.New(apperrors.TransactionNotFound)
		}
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	s.metrics.IncrementCounter("transaction_deleted", map[string]string{"type": transaction.Type})
	s.activity.LogTransactionDeleted(ctx, userID, transactionID)
	s.publish(ctx, events.NewTransactionDeletedEvent(transaction))
	return nil
}

func (s *transactionService) clampPage(limit, offset int) (int, int) {
	defaultLimit := s.appConfig.TransactionPageLimit
	if defaultLimit <= 0 {
		defaultLimit = 10
	}
	maxLimit := s.appConfig.TransactionMaxLimit
	if maxLimit < defaultLimit {
		maxLimit = defaultLimit
	}

	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// publish never fails the caller; the transaction is already committed
func (s *transactionService) publish(ctx context.Context, event *events.TransactionEvent) {
	if err := s.publisher.PublishTransactionEvent(ctx, event); err != nil {
		s.metrics.IncrementCounter("event_published", map[string]string{"event": event.Event, "status": "failed"})
		s.logger.ErrorContext(ctx, "failed to publish transaction event",
			"error", err,
			"event", event.Event,
			"transaction_id", event.TransactionID,
		)
		return
	}
	s.metrics.IncrementCounter("event_published", map[string]string{"event": event.Event, "status": "success"})
}
