package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	apperrors "finance-tracker/internal/errors"
	"finance-tracker/internal/models"
	"finance-tracker/internal/repositories"

	"github.com/google/uuid"
)

// accountService implements AccountServiceInterface interface
type accountService struct {
	accountRepo repositories.AccountRepositoryInterface
	metrics     MetricsRecorderInterface
	activity    ActivityLoggerInterface
	logger      *slog.Logger
}

// NewAccountService creates an account service
func NewAccountService(
	accountRepo repositories.AccountRepositoryInterface,
	metrics MetricsRecorderInterface,
	activity ActivityLoggerInterface,
	logger *slog.Logger,
) AccountServiceInterface {
	return &accountService{
		accountRepo: accountRepo,
		metrics:     metrics,
		activity:    activity,
		logger:      logger,
	}
}

// ListAccounts returns the user's accounts, newest first, each with its derived balance
func (s *accountService) ListAccounts(ctx context.Context, userID uuid.UUID) ([]models.AccountWithBalance, error) {
	accounts, err := s.accountRepo.ListWithTransactions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	return accountsWithBalance(accounts), nil
}

func (s *accountService) ListAccountOptions(ctx context.Context, userID uuid.UUID) ([]models.NamedOption, error) {
	accounts, err := s.accountRepo.ListOwned(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	options := make([]models.NamedOption, 0, len(accounts))
	for _, account := range accounts {
		options = append(options, models.NamedOption{ID: account.ID.String(), Name: account.Name})
	}
	return options, nil
}

// CreateAccount creates a new account for a user
func (s *accountService) CreateAccount(ctx context.Context, userID uuid.UUID, name, accountType string) (*models.Account, error) {
	name, accountType, err := validateAccountFields(name, accountType)
	if err != nil {
		return nil, err
	}

	account := &models.Account{
		UserID: userID,
		Name:   name,
		Type:   accountType,
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.metrics.IncrementCounter("entity_created", map[string]string{"entity": "account"})
	s.activity.LogAccountCreated(ctx, userID, account.ID, account.Type)

	return account, nil
}

// UpdateAccount renames or retypes an account the user owns. Ownership is checked
// before the fields so a foreign id always reads as missing.
func (s *accountService) UpdateAccount(ctx context.Context, userID, accountID uuid.UUID, name, accountType string) (*models.Account, error) {
	account, err := s.findOwned(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}

	name, accountType, err = validateAccountFields(name, accountType)
	if err != nil {
		return nil, err
	}

	account.Name = name
	account.Type = accountType
	if err := s.accountRepo.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	s.activity.LogAccountUpdated(ctx, userID, account.ID)
	return account, nil
}

// DeleteAccount removes an account the user owns. Accounts still referenced by
// transactions are kept.
func (s *accountService) DeleteAccount(ctx context.Context, userID, accountID uuid.UUID) error {
	if _, err := s.findOwned(ctx, userID, accountID); err != nil {
		return err
	}

	count, err := s.accountRepo.CountTransactions(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to count account transactions: %w", err)
	}
	if count > 0 {
		s.metrics.IncrementCounter("business_rule_violation", map[string]string{"operation": "delete_account"})
		s.activity.LogBusinessRuleViolation(ctx, "delete_account", userID, "account has transactions")
		return apperrors.New(apperrors.AccountHasTransactions)
	}

	if err := s.accountRepo.DeleteOwned(ctx, accountID, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.New(apperrors.AccountNotFound)
		}
		return fmt.Errorf("failed to delete account: %w", err)
	}

	s.metrics.IncrementCounter("entity_deleted", map[string]string{"entity": "account"})
	s.activity.LogAccountDeleted(ctx, userID, accountID)
	return nil
}

func (s *accountService) findOwned(ctx context.Context, userID, accountID uuid.UUID) (*models.Account, error) {
	account, err := s.accountRepo.FindOwned(ctx, accountID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.New(apperrors.AccountNotFound)
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	return account, nil
}

func validateAccountFields(name, accountType string) (string, string, error) {
	name = strings.TrimSpace(name)
	accountType = strings.ToLower(strings.TrimSpace(accountType))

	if name == "" || accountType == "" {
		return "", "", apperrors.New(apperrors.ValidationAccountFields)
	}
	if !models.IsValidAccountType(accountType) {
		return "", "", apperrors.New(apperrors.ValidationAccountType)
	}
	return name, accountType, nil
}
