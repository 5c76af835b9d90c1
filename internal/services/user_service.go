package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"finance-tracker/internal/config"
	apperrors "finance-tracker/internal/errors"
	"finance-tracker/internal/models"
	"finance-tracker/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type userService struct {
	userRepo     repositories.UserRepositoryInterface
	accountRepo  repositories.AccountRepositoryInterface
	categoryRepo repositories.CategoryRepositoryInterface
	txManager    repositories.TransactionManagerInterface
	activity     ActivityLoggerInterface
	appConfig    config.AppConfig
	logger       *slog.Logger
}

// NewUserService creates the service behind the per-user settings and onboarding
func NewUserService(
	userRepo repositories.UserRepositoryInterface,
	accountRepo repositories.AccountRepositoryInterface,
	categoryRepo repositories.CategoryRepositoryInterface,
	txManager repositories.TransactionManagerInterface,
	activity ActivityLoggerInterface,
	appConfig config.AppConfig,
	logger *slog.Logger,
) UserServiceInterface {
	return &userService{
		userRepo:     userRepo,
		accountRepo:  accountRepo,
		categoryRepo: categoryRepo,
		txManager:    txManager,
		activity:     activity,
		appConfig:    appConfig,
		logger:       logger,
	}
}

// SetDefaultCredit sets the user's opening balance
func (s *userService) SetDefaultCredit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*models.DefaultCredit, error) {
	if amount.IsNegative() || !models.FitsMoneyColumn(amount) {
		return nil, apperrors.New(apperrors.ValidationInitialAmount)
	}

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateBalance(ctx, userID, amount); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.New(apperrors.UserNotFound)
		}
		return nil, fmt.Errorf("failed to update balance: %w", err)
	}

	s.activity.LogDefaultCreditSet(ctx, userID, amount.StringFixed(2))

	return &models.DefaultCredit{
		AccountID: user.ID.String(),
		Balance:   amount,
		Currency:  s.currencyOf(user),
	}, nil
}

func (s *userService) GetBalance(ctx context.Context, userID uuid.UUID) (*models.UserBalance, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &models.UserBalance{
		ID:       user.ID.String(),
		Balance:  user.Balance,
		Currency: s.currencyOf(user),
	}, nil
}

// GetCurrency returns the user's currency code, or the default when the user is unknown
func (s *userService) GetCurrency(ctx context.Context, userID uuid.UUID) (string, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return s.defaultCurrency(), nil
		}
		return "", fmt.Errorf("failed to get user: %w", err)
	}

	return s.currencyOf(user), nil
}

// InitializeDefaults seeds the standard categories and a savings account for a
// user. Each half is created only when the user has none; a user with both is
// left untouched.
func (s *userService) InitializeDefaults(ctx context.Context, userID uuid.UUID) (*models.InitializedDefaults, error) {
	result := &models.InitializedDefaults{}

	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		categoryCount, err := s.categoryRepo.CountOwned(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to count categories: %w", err)
		}
		accountCount, err := s.accountRepo.CountOwned(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to count accounts: %w", err)
		}

		if categoryCount > 0 && accountCount > 0 {
			result.Skipped = true
			return nil
		}

		if categoryCount == 0 {
			for _, name := range models.DefaultCategoryNames() {
				category := &models.Category{UserID: userID, Name: name}
				if err := s.categoryRepo.Create(ctx, category); err != nil {
					return fmt.Errorf("failed to create default category %q: %w", name, err)
				}
				result.CategoriesCreated++
			}
		}

		if accountCount == 0 {
			account := &models.Account{
				UserID: userID,
				Name:   s.defaultAccountName(),
				Type:   models.AccountTypeSavings,
			}
			if err := s.accountRepo.Create(ctx, account); err != nil {
				return fmt.Errorf("failed to create default account: %w", err)
			}
			result.AccountCreated = true
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if !result.Skipped {
		s.activity.LogDefaultsInitialized(ctx, userID, result.CategoriesCreated, result.AccountCreated)
	}
	return result, nil
}

func (s *userService) getUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.New(apperrors.UserNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *userService) currencyOf(user *models.User) string {
	if user.Currency != "" {
		return user.Currency
	}
	return s.defaultCurrency()
}

func (s *userService) defaultCurrency() string {
	if s.appConfig.DefaultCurrency != "" {
		return s.appConfig.DefaultCurrency
	}
	return models.DefaultCurrency
}

func (s *userService) defaultAccountName() string {
	if s.appConfig.DefaultAccountName != "" {
		return s.appConfig.DefaultAccountName
	}
	return "Main"
}
