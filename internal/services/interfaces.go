package services

import (
	"context"
	"time"

	"finance-tracker/internal/dto"
	"finance-tracker/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountServiceInterface defines account-related business operations.
// Every method is scoped to userID.
type AccountServiceInterface interface {
	ListAccounts(ctx context.Context, userID uuid.UUID) ([]models.AccountWithBalance, error)
	ListAccountOptions(ctx context.Context, userID uuid.UUID) ([]models.NamedOption, error)
	CreateAccount(ctx context.Context, userID uuid.UUID, name, accountType string) (*models.Account, error)
	UpdateAccount(ctx context.Context, userID, accountID uuid.UUID, name, accountType string) (*models.Account, error)
	DeleteAccount(ctx context.Context, userID, accountID uuid.UUID) error
}

// CategoryServiceInterface defines category-related business operations
type CategoryServiceInterface interface {
	ListCategories(ctx context.Context, userID uuid.UUID) ([]models.CategoryWithStats, error)
	ListCategoryOptions(ctx context.Context, userID uuid.UUID) ([]models.NamedOption, error)
	CreateCategory(ctx context.Context, userID uuid.UUID, name string, categoryType *string) (*models.Category, error)
	UpdateCategory(ctx context.Context, userID, categoryID uuid.UUID, name string) (*models.Category, error)
	DeleteCategory(ctx context.Context, userID, categoryID uuid.UUID) error
}

// TransactionServiceInterface defines transaction-related business operations
type TransactionServiceInterface interface {
	CreateTransaction(ctx context.Context, userID uuid.UUID, input models.TransactionInput) (*models.Transaction, error)
	ListTransactions(ctx context.Context, userID uuid.UUID, limit, offset int) (*models.TransactionPage, error)
	DeleteTransaction(ctx context.Context, userID, transactionID uuid.UUID) error
}

// UserServiceInterface covers the per-user settings and onboarding
type UserServiceInterface interface {
	SetDefaultCredit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*models.DefaultCredit, error)
	GetBalance(ctx context.Context, userID uuid.UUID) (*models.UserBalance, error)
	GetCurrency(ctx context.Context, userID uuid.UUID) (string, error)
	InitializeDefaults(ctx context.Context, userID uuid.UUID) (*models.InitializedDefaults, error)
}

// DashboardServiceInterface builds the dashboard aggregates
type DashboardServiceInterface interface {
	GetSummary(ctx context.Context, userID uuid.UUID) (*models.DashboardSummary, error)
}

// TransactionGeneratorInterface produces realistic demo transactions for a user's
// existing accounts and categories
type TransactionGeneratorInterface interface {
	Generate(accounts []models.Account, categories []models.Category, count int) []models.TransactionInput
}

type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}

type AuthServiceInterface interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, accessToken string) error
}

type TokenServiceInterface interface {
	GenerateAccessToken(user *models.User) (string, time.Time, error)
	ValidateAccessToken(tokenString string) (*models.SessionClaims, error)
	ExtractTokenFromHeader(authHeader string) (string, error)
	GetJTI(tokenString string) (string, error)
	GetTokenExpiry(tokenString string) (time.Time, error)
}

type PasswordServiceInterface interface {
	ValidatePassword(password string) error
	HashPassword(password string) (string, error)
	ComparePassword(password, hash string) bool
}

// ActivityLoggerInterface writes structured activity records for user-visible changes
type ActivityLoggerInterface interface {
	LogAccountCreated(ctx context.Context, userID, accountID uuid.UUID, accountType string)
	LogAccountUpdated(ctx context.Context, userID, accountID uuid.UUID)
	LogAccountDeleted(ctx context.Context, userID, accountID uuid.UUID)
	LogCategoryCreated(ctx context.Context, userID, categoryID uuid.UUID, name string)
	LogCategoryDeleted(ctx context.Context, userID, categoryID uuid.UUID)
	LogTransactionCreated(ctx context.Context, userID, transactionID uuid.UUID, amount, transactionType string)
	LogTransactionDeleted(ctx context.Context, userID, transactionID uuid.UUID)
	LogDefaultCreditSet(ctx context.Context, userID uuid.UUID, balance string)
	LogDefaultsInitialized(ctx context.Context, userID uuid.UUID, categoriesCreated int, accountCreated bool)
	LogAuthEvent(ctx context.Context, event string, userID uuid.UUID, email string)
	LogBusinessRuleViolation(ctx context.Context, operation string, userID uuid.UUID, reason string)
}
