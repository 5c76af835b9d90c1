package repositories

import (
	"context"

	"finance-tracker/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountRepositoryInterface defines the contract for account repository operations.
// Every lookup is scoped to the owning user.
type AccountRepositoryInterface interface {
	Create(ctx context.Context, account *models.Account) error
	FindOwned(ctx context.Context, id, userID uuid.UUID) (*models.Account, error)
	ListOwned(ctx context.Context, userID uuid.UUID) ([]models.Account, error)
	ListWithTransactions(ctx context.Context, userID uuid.UUID) ([]models.Account, error)
	Update(ctx context.Context, account *models.Account) error
	DeleteOwned(ctx context.Context, id, userID uuid.UUID) error
	CountOwned(ctx context.Context, userID uuid.UUID) (int64, error)
	CountTransactions(ctx context.Context, accountID uuid.UUID) (int64, error)
}

// CategoryRepositoryInterface defines the contract for category repository operations
type CategoryRepositoryInterface interface {
	Create(ctx context.Context, category *models.Category) error
	FindOwned(ctx context.Context, id, userID uuid.UUID) (*models.Category, error)
	ListOwned(ctx context.Context, userID uuid.UUID) ([]models.Category, error)
	ListWithTransactions(ctx context.Context, userID uuid.UUID) ([]models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	DeleteOwned(ctx context.Context, id, userID uuid.UUID) error
	CountOwned(ctx context.Context, userID uuid.UUID) (int64, error)
	CountTransactions(ctx context.Context, categoryID uuid.UUID) (int64, error)
	// ExistsByName matches names case-insensitively, ignoring excludeID when it is not uuid.Nil
	ExistsByName(ctx context.Context, userID uuid.UUID, name string, excludeID uuid.UUID) (bool, error)
}

// TransactionRepositoryInterface defines the contract for transaction repository operations
type TransactionRepositoryInterface interface {
	Create(ctx context.Context, transaction *models.Transaction) error
	FindOwned(ctx context.Context, id, userID uuid.UUID) (*models.Transaction, error)
	FindOwnedWithRelations(ctx context.Context, id, userID uuid.UUID) (*models.Transaction, error)
	ListPage(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Transaction, int64, error)
	DeleteOwned(ctx context.Context, id, userID uuid.UUID) error
}

// UserRepositoryInterface defines the contract for user repository operations
type UserRepositoryInterface interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error
}

// BlacklistedTokenRepositoryInterface defines the contract for revoked token storage
type BlacklistedTokenRepositoryInterface interface {
	Create(ctx context.Context, token *models.BlacklistedToken) error
	GetByJTI(ctx context.Context, jti string) (*models.BlacklistedToken, error)
	DeleteExpired(ctx context.Context) (int64, error)
}

// TransactionManagerInterface runs work inside a single database transaction
type TransactionManagerInterface interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
