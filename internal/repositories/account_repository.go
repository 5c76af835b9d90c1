package repositories

import (
	"context"
	"fmt"

	"finance-tracker/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccountRepository handles database operations for accounts
type AccountRepository struct {
	OwnedRepository[models.Account]
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *gorm.DB) AccountRepositoryInterface {
	return &AccountRepository{
		OwnedRepository: NewOwnedRepository[models.Account](db),
	}
}

// ListWithTransactions returns the user's accounts with the transaction columns needed to derive balances
func (r *AccountRepository) ListWithTransactions(ctx context.Context, userID uuid.UUID) ([]models.Account, error) {
	var accounts []models.Account
	err := r.conn(ctx).
		Preload("Transactions", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "account_id", "amount", "type")
		}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&accounts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts with transactions: %w", err)
	}

	return accounts, nil
}

// CountTransactions counts the transactions that reference an account
func (r *AccountRepository) CountTransactions(ctx context.Context, accountID uuid.UUID) (int64, error) {
	var count int64
	if err := r.conn(ctx).Model(&models.Transaction{}).Where("account_id = ?", accountID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count account transactions: %w", err)
	}

	return count, nil
}
