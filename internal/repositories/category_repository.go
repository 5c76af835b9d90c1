package repositories

import (
	"context"
	"fmt"
	"strings"

	"finance-tracker/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoryRepository handles database operations for categories
type CategoryRepository struct {
	OwnedRepository[models.Category]
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) CategoryRepositoryInterface {
	return &CategoryRepository{
		OwnedRepository: NewOwnedRepository[models.Category](db),
	}
}

// ListWithTransactions returns the user's categories with the transaction columns needed for stats
func (r *CategoryRepository) ListWithTransactions(ctx context.Context, userID uuid.UUID) ([]models.Category, error) {
	var categories []models.Category
	err := r.conn(ctx).
		Preload("Transactions", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "category_id", "amount", "type")
		}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list categories with transactions: %w", err)
	}

	return categories, nil
}

// CountTransactions counts the transactions that reference a category
func (r *CategoryRepository) CountTransactions(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var count int64
	if err := r.conn(ctx).Model(&models.Transaction{}).Where("category_id = ?", categoryID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count category transactions: %w", err)
	}

	return count, nil
}

// ExistsByName checks for a category with the same name regardless of case
func (r *CategoryRepository) ExistsByName(ctx context.Context, userID uuid.UUID, name string, excludeID uuid.UUID) (bool, error) {
	query := r.conn(ctx).Model(&models.Category{}).
		Where("user_id = ? AND LOWER(name) = LOWER(?)", userID, strings.TrimSpace(name))
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check category name: %w", err)
	}

	return count > 0, nil
}
