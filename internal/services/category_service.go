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

type categoryService struct {
	categoryRepo repositories.CategoryRepositoryInterface
	metrics      MetricsRecorderInterface
	activity     ActivityLoggerInterface
	logger       *slog.Logger
}

// NewCategoryService creates a new CategoryServiceInterface instance
func NewCategoryService(
	categoryRepo repositories.CategoryRepositoryInterface,
	metrics MetricsRecorderInterface,
	activity ActivityLoggerInterface,
	logger *slog.Logger,
) CategoryServiceInterface {
	return &categoryService{
		categoryRepo: categoryRepo,
		metrics:      metrics,
		activity:     activity,
		logger:       logger,
	}
}

// ListCategories returns the user's categories with their transaction count and unsigned total
func (s *categoryService) ListCategories(ctx context.Context, userID uuid.UUID) ([]models.CategoryWithStats, error) {
	categories, err := s.categoryRepo.ListWithTransactions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	return categoriesWithStats(categories), nil
}

func (s *categoryService) ListCategoryOptions(ctx context.Context, userID uuid.UUID) ([]models.NamedOption, error) {
	categories, err := s.categoryRepo.ListOwned(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	options := make([]models.NamedOption, 0, len(categories))
	for _, category := range categories {
		options = append(options, models.NamedOption{ID: category.ID.String(), Name: category.Name})
	}
	return options, nil
}

// CreateCategory creates a category unless the user already has one with the same name
func (s *categoryService) CreateCategory(ctx context.Context, userID uuid.UUID, name string, categoryType *string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.New(apperrors.ValidationCategoryName)
	}

	if err := s.ensureUniqueName(ctx, "create_category", userID, name, uuid.Nil); err != nil {
		return nil, err
	}

	category := &models.Category{
		UserID: userID,
		Name:   name,
		Type:   normalizeCategoryType(categoryType),
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, s.duplicateName(ctx, "create_category", userID)
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.metrics.IncrementCounter("entity_created", map[string]string{"entity": "category"})
	s.activity.LogCategoryCreated(ctx, userID, category.ID, category.Name)

	return category, nil
}

// UpdateCategory renames a category the user owns
func (s *categoryService) UpdateCategory(ctx context.Context, userID, categoryID uuid.UUID, name string) (*models.Category, error) {
	category, err := s.findOwned(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.New(apperrors.ValidationCategoryName)
	}

	if err := s.ensureUniqueName(ctx, "update_category", userID, name, category.ID); err != nil {
		return nil, err
	}

	category.Name = name
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, s.duplicateName(ctx, "update_category", userID)
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return category, nil
}

// DeleteCategory removes a category the user owns once no transaction references it
func (s *categoryService) DeleteCategory(ctx context.Context, userID, categoryID uuid.UUID) error {
	if _, err := s.findOwned(ctx, userID, categoryID); err != nil {
		return err
	}

	count, err := s.categoryRepo.CountTransactions(ctx, categoryID)
	if err != nil {
		return fmt.Errorf("failed to count category transactions: %w", err)
	}
	if count > 0 {
		s.metrics.IncrementCounter("business_rule_violation", map[string]string{"operation": "delete_category"})
		s.activity.LogBusinessRuleViolation(ctx, "delete_category", userID, "category has transactions")
		return apperrors.New(apperrors.CategoryHasTransactions)
	}

	if err := s.categoryRepo.DeleteOwned(ctx, categoryID, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.New(apperrors.CategoryNotFound)
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}

	s.metrics.IncrementCounter("entity_deleted", map[string]string{"entity": "category"})
	s.activity.LogCategoryDeleted(ctx, userID, categoryID)
	return nil
}

func (s *categoryService) ensureUniqueName(ctx context.Context, operation string, userID uuid.UUID, name string, excludeID uuid.UUID) error {
	exists, err := s.categoryRepo.ExistsByName(ctx, userID, name, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check category name: %w", err)
	}
	if exists {
		return s.duplicateName(ctx, operation, userID)
	}
	return nil
}

// duplicateName records the violation and returns the error shown to the user. The
// unique index reports the same thing when two writes race past ensureUniqueName.
func (s *categoryService) duplicateName(ctx context.Context, operation string, userID uuid.UUID) error {
	s.metrics.IncrementCounter("business_rule_violation", map[string]string{"operation": operation})
	s.activity.LogBusinessRuleViolation(ctx, operation, userID, "duplicate category name")
	return apperrors.New(apperrors.CategoryAlreadyExists)
}

func (s *categoryService) findOwned(ctx context.Context, userID, categoryID uuid.UUID) (*models.Category, error) {
	category, err := s.categoryRepo.FindOwned(ctx, categoryID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.New(apperrors.CategoryNotFound)
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return category, nil
}

func normalizeCategoryType(categoryType *string) *string {
	if categoryType == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*categoryType)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
