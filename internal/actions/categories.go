package actions

import (
	"context"

	apperrors "finance-tracker/internal/errors"
	"finance-tracker/internal/models"
	"finance-tracker/internal/result"

	"github.com/google/uuid"
)

// ListCategories returns the caller's categories with their transaction count and total
func (a *Actions) ListCategories(ctx context.Context) result.Result[[]models.CategoryWithStats] {
	return run(ctx, a, "list_categories", "Failed to fetch categories",
		func(userID uuid.UUID) (outcome[[]models.CategoryWithStats], error) {
			categories, err := a.categories.ListCategories(ctx, userID)
			if err != nil {
				return outcome[[]models.CategoryWithStats]{}, err
			}
			return withData(categories, ""), nil
		})
}

func (a *Actions) ListCategoryOptions(ctx context.Context) result.Result[[]models.NamedOption] {
	return run(ctx, a, "list_category_options", "Failed to fetch categories",
		func(userID uuid.UUID) (outcome[[]models.NamedOption], error) {
			options, err := a.categories.ListCategoryOptions(ctx, userID)
			if err != nil {
				return outcome[[]models.NamedOption]{}, err
			}
			return withData(options, ""), nil
		})
}

// CreateCategory adds a category. categoryType is an optional free-form label.
func (a *Actions) CreateCategory(ctx context.Context, name string, categoryType *string) result.Result[models.Category] {
	return run(ctx, a, "create_category", "Failed to create category",
		func(userID uuid.UUID) (outcome[models.Category], error) {
			category, err := a.categories.CreateCategory(ctx, userID, name, categoryType)
			if err != nil {
				return outcome[models.Category]{}, err
			}
			return withData(*category, "Category created successfully"), nil
		})
}

func (a *Actions) UpdateCategory(ctx context.Context, id, name string) result.Result[models.Category] {
	return run(ctx, a, "update_category", "Failed to update category",
		func(userID uuid.UUID) (outcome[models.Category], error) {
			categoryID, err := parseID(id, apperrors.CategoryNotFound)
			if err != nil {
				return outcome[models.Category]{}, err
			}
			category, err := a.categories.UpdateCategory(ctx, userID, categoryID, name)
			if err != nil {
				return outcome[models.Category]{}, err
			}
			return withData(*category, "Category updated successfully"), nil
		})
}

func (a *Actions) DeleteCategory(ctx context.Context, id string) result.Result[struct{}] {
	return run(ctx, a, "delete_category", "Failed to delete category",
		func(userID uuid.UUID) (outcome[struct{}], error) {
			categoryID, err := parseID(id, apperrors.CategoryNotFound)
			if err != nil {
				return outcome[struct{}]{}, err
			}
			if err := a.categories.DeleteCategory(ctx, userID, categoryID); err != nil {
				return outcome[struct{}]{}, err
			}
			return withMessage[struct{}]("Category deleted successfully"), nil
		})
}
