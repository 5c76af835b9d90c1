package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a record does not exist or belongs to another user
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a write violates a unique index
	ErrDuplicate = errors.New("record already exists")
)

// OwnedRepository holds the data access shared by every entity that has a user_id column.
// Lookups always filter on the owner so a foreign id behaves exactly like a missing one.
type OwnedRepository[T any] struct {
	db *gorm.DB
}

func NewOwnedRepository[T any](db *gorm.DB) OwnedRepository[T] {
	return OwnedRepository[T]{db: db}
}

func (r OwnedRepository[T]) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

// Create saves a new entity
func (r OwnedRepository[T]) Create(ctx context.Context, entity *T) error {
	if entity == nil {
		return errors.New("entity cannot be nil")
	}

	if err := r.conn(ctx).Create(entity).Error; err != nil {
		if isDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create record: %w", err)
	}

	return nil
}

// FindOwned retrieves an entity by id, only when owned by userID
func (r OwnedRepository[T]) FindOwned(ctx context.Context, id, userID uuid.UUID) (*T, error) {
	var entity T
	err := r.conn(ctx).Where("id = ? AND user_id = ?", id, userID).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find record: %w", err)
	}

	return &entity, nil
}

// ListOwned returns every entity owned by userID, newest first
func (r OwnedRepository[T]) ListOwned(ctx context.Context, userID uuid.UUID) ([]T, error) {
	var entities []T
	if err := r.conn(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&entities).Error; err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	return entities, nil
}

// Update writes every column of the entity
func (r OwnedRepository[T]) Update(ctx context.Context, entity *T) error {
	if entity == nil {
		return errors.New("entity cannot be nil")
	}

	if err := r.conn(ctx).Save(entity).Error; err != nil {
		if isDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to update record: %w", err)
	}

	return nil
}

// DeleteOwned removes an entity by id, only when owned by userID
func (r OwnedRepository[T]) DeleteOwned(ctx context.Context, id, userID uuid.UUID) error {
	result := r.conn(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(new(T))
	if result.Error != nil {
		return fmt.Errorf("failed to delete record: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// CountOwned counts the entities owned by userID
func (r OwnedRepository[T]) CountOwned(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.conn(ctx).Model(new(T)).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}

	return count, nil
}
