package repositories

import (
	"context"

	"gorm.io/gorm"
)

type txContextKey struct{}

type transactionManager struct {
	db *gorm.DB
}

// NewTransactionManager creates a transaction manager backed by GORM
func NewTransactionManager(db *gorm.DB) TransactionManagerInterface {
	return &transactionManager{db: db}
}

// WithinTransaction runs fn inside a database transaction. Repositories called with the
// context passed to fn join that transaction. Nested calls reuse the outer transaction.
func (m *transactionManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txContextKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}

	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txContextKey{}, tx))
	})
}

func dbFromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txContextKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback
}
