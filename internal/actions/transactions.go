package actions

import (
	"context"

	apperrors "finance-tracker/internal/errors"
	"finance-tracker/internal/models"
	"finance-tracker/internal/result"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NewTransaction is the caller-supplied part of a transaction. Ids arrive as strings
// from forms and query strings.
type NewTransaction struct {
	AccountID  string
	CategoryID string
	Amount     decimal.Decimal
	Type       string
	Method     string
	Remarks    string
}

// CreateTransaction records a transaction against one of the caller's accounts
func (a *Actions) CreateTransaction(ctx context.Context, in NewTransaction) result.Result[models.Transaction] {
	return run(ctx, a, "create_transaction", somethingWentWrong,
		func(userID uuid.UUID) (outcome[models.Transaction], error) {
			// amount is checked before the ids so a bad amount wins over a bad reference
			if !models.IsValidAmount(in.Amount) {
				return outcome[models.Transaction]{}, apperrors.New(apperrors.ValidationInvalidAmount)
			}
			accountID, err := parseID(in.AccountID, apperrors.TransactionReferenceNotFound)
			if err != nil {
				return outcome[models.Transaction]{}, err
			}
			categoryID, err := parseID(in.CategoryID, apperrors.TransactionReferenceNotFound)
			if err != nil {
				return outcome[models.Transaction]{}, err
			}

			tx, err := a.transactions.CreateTransaction(ctx, userID, models.TransactionInput{
				AccountID:  accountID,
				CategoryID: categoryID,
				Amount:     in.Amount,
				Type:       in.Type,
				Method:     in.Method,
				Remarks:    in.Remarks,
			})
			if err != nil {
				return outcome[models.Transaction]{}, err
			}
			return withData(*tx, "Transaction created successfully"), nil
		})
}

// ListTransactions returns one page of the caller's transactions, newest first
func (a *Actions) ListTransactions(ctx context.Context, limit, offset int) result.Result[models.TransactionPage] {
	return run(ctx, a, "list_transactions", somethingWentWrong,
		func(userID uuid.UUID) (outcome[models.TransactionPage], error) {
			page, err := a.transactions.ListTransactions(ctx, userID, limit, offset)
			if err != nil {
				return outcome[models.TransactionPage]{}, err
			}
			return withData(*page, ""), nil
		})
}

func (a *Actions) DeleteTransaction(ctx context.Context, id string) result.Result[struct{}] {
	return run(ctx, a, "delete_transaction", somethingWentWrong,
		func(userID uuid.UUID) (outcome[struct{}], error) {
			transactionID, err := parseID(id, apperrors.TransactionNotFound)
			if err != nil {
				return outcome[struct{}]{}, err
			}
			if err := a.transactions.DeleteTransaction(ctx, userID, transactionID); err != nil {
				return outcome[struct{}]{}, err
			}
			return withMessage[struct{}]("Transaction deleted successfully"), nil
		})
}
