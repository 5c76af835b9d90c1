package actions

import (
	"context"

	apperrors "finance-tracker/internal/errors"
	"finance-tracker/internal/models"
	"finance-tracker/internal/result"

	"github.com/google/uuid"
)

// ListAccounts returns the caller's accounts, newest first, each with its derived balance
func (a *Actions) ListAccounts(ctx context.Context) result.Result[[]models.AccountWithBalance] {
	return run(ctx, a, "list_accounts", "Failed to fetch accounts",
		func(userID uuid.UUID) (outcome[[]models.AccountWithBalance], error) {
			accounts, err := a.accounts.ListAccounts(ctx, userID)
			if err != nil {
				return outcome[[]models.AccountWithBalance]{}, err
			}
			return withData(accounts, ""), nil
		})
}

// ListAccountOptions returns the id and name of each account
func (a *Actions) ListAccountOptions(ctx context.Context) result.Result[[]models.NamedOption] {
	return run(ctx, a, "list_account_options", "Failed to fetch accounts",
		func(userID uuid.UUID) (outcome[[]models.NamedOption], error) {
			options, err := a.accounts.ListAccountOptions(ctx, userID)
			if err != nil {
				return outcome[[]models.NamedOption]{}, err
			}
			return withData(options, ""), nil
		})
}

func (a *Actions) CreateAccount(ctx context.Context, name, accountType string) result.Result[models.Account] {
	return run(ctx, a, "create_account", "Failed to create account",
		func(userID uuid.UUID) (outcome[models.Account], error) {
			account, err := a.accounts.CreateAccount(ctx, userID, name, accountType)
			if err != nil {
				return outcome[models.Account]{}, err
			}
			return withData(*account, "Account created successfully"), nil
		})
}

func (a *Actions) UpdateAccount(ctx context.Context, id, name, accountType string) result.Result[models.Account] {
	return run(ctx, a, "update_account", "Failed to update account",
		func(userID uuid.UUID) (outcome[models.Account], error) {
			accountID, err := parseID(id, apperrors.AccountNotFound)
			if err != nil {
				return outcome[models.Account]{}, err
			}
			account, err := a.accounts.UpdateAccount(ctx, userID, accountID, name, accountType)
			if err != nil {
				return outcome[models.Account]{}, err
			}
			return withData(*account, "Account updated successfully"), nil
		})
}

func (a *Actions) DeleteAccount(ctx context.Context, id string) result.Result[struct{}] {
	return run(ctx, a, "delete_account", "Failed to delete account",
		func(userID uuid.UUID) (outcome[struct{}], error) {
			accountID, err := parseID(id, apperrors.AccountNotFound)
			if err != nil {
				return outcome[struct{}]{}, err
			}
			if err := a.accounts.DeleteAccount(ctx, userID, accountID); err != nil {
				return outcome[struct{}]{}, err
			}
			return withMessage[struct{}]("Account deleted successfully"), nil
		})
}
