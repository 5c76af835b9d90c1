package actions

import (
	"context"

	"finance-tracker/internal/models"
	"finance-tracker/internal/result"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SetDefaultCredit stores the caller's opening balance
func (a *Actions) SetDefaultCredit(ctx context.Context, initialAmount decimal.Decimal) result.Result[models.DefaultCredit] {
	return run(ctx, a, "set_default_credit", somethingWentWrong,
		func(userID uuid.UUID) (outcome[models.DefaultCredit], error) {
			credit, err := a.users.SetDefaultCredit(ctx, userID, initialAmount)
			if err != nil {
				return outcome[models.DefaultCredit]{}, err
			}
			return withData(*credit, "Default account created successfully"), nil
		})
}

func (a *Actions) GetUserBalance(ctx context.Context) result.Result[models.UserBalance] {
	return run(ctx, a, "get_user_balance", somethingWentWrong,
		func(userID uuid.UUID) (outcome[models.UserBalance], error) {
			balance, err := a.users.GetBalance(ctx, userID)
			if err != nil {
				return outcome[models.UserBalance]{}, err
			}
			return withData(*balance, ""), nil
		})
}

// GetCurrency returns the caller's currency symbol
func (a *Actions) GetCurrency(ctx context.Context) result.Result[string] {
	return run(ctx, a, "get_currency", somethingWentWrong,
		func(userID uuid.UUID) (outcome[string], error) {
			currency, err := a.users.GetCurrency(ctx, userID)
			if err != nil {
				return outcome[string]{}, err
			}
			return withData(currency, ""), nil
		})
}

// InitializeDefaults seeds the standard categories and the main account. Calling it
// again once both exist changes nothing.
func (a *Actions) InitializeDefaults(ctx context.Context) result.Result[models.InitializedDefaults] {
	return run(ctx, a, "initialize_defaults", somethingWentWrong,
		func(userID uuid.UUID) (outcome[models.InitializedDefaults], error) {
			initialized, err := a.users.InitializeDefaults(ctx, userID)
			if err != nil {
				return outcome[models.InitializedDefaults]{}, err
			}
			message := "Defaults initialized successfully"
			if initialized.Skipped {
				message = "Defaults already initialized"
			}
			return withData(*initialized, message), nil
		})
}
