package handlers

import (
	"net/http"

	"finance-tracker/internal/actions"
	apperrors "finance-tracker/internal/errors"
	"finance-tracker/internal/models"
	"finance-tracker/internal/result"
	"finance-tracker/internal/services"

	"github.com/labstack/echo/v4"
)

const (
	defaultGeneratedTransactions = 50
	maxGeneratedTransactions     = 500
)

// DevHandler handles development-only endpoints
// These endpoints should only be available in development environments
type DevHandler struct {
	actions   *actions.Actions
	generator services.TransactionGeneratorInterface
}

// NewDevHandler creates a new development handler
func NewDevHandler(a *actions.Actions, generator services.TransactionGeneratorInterface) *DevHandler {
	return &DevHandler{
		actions:   a,
		generator: generator,
	}
}

// GeneratedTransactions reports the outcome of a generation run
type GeneratedTransactions struct {
	Requested int `json:"requested"`
	Created   int `json:"created"`
	Failed    int `json:"failed"`
}

// GenerateTestData fills the user's existing accounts and categories with realistic transactions
//
// Method: POST /api/v1/dev/generate-test-data
// Authentication: Required
// Environment: Development only
//
// Query parameters:
//   - count: Number of transactions to generate (default: 50, max: 500)
//
// Every transaction goes through the regular create operation, so it is validated,
// counted and published like one entered by hand.
func (h *DevHandler) GenerateTestData(c echo.Context) error {
	ctx := requestContext(c)

	accounts := h.actions.ListAccounts(ctx)
	if !accounts.Success {
		return respond(c, http.StatusOK, result.FailKind[GeneratedTransactions](accounts.Kind, accounts.Message))
	}
	categories := h.actions.ListCategories(ctx)
	if !categories.Success {
		return respond(c, http.StatusOK, result.FailKind[GeneratedTransactions](categories.Kind, categories.Message))
	}

	plainAccounts := make([]models.Account, 0, len(*accounts.Data))
	for _, account := range *accounts.Data {
		plainAccounts = append(plainAccounts, account.Account)
	}
	plainCategories := make([]models.Category, 0, len(*categories.Data))
	for _, category := range *categories.Data {
		plainCategories = append(plainCategories, category.Category)
	}
	if len(plainAccounts) == 0 || len(plainCategories) == 0 {
		return SendError(c, apperrors.ValidationGeneral, "Create at least one account and one category first")
	}

	count := defaultGeneratedTransactions
	if err := echo.QueryParamsBinder(c).Int("count", &count).BindError(); err != nil {
		return SendError(c, apperrors.ValidationGeneral, "count must be a whole number")
	}
	if count < 1 {
		count = 1
	}
	if count > maxGeneratedTransactions {
		count = maxGeneratedTransactions
	}

	report := GeneratedTransactions{Requested: count}
	for _, input := range h.generator.Generate(plainAccounts, plainCategories, count) {
		r := h.actions.CreateTransaction(ctx, actions.NewTransaction{
			AccountID:  input.AccountID.String(),
			CategoryID: input.CategoryID.String(),
			Amount:     input.Amount,
			Type:       input.Type,
			Method:     input.Method,
			Remarks:    input.Remarks,
		})
		if r.Success {
			report.Created++
		} else {
			report.Failed++
		}
	}

	return respond(c, http.StatusCreated, result.OkMessage(report, "Test data generated successfully"))
}
