package handlers

import (
	"net/http"

	"finance-tracker/internal/actions"
	"finance-tracker/internal/dto"
	apperrors "finance-tracker/internal/errors"

	"github.com/labstack/echo/v4"
)

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	actions *actions.Actions
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(a *actions.Actions) *TransactionHandler {
	return &TransactionHandler{actions: a}
}

// CreateTransaction logs a credit or debit against one of the user's accounts
// @Summary Create a transaction
// @Tags Transactions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} result.Result[models.Transaction] "Transaction created successfully"
// @Failure 400 {object} result.Result[any] "Invalid amount"
// @Failure 404 {object} result.Result[any] "Account or category not found"
// @Router /v1/transactions [post]
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	var req dto.CreateTransactionRequest
	if proceed, err := bindAndValidate(c, &req); !proceed {
		return err
	}

	r := h.actions.CreateTransaction(requestContext(c), actions.NewTransaction{
		AccountID:  req.AccountID,
		CategoryID: req.CategoryID,
		Amount:     req.Amount,
		Type:       req.Type,
		Method:     req.Method,
		Remarks:    req.Remarks,
	})
	return respond(c, http.StatusCreated, r)
}

// ListTransactions returns one page of the user's transactions, newest first
// @Summary List transactions
// @Tags Transactions
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Page size (default 10)"
// @Param offset query int false "Rows to skip (default 0)"
// @Success 200 {object} result.Result[models.TransactionPage]
// @Router /v1/transactions [get]
func (h *TransactionHandler) ListTransactions(c echo.Context) error {
	var query dto.ListTransactionsQuery
	if err := c.Bind(&query); err != nil {
		return SendError(c, apperrors.ValidationGeneral, "limit and offset must be whole numbers")
	}

	return respond(c, http.StatusOK, h.actions.ListTransactions(requestContext(c), query.Limit, query.Offset))
}

// DeleteTransaction removes one of the user's transactions
// @Router /v1/transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c echo.Context) error {
	return respond(c, http.StatusOK, h.actions.DeleteTransaction(requestContext(c), c.Param("id")))
}
