package handlers

import (
	"net/http"

	"finance-tracker/internal/actions"
	"finance-tracker/internal/dto"

	"github.com/labstack/echo/v4"
)

// AccountHandler handles account-related HTTP requests
type AccountHandler struct {
	actions *actions.Actions
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(a *actions.Actions) *AccountHandler {
	return &AccountHandler{actions: a}
}

// ListAccounts returns the user's accounts with derived balances
// @Summary List accounts
// @Tags Accounts
// @Security BearerAuth
// @Produce json
// @Success 200 {object} result.Result[[]models.AccountWithBalance]
// @Failure 401 {object} result.Result[any] "Unauthorized"
// @Failure 500 {object} result.Result[any] "Failed to fetch accounts"
// @Router /v1/accounts [get]
func (h *AccountHandler) ListAccounts(c echo.Context) error {
	return respond(c, http.StatusOK, h.actions.ListAccounts(requestContext(c)))
}

// ListAccountOptions returns id and name pairs for selection menus
// @Router /user/accounts [get]
func (h *AccountHandler) ListAccountOptions(c echo.Context) error {
	return respond(c, http.StatusOK, h.actions.ListAccountOptions(requestContext(c)))
}

// CreateAccount creates an account for the authenticated user
// @Summary Create an account
// @Tags Accounts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.AccountRequest true "Account name and type"
// @Success 201 {object} result.Result[models.Account] "Account created successfully"
// @Failure 400 {object} result.Result[any] "Name and type are required"
// @Failure 401 {object} result.Result[any] "Unauthorized"
// @Router /v1/accounts [post]
func (h *AccountHandler) CreateAccount(c echo.Context) error {
	var req dto.AccountRequest
	if proceed, err := bindAndValidate(c, &req); !proceed {
		return err
	}

	return respond(c, http.StatusCreated, h.actions.CreateAccount(requestContext(c), req.Name, req.Type))
}

// UpdateAccount renames an account or changes its type
// @Summary Update an account
// @Tags Accounts
// @Security BearerAuth
// @Param id path string true "Account ID (UUID)"
// @Param request body dto.AccountRequest true "Account name and type"
// @Success 200 {object} result.Result[models.Account] "Account updated successfully"
// @Failure 404 {object} result.Result[any] "Account not found"
// @Router /v1/accounts/{id} [put]
func (h *AccountHandler) UpdateAccount(c echo.Context) error {
	var req dto.AccountRequest
	if proceed, err := bindAndValidate(c, &req); !proceed {
		return err
	}

	return respond(c, http.StatusOK, h.actions.UpdateAccount(requestContext(c), c.Param("id"), req.Name, req.Type))
}

// DeleteAccount removes an account that no transaction references
// @Summary Delete an account
// @Tags Accounts
// @Security BearerAuth
// @Param id path string true "Account ID (UUID)"
// @Success 200 {object} result.Result[any] "Account deleted successfully"
// @Failure 404 {object} result.Result[any] "Account not found"
// @Failure 409 {object} result.Result[any] "Cannot delete account with transactions"
// @Router /v1/accounts/{id} [delete]
func (h *AccountHandler) DeleteAccount(c echo.Context) error {
	return respond(c, http.StatusOK, h.actions.DeleteAccount(requestContext(c), c.Param("id")))
}
