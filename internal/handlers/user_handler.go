package handlers

import (
	"net/http"

	"finance-tracker/internal/actions"
	"finance-tracker/internal/dto"

	"github.com/labstack/echo/v4"
)

// UserHandler serves the per-user settings endpoints under /api/user
type UserHandler struct {
	actions *actions.Actions
}

func NewUserHandler(a *actions.Actions) *UserHandler {
	return &UserHandler{actions: a}
}

// SetDefaultCredit stores the user's opening balance
func (h *UserHandler) SetDefaultCredit(c echo.Context) error {
	var req dto.SetDefaultCreditRequest
	if proceed, err := bindAndValidate(c, &req); !proceed {
		return err
	}

	return respond(c, http.StatusOK, h.actions.SetDefaultCredit(requestContext(c), req.InitialAmount))
}

func (h *UserHandler) GetBalance(c echo.Context) error {
	return respond(c, http.StatusOK, h.actions.GetUserBalance(requestContext(c)))
}

func (h *UserHandler) GetCurrency(c echo.Context) error {
	return respond(c, http.StatusOK, h.actions.GetCurrency(requestContext(c)))
}

// InitializeDefaults seeds the standard categories and the main account
func (h *UserHandler) InitializeDefaults(c echo.Context) error {
	return respond(c, http.StatusOK, h.actions.InitializeDefaults(requestContext(c)))
}
