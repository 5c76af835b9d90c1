package handlers

import (
	"net/http"

	"finance-tracker/internal/actions"

	"github.com/labstack/echo/v4"
)

// DashboardHandler serves the aggregated dashboard
type DashboardHandler struct {
	actions *actions.Actions
}

func NewDashboardHandler(a *actions.Actions) *DashboardHandler {
	return &DashboardHandler{actions: a}
}

// GetDashboard returns balances, spending by category and the latest transactions
// @Summary Dashboard summary
// @Tags Dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} result.Result[models.DashboardSummary]
// @Router /v1/dashboard [get]
func (h *DashboardHandler) GetDashboard(c echo.Context) error {
	return respond(c, http.StatusOK, h.actions.GetDashboard(requestContext(c)))
}
