package actions

import (
	"context"

	"finance-tracker/internal/models"
	"finance-tracker/internal/result"

	"github.com/google/uuid"
)

func (a *Actions) GetDashboard(ctx context.Context) result.Result[models.DashboardSummary] {
	return run(ctx, a, "get_dashboard", "Failed to load dashboard",
		func(userID uuid.UUID) (outcome[models.DashboardSummary], error) {
			summary, err := a.dashboard.GetSummary(ctx, userID)
			if err != nil {
				return outcome[models.DashboardSummary]{}, err
			}
			return withData(*summary, ""), nil
		})
}
