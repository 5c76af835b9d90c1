package handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router groups the handlers mounted by the API server
type Router struct {
	Accounts     *AccountHandler
	Categories   *CategoryHandler
	Transactions *TransactionHandler
	Users        *UserHandler
	Dashboard    *DashboardHandler
	Auth         *AuthHandler
	Health       *HealthCheckHandler

	// Dev is mounted only when set
	Dev *DevHandler
}

// Register mounts every route on e. requireAuth guards everything except
// health, metrics, register and login.
func (r *Router) Register(e *echo.Echo, requireAuth echo.MiddlewareFunc) {
	e.GET("/health", r.Health.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	auth := e.Group("/api/auth")
	auth.POST("/register", r.Auth.Register)
	auth.POST("/login", r.Auth.Login)
	auth.POST("/logout", r.Auth.Logout)

	v1 := e.Group("/api/v1", requireAuth)

	v1.GET("/accounts", r.Accounts.ListAccounts)
	v1.POST("/accounts", r.Accounts.CreateAccount)
	v1.PUT("/accounts/:id", r.Accounts.UpdateAccount)
	v1.DELETE("/accounts/:id", r.Accounts.DeleteAccount)

	v1.GET("/categories", r.Categories.ListCategories)
	v1.POST("/categories", r.Categories.CreateCategory)
	v1.PUT("/categories/:id", r.Categories.UpdateCategory)
	v1.DELETE("/categories/:id", r.Categories.DeleteCategory)

	v1.GET("/transactions", r.Transactions.ListTransactions)
	v1.POST("/transactions", r.Transactions.CreateTransaction)
	v1.DELETE("/transactions/:id", r.Transactions.DeleteTransaction)

	v1.GET("/dashboard", r.Dashboard.GetDashboard)

	if r.Dev != nil {
		v1.POST("/dev/generate-test-data", r.Dev.GenerateTestData)
	}

	user := e.Group("/api/user", requireAuth)
	user.GET("/accounts", r.Accounts.ListAccountOptions)
	user.GET("/categories", r.Categories.ListCategoryOptions)
	user.POST("/setdefaultcredit", r.Users.SetDefaultCredit)
	user.GET("/balance", r.Users.GetBalance)
	user.GET("/currency", r.Users.GetCurrency)
	user.POST("/initialize", r.Users.InitializeDefaults)
}
