package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardSummary aggregates everything the dashboard shows for one user
type DashboardSummary struct {
	TotalBalance       decimal.Decimal      `json:"totalBalance"`
	AccountCount       int                  `json:"accountCount"`
	Accounts           []AccountWithBalance `json:"accounts"`
	TotalSpending      decimal.Decimal      `json:"totalSpending"`
	AveragePerCategory decimal.Decimal      `json:"averagePerCategory"`
	Categories         []CategoryShare      `json:"categories"`
	RecentTransactions []Transaction        `json:"recentTransactions"`
	TransactionCount   int64                `json:"transactionCount"`
	Currency           string               `json:"currency"`
	GeneratedAt        time.Time            `json:"generatedAt"`
}

// TransactionPage is one page of a user's transactions plus the total for pagination
type TransactionPage struct {
	Transactions []Transaction `json:"transactions"`
	Total        int64         `json:"total"`
	Limit        int           `json:"limit"`
	Offset       int           `json:"offset"`
}

// UserBalance is the legacy balance stored on the user row
type UserBalance struct {
	ID       string          `json:"id"`
	Balance  decimal.Decimal `json:"balance"`
	Currency string          `json:"currency"`
}

// DefaultCredit is returned after setting a user's opening balance
type DefaultCredit struct {
	AccountID string          `json:"accountId"`
	Balance   decimal.Decimal `json:"balance"`
	Currency  string          `json:"currency"`
}

// InitializedDefaults reports what was seeded for a user
type InitializedDefaults struct {
	CategoriesCreated int  `json:"categoriesCreated"`
	AccountCreated    bool `json:"accountCreated"`
	Skipped           bool `json:"skipped"`
}
