package models

import "github.com/shopspring/decimal"

// CategoryWithStats is a category annotated with the transactions that reference it.
// TotalAmount adds credits and debits alike.
type CategoryWithStats struct {
	Category
	TransactionCount int64           `json:"transactionCount"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
}

// CategoryShare is one row of the dashboard spending breakdown
type CategoryShare struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	TransactionCount int64           `json:"transactionCount"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
	Percentage       decimal.Decimal `json:"percentage"`
}
