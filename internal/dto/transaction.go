package dto

import "github.com/shopspring/decimal"

// Transaction Request DTOs

// CreateTransactionRequest is the payload for logging a transaction
type CreateTransactionRequest struct {
	AccountID  string          `json:"accountId" validate:"omitempty,uuid"`
	CategoryID string          `json:"categoryId" validate:"omitempty,uuid"`
	Amount     decimal.Decimal `json:"amount"`
	Type       string          `json:"type" validate:"max=10"`
	Method     string          `json:"method" validate:"max=10"`
	Remarks    string          `json:"remarks,omitempty" validate:"max=500"`
}

// ListTransactionsQuery carries the pagination query parameters
type ListTransactionsQuery struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}
