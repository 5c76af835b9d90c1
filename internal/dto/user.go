package dto

import "github.com/shopspring/decimal"

// SetDefaultCreditRequest sets the user's opening balance
type SetDefaultCreditRequest struct {
	InitialAmount decimal.Decimal `json:"initialAmount"`
}
