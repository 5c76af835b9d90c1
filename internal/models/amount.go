package models

import "github.com/shopspring/decimal"

// AmountScale is the number of decimal places money columns keep
const AmountScale = 2

// maxAmount is the first value a decimal(15,2) column cannot hold
var maxAmount = decimal.New(1, 15-AmountScale)

// FitsMoneyColumn reports whether d is stored exactly by a decimal(15,2) column,
// with no rounding and no overflow
func FitsMoneyColumn(d decimal.Decimal) bool {
	return d.Equal(d.Round(AmountScale)) && d.Abs().LessThan(maxAmount)
}

// IsValidAmount reports whether d is usable as a transaction amount
func IsValidAmount(d decimal.Decimal) bool {
	return d.IsPositive() && FitsMoneyColumn(d)
}
