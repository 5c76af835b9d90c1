package models

import "github.com/shopspring/decimal"

// AccountWithBalance is an account annotated with its derived balance
type AccountWithBalance struct {
	Account
	Balance decimal.Decimal `json:"balance"`
}

// NamedOption is the id and name projection used to fill selection menus
type NamedOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
