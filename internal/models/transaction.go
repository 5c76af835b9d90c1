package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	TransactionTypeCredit = "Credit"
	TransactionTypeDebit  = "Debit"

	PaymentMethodCash   = "Cash"
	PaymentMethodOnline = "Online"
)

var (
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrInvalidPaymentMethod   = errors.New("invalid payment method")
	ErrInvalidAmount          = errors.New("transaction amount must be positive with at most two decimals")
)

// Transaction is a single credit or debit against one of the user's accounts
type Transaction struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"userId"`
	AccountID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"accountId"`
	CategoryID uuid.UUID       `gorm:"type:uuid;not null;index" json:"categoryId"`
	Amount     decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Type       string          `gorm:"type:varchar(10);not null" json:"type"`
	Method     string          `gorm:"type:varchar(10);not null" json:"method"`
	Remarks    string          `gorm:"type:text" json:"remarks,omitempty"`
	Date       time.Time       `gorm:"not null;index" json:"date"`
	CreatedAt  time.Time       `gorm:"not null" json:"createdAt"`
	UpdatedAt  time.Time       `gorm:"not null" json:"updatedAt"`

	// Associations
	Account  *Account  `gorm:"foreignKey:AccountID" json:"account,omitempty"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// BeforeCreate hook for Transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}

	now := time.Now()
	if t.Date.IsZero() {
		t.Date = now
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = now
	}

	return t.Validate()
}

// Validate validates the transaction fields
func (t *Transaction) Validate() error {
	if t.UserID == uuid.Nil {
		return errors.New("user ID is required")
	}

	if t.AccountID == uuid.Nil {
		return errors.New("account ID is required")
	}

	if t.CategoryID == uuid.Nil {
		return errors.New("category ID is required")
	}

	if !IsValidAmount(t.Amount) {
		return ErrInvalidAmount
	}

	if !IsValidTransactionType(t.Type) {
		return ErrInvalidTransactionType
	}

	if !IsValidPaymentMethod(t.Method) {
		return ErrInvalidPaymentMethod
	}

	return nil
}

// IsCredit returns true for money coming into the account
func (t *Transaction) IsCredit() bool {
	return t.Type == TransactionTypeCredit
}

// SignedAmount is the amount as it affects the account balance
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.IsCredit() {
		return t.Amount
	}
	return t.Amount.Neg()
}

// TableName returns the table name for Transaction
func (t *Transaction) TableName() string {
	return "transactions"
}

// IsValidTransactionType checks if the transaction type is valid
func IsValidTransactionType(transactionType string) bool {
	switch transactionType {
	case TransactionTypeCredit, TransactionTypeDebit:
		return true
	default:
		return false
	}
}

// IsValidPaymentMethod checks if the payment method is valid
func IsValidPaymentMethod(method string) bool {
	switch method {
	case PaymentMethodCash, PaymentMethodOnline:
		return true
	default:
		return false
	}
}

// TransactionInput carries the caller-supplied fields of a new transaction
type TransactionInput struct {
	AccountID  uuid.UUID
	CategoryID uuid.UUID
	Amount     decimal.Decimal
	Type       string
	Method     string
	Remarks    string
}
