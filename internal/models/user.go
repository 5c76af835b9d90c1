package models

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	// DefaultCurrency is used when a user has not picked a currency
	DefaultCurrency = "Rs"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

	ErrUserNameRequired  = errors.New("name is required")
	ErrUserEmailRequired = errors.New("email is required")
	ErrUserEmailInvalid  = errors.New("invalid email format")
	ErrNegativeBalance   = errors.New("balance cannot be negative")
	ErrBalanceOutOfRange = errors.New("balance must have at most two decimals and thirteen integer digits")
)

// User owns every account, category and transaction in the system
type User struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name         string          `gorm:"type:varchar(100);not null" json:"name"`
	Email        string          `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string          `gorm:"type:varchar(255);not null" json:"-"`
	Balance      decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"balance"`
	Currency     string          `gorm:"type:varchar(10);not null;default:'Rs'" json:"currency"`
	CreatedAt    time.Time       `gorm:"not null" json:"createdAt"`
	UpdatedAt    time.Time       `gorm:"not null" json:"updatedAt"`

	BlacklistedTokens []BlacklistedToken `gorm:"foreignKey:UserID" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}

	if u.Currency == "" {
		u.Currency = DefaultCurrency
	}

	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = now
	}

	return u.Validate()
}

func (u *User) BeforeUpdate(tx *gorm.DB) error {
	// Map-based updates carry an empty struct, nothing to validate
	if tx.Statement.Dest != nil {
		if _, ok := tx.Statement.Dest.(map[string]interface{}); ok {
			return nil
		}
	}

	return u.Validate()
}

func (u *User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return ErrUserNameRequired
	}

	if u.Email == "" {
		return ErrUserEmailRequired
	}

	if !emailRegex.MatchString(u.Email) {
		return ErrUserEmailInvalid
	}

	if u.Balance.IsNegative() {
		return ErrNegativeBalance
	}
	if !FitsMoneyColumn(u.Balance) {
		return ErrBalanceOutOfRange
	}

	return nil
}

// CurrencyOrDefault returns the user's currency, falling back to DefaultCurrency
func (u *User) CurrencyOrDefault() string {
	if u == nil || u.Currency == "" {
		return DefaultCurrency
	}
	return u.Currency
}

func (u *User) TableName() string {
	return "users"
}
