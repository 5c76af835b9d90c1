package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrCategoryNameRequired = errors.New("category name is required")

// Category groups a user's transactions
type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Type      *string   `gorm:"type:varchar(50)" json:"type,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`

	Transactions []Transaction `gorm:"foreignKey:CategoryID" json:"-"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}

	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = now
	}

	return c.Validate()
}

func (c *Category) BeforeUpdate(tx *gorm.DB) error {
	c.UpdatedAt = time.Now()
	return c.Validate()
}

func (c *Category) Validate() error {
	if c.UserID == uuid.Nil {
		return errors.New("user ID is required")
	}

	if strings.TrimSpace(c.Name) == "" {
		return ErrCategoryNameRequired
	}

	return nil
}

func (c *Category) TableName() string {
	return "categories"
}

// DefaultCategoryNames are seeded for every new user
func DefaultCategoryNames() []string {
	return []string{
		"Food",
		"Groceries",
		"Transportation",
		"Entertainment",
		"Shopping",
		"Bills & Utilities",
		"Healthcare",
		"Education",
		"Salary",
		"Other",
	}
}
