package services

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultBCryptCost        = 12
	DefaultMinPasswordLength = 8

	// MaxPasswordBytes is where bcrypt stops reading input
	MaxPasswordBytes = 72
)

var (
	ErrPasswordEmpty    = errors.New("password cannot be empty")
	ErrPasswordTooShort = errors.New("password is too short")
	ErrPasswordTooLong  = fmt.Errorf("password must not exceed %d bytes", MaxPasswordBytes)
)

type passwordService struct {
	cost      int
	minLength int
}

// NewPasswordService creates a bcrypt password service. A cost outside bcrypt's range
// and a non-positive minimum length fall back to the defaults.
func NewPasswordService(cost, minLength int) PasswordServiceInterface {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBCryptCost
	}
	if minLength <= 0 {
		minLength = DefaultMinPasswordLength
	}
	return &passwordService{cost: cost, minLength: minLength}
}

// ValidatePassword counts the minimum in characters and the maximum in bytes.
// A whitespace-only password counts as empty.
func (ps *passwordService) ValidatePassword(password string) error {
	switch {
	case strings.TrimSpace(password) == "":
		return ErrPasswordEmpty
	case utf8.RuneCountInString(password) < ps.minLength:
		return ErrPasswordTooShort
	case len(password) > MaxPasswordBytes:
		return ErrPasswordTooLong
	}
	return nil
}

func (ps *passwordService) HashPassword(password string) (string, error) {
	if err := ps.ValidatePassword(password); err != nil {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), ps.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// ComparePassword reports whether password matches the bcrypt hash
func (ps *passwordService) ComparePassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
