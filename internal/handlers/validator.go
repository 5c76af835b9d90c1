package handlers

import (
	apperrors "finance-tracker/internal/errors"
	"finance-tracker/internal/validation"

	"github.com/labstack/echo/v4"
)

// CustomValidator implements echo.Validator interface
type CustomValidator struct {
	validator *validation.Validator
}

// NewValidator creates a new custom validator
func NewValidator() echo.Validator {
	return &CustomValidator{validator: validation.GetValidator()}
}

// Validate implements the echo.Validator interface
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// bindAndValidate decodes the body into req and runs its validation tags. It writes
// the failure response itself and reports whether the handler should continue.
func bindAndValidate(c echo.Context, req interface{}) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, sendBindError(c)
	}
	if err := c.Validate(req); err != nil {
		return false, SendError(c, apperrors.ValidationGeneral, err.Error())
	}
	return true, nil
}
