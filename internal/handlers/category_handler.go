package handlers

import (
	"net/http"

	"finance-tracker/internal/actions"
	"finance-tracker/internal/dto"

	"github.com/labstack/echo/v4"
)

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	actions *actions.Actions
}

func NewCategoryHandler(a *actions.Actions) *CategoryHandler {
	return &CategoryHandler{actions: a}
}

// ListCategories returns the user's categories with transaction counts and totals
func (h *CategoryHandler) ListCategories(c echo.Context) error {
	return respond(c, http.StatusOK, h.actions.ListCategories(requestContext(c)))
}

func (h *CategoryHandler) ListCategoryOptions(c echo.Context) error {
	return respond(c, http.StatusOK, h.actions.ListCategoryOptions(requestContext(c)))
}

func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var req dto.CategoryRequest
	if proceed, err := bindAndValidate(c, &req); !proceed {
		return err
	}

	return respond(c, http.StatusCreated, h.actions.CreateCategory(requestContext(c), req.Name, req.Type))
}

// UpdateCategory renames a category. The type label is left as it was.
func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	var req dto.CategoryRequest
	if proceed, err := bindAndValidate(c, &req); !proceed {
		return err
	}

	return respond(c, http.StatusOK, h.actions.UpdateCategory(requestContext(c), c.Param("id"), req.Name))
}

func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	return respond(c, http.StatusOK, h.actions.DeleteCategory(requestContext(c), c.Param("id")))
}
