package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/centime/centime-backend/internal/domain"
	"github.com/centime/centime-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// CategoryHandler handles category HTTP requests
type CategoryHandler struct {
	ledger *service.LedgerService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(ledger *service.LedgerService) *CategoryHandler {
	return &CategoryHandler{ledger: ledger}
}

// CategoryRequest is the request body for creating or updating a category
type CategoryRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// UpdateCategoryRequest is the request body for a partial category edit
type UpdateCategoryRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
	Icon  *string `json:"icon"`
}

// GetCategories handles GET /api/v1/categories
func (h *CategoryHandler) GetCategories(c echo.Context) error {
	return c.JSON(http.StatusOK, h.ledger.Categories())
}

// CreateCategory handles POST /api/v1/categories
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	category, err := h.ledger.CreateCategory(req.Name, req.Color, req.Icon)
	if err != nil {
		return h.mapError(c, err, "Failed to create category")
	}

	log.Info().Int32("category_id", category.ID).Str("name", category.Name).Msg("Category created")
	return c.JSON(http.StatusCreated, category)
}

// UpdateCategory handles PUT /api/v1/categories/:id
func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	id, err := parseCategoryID(c)
	if err != nil {
		return NewValidationError(c, "Invalid category ID", nil)
	}

	var req UpdateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	category, err := h.ledger.UpdateCategory(id, service.UpdateCategoryInput{
		Name:  req.Name,
		Color: req.Color,
		Icon:  req.Icon,
	})
	if err != nil {
		return h.mapError(c, err, "Failed to update category")
	}
	return c.JSON(http.StatusOK, category)
}

// DeleteCategory handles DELETE /api/v1/categories/:id
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	id, err := parseCategoryID(c)
	if err != nil {
		return NewValidationError(c, "Invalid category ID", nil)
	}

	if err := h.ledger.DeleteCategory(id); err != nil {
		return h.mapError(c, err, "Failed to delete category")
	}

	log.Info().Int32("category_id", id).Msg("Category deleted, transactions reassigned")
	return c.NoContent(http.StatusNoContent)
}

func parseCategoryID(c echo.Context) (int32, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidInput
	}
	return int32(id), nil
}

func (h *CategoryHandler) mapError(c echo.Context, err error, detail string) error {
	switch {
	case errors.Is(err, domain.ErrCategoryNotFound):
		return NewNotFoundError(c, "Category not found")
	case errors.Is(err, domain.ErrSentinelCategory):
		return NewValidationError(c, "The uncategorized category cannot be modified or deleted", nil)
	case errors.Is(err, domain.ErrNameRequired):
		return NewValidationError(c, "Name is required", []ValidationError{
			{Field: "name", Message: "Must not be empty"},
		})
	case errors.Is(err, domain.ErrNameTooLong):
		return NewValidationError(c, "Name exceeds maximum length", nil)
	default:
		log.Error().Err(err).Msg(detail)
		return NewInternalError(c, detail)
	}
}
