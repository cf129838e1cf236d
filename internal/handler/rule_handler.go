package handler

import (
	"errors"
	"net/http"

	"github.com/centime/centime-backend/internal/domain"
	"github.com/centime/centime-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// RuleHandler handles categorization rule HTTP requests
type RuleHandler struct {
	ledger *service.LedgerService
}

// NewRuleHandler creates a new RuleHandler
func NewRuleHandler(ledger *service.LedgerService) *RuleHandler {
	return &RuleHandler{ledger: ledger}
}

// CreateRuleRequest is the request body for creating a rule
type CreateRuleRequest struct {
	Keyword    string `json:"keyword"`
	CategoryID int32  `json:"categoryId"`
}

// GetRules handles GET /api/v1/rules. Rules are returned in match order.
func (h *RuleHandler) GetRules(c echo.Context) error {
	return c.JSON(http.StatusOK, h.ledger.Rules())
}

// CreateRule handles POST /api/v1/rules
func (h *RuleHandler) CreateRule(c echo.Context) error {
	var req CreateRuleRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	rule, err := h.ledger.CreateRule(req.Keyword, req.CategoryID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyKeyword):
			return NewValidationError(c, "Keyword is required", []ValidationError{
				{Field: "keyword", Message: "Must not be empty"},
			})
		case errors.Is(err, domain.ErrCategoryNotFound):
			return NewNotFoundError(c, "Category not found")
		case errors.Is(err, domain.ErrNameTooLong):
			return NewValidationError(c, "Keyword exceeds maximum length", nil)
		default:
			log.Error().Err(err).Msg("Failed to create rule")
			return NewInternalError(c, "Failed to create rule")
		}
	}

	log.Info().Str("rule_id", rule.ID).Str("keyword", rule.Keyword).Int32("category_id", rule.CategoryID).Msg("Rule created")
	return c.JSON(http.StatusCreated, rule)
}

// DeleteRule handles DELETE /api/v1/rules/:id
func (h *RuleHandler) DeleteRule(c echo.Context) error {
	if err := h.ledger.DeleteRule(c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrRuleNotFound) {
			return NewNotFoundError(c, "Rule not found")
		}
		log.Error().Err(err).Msg("Failed to delete rule")
		return NewInternalError(c, "Failed to delete rule")
	}
	return c.NoContent(http.StatusNoContent)
}
