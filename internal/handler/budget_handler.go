package handler

import (
	"errors"
	"net/http"

	"github.com/centime/centime-backend/internal/domain"
	"github.com/centime/centime-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Budget status thresholds, percentages.
var warningThreshold = decimal.NewFromInt(80)

// BudgetHandler handles budget HTTP requests
type BudgetHandler struct {
	ledger  *service.LedgerService
	budgets *service.BudgetService
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(ledger *service.LedgerService, budgets *service.BudgetService) *BudgetHandler {
	return &BudgetHandler{ledger: ledger, budgets: budgets}
}

// UpsertBudgetRequest is the request body for creating or updating a budget
type UpsertBudgetRequest struct {
	Category int32  `json:"category"`
	Amount   string `json:"amount"`
	Period   string `json:"period"`
}

// BudgetResponse is the wire form of a budget
type BudgetResponse struct {
	ID       string `json:"id"`
	Category int32  `json:"category"`
	Amount   string `json:"amount"`
	Period   string `json:"period"`
}

// BudgetProgressResponse is one budget with its evaluated progress
type BudgetProgressResponse struct {
	ID           string `json:"id"`
	Category     int32  `json:"category"`
	CategoryName string `json:"categoryName"`
	Color        string `json:"color"`
	Period       string `json:"period"`
	Budgeted     string `json:"budgeted"`
	Spent        string `json:"spent"`
	Remaining    string `json:"remaining"`
	Percentage   string `json:"percentage"`
	Exceeded     bool   `json:"exceeded"`
	Status       string `json:"status"`
}

// ProgressReportResponse is the full budget progress report
type ProgressReportResponse struct {
	TotalBudgeted string                   `json:"totalBudgeted"`
	TotalSpent    string                   `json:"totalSpent"`
	Budgets       []BudgetProgressResponse `json:"budgets"`
}

func toBudgetResponse(b domain.Budget) BudgetResponse {
	return BudgetResponse{
		ID:       b.ID,
		Category: b.CategoryID,
		Amount:   b.Amount.String(),
		Period:   string(b.Period),
	}
}

// GetBudgets handles GET /api/v1/budgets
func (h *BudgetHandler) GetBudgets(c echo.Context) error {
	budgets := h.ledger.Budgets()
	out := make([]BudgetResponse, 0, len(budgets))
	for _, b := range budgets {
		out = append(out, toBudgetResponse(b))
	}
	return c.JSON(http.StatusOK, out)
}

// UpsertBudget handles POST /api/v1/budgets. Creating a budget for a
// category that already has one updates it in place.
func (h *BudgetHandler) UpsertBudget(c echo.Context) error {
	var req UpsertBudgetRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	budget, err := h.ledger.UpsertBudget(req.Category, amount, domain.BudgetPeriod(req.Period))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCategoryNotFound):
			return NewNotFoundError(c, "Category not found")
		case errors.Is(err, domain.ErrSentinelCategory):
			return NewValidationError(c, "The uncategorized category cannot be budgeted", nil)
		case errors.Is(err, domain.ErrZeroBudget):
			return NewValidationError(c, "Budget amount must be positive", []ValidationError{
				{Field: "amount", Message: "Must be greater than zero"},
			})
		case errors.Is(err, domain.ErrInvalidPeriod):
			return NewValidationError(c, "Invalid period", []ValidationError{
				{Field: "period", Message: "Must be monthly, quarterly or yearly"},
			})
		default:
			log.Error().Err(err).Msg("Failed to upsert budget")
			return NewInternalError(c, "Failed to upsert budget")
		}
	}

	log.Info().Str("budget_id", budget.ID).Int32("category_id", budget.CategoryID).Str("amount", budget.Amount.String()).Msg("Budget upserted")
	return c.JSON(http.StatusOK, toBudgetResponse(budget))
}

// DeleteBudget handles DELETE /api/v1/budgets/:id
func (h *BudgetHandler) DeleteBudget(c echo.Context) error {
	if err := h.ledger.DeleteBudget(c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrBudgetNotFound) {
			return NewNotFoundError(c, "Budget not found")
		}
		log.Error().Err(err).Msg("Failed to delete budget")
		return NewInternalError(c, "Failed to delete budget")
	}
	return c.NoContent(http.StatusNoContent)
}

// GetProgress handles GET /api/v1/budgets/progress
func (h *BudgetHandler) GetProgress(c echo.Context) error {
	report, err := h.budgets.Progress()
	if err != nil {
		log.Error().Err(err).Msg("Failed to compute budget progress")
		return NewInternalError(c, "Failed to compute budget progress")
	}

	out := ProgressReportResponse{
		TotalBudgeted: report.TotalBudgeted.String(),
		TotalSpent:    report.TotalSpent.String(),
		Budgets:       make([]BudgetProgressResponse, 0, len(report.Budgets)),
	}
	for _, p := range report.Budgets {
		out.Budgets = append(out.Budgets, BudgetProgressResponse{
			ID:           p.Budget.ID,
			Category:     p.Budget.CategoryID,
			CategoryName: p.CategoryName,
			Color:        p.CategoryColor,
			Period:       string(p.Budget.Period),
			Budgeted:     p.Budget.Amount.String(),
			Spent:        p.Spent.String(),
			Remaining:    p.Remaining.String(),
			Percentage:   p.Percentage.StringFixed(2),
			Exceeded:     p.Exceeded,
			Status:       progressStatus(p),
		})
	}
	return c.JSON(http.StatusOK, out)
}

func progressStatus(p service.BudgetProgress) string {
	switch {
	case p.Exceeded:
		return "exceeded"
	case p.Percentage.GreaterThanOrEqual(warningThreshold):
		return "warning"
	default:
		return "ok"
	}
}
