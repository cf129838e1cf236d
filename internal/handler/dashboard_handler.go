package handler

import (
	"net/http"
	"strconv"

	"github.com/centime/centime-backend/internal/ledger"
	"github.com/centime/centime-backend/internal/service"
	"github.com/labstack/echo/v4"
)

// DashboardHandler serves the aggregated views behind the dashboard.
type DashboardHandler struct {
	stats *service.StatsService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(stats *service.StatsService) *DashboardHandler {
	return &DashboardHandler{stats: stats}
}

// SummaryResponse holds totals for the active range
type SummaryResponse struct {
	Range   string `json:"range"`
	Income  string `json:"income"`
	Expense string `json:"expense"`
	Balance string `json:"balance"`
}

// CategoryTotalResponse is one category's debit statistics
type CategoryTotalResponse struct {
	CategoryID int32  `json:"categoryId"`
	Name       string `json:"name"`
	Color      string `json:"color"`
	Total      string `json:"total"`
	Count      int    `json:"count"`
	Average    string `json:"average"`
	Min        string `json:"min"`
	Max        string `json:"max"`
}

// TrendPointResponse is one month of income and expense totals
type TrendPointResponse struct {
	Label   string `json:"label"`
	Income  string `json:"income"`
	Expense string `json:"expense"`
}

// CategoryTrendResponse holds multi-series trend buckets
type CategoryTrendResponse struct {
	Series  []string                      `json:"series"`
	Buckets []CategoryTrendBucketResponse `json:"buckets"`
}

// CategoryTrendBucketResponse is one bucket of per-category spend
type CategoryTrendBucketResponse struct {
	Label  string            `json:"label"`
	Period string            `json:"period"`
	Values map[string]string `json:"values"`
}

func parseRangeParam(c echo.Context) (ledger.Range, error) {
	s := c.QueryParam("range")
	if s == "" {
		s = string(ledger.RangeMonth)
	}
	return ledger.ParseRange(s)
}

// GetSummary handles GET /api/v1/dashboard/summary
func (h *DashboardHandler) GetSummary(c echo.Context) error {
	r, err := parseRangeParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid range", []ValidationError{
			{Field: "range", Message: "Must be month, quarter or year"},
		})
	}

	summary := h.stats.Summary(r)
	return c.JSON(http.StatusOK, SummaryResponse{
		Range:   string(summary.Range),
		Income:  summary.Income.String(),
		Expense: summary.Expense.String(),
		Balance: summary.Balance.String(),
	})
}

// GetCategoryStats handles GET /api/v1/dashboard/categories
func (h *DashboardHandler) GetCategoryStats(c echo.Context) error {
	r, err := parseRangeParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid range", []ValidationError{
			{Field: "range", Message: "Must be month, quarter or year"},
		})
	}

	totals := h.stats.CategoryStats(r)
	out := make([]CategoryTotalResponse, 0, len(totals))
	for _, t := range totals {
		out = append(out, CategoryTotalResponse{
			CategoryID: t.CategoryID,
			Name:       t.Name,
			Color:      t.Color,
			Total:      t.Total.String(),
			Count:      t.Count,
			Average:    t.Average.String(),
			Min:        t.Min.String(),
			Max:        t.Max.String(),
		})
	}
	return c.JSON(http.StatusOK, out)
}

// GetTrend handles GET /api/v1/dashboard/trend
func (h *DashboardHandler) GetTrend(c echo.Context) error {
	months := service.DefaultTrendMonths
	if s := c.QueryParam("months"); s != "" {
		parsed, err := strconv.Atoi(s)
		if err != nil || parsed < 1 || parsed > 60 {
			return NewValidationError(c, "Invalid months", []ValidationError{
				{Field: "months", Message: "Must be an integer between 1 and 60"},
			})
		}
		months = parsed
	}

	points := h.stats.MonthlyTrend(months)
	out := make([]TrendPointResponse, 0, len(points))
	for _, p := range points {
		out = append(out, TrendPointResponse{
			Label:   p.Label,
			Income:  p.Income.String(),
			Expense: p.Expense.String(),
		})
	}
	return c.JSON(http.StatusOK, out)
}

// GetCategoryTrend handles GET /api/v1/dashboard/category-trend
func (h *DashboardHandler) GetCategoryTrend(c echo.Context) error {
	r, err := parseRangeParam(c)
	if err != nil {
		return NewValidationError(c, "Invalid range", []ValidationError{
			{Field: "range", Message: "Must be month, quarter or year"},
		})
	}

	buckets, series := h.stats.CategoryTrend(r)
	out := CategoryTrendResponse{
		Series:  series,
		Buckets: make([]CategoryTrendBucketResponse, 0, len(buckets)),
	}
	for _, b := range buckets {
		values := make(map[string]string, len(b.Values))
		for name, v := range b.Values {
			values[name] = v.String()
		}
		out.Buckets = append(out.Buckets, CategoryTrendBucketResponse{
			Label:  b.Label,
			Period: b.Period,
			Values: values,
		})
	}
	return c.JSON(http.StatusOK, out)
}
