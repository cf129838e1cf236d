package domain

import "github.com/shopspring/decimal"

// BudgetPeriod is the declared granularity of a budget.
type BudgetPeriod string

const (
	PeriodMonthly   BudgetPeriod = "monthly"
	PeriodQuarterly BudgetPeriod = "quarterly"
	PeriodYearly    BudgetPeriod = "yearly"
)

// Valid reports whether the period is one of the known granularities.
func (p BudgetPeriod) Valid() bool {
	switch p {
	case PeriodMonthly, PeriodQuarterly, PeriodYearly:
		return true
	}
	return false
}

// Budget is a spending target for a category. The category must exist and
// must not be the uncategorized sentinel; the amount must be positive.
// Budgets are plain value records: the exceeded condition is recomputed on
// every query, never stored.
type Budget struct {
	ID         string          `json:"id"`
	CategoryID int32           `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	Period     BudgetPeriod    `json:"period"`
}
