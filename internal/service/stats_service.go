package service

import (
	"github.com/centime/centime-backend/internal/ledger"
	"github.com/shopspring/decimal"
)

// DefaultTrendMonths is the trailing window of the monthly trend when the
// caller does not ask for a specific one.
const DefaultTrendMonths = 6

// StatsService runs the pure aggregation engine over the live snapshot.
// Nothing is cached: every call recomputes from the current collections.
type StatsService struct {
	ledger *LedgerService
}

// NewStatsService creates a new StatsService.
func NewStatsService(ledger *LedgerService) *StatsService {
	return &StatsService{ledger: ledger}
}

// Summary holds income, expense and balance totals for the active range.
type Summary struct {
	Range   ledger.Range
	Income  decimal.Decimal
	Expense decimal.Decimal
	Balance decimal.Decimal
}

// Summary totals income and expense over the transactions falling in the
// active range around now.
func (s *StatsService) Summary(r ledger.Range) Summary {
	txns := ledger.FilterByRange(s.ledger.Transactions(), r, nowFunc())

	income, expense := decimal.Zero, decimal.Zero
	for _, t := range txns {
		if t.IsExpense() {
			expense = expense.Add(t.Amount.Abs())
		} else {
			income = income.Add(t.Amount)
		}
	}
	return Summary{Range: r, Income: income, Expense: expense, Balance: income.Sub(expense)}
}

// CategoryStats returns per-category debit statistics for the active range,
// sorted by total descending.
func (s *StatsService) CategoryStats(r ledger.Range) []ledger.CategoryTotal {
	snap := s.ledger.Snapshot()
	filtered := ledger.FilterByRange(snap.Transactions, r, nowFunc())
	return ledger.CategoryTotals(filtered, snap.Categories)
}

// MonthlyTrend returns income and expense per month for a trailing window.
// The trend intentionally spans all transactions, not the active range.
func (s *StatsService) MonthlyTrend(months int) []ledger.TrendPoint {
	if months <= 0 {
		months = DefaultTrendMonths
	}
	return ledger.MonthlyTrend(s.ledger.Transactions(), months, nowFunc())
}

// CategoryTrend returns per-category spend buckets for multi-series charts,
// monthly for a month range and quarterly otherwise.
func (s *StatsService) CategoryTrend(r ledger.Range) ([]ledger.TrendBucket, []string) {
	snap := s.ledger.Snapshot()
	return ledger.CategoryTrend(snap.Transactions, snap.Categories, r, nowFunc())
}
