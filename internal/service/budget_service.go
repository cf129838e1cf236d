package service

import (
	"github.com/centime/centime-backend/internal/domain"
	"github.com/centime/centime-backend/internal/ledger"
	"github.com/shopspring/decimal"
)

// BudgetService computes budget-vs-actual progress over the live snapshot.
// Budgets are plain value records; the exceeded condition is recomputed on
// every query, never stored.
type BudgetService struct {
	ledger *LedgerService
}

// NewBudgetService creates a new BudgetService.
func NewBudgetService(ledger *LedgerService) *BudgetService {
	return &BudgetService{ledger: ledger}
}

// BudgetProgress is the evaluated state of one budget.
type BudgetProgress struct {
	Budget        domain.Budget
	CategoryName  string
	CategoryColor string
	Spent         decimal.Decimal
	Remaining     decimal.Decimal
	Percentage    decimal.Decimal
	Exceeded      bool
}

// ProgressReport is the evaluated state of every budget plus ledger totals
// for the current calendar month.
type ProgressReport struct {
	Budgets       []BudgetProgress
	TotalBudgeted decimal.Decimal
	TotalSpent    decimal.Decimal
}

// Progress evaluates every budget against the current calendar month's
// spending. Spend measurement is month-scoped regardless of the budget's
// declared period.
func (s *BudgetService) Progress() (*ProgressReport, error) {
	snap := s.ledger.Snapshot()
	now := nowFunc()

	report := &ProgressReport{
		Budgets:       make([]BudgetProgress, 0, len(snap.Budgets)),
		TotalBudgeted: decimal.Zero,
		TotalSpent:    decimal.Zero,
	}

	for _, b := range snap.Budgets {
		spent := ledger.SpentForCategory(snap.Transactions, b.CategoryID, now)
		pct, err := ledger.Progress(spent, b.Amount)
		if err != nil {
			return nil, err
		}

		entry := BudgetProgress{
			Budget:     b,
			Spent:      spent,
			Remaining:  b.Amount.Sub(spent),
			Percentage: pct,
			Exceeded:   ledger.Exceeded(pct),
		}
		if c, ok := snap.CategoryByID(b.CategoryID); ok {
			entry.CategoryName = c.Name
			entry.CategoryColor = c.Color
		}

		report.Budgets = append(report.Budgets, entry)
		report.TotalBudgeted = report.TotalBudgeted.Add(b.Amount)
		report.TotalSpent = report.TotalSpent.Add(spent)
	}
	return report, nil
}
