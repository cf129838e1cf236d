package ledger

import (
	"time"

	"github.com/centime/centime-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// SpentForCategory sums the absolute debit amounts for a category within the
// reference instant's calendar month. Measurement is always month-scoped
// regardless of a budget's declared period; the period field is stored and
// round-tripped but does not widen the window.
func SpentForCategory(txns []domain.Transaction, categoryID int32, ref time.Time) decimal.Decimal {
	refDate := domain.DateOf(ref)
	spent := decimal.Zero
	for _, t := range txns {
		if t.CategoryID != categoryID || !t.IsExpense() {
			continue
		}
		if t.Date.Year == refDate.Year && t.Date.Month == refDate.Month {
			spent = spent.Add(t.Amount.Abs())
		}
	}
	return spent
}

// Progress returns spent as a percentage of budgeted. A budgeted amount of
// zero or less is an error: callers must never create a zero-amount budget.
func Progress(spent, budgeted decimal.Decimal) (decimal.Decimal, error) {
	if budgeted.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, domain.ErrZeroBudget
	}
	return spent.Div(budgeted).Mul(decimal.NewFromInt(100)), nil
}

// Exceeded reports whether a budget is over its target. This is an alerting
// signal only; the engine never blocks transaction creation.
func Exceeded(progress decimal.Decimal) bool {
	return progress.GreaterThan(decimal.NewFromInt(100))
}
