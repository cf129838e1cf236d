package domain

import (
	"github.com/shopspring/decimal"
)

// Transaction is a single ledger entry. Amounts are signed: positive for
// income/credits, negative for expenses/debits. CategoryID always resolves to
// an existing category; the deletion cascade reassigns orphans to the
// uncategorized sentinel.
type Transaction struct {
	ID          string          `json:"id"`
	Date        Date            `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	CategoryID  int32           `json:"category"`
	Notes       string          `json:"notes"`
}

// IsExpense reports whether the transaction is a debit.
func (t Transaction) IsExpense() bool {
	return t.Amount.IsNegative()
}
