// Package testutil holds shared fixtures and store doubles for tests.
package testutil

import (
	"errors"
	"testing"
	"time"

	"github.com/centime/centime-backend/internal/domain"
	"github.com/centime/centime-backend/internal/repository/kv"
	"github.com/shopspring/decimal"
)

// Dec parses a decimal literal, panicking on bad input. Test-only.
func Dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Txn builds a transaction fixture.
func Txn(id string, date domain.Date, amount string, description string, categoryID int32) domain.Transaction {
	return domain.Transaction{
		ID:          id,
		Date:        date,
		Amount:      Dec(amount),
		Description: description,
		CategoryID:  categoryID,
	}
}

// SampleSnapshot builds a small ledger around the reference instant: default
// categories, two keyword rules, a handful of transactions in the reference
// month plus one in the previous month, and one budget on Alimentation.
func SampleSnapshot(ref time.Time) *domain.Snapshot {
	today := domain.DateOf(ref)
	prevYear, prevMonth := today.Year, today.Month-1
	if prevMonth < time.January {
		prevYear, prevMonth = prevYear-1, time.December
	}

	return &domain.Snapshot{
		Transactions: []domain.Transaction{
			Txn("t1", domain.NewDate(today.Year, today.Month, 3), "-42.50", "CARREFOUR VILLEJUIF", 1),
			Txn("t2", domain.NewDate(today.Year, today.Month, 5), "-12.00", "SNCF INTERCITES", 2),
			Txn("t3", domain.NewDate(today.Year, today.Month, 10), "2500.00", "VIREMENT SALAIRE", 8),
			Txn("t4", domain.NewDate(today.Year, today.Month, 12), "-8.99", "NETFLIX.COM", 4),
			Txn("t5", domain.NewDate(prevYear, prevMonth, 20), "-30.00", "CARREFOUR CITY", 1),
		},
		Categories: domain.DefaultCategories(),
		Rules: []domain.CategoryRule{
			{ID: "r1", Keyword: "carrefour", CategoryID: 1},
			{ID: "r2", Keyword: "sncf", CategoryID: 2},
		},
		Budgets: []domain.Budget{
			{ID: "b1", CategoryID: 1, Amount: Dec("100"), Period: domain.PeriodMonthly},
		},
	}
}

// SeededStore returns a MemoryStore holding the snapshot's four collections.
func SeededStore(t *testing.T, snap *domain.Snapshot) *kv.MemoryStore {
	t.Helper()
	store := kv.NewMemoryStore()
	if err := store.Set(kv.KeyTransactions, snap.Transactions); err != nil {
		t.Fatalf("seed transactions: %v", err)
	}
	if err := store.Set(kv.KeyCategories, snap.Categories); err != nil {
		t.Fatalf("seed categories: %v", err)
	}
	if err := store.Set(kv.KeyRules, snap.Rules); err != nil {
		t.Fatalf("seed rules: %v", err)
	}
	if err := store.Set(kv.KeyBudgets, snap.Budgets); err != nil {
		t.Fatalf("seed budgets: %v", err)
	}
	return store
}

// ErrStoreFailed is returned by FailingStore for keys marked to fail.
var ErrStoreFailed = errors.New("store write failed")

// FailingStore wraps a MemoryStore and fails Set calls for selected keys,
// for exercising the last-known-good behavior of mutations.
type FailingStore struct {
	*kv.MemoryStore
	FailSet map[string]bool
}

// NewFailingStore wraps the given store with no keys failing yet.
func NewFailingStore(inner *kv.MemoryStore) *FailingStore {
	return &FailingStore{MemoryStore: inner, FailSet: make(map[string]bool)}
}

func (f *FailingStore) Set(key string, value any) error {
	if f.FailSet[key] {
		return ErrStoreFailed
	}
	return f.MemoryStore.Set(key, value)
}
