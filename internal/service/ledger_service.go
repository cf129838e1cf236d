package service

import (
	"fmt"
	"strings"
	"sync"

	"github.com/centime/centime-backend/internal/domain"
	"github.com/centime/centime-backend/internal/ledger"
	"github.com/centime/centime-backend/internal/repository/kv"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerService owns the in-memory snapshot and its persistence. All
// mutations validate first, write the touched collections to the store, and
// only then swap the in-memory state, so a failed mutation leaves the
// snapshot in its last-known-good state. Reads hand out copies; the pure
// engine functions never see the live slices.
//
// A mutex serializes mutations because the HTTP layer is concurrent; the
// engine itself imposes no caching or invalidation contract.
type LedgerService struct {
	mu    sync.RWMutex
	store kv.Store
	snap  *domain.Snapshot
}

// NewLedgerService loads the four collections from the store, seeding the
// default category set into an empty ledger and guaranteeing the
// uncategorized sentinel exists.
func NewLedgerService(store kv.Store) (*LedgerService, error) {
	snap := &domain.Snapshot{}
	if _, err := store.Get(kv.KeyTransactions, &snap.Transactions); err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	if _, err := store.Get(kv.KeyCategories, &snap.Categories); err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	if _, err := store.Get(kv.KeyRules, &snap.Rules); err != nil {
		return nil, fmt.Errorf("load category rules: %w", err)
	}
	if _, err := store.Get(kv.KeyBudgets, &snap.Budgets); err != nil {
		return nil, fmt.Errorf("load budgets: %w", err)
	}

	if len(snap.Categories) == 0 {
		snap.Categories = domain.DefaultCategories()
	} else if !snap.HasCategory(domain.UncategorizedID) {
		snap.Categories = append(snap.Categories, domain.UncategorizedCategory())
	}
	if err := store.Set(kv.KeyCategories, snap.Categories); err != nil {
		return nil, fmt.Errorf("persist categories: %w", err)
	}

	return &LedgerService{store: store, snap: snap}, nil
}

// Snapshot returns a deep copy of the current state.
func (s *LedgerService) Snapshot() *domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Clone()
}

// Transactions returns a copy of the transaction collection.
func (s *LedgerService) Transactions() []domain.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Transaction, len(s.snap.Transactions))
	copy(out, s.snap.Transactions)
	return out
}

// Categories returns a copy of the category collection.
func (s *LedgerService) Categories() []domain.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Category, len(s.snap.Categories))
	copy(out, s.snap.Categories)
	return out
}

// Rules returns a copy of the categorization rules, in match order.
func (s *LedgerService) Rules() []domain.CategoryRule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.CategoryRule, len(s.snap.Rules))
	copy(out, s.snap.Rules)
	return out
}

// Budgets returns a copy of the budget collection.
func (s *LedgerService) Budgets() []domain.Budget {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Budget, len(s.snap.Budgets))
	copy(out, s.snap.Budgets)
	return out
}

// CreateTransactionInput holds the input for a manual transaction entry.
type CreateTransactionInput struct {
	Date        domain.Date
	Amount      decimal.Decimal
	Description string
	CategoryID  int32 // 0 means classify via the rule engine
	Notes       string
}

// CreateTransaction adds a manually entered transaction. A zero date
// defaults to today; a zero category falls back to the rule engine and then
// the sentinel.
func (s *LedgerService) CreateTransaction(input CreateTransactionInput) (domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	description := strings.TrimSpace(input.Description)
	if len(description) > domain.MaxDescriptionLength {
		return domain.Transaction{}, domain.ErrNameTooLong
	}
	if len(input.Notes) > domain.MaxNotesLength {
		return domain.Transaction{}, domain.ErrNotesTooLong
	}

	categoryID := input.CategoryID
	if categoryID == 0 {
		categoryID = ledger.Classify(description, s.snap.Rules)
	} else if !s.snap.HasCategory(categoryID) {
		return domain.Transaction{}, domain.ErrCategoryNotFound
	}

	date := input.Date
	if date.IsZero() {
		date = domain.DateOf(nowFunc())
	}

	txn := domain.Transaction{
		ID:          uuid.NewString(),
		Date:        date,
		Amount:      input.Amount,
		Description: description,
		CategoryID:  categoryID,
		Notes:       input.Notes,
	}

	txns := append(copyTransactions(s.snap.Transactions), txn)
	if err := s.store.Set(kv.KeyTransactions, txns); err != nil {
		return domain.Transaction{}, fmt.Errorf("persist transactions: %w", err)
	}
	s.snap.Transactions = txns
	return txn, nil
}

// UpdateTransactionInput holds the optional fields of a transaction edit.
type UpdateTransactionInput struct {
	Date        *domain.Date
	Amount      *decimal.Decimal
	Description *string
	CategoryID  *int32
	Notes       *string
}

// UpdateTransaction edits any field of an existing transaction.
func (s *LedgerService) UpdateTransaction(id string, input UpdateTransactionInput) (domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, t := range s.snap.Transactions {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.Transaction{}, domain.ErrTransactionNotFound
	}

	txn := s.snap.Transactions[idx]
	if input.Date != nil {
		txn.Date = *input.Date
	}
	if input.Amount != nil {
		txn.Amount = *input.Amount
	}
	if input.Description != nil {
		desc := strings.TrimSpace(*input.Description)
		if len(desc) > domain.MaxDescriptionLength {
			return domain.Transaction{}, domain.ErrNameTooLong
		}
		txn.Description = desc
	}
	if input.CategoryID != nil {
		if !s.snap.HasCategory(*input.CategoryID) {
			return domain.Transaction{}, domain.ErrCategoryNotFound
		}
		txn.CategoryID = *input.CategoryID
	}
	if input.Notes != nil {
		if len(*input.Notes) > domain.MaxNotesLength {
			return domain.Transaction{}, domain.ErrNotesTooLong
		}
		txn.Notes = *input.Notes
	}

	txns := copyTransactions(s.snap.Transactions)
	txns[idx] = txn
	if err := s.store.Set(kv.KeyTransactions, txns); err != nil {
		return domain.Transaction{}, fmt.Errorf("persist transactions: %w", err)
	}
	s.snap.Transactions = txns
	return txn, nil
}

// DeleteTransaction removes a transaction by id.
func (s *LedgerService) DeleteTransaction(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	txns := make([]domain.Transaction, 0, len(s.snap.Transactions))
	found := false
	for _, t := range s.snap.Transactions {
		if t.ID == id {
			found = true
			continue
		}
		txns = append(txns, t)
	}
	if !found {
		return domain.ErrTransactionNotFound
	}
	if err := s.store.Set(kv.KeyTransactions, txns); err != nil {
		return fmt.Errorf("persist transactions: %w", err)
	}
	s.snap.Transactions = txns
	return nil
}

// AppendTransactions appends an imported batch and persists it. Existing
// transactions are untouched.
func (s *LedgerService) AppendTransactions(batch []domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	txns := append(copyTransactions(s.snap.Transactions), batch...)
	if err := s.store.Set(kv.KeyTransactions, txns); err != nil {
		return fmt.Errorf("persist transactions: %w", err)
	}
	s.snap.Transactions = txns
	return nil
}

// CreateCategory adds a category with the next free id.
func (s *LedgerService) CreateCategory(name, color, icon string) (domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Category{}, domain.ErrNameRequired
	}
	if len(name) > domain.MaxCategoryNameLength {
		return domain.Category{}, domain.ErrNameTooLong
	}

	var maxID int32
	for _, c := range s.snap.Categories {
		if c.ID > maxID {
			maxID = c.ID
		}
	}
	category := domain.Category{ID: maxID + 1, Name: name, Color: color, Icon: icon}

	categories := append(copyCategories(s.snap.Categories), category)
	if err := s.store.Set(kv.KeyCategories, categories); err != nil {
		return domain.Category{}, fmt.Errorf("persist categories: %w", err)
	}
	s.snap.Categories = categories
	return category, nil
}

// UpdateCategoryInput holds the optional fields of a category edit.
type UpdateCategoryInput struct {
	Name  *string
	Color *string
	Icon  *string
}

// UpdateCategory renames or restyles a category. The sentinel is immutable.
func (s *LedgerService) UpdateCategory(id int32, input UpdateCategoryInput) (domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == domain.UncategorizedID {
		return domain.Category{}, domain.ErrSentinelCategory
	}

	idx := -1
	for i, c := range s.snap.Categories {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.Category{}, domain.ErrCategoryNotFound
	}

	category := s.snap.Categories[idx]
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return domain.Category{}, domain.ErrNameRequired
		}
		if len(name) > domain.MaxCategoryNameLength {
			return domain.Category{}, domain.ErrNameTooLong
		}
		category.Name = name
	}
	if input.Color != nil {
		category.Color = *input.Color
	}
	if input.Icon != nil {
		category.Icon = *input.Icon
	}

	categories := copyCategories(s.snap.Categories)
	categories[idx] = category
	if err := s.store.Set(kv.KeyCategories, categories); err != nil {
		return domain.Category{}, fmt.Errorf("persist categories: %w", err)
	}
	s.snap.Categories = categories
	return category, nil
}

// DeleteCategory removes a category and cascades: its transactions are
// reassigned to the uncategorized sentinel, and its rules and budgets are
// removed so nothing is left referencing a missing category.
func (s *LedgerService) DeleteCategory(id int32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == domain.UncategorizedID {
		return domain.ErrSentinelCategory
	}
	if !s.snap.HasCategory(id) {
		return domain.ErrCategoryNotFound
	}

	categories := make([]domain.Category, 0, len(s.snap.Categories)-1)
	for _, c := range s.snap.Categories {
		if c.ID != id {
			categories = append(categories, c)
		}
	}

	txns := copyTransactions(s.snap.Transactions)
	for i := range txns {
		if txns[i].CategoryID == id {
			txns[i].CategoryID = domain.UncategorizedID
		}
	}

	rules := make([]domain.CategoryRule, 0, len(s.snap.Rules))
	for _, r := range s.snap.Rules {
		if r.CategoryID != id {
			rules = append(rules, r)
		}
	}

	budgets := make([]domain.Budget, 0, len(s.snap.Budgets))
	for _, b := range s.snap.Budgets {
		if b.CategoryID != id {
			budgets = append(budgets, b)
		}
	}

	// Dependent collections first, the category list last: a failed write
	// mid-sequence must never leave persisted state referencing a removed
	// category.
	if err := s.store.Set(kv.KeyTransactions, txns); err != nil {
		return fmt.Errorf("persist transactions: %w", err)
	}
	if err := s.store.Set(kv.KeyRules, rules); err != nil {
		return fmt.Errorf("persist category rules: %w", err)
	}
	if err := s.store.Set(kv.KeyBudgets, budgets); err != nil {
		return fmt.Errorf("persist budgets: %w", err)
	}
	if err := s.store.Set(kv.KeyCategories, categories); err != nil {
		return fmt.Errorf("persist categories: %w", err)
	}

	s.snap.Categories = categories
	s.snap.Transactions = txns
	s.snap.Rules = rules
	s.snap.Budgets = budgets
	return nil
}

// CreateRule appends a categorization rule. Later rules never shadow earlier
// ones: first match wins in creation order.
func (s *LedgerService) CreateRule(keyword string, categoryID int32) (domain.CategoryRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return domain.CategoryRule{}, domain.ErrEmptyKeyword
	}
	if len(keyword) > domain.MaxKeywordLength {
		return domain.CategoryRule{}, domain.ErrNameTooLong
	}
	if !s.snap.HasCategory(categoryID) {
		return domain.CategoryRule{}, domain.ErrCategoryNotFound
	}

	rule := domain.CategoryRule{ID: uuid.NewString(), Keyword: keyword, CategoryID: categoryID}
	rules := append(copyRules(s.snap.Rules), rule)
	if err := s.store.Set(kv.KeyRules, rules); err != nil {
		return domain.CategoryRule{}, fmt.Errorf("persist category rules: %w", err)
	}
	s.snap.Rules = rules
	return rule, nil
}

// DeleteRule removes a categorization rule by id.
func (s *LedgerService) DeleteRule(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rules := make([]domain.CategoryRule, 0, len(s.snap.Rules))
	found := false
	for _, r := range s.snap.Rules {
		if r.ID == id {
			found = true
			continue
		}
		rules = append(rules, r)
	}
	if !found {
		return domain.ErrRuleNotFound
	}
	if err := s.store.Set(kv.KeyRules, rules); err != nil {
		return fmt.Errorf("persist category rules: %w", err)
	}
	s.snap.Rules = rules
	return nil
}

// UpsertBudget creates or updates the budget for a category. A category has
// at most one canonical budget: when one exists it is updated in place
// instead of creating a duplicate. The sentinel cannot be budgeted and the
// amount must be positive.
func (s *LedgerService) UpsertBudget(categoryID int32, amount decimal.Decimal, period domain.BudgetPeriod) (domain.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if categoryID == domain.UncategorizedID {
		return domain.Budget{}, domain.ErrSentinelCategory
	}
	if !s.snap.HasCategory(categoryID) {
		return domain.Budget{}, domain.ErrCategoryNotFound
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return domain.Budget{}, domain.ErrZeroBudget
	}
	if !period.Valid() {
		return domain.Budget{}, domain.ErrInvalidPeriod
	}

	budgets := copyBudgets(s.snap.Budgets)
	var budget domain.Budget
	updated := false
	for i, b := range budgets {
		if b.CategoryID == categoryID {
			budgets[i].Amount = amount
			budgets[i].Period = period
			budget = budgets[i]
			updated = true
			break
		}
	}
	if !updated {
		budget = domain.Budget{ID: uuid.NewString(), CategoryID: categoryID, Amount: amount, Period: period}
		budgets = append(budgets, budget)
	}

	if err := s.store.Set(kv.KeyBudgets, budgets); err != nil {
		return domain.Budget{}, fmt.Errorf("persist budgets: %w", err)
	}
	s.snap.Budgets = budgets
	return budget, nil
}

// DeleteBudget removes a budget by id.
func (s *LedgerService) DeleteBudget(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	budgets := make([]domain.Budget, 0, len(s.snap.Budgets))
	found := false
	for _, b := range s.snap.Budgets {
		if b.ID == id {
			found = true
			continue
		}
		budgets = append(budgets, b)
	}
	if !found {
		return domain.ErrBudgetNotFound
	}
	if err := s.store.Set(kv.KeyBudgets, budgets); err != nil {
		return fmt.Errorf("persist budgets: %w", err)
	}
	s.snap.Budgets = budgets
	return nil
}

// Replace swaps in a full snapshot, used by the JSON import. The sentinel is
// re-appended when the imported categories lack it.
func (s *LedgerService) Replace(snap *domain.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := snap.Clone()
	if !next.HasCategory(domain.UncategorizedID) {
		next.Categories = append(next.Categories, domain.UncategorizedCategory())
	}

	// Persist the union of the old and new category sets before touching the
	// dependent collections, and the final set only after them: whichever
	// write fails, every persisted transaction, rule and budget still
	// resolves its category.
	merged := copyCategories(s.snap.Categories)
	for _, c := range next.Categories {
		exists := false
		for _, m := range merged {
			if m.ID == c.ID {
				exists = true
				break
			}
		}
		if !exists {
			merged = append(merged, c)
		}
	}
	if err := s.store.Set(kv.KeyCategories, merged); err != nil {
		return fmt.Errorf("persist categories: %w", err)
	}
	if err := s.store.Set(kv.KeyTransactions, next.Transactions); err != nil {
		return fmt.Errorf("persist transactions: %w", err)
	}
	if err := s.store.Set(kv.KeyRules, next.Rules); err != nil {
		return fmt.Errorf("persist category rules: %w", err)
	}
	if err := s.store.Set(kv.KeyBudgets, next.Budgets); err != nil {
		return fmt.Errorf("persist budgets: %w", err)
	}
	if err := s.store.Set(kv.KeyCategories, next.Categories); err != nil {
		return fmt.Errorf("persist categories: %w", err)
	}
	s.snap = next
	return nil
}

// Reset clears all four collections and reseeds the default categories.
func (s *LedgerService) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := &domain.Snapshot{
		Transactions: []domain.Transaction{},
		Categories:   domain.DefaultCategories(),
		Rules:        []domain.CategoryRule{},
		Budgets:      []domain.Budget{},
	}
	// Clear the dependent collections before rewriting the category list so a
	// partial reset never persists references to dropped categories.
	if err := s.store.Set(kv.KeyTransactions, next.Transactions); err != nil {
		return fmt.Errorf("persist transactions: %w", err)
	}
	if err := s.store.Set(kv.KeyRules, next.Rules); err != nil {
		return fmt.Errorf("persist category rules: %w", err)
	}
	if err := s.store.Set(kv.KeyBudgets, next.Budgets); err != nil {
		return fmt.Errorf("persist budgets: %w", err)
	}
	if err := s.store.Set(kv.KeyCategories, next.Categories); err != nil {
		return fmt.Errorf("persist categories: %w", err)
	}
	s.snap = next
	return nil
}

func copyTransactions(in []domain.Transaction) []domain.Transaction {
	out := make([]domain.Transaction, len(in))
	copy(out, in)
	return out
}

func copyCategories(in []domain.Category) []domain.Category {
	out := make([]domain.Category, len(in))
	copy(out, in)
	return out
}

func copyRules(in []domain.CategoryRule) []domain.CategoryRule {
	out := make([]domain.CategoryRule, len(in))
	copy(out, in)
	return out
}

func copyBudgets(in []domain.Budget) []domain.Budget {
	out := make([]domain.Budget, len(in))
	copy(out, in)
	return out
}
