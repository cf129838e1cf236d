package domain

import "time"

// Snapshot is the full in-memory state of the ledger: the four persisted
// collections. The engine never holds one between calls; the owning service
// passes copies into the pure aggregation functions.
type Snapshot struct {
	Transactions []Transaction  `json:"transactions"`
	Categories   []Category     `json:"categories"`
	Rules        []CategoryRule `json:"categoryRules"`
	Budgets      []Budget       `json:"budgets"`
}

// Clone returns a deep copy of the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	c := &Snapshot{
		Transactions: make([]Transaction, len(s.Transactions)),
		Categories:   make([]Category, len(s.Categories)),
		Rules:        make([]CategoryRule, len(s.Rules)),
		Budgets:      make([]Budget, len(s.Budgets)),
	}
	copy(c.Transactions, s.Transactions)
	copy(c.Categories, s.Categories)
	copy(c.Rules, s.Rules)
	copy(c.Budgets, s.Budgets)
	return c
}

// CategoryByID returns the category with the given id, if present.
func (s *Snapshot) CategoryByID(id int32) (Category, bool) {
	for _, c := range s.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// HasCategory reports whether a category with the given id exists.
func (s *Snapshot) HasCategory(id int32) bool {
	_, ok := s.CategoryByID(id)
	return ok
}

// ExportData is the JSON interchange format for a full ledger export.
type ExportData struct {
	Transactions []Transaction  `json:"transactions"`
	Categories   []Category     `json:"categories"`
	Rules        []CategoryRule `json:"categoryRules"`
	Budgets      []Budget       `json:"budgets"`
	ExportDate   time.Time      `json:"exportDate"`
}
