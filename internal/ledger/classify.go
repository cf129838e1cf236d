// Package ledger implements the pure aggregation and categorization engine:
// keyword classification, time-range filtering, category and trend statistics,
// and budget progress math. Every function is a referentially transparent
// computation over the collections it receives; nothing in this package keeps
// state between calls.
package ledger

import (
	"strings"

	"github.com/centime/centime-backend/internal/domain"
)

// Classify returns the target category for a transaction description.
//
// Rules are evaluated in slice order and the first rule whose keyword occurs
// in the description wins; matching is a case-insensitive substring search.
// When no rule matches, the uncategorized sentinel is returned.
func Classify(description string, rules []domain.CategoryRule) int32 {
	desc := strings.ToLower(description)
	for _, rule := range rules {
		if rule.Keyword == "" {
			continue
		}
		if strings.Contains(desc, strings.ToLower(rule.Keyword)) {
			return rule.CategoryID
		}
	}
	return domain.UncategorizedID
}
