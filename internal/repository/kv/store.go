// Package kv provides the persistence boundary: a synchronous string-key
// store holding JSON-serializable values with last-write-wins semantics.
// The engine reads and writes its four named collections through this
// interface and never depends on the storage technology behind it.
package kv

// Collection keys used by the snapshot layer.
const (
	KeyTransactions = "transactions"
	KeyCategories   = "categories"
	KeyRules        = "categoryRules"
	KeyBudgets      = "budgets"
)

// Store is a generic get/set key-value store. Get reports whether the key
// existed; a missing key is not an error. Set replaces any previous value.
type Store interface {
	Get(key string, dest any) (bool, error)
	Set(key string, value any) error
	Delete(key string) error
	Close() error
}
