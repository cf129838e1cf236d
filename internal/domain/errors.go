package domain

import "errors"

// Domain errors
var (
	ErrNotFound            = errors.New("resource not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrRuleNotFound        = errors.New("categorization rule not found")
	ErrBudgetNotFound      = errors.New("budget not found")
	ErrSentinelCategory    = errors.New("the uncategorized category cannot be modified")
	ErrEmptyKeyword        = errors.New("rule keyword is required")
	ErrNameRequired        = errors.New("name is required")
	ErrNameTooLong         = errors.New("name exceeds maximum length")
	ErrNotesTooLong        = errors.New("notes exceed maximum length")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrZeroBudget          = errors.New("budget amount must be positive")
	ErrInvalidPeriod       = errors.New("invalid budget period")
	ErrInvalidDate         = errors.New("invalid date")
)

// Validation constants
const (
	MaxCategoryNameLength = 100
	MaxDescriptionLength  = 255
	MaxNotesLength        = 500
	MaxKeywordLength      = 100
)
