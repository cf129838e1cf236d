// Package csvimport turns raw bank CSV exports into ledger transactions.
//
// The parser is lenient about the shape of the file (header names are matched
// against a small alias table, missing columns get defaults) but strict about
// row content: any row that cannot be typed fails the entire import. Partial
// silent corruption of financial data is worse than an all-or-nothing failure.
package csvimport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/centime/centime-backend/internal/domain"
	"github.com/centime/centime-backend/internal/ledger"
	"github.com/shopspring/decimal"
)

// RowError describes one problem found while typing a CSV row. Row is the
// 1-based data row number, the header excluded.
type RowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ParseError aborts an import wholesale and carries every row-level problem
// found before giving up.
type ParseError struct {
	Rows []RowError
}

func (e *ParseError) Error() string {
	if len(e.Rows) == 1 {
		r := e.Rows[0]
		return fmt.Sprintf("csv import failed: row %d, field %s: %s", r.Row, r.Field, r.Message)
	}
	return fmt.Sprintf("csv import failed: %d invalid rows", len(e.Rows))
}

// Header aliases per field, matched case-insensitively.
var (
	dateAliases        = []string{"date"}
	amountAliases      = []string{"amount", "montant"}
	descriptionAliases = []string{"description", "libelle"}
)

// Parse reads a bank CSV export and returns the new transactions in row
// order. Each row gets an identifier derived from the ingestion instant and
// its index, defaults to the uncategorized sentinel, and is then run through
// the rule engine. Existing transactions are never touched; appending the
// result to the snapshot is the caller's job.
//
// On any row-level type error the whole import fails with a *ParseError
// listing every bad row; no transactions are returned.
func Parse(r io.Reader, rules []domain.CategoryRule, now time.Time) ([]domain.Transaction, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // ragged rows are fine, missing cells default
	records, err := reader.ReadAll()
	if err != nil {
		return nil, structuralError(err)
	}
	if len(records) == 0 {
		return nil, &ParseError{Rows: []RowError{{Row: 0, Field: "header", Message: "empty file"}}}
	}

	dateCol := findColumn(records[0], dateAliases)
	amountCol := findColumn(records[0], amountAliases)
	descCol := findColumn(records[0], descriptionAliases)

	defaultDate := domain.DateOf(now)
	batch := now.UnixMilli()

	var rowErrs []RowError
	txns := make([]domain.Transaction, 0, len(records)-1)
	for i, rec := range records[1:] {
		rowNum := i + 1

		date := defaultDate
		if cell := field(rec, dateCol); cell != "" {
			date, err = domain.ParseDate(cell)
			if err != nil {
				rowErrs = append(rowErrs, RowError{Row: rowNum, Field: "date", Message: err.Error()})
				continue
			}
		}

		amount := decimal.Zero
		if cell := field(rec, amountCol); cell != "" {
			amount, err = parseAmount(cell)
			if err != nil {
				rowErrs = append(rowErrs, RowError{Row: rowNum, Field: "amount", Message: err.Error()})
				continue
			}
		}

		description := field(rec, descCol)

		txns = append(txns, domain.Transaction{
			ID:          fmt.Sprintf("import-%d-%d", batch, i),
			Date:        date,
			Amount:      amount,
			Description: description,
			CategoryID:  ledger.Classify(description, rules),
		})
	}

	if len(rowErrs) > 0 {
		return nil, &ParseError{Rows: rowErrs}
	}
	return txns, nil
}

// parseAmount parses a signed decimal amount, accepting both dot and comma
// decimal separators as French bank exports use either.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", domain.ErrInvalidAmount, s)
	}
	return amount, nil
}

// findColumn returns the index of the first header cell matching one of the
// aliases, or -1 when the field is absent.
func findColumn(header []string, aliases []string) int {
	for i, cell := range header {
		name := strings.ToLower(strings.TrimSpace(cell))
		for _, alias := range aliases {
			if name == alias {
				return i
			}
		}
	}
	return -1
}

func field(rec []string, col int) string {
	if col < 0 || col >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[col])
}

// structuralError converts an encoding/csv error into a ParseError, keeping
// the line number when the reader reports one.
func structuralError(err error) *ParseError {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return &ParseError{Rows: []RowError{{
			Row:     parseErr.Line - 1,
			Field:   "csv",
			Message: parseErr.Err.Error(),
		}}}
	}
	return &ParseError{Rows: []RowError{{Row: 0, Field: "csv", Message: err.Error()}}}
}
