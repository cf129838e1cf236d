package ledger

import (
	"fmt"
	"time"

	"github.com/centime/centime-backend/internal/domain"
)

// Range selects the active time window for filtering and bucketing.
type Range string

const (
	RangeMonth   Range = "month"
	RangeQuarter Range = "quarter"
	RangeYear    Range = "year"
)

// ParseRange validates a range selector.
func ParseRange(s string) (Range, error) {
	switch Range(s) {
	case RangeMonth, RangeQuarter, RangeYear:
		return Range(s), nil
	}
	return "", fmt.Errorf("%w: unknown range %q", domain.ErrInvalidInput, s)
}

// FilterByRange returns the transactions whose date falls in the same
// calendar period as the reference instant: same month and year, same
// quarter index and year, or same year. The input is never mutated and
// relative order is preserved.
func FilterByRange(txns []domain.Transaction, r Range, ref time.Time) []domain.Transaction {
	refDate := domain.DateOf(ref)
	out := make([]domain.Transaction, 0, len(txns))
	for _, t := range txns {
		if inRange(t.Date, r, refDate) {
			out = append(out, t)
		}
	}
	return out
}

func inRange(d domain.Date, r Range, ref domain.Date) bool {
	switch r {
	case RangeMonth:
		return d.Year == ref.Year && d.Month == ref.Month
	case RangeQuarter:
		return d.Year == ref.Year && d.Quarter() == ref.Quarter()
	case RangeYear:
		return d.Year == ref.Year
	}
	return false
}

// shiftMonth steps back a number of months, wrapping the month index
// modulo 12 and decrementing the year on each wrap past January.
func shiftMonth(year int, month time.Month, back int) (int, time.Month) {
	idx := int(month) - 1 - back
	year += idx / 12
	idx %= 12
	if idx < 0 {
		idx += 12
		year--
	}
	return year, time.Month(idx + 1)
}

// shiftQuarter steps back a number of quarters. quarter is zero-based.
func shiftQuarter(year, quarter, back int) (int, int) {
	idx := quarter - back
	year += idx / 4
	idx %= 4
	if idx < 0 {
		idx += 4
		year--
	}
	return year, idx
}

// Short French month names, as the original bank exports label them.
var monthNames = [12]string{
	"janv.", "févr.", "mars", "avr.", "mai", "juin",
	"juil.", "août", "sept.", "oct.", "nov.", "déc.",
}

func monthLabel(year int, month time.Month) string {
	return fmt.Sprintf("%s %d", monthNames[month-1], year)
}

func quarterLabel(year, quarter int) string {
	return fmt.Sprintf("T%d %d", quarter+1, year)
}
