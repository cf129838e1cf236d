package ledger

import (
	"testing"
	"time"

	"github.com/centime/centime-backend/internal/domain"
	"github.com/shopspring/decimal"
)

func dayTxn(id string, year int, month time.Month, day int) domain.Transaction {
	return domain.Transaction{
		ID:     id,
		Date:   domain.NewDate(year, month, day),
		Amount: decimal.NewFromInt(-1),
	}
}

func TestParseRange(t *testing.T) {
	for _, valid := range []string{"month", "quarter", "year"} {
		if _, err := ParseRange(valid); err != nil {
			t.Errorf("ParseRange(%q) unexpected error: %v", valid, err)
		}
	}

	if _, err := ParseRange("week"); err == nil {
		t.Error("ParseRange(\"week\") expected error")
	}
	if _, err := ParseRange(""); err == nil {
		t.Error("ParseRange(\"\") expected error")
	}
}

func TestFilterByRange_Month(t *testing.T) {
	ref := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	txns := []domain.Transaction{
		dayTxn("first", 2024, time.March, 1),
		dayTxn("last", 2024, time.March, 31),
		dayTxn("prev", 2024, time.February, 29),
		dayTxn("next", 2024, time.April, 1),
		dayTxn("lastyear", 2023, time.March, 15),
	}

	got := FilterByRange(txns, RangeMonth, ref)
	if len(got) != 2 {
		t.Fatalf("FilterByRange(month) returned %d transactions, want 2", len(got))
	}
	if got[0].ID != "first" || got[1].ID != "last" {
		t.Errorf("FilterByRange(month) = [%s %s], want order preserved [first last]", got[0].ID, got[1].ID)
	}
}

func TestFilterByRange_Quarter(t *testing.T) {
	// Reference in Q2: April through June of the same year.
	ref := time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC)
	txns := []domain.Transaction{
		dayTxn("april", 2024, time.April, 1),
		dayTxn("june", 2024, time.June, 30),
		dayTxn("march", 2024, time.March, 31),
		dayTxn("july", 2024, time.July, 1),
		dayTxn("q2-lastyear", 2023, time.May, 10),
	}

	got := FilterByRange(txns, RangeQuarter, ref)
	if len(got) != 2 {
		t.Fatalf("FilterByRange(quarter) returned %d transactions, want 2", len(got))
	}
	if got[0].ID != "april" || got[1].ID != "june" {
		t.Errorf("FilterByRange(quarter) = [%s %s], want [april june]", got[0].ID, got[1].ID)
	}
}

func TestFilterByRange_Year(t *testing.T) {
	ref := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)
	txns := []domain.Transaction{
		dayTxn("jan", 2024, time.January, 1),
		dayTxn("dec", 2024, time.December, 31),
		dayTxn("before", 2023, time.December, 31),
		dayTxn("after", 2025, time.January, 1),
	}

	got := FilterByRange(txns, RangeYear, ref)
	if len(got) != 2 {
		t.Fatalf("FilterByRange(year) returned %d transactions, want 2", len(got))
	}
}

func TestFilterByRange_DoesNotMutateInput(t *testing.T) {
	ref := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	txns := []domain.Transaction{
		dayTxn("a", 2024, time.March, 1),
		dayTxn("b", 2024, time.April, 1),
	}

	FilterByRange(txns, RangeMonth, ref)
	if txns[0].ID != "a" || txns[1].ID != "b" {
		t.Error("FilterByRange mutated its input")
	}
}

func TestShiftMonth(t *testing.T) {
	tests := []struct {
		name      string
		year      int
		month     time.Month
		back      int
		wantYear  int
		wantMonth time.Month
	}{
		{"no shift", 2024, time.June, 0, 2024, time.June},
		{"within year", 2024, time.June, 3, 2024, time.March},
		{"wrap to december", 2024, time.January, 1, 2023, time.December},
		{"wrap past january", 2024, time.February, 5, 2023, time.September},
		{"full year back", 2024, time.June, 12, 2023, time.June},
		{"two years back", 2024, time.March, 26, 2022, time.January},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			year, month := shiftMonth(tt.year, tt.month, tt.back)
			if year != tt.wantYear || month != tt.wantMonth {
				t.Errorf("shiftMonth(%d, %v, %d) = (%d, %v), want (%d, %v)",
					tt.year, tt.month, tt.back, year, month, tt.wantYear, tt.wantMonth)
			}
		})
	}
}

func TestShiftQuarter(t *testing.T) {
	tests := []struct {
		name        string
		year        int
		quarter     int
		back        int
		wantYear    int
		wantQuarter int
	}{
		{"no shift", 2024, 2, 0, 2024, 2},
		{"within year", 2024, 3, 2, 2024, 1},
		{"wrap to q4", 2024, 0, 1, 2023, 3},
		{"two years back", 2024, 1, 8, 2022, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			year, quarter := shiftQuarter(tt.year, tt.quarter, tt.back)
			if year != tt.wantYear || quarter != tt.wantQuarter {
				t.Errorf("shiftQuarter(%d, %d, %d) = (%d, %d), want (%d, %d)",
					tt.year, tt.quarter, tt.back, year, quarter, tt.wantYear, tt.wantQuarter)
			}
		})
	}
}

func TestMonthLabel_French(t *testing.T) {
	if got := monthLabel(2024, time.January); got != "janv. 2024" {
		t.Errorf("monthLabel = %q, want %q", got, "janv. 2024")
	}
	if got := monthLabel(2024, time.August); got != "août 2024" {
		t.Errorf("monthLabel = %q, want %q", got, "août 2024")
	}
}

func TestQuarterLabel(t *testing.T) {
	if got := quarterLabel(2024, 0); got != "T1 2024" {
		t.Errorf("quarterLabel = %q, want %q", got, "T1 2024")
	}
	if got := quarterLabel(2023, 3); got != "T4 2023" {
		t.Errorf("quarterLabel = %q, want %q", got, "T4 2023")
	}
}
