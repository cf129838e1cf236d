package ledger

import (
	"fmt"
	"sort"
	"time"

	"github.com/centime/centime-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// CategoryTotal aggregates the debit transactions of one category.
type CategoryTotal struct {
	CategoryID int32           `json:"categoryId"`
	Name       string          `json:"name"`
	Color      string          `json:"color"`
	Total      decimal.Decimal `json:"total"`
	Count      int             `json:"count"`
	Average    decimal.Decimal `json:"average"`
	Min        decimal.Decimal `json:"min"`
	Max        decimal.Decimal `json:"max"`
}

// CategoryTotals sums the absolute value of debit transactions per category.
// Categories without any debit activity are excluded and the result is sorted
// by total descending. Min and max are zero when a category has no entries,
// never an unresolved sentinel value. Transactions referencing an unknown
// category contribute nothing.
func CategoryTotals(txns []domain.Transaction, categories []domain.Category) []CategoryTotal {
	byID := make(map[int32]*CategoryTotal, len(categories))
	for _, c := range categories {
		byID[c.ID] = &CategoryTotal{CategoryID: c.ID, Name: c.Name, Color: c.Color}
	}

	for _, t := range txns {
		if !t.IsExpense() {
			continue
		}
		entry, ok := byID[t.CategoryID]
		if !ok {
			continue
		}
		amount := t.Amount.Abs()
		entry.Total = entry.Total.Add(amount)
		if entry.Count == 0 || amount.LessThan(entry.Min) {
			entry.Min = amount
		}
		if amount.GreaterThan(entry.Max) {
			entry.Max = amount
		}
		entry.Count++
	}

	result := make([]CategoryTotal, 0, len(byID))
	for _, entry := range byID {
		if entry.Count == 0 {
			continue
		}
		entry.Average = entry.Total.Div(decimal.NewFromInt(int64(entry.Count)))
		result = append(result, *entry)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].Total.Equal(result[j].Total) {
			return result[i].Total.GreaterThan(result[j].Total)
		}
		return result[i].CategoryID < result[j].CategoryID
	})
	return result
}

// TrendPoint is one month of income and expense totals.
type TrendPoint struct {
	Label   string          `json:"label"`
	Year    int             `json:"year"`
	Month   time.Month      `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// MonthlyTrend computes income and expense totals for the trailing window of
// months ending at the reference instant, across all transactions. Buckets
// are ordered chronologically ascending and every month in the window is
// present, with zero totals when it saw no activity.
func MonthlyTrend(txns []domain.Transaction, months int, ref time.Time) []TrendPoint {
	if months <= 0 {
		return nil
	}
	refDate := domain.DateOf(ref)

	points := make([]TrendPoint, 0, months)
	index := make(map[[2]int]*TrendPoint, months)
	for back := months - 1; back >= 0; back-- {
		year, month := shiftMonth(refDate.Year, refDate.Month, back)
		points = append(points, TrendPoint{
			Label:   monthLabel(year, month),
			Year:    year,
			Month:   month,
			Income:  decimal.Zero,
			Expense: decimal.Zero,
		})
		index[[2]int{year, int(month)}] = &points[len(points)-1]
	}

	for _, t := range txns {
		point, ok := index[[2]int{t.Date.Year, int(t.Date.Month)}]
		if !ok {
			continue
		}
		if t.IsExpense() {
			point.Expense = point.Expense.Add(t.Amount.Abs())
		} else {
			point.Income = point.Income.Add(t.Amount)
		}
	}
	return points
}

// Trailing bucket counts for the per-category trend.
const (
	trendMonthBuckets   = 6
	trendQuarterBuckets = 8
	trendTopCategories  = 5
)

// TrendBucket is one time bucket of per-category spend, keyed by category
// name so the buckets can feed a multi-series chart directly.
type TrendBucket struct {
	Label  string                     `json:"label"`
	Period string                     `json:"period"`
	Values map[string]decimal.Decimal `json:"values"`
}

// CategoryTrend buckets debit spend by period for the top spending
// categories. A month range produces six trailing monthly buckets; quarter
// and year ranges produce eight trailing quarterly buckets. Series are the
// top five categories by debit spend across the whole window, and buckets are
// ordered chronologically ascending.
func CategoryTrend(txns []domain.Transaction, categories []domain.Category, r Range, ref time.Time) ([]TrendBucket, []string) {
	refDate := domain.DateOf(ref)

	type periodKey struct{ year, sub int }
	var keys []periodKey
	var buckets []TrendBucket
	monthly := r == RangeMonth

	if monthly {
		for back := trendMonthBuckets - 1; back >= 0; back-- {
			year, month := shiftMonth(refDate.Year, refDate.Month, back)
			keys = append(keys, periodKey{year, int(month)})
			buckets = append(buckets, TrendBucket{
				Label:  monthLabel(year, month),
				Period: domain.NewDate(year, month, 1).Time().Format("2006-01"),
				Values: make(map[string]decimal.Decimal),
			})
		}
	} else {
		for back := trendQuarterBuckets - 1; back >= 0; back-- {
			year, quarter := shiftQuarter(refDate.Year, refDate.Quarter(), back)
			keys = append(keys, periodKey{year, quarter})
			buckets = append(buckets, TrendBucket{
				Label:  quarterLabel(year, quarter),
				Period: fmt.Sprintf("%d-Q%d", year, quarter+1),
				Values: make(map[string]decimal.Decimal),
			})
		}
	}

	bucketIdx := make(map[periodKey]int, len(keys))
	for i, k := range keys {
		bucketIdx[k] = i
	}

	nameByID := make(map[int32]string, len(categories))
	for _, c := range categories {
		nameByID[c.ID] = c.Name
	}

	windowTotals := make(map[int32]decimal.Decimal)
	type cell struct {
		bucket int
		id     int32
	}
	sums := make(map[cell]decimal.Decimal)
	for _, t := range txns {
		if !t.IsExpense() {
			continue
		}
		if _, known := nameByID[t.CategoryID]; !known {
			continue
		}
		key := periodKey{t.Date.Year, int(t.Date.Month)}
		if !monthly {
			key.sub = t.Date.Quarter()
		}
		i, ok := bucketIdx[key]
		if !ok {
			continue
		}
		amount := t.Amount.Abs()
		windowTotals[t.CategoryID] = windowTotals[t.CategoryID].Add(amount)
		sums[cell{i, t.CategoryID}] = sums[cell{i, t.CategoryID}].Add(amount)
	}

	top := topCategories(windowTotals, trendTopCategories)
	series := make([]string, 0, len(top))
	for _, id := range top {
		series = append(series, nameByID[id])
	}

	for i := range buckets {
		for _, id := range top {
			buckets[i].Values[nameByID[id]] = sums[cell{i, id}]
		}
	}
	return buckets, series
}

// topCategories returns up to n category ids ordered by descending total.
func topCategories(totals map[int32]decimal.Decimal, n int) []int32 {
	ids := make([]int32, 0, len(totals))
	for id := range totals {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if !totals[ids[i]].Equal(totals[ids[j]]) {
			return totals[ids[i]].GreaterThan(totals[ids[j]])
		}
		return ids[i] < ids[j]
	})
	if len(ids) > n {
		ids = ids[:n]
	}
	return ids
}
