package domain

import "github.com/shopspring/decimal"

// Window is a time scope for aggregation: all-time, one calendar year, or
// one calendar year+month. The AnyYear/AnyMonth sentinels mean "no
// constraint at this granularity".
type Window struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// AllTime is the unconstrained window.
func AllTime() Window {
	return Window{Year: AnyYear, Month: AnyMonth}
}

// Filter translates the window into a ledger filter.
func (w Window) Filter() RecordFilter {
	f := NewRecordFilter()
	f.Year = w.Year
	f.Month = w.Month
	return f
}

// RankingEntry is one row of a descending-sorted totals summary, grouped by
// method name or method category.
type RankingEntry struct {
	Label       string `json:"label"`
	Icon        string `json:"icon"`
	TotalAmount int64  `json:"totalAmount"`
}

// RankingGroup selects how ranking rows are pooled.
type RankingGroup string

const (
	GroupByMethod   RankingGroup = "METHOD"
	GroupByCategory RankingGroup = "CATEGORY"
)

// Valid reports whether the grouping is one of the known modes.
func (g RankingGroup) Valid() bool {
	return g == GroupByMethod || g == GroupByCategory
}

// IncomeExpenseSplit carries window totals plus the display percentages.
// Percentages are rounded to the nearest integer for labels only; the
// stored totals stay exact.
type IncomeExpenseSplit struct {
	TotalIncome    int64 `json:"totalIncome"`
	TotalExpense   int64 `json:"totalExpense"`
	IncomePercent  int   `json:"incomePercent"`
	ExpensePercent int   `json:"expensePercent"`
}

// NewIncomeExpenseSplit computes display percentages from totals. An empty
// window maps to 100% expense / 0% income: a fixed empty-state display
// convention, not merely a division-by-zero guard.
func NewIncomeExpenseSplit(totalIncome, totalExpense int64) IncomeExpenseSplit {
	split := IncomeExpenseSplit{TotalIncome: totalIncome, TotalExpense: totalExpense}
	total := totalIncome + totalExpense
	if total == 0 {
		split.ExpensePercent = 100
		return split
	}
	hundred := decimal.NewFromInt(100)
	totalDec := decimal.NewFromInt(total)
	incomePct := decimal.NewFromInt(totalIncome).Mul(hundred).Div(totalDec).Round(0)
	expensePct := decimal.NewFromInt(totalExpense).Mul(hundred).Div(totalDec).Round(0)
	split.IncomePercent = int(incomePct.IntPart())
	split.ExpensePercent = int(expensePct.IntPart())
	return split
}

// MarkerLevel is the calendar-day marker opacity tier.
type MarkerLevel string

const (
	MarkerNone MarkerLevel = "NONE"
	MarkerDim  MarkerLevel = "DIM"  // an expense exists for the day, but not on the selected method
	MarkerFull MarkerLevel = "FULL" // an expense exists for the selected method (or any, when unscoped)
)

// DayMarkers is the presence state of one calendar day. Income markers only
// exist for the all-methods selection and only at full opacity; a
// method-scoped income marker intentionally does not exist.
type DayMarkers struct {
	Day     int         `json:"day"`
	Expense MarkerLevel `json:"expense"`
	Income  bool        `json:"income"`
}
