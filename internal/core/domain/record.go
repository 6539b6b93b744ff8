package domain

import "time"

// RecordKind indicates whether a record is an expense or an income entry.
type RecordKind string

const (
	Expense RecordKind = "EXPENSE"
	Income  RecordKind = "INCOME"
)

// Record represents a single financial record in the ledger. Amounts are
// whole yen; Points is frozen at creation time and is never recomputed when
// the method's point rule later changes.
type Record struct {
	RecordID  string     `json:"recordID"`  // Primary Key (UUID)
	Date      time.Time  `json:"date"`      // Calendar day; time-of-day is not significant
	Kind      RecordKind `json:"kind"`      // EXPENSE or INCOME
	Method    string     `json:"method"`    // Payment method name or income category name
	Amount    int64      `json:"amount"`    // Whole yen, non-negative
	Memo      string     `json:"memo"`      // Free text, may be empty
	Points    int64      `json:"points"`    // Loyalty points earned at creation
	CreatedAt time.Time  `json:"createdAt"` // Insertion timestamp
}

// Sentinel values meaning "no constraint at this granularity" in filters
// and reporting windows.
const (
	AnyYear  = -1
	AnyMonth = -1
)

// RecordFilter constrains a ledger query. Zero/nil fields impose no
// constraint; Year and Month use the AnyYear/AnyMonth sentinels.
type RecordFilter struct {
	Day     *time.Time  // exact calendar day
	Year    int         // AnyYear for all years
	Month   int         // AnyMonth for all months
	Kind    *RecordKind // expense or income only
	Method  *string     // exact method name
	Methods []string    // method name in set
}

// NewRecordFilter returns a filter with no constraints.
func NewRecordFilter() RecordFilter {
	return RecordFilter{Year: AnyYear, Month: AnyMonth}
}

// Matches reports whether a record satisfies every constraint of the filter.
func (f RecordFilter) Matches(r Record) bool {
	if f.Day != nil && !SameDay(r.Date, *f.Day) {
		return false
	}
	if f.Year != AnyYear && r.Date.Year() != f.Year {
		return false
	}
	if f.Month != AnyMonth && int(r.Date.Month()) != f.Month {
		return false
	}
	if f.Kind != nil && r.Kind != *f.Kind {
		return false
	}
	if f.Method != nil && r.Method != *f.Method {
		return false
	}
	if len(f.Methods) > 0 {
		found := false
		for _, m := range f.Methods {
			if r.Method == m {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// SameDay reports whether two timestamps fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// CalculatePoints applies the point rule for a method to an amount:
// amount / baseFee with truncating integer division when the method earns
// points and has a positive base fee, zero otherwise. A nil method (deleted
// or never registered) earns nothing.
func CalculatePoints(amount int64, method *PaymentMethod) int64 {
	if method == nil || !method.EarnsPoints || method.BaseFee <= 0 {
		return 0
	}
	return amount / method.BaseFee
}

// YearMonth identifies one calendar month for reporting-period selection.
type YearMonth struct {
	Year  int `json:"year"`
	Month int `json:"month"` // 1-12
}

// Before reports whether ym is chronologically earlier than other.
func (ym YearMonth) Before(other YearMonth) bool {
	if ym.Year != other.Year {
		return ym.Year < other.Year
	}
	return ym.Month < other.Month
}
