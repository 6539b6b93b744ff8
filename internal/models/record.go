package models

// Record is the database row model for a ledger record. Dates are stored as
// RFC3339 text plus derived day/year/month columns for calendar queries.
type Record struct {
	RecordID  string
	Date      string // RFC3339
	Day       string // YYYY-MM-DD, derived from Date
	Year      int
	Month     int
	Kind      string
	Method    string
	Amount    int64
	Memo      string
	Points    int64
	CreatedAt string // RFC3339
}
