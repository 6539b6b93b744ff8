package dto

import (
	"time"

	"github.com/finage-app/finage_core/internal/core/domain"
)

// CreateRecordRequest defines the data needed to append a ledger record.
// Amount is validated here (min=1); the ledger additionally rejects
// negative amounts as a hard invariant.
type CreateRecordRequest struct {
	Date   time.Time         `json:"date" binding:"required"`
	Kind   domain.RecordKind `json:"kind" binding:"required,recordkind"`
	Method string            `json:"method" binding:"required"`
	Amount int64             `json:"amount" binding:"required,min=1"`
	Memo   string            `json:"memo"`
}

// RecordResponse defines the data returned for a ledger record.
type RecordResponse struct {
	RecordID  string            `json:"recordID"`
	Date      time.Time         `json:"date"`
	Kind      domain.RecordKind `json:"kind"`
	Method    string            `json:"method"`
	Amount    int64             `json:"amount"`
	Memo      string            `json:"memo"`
	Points    int64             `json:"points"`
	CreatedAt time.Time         `json:"createdAt"`
}

// ToRecordResponse converts a domain.Record to a RecordResponse DTO.
func ToRecordResponse(r *domain.Record) RecordResponse {
	return RecordResponse{
		RecordID:  r.RecordID,
		Date:      r.Date,
		Kind:      r.Kind,
		Method:    r.Method,
		Amount:    r.Amount,
		Memo:      r.Memo,
		Points:    r.Points,
		CreatedAt: r.CreatedAt,
	}
}

// ToListRecordResponse converts a slice of domain.Record to response DTOs.
func ToListRecordResponse(records []domain.Record) []RecordResponse {
	res := make([]RecordResponse, len(records))
	for i, r := range records {
		res[i] = ToRecordResponse(&r)
	}
	return res
}

// ListRecordsParams defines query parameters for listing records. Year and
// month default to the "no constraint" sentinels; kind and method are
// optional exact filters; day, when set (YYYY-MM-DD), constrains to one
// calendar day.
type ListRecordsParams struct {
	Day    string `form:"day"`
	Year   int    `form:"year,default=-1"`
	Month  int    `form:"month,default=-1"`
	Kind   string `form:"kind"`
	Method string `form:"method"`
}

// ToFilter converts the query parameters into a domain filter.
func (p ListRecordsParams) ToFilter() (domain.RecordFilter, error) {
	filter := domain.NewRecordFilter()
	filter.Year = p.Year
	filter.Month = p.Month
	if p.Day != "" {
		day, err := time.Parse("2006-01-02", p.Day)
		if err != nil {
			return filter, err
		}
		filter.Day = &day
	}
	if p.Kind != "" {
		kind := domain.RecordKind(p.Kind)
		filter.Kind = &kind
	}
	if p.Method != "" {
		method := p.Method
		filter.Method = &method
	}
	return filter, nil
}
