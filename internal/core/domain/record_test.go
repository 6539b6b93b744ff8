package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/finage-app/finage_core/internal/core/domain"
)

func TestCalculatePoints(t *testing.T) {
	earning := &domain.PaymentMethod{Name: "Gold Card", Category: domain.CategoryCard, EarnsPoints: true, BaseFee: 200}
	nonEarning := &domain.PaymentMethod{Name: "Cash", Category: domain.CategoryCash}
	zeroFee := &domain.PaymentMethod{Name: "Broken", Category: domain.CategoryCard, EarnsPoints: true, BaseFee: 0}

	tests := []struct {
		name   string
		amount int64
		method *domain.PaymentMethod
		want   int64
	}{
		{name: "exact multiple", amount: 1000, method: earning, want: 5},
		{name: "remainder truncates", amount: 1999, method: earning, want: 9},
		{name: "amount below base fee", amount: 199, method: earning, want: 0},
		{name: "zero amount", amount: 0, method: earning, want: 0},
		{name: "non-earning method", amount: 1000, method: nonEarning, want: 0},
		{name: "earning flag without positive base fee", amount: 1000, method: zeroFee, want: 0},
		{name: "unknown method", amount: 1000, method: nil, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.CalculatePoints(tt.amount, tt.method))
		})
	}
}

func TestRecordFilter_Matches(t *testing.T) {
	date := time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)
	record := domain.Record{
		RecordID: "r1",
		Date:     date,
		Kind:     domain.Expense,
		Method:   "Gold Card",
		Amount:   1200,
	}

	sameDay := time.Date(2025, 3, 15, 23, 59, 0, 0, time.UTC)
	otherDay := time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC)
	income := domain.Income
	cash := "Cash"
	goldCard := "Gold Card"

	tests := []struct {
		name   string
		filter func() domain.RecordFilter
		want   bool
	}{
		{
			name:   "no constraints matches everything",
			filter: domain.NewRecordFilter,
			want:   true,
		},
		{
			name: "same calendar day ignores time of day",
			filter: func() domain.RecordFilter {
				f := domain.NewRecordFilter()
				f.Day = &sameDay
				return f
			},
			want: true,
		},
		{
			name: "different day",
			filter: func() domain.RecordFilter {
				f := domain.NewRecordFilter()
				f.Day = &otherDay
				return f
			},
			want: false,
		},
		{
			name: "year and month match",
			filter: func() domain.RecordFilter {
				f := domain.NewRecordFilter()
				f.Year = 2025
				f.Month = 3
				return f
			},
			want: true,
		},
		{
			name: "month mismatch",
			filter: func() domain.RecordFilter {
				f := domain.NewRecordFilter()
				f.Month = 4
				return f
			},
			want: false,
		},
		{
			name: "kind mismatch",
			filter: func() domain.RecordFilter {
				f := domain.NewRecordFilter()
				f.Kind = &income
				return f
			},
			want: false,
		},
		{
			name: "method match",
			filter: func() domain.RecordFilter {
				f := domain.NewRecordFilter()
				f.Method = &goldCard
				return f
			},
			want: true,
		},
		{
			name: "method mismatch",
			filter: func() domain.RecordFilter {
				f := domain.NewRecordFilter()
				f.Method = &cash
				return f
			},
			want: false,
		},
		{
			name: "method set contains",
			filter: func() domain.RecordFilter {
				f := domain.NewRecordFilter()
				f.Methods = []string{"Cash", "Gold Card"}
				return f
			},
			want: true,
		},
		{
			name: "method set excludes",
			filter: func() domain.RecordFilter {
				f := domain.NewRecordFilter()
				f.Methods = []string{"Cash", "PayPay"}
				return f
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter().Matches(record))
		})
	}
}

func TestYearMonth_Before(t *testing.T) {
	assert.True(t, domain.YearMonth{Year: 2024, Month: 12}.Before(domain.YearMonth{Year: 2025, Month: 1}))
	assert.True(t, domain.YearMonth{Year: 2025, Month: 1}.Before(domain.YearMonth{Year: 2025, Month: 2}))
	assert.False(t, domain.YearMonth{Year: 2025, Month: 2}.Before(domain.YearMonth{Year: 2025, Month: 2}))
	assert.False(t, domain.YearMonth{Year: 2025, Month: 3}.Before(domain.YearMonth{Year: 2025, Month: 2}))
}
