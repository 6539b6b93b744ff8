package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/finage-app/finage_core/internal/core/domain"
)

func TestNewIncomeExpenseSplit(t *testing.T) {
	tests := []struct {
		name        string
		income      int64
		expense     int64
		wantIncome  int
		wantExpense int
	}{
		{name: "even split", income: 500, expense: 500, wantIncome: 50, wantExpense: 50},
		{name: "expense heavy", income: 250, expense: 750, wantIncome: 25, wantExpense: 75},
		{name: "rounding to nearest integer", income: 1, expense: 2, wantIncome: 33, wantExpense: 67},
		{name: "income only", income: 1000, expense: 0, wantIncome: 100, wantExpense: 0},
		{name: "empty window is the fixed 100% expense display", income: 0, expense: 0, wantIncome: 0, wantExpense: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			split := domain.NewIncomeExpenseSplit(tt.income, tt.expense)
			assert.Equal(t, tt.income, split.TotalIncome)
			assert.Equal(t, tt.expense, split.TotalExpense)
			assert.Equal(t, tt.wantIncome, split.IncomePercent)
			assert.Equal(t, tt.wantExpense, split.ExpensePercent)
		})
	}
}

func TestWindow_Filter(t *testing.T) {
	f := domain.AllTime().Filter()
	assert.Equal(t, domain.AnyYear, f.Year)
	assert.Equal(t, domain.AnyMonth, f.Month)

	f = domain.Window{Year: 2025, Month: 3}.Filter()
	assert.Equal(t, 2025, f.Year)
	assert.Equal(t, 3, f.Month)
}

func TestMethodCategory_Rank(t *testing.T) {
	assert.Less(t, domain.CategoryCash.Rank(), domain.CategoryCard.Rank())
	assert.Less(t, domain.CategoryCard.Rank(), domain.CategoryQR.Rank())
	assert.Less(t, domain.CategoryQR.Rank(), domain.CategoryEMoney.Rank())
	assert.Less(t, domain.CategoryEMoney.Rank(), domain.CategoryOther.Rank())
	// unknown categories sort after every known one
	assert.Greater(t, domain.MethodCategory("BARTER").Rank(), domain.CategoryOther.Rank())
}
