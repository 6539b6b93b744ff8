package dto

import "github.com/finage-app/finage_core/internal/core/domain"

// WindowParams defines the year/month query parameters shared by the report
// endpoints. Defaults are the "all" sentinels.
type WindowParams struct {
	Year  int `form:"year,default=-1"`
	Month int `form:"month,default=-1"`
}

// ToWindow converts the parameters to a domain window.
func (p WindowParams) ToWindow() domain.Window {
	return domain.Window{Year: p.Year, Month: p.Month}
}

// RankingParams defines query parameters for the ranking report.
type RankingParams struct {
	WindowParams
	GroupBy string `form:"group_by,default=METHOD"`
}

// SplitResponse returns window totals with display percentages.
type SplitResponse struct {
	TotalIncome    int64 `json:"totalIncome"`
	TotalExpense   int64 `json:"totalExpense"`
	IncomePercent  int   `json:"incomePercent"`
	ExpensePercent int   `json:"expensePercent"`
}

// ToSplitResponse converts a domain split to its response DTO.
func ToSplitResponse(s domain.IncomeExpenseSplit) SplitResponse {
	return SplitResponse{
		TotalIncome:    s.TotalIncome,
		TotalExpense:   s.TotalExpense,
		IncomePercent:  s.IncomePercent,
		ExpensePercent: s.ExpensePercent,
	}
}

// MethodTotalResponse is one method's total within a day or window.
type MethodTotalResponse struct {
	Method string `json:"method"`
	Total  int64  `json:"total"`
}

// MethodDayDetailResponse is one method's spend and earned points on a
// single calendar day.
type MethodDayDetailResponse struct {
	Method string `json:"method"`
	Total  int64  `json:"total"`
	Points int64  `json:"points"`
}

// PointsTotalResponse is one point-earning method's accrued points.
type PointsTotalResponse struct {
	Method string `json:"method"`
	Points int64  `json:"points"`
}

// MarkersParams defines query parameters for calendar-day markers. Method
// empty means the all-methods selection.
type MarkersParams struct {
	Year   int    `form:"year" binding:"required"`
	Month  int    `form:"month" binding:"required,min=1,max=12"`
	Method string `form:"method"`
}

// DailyRecordsParams defines query parameters for the per-day drill-down.
type DailyRecordsParams struct {
	Date   string `form:"date" binding:"required"`
	Kind   string `form:"kind" binding:"required"`
	Method string `form:"method"`
}
