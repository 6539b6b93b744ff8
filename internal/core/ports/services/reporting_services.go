package services

import (
	"context"
	"time"

	"github.com/finage-app/finage_core/internal/core/domain"
)

// ReportingService aggregates ledger records for the report views. All
// operations are read-only.
type ReportingService interface {
	// TotalsByMethod sums amounts per method for one calendar day and kind.
	TotalsByMethod(ctx context.Context, day time.Time, kind domain.RecordKind) (map[string]int64, error)

	// TotalForMethod sums one method's expense amounts on one calendar day.
	// Callers suppress rows whose total is zero.
	TotalForMethod(ctx context.Context, method string, day time.Time) (int64, error)

	// IncomeExpenseSplit totals income and expense over the window and
	// derives the display percentages.
	IncomeExpenseSplit(ctx context.Context, window domain.Window) (domain.IncomeExpenseSplit, error)

	// RankingByMethod returns expense totals grouped by method name or
	// category, sorted by total descending with deterministic tie-breaks.
	RankingByMethod(ctx context.Context, window domain.Window, groupBy domain.RankingGroup) ([]domain.RankingEntry, error)

	// PointsByMethod sums accrued points per point-earning method over the
	// window. Earning methods with zero in-window activity are included;
	// income-category names are always excluded.
	PointsByMethod(ctx context.Context, window domain.Window) (map[string]int64, error)

	// PointsForMethodOnDay sums one method's points on one calendar day.
	PointsForMethodOnDay(ctx context.Context, method string, day time.Time) (int64, error)

	// PointHistory lists a method's records that earned at least one point,
	// date ascending.
	PointHistory(ctx context.Context, method string) ([]domain.Record, error)

	// DistinctMonths lists every month with at least one record, most
	// recent first, for the reporting-period selector.
	DistinctMonths(ctx context.Context) ([]domain.YearMonth, error)
}
