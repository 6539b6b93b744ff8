package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/finage-app/finage_core/internal/core/domain"
	portsrepo "github.com/finage-app/finage_core/internal/core/ports/repositories"
	portssvc "github.com/finage-app/finage_core/internal/core/ports/services"
)

// reportingService implements the ReportingService interface. All methods
// are read-only folds over the ledger, consulting the registry for category
// grouping and point-rule membership.
type reportingService struct {
	BaseService
	recordRepo portsrepo.RecordReader
	registry   portssvc.RegistryReaderSvc
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportingRegistry sets the registry reader consulted for grouping and
// point-eligibility.
func WithReportingRegistry(registry portssvc.RegistryReaderSvc) ReportingServiceOption {
	return func(s *reportingService) {
		s.registry = registry
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(recordRepo portsrepo.RecordReader, options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{
		recordRepo: recordRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// TotalsByMethod sums amounts per method for one calendar day and kind.
func (s *reportingService) TotalsByMethod(ctx context.Context, day time.Time, kind domain.RecordKind) (map[string]int64, error) {
	filter := domain.NewRecordFilter()
	filter.Day = &day
	filter.Kind = &kind
	records, err := s.recordRepo.ListRecords(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list records for daily totals",
			slog.String("day", day.Format("2006-01-02")), slog.String("kind", string(kind)))
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	totals := make(map[string]int64)
	for _, r := range records {
		totals[r.Method] += r.Amount
	}
	return totals, nil
}

// TotalForMethod sums one method's amounts on one calendar day, any kind.
// A zero total means the method has no row to display for that day.
func (s *reportingService) TotalForMethod(ctx context.Context, method string, day time.Time) (int64, error) {
	filter := domain.NewRecordFilter()
	filter.Day = &day
	filter.Method = &method
	records, err := s.recordRepo.ListRecords(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list records for method total", slog.String("method", method))
		return 0, fmt.Errorf("failed to list records: %w", err)
	}

	var total int64
	for _, r := range records {
		total += r.Amount
	}
	return total, nil
}

// IncomeExpenseSplit totals income and expense over the window and derives
// the display percentages, including the empty-window 100%-expense
// convention.
func (s *reportingService) IncomeExpenseSplit(ctx context.Context, window domain.Window) (domain.IncomeExpenseSplit, error) {
	records, err := s.recordRepo.ListRecords(ctx, window.Filter())
	if err != nil {
		s.LogError(ctx, err, "Failed to list records for income/expense split",
			slog.Int("year", window.Year), slog.Int("month", window.Month))
		return domain.IncomeExpenseSplit{}, fmt.Errorf("failed to list records: %w", err)
	}

	var totalIncome, totalExpense int64
	for _, r := range records {
		switch r.Kind {
		case domain.Income:
			totalIncome += r.Amount
		case domain.Expense:
			totalExpense += r.Amount
		}
	}
	return domain.NewIncomeExpenseSplit(totalIncome, totalExpense), nil
}

// RankingByMethod returns expense totals grouped by method or category,
// sorted by total descending. Ties break on label so repeated calls over
// the same ledger produce identical output.
func (s *reportingService) RankingByMethod(ctx context.Context, window domain.Window, groupBy domain.RankingGroup) ([]domain.RankingEntry, error) {
	kind := domain.Expense
	filter := window.Filter()
	filter.Kind = &kind
	records, err := s.recordRepo.ListRecords(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list records for ranking",
			slog.Int("year", window.Year), slog.Int("month", window.Month))
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	categories := make(map[string]domain.MethodCategory)
	if s.registry != nil {
		methods, err := s.registry.SortedMethods(ctx)
		if err != nil {
			s.LogError(ctx, err, "Failed to list methods for ranking")
			return nil, err
		}
		for _, m := range methods {
			categories[m.Name] = m.Category
		}
	}

	totals := make(map[string]int64)
	icons := make(map[string]string)
	for _, r := range records {
		category, known := categories[r.Method]
		var label, icon string
		switch {
		case groupBy == domain.GroupByCategory && known:
			label = string(category)
			icon = domain.CategoryIcon(category)
		case groupBy == domain.GroupByCategory:
			label = domain.UndefinedLabel
			icon = domain.CategoryIcon("")
		case known:
			label = r.Method
			icon = domain.CategoryIcon(category)
		default:
			label = r.Method
			icon = domain.CategoryIcon("")
		}
		totals[label] += r.Amount
		icons[label] = icon
	}

	entries := make([]domain.RankingEntry, 0, len(totals))
	for label, total := range totals {
		entries = append(entries, domain.RankingEntry{
			Label:       label,
			Icon:        icons[label],
			TotalAmount: total,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TotalAmount != entries[j].TotalAmount {
			return entries[i].TotalAmount > entries[j].TotalAmount
		}
		return entries[i].Label < entries[j].Label
	})
	return entries, nil
}

// PointsByMethod sums accrued points per point-earning method over the
// window. The output is complete over all earning methods: ones with zero
// in-window activity still appear. Income-category names never appear, even
// when they collide with a payment-method name.
func (s *reportingService) PointsByMethod(ctx context.Context, window domain.Window) (map[string]int64, error) {
	records, err := s.recordRepo.ListRecords(ctx, window.Filter())
	if err != nil {
		s.LogError(ctx, err, "Failed to list records for point totals",
			slog.Int("year", window.Year), slog.Int("month", window.Month))
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	earning := make(map[string]bool)
	registered := make(map[string]bool)
	incomeNames := make(map[string]bool)
	if s.registry != nil {
		methods, err := s.registry.SortedMethods(ctx)
		if err != nil {
			s.LogError(ctx, err, "Failed to list methods for point totals")
			return nil, err
		}
		for _, m := range methods {
			registered[m.Name] = true
			if m.EarnsPoints {
				earning[m.Name] = true
			}
		}
		categories, err := s.registry.IncomeCategories(ctx)
		if err != nil {
			s.LogError(ctx, err, "Failed to list income categories for point totals")
			return nil, err
		}
		for _, c := range categories {
			incomeNames[c.Name] = true
		}
	}

	points := make(map[string]int64)
	for _, r := range records {
		if incomeNames[r.Method] {
			continue
		}
		// A registered method that stopped earning is excluded; a method
		// since deleted from the registry keeps its historical points.
		if registered[r.Method] && !earning[r.Method] {
			continue
		}
		points[r.Method] += r.Points
	}
	for name := range earning {
		if _, ok := points[name]; !ok {
			points[name] = 0
		}
	}
	return points, nil
}

// PointsForMethodOnDay sums one method's points on one calendar day.
func (s *reportingService) PointsForMethodOnDay(ctx context.Context, method string, day time.Time) (int64, error) {
	filter := domain.NewRecordFilter()
	filter.Day = &day
	filter.Method = &method
	records, err := s.recordRepo.ListRecords(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list records for daily points", slog.String("method", method))
		return 0, fmt.Errorf("failed to list records: %w", err)
	}

	var total int64
	for _, r := range records {
		total += r.Points
	}
	return total, nil
}

// PointHistory lists a method's records that earned at least one point,
// date ascending.
func (s *reportingService) PointHistory(ctx context.Context, method string) ([]domain.Record, error) {
	filter := domain.NewRecordFilter()
	filter.Method = &method
	records, err := s.recordRepo.ListRecords(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list records for point history", slog.String("method", method))
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	history := make([]domain.Record, 0, len(records))
	for _, r := range records {
		if r.Points >= 1 {
			history = append(history, r)
		}
	}
	return history, nil
}

// DistinctMonths lists every month with at least one record, most recent
// first.
func (s *reportingService) DistinctMonths(ctx context.Context) ([]domain.YearMonth, error) {
	months, err := s.recordRepo.DistinctMonths(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list distinct months")
		return nil, fmt.Errorf("failed to list distinct months: %w", err)
	}
	// Ordering is this service's contract, not the repository's.
	sort.Slice(months, func(i, j int) bool {
		return months[j].Before(months[i])
	})
	return months, nil
}
