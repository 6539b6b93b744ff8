package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/finage-app/finage_core/internal/apperrors"
	"github.com/finage-app/finage_core/internal/core/domain"
	portsrepo "github.com/finage-app/finage_core/internal/core/ports/repositories"
	portssvc "github.com/finage-app/finage_core/internal/core/ports/services"
	"github.com/finage-app/finage_core/internal/dto"
	"github.com/google/uuid"
)

// ledgerService implements the LedgerSvcFacade interface.
type ledgerService struct {
	BaseService
	recordRepo portsrepo.RecordRepositoryFacade
	registry   portssvc.RegistryReaderSvc

	obsMu     sync.Mutex
	observers []func()
}

// LedgerServiceOption is a functional option for configuring the ledger service
type LedgerServiceOption func(*ledgerService)

// WithMethodLookup sets the registry reader used to resolve point rules at
// append time.
func WithMethodLookup(registry portssvc.RegistryReaderSvc) LedgerServiceOption {
	return func(s *ledgerService) {
		s.registry = registry
	}
}

// NewLedgerService creates a new ledger service with the provided options
func NewLedgerService(recordRepo portsrepo.RecordRepositoryFacade, options ...LedgerServiceOption) portssvc.LedgerSvcFacade {
	svc := &ledgerService{
		recordRepo: recordRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure ledgerService implements the LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// RegisterObserver adds a callback fired after every ledger write. The
// notification is advisory; observers recompute from a fresh query.
func (s *ledgerService) RegisterObserver(fn func()) {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()
	s.observers = append(s.observers, fn)
}

func (s *ledgerService) notifyObservers() {
	s.obsMu.Lock()
	observers := make([]func(), len(s.observers))
	copy(observers, s.observers)
	s.obsMu.Unlock()
	for _, fn := range observers {
		fn()
	}
}

// AppendRecord validates and persists a new ledger record. Points are
// computed against the registry's current state and frozen: later rule
// changes never touch them. A method unknown to the registry earns zero.
func (s *ledgerService) AppendRecord(ctx context.Context, req dto.CreateRecordRequest) (*domain.Record, error) {
	if req.Amount < 0 {
		return nil, fmt.Errorf("amount must not be negative: %w", apperrors.ErrValidation)
	}
	if req.Kind != domain.Expense && req.Kind != domain.Income {
		return nil, fmt.Errorf("unknown record kind %q: %w", req.Kind, apperrors.ErrValidation)
	}
	if req.Method == "" {
		return nil, fmt.Errorf("method must not be empty: %w", apperrors.ErrValidation)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("date must be set: %w", apperrors.ErrValidation)
	}

	var points int64
	if s.registry != nil {
		method, err := s.registry.LookupMethod(ctx, req.Method)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to look up method for point calculation", slog.String("method", req.Method))
			return nil, err
		}
		points = domain.CalculatePoints(req.Amount, method)
	}

	record := domain.Record{
		RecordID:  uuid.NewString(),
		Date:      req.Date,
		Kind:      req.Kind,
		Method:    req.Method,
		Amount:    req.Amount,
		Memo:      req.Memo,
		Points:    points,
		CreatedAt: time.Now(),
	}

	if err := s.recordRepo.SaveRecord(ctx, record); err != nil {
		s.LogError(ctx, err, "Failed to save record", slog.String("method", req.Method))
		return nil, fmt.Errorf("failed to save record: %w", err)
	}

	s.LogInfo(ctx, "Record appended",
		slog.String("record_id", record.RecordID),
		slog.String("kind", string(record.Kind)),
		slog.String("method", record.Method),
		slog.Int64("amount", record.Amount),
		slog.Int64("points", record.Points))
	s.notifyObservers()
	return &record, nil
}

// DeleteRecord removes one record by ID.
func (s *ledgerService) DeleteRecord(ctx context.Context, recordID string) error {
	if err := s.recordRepo.DeleteRecord(ctx, recordID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete record", slog.String("record_id", recordID))
		}
		return err
	}
	s.LogInfo(ctx, "Record deleted", slog.String("record_id", recordID))
	s.notifyObservers()
	return nil
}

// DeleteAllRecords wipes the ledger. Irreversible.
func (s *ledgerService) DeleteAllRecords(ctx context.Context) error {
	if err := s.recordRepo.DeleteAllRecords(ctx); err != nil {
		s.LogError(ctx, err, "Failed to delete all records")
		return fmt.Errorf("failed to delete all records: %w", err)
	}
	s.LogInfo(ctx, "All records deleted")
	s.notifyObservers()
	return nil
}

// ListRecords retrieves records matching the filter, date ascending.
func (s *ledgerService) ListRecords(ctx context.Context, filter domain.RecordFilter) ([]domain.Record, error) {
	records, err := s.recordRepo.ListRecords(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list records")
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	return records, nil
}

// MonthMarkers derives the calendar presence markers for one month.
//
// With a selected method, a day gets a full expense marker when that method
// has an expense on it and a dim marker when only other methods do. With the
// all-methods selection any expense is full and income presence is shown;
// a method-scoped income marker intentionally does not exist.
func (s *ledgerService) MonthMarkers(ctx context.Context, year, month int, selectedMethod string) ([]domain.DayMarkers, error) {
	filter := domain.NewRecordFilter()
	filter.Year = year
	filter.Month = month
	records, err := s.recordRepo.ListRecords(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list records for markers",
			slog.Int("year", year), slog.Int("month", month))
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	expenseAny := map[int]bool{}
	expenseSelected := map[int]bool{}
	incomeAny := map[int]bool{}
	for _, r := range records {
		day := r.Date.Day()
		switch r.Kind {
		case domain.Expense:
			expenseAny[day] = true
			if selectedMethod != "" && r.Method == selectedMethod {
				expenseSelected[day] = true
			}
		case domain.Income:
			incomeAny[day] = true
		}
	}

	lastDay := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	markers := make([]domain.DayMarkers, 0, lastDay)
	for day := 1; day <= lastDay; day++ {
		m := domain.DayMarkers{Day: day, Expense: domain.MarkerNone}
		if selectedMethod == "" {
			if expenseAny[day] {
				m.Expense = domain.MarkerFull
			}
			m.Income = incomeAny[day]
		} else {
			switch {
			case expenseSelected[day]:
				m.Expense = domain.MarkerFull
			case expenseAny[day]:
				m.Expense = domain.MarkerDim
			}
		}
		markers = append(markers, m)
	}
	return markers, nil
}
