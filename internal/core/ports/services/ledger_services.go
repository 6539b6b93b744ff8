package services

import (
	"context"

	"github.com/finage-app/finage_core/internal/core/domain"
	"github.com/finage-app/finage_core/internal/dto"
)

// LedgerReaderSvc defines read operations over the record ledger.
type LedgerReaderSvc interface {
	// ListRecords retrieves records matching the filter, date ascending.
	ListRecords(ctx context.Context, filter domain.RecordFilter) ([]domain.Record, error)

	// MonthMarkers derives the calendar presence markers for every day of
	// the given month. selectedMethod empty means the all-methods selection;
	// income markers only exist for that selection.
	MonthMarkers(ctx context.Context, year, month int, selectedMethod string) ([]domain.DayMarkers, error)
}

// LedgerWriterSvc defines write operations over the record ledger.
type LedgerWriterSvc interface {
	// AppendRecord validates and persists a record, computing points from
	// the current registry state. A method missing from the registry earns
	// zero points.
	AppendRecord(ctx context.Context, req dto.CreateRecordRequest) (*domain.Record, error)

	// DeleteRecord removes one record by ID.
	DeleteRecord(ctx context.Context, recordID string) error

	// DeleteAllRecords wipes the ledger. Irreversible.
	DeleteAllRecords(ctx context.Context) error
}

// LedgerNotifierSvc lets collaborators observe ledger writes. Notification
// is advisory: derived state can always be recomputed from a fresh query.
type LedgerNotifierSvc interface {
	RegisterObserver(fn func())
}

// LedgerSvcFacade combines all ledger service interfaces.
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
	LedgerNotifierSvc
}
