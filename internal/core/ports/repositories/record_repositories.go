package repositories

import (
	"context"

	"github.com/finage-app/finage_core/internal/core/domain"
)

// RecordReader defines read operations for ledger records.
type RecordReader interface {
	// FindRecordByID retrieves a specific record by its unique identifier.
	FindRecordByID(ctx context.Context, recordID string) (*domain.Record, error)

	// ListRecords retrieves all records matching the filter, ordered by date
	// ascending with insertion order breaking ties.
	ListRecords(ctx context.Context, filter domain.RecordFilter) ([]domain.Record, error)

	// DistinctMonths lists every calendar month containing at least one
	// record, most recent first.
	DistinctMonths(ctx context.Context) ([]domain.YearMonth, error)
}

// RecordWriter defines write operations for ledger records.
type RecordWriter interface {
	// SaveRecord persists a new record.
	SaveRecord(ctx context.Context, record domain.Record) error

	// DeleteRecord removes a record by ID. Returns apperrors.ErrNotFound if
	// no such record exists.
	DeleteRecord(ctx context.Context, recordID string) error

	// DeleteRecordsByMethod removes every record referencing the method,
	// irrespective of kind. Used by the registry cascade.
	DeleteRecordsByMethod(ctx context.Context, method string) error

	// DeleteAllRecords wipes the ledger. Irreversible.
	DeleteAllRecords(ctx context.Context) error
}

// RecordRepositoryFacade combines all record repository interfaces.
type RecordRepositoryFacade interface {
	RecordReader
	RecordWriter
}
