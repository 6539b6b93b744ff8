package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/finage-app/finage_core/internal/apperrors"
	"github.com/finage-app/finage_core/internal/core/domain"
	portsrepo "github.com/finage-app/finage_core/internal/core/ports/repositories"
	"github.com/finage-app/finage_core/internal/models"
)

// SQLiteRecordRepository persists ledger records in the embedded database.
type SQLiteRecordRepository struct {
	db *sql.DB
}

// newSQLiteRecordRepository creates a new repository for record data.
func newSQLiteRecordRepository(db *sql.DB) portsrepo.RecordRepositoryFacade {
	return &SQLiteRecordRepository{db: db}
}

// Ensure SQLiteRecordRepository implements portsrepo.RecordRepositoryFacade
var _ portsrepo.RecordRepositoryFacade = (*SQLiteRecordRepository)(nil)

// Helper to convert domain.Record to models.Record for DB storage
func toModelRecord(d domain.Record) models.Record {
	return models.Record{
		RecordID:  d.RecordID,
		Date:      d.Date.Format(time.RFC3339),
		Day:       d.Date.Format("2006-01-02"),
		Year:      d.Date.Year(),
		Month:     int(d.Date.Month()),
		Kind:      string(d.Kind),
		Method:    d.Method,
		Amount:    d.Amount,
		Memo:      d.Memo,
		Points:    d.Points,
		CreatedAt: d.CreatedAt.Format(time.RFC3339),
	}
}

// Helper to convert models.Record from DB to domain.Record
func toDomainRecord(m models.Record) (domain.Record, error) {
	date, err := time.Parse(time.RFC3339, m.Date)
	if err != nil {
		return domain.Record{}, fmt.Errorf("parse record date: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339, m.CreatedAt)
	if err != nil {
		return domain.Record{}, fmt.Errorf("parse record created_at: %w", err)
	}
	return domain.Record{
		RecordID:  m.RecordID,
		Date:      date,
		Kind:      domain.RecordKind(m.Kind),
		Method:    m.Method,
		Amount:    m.Amount,
		Memo:      m.Memo,
		Points:    m.Points,
		CreatedAt: createdAt,
	}, nil
}

// SaveRecord inserts a new record.
func (r *SQLiteRecordRepository) SaveRecord(ctx context.Context, record domain.Record) error {
	m := toModelRecord(record)
	query := `
		INSERT INTO records (record_id, date, day, year, month, kind, method, amount, memo, points, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	_, err := r.db.ExecContext(ctx, query,
		m.RecordID, m.Date, m.Day, m.Year, m.Month, m.Kind, m.Method, m.Amount, m.Memo, m.Points, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert record: %w: %v", apperrors.ErrStorage, err)
	}
	return nil
}

// FindRecordByID retrieves a specific record by its unique identifier.
func (r *SQLiteRecordRepository) FindRecordByID(ctx context.Context, recordID string) (*domain.Record, error) {
	query := `
		SELECT record_id, date, kind, method, amount, memo, points, created_at
		FROM records WHERE record_id = ?;
	`
	var m models.Record
	err := r.db.QueryRowContext(ctx, query, recordID).Scan(
		&m.RecordID, &m.Date, &m.Kind, &m.Method, &m.Amount, &m.Memo, &m.Points, &m.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("record %s: %w", recordID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("find record: %w: %v", apperrors.ErrStorage, err)
	}
	record, err := toDomainRecord(m)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// buildFilterClauses translates a domain filter into SQL WHERE clauses.
func buildFilterClauses(filter domain.RecordFilter) (string, []any) {
	clauses := []string{}
	args := []any{}
	if filter.Day != nil {
		clauses = append(clauses, "day = ?")
		args = append(args, filter.Day.Format("2006-01-02"))
	}
	if filter.Year != domain.AnyYear {
		clauses = append(clauses, "year = ?")
		args = append(args, filter.Year)
	}
	if filter.Month != domain.AnyMonth {
		clauses = append(clauses, "month = ?")
		args = append(args, filter.Month)
	}
	if filter.Kind != nil {
		clauses = append(clauses, "kind = ?")
		args = append(args, string(*filter.Kind))
	}
	if filter.Method != nil {
		clauses = append(clauses, "method = ?")
		args = append(args, *filter.Method)
	}
	if len(filter.Methods) > 0 {
		placeholders := strings.Repeat("?, ", len(filter.Methods))
		clauses = append(clauses, fmt.Sprintf("method IN (%s)", strings.TrimSuffix(placeholders, ", ")))
		for _, m := range filter.Methods {
			args = append(args, m)
		}
	}
	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// ListRecords retrieves all records matching the filter, date ascending with
// insertion order breaking ties.
func (r *SQLiteRecordRepository) ListRecords(ctx context.Context, filter domain.RecordFilter) ([]domain.Record, error) {
	where, args := buildFilterClauses(filter)
	query := `
		SELECT record_id, date, kind, method, amount, memo, points, created_at
		FROM records` + where + `
		ORDER BY date ASC, created_at ASC;
	`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list records: %w: %v", apperrors.ErrStorage, err)
	}
	defer rows.Close()

	var records []domain.Record
	for rows.Next() {
		var m models.Record
		if err := rows.Scan(&m.RecordID, &m.Date, &m.Kind, &m.Method, &m.Amount, &m.Memo, &m.Points, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan record: %w: %v", apperrors.ErrStorage, err)
		}
		record, err := toDomainRecord(m)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w: %v", apperrors.ErrStorage, err)
	}
	return records, nil
}

// DistinctMonths lists every month with at least one record, most recent first.
func (r *SQLiteRecordRepository) DistinctMonths(ctx context.Context) ([]domain.YearMonth, error) {
	query := `
		SELECT DISTINCT year, month FROM records
		ORDER BY year DESC, month DESC;
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list distinct months: %w: %v", apperrors.ErrStorage, err)
	}
	defer rows.Close()

	var months []domain.YearMonth
	for rows.Next() {
		var ym domain.YearMonth
		if err := rows.Scan(&ym.Year, &ym.Month); err != nil {
			return nil, fmt.Errorf("scan month: %w: %v", apperrors.ErrStorage, err)
		}
		months = append(months, ym)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate months: %w: %v", apperrors.ErrStorage, err)
	}
	return months, nil
}

// DeleteRecord removes a record by ID.
func (r *SQLiteRecordRepository) DeleteRecord(ctx context.Context, recordID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM records WHERE record_id = ?;`, recordID)
	if err != nil {
		return fmt.Errorf("delete record: %w: %v", apperrors.ErrStorage, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete record rows affected: %w: %v", apperrors.ErrStorage, err)
	}
	if affected == 0 {
		return fmt.Errorf("record %s: %w", recordID, apperrors.ErrNotFound)
	}
	return nil
}

// DeleteRecordsByMethod removes every record referencing the method.
func (r *SQLiteRecordRepository) DeleteRecordsByMethod(ctx context.Context, method string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM records WHERE method = ?;`, method); err != nil {
		return fmt.Errorf("delete records by method: %w: %v", apperrors.ErrStorage, err)
	}
	return nil
}

// DeleteAllRecords wipes the ledger.
func (r *SQLiteRecordRepository) DeleteAllRecords(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM records;`); err != nil {
		return fmt.Errorf("delete all records: %w: %v", apperrors.ErrStorage, err)
	}
	return nil
}
