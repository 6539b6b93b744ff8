package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/finage-app/finage_core/internal/apperrors"
	"github.com/finage-app/finage_core/internal/core/domain"
	portsrepo "github.com/finage-app/finage_core/internal/core/ports/repositories"
	"github.com/finage-app/finage_core/internal/middleware"
	"github.com/finage-app/finage_core/internal/models"
)

// SQLiteSettingsRepository persists registry definitions and the theme
// preference as JSON blobs in a key/value table. Malformed stored entries
// are dropped on load rather than failing the whole load.
type SQLiteSettingsRepository struct {
	db *sql.DB
}

// newSQLiteSettingsRepository creates a new repository for settings data.
func newSQLiteSettingsRepository(db *sql.DB) portsrepo.SettingsRepository {
	return &SQLiteSettingsRepository{db: db}
}

// Ensure SQLiteSettingsRepository implements portsrepo.SettingsRepository
var _ portsrepo.SettingsRepository = (*SQLiteSettingsRepository)(nil)

func (r *SQLiteSettingsRepository) getValue(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?;`, key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", fmt.Errorf("setting %s: %w", key, apperrors.ErrNotFound)
		}
		return "", fmt.Errorf("get setting %s: %w: %v", key, apperrors.ErrStorage, err)
	}
	return value, nil
}

func (r *SQLiteSettingsRepository) putValue(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value;
	`
	if _, err := r.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("put setting %s: %w: %v", key, apperrors.ErrStorage, err)
	}
	return nil
}

// LoadPaymentMethods returns all valid persisted method definitions.
func (r *SQLiteSettingsRepository) LoadPaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error) {
	value, err := r.getValue(ctx, models.SettingsKeyPaymentMethods)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	var blobs []models.PaymentMethodBlob
	if err := json.Unmarshal([]byte(value), &blobs); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Dropping unreadable payment method blob", slog.String("error", err.Error()))
		return nil, nil
	}

	methods := make([]domain.PaymentMethod, 0, len(blobs))
	for _, b := range blobs {
		if !b.Valid() {
			middleware.GetLoggerFromCtx(ctx).Warn("Dropping malformed payment method entry", slog.String("name", b.Name))
			continue
		}
		methods = append(methods, b.ToDomain())
	}
	return methods, nil
}

// SavePaymentMethods replaces the persisted method definitions.
func (r *SQLiteSettingsRepository) SavePaymentMethods(ctx context.Context, methods []domain.PaymentMethod) error {
	blobs := make([]models.PaymentMethodBlob, 0, len(methods))
	for _, m := range methods {
		blobs = append(blobs, models.FromDomainMethod(m))
	}
	data, err := json.Marshal(blobs)
	if err != nil {
		return fmt.Errorf("marshal payment methods: %w", err)
	}
	return r.putValue(ctx, models.SettingsKeyPaymentMethods, string(data))
}

// LoadIncomeCategories returns all valid persisted income categories.
func (r *SQLiteSettingsRepository) LoadIncomeCategories(ctx context.Context) ([]domain.IncomeCategory, error) {
	value, err := r.getValue(ctx, models.SettingsKeyIncomeCategories)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	var blobs []models.IncomeCategoryBlob
	if err := json.Unmarshal([]byte(value), &blobs); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Dropping unreadable income category blob", slog.String("error", err.Error()))
		return nil, nil
	}

	categories := make([]domain.IncomeCategory, 0, len(blobs))
	for _, b := range blobs {
		if !b.Valid() {
			middleware.GetLoggerFromCtx(ctx).Warn("Dropping malformed income category entry", slog.String("name", b.Name))
			continue
		}
		categories = append(categories, b.ToDomain())
	}
	return categories, nil
}

// SaveIncomeCategories replaces the persisted income categories.
func (r *SQLiteSettingsRepository) SaveIncomeCategories(ctx context.Context, categories []domain.IncomeCategory) error {
	blobs := make([]models.IncomeCategoryBlob, 0, len(categories))
	for _, c := range categories {
		blobs = append(blobs, models.FromDomainIncomeCategory(c))
	}
	data, err := json.Marshal(blobs)
	if err != nil {
		return fmt.Errorf("marshal income categories: %w", err)
	}
	return r.putValue(ctx, models.SettingsKeyIncomeCategories, string(data))
}

// LoadTheme returns the stored theme preference.
func (r *SQLiteSettingsRepository) LoadTheme(ctx context.Context) (string, error) {
	return r.getValue(ctx, models.SettingsKeyTheme)
}

// SaveTheme stores the opaque theme preference.
func (r *SQLiteSettingsRepository) SaveTheme(ctx context.Context, theme string) error {
	return r.putValue(ctx, models.SettingsKeyTheme, theme)
}
