package repositories

import (
	"context"

	"github.com/finage-app/finage_core/internal/core/domain"
)

// SettingsRepository is the durable key-value store behind the method
// registry: method definitions, income categories and the opaque theme
// preference. Implementations validate stored blobs on load and drop
// malformed entries rather than failing the whole load.
type SettingsRepository interface {
	// LoadPaymentMethods returns all persisted method definitions.
	LoadPaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error)

	// SavePaymentMethods replaces the persisted method definitions.
	SavePaymentMethods(ctx context.Context, methods []domain.PaymentMethod) error

	// LoadIncomeCategories returns all persisted income categories.
	LoadIncomeCategories(ctx context.Context) ([]domain.IncomeCategory, error)

	// SaveIncomeCategories replaces the persisted income categories.
	SaveIncomeCategories(ctx context.Context, categories []domain.IncomeCategory) error

	// LoadTheme returns the stored theme preference, empty if unset.
	LoadTheme(ctx context.Context) (string, error)

	// SaveTheme stores the opaque theme preference.
	SaveTheme(ctx context.Context, theme string) error
}
