package services

import (
	"context"

	"github.com/finage-app/finage_core/internal/core/domain"
	"github.com/finage-app/finage_core/internal/dto"
)

// RegistryReaderSvc defines read operations over method and income-category
// definitions.
type RegistryReaderSvc interface {
	// SortedMethods lists payment methods ordered by category rank
	// (Cash < Card < QR < EMoney < Other), insertion order breaking ties.
	SortedMethods(ctx context.Context) ([]domain.PaymentMethod, error)

	// LookupMethod retrieves one method by name. Returns apperrors.ErrNotFound
	// for unknown names.
	LookupMethod(ctx context.Context, name string) (*domain.PaymentMethod, error)

	// IncomeCategories lists income categories in insertion order.
	IncomeCategories(ctx context.Context) ([]domain.IncomeCategory, error)
}

// RegistryWriterSvc defines write operations over the registry.
type RegistryWriterSvc interface {
	// AddPaymentMethod registers a new method. Fails with ErrDuplicate on a
	// name conflict and ErrValidation when earnsPoints is set without a
	// positive base fee.
	AddPaymentMethod(ctx context.Context, req dto.CreateMethodRequest) (*domain.PaymentMethod, error)

	// RemovePaymentMethod deletes a method and cascades to every ledger
	// record referencing it. Fails with ErrProtected for built-ins.
	RemovePaymentMethod(ctx context.Context, name string) error

	// UpdateBaseFee changes a method's point rule going forward. Points on
	// existing records are a historical fact and are not recomputed.
	UpdateBaseFee(ctx context.Context, name string, baseFee int64) (*domain.PaymentMethod, error)

	// AddIncomeCategory registers a new income category.
	AddIncomeCategory(ctx context.Context, name string) (*domain.IncomeCategory, error)

	// RemoveIncomeCategory deletes an income category. Fails with
	// ErrProtected for built-ins.
	RemoveIncomeCategory(ctx context.Context, name string) error
}

// ThemeSvc passes the opaque theme preference through to the settings store.
type ThemeSvc interface {
	Theme(ctx context.Context) (string, error)
	SetTheme(ctx context.Context, theme string) error
}

// RegistrySvcFacade combines all registry service interfaces.
type RegistrySvcFacade interface {
	RegistryReaderSvc
	RegistryWriterSvc
	ThemeSvc
}
