package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/finage-app/finage_core/internal/apperrors"
	"github.com/finage-app/finage_core/internal/core/domain"
	portsrepo "github.com/finage-app/finage_core/internal/core/ports/repositories"
	portssvc "github.com/finage-app/finage_core/internal/core/ports/services"
	"github.com/finage-app/finage_core/internal/dto"
)

// registryService implements the RegistrySvcFacade interface. Method and
// income-category definitions live in the settings store; the service is the
// single writer over them (load, mutate, save under one lock).
type registryService struct {
	BaseService
	settingsRepo portsrepo.SettingsRepository
	recordRepo   portsrepo.RecordWriter // cascade deletion target
	mu           sync.Mutex
}

// RegistryServiceOption is a functional option for configuring the registry service
type RegistryServiceOption func(*registryService)

// WithRecordCascade sets the record writer used for cascading deletion when
// a method is removed.
func WithRecordCascade(rw portsrepo.RecordWriter) RegistryServiceOption {
	return func(s *registryService) {
		s.recordRepo = rw
	}
}

// NewRegistryService creates a new registry service with the provided options
func NewRegistryService(settingsRepo portsrepo.SettingsRepository, options ...RegistryServiceOption) portssvc.RegistrySvcFacade {
	svc := &registryService{
		settingsRepo: settingsRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure registryService implements the RegistrySvcFacade interface
var _ portssvc.RegistrySvcFacade = (*registryService)(nil)

// loadMethods reads the stored method definitions and guarantees the
// built-in Cash entry is present, so a cold start still has a usable
// default method.
func (s *registryService) loadMethods(ctx context.Context) ([]domain.PaymentMethod, error) {
	methods, err := s.settingsRepo.LoadPaymentMethods(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load payment methods: %w", err)
	}
	for _, m := range methods {
		if m.Name == domain.BuiltinMethodName {
			return methods, nil
		}
	}
	builtin := domain.PaymentMethod{
		Name:      domain.BuiltinMethodName,
		Category:  domain.CategoryCash,
		Protected: true,
	}
	return append([]domain.PaymentMethod{builtin}, methods...), nil
}

// loadIncomeCategories mirrors loadMethods for the income side, guaranteeing
// the built-in Salary entry.
func (s *registryService) loadIncomeCategories(ctx context.Context) ([]domain.IncomeCategory, error) {
	categories, err := s.settingsRepo.LoadIncomeCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load income categories: %w", err)
	}
	for _, c := range categories {
		if c.Name == domain.BuiltinIncomeCategoryName {
			return categories, nil
		}
	}
	builtin := domain.IncomeCategory{
		Name:      domain.BuiltinIncomeCategoryName,
		Protected: true,
	}
	return append([]domain.IncomeCategory{builtin}, categories...), nil
}

// SortedMethods lists methods by category rank, insertion order breaking ties.
func (s *registryService) SortedMethods(ctx context.Context) ([]domain.PaymentMethod, error) {
	methods, err := s.loadMethods(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payment methods")
		return nil, err
	}
	sort.SliceStable(methods, func(i, j int) bool {
		if methods[i].Category.Rank() != methods[j].Category.Rank() {
			return methods[i].Category.Rank() < methods[j].Category.Rank()
		}
		return methods[i].Position < methods[j].Position
	})
	return methods, nil
}

// LookupMethod retrieves one method by name.
func (s *registryService) LookupMethod(ctx context.Context, name string) (*domain.PaymentMethod, error) {
	methods, err := s.loadMethods(ctx)
	if err != nil {
		return nil, err
	}
	for i := range methods {
		if methods[i].Name == name {
			return &methods[i], nil
		}
	}
	return nil, fmt.Errorf("payment method %q: %w", name, apperrors.ErrNotFound)
}

// IncomeCategories lists income categories in insertion order.
func (s *registryService) IncomeCategories(ctx context.Context) ([]domain.IncomeCategory, error) {
	categories, err := s.loadIncomeCategories(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list income categories")
		return nil, err
	}
	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].Position < categories[j].Position
	})
	return categories, nil
}

// AddPaymentMethod registers a new payment method.
func (s *registryService) AddPaymentMethod(ctx context.Context, req dto.CreateMethodRequest) (*domain.PaymentMethod, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("method name must not be empty: %w", apperrors.ErrValidation)
	}
	if req.EarnsPoints && req.BaseFee <= 0 {
		return nil, fmt.Errorf("base fee must be positive for point-earning methods: %w", apperrors.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	methods, err := s.loadMethods(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load methods for add", slog.String("name", name))
		return nil, err
	}
	maxPos := 0
	for _, m := range methods {
		if m.Name == name {
			return nil, fmt.Errorf("payment method %q: %w", name, apperrors.ErrDuplicate)
		}
		if m.Position > maxPos {
			maxPos = m.Position
		}
	}

	method := domain.PaymentMethod{
		Name:        name,
		Category:    req.Category,
		EarnsPoints: req.EarnsPoints,
		BaseFee:     req.BaseFee,
		Position:    maxPos + 1,
	}
	if !method.EarnsPoints {
		method.BaseFee = 0
	}
	methods = append(methods, method)

	if err := s.settingsRepo.SavePaymentMethods(ctx, methods); err != nil {
		s.LogError(ctx, err, "Failed to save payment methods", slog.String("name", name))
		return nil, fmt.Errorf("failed to save payment methods: %w", err)
	}

	s.LogInfo(ctx, "Payment method added",
		slog.String("name", name),
		slog.String("category", string(method.Category)),
		slog.Bool("earns_points", method.EarnsPoints))
	return &method, nil
}

// RemovePaymentMethod deletes a method and cascades to the ledger: every
// record referencing the method is removed as well.
func (s *registryService) RemovePaymentMethod(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	methods, err := s.loadMethods(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load methods for removal", slog.String("name", name))
		return err
	}

	idx := -1
	for i, m := range methods {
		if m.Name == name {
			idx = i
			break
		}
	}
	if idx == -1 {
		return fmt.Errorf("payment method %q: %w", name, apperrors.ErrNotFound)
	}
	if methods[idx].Protected {
		return fmt.Errorf("payment method %q: %w", name, apperrors.ErrProtected)
	}

	remaining := append(methods[:idx:idx], methods[idx+1:]...)
	if err := s.settingsRepo.SavePaymentMethods(ctx, remaining); err != nil {
		s.LogError(ctx, err, "Failed to save payment methods after removal", slog.String("name", name))
		return fmt.Errorf("failed to save payment methods: %w", err)
	}

	// Explicit collaboration with the ledger, not a silent side effect.
	if s.recordRepo != nil {
		if err := s.recordRepo.DeleteRecordsByMethod(ctx, name); err != nil {
			s.LogError(ctx, err, "Failed to cascade record deletion", slog.String("method", name))
			return fmt.Errorf("failed to cascade record deletion for %q: %w", name, err)
		}
	}

	s.LogInfo(ctx, "Payment method removed with cascading record deletion", slog.String("name", name))
	return nil
}

// UpdateBaseFee changes a method's point rule. Points already recorded are a
// historical fact and are left untouched.
func (s *registryService) UpdateBaseFee(ctx context.Context, name string, baseFee int64) (*domain.PaymentMethod, error) {
	if baseFee <= 0 {
		return nil, fmt.Errorf("base fee must be positive: %w", apperrors.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	methods, err := s.loadMethods(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load methods for base fee update", slog.String("name", name))
		return nil, err
	}

	for i := range methods {
		if methods[i].Name != name {
			continue
		}
		methods[i].BaseFee = baseFee
		if err := s.settingsRepo.SavePaymentMethods(ctx, methods); err != nil {
			s.LogError(ctx, err, "Failed to save base fee update", slog.String("name", name))
			return nil, fmt.Errorf("failed to save payment methods: %w", err)
		}
		s.LogInfo(ctx, "Base fee updated", slog.String("name", name), slog.Int64("base_fee", baseFee))
		updated := methods[i]
		return &updated, nil
	}
	return nil, fmt.Errorf("payment method %q: %w", name, apperrors.ErrNotFound)
}

// AddIncomeCategory registers a new income category.
func (s *registryService) AddIncomeCategory(ctx context.Context, name string) (*domain.IncomeCategory, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, fmt.Errorf("income category name must not be empty: %w", apperrors.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	categories, err := s.loadIncomeCategories(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load income categories for add", slog.String("name", trimmed))
		return nil, err
	}
	maxPos := 0
	for _, c := range categories {
		if c.Name == trimmed {
			return nil, fmt.Errorf("income category %q: %w", trimmed, apperrors.ErrDuplicate)
		}
		if c.Position > maxPos {
			maxPos = c.Position
		}
	}

	category := domain.IncomeCategory{Name: trimmed, Position: maxPos + 1}
	categories = append(categories, category)
	if err := s.settingsRepo.SaveIncomeCategories(ctx, categories); err != nil {
		s.LogError(ctx, err, "Failed to save income categories", slog.String("name", trimmed))
		return nil, fmt.Errorf("failed to save income categories: %w", err)
	}

	s.LogInfo(ctx, "Income category added", slog.String("name", trimmed))
	return &category, nil
}

// RemoveIncomeCategory deletes an income category. No ledger cascade: income
// records referencing a removed category survive as orphans.
func (s *registryService) RemoveIncomeCategory(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	categories, err := s.loadIncomeCategories(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load income categories for removal", slog.String("name", name))
		return err
	}

	idx := -1
	for i, c := range categories {
		if c.Name == name {
			idx = i
			break
		}
	}
	if idx == -1 {
		return fmt.Errorf("income category %q: %w", name, apperrors.ErrNotFound)
	}
	if categories[idx].Protected {
		return fmt.Errorf("income category %q: %w", name, apperrors.ErrProtected)
	}

	remaining := append(categories[:idx:idx], categories[idx+1:]...)
	if err := s.settingsRepo.SaveIncomeCategories(ctx, remaining); err != nil {
		s.LogError(ctx, err, "Failed to save income categories after removal", slog.String("name", name))
		return fmt.Errorf("failed to save income categories: %w", err)
	}

	s.LogInfo(ctx, "Income category removed", slog.String("name", name))
	return nil
}

// Theme returns the stored theme preference, empty if unset.
func (s *registryService) Theme(ctx context.Context) (string, error) {
	theme, err := s.settingsRepo.LoadTheme(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", nil
		}
		s.LogError(ctx, err, "Failed to load theme")
		return "", err
	}
	return theme, nil
}

// SetTheme stores the opaque theme preference.
func (s *registryService) SetTheme(ctx context.Context, theme string) error {
	if err := s.settingsRepo.SaveTheme(ctx, theme); err != nil {
		s.LogError(ctx, err, "Failed to save theme")
		return fmt.Errorf("failed to save theme: %w", err)
	}
	return nil
}
