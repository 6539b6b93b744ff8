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

// subscriptionService implements the SubscriptionSvcFacade interface.
// runMu serializes scheduler runs: two overlapping invocations (app launch
// plus a background refresh) must not double-post a charge.
type subscriptionService struct {
	BaseService
	subscriptionRepo portsrepo.SubscriptionRepositoryFacade
	ledger           portssvc.LedgerSvcFacade
	registry         portssvc.RegistryReaderSvc
	runMu            sync.Mutex
}

// SubscriptionServiceOption is a functional option for configuring the subscription service
type SubscriptionServiceOption func(*subscriptionService)

// WithChargeLedger sets the ledger used to check and post due charges.
func WithChargeLedger(ledger portssvc.LedgerSvcFacade) SubscriptionServiceOption {
	return func(s *subscriptionService) {
		s.ledger = ledger
	}
}

// WithSubscriptionRegistry sets the registry used to validate payment
// methods at creation time.
func WithSubscriptionRegistry(registry portssvc.RegistryReaderSvc) SubscriptionServiceOption {
	return func(s *subscriptionService) {
		s.registry = registry
	}
}

// NewSubscriptionService creates a new subscription service with the provided options
func NewSubscriptionService(subscriptionRepo portsrepo.SubscriptionRepositoryFacade, options ...SubscriptionServiceOption) portssvc.SubscriptionSvcFacade {
	svc := &subscriptionService{
		subscriptionRepo: subscriptionRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure subscriptionService implements the SubscriptionSvcFacade interface
var _ portssvc.SubscriptionSvcFacade = (*subscriptionService)(nil)

// ListSubscriptions retrieves all subscriptions in insertion order.
func (s *subscriptionService) ListSubscriptions(ctx context.Context) ([]domain.Subscription, error) {
	subs, err := s.subscriptionRepo.ListSubscriptions(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list subscriptions")
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	return subs, nil
}

// CreateSubscription validates and persists a new subscription. The payment
// method must exist in the registry at creation time; the start date becomes
// the first next-charge date.
func (s *subscriptionService) CreateSubscription(ctx context.Context, req dto.CreateSubscriptionRequest) (*domain.Subscription, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("subscription name must not be empty: %w", apperrors.ErrValidation)
	}
	if req.Price <= 0 {
		return nil, fmt.Errorf("price must be positive: %w", apperrors.ErrValidation)
	}
	if !req.Plan.Valid() {
		return nil, fmt.Errorf("unknown plan %q: %w", req.Plan, apperrors.ErrValidation)
	}
	if s.registry != nil {
		if _, err := s.registry.LookupMethod(ctx, req.PaymentMethod); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("unknown payment method %q: %w", req.PaymentMethod, apperrors.ErrValidation)
			}
			s.LogError(ctx, err, "Failed to validate payment method", slog.String("method", req.PaymentMethod))
			return nil, err
		}
	}

	sub := domain.Subscription{
		SubscriptionID: uuid.NewString(),
		Name:           req.Name,
		Genre:          req.Genre,
		Price:          req.Price,
		Plan:           req.Plan,
		NextChargeDate: req.StartDate,
		PaymentMethod:  req.PaymentMethod,
		IsActive:       true,
		CreatedAt:      time.Now(),
	}
	if err := s.subscriptionRepo.SaveSubscription(ctx, sub); err != nil {
		s.LogError(ctx, err, "Failed to save subscription", slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to save subscription: %w", err)
	}

	s.LogInfo(ctx, "Subscription created",
		slog.String("subscription_id", sub.SubscriptionID),
		slog.String("name", sub.Name),
		slog.String("plan", string(sub.Plan)))
	return &sub, nil
}

// SetActive sets a subscription's active flag.
func (s *subscriptionService) SetActive(ctx context.Context, subscriptionID string, active bool) (*domain.Subscription, error) {
	sub, err := s.subscriptionRepo.FindSubscriptionByID(ctx, subscriptionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find subscription", slog.String("subscription_id", subscriptionID))
		}
		return nil, err
	}

	sub.IsActive = active
	if err := s.subscriptionRepo.UpdateSubscription(ctx, *sub); err != nil {
		s.LogError(ctx, err, "Failed to update subscription", slog.String("subscription_id", subscriptionID))
		return nil, fmt.Errorf("failed to update subscription: %w", err)
	}

	s.LogInfo(ctx, "Subscription active flag set",
		slog.String("subscription_id", subscriptionID), slog.Bool("is_active", active))
	return sub, nil
}

// DeleteSubscription removes a subscription. Records already posted for it
// remain ordinary ledger rows.
func (s *subscriptionService) DeleteSubscription(ctx context.Context, subscriptionID string) error {
	if err := s.subscriptionRepo.DeleteSubscription(ctx, subscriptionID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete subscription", slog.String("subscription_id", subscriptionID))
		}
		return err
	}
	s.LogInfo(ctx, "Subscription deleted", slog.String("subscription_id", subscriptionID))
	return nil
}

// RunDueCharges posts one expense record per active, due subscription that
// has not already been charged on now's calendar day, then advances its
// next charge date strictly past now. Idempotence within one day rests on
// the existing-record check, not an in-memory flag, so it holds across
// process restarts.
func (s *subscriptionService) RunDueCharges(ctx context.Context, now time.Time) ([]domain.Record, error) {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	subs, err := s.subscriptionRepo.ListSubscriptions(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list subscriptions for scheduler run")
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	filter := domain.NewRecordFilter()
	filter.Day = &now
	todays, err := s.ledger.ListRecords(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list today's records for scheduler run")
		return nil, err
	}
	charged := make(map[string]bool)
	for _, r := range todays {
		if r.Kind == domain.Expense {
			charged[r.Memo] = true
		}
	}

	var posted []domain.Record
	for _, sub := range subs {
		if !sub.IsActive || !sub.IsDueOn(now) || charged[sub.Name] {
			continue
		}

		record, err := s.ledger.AppendRecord(ctx, dto.CreateRecordRequest{
			Date:   now,
			Kind:   domain.Expense,
			Method: sub.PaymentMethod,
			Amount: sub.Price,
			Memo:   sub.Name,
		})
		if err != nil {
			s.LogError(ctx, err, "Failed to post subscription charge",
				slog.String("subscription_id", sub.SubscriptionID), slog.String("name", sub.Name))
			return posted, err
		}

		sub.NextChargeDate = domain.NextChargeDate(sub.Plan, sub.NextChargeDate, now)
		if err := s.subscriptionRepo.UpdateSubscription(ctx, sub); err != nil {
			s.LogError(ctx, err, "Failed to advance next charge date",
				slog.String("subscription_id", sub.SubscriptionID))
			return posted, fmt.Errorf("failed to update subscription: %w", err)
		}

		s.LogInfo(ctx, "Subscription charge posted",
			slog.String("subscription_id", sub.SubscriptionID),
			slog.String("name", sub.Name),
			slog.Int64("amount", sub.Price),
			slog.String("next_charge_date", sub.NextChargeDate.Format("2006-01-02")))
		posted = append(posted, *record)
	}
	return posted, nil
}
