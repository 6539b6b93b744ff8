package services

import (
	"context"
	"time"

	"github.com/finage-app/finage_core/internal/core/domain"
	"github.com/finage-app/finage_core/internal/dto"
)

// SubscriptionReaderSvc defines read operations for subscriptions.
type SubscriptionReaderSvc interface {
	// ListSubscriptions retrieves all subscriptions in insertion order.
	ListSubscriptions(ctx context.Context) ([]domain.Subscription, error)
}

// SubscriptionWriterSvc defines user-driven subscription mutations.
type SubscriptionWriterSvc interface {
	// CreateSubscription registers a subscription. The payment method must
	// exist in the registry at creation time.
	CreateSubscription(ctx context.Context, req dto.CreateSubscriptionRequest) (*domain.Subscription, error)

	// SetActive sets a subscription's active flag.
	SetActive(ctx context.Context, subscriptionID string, active bool) (*domain.Subscription, error)

	// DeleteSubscription removes a subscription, leaving posted records.
	DeleteSubscription(ctx context.Context, subscriptionID string) error
}

// SubscriptionSchedulerSvc posts due recurring charges. Runs are serialized
// in-process; within one calendar day the operation is idempotent.
type SubscriptionSchedulerSvc interface {
	// RunDueCharges posts one expense record per active, due subscription
	// that has not already been charged today, then advances each
	// subscription's next charge date strictly into the future.
	RunDueCharges(ctx context.Context, now time.Time) ([]domain.Record, error)
}

// SubscriptionSvcFacade combines all subscription service interfaces.
type SubscriptionSvcFacade interface {
	SubscriptionReaderSvc
	SubscriptionWriterSvc
	SubscriptionSchedulerSvc
}
