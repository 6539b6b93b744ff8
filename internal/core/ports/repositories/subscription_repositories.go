package repositories

import (
	"context"

	"github.com/finage-app/finage_core/internal/core/domain"
)

// SubscriptionReader defines read operations for subscription data.
type SubscriptionReader interface {
	// FindSubscriptionByID retrieves a specific subscription by its ID.
	FindSubscriptionByID(ctx context.Context, subscriptionID string) (*domain.Subscription, error)

	// ListSubscriptions retrieves all subscriptions in insertion order.
	ListSubscriptions(ctx context.Context) ([]domain.Subscription, error)
}

// SubscriptionWriter defines write operations for subscription data.
type SubscriptionWriter interface {
	// SaveSubscription persists a new subscription.
	SaveSubscription(ctx context.Context, subscription domain.Subscription) error

	// UpdateSubscription persists changed fields (isActive, nextChargeDate).
	UpdateSubscription(ctx context.Context, subscription domain.Subscription) error

	// DeleteSubscription removes a subscription. Already-posted ledger
	// records are untouched.
	DeleteSubscription(ctx context.Context, subscriptionID string) error
}

// SubscriptionRepositoryFacade combines all subscription repository interfaces.
type SubscriptionRepositoryFacade interface {
	SubscriptionReader
	SubscriptionWriter
}
