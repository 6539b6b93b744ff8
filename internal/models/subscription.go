package models

// Subscription is the database row model for a subscription.
type Subscription struct {
	SubscriptionID string
	Name           string
	Genre          string
	Price          int64
	Plan           string
	NextChargeDate string // RFC3339
	PaymentMethod  string
	IsActive       bool
	CreatedAt      string // RFC3339
}
