package dto

import (
	"time"

	"github.com/finage-app/finage_core/internal/core/domain"
)

// CreateSubscriptionRequest defines the data needed to register a
// subscription. StartDate anchors the billing cycle and becomes the first
// next-charge date.
type CreateSubscriptionRequest struct {
	Name          string                  `json:"name" binding:"required"`
	Genre         string                  `json:"genre"`
	Price         int64                   `json:"price" binding:"required,min=1"`
	Plan          domain.SubscriptionPlan `json:"plan" binding:"required,subscriptionplan"`
	StartDate     time.Time               `json:"startDate" binding:"required"`
	PaymentMethod string                  `json:"paymentMethod" binding:"required"`
}

// SubscriptionResponse defines the data returned for a subscription.
type SubscriptionResponse struct {
	SubscriptionID string                  `json:"subscriptionID"`
	Name           string                  `json:"name"`
	Genre          string                  `json:"genre"`
	GenreIcon      string                  `json:"genreIcon"`
	Price          int64                   `json:"price"`
	Plan           domain.SubscriptionPlan `json:"plan"`
	NextChargeDate time.Time               `json:"nextChargeDate"`
	PaymentMethod  string                  `json:"paymentMethod"`
	IsActive       bool                    `json:"isActive"`
}

// ToSubscriptionResponse converts a domain.Subscription to a response DTO.
func ToSubscriptionResponse(s *domain.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		SubscriptionID: s.SubscriptionID,
		Name:           s.Name,
		Genre:          s.Genre,
		GenreIcon:      domain.GenreIcon(s.Genre),
		Price:          s.Price,
		Plan:           s.Plan,
		NextChargeDate: s.NextChargeDate,
		PaymentMethod:  s.PaymentMethod,
		IsActive:       s.IsActive,
	}
}

// ToListSubscriptionResponse converts subscriptions to response DTOs.
func ToListSubscriptionResponse(subs []domain.Subscription) []SubscriptionResponse {
	res := make([]SubscriptionResponse, len(subs))
	for i, s := range subs {
		res[i] = ToSubscriptionResponse(&s)
	}
	return res
}

// SetActiveRequest toggles a subscription's active state.
type SetActiveRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// RunDueChargesResponse reports the records posted by a scheduler run.
type RunDueChargesResponse struct {
	Posted []RecordResponse `json:"posted"`
}
