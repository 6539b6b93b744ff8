package domain

import "time"

// SubscriptionPlan is the billing cycle of a subscription.
type SubscriptionPlan string

const (
	PlanMonthly SubscriptionPlan = "MONTHLY"
	PlanYearly  SubscriptionPlan = "YEARLY"
)

// Valid reports whether the plan is one of the known billing cycles.
func (p SubscriptionPlan) Valid() bool {
	return p == PlanMonthly || p == PlanYearly
}

// Subscription is a recurring charge definition. NextChargeDate is mutated
// only by the scheduler; IsActive only by user action.
type Subscription struct {
	SubscriptionID string           `json:"subscriptionID"` // Primary Key (UUID)
	Name           string           `json:"name"`
	Genre          string           `json:"genre"` // icon selection only
	Price          int64            `json:"price"` // whole yen, positive
	Plan           SubscriptionPlan `json:"plan"`
	NextChargeDate time.Time        `json:"nextChargeDate"`
	PaymentMethod  string           `json:"paymentMethod"` // references a PaymentMethod name
	IsActive       bool             `json:"isActive"`
	CreatedAt      time.Time        `json:"createdAt"`
}

// IsDueOn reports whether the subscription's next charge calendar-matches
// the given day: day-of-month for monthly plans, month and day for yearly
// plans. Month-end anchors match the last valid day of shorter months.
func (s Subscription) IsDueOn(now time.Time) bool {
	anchorDay := s.NextChargeDate.Day()
	day := anchorDay
	if last := lastDayOfMonth(now.Year(), now.Month()); anchorDay > last {
		day = last
	}
	if s.Plan == PlanYearly && s.NextChargeDate.Month() != now.Month() {
		return false
	}
	return now.Day() == day
}

// NextChargeDate advances anchor by one plan period at a time until the
// result is strictly after now. Month arithmetic clamps to the last valid
// day of the target month (Jan 31 + 1 month = Feb 28/29), never spilling
// into the following month.
func NextChargeDate(plan SubscriptionPlan, anchor, now time.Time) time.Time {
	next := anchor
	for !next.After(now) {
		if plan == PlanYearly {
			next = addMonthsClamped(next, 12)
		} else {
			next = addMonthsClamped(next, 1)
		}
	}
	return next
}

func addMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	target := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	if last := lastDayOfMonth(target.Year(), target.Month()); d > last {
		d = last
	}
	return time.Date(target.Year(), target.Month(), d,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func lastDayOfMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
