package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/finage-app/finage_core/internal/apperrors"
	"github.com/finage-app/finage_core/internal/core/domain"
	portsrepo "github.com/finage-app/finage_core/internal/core/ports/repositories"
	"github.com/finage-app/finage_core/internal/models"
)

// SQLiteSubscriptionRepository persists subscriptions in the embedded database.
type SQLiteSubscriptionRepository struct {
	db *sql.DB
}

// newSQLiteSubscriptionRepository creates a new repository for subscription data.
func newSQLiteSubscriptionRepository(db *sql.DB) portsrepo.SubscriptionRepositoryFacade {
	return &SQLiteSubscriptionRepository{db: db}
}

// Ensure SQLiteSubscriptionRepository implements portsrepo.SubscriptionRepositoryFacade
var _ portsrepo.SubscriptionRepositoryFacade = (*SQLiteSubscriptionRepository)(nil)

func toModelSubscription(d domain.Subscription) models.Subscription {
	return models.Subscription{
		SubscriptionID: d.SubscriptionID,
		Name:           d.Name,
		Genre:          d.Genre,
		Price:          d.Price,
		Plan:           string(d.Plan),
		NextChargeDate: d.NextChargeDate.Format(time.RFC3339),
		PaymentMethod:  d.PaymentMethod,
		IsActive:       d.IsActive,
		CreatedAt:      d.CreatedAt.Format(time.RFC3339),
	}
}

func toDomainSubscription(m models.Subscription) (domain.Subscription, error) {
	nextChargeDate, err := time.Parse(time.RFC3339, m.NextChargeDate)
	if err != nil {
		return domain.Subscription{}, fmt.Errorf("parse next charge date: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339, m.CreatedAt)
	if err != nil {
		return domain.Subscription{}, fmt.Errorf("parse subscription created_at: %w", err)
	}
	return domain.Subscription{
		SubscriptionID: m.SubscriptionID,
		Name:           m.Name,
		Genre:          m.Genre,
		Price:          m.Price,
		Plan:           domain.SubscriptionPlan(m.Plan),
		NextChargeDate: nextChargeDate,
		PaymentMethod:  m.PaymentMethod,
		IsActive:       m.IsActive,
		CreatedAt:      createdAt,
	}, nil
}

// SaveSubscription inserts a new subscription.
func (r *SQLiteSubscriptionRepository) SaveSubscription(ctx context.Context, subscription domain.Subscription) error {
	m := toModelSubscription(subscription)
	query := `
		INSERT INTO subscriptions (subscription_id, name, genre, price, plan, next_charge_date, payment_method, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	_, err := r.db.ExecContext(ctx, query,
		m.SubscriptionID, m.Name, m.Genre, m.Price, m.Plan, m.NextChargeDate, m.PaymentMethod, m.IsActive, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert subscription: %w: %v", apperrors.ErrStorage, err)
	}
	return nil
}

// FindSubscriptionByID retrieves a specific subscription by its ID.
func (r *SQLiteSubscriptionRepository) FindSubscriptionByID(ctx context.Context, subscriptionID string) (*domain.Subscription, error) {
	query := `
		SELECT subscription_id, name, genre, price, plan, next_charge_date, payment_method, is_active, created_at
		FROM subscriptions WHERE subscription_id = ?;
	`
	var m models.Subscription
	err := r.db.QueryRowContext(ctx, query, subscriptionID).Scan(
		&m.SubscriptionID, &m.Name, &m.Genre, &m.Price, &m.Plan, &m.NextChargeDate, &m.PaymentMethod, &m.IsActive, &m.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("subscription %s: %w", subscriptionID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("find subscription: %w: %v", apperrors.ErrStorage, err)
	}
	sub, err := toDomainSubscription(m)
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// ListSubscriptions retrieves all subscriptions in insertion order.
func (r *SQLiteSubscriptionRepository) ListSubscriptions(ctx context.Context) ([]domain.Subscription, error) {
	query := `
		SELECT subscription_id, name, genre, price, plan, next_charge_date, payment_method, is_active, created_at
		FROM subscriptions ORDER BY created_at ASC;
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w: %v", apperrors.ErrStorage, err)
	}
	defer rows.Close()

	var subs []domain.Subscription
	for rows.Next() {
		var m models.Subscription
		if err := rows.Scan(&m.SubscriptionID, &m.Name, &m.Genre, &m.Price, &m.Plan, &m.NextChargeDate, &m.PaymentMethod, &m.IsActive, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan subscription: %w: %v", apperrors.ErrStorage, err)
		}
		sub, err := toDomainSubscription(m)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subscriptions: %w: %v", apperrors.ErrStorage, err)
	}
	return subs, nil
}

// UpdateSubscription persists changed fields of a subscription.
func (r *SQLiteSubscriptionRepository) UpdateSubscription(ctx context.Context, subscription domain.Subscription) error {
	m := toModelSubscription(subscription)
	query := `
		UPDATE subscriptions
		SET name = ?, genre = ?, price = ?, plan = ?, next_charge_date = ?, payment_method = ?, is_active = ?
		WHERE subscription_id = ?;
	`
	res, err := r.db.ExecContext(ctx, query,
		m.Name, m.Genre, m.Price, m.Plan, m.NextChargeDate, m.PaymentMethod, m.IsActive, m.SubscriptionID)
	if err != nil {
		return fmt.Errorf("update subscription: %w: %v", apperrors.ErrStorage, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update subscription rows affected: %w: %v", apperrors.ErrStorage, err)
	}
	if affected == 0 {
		return fmt.Errorf("subscription %s: %w", m.SubscriptionID, apperrors.ErrNotFound)
	}
	return nil
}

// DeleteSubscription removes a subscription.
func (r *SQLiteSubscriptionRepository) DeleteSubscription(ctx context.Context, subscriptionID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM subscriptions WHERE subscription_id = ?;`, subscriptionID)
	if err != nil {
		return fmt.Errorf("delete subscription: %w: %v", apperrors.ErrStorage, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete subscription rows affected: %w: %v", apperrors.ErrStorage, err)
	}
	if affected == 0 {
		return fmt.Errorf("subscription %s: %w", subscriptionID, apperrors.ErrNotFound)
	}
	return nil
}
