package postgres

import (
	"fmt"
	"time"

	"selfio-backend/internal/models"
)

func (d *DatabaseClient) UpsertSubscription(userID, stripeSubscriptionID, stripePriceID, status string, periodStart, periodEnd time.Time) error {
	_, err := d.db.Exec(`
		INSERT INTO subscriptions (user_id, stripe_subscription_id, stripe_price_id,
			status, current_period_start, current_period_end)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			stripe_subscription_id = EXCLUDED.stripe_subscription_id,
			stripe_price_id = EXCLUDED.stripe_price_id,
			status = EXCLUDED.status,
			current_period_start = EXCLUDED.current_period_start,
			current_period_end = EXCLUDED.current_period_end,
			updated_at = NOW()
	`, userID, stripeSubscriptionID, stripePriceID, status, periodStart, periodEnd)
	if err != nil {
		return fmt.Errorf("failed to upsert subscription: %w", err)
	}
	return nil
}

func (d *DatabaseClient) UpdateSubscriptionPeriod(stripeSubscriptionID, status string, periodStart, periodEnd time.Time, cancelAtPeriodEnd bool) error {
	_, err := d.db.Exec(`
		UPDATE subscriptions
		SET status = $1, current_period_start = $2, current_period_end = $3,
		    cancel_at_period_end = $4, updated_at = NOW()
		WHERE stripe_subscription_id = $5
	`, status, periodStart, periodEnd, cancelAtPeriodEnd, stripeSubscriptionID)
	if err != nil {
		return fmt.Errorf("failed to update subscription period: %w", err)
	}
	return nil
}

func (d *DatabaseClient) UpdateSubscriptionStatus(stripeSubscriptionID, status string) error {
	_, err := d.db.Exec(`
		UPDATE subscriptions
		SET status = $1, updated_at = NOW()
		WHERE stripe_subscription_id = $2
	`, status, stripeSubscriptionID)
	if err != nil {
		return fmt.Errorf("failed to update subscription status: %w", err)
	}
	return nil
}

func (d *DatabaseClient) GetSubscriptionByStripeID(stripeSubscriptionID string) (*models.Subscription, error) {
	var sub models.Subscription
	err := d.db.QueryRow(`
		SELECT id, user_id, stripe_subscription_id, stripe_price_id, status,
		       current_period_start, current_period_end, cancel_at_period_end,
		       created_at, updated_at
		FROM subscriptions
		WHERE stripe_subscription_id = $1
	`, stripeSubscriptionID).Scan(
		&sub.ID, &sub.UserID, &sub.StripeSubscriptionID, &sub.StripePriceID,
		&sub.Status, &sub.CurrentPeriodStart, &sub.CurrentPeriodEnd,
		&sub.CancelAtPeriodEnd, &sub.CreatedAt, &sub.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	return &sub, nil
}
