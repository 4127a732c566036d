package models

import (
	"time"

	"github.com/google/uuid"
)

// Subscription statuses mirror the payment provider's lifecycle.
const (
	SubscriptionActive     = "active"
	SubscriptionCanceled   = "canceled"
	SubscriptionPastDue    = "past_due"
	SubscriptionIncomplete = "incomplete"
)

type Subscription struct {
	ID                   uuid.UUID
	UserID               string
	StripeSubscriptionID string
	StripePriceID        string
	Status               string
	CurrentPeriodStart   time.Time
	CurrentPeriodEnd     time.Time
	CancelAtPeriodEnd    bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
