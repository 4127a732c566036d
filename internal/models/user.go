package models

import (
	"database/sql"
	"time"
)

const (
	TierFree = "free"
	TierPro  = "pro"
)

// FreeMonthlyLimit is the number of generations a free account gets
// per month before it is asked to upgrade.
const FreeMonthlyLimit = 3

type User struct {
	ID                   string
	Email                string
	FirstName            sql.NullString
	LastName             sql.NullString
	ImageURL             sql.NullString
	SubscriptionTier     string
	GenerationsThisMonth int
	GenerationsResetAt   sql.NullTime
	StripeCustomerID     sql.NullString
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
