package postgres

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"selfio-backend/internal/models"
)

type DatabaseClient struct {
	db *sql.DB
}

func NewDatabaseClient(connectionString string) (*DatabaseClient, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DatabaseClient{db: db}, nil
}

func (d *DatabaseClient) GetUser(userID string) (*models.User, error) {
	var user models.User
	err := d.db.QueryRow(`
		SELECT id, email, first_name, last_name, image_url, subscription_tier,
		       generations_this_month, generations_reset_at, stripe_customer_id,
		       created_at, updated_at
		FROM users
		WHERE id = $1
	`, userID).Scan(
		&user.ID, &user.Email, &user.FirstName, &user.LastName, &user.ImageURL,
		&user.SubscriptionTier, &user.GenerationsThisMonth, &user.GenerationsResetAt,
		&user.StripeCustomerID, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// UpsertUser creates the account row on first sign-in and refreshes the
// identity fields on subsequent syncs. Subscription and usage columns are
// never touched here.
func (d *DatabaseClient) UpsertUser(userID, email, firstName, lastName, imageURL string) (*models.User, error) {
	var user models.User
	err := d.db.QueryRow(`
		INSERT INTO users (id, email, first_name, last_name, image_url)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''))
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			image_url = EXCLUDED.image_url,
			updated_at = NOW()
		RETURNING id, email, first_name, last_name, image_url, subscription_tier,
		          generations_this_month, generations_reset_at, stripe_customer_id,
		          created_at, updated_at
	`, userID, email, firstName, lastName, imageURL).Scan(
		&user.ID, &user.Email, &user.FirstName, &user.LastName, &user.ImageURL,
		&user.SubscriptionTier, &user.GenerationsThisMonth, &user.GenerationsResetAt,
		&user.StripeCustomerID, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	return &user, nil
}

// IncrementGenerations bumps the monthly usage counter by one. The
// increment happens inside the UPDATE so concurrent runs for the same
// account cannot lose updates.
func (d *DatabaseClient) IncrementGenerations(userID string) error {
	_, err := d.db.Exec(`
		UPDATE users
		SET generations_this_month = generations_this_month + 1, updated_at = NOW()
		WHERE id = $1
	`, userID)
	if err != nil {
		return fmt.Errorf("failed to increment generations: %w", err)
	}
	return nil
}

func (d *DatabaseClient) SetSubscriptionTier(userID, tier string) error {
	_, err := d.db.Exec(`
		UPDATE users
		SET subscription_tier = $1, updated_at = NOW()
		WHERE id = $2
	`, tier, userID)
	if err != nil {
		return fmt.Errorf("failed to set subscription tier: %w", err)
	}
	return nil
}

func (d *DatabaseClient) SetStripeCustomer(userID, customerID string) error {
	_, err := d.db.Exec(`
		UPDATE users
		SET stripe_customer_id = $1, updated_at = NOW()
		WHERE id = $2
	`, customerID, userID)
	if err != nil {
		return fmt.Errorf("failed to set stripe customer: %w", err)
	}
	return nil
}

func (d *DatabaseClient) Close() error {
	return d.db.Close()
}
