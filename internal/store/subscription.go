package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"elvcatalog/internal/models"
)

// SubscriptionStore manages newsletter subscriptions.
type SubscriptionStore struct {
	db *sql.DB
}

// NewSubscriptionStore returns a new SubscriptionStore.
func NewSubscriptionStore(db *sql.DB) *SubscriptionStore {
	return &SubscriptionStore{db: db}
}

const subscriptionColumns = `id, email, is_active, created_at`

func scanSubscription(row scanner) (*models.Subscription, error) {
	var s models.Subscription
	if err := row.Scan(&s.ID, &s.Email, &s.IsActive, &s.CreatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// List returns all subscriptions, newest first.
func (s *SubscriptionStore) List() ([]models.Subscription, error) {
	rows, err := s.db.Query(`SELECT ` + subscriptionColumns + ` FROM subscriptions ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	defer rows.Close()

	var items []models.Subscription
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		items = append(items, *sub)
	}
	return items, rows.Err()
}

// FindByID returns a subscription by ID. Returns nil if not found.
func (s *SubscriptionStore) FindByID(id uuid.UUID) (*models.Subscription, error) {
	sub, err := scanSubscription(s.db.QueryRow(`SELECT `+subscriptionColumns+` FROM subscriptions WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find subscription: %w", err)
	}
	return sub, nil
}

// FindByEmail returns a subscription by e-mail. Returns nil if not found.
func (s *SubscriptionStore) FindByEmail(email string) (*models.Subscription, error) {
	sub, err := scanSubscription(s.db.QueryRow(`SELECT `+subscriptionColumns+` FROM subscriptions WHERE email = $1`, email))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find subscription by email: %w", err)
	}
	return sub, nil
}

// Create inserts a subscription.
func (s *SubscriptionStore) Create(sub *models.Subscription) (*models.Subscription, error) {
	created, err := scanSubscription(s.db.QueryRow(`
		INSERT INTO subscriptions (email, is_active) VALUES ($1, $2)
		RETURNING `+subscriptionColumns,
		sub.Email, sub.IsActive,
	))
	if err != nil {
		return nil, writeErr("create subscription", err, models.ErrDuplicateEmail)
	}
	return created, nil
}

// SetActive switches a subscription on or off.
func (s *SubscriptionStore) SetActive(id uuid.UUID, active bool) error {
	result, err := s.db.Exec(`UPDATE subscriptions SET is_active = $1 WHERE id = $2`, active, id)
	if err != nil {
		return fmt.Errorf("update subscription: %w", err)
	}
	return affectedOne("update subscription", result)
}

// Delete removes a subscription.
func (s *SubscriptionStore) Delete(id uuid.UUID) error {
	result, err := s.db.Exec(`DELETE FROM subscriptions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete subscription: %w", err)
	}
	return affectedOne("delete subscription", result)
}
