/*
Package profile gives the chat core access to user profile data.

This file implements the Store interface on top of PostgreSQL via pgxpool.
*/
package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore is the PostgreSQL-backed profile store.
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore wraps the given connection pool as a profile Store.
func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

// Get returns the profile record for userID.
func (s *PGStore) Get(ctx context.Context, userID string) (Profile, error) {
	const query = `
		SELECT language_preference, subscription_plan, daily_messages_count, last_message_date
		FROM profiles
		WHERE user_id = $1`

	p := Profile{UserID: userID}

	err := s.pool.QueryRow(ctx, query, userID).Scan(
		&p.LanguagePreference,
		&p.SubscriptionPlan,
		&p.DailyMessagesCount,
		&p.LastMessageDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Profile{}, ErrProfileNotFound
		}
		return Profile{}, fmt.Errorf("query profile: %w", err)
	}

	return p, nil
}

// UpdateMessageCounter persists the daily message counter fields for userID.
func (s *PGStore) UpdateMessageCounter(ctx context.Context, userID string, count int, date time.Time) error {
	const query = `
		UPDATE profiles
		SET daily_messages_count = $2, last_message_date = $3
		WHERE user_id = $1`

	if _, err := s.pool.Exec(ctx, query, userID, count, date); err != nil {
		return fmt.Errorf("update message counter: %w", err)
	}

	return nil
}
