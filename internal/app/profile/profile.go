/*
Package profile gives the chat core access to user profile data: the language
preference used for per-recipient translation and the daily message counter
backing the chat rate limiter.

This file defines the Profile value, the Store interface over the external
profile record, and the subscription plan constants.
*/
package profile

import (
	"context"
	"errors"
	"time"
)

// Subscription plans. Free accounts are subject to the daily text message
// limit; premium accounts are never denied but their counter still advances.
const (
	PlanFree    = "free"
	PlanPremium = "premium"
)

// DefaultLanguage is assumed for users whose profile record is missing.
const DefaultLanguage = "es"

// ErrProfileNotFound indicates that no profile record exists for the user.
var ErrProfileNotFound = errors.New("profile: not found")

// Profile is the slice of the user's profile record the chat core reads and writes.
type Profile struct {
	UserID             string
	LanguagePreference string
	SubscriptionPlan   string
	DailyMessagesCount int
	LastMessageDate    time.Time
}

// Store reads and writes profile records in the external persistent store.
type Store interface {
	// Get returns the profile record for userID, or ErrProfileNotFound.
	Get(ctx context.Context, userID string) (Profile, error)

	// UpdateMessageCounter persists the daily message counter fields for userID.
	UpdateMessageCounter(ctx context.Context, userID string, count int, date time.Time) error
}
