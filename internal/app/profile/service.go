/*
Package profile gives the chat core access to user profile data.

This file defines the Service, which resolves language preferences and enforces
the per-user daily message quota. The quota's read-modify-write is serialized
per user so two concurrent messages from the same account (possibly over
different connections) can never both take the last remaining slot.
*/
package profile

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ReyMar81/gestor-doc/internal/pkg/logx"
)

// Service resolves language preferences and applies the daily message quota
// over a profile Store.
type Service struct {
	store Store

	// limit is the daily text message allowance for free-plan users.
	limit int

	// now is the clock used for date rollover checks.
	now func() time.Time

	// mu protects userLocks.
	mu sync.Mutex

	// userLocks serializes the quota read-modify-write per user ID.
	userLocks map[string]*sync.Mutex

	logger zerolog.Logger
}

// NewService constructs a Service with the given free-plan daily limit.
func NewService(store Store, limit int) *Service {
	return &Service{
		store:     store,
		limit:     limit,
		now:       time.Now,
		userLocks: make(map[string]*sync.Mutex),
		logger:    logx.Logger().With().Str("component", "profile").Logger(),
	}
}

// LanguagePreference returns the user's preferred language code.
// A missing profile or a store failure falls back to DefaultLanguage.
func (s *Service) LanguagePreference(ctx context.Context, userID string) string {
	p, err := s.store.Get(ctx, userID)
	if err != nil {
		if err != ErrProfileNotFound {
			s.logger.Warn().Err(err).Str("user_id", userID).Msg("Profile lookup failed, using default language.")
		}
		return DefaultLanguage
	}

	if p.LanguagePreference == "" {
		return DefaultLanguage
	}

	return p.LanguagePreference
}

// TryConsumeMessage applies the daily quota for one outgoing text message.
// The counter logically resets when the stored date is not today; that reset is
// persisted even when the message is denied. Premium users are always allowed
// but still counted. Store failures fail open: the message is admitted.
func (s *Service) TryConsumeMessage(ctx context.Context, userID string) bool {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	p, err := s.store.Get(ctx, userID)
	if err != nil {
		if err != ErrProfileNotFound {
			s.logger.Warn().Err(err).Str("user_id", userID).Msg("Quota read failed, admitting message.")
		}
		return true
	}

	today := s.now()
	if !sameDay(p.LastMessageDate, today) {
		p.DailyMessagesCount = 0
		p.LastMessageDate = today
	}

	if p.SubscriptionPlan == PlanFree && p.DailyMessagesCount >= s.limit {
		if err := s.store.UpdateMessageCounter(ctx, userID, p.DailyMessagesCount, p.LastMessageDate); err != nil {
			s.logger.Warn().Err(err).Str("user_id", userID).Msg("Failed to persist counter reset on denied message.")
		}
		return false
	}

	p.DailyMessagesCount++
	if err := s.store.UpdateMessageCounter(ctx, userID, p.DailyMessagesCount, p.LastMessageDate); err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("Failed to persist message counter.")
	}

	return true
}

// userLock returns the per-user mutex, creating it on first use.
func (s *Service) userLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.userLocks[userID] = lock
	}
	return lock
}

// sameDay reports whether a and b fall on the same calendar date.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
