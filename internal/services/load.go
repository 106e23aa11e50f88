package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"recall-backend/internal/models"
)

// LoadService warns the learner before daily review volume runs away:
// it compares today's count against the trailing 7-day daily average.
type LoadService struct {
	reviews    ReviewStore
	counter    DailyCounter
	multiplier float64 // warn when today > avg * multiplier
	minReviews int     // but never below this many reviews today
	now        func() time.Time
}

func NewLoadService(reviews ReviewStore, counter DailyCounter, multiplier float64, minReviews int) *LoadService {
	return &LoadService{
		reviews:    reviews,
		counter:    counter,
		multiplier: multiplier,
		minReviews: minReviews,
		now:        time.Now,
	}
}

// DailyLoadWarning returns a warning when today's reviews exceed the
// trailing average by the configured multiplier, or nil when the load
// looks normal. Advisory only: it never blocks queue construction or
// review recording.
func (s *LoadService) DailyLoadWarning(ctx context.Context, userID, deckID uuid.UUID) (*models.LoadWarning, error) {
	now := s.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	today, err := s.todayCount(ctx, userID, deckID, now, midnight)
	if err != nil {
		return nil, storageError("count today's reviews", err)
	}

	weekAgo := midnight.AddDate(0, 0, -7)
	trailing, err := s.reviews.CountBetween(ctx, userID, deckID, weekAgo, midnight)
	if err != nil {
		return nil, storageError("count trailing reviews", err)
	}
	avg := float64(trailing) / 7.0

	// The floor guards the near-zero average case: a learner's first
	// heavy day on a fresh deck is expected, not an overload.
	if today < s.minReviews || float64(today) <= avg*s.multiplier {
		return nil, nil
	}

	ratio := float64(today)
	if avg > 0 {
		ratio = float64(today) / avg
	}
	return &models.LoadWarning{
		Reason:      fmt.Sprintf("Today's %d reviews exceed the trailing 7-day average of %.1f per day", today, avg),
		TodayCount:  today,
		TrailingAvg: avg,
		Ratio:       ratio,
	}, nil
}

// todayCount prefers the cached counter and falls back to the review log.
func (s *LoadService) todayCount(ctx context.Context, userID, deckID uuid.UUID, now, midnight time.Time) (int, error) {
	if s.counter != nil {
		if n, ok, err := s.counter.GetToday(ctx, userID, deckID, dayKey(now)); err == nil && ok {
			return n, nil
		}
	}
	return s.reviews.CountBetween(ctx, userID, deckID, midnight, midnight.AddDate(0, 0, 1))
}
