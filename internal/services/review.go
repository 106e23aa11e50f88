package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"recall-backend/internal/models"
	"recall-backend/internal/srs"
)

// ratingSample maps a rating to its instantaneous accuracy sample for
// the mastery scorer: a lapse is 0, a hard recall partial credit, and
// good/easy full credit.
func ratingSample(r srs.Rating) float64 {
	switch r {
	case srs.Again:
		return 0.0
	case srs.Hard:
		return 0.6
	default:
		return 1.0
	}
}

// ReviewService records ratings: it resumes the card's memory state from
// the latest review event, runs the scheduling engine, appends the new
// event, and folds the sample into the deck score.
type ReviewService struct {
	engine    *srs.Engine
	decks     DeckStore
	cards     CardStore
	reviews   ReviewStore
	scores    ScoreStore
	counter   DailyCounter
	refresher ScoreRefresher
	alpha     float64
	now       func() time.Time
}

func NewReviewService(
	engine *srs.Engine,
	decks DeckStore,
	cards CardStore,
	reviews ReviewStore,
	scores ScoreStore,
	counter DailyCounter,
	refresher ScoreRefresher,
	alpha float64,
) *ReviewService {
	return &ReviewService{
		engine:    engine,
		decks:     decks,
		cards:     cards,
		reviews:   reviews,
		scores:    scores,
		counter:   counter,
		refresher: refresher,
		alpha:     alpha,
		now:       time.Now,
	}
}

// RecordReview validates the request, advances the card's memory state
// and appends the review event. The event append and the score update
// are separate writes; the score upsert itself is atomic (see ScoreRepo)
// but no cross-row transaction is assumed.
func (s *ReviewService) RecordReview(ctx context.Context, userID, deckID uuid.UUID, cardIDStr, ratingStr string) (*models.ReviewResult, error) {
	rating, err := srs.ParseRating(ratingStr)
	if err != nil {
		return nil, validationError("rating", "rating must be again, hard, good, or easy")
	}
	if cardIDStr == "" {
		return nil, validationError("card_id", "card_id is required")
	}
	cardID, err := uuid.Parse(cardIDStr)
	if err != nil {
		return nil, validationError("card_id", "card_id must be a valid UUID")
	}

	deck, err := s.decks.GetByID(ctx, deckID)
	if err != nil {
		return nil, storageError("load deck", err)
	}
	if deck == nil || deck.UserID != userID {
		return nil, &NotFoundError{Message: "Deck not found"}
	}

	card, err := s.cards.GetByID(ctx, cardID)
	if err != nil {
		return nil, storageError("load card", err)
	}
	if card == nil || card.DeckID != deckID {
		return nil, &NotFoundError{Message: "Card not found in deck"}
	}

	now := s.now()

	latest, err := s.reviews.LatestByCard(ctx, userID, cardID)
	if err != nil {
		return nil, storageError("load latest review", err)
	}
	memory := srs.NewMemoryState(now)
	if latest != nil {
		memory = latest.Memory
	}

	next := s.engine.Next(memory, rating, now)

	event := &models.ReviewEvent{
		UserID:     userID,
		CardID:     cardID,
		DeckID:     deckID,
		Rating:     rating,
		ReviewedAt: now,
		Memory:     next,
	}
	if err := s.reviews.Append(ctx, event); err != nil {
		return nil, storageError("append review event", err)
	}

	if _, err := s.scores.ApplyReview(ctx, userID, deckID, ratingSample(rating), next.Stability, s.alpha, rating == srs.Again); err != nil {
		return nil, storageError("update deck score", err)
	}

	// Best-effort bookkeeping: neither the daily counter nor the window
	// refresh may fail the review itself.
	if s.counter != nil {
		if err := s.counter.IncrToday(ctx, userID, deckID, dayKey(now)); err != nil {
			log.Printf("review: daily counter incr failed: %v", err)
		}
	}
	if s.refresher != nil {
		if err := s.refresher.Enqueue(ctx, userID, deckID); err != nil {
			log.Printf("review: score refresh enqueue failed: %v", err)
		}
	}

	return &models.ReviewResult{
		Success:      true,
		NextDue:      next.Due,
		IntervalDays: next.ScheduledDays,
		Stability:    next.Stability,
	}, nil
}

// dayKey formats a timestamp as a local calendar day.
func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
