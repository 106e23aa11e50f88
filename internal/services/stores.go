package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"recall-backend/internal/models"
)

// Storage contracts the core needs from its collaborators. The pgx
// repositories satisfy these; tests use in-memory fakes. Lookups report
// "not found" as a nil result, not an error.

type DeckStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Deck, error)
}

type CardStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Card, error)
	UnseenCards(ctx context.Context, userID, deckID uuid.UUID, limit int) ([]uuid.UUID, error)
}

type ReviewStore interface {
	Append(ctx context.Context, e *models.ReviewEvent) error
	LatestByCard(ctx context.Context, userID, cardID uuid.UUID) (*models.ReviewEvent, error)
	DueCards(ctx context.Context, userID, deckID uuid.UUID, now time.Time, limit int) ([]uuid.UUID, error)
	CountByDeck(ctx context.Context, userID, deckID uuid.UUID) (int, error)
	CountBetween(ctx context.Context, userID, deckID uuid.UUID, from, to time.Time) (int, error)
}

type ScoreStore interface {
	ApplyReview(ctx context.Context, userID, deckID uuid.UUID, sample, stability, alpha float64, lapse bool) (*models.DeckScore, error)
	Get(ctx context.Context, userID, deckID uuid.UUID, window string) (*models.DeckScore, error)
}

// DailyCounter is the fast path for today's review count. Misses fall
// back to the review log, so implementations may be best-effort.
type DailyCounter interface {
	IncrToday(ctx context.Context, userID, deckID uuid.UUID, day string) error
	GetToday(ctx context.Context, userID, deckID uuid.UUID, day string) (int, bool, error)
}

// ScoreRefresher hands (user, deck) pairs to the background window
// refresher after a review.
type ScoreRefresher interface {
	Enqueue(ctx context.Context, userID, deckID uuid.UUID) error
}
